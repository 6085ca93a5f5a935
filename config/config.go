// SPDX-License-Identifier: EPL-2.0

package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"github.com/ik5/audsrc/ads"
	"github.com/ik5/audsrc/audio"
)

// Canonical option names.
const (
	KeyFilename     = "filename"
	KeyDataBuffer   = "data_buffer"
	KeySamplingRate = "sampling_rate"
	KeySampleWidth  = "sample_width"
	KeyChannels     = "channels"
	KeyBlockSize    = "block_size"
	KeyBlockDur     = "block_dur"
	KeyHopSize      = "hop_size"
	KeyHopDur       = "hop_dur"
	KeyMaxTime      = "max_time"
	KeyRecord       = "record"
)

// Defaults applied when an option is not given.
const (
	DefaultBlockDur     = 0.01
	DefaultSamplingRate = 16000
	DefaultSampleWidth  = 2
	DefaultChannels     = 1
)

// aliases maps every accepted spelling to its canonical name.
var aliases = map[string]string{
	KeyFilename:     KeyFilename,
	"fn":            KeyFilename,
	KeyDataBuffer:   KeyDataBuffer,
	"db":            KeyDataBuffer,
	KeySamplingRate: KeySamplingRate,
	"sr":            KeySamplingRate,
	KeySampleWidth:  KeySampleWidth,
	"sw":            KeySampleWidth,
	KeyChannels:     KeyChannels,
	"ch":            KeyChannels,
	KeyBlockSize:    KeyBlockSize,
	"bs":            KeyBlockSize,
	KeyBlockDur:     KeyBlockDur,
	"bd":            KeyBlockDur,
	KeyHopSize:      KeyHopSize,
	"hs":            KeyHopSize,
	KeyHopDur:       KeyHopDur,
	"hd":            KeyHopDur,
	KeyMaxTime:      KeyMaxTime,
	"mt":            KeyMaxTime,
	KeyRecord:       KeyRecord,
	"rec":           KeyRecord,
}

// groups holds options that are alternatives of each other. At most one
// key of a group may be given.
var groups = map[string]string{
	KeyFilename:   "source",
	KeyDataBuffer: "source",
	KeyBlockSize:  "block",
	KeyBlockDur:   "block",
	KeyHopSize:    "hop",
	KeyHopDur:     "hop",
}

// Settings is the result of option resolution. Durations are in seconds.
type Settings struct {
	Filename   string
	DataBuffer []byte

	// Format of DataBuffer. Ignored for files.
	SamplingRate int
	SampleWidth  int
	Channels     int

	// BlockSize, when positive, takes precedence over BlockDur.
	BlockSize int
	BlockDur  float64
	// HopSize, when positive, takes precedence over HopDur. Both zero means
	// no overlap.
	HopSize int
	HopDur  float64
	// MaxTime of zero means no limit.
	MaxTime float64
	Record  bool

	given []string
}

// Given reports whether key, under any spelling, was supplied.
func (s Settings) Given(key string) bool {
	return slices.Contains(s.given, canonical(key))
}

func canonical(key string) string {
	k := strings.ToLower(strings.TrimSpace(key))
	if c, ok := aliases[k]; ok {
		return c
	}

	return k
}

// normalize renames every key of params to its canonical name and fails on
// unknown keys and on keys sharing a group.
func normalize(params map[string]any) (map[string]any, error) {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	// stable error messages
	slices.Sort(keys)

	out := make(map[string]any, len(params))
	seen := make(map[string]string, len(params))
	for _, k := range keys {
		c, ok := aliases[strings.ToLower(strings.TrimSpace(k))]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownArgument, k)
		}

		group := c
		if g, ok := groups[c]; ok {
			group = g
		}
		if prev, ok := seen[group]; ok {
			return nil, fmt.Errorf("%w: %q and %q", ErrDuplicateArgument, prev, k)
		}
		seen[group] = k
		out[c] = params[k]
	}

	return out, nil
}

// Parse resolves a keyword map into Settings. Keys may use any accepted
// spelling, for example "bd" for "block_dur".
func Parse(params map[string]any) (Settings, error) {
	norm, err := normalize(params)
	if err != nil {
		return Settings{}, err
	}

	// the buffer is kept out of viper so it is not copied or converted
	var s Settings
	if db, ok := norm[KeyDataBuffer]; ok {
		delete(norm, KeyDataBuffer)
		if s.DataBuffer, err = toBytes(db); err != nil {
			return Settings{}, err
		}
		s.given = append(s.given, KeyDataBuffer)
	}

	v := viper.New()
	v.SetDefault(KeySamplingRate, DefaultSamplingRate)
	v.SetDefault(KeySampleWidth, DefaultSampleWidth)
	v.SetDefault(KeyChannels, DefaultChannels)
	v.SetDefault(KeyBlockDur, DefaultBlockDur)
	if err := v.MergeConfigMap(norm); err != nil {
		return Settings{}, fmt.Errorf("merging options: %w", err)
	}
	for k := range norm {
		s.given = append(s.given, k)
	}
	slices.Sort(s.given)

	if err := s.fill(v); err != nil {
		return Settings{}, err
	}

	return s, nil
}

// LoadFile reads options from a YAML, TOML or JSON file. The same aliases
// and duplicate rules apply as for Parse.
func LoadFile(path string) (Settings, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Settings{}, fmt.Errorf("reading config %s: %w", path, err)
	}

	return Parse(v.AllSettings())
}

func (s *Settings) fill(v *viper.Viper) error {
	var err error
	if s.Filename, err = cast.ToStringE(v.Get(KeyFilename)); err != nil {
		return invalid(KeyFilename, err)
	}
	if s.SamplingRate, err = cast.ToIntE(v.Get(KeySamplingRate)); err != nil {
		return invalid(KeySamplingRate, err)
	}
	if s.SampleWidth, err = cast.ToIntE(v.Get(KeySampleWidth)); err != nil {
		return invalid(KeySampleWidth, err)
	}
	if s.Channels, err = cast.ToIntE(v.Get(KeyChannels)); err != nil {
		return invalid(KeyChannels, err)
	}
	if s.BlockSize, err = cast.ToIntE(v.Get(KeyBlockSize)); err != nil {
		return invalid(KeyBlockSize, err)
	}
	if s.BlockDur, err = cast.ToFloat64E(v.Get(KeyBlockDur)); err != nil {
		return invalid(KeyBlockDur, err)
	}
	if s.HopSize, err = cast.ToIntE(v.Get(KeyHopSize)); err != nil {
		return invalid(KeyHopSize, err)
	}
	if s.HopDur, err = cast.ToFloat64E(v.Get(KeyHopDur)); err != nil {
		return invalid(KeyHopDur, err)
	}
	if s.MaxTime, err = cast.ToFloat64E(v.Get(KeyMaxTime)); err != nil {
		return invalid(KeyMaxTime, err)
	}
	if s.Record, err = cast.ToBoolE(v.Get(KeyRecord)); err != nil {
		return invalid(KeyRecord, err)
	}

	return nil
}

func invalid(key string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrInvalidArgument, key, err)
}

func toBytes(v any) ([]byte, error) {
	switch b := v.(type) {
	case []byte:
		return b, nil
	case string:
		return []byte(b), nil
	default:
		return nil, fmt.Errorf("%w: %s: unsupported type %T", ErrInvalidArgument, KeyDataBuffer, v)
	}
}

// BufferFormat is the layout of DataBuffer.
func (s Settings) BufferFormat() audio.Format {
	return audio.Format{Rate: s.SamplingRate, Width: s.SampleWidth, Chans: s.Channels}
}

// Config turns s into a pipeline configuration for src, converting
// durations with the sampling rate of src.
func (s Settings) Config(src audio.Source) (ads.Config, error) {
	if src == nil {
		return ads.Config{}, ErrNoSource
	}
	rate := src.SamplingRate()

	cfg := ads.Config{
		Source: src,
		Record: s.Record,
	}

	switch {
	case s.Given(KeyBlockSize):
		cfg.BlockSize = s.BlockSize
	case s.Given(KeyBlockDur):
		cfg.BlockSize = ads.SamplesFromDuration(s.BlockDur, rate)
	default:
		// the default duration is shorter than one sample below 50 Hz
		cfg.BlockSize = max(1, ads.SamplesFromDuration(s.BlockDur, rate))
	}

	switch {
	case s.Given(KeyHopSize):
		cfg.HopSize = s.HopSize
	case s.Given(KeyHopDur):
		cfg.HopSize = ads.SamplesFromDuration(s.HopDur, rate)
	}
	// an explicit zero hop would otherwise mean "same as block"
	if (s.Given(KeyHopSize) || s.Given(KeyHopDur)) && cfg.HopSize == 0 {
		return ads.Config{}, ads.ErrInvalidHopSize
	}

	// zero samples would mean no limit at all
	if s.MaxTime > 0 {
		cfg.MaxSamples = ads.SamplesFromDuration(s.MaxTime, rate)
		if cfg.MaxSamples == 0 {
			return ads.Config{}, fmt.Errorf("%w: max_time %g is shorter than one sample",
				ads.ErrInvalidMaxSamples, s.MaxTime)
		}
	} else if s.MaxTime < 0 {
		return ads.Config{}, ads.ErrInvalidMaxSamples
	}

	return cfg, nil
}
