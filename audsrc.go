// SPDX-License-Identifier: EPL-2.0

package audsrc

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ik5/audsrc/ads"
	"github.com/ik5/audsrc/audio"
	"github.com/ik5/audsrc/config"
	"github.com/ik5/audsrc/formats/aiff"
	"github.com/ik5/audsrc/formats/mp3"
	"github.com/ik5/audsrc/formats/vorbis"
	"github.com/ik5/audsrc/formats/wav"
)

// DefaultRegistry returns a registry with every decoder of this module,
// keyed by file extension.
func DefaultRegistry() *audio.Registry {
	r := audio.NewRegistry()
	r.Register("wav", wav.Decoder{})
	r.Register("aiff", aiff.Decoder{})
	r.Register("aif", aiff.Decoder{})
	r.Register("mp3", mp3.Decoder{})
	r.Register("ogg", vorbis.Decoder{})

	return r
}

// New builds a data source from keyword options, for example
//
//	ds, err := audsrc.New(map[string]any{"fn": "speech.wav", "bd": 0.025, "hd": 0.01})
//
// The stream comes from "filename" or "data_buffer". See package config for
// every accepted key and alias.
func New(params map[string]any, opts ...ads.Option) (ads.DataSource, error) {
	s, err := config.Parse(params)
	if err != nil {
		return nil, err
	}

	return FromSettings(s, opts...)
}

// NewFromSource builds a data source over an already constructed source.
// params must not name a filename or data buffer.
func NewFromSource(src audio.Source, params map[string]any, opts ...ads.Option) (ads.DataSource, error) {
	s, err := config.Parse(params)
	if err != nil {
		return nil, err
	}
	if s.Given(config.KeyFilename) || s.Given(config.KeyDataBuffer) {
		return nil, fmt.Errorf("%w: audio source given together with %s",
			config.ErrDuplicateArgument, firstGiven(s))
	}

	return build(src, s, opts)
}

// FromSettings builds a data source from resolved settings.
func FromSettings(s config.Settings, opts ...ads.Option) (ads.DataSource, error) {
	src, err := Open(s)
	if err != nil {
		return nil, err
	}

	ds, err := build(src, s, opts)
	if err != nil {
		_ = src.Close()
		return nil, err
	}

	return ds, nil
}

func build(src audio.Source, s config.Settings, opts []ads.Option) (ads.DataSource, error) {
	cfg, err := s.Config(src)
	if err != nil {
		return nil, err
	}

	return ads.New(cfg, opts...)
}

// Open returns the audio source named by s: a decoded file or an in-memory
// buffer.
func Open(s config.Settings) (audio.Source, error) {
	switch {
	case s.Filename != "":
		return OpenFile(s.Filename, DefaultRegistry())
	case s.Given(config.KeyDataBuffer):
		f := s.BufferFormat()
		src, err := audio.NewBufferSource(s.DataBuffer, f.Rate, f.Width, f.Chans)
		if err != nil {
			return nil, err
		}
		return src, nil
	default:
		return nil, config.ErrNoSource
	}
}

// OpenFile decodes path with the decoder registered for its extension.
// Closing the returned source closes the file.
func OpenFile(path string, reg *audio.Registry) (audio.Source, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	dec, ok := reg.Get(ext)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	src, err := dec.Decode(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	return &fileSource{Source: src, f: f}, nil
}

type fileSource struct {
	audio.Source

	f *os.File
}

func (s *fileSource) Close() error {
	err := s.Source.Close()
	if cerr := s.f.Close(); err == nil {
		err = cerr
	}

	return err
}

func firstGiven(s config.Settings) string {
	if s.Given(config.KeyFilename) {
		return config.KeyFilename
	}

	return config.KeyDataBuffer
}
