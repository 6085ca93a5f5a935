// SPDX-License-Identifier: EPL-2.0

package ads

import (
	"io"
	"log/slog"
	"math"

	"github.com/google/uuid"
	"github.com/ik5/audsrc/audio"
)

// DataSource reads an audio stream block by block. Read returns (nil, io.EOF)
// once the stream is exhausted; a zero-length block is never returned.
type DataSource interface {
	Open() error
	Close() error
	Read() ([]byte, error)
	Rewind() error
	IsRewindable() bool

	// BlockSize is the number of samples returned by a full Read.
	BlockSize() int
	SetBlockSize(n int) error

	SamplingRate() int
	SampleWidth() int
	Channels() int

	// AudioSource is the innermost source currently read from.
	AudioSource() audio.Source
	SetAudioSource(src audio.Source) error
}

// Wrapper is implemented by the decorators of a DataSource.
type Wrapper interface {
	Inner() DataSource
}

// Config is a resolved pipeline configuration. All sizes are sample counts.
type Config struct {
	Source audio.Source

	BlockSize int
	// HopSize below BlockSize yields overlapping frames. Zero means BlockSize.
	HopSize int
	// MaxSamples bounds the amount of data read. Zero means no limit.
	MaxSamples int
	// Record makes the pipeline rewindable whatever the source.
	Record bool
}

// New builds a pipeline from cfg. Decorators are nested in a fixed order,
// innermost first: Base, Limiter (MaxSamples > 0), Recorder (Record) and
// Overlap (HopSize < BlockSize). The outermost one is returned.
func New(cfg Config, opts ...Option) (DataSource, error) {
	if cfg.Source == nil {
		return nil, ErrNilSource
	}
	if cfg.BlockSize <= 0 {
		return nil, ErrInvalidBlockSize
	}

	hop := cfg.HopSize
	if hop == 0 {
		hop = cfg.BlockSize
	}
	if hop < 0 || hop > cfg.BlockSize {
		return nil, ErrInvalidHopSize
	}
	if cfg.MaxSamples < 0 {
		return nil, ErrInvalidMaxSamples
	}

	o := newOptions(opts)
	o.logger = o.logger.With(slog.String("pipeline", uuid.NewString()))
	shared := withResolved(o)

	var ds DataSource
	ds, err := NewBase(cfg.Source, cfg.BlockSize, shared)
	if err != nil {
		return nil, err
	}

	if cfg.MaxSamples > 0 {
		if ds, err = NewLimiter(ds, cfg.MaxSamples, shared); err != nil {
			return nil, err
		}
	}

	if cfg.Record {
		if ds, err = NewRecorder(ds, shared); err != nil {
			return nil, err
		}
	}

	if hop < cfg.BlockSize {
		if ds, err = NewOverlap(ds, cfg.BlockSize, hop, shared); err != nil {
			return nil, err
		}
	}

	o.logger.Debug("pipeline built",
		slog.Any("layers", Layers(ds)),
		slog.Int("block_size", cfg.BlockSize),
		slog.Int("hop_size", hop),
		slog.Int("max_samples", cfg.MaxSamples),
	)

	return ds, nil
}

// Layers names the layers of ds from the outermost to the base.
func Layers(ds DataSource) []string {
	var names []string
	for ds != nil {
		switch ds.(type) {
		case *Overlap:
			names = append(names, "overlap")
		case *Recorder:
			names = append(names, "recorder")
		case *Limiter:
			names = append(names, "limiter")
		case *Base:
			names = append(names, "base")
		default:
			names = append(names, "custom")
		}

		w, ok := ds.(Wrapper)
		if !ok {
			break
		}
		ds = w.Inner()
	}

	return names
}

// Find returns the outermost layer of ds of type T.
func Find[T DataSource](ds DataSource) (T, bool) {
	for ds != nil {
		if t, ok := ds.(T); ok {
			return t, true
		}
		w, ok := ds.(Wrapper)
		if !ok {
			break
		}
		ds = w.Inner()
	}

	var zero T
	return zero, false
}

// SamplesFromDuration converts seconds to samples at rate, rounded to the
// nearest sample.
func SamplesFromDuration(seconds float64, rate int) int {
	return int(math.Round(seconds * float64(rate)))
}

// ReadAll reads ds until io.EOF and returns every block read.
func ReadAll(ds DataSource) ([][]byte, error) {
	var blocks [][]byte
	for {
		block, err := ds.Read()
		if err == io.EOF {
			return blocks, nil
		}
		if err != nil {
			return blocks, err
		}
		blocks = append(blocks, block)
	}
}
