// SPDX-License-Identifier: EPL-2.0

package ads

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/ik5/audsrc/audio"
	"github.com/ik5/audsrc/observe"
)

// Base reads fixed-size blocks from an audio.Source.
type Base struct {
	src       audio.Source
	blockSize int

	log     *slog.Logger
	metrics *observe.Metrics
}

// NewBase returns a data source reading blockSize frames per Read.
func NewBase(src audio.Source, blockSize int, opts ...Option) (*Base, error) {
	if src == nil {
		return nil, ErrNilSource
	}
	if blockSize <= 0 {
		return nil, ErrInvalidBlockSize
	}

	o := newOptions(opts)

	return &Base{
		src:       src,
		blockSize: blockSize,
		log:       o.logger,
		metrics:   o.metrics,
	}, nil
}

func (b *Base) Open() error {
	if err := b.src.Open(); err != nil {
		return fmt.Errorf("opening audio source: %w", err)
	}

	return nil
}

func (b *Base) Close() error {
	if err := b.src.Close(); err != nil {
		return fmt.Errorf("closing audio source: %w", err)
	}

	return nil
}

// Read returns the next block. The last block of a stream may be shorter
// than BlockSize frames; after it Read returns (nil, io.EOF).
func (b *Base) Read() ([]byte, error) {
	data, err := b.src.Read(b.blockSize)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("reading block: %w", err)
	}
	if len(data) == 0 {
		return nil, io.EOF
	}

	b.metrics.RecordRead(len(data))

	return data, nil
}

func (b *Base) Rewind() error {
	if !b.src.IsRewindable() {
		return ErrNotRewindable
	}
	if err := b.src.Rewind(); err != nil {
		return fmt.Errorf("rewinding audio source: %w", err)
	}

	b.metrics.RecordRewind("seek")

	return nil
}

func (b *Base) IsRewindable() bool { return b.src.IsRewindable() }
func (b *Base) BlockSize() int     { return b.blockSize }
func (b *Base) SamplingRate() int  { return b.src.SamplingRate() }
func (b *Base) SampleWidth() int   { return b.src.SampleWidth() }
func (b *Base) Channels() int      { return b.src.Channels() }

func (b *Base) SetBlockSize(n int) error {
	if n <= 0 {
		return ErrInvalidBlockSize
	}
	b.blockSize = n

	return nil
}

func (b *Base) AudioSource() audio.Source { return b.src }

// SetAudioSource makes src the active source. The previous source is
// released by the caller, not closed here.
func (b *Base) SetAudioSource(src audio.Source) error {
	if src == nil {
		return ErrNilSource
	}
	b.log.Debug("audio source replaced", slog.Int("block_size", b.blockSize))
	b.src = src

	return nil
}
