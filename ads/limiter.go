// SPDX-License-Identifier: EPL-2.0

package ads

import (
	"io"
	"log/slog"

	"github.com/ik5/audsrc/audio"
)

// Limiter caps the total number of bytes read from the wrapped data source.
// A block is never truncated: the last block may overshoot the limit, so
// the total read is the allowance rounded up to the wrapped block size.
type Limiter struct {
	DataSource

	maxBytes int
	read     int

	log *slog.Logger
}

func NewLimiter(ds DataSource, maxSamples int, opts ...Option) (*Limiter, error) {
	if ds == nil {
		return nil, ErrNilSource
	}
	if maxSamples < 0 {
		return nil, ErrInvalidMaxSamples
	}

	o := newOptions(opts)

	return &Limiter{
		DataSource: ds,
		maxBytes:   maxSamples * ds.SampleWidth() * ds.Channels(),
		log:        o.logger,
	}, nil
}

// Inner returns the wrapped data source.
func (l *Limiter) Inner() DataSource { return l.DataSource }

// MaxBytes is the allowance in bytes.
func (l *Limiter) MaxBytes() int { return l.maxBytes }

// BytesRead is the number of bytes returned since the last open, rewind or
// source swap.
func (l *Limiter) BytesRead() int { return l.read }

func (l *Limiter) Open() error {
	if err := l.DataSource.Open(); err != nil {
		return err
	}
	l.read = 0

	return nil
}

func (l *Limiter) Read() ([]byte, error) {
	if l.read >= l.maxBytes {
		return nil, io.EOF
	}

	block, err := l.DataSource.Read()
	if err != nil {
		return nil, err
	}

	l.read += len(block)
	if l.read >= l.maxBytes {
		l.log.Debug("read limit reached", slog.Int("bytes_read", l.read), slog.Int("max_bytes", l.maxBytes))
	}

	return block, nil
}

func (l *Limiter) Rewind() error {
	if err := l.DataSource.Rewind(); err != nil {
		return err
	}
	l.read = 0

	return nil
}

func (l *Limiter) SetAudioSource(src audio.Source) error {
	if err := l.DataSource.SetAudioSource(src); err != nil {
		return err
	}
	l.read = 0

	return nil
}
