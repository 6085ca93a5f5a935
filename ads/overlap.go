// SPDX-License-Identifier: EPL-2.0

package ads

import (
	"io"
	"log/slog"

	"github.com/ik5/audsrc/audio"
)

// Overlap turns the wrapped data source into a stream of overlapping frames.
// Frame i holds BlockSize frames starting at frame i*HopSize of the
// underlying stream; consecutive frames share BlockSize-HopSize frames.
//
// The first read after construction, open or rewind pulls a whole block
// from the wrapped source. Later reads pull HopSize frames and prepend the
// tail of the previous frame.
type Overlap struct {
	DataSource

	blockSize int
	hopSize   int

	cache []byte
	warm  bool
	done  bool

	log *slog.Logger
}

func NewOverlap(ds DataSource, blockSize, hopSize int, opts ...Option) (*Overlap, error) {
	if ds == nil {
		return nil, ErrNilSource
	}
	if blockSize <= 0 {
		return nil, ErrInvalidBlockSize
	}
	if hopSize <= 0 || hopSize > blockSize {
		return nil, ErrInvalidHopSize
	}

	o := newOptions(opts)
	ov := &Overlap{
		DataSource: ds,
		blockSize:  blockSize,
		hopSize:    hopSize,
		log:        o.logger,
	}
	if err := ov.reset(); err != nil {
		return nil, err
	}

	return ov, nil
}

// Inner returns the wrapped data source.
func (o *Overlap) Inner() DataSource { return o.DataSource }

// BlockSize is the frame length in samples.
func (o *Overlap) BlockSize() int { return o.blockSize }

// HopSize is the distance in samples between the starts of two frames.
func (o *Overlap) HopSize() int { return o.hopSize }

// SetBlockSize changes the frame length and restarts framing at the current
// position of the wrapped source.
func (o *Overlap) SetBlockSize(n int) error {
	if n <= 0 {
		return ErrInvalidBlockSize
	}
	if n < o.hopSize {
		return ErrInvalidHopSize
	}
	o.blockSize = n

	return o.reset()
}

func (o *Overlap) frameSize() int { return o.SampleWidth() * o.Channels() }

func (o *Overlap) Read() ([]byte, error) {
	if o.done {
		return nil, io.EOF
	}
	if !o.warm {
		return o.readFirst()
	}

	data, err := o.DataSource.Read()
	if err != nil {
		return nil, err
	}

	frame := make([]byte, 0, len(o.cache)+len(data))
	frame = append(frame, o.cache...)
	frame = append(frame, data...)

	if len(data) < o.hopSize*o.frameSize() {
		o.finish(len(frame))
		return frame, nil
	}
	o.keepTail(frame)

	return frame, nil
}

func (o *Overlap) readFirst() ([]byte, error) {
	block, err := o.DataSource.Read()
	if err != nil {
		return nil, err
	}

	if len(block) < o.blockSize*o.frameSize() {
		o.finish(len(block))
		return block, nil
	}
	o.keepTail(block)
	o.warm = true

	// from now on only the hop is read
	if err := o.DataSource.SetBlockSize(o.hopSize); err != nil {
		return nil, err
	}

	return block, nil
}

// keepTail caches the last BlockSize-HopSize frames of frame.
func (o *Overlap) keepTail(frame []byte) {
	tail := frame[o.hopSize*o.frameSize():]
	o.cache = append(o.cache[:0], tail...)
}

func (o *Overlap) finish(lastLen int) {
	o.done = true
	o.cache = nil
	o.log.Debug("overlapping stream ended", slog.Int("last_frame_bytes", lastLen))
}

func (o *Overlap) reset() error {
	o.cache = nil
	o.warm = false
	o.done = false

	return o.DataSource.SetBlockSize(o.blockSize)
}

func (o *Overlap) Open() error {
	if err := o.DataSource.Open(); err != nil {
		return err
	}

	return o.reset()
}

func (o *Overlap) Rewind() error {
	if err := o.DataSource.Rewind(); err != nil {
		return err
	}

	return o.reset()
}

func (o *Overlap) SetAudioSource(src audio.Source) error {
	if err := o.DataSource.SetAudioSource(src); err != nil {
		return err
	}

	return o.reset()
}
