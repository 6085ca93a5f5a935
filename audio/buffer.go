// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
)

// BufferSource serves PCM data held in memory. It is always rewindable.
type BufferSource struct {
	Format

	data   []byte
	pos    int // frames
	frames int
	open   bool
}

// NewBufferSource wraps data, which must hold whole frames of the given layout.
// The slice is not copied.
func NewBufferSource(data []byte, sampleRate, sampleWidth, channels int) (*BufferSource, error) {
	f := Format{Rate: sampleRate, Width: sampleWidth, Chans: channels}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if len(data)%f.FrameSize() != 0 {
		return nil, ErrBufferNotAligned
	}

	return &BufferSource{
		Format: f,
		data:   data,
		frames: len(data) / f.FrameSize(),
	}, nil
}

func (b *BufferSource) Open() error  { b.open = true; return nil }
func (b *BufferSource) Close() error { b.open = false; return nil }
func (b *BufferSource) IsOpen() bool { return b.open }

func (b *BufferSource) IsRewindable() bool { return true }
func (b *BufferSource) Position() int      { return b.pos }

// DataBuffer returns the underlying data.
func (b *BufferSource) DataBuffer() []byte { return b.data }

// Frames is the total number of frames held.
func (b *BufferSource) Frames() int { return b.frames }

func (b *BufferSource) Read(n int) ([]byte, error) {
	if !b.open {
		return nil, ErrNotOpen
	}
	if n <= 0 {
		return nil, ErrInvalidReadSize
	}
	if b.pos >= b.frames {
		return nil, io.EOF
	}

	end := min(b.pos+n, b.frames)
	fs := b.FrameSize()
	out := make([]byte, (end-b.pos)*fs)
	copy(out, b.data[b.pos*fs:end*fs])
	b.pos = end

	return out, nil
}

func (b *BufferSource) Rewind() error {
	b.pos = 0
	return nil
}

func (b *BufferSource) SetPosition(frames int) error {
	if frames < 0 || frames > b.frames {
		return ErrInvalidPosition
	}
	b.pos = frames

	return nil
}
