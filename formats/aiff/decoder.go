// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"

	"github.com/ik5/audsrc/audio"
	"github.com/ik5/audsrc/utils"
)

// aiffReader is an interface for aiff.Decoder to allow testing
type aiffReader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// source serves the samples of an aiff.Decoder as little-endian PCM bytes.
// The decoder only reads forward, so the source cannot be rewound.
type source struct {
	audio.Format

	dec    aiffReader
	intBuf *goaudio.IntBuffer
	pos    int
	open   bool
	done   bool
}

func (s *source) Open() error  { s.open = true; return nil }
func (s *source) Close() error { s.open = false; return nil }
func (s *source) IsOpen() bool { return s.open }

func (s *source) IsRewindable() bool      { return false }
func (s *source) Rewind() error           { return audio.ErrNotRewindable }
func (s *source) SetPosition(_ int) error { return audio.ErrNotRewindable }
func (s *source) Position() int           { return s.pos }

func (s *source) Read(n int) ([]byte, error) {
	if !s.open {
		return nil, audio.ErrNotOpen
	}
	if n <= 0 {
		return nil, audio.ErrInvalidReadSize
	}
	if s.done {
		return nil, io.EOF
	}

	want := n * s.Chans
	if s.intBuf == nil || cap(s.intBuf.Data) < want {
		s.intBuf = &goaudio.IntBuffer{
			Data:   make([]int, want),
			Format: s.dec.Format(),
		}
	} else {
		s.intBuf.Data = s.intBuf.Data[:want]
	}

	got, err := s.dec.PCMBuffer(s.intBuf)
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("reading aiff samples: %w", err)
		}
		s.done = true
	}

	// drop a trailing partial frame
	frames := got / s.Chans
	if frames == 0 {
		return nil, io.EOF
	}

	out := make([]byte, frames*s.FrameSize())
	utils.PutInts(out, s.intBuf.Data[:frames*s.Chans], s.Width)
	s.pos += frames

	return out, nil
}

type Decoder struct{}

// Decode returns a forward-only source over the sound data of an AIFF file.
func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	// go-audio requires io.ReadSeeker
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading aiff data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}

	dec.ReadInfo()

	switch dec.BitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d bits", ErrUnsupportedBitDepth, dec.BitDepth)
	}

	format := dec.Format()
	if format == nil {
		return nil, ErrUnsupportedAiffLayout
	}

	src, err := newSource(dec, format.SampleRate, int(dec.BitDepth)/8, format.NumChannels)
	if err != nil {
		return nil, err
	}

	return src, nil
}

func newSource(dec aiffReader, rate, width, channels int) (*source, error) {
	f := audio.Format{Rate: rate, Width: width, Chans: channels}
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedAiffLayout, err)
	}

	return &source{Format: f, dec: dec}, nil
}
