// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"errors"
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/ik5/audsrc/audio"
	"github.com/ik5/audsrc/utils"
)

// Decoded floats are packed as 16-bit PCM.
const sampleWidth = 2

// oggReader is an interface for oggvorbis.Reader to allow testing
type oggReader interface {
	SampleRate() int
	Channels() int
	// Read fills p with interleaved samples and returns how many
	// values (not frames) were written.
	Read(p []float32) (int, error)
	SetPosition(pos int64) error
}

type source struct {
	audio.Format

	dec      oggReader
	seekable bool
	floatBuf []float32
	pos      int
	open     bool
	done     bool
}

func (s *source) Open() error  { s.open = true; return nil }
func (s *source) Close() error { s.open = false; return nil }
func (s *source) IsOpen() bool { return s.open }

func (s *source) IsRewindable() bool { return s.seekable }
func (s *source) Position() int      { return s.pos }
func (s *source) Rewind() error      { return s.SetPosition(0) }

func (s *source) SetPosition(frames int) error {
	if !s.seekable {
		return audio.ErrNotRewindable
	}
	if frames < 0 {
		return audio.ErrInvalidPosition
	}

	if err := s.dec.SetPosition(int64(frames)); err != nil {
		return fmt.Errorf("seeking ogg stream: %w", err)
	}
	s.pos = frames
	s.done = false

	return nil
}

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
	if cap(s.floatBuf) < want {
		s.floatBuf = make([]float32, want)
	}
	s.floatBuf = s.floatBuf[:want]

	// the decoder hands out at most one packet per call
	var got int
	for got < want {
		m, err := s.dec.Read(s.floatBuf[got:])
		got += m
		if err != nil {
			if !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("reading ogg samples: %w", err)
			}
			s.done = true
			break
		}
		if m == 0 {
			s.done = true
			break
		}
	}

	// drop a trailing partial frame
	frames := got / s.Chans
	if frames == 0 {
		return nil, io.EOF
	}

	out := make([]byte, frames*s.FrameSize())
	utils.PutFloat32s(out, s.floatBuf[:frames*s.Chans])
	s.pos += frames

	return out, nil
}

type Decoder struct{}

// Decode returns a source over an Ogg Vorbis stream. The source is rewindable
// when r implements io.Seeker.
func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	_, seekable := r.(io.Seeker)
	src, err := newSource(dec, seekable)
	if err != nil {
		return nil, err
	}

	return src, nil
}

func newSource(dec oggReader, seekable bool) (*source, error) {
	f := audio.Format{Rate: dec.SampleRate(), Width: sampleWidth, Chans: dec.Channels()}
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("ogg stream: %w", err)
	}

	return &source{Format: f, dec: dec, seekable: seekable}, nil
}
