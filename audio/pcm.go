// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
)

// PCMSource reads raw interleaved PCM from r. It is rewindable only when r
// implements io.Seeker; positions are relative to the offset r had when the
// source was created.
type PCMSource struct {
	Format

	r      io.Reader
	seeker io.Seeker
	base   int64
	pos    int
	buf    []byte
	open   bool
}

func NewPCMSource(r io.Reader, f Format) (*PCMSource, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	s := &PCMSource{Format: f, r: r}
	if sk, ok := r.(io.Seeker); ok {
		base, err := sk.Seek(0, io.SeekCurrent)
		if err == nil {
			s.seeker = sk
			s.base = base
		}
	}

	return s, nil
}

func (s *PCMSource) Open() error  { s.open = true; return nil }
func (s *PCMSource) IsOpen() bool { return s.open }

func (s *PCMSource) Close() error {
	s.open = false
	if c, ok := s.r.(io.Closer); ok {
		if err := c.Close(); err != nil {
			return fmt.Errorf("%w", err)
		}
	}

	return nil
}

func (s *PCMSource) IsRewindable() bool { return s.seeker != nil }
func (s *PCMSource) Position() int      { return s.pos }

func (s *PCMSource) Read(n int) ([]byte, error) {
	if !s.open {
		return nil, ErrNotOpen
	}
	if n <= 0 {
		return nil, ErrInvalidReadSize
	}

	fs := s.FrameSize()
	if cap(s.buf) < n*fs {
		s.buf = make([]byte, n*fs)
	}
	s.buf = s.buf[:n*fs]

	got, err := io.ReadFull(s.r, s.buf)
	switch {
	case err == io.EOF:
		return nil, io.EOF
	case err == io.ErrUnexpectedEOF:
		// drop a trailing partial frame
		got -= got % fs
		if got == 0 {
			return nil, io.EOF
		}
	case err != nil:
		return nil, fmt.Errorf("reading pcm data: %w", err)
	}

	s.pos += got / fs
	out := make([]byte, got)
	copy(out, s.buf[:got])

	return out, nil
}

func (s *PCMSource) Rewind() error {
	return s.SetPosition(0)
}

func (s *PCMSource) SetPosition(frames int) error {
	if s.seeker == nil {
		return ErrNotRewindable
	}
	if frames < 0 {
		return ErrInvalidPosition
	}

	off := s.base + int64(frames)*int64(s.FrameSize())
	if _, err := s.seeker.Seek(off, io.SeekStart); err != nil {
		return fmt.Errorf("seeking pcm data: %w", err)
	}
	s.pos = frames

	return nil
}
