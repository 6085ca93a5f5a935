// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-audio/wav"

	"github.com/ik5/audsrc/audio"
)

const (
	formatPCM        = 1
	formatExtensible = 0xFFFE
)

// Decoder reads integer PCM WAV files of any whole-byte sample width.
type Decoder struct{}

// Decode parses the WAV header of r and returns a source over its PCM data.
// The source can seek when r implements io.ReaderAt and io.Seeker, which
// covers files and in-memory readers. Any other reader is loaded in memory.
// The caller keeps ownership of r.
func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}
		rs = bytes.NewReader(data)
	}

	start, err := rs.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	if err := checkRIFF(rs, start); err != nil {
		return nil, err
	}

	d := wav.NewDecoder(rs)
	d.ReadInfo()
	if err := d.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedWavLayout, err)
	}
	if d.WavAudioFormat != formatPCM && d.WavAudioFormat != formatExtensible {
		return nil, fmt.Errorf("%w: format tag %d", ErrUnsupportedWavLayout, d.WavAudioFormat)
	}
	if d.BitDepth == 0 || d.BitDepth%8 != 0 {
		return nil, fmt.Errorf("%w: %d bits", ErrUnsupportedBitDepth, d.BitDepth)
	}

	if err := d.FwdToPCM(); err != nil || d.PCMChunk == nil {
		return nil, ErrNoPCMData
	}

	f := audio.Format{
		Rate:  int(d.SampleRate),
		Width: int(d.BitDepth / 8),
		Chans: int(d.NumChans),
	}

	pcm, err := pcmReader(rs, int64(d.PCMSize))
	if err != nil {
		return nil, err
	}

	src, err := audio.NewPCMSource(pcm, f)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedWavLayout, err)
	}

	return src, nil
}

func checkRIFF(rs io.ReadSeeker, start int64) error {
	header := make([]byte, 12)
	if _, err := io.ReadFull(rs, header); err != nil {
		return ErrNotWavFile
	}
	if !bytes.HasPrefix(header[:4], []byte("RIFF")) || !bytes.HasPrefix(header[8:12], []byte("WAVE")) {
		return ErrNotWavFile
	}
	if _, err := rs.Seek(start, io.SeekStart); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

// pcmReader returns a reader over the next size bytes of rs, fewer if the
// file is truncated.
func pcmReader(rs io.ReadSeeker, size int64) (io.Reader, error) {
	off, err := rs.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	end, err := rs.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	if _, err := rs.Seek(off, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	size = min(size, end-off)

	if ra, ok := rs.(io.ReaderAt); ok {
		return io.NewSectionReader(ra, off, size), nil
	}

	return io.LimitReader(rs, size), nil
}
