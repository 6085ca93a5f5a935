// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/audsrc/audio"
)

// go-mp3 always decodes to 16-bit little-endian stereo.
const (
	sampleWidth = 2
	channels    = 2
)

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	Read([]byte) (int, error)
	Seek(offset int64, whence int) (int64, error)
	SampleRate() int
}

// forwardOnly hides the Seek method of a decoder whose input cannot seek.
// go-mp3 panics when asked to seek such an input.
type forwardOnly struct {
	r io.Reader
}

func (f forwardOnly) Read(p []byte) (int, error) { return f.r.Read(p) }

type Decoder struct{}

// Decode returns a source over the decoded PCM of an MP3 stream. The source
// is rewindable when r implements io.Seeker.
func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
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

func newSource(dec mp3Reader, seekable bool) (*audio.PCMSource, error) {
	f := audio.Format{Rate: dec.SampleRate(), Width: sampleWidth, Chans: channels}

	var r io.Reader = dec
	if !seekable {
		r = forwardOnly{dec}
	}

	src, err := audio.NewPCMSource(r, f)
	if err != nil {
		return nil, fmt.Errorf("mp3 stream: %w", err)
	}

	return src, nil
}
