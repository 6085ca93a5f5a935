// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"math"
	"sync"
)

// Source is a stream of interleaved PCM samples that is read frame by frame.
type Source interface {
	// Open prepares the source for reading.
	Open() error
	// Close releases any resources. Reads after Close fail with ErrNotOpen.
	Close() error
	// IsOpen reports whether Open was called and Close was not.
	IsOpen() bool

	// Read returns up to n frames (n * SampleWidth * Channels bytes).
	// Fewer bytes are returned only at the end of the stream, and
	// (nil, io.EOF) once nothing remains. Data and error are never
	// returned together.
	Read(n int) ([]byte, error)

	// Rewind moves the read cursor back to the first frame.
	// Sources that cannot seek return ErrNotRewindable.
	Rewind() error
	// SetPosition moves the read cursor to an absolute frame offset.
	SetPosition(frames int) error
	// Position is the current frame offset.
	Position() int
	IsRewindable() bool

	// SamplingRate of the PCM stream in Hz.
	SamplingRate() int
	// SampleWidth in bytes per sample per channel.
	SampleWidth() int
	// Channels count (e.g., 1=mono, 2=stereo).
	Channels() int
}

// Format describes interleaved PCM data.
type Format struct {
	Rate  int
	Width int
	Chans int
}

func (f Format) SamplingRate() int { return f.Rate }
func (f Format) SampleWidth() int  { return f.Width }
func (f Format) Channels() int     { return f.Chans }

// FrameSize is the number of bytes of one frame (one sample for every channel).
func (f Format) FrameSize() int { return f.Width * f.Chans }

// Samples converts a duration in seconds to a number of frames,
// rounded to the nearest frame.
func (f Format) Samples(seconds float64) int {
	return int(math.Round(seconds * float64(f.Rate)))
}

func (f Format) Validate() error {
	if f.Rate <= 0 || f.Width <= 0 || f.Chans <= 0 {
		return ErrInvalidFormat
	}

	return nil
}

// FormatOf returns the format reported by src.
func FormatOf(src Source) Format {
	return Format{
		Rate:  src.SamplingRate(),
		Width: src.SampleWidth(),
		Chans: src.Channels(),
	}
}

// Decoder constructs a Source from an input reader.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// Registry for decoders by format key (e.g., "wav", "mp3", "ogg").
type Registry struct {
	codecs map[string]Decoder

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]Decoder),
		mtx:    &sync.Mutex{},
	}
}

func (r *Registry) Register(format string, d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[format] = d
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	d, ok := r.codecs[format]
	return d, ok
}

// Formats lists the registered format keys.
func (r *Registry) Formats() []string {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	keys := make([]string, 0, len(r.codecs))
	for k := range r.codecs {
		keys = append(keys, k)
	}

	return keys
}
