// SPDX-License-Identifier: EPL-2.0

// Package audiotest provides PCM fixtures and source wrappers for tests.
package audiotest

import (
	"math"
	"math/rand/v2"

	"github.com/ik5/audsrc/audio"
	"github.com/ik5/audsrc/utils"
)

// Noise returns frames of deterministic pseudo-random PCM for format f.
// The same seed always yields the same bytes.
func Noise(f audio.Format, frames int, seed uint64) []byte {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	data := make([]byte, frames*f.FrameSize())
	for i := range data {
		data[i] = byte(rng.UintN(256))
	}

	return data
}

// Sine returns frames of a 16-bit sine wave, same signal on every channel.
func Sine(rate, channels, frames int, frequency float64) []byte {
	samples := make([]int16, frames*channels)
	for i := range frames {
		t := float64(i) / float64(rate)
		v := utils.Float32ToInt16(float32(0.8 * math.Sin(2*math.Pi*frequency*t)))
		for c := range channels {
			samples[i*channels+c] = v
		}
	}

	data := make([]byte, len(samples)*2)
	utils.PutInt16s(data, samples)

	return data
}

// NewNoiseSource returns an in-memory source over Noise(f, frames, seed)
// together with the data it serves.
func NewNoiseSource(f audio.Format, frames int, seed uint64) (*audio.BufferSource, []byte) {
	data := Noise(f, frames, seed)
	src, err := audio.NewBufferSource(data, f.Rate, f.Width, f.Chans)
	if err != nil {
		panic(err)
	}

	return src, data
}

// NonSeekable hides the seeking capability of the wrapped source, like a
// live stream would.
type NonSeekable struct {
	audio.Source
}

func (NonSeekable) IsRewindable() bool      { return false }
func (NonSeekable) Rewind() error           { return audio.ErrNotRewindable }
func (NonSeekable) SetPosition(_ int) error { return audio.ErrNotRewindable }

// Counting records the calls made to the wrapped source.
type Counting struct {
	audio.Source

	Reads   int
	Opens   int
	Closes  int
	Rewinds int
	// Requested holds the frame count of every Read call.
	Requested []int
}

func (c *Counting) Open() error {
	c.Opens++
	return c.Source.Open()
}

func (c *Counting) Close() error {
	c.Closes++
	return c.Source.Close()
}

func (c *Counting) Rewind() error {
	c.Rewinds++
	return c.Source.Rewind()
}

func (c *Counting) Read(n int) ([]byte, error) {
	c.Reads++
	c.Requested = append(c.Requested, n)
	return c.Source.Read(n)
}
