// SPDX-License-Identifier: EPL-2.0

package ads

import (
	"bytes"
	"io"
	"testing"

	"github.com/ik5/audsrc/audio"
	"github.com/ik5/audsrc/internal/audiotest"
)

var mono16k = audio.Format{Rate: 16000, Width: 2, Chans: 1}

// noise returns an in-memory source of frames frames and the bytes it holds.
func noise(f audio.Format, frames int) (*audio.BufferSource, []byte) {
	return audiotest.NewNoiseSource(f, frames, uint64(frames))
}

// liveNoise is like noise but the source cannot seek.
func liveNoise(f audio.Format, frames int) (audio.Source, []byte) {
	src, data := noise(f, frames)
	return audiotest.NonSeekable{Source: src}, data
}

func openPipeline(t *testing.T, cfg Config, opts ...Option) DataSource {
	t.Helper()

	ds, err := New(cfg, opts...)
	if err != nil {
		t.Fatalf("New(%+v) error = %v", cfg, err)
	}
	if err := ds.Open(); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = ds.Close() })

	return ds
}

func readAll(t *testing.T, ds DataSource) [][]byte {
	t.Helper()

	blocks, err := ReadAll(ds)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}

	return blocks
}

func readN(t *testing.T, ds DataSource, n int) [][]byte {
	t.Helper()

	var blocks [][]byte
	for i := range n {
		b, err := ds.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Read() #%d error = %v", i, err)
		}
		blocks = append(blocks, b)
	}

	return blocks
}

func concat(blocks [][]byte) []byte {
	return bytes.Join(blocks, nil)
}

// slidingFrames cuts data the way an Overlap is expected to.
func slidingFrames(data []byte, frameSize, block, hop int) [][]byte {
	total := len(data) / frameSize
	if total == 0 {
		return nil
	}

	end := min(block, total)
	frames := [][]byte{data[:end*frameSize]}
	if end < block {
		return frames
	}

	for i := 1; (i-1)*hop+block < total; i++ {
		start := i * hop
		end := min(start+block, total)
		frames = append(frames, data[start*frameSize:end*frameSize])
		if end < start+block {
			break
		}
	}

	return frames
}

// positionedFrames reads count frames of block samples from a fresh buffer
// source, moving to (i+1)*hop after frame i.
func positionedFrames(t *testing.T, data []byte, f audio.Format, block, hop, count int) [][]byte {
	t.Helper()

	src, err := audio.NewBufferSource(data, f.Rate, f.Width, f.Chans)
	if err != nil {
		t.Fatalf("NewBufferSource() error = %v", err)
	}
	_ = src.Open()

	frames := make([][]byte, 0, count)
	for i := range count {
		b, err := src.Read(block)
		if err != nil {
			t.Fatalf("reference Read() #%d error = %v", i, err)
		}
		frames = append(frames, b)
		if err := src.SetPosition((i + 1) * hop); err != nil {
			t.Fatalf("reference SetPosition() error = %v", err)
		}
	}

	return frames
}

func compareFrames(t *testing.T, got, want [][]byte) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("got %d frames, want %d", len(got), len(want))
	}
	for i := range want {
		if !bytes.Equal(got[i], want[i]) {
			t.Fatalf("frame %d differs: got %d bytes, want %d bytes", i, len(got[i]), len(want[i]))
		}
	}
}

// emptyReads returns zero-length blocks instead of io.EOF.
type emptyReads struct {
	audio.Source
}

func (emptyReads) Read(int) ([]byte, error) { return []byte{}, nil }
