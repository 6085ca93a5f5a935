// SPDX-License-Identifier: EPL-2.0

package ads

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/ik5/audsrc/internal/audiotest"
)

// roundUp returns the smallest multiple of unit that is >= n.
func roundUp(n, unit int) int {
	if r := n % unit; r > 0 {
		return n + unit - r
	}
	return n
}

func TestLimiter_ReadLimit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		maxTime float64
		block   int
	}{
		{"exact multiple", 0.75, 160},
		{"rounded up to block", 1.191, 160},
		{"limit below one block", 0.001, 400},
		{"large blocks", 1.0, 1234},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src, data := noise(mono16k, 48000)
			ds := openPipeline(t, Config{
				Source:     src,
				BlockSize:  tt.block,
				MaxSamples: SamplesFromDuration(tt.maxTime, mono16k.Rate),
			})

			got := concat(readAll(t, ds))

			nominal := SamplesFromDuration(tt.maxTime, mono16k.Rate) * mono16k.FrameSize()
			want := roundUp(nominal, tt.block*mono16k.FrameSize())
			if len(got) != want {
				t.Errorf("read %d bytes, want %d", len(got), want)
			}
			if !bytes.Equal(got, data[:len(got)]) {
				t.Error("limited data differs from the source prefix")
			}
		})
	}
}

func TestLimiter_ExactDuration(t *testing.T) {
	t.Parallel()

	src, data := noise(mono16k, 32000)
	ds := openPipeline(t, Config{Source: src, BlockSize: 160, MaxSamples: 12000})

	got := concat(readAll(t, ds))
	if !bytes.Equal(got, data[:12000*2]) {
		t.Errorf("read %d bytes, want the first %d bytes of the source", len(got), 12000*2)
	}
}

func TestLimiter_ExhaustedDoesNotReadSource(t *testing.T) {
	t.Parallel()

	src, _ := noise(mono16k, 10000)
	counting := &audiotest.Counting{Source: src}

	base, _ := NewBase(counting, 100)
	l, err := NewLimiter(base, 250)
	if err != nil {
		t.Fatalf("NewLimiter() error = %v", err)
	}
	_ = l.Open()

	readAll(t, l)
	if counting.Reads != 3 {
		t.Fatalf("source read %d times, want 3", counting.Reads)
	}

	for range 3 {
		if _, err := l.Read(); err != io.EOF {
			t.Fatalf("Read() after limit error = %v, want io.EOF", err)
		}
	}
	if counting.Reads != 3 {
		t.Errorf("source read %d times after the limit, want 3", counting.Reads)
	}
	if l.BytesRead() != 600 || l.MaxBytes() != 500 {
		t.Errorf("BytesRead() = %d, MaxBytes() = %d, want 600 and 500", l.BytesRead(), l.MaxBytes())
	}
}

func TestLimiter_SourceShorterThanLimit(t *testing.T) {
	t.Parallel()

	src, data := noise(mono16k, 1000)
	ds := openPipeline(t, Config{Source: src, BlockSize: 300, MaxSamples: 16000})

	if got := concat(readAll(t, ds)); !bytes.Equal(got, data) {
		t.Errorf("read %d bytes, want all %d", len(got), len(data))
	}
}

func TestLimiter_RewindResetsCounter(t *testing.T) {
	t.Parallel()

	src, _ := noise(mono16k, 16000)
	ds := openPipeline(t, Config{Source: src, BlockSize: 160, MaxSamples: 1000})

	first := concat(readAll(t, ds))
	if err := ds.Rewind(); err != nil {
		t.Fatalf("Rewind() error = %v", err)
	}
	second := concat(readAll(t, ds))

	if !bytes.Equal(first, second) {
		t.Errorf("second pass read %d bytes, first pass %d", len(second), len(first))
	}
}

func TestLimiter_RewindNotRewindable(t *testing.T) {
	t.Parallel()

	src, _ := liveNoise(mono16k, 16000)
	ds := openPipeline(t, Config{Source: src, BlockSize: 160, MaxSamples: 1000})

	readN(t, ds, 2)
	if err := ds.Rewind(); !errors.Is(err, ErrNotRewindable) {
		t.Fatalf("Rewind() error = %v, want ErrNotRewindable", err)
	}

	l := ds.(*Limiter)
	if l.BytesRead() != 640 {
		t.Errorf("BytesRead() after failed Rewind() = %d, want 640", l.BytesRead())
	}
}

func TestNewLimiter_Errors(t *testing.T) {
	t.Parallel()

	if _, err := NewLimiter(nil, 10); !errors.Is(err, ErrNilSource) {
		t.Errorf("NewLimiter(nil) error = %v, want ErrNilSource", err)
	}

	src, _ := noise(mono16k, 10)
	base, _ := NewBase(src, 4)
	if _, err := NewLimiter(base, -1); !errors.Is(err, ErrInvalidMaxSamples) {
		t.Errorf("NewLimiter(-1) error = %v, want ErrInvalidMaxSamples", err)
	}
}
