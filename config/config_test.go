// SPDX-License-Identifier: EPL-2.0

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ik5/audsrc/ads"
	"github.com/ik5/audsrc/audio"
)

const signal = "ABCDEFGHIJKLMNOPQRSTUVWXYZ012345"

func bufferParams(extra map[string]any) map[string]any {
	p := map[string]any{
		"data_buffer":   signal,
		"sampling_rate": 16,
		"sample_width":  2,
		"channels":      1,
	}
	for k, v := range extra {
		p[k] = v
	}

	return p
}

func signalSource(t *testing.T) audio.Source {
	t.Helper()

	src, err := audio.NewBufferSource([]byte(signal), 16, 2, 1)
	if err != nil {
		t.Fatal(err)
	}

	return src
}

func TestParse_Duplicates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		params map[string]any
	}{
		{"sampling rate", map[string]any{"db": signal, "sr": 16, "sampling_rate": 16}},
		{"sample width", map[string]any{"db": signal, "sw": 2, "sample_width": 2}},
		{"channels", map[string]any{"db": signal, "ch": 1, "channels": 1}},
		{"block size", map[string]any{"db": signal, "bs": 4, "block_size": 4}},
		{"block duration", map[string]any{"db": signal, "bd": 4, "block_dur": 4}},
		{"block size and duration", map[string]any{"db": signal, "bd": 4, "bs": 12}},
		{"hop duration", map[string]any{"db": signal, "bd": 0.75, "hd": 0.5, "hop_dur": 0.5}},
		{"hop size and duration", map[string]any{"db": signal, "bs": 8, "hs": 4, "hd": 1}},
		{"filename", map[string]any{"fn": "a.wav", "filename": "a.wav"}},
		{"data buffer", map[string]any{"data_buffer": signal, "db": signal}},
		{"filename and data buffer", map[string]any{"fn": "a.wav", "db": signal}},
		{"max time", map[string]any{"db": signal, "mt": true, "max_time": true}},
		{"record", map[string]any{"db": signal, "rec": true, "record": true}},
		{"case insensitive", map[string]any{"db": signal, "BS": 4, "block_size": 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := Parse(tt.params); !errors.Is(err, ErrDuplicateArgument) {
				t.Errorf("Parse() error = %v, want ErrDuplicateArgument", err)
			}
		})
	}
}

func TestParse_Aliases(t *testing.T) {
	t.Parallel()

	s, err := Parse(map[string]any{
		"db":  signal,
		"sr":  16,
		"sw":  2,
		"ch":  1,
		"bs":  5,
		"hs":  4,
		"mt":  0.8,
		"rec": true,
	})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if string(s.DataBuffer) != signal {
		t.Errorf("DataBuffer = %q, want %q", s.DataBuffer, signal)
	}
	if got := s.BufferFormat(); got != (audio.Format{Rate: 16, Width: 2, Chans: 1}) {
		t.Errorf("BufferFormat() = %+v", got)
	}
	if s.BlockSize != 5 || s.HopSize != 4 || s.MaxTime != 0.8 || !s.Record {
		t.Errorf("Settings = %+v", s)
	}
	for _, k := range []string{"data_buffer", "sampling_rate", "block_size", "hs", "rec"} {
		if !s.Given(k) {
			t.Errorf("Given(%q) = false", k)
		}
	}
	if s.Given("filename") || s.Given("block_dur") {
		t.Error("Given() reports an option that was not supplied")
	}
}

func TestParse_Defaults(t *testing.T) {
	t.Parallel()

	s, err := Parse(map[string]any{"fn": "speech.wav"})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if s.Filename != "speech.wav" {
		t.Errorf("Filename = %q, want speech.wav", s.Filename)
	}
	if s.BlockDur != DefaultBlockDur {
		t.Errorf("BlockDur = %v, want %v", s.BlockDur, DefaultBlockDur)
	}
	want := audio.Format{Rate: DefaultSamplingRate, Width: DefaultSampleWidth, Chans: DefaultChannels}
	if got := s.BufferFormat(); got != want {
		t.Errorf("BufferFormat() = %+v, want %+v", got, want)
	}
	if s.Record || s.MaxTime != 0 || s.HopSize != 0 {
		t.Errorf("Settings = %+v, want no record, limit or hop", s)
	}
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		params map[string]any
		want   error
	}{
		{"unknown key", map[string]any{"db": signal, "block": 4}, ErrUnknownArgument},
		{"bad block size", map[string]any{"db": signal, "bs": "eight"}, ErrInvalidArgument},
		{"bad record", map[string]any{"db": signal, "rec": "sometimes"}, ErrInvalidArgument},
		{"bad data buffer", map[string]any{"db": 42}, ErrInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := Parse(tt.params); !errors.Is(err, tt.want) {
				t.Errorf("Parse() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSettings_Config(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		params map[string]any
		want   ads.Config
	}{
		{"block size", map[string]any{"bs": 8}, ads.Config{BlockSize: 8}},
		{"block duration", map[string]any{"bd": 0.75}, ads.Config{BlockSize: 12}},
		{"hop duration", map[string]any{"bd": 0.75, "hd": 0.5}, ads.Config{BlockSize: 12, HopSize: 8}},
		{"hop size", map[string]any{"bs": 5, "hs": 4}, ads.Config{BlockSize: 5, HopSize: 4}},
		{"max time", map[string]any{"bs": 5, "mt": 0.8}, ads.Config{BlockSize: 5, MaxSamples: 13}},
		{"record", map[string]any{"bs": 5, "rec": true}, ads.Config{BlockSize: 5, Record: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s, err := Parse(bufferParams(tt.params))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}

			src := signalSource(t)
			got, err := s.Config(src)
			if err != nil {
				t.Fatalf("Config() error = %v", err)
			}

			tt.want.Source = src
			if got != tt.want {
				t.Errorf("Config() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSettings_ConfigDefaultBlock(t *testing.T) {
	t.Parallel()

	s, err := Parse(map[string]any{"fn": "speech.wav", "block_dur": 0.025, "hop_dur": 0.015})
	if err != nil {
		t.Fatal(err)
	}

	src, err := audio.NewBufferSource(nil, 16000, 2, 1)
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := s.Config(src)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.BlockSize != 400 || cfg.HopSize != 240 {
		t.Errorf("block/hop = %d/%d, want 400/240", cfg.BlockSize, cfg.HopSize)
	}

	s, _ = Parse(map[string]any{"fn": "speech.wav"})
	if cfg, _ := s.Config(src); cfg.BlockSize != 160 || cfg.HopSize != 0 {
		t.Errorf("default block/hop = %d/%d, want 160/0", cfg.BlockSize, cfg.HopSize)
	}
}

func TestSettings_ConfigLowRate(t *testing.T) {
	t.Parallel()

	src, err := audio.NewBufferSource(nil, 16, 2, 1)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		params map[string]any
		block  int
	}{
		{"default duration", map[string]any{"sr": 16}, 1},
		{"given duration", map[string]any{"sr": 16, "bd": 0.01}, 0},
		{"given size", map[string]any{"sr": 16, "bs": 0}, 0},
		{"longer duration", map[string]any{"sr": 16, "bd": 0.5}, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s, err := Parse(tt.params)
			if err != nil {
				t.Fatal(err)
			}
			cfg, err := s.Config(src)
			if err != nil {
				t.Fatalf("Config() error = %v", err)
			}
			if cfg.BlockSize != tt.block {
				t.Errorf("BlockSize = %d, want %d", cfg.BlockSize, tt.block)
			}
		})
	}
}

func TestSettings_ConfigMaxTimeBelowOneSample(t *testing.T) {
	t.Parallel()

	src, err := audio.NewBufferSource(nil, 16000, 2, 1)
	if err != nil {
		t.Fatal(err)
	}

	s, _ := Parse(map[string]any{"mt": 0.00001})
	if _, err := s.Config(src); !errors.Is(err, ads.ErrInvalidMaxSamples) {
		t.Errorf("Config() error = %v, want ErrInvalidMaxSamples", err)
	}

	s, _ = Parse(map[string]any{"mt": 0.0001})
	cfg, err := s.Config(src)
	if err != nil {
		t.Fatalf("Config() error = %v", err)
	}
	if cfg.MaxSamples != 2 {
		t.Errorf("MaxSamples = %d, want 2", cfg.MaxSamples)
	}
}

func TestSettings_ConfigErrors(t *testing.T) {
	t.Parallel()

	s, _ := Parse(bufferParams(map[string]any{"bs": 4, "hs": 0}))
	if _, err := s.Config(signalSource(t)); !errors.Is(err, ads.ErrInvalidHopSize) {
		t.Errorf("Config() with zero hop error = %v, want ErrInvalidHopSize", err)
	}

	s, _ = Parse(bufferParams(map[string]any{"bs": 4, "mt": -1}))
	if _, err := s.Config(signalSource(t)); !errors.Is(err, ads.ErrInvalidMaxSamples) {
		t.Errorf("Config() with negative max time error = %v, want ErrInvalidMaxSamples", err)
	}

	if _, err := s.Config(nil); !errors.Is(err, ErrNoSource) {
		t.Errorf("Config(nil) error = %v, want ErrNoSource", err)
	}
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	write := func(name, body string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
			t.Fatal(err)
		}
		return path
	}

	yml := write("pipeline.yaml", "fn: speech.wav\nbd: 0.025\nhd: 0.01\nmt: 5\nrec: true\n")
	s, err := LoadFile(yml)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if s.Filename != "speech.wav" || s.BlockDur != 0.025 || s.HopDur != 0.01 || s.MaxTime != 5 || !s.Record {
		t.Errorf("LoadFile() = %+v", s)
	}

	dup := write("dup.json", `{"bs": 160, "block_dur": 0.01}`)
	if _, err := LoadFile(dup); !errors.Is(err, ErrDuplicateArgument) {
		t.Errorf("LoadFile(duplicate) error = %v, want ErrDuplicateArgument", err)
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("LoadFile(missing) error = nil")
	}
}
