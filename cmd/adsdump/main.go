// SPDX-License-Identifier: EPL-2.0

// Command adsdump reads an audio file block by block and reports what a
// data source pipeline returns. The blocks read can be written to a WAV
// file to listen to what a detector downstream would see.
//
// Usage:
//
//	adsdump -in speech.wav -block-dur 0.025 -hop-dur 0.01 -max-time 5 -out frames.wav
//	adsdump -config pipeline.yaml -record -replay
//
// A config file holds the same keys package config accepts. It cannot be
// combined with -block-dur, -hop-dur or -max-time.
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/ik5/audsrc"
	"github.com/ik5/audsrc/ads"
	"github.com/ik5/audsrc/audio"
	"github.com/ik5/audsrc/config"
	"github.com/ik5/audsrc/formats/wav"
)

var errUsage = errors.New("usage error")

type options struct {
	configPath string
	in         string
	blockDur   float64
	hopDur     float64
	maxTime    float64
	record     bool
	replay     bool
	out        string
	logLevel   string

	set map[string]bool
}

func parseFlags(args []string) (options, error) {
	var o options
	fs := flag.NewFlagSet("adsdump", flag.ContinueOnError)
	fs.StringVar(&o.configPath, "config", "", "YAML, TOML or JSON file with pipeline options")
	fs.StringVar(&o.in, "in", "", "input audio file (wav, aiff, mp3, ogg)")
	fs.Float64Var(&o.blockDur, "block-dur", config.DefaultBlockDur, "block duration in seconds")
	fs.Float64Var(&o.hopDur, "hop-dur", 0, "hop duration in seconds, 0 for no overlap")
	fs.Float64Var(&o.maxTime, "max-time", 0, "stop after this many seconds, 0 for no limit")
	fs.BoolVar(&o.record, "record", false, "record the stream so it can be replayed")
	fs.BoolVar(&o.replay, "replay", false, "rewind after the first pass and read again")
	fs.StringVar(&o.out, "out", "", "write the blocks read to this WAV file")
	fs.StringVar(&o.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	if err := fs.Parse(args); err != nil {
		return options{}, fmt.Errorf("%w: %w", errUsage, err)
	}

	o.set = map[string]bool{}
	fs.Visit(func(f *flag.Flag) { o.set[f.Name] = true })

	if o.configPath != "" && (o.set["block-dur"] || o.set["hop-dur"] || o.set["max-time"]) {
		return options{}, fmt.Errorf("%w: -config cannot be combined with -block-dur, -hop-dur or -max-time", errUsage)
	}
	if o.configPath == "" && o.in == "" {
		return options{}, fmt.Errorf("%w: -in or -config is required", errUsage)
	}

	return o, nil
}

func (o options) settings() (config.Settings, error) {
	if o.configPath != "" {
		s, err := config.LoadFile(o.configPath)
		if err != nil {
			return config.Settings{}, err
		}
		if o.in != "" {
			if s.Given(config.KeyFilename) || s.Given(config.KeyDataBuffer) {
				return config.Settings{}, fmt.Errorf("%w: -in and a source in %s",
					config.ErrDuplicateArgument, o.configPath)
			}
			s.Filename = o.in
		}
		s.Record = s.Record || o.record || o.replay
		return s, nil
	}

	params := map[string]any{
		config.KeyFilename: o.in,
		config.KeyRecord:   o.record || o.replay,
	}
	if o.set["block-dur"] {
		params[config.KeyBlockDur] = o.blockDur
	}
	if o.hopDur > 0 {
		params[config.KeyHopDur] = o.hopDur
	}
	if o.maxTime > 0 {
		params[config.KeyMaxTime] = o.maxTime
	}

	return config.Parse(params)
}

func newLogger(level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("%w: %w", errUsage, err)
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})), nil
}

func readPass(logger *slog.Logger, ds ads.DataSource, pass string) ([][]byte, error) {
	blocks, err := ads.ReadAll(ds)
	if err != nil {
		return nil, fmt.Errorf("%s pass: %w", pass, err)
	}

	var n int
	for _, b := range blocks {
		n += len(b)
	}
	frameSize := ds.SampleWidth() * ds.Channels()
	logger.Info("pass finished",
		slog.String("pass", pass),
		slog.Int("blocks", len(blocks)),
		slog.Int("bytes", n),
		slog.Float64("seconds", float64(n/frameSize)/float64(ds.SamplingRate())),
	)

	return blocks, nil
}

func run(args []string) error {
	o, err := parseFlags(args)
	if err != nil {
		return err
	}
	logger, err := newLogger(o.logLevel)
	if err != nil {
		return err
	}

	s, err := o.settings()
	if err != nil {
		return err
	}

	ds, err := audsrc.FromSettings(s, ads.WithLogger(logger))
	if err != nil {
		return err
	}
	defer ds.Close()

	if err := ds.Open(); err != nil {
		return err
	}
	logger.Info("reading",
		slog.Any("layers", ads.Layers(ds)),
		slog.Int("block_size", ds.BlockSize()),
		slog.Int("sampling_rate", ds.SamplingRate()),
		slog.Int("channels", ds.Channels()),
	)

	blocks, err := readPass(logger, ds, "first")
	if err != nil {
		return err
	}

	if o.replay {
		if err := ds.Rewind(); err != nil {
			return fmt.Errorf("rewind: %w", err)
		}
		if _, err := readPass(logger, ds, "replay"); err != nil {
			return err
		}
	}

	if o.out == "" {
		return nil
	}

	format := audio.Format{Rate: ds.SamplingRate(), Width: ds.SampleWidth(), Chans: ds.Channels()}
	if err := writeWAV(o.out, format, bytes.Join(blocks, nil)); err != nil {
		return err
	}
	logger.Info("wrote", slog.String("path", o.out))

	return nil
}

func writeWAV(path string, format audio.Format, data []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := wav.WritePCM(f, format, data); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}

	return nil
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "adsdump:", err)
		}
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
