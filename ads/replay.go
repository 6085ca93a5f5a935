// SPDX-License-Identifier: EPL-2.0

package ads

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/audsrc/audio"
)

// replaySource serves recorded bytes first and then keeps reading the
// original source where the recording stopped.
type replaySource struct {
	replay *audio.BufferSource
	live   audio.Source

	liveFrames int
}

func (r *replaySource) Open() error {
	if err := r.replay.Open(); err != nil {
		return fmt.Errorf("%w", err)
	}
	if !r.live.IsOpen() {
		if err := r.live.Open(); err != nil {
			return fmt.Errorf("%w", err)
		}
	}

	return nil
}

func (r *replaySource) Close() error {
	_ = r.replay.Close()
	if err := r.live.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

func (r *replaySource) IsOpen() bool { return r.replay.IsOpen() }

func (r *replaySource) Read(n int) ([]byte, error) {
	data, err := r.replay.Read(n)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	fs := r.replay.FrameSize()
	if len(data) == n*fs {
		return data, nil
	}

	more, err := r.live.Read(n - len(data)/fs)
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return nil, err
		}
		if len(data) == 0 {
			return nil, io.EOF
		}
		return data, nil
	}
	r.liveFrames += len(more) / fs

	return append(data, more...), nil
}

// Data already pulled from the live source is only held by the recorder,
// which builds a fresh replaySource on every rewind.
func (r *replaySource) IsRewindable() bool      { return false }
func (r *replaySource) Rewind() error           { return audio.ErrNotRewindable }
func (r *replaySource) SetPosition(_ int) error { return audio.ErrNotRewindable }

func (r *replaySource) Position() int     { return r.replay.Position() + r.liveFrames }
func (r *replaySource) SamplingRate() int { return r.replay.SamplingRate() }
func (r *replaySource) SampleWidth() int  { return r.replay.SampleWidth() }
func (r *replaySource) Channels() int     { return r.replay.Channels() }
