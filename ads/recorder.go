// SPDX-License-Identifier: EPL-2.0

package ads

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/ik5/audsrc/audio"
	"github.com/ik5/audsrc/observe"
)

// Recorder keeps a copy of every block read so the stream can be rewound
// even when the underlying source cannot seek.
//
// Rewind replaces the innermost audio source with one that replays the
// recording and then continues with the original data not read so far.
// A Limiter wrapped by the Recorder is reset by the swap, so the replayed
// stream has the same budget as the first pass.
type Recorder struct {
	DataSource

	data []byte
	// bytes returned since the last rewind
	pos int

	log     *slog.Logger
	metrics *observe.Metrics
}

func NewRecorder(ds DataSource, opts ...Option) (*Recorder, error) {
	if ds == nil {
		return nil, ErrNilSource
	}

	o := newOptions(opts)

	return &Recorder{
		DataSource: ds,
		log:        o.logger,
		metrics:    o.metrics,
	}, nil
}

// Inner returns the wrapped data source.
func (r *Recorder) Inner() DataSource { return r.DataSource }

// Recorded returns the bytes recorded so far. The slice must not be modified.
func (r *Recorder) Recorded() []byte { return r.data }

// IsRewindable is always true.
func (r *Recorder) IsRewindable() bool { return true }

func (r *Recorder) Read() ([]byte, error) {
	block, err := r.DataSource.Read()
	if err != nil {
		return nil, err
	}

	// only bytes past the end of the recording are new
	if end := r.pos + len(block); end > len(r.data) {
		r.data = append(r.data, block[max(len(r.data)-r.pos, 0):]...)
	}
	r.pos += len(block)

	return block, nil
}

// Rewind fails with audio.ErrNotOpen when the pipeline is not open.
func (r *Recorder) Rewind() error {
	if !r.DataSource.AudioSource().IsOpen() {
		return audio.ErrNotOpen
	}

	buf, err := audio.NewBufferSource(slices.Clip(r.data), r.SamplingRate(), r.SampleWidth(), r.Channels())
	if err != nil {
		return fmt.Errorf("building replay buffer: %w", err)
	}

	live := r.DataSource.AudioSource()
	if prev, ok := live.(*replaySource); ok {
		live = prev.live
	}

	replay := &replaySource{replay: buf, live: live}
	if err := replay.Open(); err != nil {
		return fmt.Errorf("opening replay buffer: %w", err)
	}
	if err := r.DataSource.SetAudioSource(replay); err != nil {
		return err
	}
	r.pos = 0

	r.log.Debug("rewound to recording", slog.Int("recorded_bytes", len(r.data)))
	r.metrics.RecordRewind("replay")

	return nil
}

// SetAudioSource swaps the innermost source and discards the recording.
func (r *Recorder) SetAudioSource(src audio.Source) error {
	if err := r.DataSource.SetAudioSource(src); err != nil {
		return err
	}
	r.data = nil
	r.pos = 0

	return nil
}

// ReplayBuffer returns the in-memory source holding the recording installed
// by the last Rewind, or nil before the first one.
func (r *Recorder) ReplayBuffer() *audio.BufferSource {
	if rs, ok := r.DataSource.AudioSource().(*replaySource); ok {
		return rs.replay
	}

	return nil
}
