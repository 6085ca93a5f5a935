// SPDX-License-Identifier: EPL-2.0

package ads

import (
	"errors"

	"github.com/ik5/audsrc/audio"
)

var (
	ErrNilSource         = errors.New("audio source is nil")
	ErrInvalidBlockSize  = errors.New("block size must be positive")
	ErrInvalidHopSize    = errors.New("hop size must be positive and not greater than block size")
	ErrInvalidMaxSamples = errors.New("maximum number of samples must not be negative")

	// ErrNotRewindable is returned by Rewind when the innermost source cannot
	// seek and no Recorder is part of the pipeline.
	ErrNotRewindable = audio.ErrNotRewindable
)
