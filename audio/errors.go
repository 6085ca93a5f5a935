// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrNotRewindable    = errors.New("audio source is not rewindable")
	ErrNotOpen          = errors.New("audio source is not open")
	ErrInvalidPosition  = errors.New("position out of range")
	ErrInvalidFormat    = errors.New("sampling rate, sample width and channels must be positive")
	ErrBufferNotAligned = errors.New("data length must be a multiple of sample width * channels")
	ErrInvalidReadSize  = errors.New("number of frames to read must be positive")
)
