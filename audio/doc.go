// SPDX-License-Identifier: EPL-2.0

// Package audio defines the byte-oriented audio source contract and its
// in-memory and raw PCM providers.
//
// # Source Interface
//
// A Source serves interleaved PCM frames:
//
//	type Source interface {
//	    Open() error
//	    Close() error
//	    IsOpen() bool
//	    Read(n int) ([]byte, error)
//	    Rewind() error
//	    SetPosition(frames int) error
//	    Position() int
//	    IsRewindable() bool
//	    SamplingRate() int
//	    SampleWidth() int
//	    Channels() int
//	}
//
// Read(n) returns n frames, that is n * SampleWidth() * Channels() bytes.
// Only the last read of a stream may be shorter. When nothing is left the
// source returns (nil, io.EOF); a zero-length block is never returned.
//
// # Providers
//
// BufferSource holds the whole stream in memory and is always rewindable:
//
//	src, _ := audio.NewBufferSource(data, 16000, 2, 1)
//	_ = src.Open()
//	block, err := src.Read(160) // 10 ms
//
// PCMSource reads raw PCM from any io.Reader. It can seek only when the
// reader is an io.Seeker, which is what the WAV decoder relies on.
//
// # Format Registry
//
// The registry maps a format key to a Decoder:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, _ := registry.Get("wav")
//
// # Error Handling
//
// End of stream is io.EOF. Other errors are the sentinels in this package
// (ErrNotRewindable, ErrNotOpen, ...) possibly wrapped; compare them with
// errors.Is.
package audio
