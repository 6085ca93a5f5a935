// SPDX-License-Identifier: EPL-2.0

// Package mp3 provides MP3 audio file decoding.
//
// This package uses github.com/hajimehoshi/go-mp3 to decode MP3 files and
// exposes the decoded stream as PCM bytes through an audio.Source.
//
// # Output Format
//
// go-mp3 always produces:
//   - 16-bit signed little-endian samples
//   - 2 channels (mono files are duplicated into both channels)
//   - the sample rate of the file (typically 44.1kHz or 48kHz)
//
// # Decoding MP3 Files
//
//	decoder := mp3.Decoder{}
//	file, _ := os.Open("audio.mp3")
//	source, err := decoder.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//
//	_ = source.Open()
//	block, err := source.Read(441) // 10 ms, 1764 bytes
//
// # Seeking
//
// When the input implements io.Seeker (an *os.File, a *bytes.Reader) the
// source can be rewound and positioned. Otherwise Rewind and SetPosition
// fail with audio.ErrNotRewindable.
//
// # Limitations
//
// MP3 writing is not supported (decoding only).
package mp3
