// SPDX-License-Identifier: EPL-2.0

// Package vorbis provides Ogg Vorbis audio file decoding.
//
// This package uses github.com/jfreymuth/oggvorbis to decode Ogg Vorbis files.
// The decoder produces normalized float32 samples; the source converts them
// to 16-bit little-endian PCM.
//
// # Decoding Vorbis Files
//
//	decoder := vorbis.Decoder{}
//	file, _ := os.Open("audio.ogg")
//	source, err := decoder.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//
//	_ = source.Open()
//	block, err := source.Read(480) // 10 ms at 48 kHz
//
// # Output Format
//
//   - Sample format: 16-bit signed little-endian, values outside [-1, 1]
//     are clamped
//   - Channels: depends on file, interleaved [L0, R0, L1, R1, ...]
//   - Sample rate: depends on file (commonly 44.1kHz or 48kHz)
//
// # Seeking
//
// Sources decoded from an io.Seeker can be rewound and positioned by frame.
//
// # Limitations
//
// Vorbis encoding is not supported (decoding only).
package vorbis
