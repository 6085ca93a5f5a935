// SPDX-License-Identifier: EPL-2.0

// Package aiff provides AIFF (Audio Interchange File Format) decoding.
//
// This package uses github.com/go-audio/aiff to decode AIFF files and
// serves the samples as little-endian PCM bytes, the same layout the wav
// package produces, so pipelines do not need to care about byte order.
//
// # Supported Formats
//
//   - Uncompressed AIFF with 8, 16, 24 or 32 bit samples
//   - Any number of channels and any sample rate
//
// AIFF-C (compressed) files are rejected.
//
// # Decoding AIFF Files
//
//	file, _ := os.Open("audio.aif")
//	defer file.Close()
//
//	src, err := aiff.Decoder{}.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//	_ = src.Open()
//	block, err := src.Read(441) // 10 ms at 44.1 kHz
//
// # Limitations
//
// The go-audio decoder only reads forward: sources cannot be rewound or
// positioned and return audio.ErrNotRewindable. Wrap them in a recording
// pipeline (ads.Config.Record) to replay a stream.
package aiff
