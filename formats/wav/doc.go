// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes PCM WAV files.
//
// The container is parsed with github.com/go-audio/wav. Decoded files are
// served as raw interleaved little-endian PCM bytes through an
// audio.PCMSource, so a block read from the source is a slice of the file's
// data chunk.
//
// # Supported Formats
//
//   - Integer PCM, including WAVE_FORMAT_EXTENSIBLE headers
//   - 8, 16, 24 and 32 bits per sample
//   - Any number of channels and any sample rate
//
// # Decoding WAV Files
//
//	file, _ := os.Open("audio.wav")
//	defer file.Close()
//
//	src, err := wav.Decoder{}.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//	_ = src.Open()
//	block, err := src.Read(160) // 160 frames
//
// Sources decoded from an *os.File or a bytes.Reader can be rewound and
// positioned. Other readers are loaded in memory first.
//
// # Writing WAV Files
//
// WritePCM writes raw PCM bytes with a canonical 44 byte header:
//
//	f := audio.Format{Rate: 16000, Width: 2, Chans: 1}
//	err := wav.WritePCM(out, f, data)
//
// # Error Handling
//
//   - ErrNotWavFile: the input has no RIFF/WAVE header
//   - ErrUnsupportedWavLayout: compressed or float data, or an unreadable fmt chunk
//   - ErrUnsupportedBitDepth: sample size is not a whole number of bytes
//   - ErrNoPCMData: the file has no data chunk
package wav
