// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ik5/audsrc/audio"
)

// WritePCM writes data, interleaved little-endian PCM laid out as f, as a
// WAV file with a canonical 44 byte header.
func WritePCM(w io.Writer, f audio.Format, data []byte) error {
	if err := f.Validate(); err != nil {
		return err
	}
	if len(data)%f.FrameSize() != 0 {
		return audio.ErrBufferNotAligned
	}

	numChannels := uint16(f.Chans)
	bitsPerSample := uint16(f.Width * 8)
	byteRate := uint32(f.Rate) * uint32(f.FrameSize())
	blockAlign := uint16(f.FrameSize())
	dataSize := uint32(len(data))
	riffSize := 36 + dataSize

	header := make([]byte, 44)

	// RIFF header (12 bytes)
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], riffSize)
	copy(header[8:12], "WAVE")

	// fmt chunk (24 bytes)
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16) // PCM fmt chunk size
	binary.LittleEndian.PutUint16(header[20:22], formatPCM)
	binary.LittleEndian.PutUint16(header[22:24], numChannels)
	binary.LittleEndian.PutUint32(header[24:28], uint32(f.Rate))
	binary.LittleEndian.PutUint32(header[28:32], byteRate)
	binary.LittleEndian.PutUint16(header[32:34], blockAlign)
	binary.LittleEndian.PutUint16(header[34:36], bitsPerSample)

	// data chunk header (8 bytes)
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], dataSize)

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("%w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}
