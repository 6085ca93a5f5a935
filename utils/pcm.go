// SPDX-License-Identifier: EPL-2.0

package utils

import "encoding/binary"

// PutInt16s writes samples as little-endian 16-bit PCM. dst must hold
// at least 2*len(samples) bytes.
func PutInt16s(dst []byte, samples []int16) {
	for i, s := range samples {
		binary.LittleEndian.PutUint16(dst[2*i:], uint16(s))
	}
}

// PutFloat32s converts normalized samples to little-endian 16-bit PCM.
// dst must hold at least 2*len(samples) bytes.
func PutFloat32s(dst []byte, samples []float32) {
	for i, s := range samples {
		binary.LittleEndian.PutUint16(dst[2*i:], uint16(Float32ToInt16(s)))
	}
}

// Int16s decodes little-endian 16-bit PCM. A trailing odd byte is ignored.
func Int16s(b []byte) []int16 {
	out := make([]int16, len(b)/2)
	for i := range out {
		out[i] = int16(binary.LittleEndian.Uint16(b[2*i:]))
	}

	return out
}

// PutInts writes samples as little-endian signed PCM of width bytes per
// sample, keeping the low width bytes of each value. dst must hold at least
// width*len(samples) bytes.
func PutInts(dst []byte, samples []int, width int) {
	for i, s := range samples {
		v := uint32(int32(s))
		for b := range width {
			dst[i*width+b] = byte(v >> (8 * b))
		}
	}
}
