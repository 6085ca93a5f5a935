// SPDX-License-Identifier: EPL-2.0

package utils

// Float32ToInt16 maps a normalized sample in [-1,1] to 16-bit PCM.
// Values outside the range are clamped.
func Float32ToInt16(x float32) int16 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	// 32767 keeps +1.0 from overflowing
	return int16(x * 32767.0)
}
