// SPDX-License-Identifier: EPL-2.0

// Package utils holds the integer PCM normalization shared by the WAV
// and AIFF decoders.
package utils

// IntScale returns the magnitude of full scale for signed PCM of the
// given bit depth. Unknown depths are treated as 16-bit.
func IntScale(bitDepth int) float32 {
	switch bitDepth {
	case 8:
		return 128.0
	case 24:
		return 8388608.0
	case 32:
		return 2147483648.0
	default:
		return 32768.0
	}
}

// IntsToFloat32 normalizes signed PCM values of the given bit depth into
// dst and returns the number converted.
func IntsToFloat32(dst []float32, src []int, bitDepth int) int {
	scale := IntScale(bitDepth)
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = float32(src[i]) / scale
	}
	return n
}
