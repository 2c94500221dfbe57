package common

import "github.com/chewxy/math32"

// Coalesce returns the first non-zero value, used for option and flag fallbacks.
//
// Parameters:
//   - values: candidate values in priority order
//
// Returns:
//   - T: the first non-zero value, or the zero value if all are zero
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}

// HexToRGB converts a 0xRRGGBB color to normalized float components.
//
// Parameters:
//   - hex: the packed color
//
// Returns:
//   - [3]float32: red, green and blue in [0, 1]
func HexToRGB(hex uint32) [3]float32 {
	return [3]float32{
		float32((hex>>16)&0xff) / 255,
		float32((hex>>8)&0xff) / 255,
		float32(hex&0xff) / 255,
	}
}

// RGBToHex packs normalized color components into 0xRRGGBB, clamping each channel.
//
// Parameters:
//   - rgb: red, green and blue in [0, 1]
//
// Returns:
//   - uint32: the packed color
func RGBToHex(rgb [3]float32) uint32 {
	var hex uint32
	for _, c := range rgb {
		v := math32.Round(math32.Max(0, math32.Min(1, c)) * 255)
		hex = hex<<8 | uint32(v)
	}
	return hex
}
