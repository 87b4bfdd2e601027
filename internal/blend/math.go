// Package blend provides fast math utilities for alpha blending.
//
// The div255 family of functions avoid expensive integer division by using
// bit shifts and addition. These are critical for performance as mulDiv255
// is called for every pixel in every blend operation.
//
// References:
//   - Alpha blending without division: https://arxiv.org/abs/2202.02864
//   - Alvy Ray Smith's technical memos: http://alvyray.com/Memos/
package blend

// div255 divides x by 255 using fast shift approximation.
//
// Formula: (x + 255) >> 8
//
// This is ~5x faster than integer division. The maximum error is +1
// for some input values, which is imperceptible in alpha blending.
func div255(x uint16) uint16 {
	return (x + 255) >> 8
}

// mulDiv255 multiplies two bytes and divides by 255 using fast approximation.
func mulDiv255(a, b byte) byte {
	return byte(div255(uint16(a) * uint16(b)))
}

// addDiv255 adds two bytes, clamping the sum to 255.
func addDiv255(a, b byte) byte {
	sum := uint16(a) + uint16(b)
	if sum > 255 {
		return 255
	}
	return byte(sum)
}

// minByte returns the smaller of two bytes.
func minByte(a, b byte) byte {
	if a < b {
		return a
	}
	return b
}

// maxByte returns the larger of two bytes.
func maxByte(a, b byte) byte {
	if a > b {
		return a
	}
	return b
}
