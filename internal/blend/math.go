// Package blend provides exact integer math for compositing 8-bit channels.
//
// All helpers operate on opaque channels in [0, 255] and never wrap: every
// result saturates to the byte range.
//
// References:
//   - Alvy Ray Smith's technical memos: http://alvyray.com/Memos/
package blend

// div255 divides x by 255 with rounding, without using division.
//
// Formula: ((x + 128) + ((x + 128) >> 8)) >> 8
//
// This is Jim Blinn's variant of Alvy Ray Smith's formula. It is exact
// (round to nearest) for every product of two bytes.
func div255(x uint32) uint32 {
	t := x + 128
	return (t + (t >> 8)) >> 8
}

// mulDiv255 multiplies two bytes and divides by 255 with rounding.
func mulDiv255(a, b byte) byte {
	return byte(div255(uint32(a) * uint32(b)))
}

// inv255 computes 255 - x.
func inv255(x byte) byte {
	return 255 - x
}

// clamp255 clamps a uint32 to byte range [0, 255].
func clamp255(x uint32) byte {
	if x > 255 {
		return 255
	}
	return byte(x)
}

// addClamp adds two bytes and clamps to 255.
func addClamp(a, b byte) byte {
	return clamp255(uint32(a) + uint32(b))
}
