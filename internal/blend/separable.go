package blend

// Separable blend functions for opaque channels.
//
// Each function receives the backdrop channel d (the colour already
// accumulated) and the source channel s (the colour just produced) and
// returns the composited channel. They follow the W3C Compositing and
// Blending Level 1 formulas with alpha fixed at 1.
//
// References:
//   - W3C Compositing and Blending Level 1: https://www.w3.org/TR/compositing-1/

// Multiply darkens: B(d, s) = d * s.
func Multiply(d, s byte) byte {
	return mulDiv255(d, s)
}

// Screen lightens: B(d, s) = 1 - (1-d) * (1-s).
func Screen(d, s byte) byte {
	return inv255(mulDiv255(inv255(d), inv255(s)))
}

// Overlay is HardLight with the layers swapped: it multiplies (doubled)
// where the backdrop is below mid-grey and screens (doubled) above it.
func Overlay(d, s byte) byte {
	if d < 128 {
		return clamp255(div255(2 * uint32(d) * uint32(s)))
	}
	return inv255(clamp255(div255(2 * uint32(inv255(d)) * uint32(inv255(s)))))
}

// Add sums both channels and saturates at 255.
func Add(d, s byte) byte {
	return addClamp(d, s)
}

// Lerp interpolates from a to b by t in [0, 256], where 256 selects b.
func Lerp(a, b byte, t uint32) byte {
	if t >= 256 {
		return b
	}
	return clamp255((uint32(a)*(256-t) + uint32(b)*t + 128) >> 8)
}
