// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package soft3d

import (
	"fmt"
	"image/color"
	"math"

	"github.com/gogpu/soft3d/internal/blend"
)

// Color is an opaque 8-bit-per-channel RGB colour.
//
// Every arithmetic method saturates: results are clamped to [0, 255] and
// never wrap.
type Color struct {
	R, G, B uint8
}

// RGB creates a colour from 8-bit channels.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// RGBf creates a colour from channels in [0, 1]. Out-of-range values clamp.
func RGBf(r, g, b float32) Color {
	return Color{R: unitToByte(r), G: unitToByte(g), B: unitToByte(b)}
}

// ColorFromHex creates a colour from a packed 0xRRGGBB value.
// Bits above the low 24 are ignored.
func ColorFromHex(hex uint32) Color {
	return Color{
		R: uint8(hex >> 16),
		G: uint8(hex >> 8),
		B: uint8(hex),
	}
}

// ParseHex parses "#RGB", "#RRGGBB" or the same forms without '#'.
func ParseHex(s string) (Color, error) {
	hex := s
	if hex != "" && hex[0] == '#' {
		hex = hex[1:]
	}

	var r, g, b uint32
	var ok bool
	switch len(hex) {
	case 3:
		ok = parseHex(hex[0:1], &r) && parseHex(hex[1:2], &g) && parseHex(hex[2:3], &b)
		r, g, b = r*17, g*17, b*17
	case 6:
		ok = parseHex(hex[0:2], &r) && parseHex(hex[2:4], &g) && parseHex(hex[4:6], &b)
	}
	if !ok {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return Color{R: uint8(r), G: uint8(g), B: uint8(b)}, nil
}

// parseHex accumulates hex digits into val, reporting whether all were valid.
func parseHex(s string, val *uint32) bool {
	*val = 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		*val *= 16
		switch {
		case '0' <= c && c <= '9':
			*val += uint32(c - '0')
		case 'a' <= c && c <= 'f':
			*val += uint32(c - 'a' + 10)
		case 'A' <= c && c <= 'F':
			*val += uint32(c - 'A' + 10)
		default:
			return false
		}
	}
	return true
}

// Hex returns the colour packed as 0xRRGGBB.
func (c Color) Hex() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// String returns the colour as "#rrggbb".
func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseHex(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// RGBA implements the color.Color interface. The colour is always opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) * 0x101
	g = uint32(c.G) * 0x101
	b = uint32(c.B) * 0x101
	return r, g, b, 0xffff
}

// ColorFromStd converts a standard color.Color, compositing it over black.
func ColorFromStd(c color.Color) Color {
	r, g, b, _ := c.RGBA()
	return Color{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
}

// Scale multiplies every channel by f. Scale(1) returns c unchanged and
// Scale(0) returns black; negative and NaN factors give black.
func (c Color) Scale(f float32) Color {
	if !(f > 0) {
		return Black
	}
	return Color{
		R: scaleChannel(c.R, f),
		G: scaleChannel(c.G, f),
		B: scaleChannel(c.B, f),
	}
}

// Lerp interpolates from c towards to by t. t is clamped to [0, 1].
func (c Color) Lerp(to Color, t float32) Color {
	var w uint32
	switch {
	case !(t > 0):
		return c
	case t >= 1:
		return to
	default:
		w = uint32(t*256 + 0.5)
	}
	return Color{
		R: blend.Lerp(c.R, to.R, w),
		G: blend.Lerp(c.G, to.G, w),
		B: blend.Lerp(c.B, to.B, w),
	}
}

// Add sums two colours channel-wise, saturating at 255.
func (c Color) Add(o Color) Color {
	return Color{
		R: blend.Add(c.R, o.R),
		G: blend.Add(c.G, o.G),
		B: blend.Add(c.B, o.B),
	}
}

// Mul modulates c by o channel-wise (c*o/255).
func (c Color) Mul(o Color) Color {
	return Color{
		R: blend.Multiply(c.R, o.R),
		G: blend.Multiply(c.G, o.G),
		B: blend.Multiply(c.B, o.B),
	}
}

// Gradient maps t in [0, 1] onto a piecewise-linear ramp through palette.
// An empty palette yields white and a single colour is returned as-is.
func Gradient(palette []Color, t float32) Color {
	switch len(palette) {
	case 0:
		return White
	case 1:
		return palette[0]
	}
	if !(t > 0) {
		return palette[0]
	}
	if t >= 1 {
		return palette[len(palette)-1]
	}
	pos := t * float32(len(palette)-1)
	i := int(pos)
	if i >= len(palette)-1 {
		return palette[len(palette)-1]
	}
	return palette[i].Lerp(palette[i+1], pos-float32(i))
}

// HSL creates a colour from hue [0, 360), saturation [0, 1] and
// lightness [0, 1].
func HSL(h, s, l float32) Color {
	hh := math.Mod(float64(h), 360)
	if hh < 0 {
		hh += 360
	}
	hh /= 360

	sf, lf := float64(s), float64(l)
	c := (1 - math.Abs(2*lf-1)) * sf
	x := c * (1 - math.Abs(math.Mod(hh*6, 2)-1))
	m := lf - c/2

	var r, g, b float64
	switch {
	case hh < 1.0/6:
		r, g, b = c, x, 0
	case hh < 2.0/6:
		r, g, b = x, c, 0
	case hh < 3.0/6:
		r, g, b = 0, c, x
	case hh < 4.0/6:
		r, g, b = 0, x, c
	case hh < 5.0/6:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return RGBf(float32(r+m), float32(g+m), float32(b+m))
}

// scaleChannel multiplies a channel by a positive factor with rounding
// and saturation.
func scaleChannel(v uint8, f float32) uint8 {
	x := float32(v)*f + 0.5
	if x >= 255 {
		return 255
	}
	return uint8(x)
}

// unitToByte maps [0, 1] to [0, 255] with rounding; NaN maps to 0.
func unitToByte(v float32) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

// Common colours
var (
	Black   = RGB(0, 0, 0)
	White   = RGB(255, 255, 255)
	Red     = RGB(255, 0, 0)
	Green   = RGB(0, 255, 0)
	Blue    = RGB(0, 0, 255)
	Yellow  = RGB(255, 255, 0)
	Cyan    = RGB(0, 255, 255)
	Magenta = RGB(255, 0, 255)
	Pink    = RGB(255, 105, 180)
	Orange  = RGB(255, 140, 0)
	Gray    = RGB(128, 128, 128)
)
