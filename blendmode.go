// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package soft3d

import (
	"fmt"
	"strings"

	"github.com/gogpu/soft3d/internal/blend"
)

// BlendMode is the rule for combining a layer's output with the colour
// already accumulated for a fragment.
type BlendMode uint8

const (
	// BlendReplace discards the accumulated colour.
	BlendReplace BlendMode = iota

	// BlendNormal is "source over" without coverage. Colours carry no
	// alpha channel, so it currently behaves exactly like BlendReplace;
	// it is kept distinct so stacks can be written against future alpha
	// compositing.
	BlendNormal

	// BlendScreen lightens: 255 - (255-dst)*(255-src)/255 per channel.
	BlendScreen

	// BlendOverlay multiplies (doubled) below mid-grey and screens
	// (doubled) above it, keyed on the accumulated colour.
	BlendOverlay

	// BlendMultiply darkens: dst*src/255 per channel.
	BlendMultiply

	// BlendAdd sums both colours, saturating at white.
	BlendAdd
)

var blendModeNames = [...]string{
	BlendReplace:  "replace",
	BlendNormal:   "normal",
	BlendScreen:   "screen",
	BlendOverlay:  "overlay",
	BlendMultiply: "multiply",
	BlendAdd:      "add",
}

// String returns the lower-case name of the mode.
func (m BlendMode) String() string {
	if int(m) < len(blendModeNames) {
		return blendModeNames[m]
	}
	return fmt.Sprintf("BlendMode(%d)", m)
}

// ParseBlendMode returns the mode named s (case-insensitive).
func ParseBlendMode(s string) (BlendMode, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range blendModeNames {
		if n == name {
			return BlendMode(i), nil
		}
	}
	return 0, fmt.Errorf("soft3d: unknown blend mode %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (m BlendMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *BlendMode) UnmarshalText(text []byte) error {
	parsed, err := ParseBlendMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Blend composites src over the accumulated colour c using mode.
// Unknown modes fall back to BlendReplace.
func (c Color) Blend(src Color, mode BlendMode) Color {
	var f func(d, s byte) byte
	switch mode {
	case BlendScreen:
		f = blend.Screen
	case BlendOverlay:
		f = blend.Overlay
	case BlendMultiply:
		f = blend.Multiply
	case BlendAdd:
		f = blend.Add
	default:
		return src
	}
	return Color{
		R: f(c.R, src.R),
		G: f(c.G, src.G),
		B: f(c.B, src.B),
	}
}
