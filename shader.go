// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package soft3d

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/soft3d/noise"
)

// ShaderKind identifies a shader variant.
type ShaderKind uint8

const (
	// ShaderBaseColor outputs the first palette colour.
	ShaderBaseColor ShaderKind = iota
	// ShaderIntensity scales the running colour by Fragment.Intensity.
	ShaderIntensity
	// ShaderMovingStripes alternates two palette colours in animated bands.
	ShaderMovingStripes
	// ShaderFractal maps fractal noise onto the palette.
	ShaderFractal
	// ShaderCellular maps cellular noise onto the palette.
	ShaderCellular
	// ShaderCloud maps cloud noise onto the palette.
	ShaderCloud
)

var shaderKindNames = [...]string{
	ShaderBaseColor:     "base_color",
	ShaderIntensity:     "intensity",
	ShaderMovingStripes: "moving_stripes",
	ShaderFractal:       "fractal",
	ShaderCellular:      "cellular",
	ShaderCloud:         "cloud",
}

// String returns the snake_case name of the kind.
func (k ShaderKind) String() string {
	if int(k) < len(shaderKindNames) {
		return shaderKindNames[k]
	}
	return fmt.Sprintf("ShaderKind(%d)", k)
}

// ParseShaderKind returns the kind named s. Matching ignores case, '-'
// and '_', so "MovingStripes" and "moving-stripes" both work.
func ParseShaderKind(s string) (ShaderKind, error) {
	name := canonicalName(s)
	for i, n := range shaderKindNames {
		if canonicalName(n) == name {
			return ShaderKind(i), nil
		}
	}
	return 0, fmt.Errorf("soft3d: unknown shader kind %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (k ShaderKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *ShaderKind) UnmarshalText(text []byte) error {
	parsed, err := ParseShaderKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

func canonicalName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("_", "", "-", "", " ", "").Replace(s)
}

// Shader is one variant from the closed set of fragment shaders together
// with its parameters. Fields that a kind does not use are ignored.
type Shader struct {
	Kind ShaderKind

	// Speed scales Uniforms.Time for animated kinds.
	Speed float32

	// StripeWidth is the band width of ShaderMovingStripes in object units.
	StripeWidth float32

	// Zoom scales the object-space position before sampling noise.
	// Zero means 1.
	Zoom float32

	// Noise holds the fractal parameters of the noise kinds.
	Noise noise.Params
}

// BaseColor returns a shader that outputs Palette[0].
func BaseColor() Shader {
	return Shader{Kind: ShaderBaseColor}
}

// Intensity returns a shader that scales the running colour by the
// fragment's lighting intensity.
func Intensity() Shader {
	return Shader{Kind: ShaderIntensity}
}

// MovingStripes returns a shader that picks Palette[0] where
// sin((y + time*speed) / width * π) >= 0 and Palette[1] elsewhere, with y
// the fragment's object-space height.
func MovingStripes(speed, width float32) Shader {
	return Shader{Kind: ShaderMovingStripes, Speed: speed, StripeWidth: width}
}

// Fractal returns a fractal-noise shader.
func Fractal(zoom, speed float32, p noise.Params) Shader {
	return Shader{Kind: ShaderFractal, Zoom: zoom, Speed: speed, Noise: p}
}

// Cellular returns a cellular-noise shader.
func Cellular(zoom, speed float32) Shader {
	return Shader{Kind: ShaderCellular, Zoom: zoom, Speed: speed}
}

// Cloud returns a cloud-noise shader.
func Cloud(zoom, speed float32, p noise.Params) Shader {
	return Shader{Kind: ShaderCloud, Zoom: zoom, Speed: speed, Noise: p}
}

// Layer is one entry of an entity's shader stack.
type Layer struct {
	Shader  Shader
	Palette []Color
	Blend   BlendMode
}

// Apply evaluates the shader for frag. frag.Color must hold the colour
// accumulated so far. A nil src makes the noise kinds pass the running
// colour through.
func (s *Shader) Apply(frag *Fragment, u *Uniforms, palette []Color, src noise.Source) Color {
	switch s.Kind {
	case ShaderBaseColor:
		return paletteAt(palette, 0, White)

	case ShaderIntensity:
		return frag.Color.Scale(frag.Intensity)

	case ShaderMovingStripes:
		if !(s.StripeWidth > 0) {
			return paletteAt(palette, 0, White)
		}
		y := float64(frag.ObjectPosition.Y()) + float64(u.Time)*float64(s.Speed)
		if math.Sin(y/float64(s.StripeWidth)*math.Pi) >= 0 {
			return paletteAt(palette, 0, White)
		}
		return paletteAt(palette, 1, Black)

	case ShaderFractal, ShaderCellular, ShaderCloud:
		if src == nil {
			return frag.Color
		}
		zoom := s.Zoom
		if zoom == 0 {
			zoom = 1
		}
		v := src.Sample(s.noiseKind(), frag.ObjectPosition.Mul(zoom), u.Time*s.Speed, s.Noise)
		return Gradient(palette, mgl32.Clamp((v+1)/2, 0, 1))
	}
	return frag.Color
}

func (s *Shader) noiseKind() noise.Kind {
	switch s.Kind {
	case ShaderCellular:
		return noise.Cellular
	case ShaderCloud:
		return noise.Cloud
	default:
		return noise.Fractal
	}
}

// ShadeFragment runs the layer stack over frag and returns the composited
// colour. Layers apply strictly in order: each shader sees the colour left
// by the previous layer, and its output is blended into it with the
// layer's mode. The starting colour is frag.Color.
func ShadeFragment(frag Fragment, layers []Layer, u *Uniforms, src noise.Source) Color {
	acc := frag.Color
	for i := range layers {
		l := &layers[i]
		frag.Color = acc
		acc = acc.Blend(l.Shader.Apply(&frag, u, l.Palette, src), l.Blend)
	}
	return acc
}

func paletteAt(palette []Color, i int, fallback Color) Color {
	if i < len(palette) {
		return palette[i]
	}
	return fallback
}
