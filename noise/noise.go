// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package noise provides the procedural noise functions used by soft3d's
// noise-family shaders.
//
// A [Source] is a pure function of a 3D point, a time value and fractal
// parameters that returns a scalar in [-1, 1]. The shading stage treats it
// as opaque; [Generator] is the default implementation, built on OpenSimplex
// noise for the fractal and cloud kinds and Worley noise for the cellular
// kind.
package noise

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/ojrac/opensimplex-go"
)

// DefaultSeed is the seed used by the planet presets.
const DefaultSeed = 1506

// Kind selects the noise family sampled by a Source.
type Kind uint8

const (
	// Fractal is fractal Brownian motion over 4D simplex noise
	// (x, y, z, time).
	Fractal Kind = iota
	// Cellular is F1 Worley noise with animated feature points.
	Cellular
	// Cloud is domain-warped fractal noise with softened contrast.
	Cloud
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case Fractal:
		return "fractal"
	case Cellular:
		return "cellular"
	case Cloud:
		return "cloud"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// ParseKind returns the Kind named s (case-insensitive).
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fractal", "fbm":
		return Fractal, nil
	case "cellular", "worley":
		return Cellular, nil
	case "cloud", "clouds":
		return Cloud, nil
	}
	return 0, fmt.Errorf("noise: unknown kind %q", s)
}

// Params are the fractal parameters of a sample.
// Zero fields select the defaults of [DefaultParams].
type Params struct {
	// Octaves is the number of summed layers.
	Octaves int `yaml:"octaves,omitempty"`
	// Lacunarity is the frequency multiplier between octaves.
	Lacunarity float32 `yaml:"lacunarity,omitempty"`
	// Gain is the amplitude multiplier between octaves.
	Gain float32 `yaml:"gain,omitempty"`
}

// DefaultParams returns 4 octaves, lacunarity 2 and gain 0.5.
func DefaultParams() Params {
	return Params{Octaves: 4, Lacunarity: 2, Gain: 0.5}
}

// withDefaults fills zero fields and bounds the octave count.
func (p Params) withDefaults() Params {
	d := DefaultParams()
	if p.Octaves <= 0 {
		p.Octaves = d.Octaves
	}
	p.Octaves = min(p.Octaves, 12)
	if p.Lacunarity <= 0 {
		p.Lacunarity = d.Lacunarity
	}
	if p.Gain <= 0 {
		p.Gain = d.Gain
	}
	return p
}

// Source samples a noise field. Implementations must be safe for
// concurrent use and return values in [-1, 1].
type Source interface {
	Sample(kind Kind, p mgl32.Vec3, t float32, params Params) float32
}

// Generator is the default Source.
//
// A Generator is immutable after New and safe for concurrent use.
type Generator struct {
	seed    int64
	simplex opensimplex.Noise32
}

// New creates a generator for the given seed. Equal seeds produce equal
// fields.
func New(seed int64) *Generator {
	return &Generator{
		seed:    seed,
		simplex: opensimplex.New32(seed),
	}
}

// Seed returns the generator's seed.
func (g *Generator) Seed() int64 {
	return g.seed
}

// Sample implements Source.
func (g *Generator) Sample(kind Kind, p mgl32.Vec3, t float32, params Params) float32 {
	params = params.withDefaults()

	var v float32
	switch kind {
	case Fractal:
		v = g.fbm(p, t, params)
	case Cellular:
		v = g.cellular(p, t)
	case Cloud:
		v = g.cloud(p, t, params)
	}
	return mgl32.Clamp(v, -1, 1)
}

// fbm sums octaves of 4D simplex noise and normalises by the total
// amplitude so the result stays in [-1, 1].
func (g *Generator) fbm(p mgl32.Vec3, t float32, params Params) float32 {
	var sum, norm float32
	amp, freq := float32(1), float32(1)
	for range params.Octaves {
		sum += amp * g.simplex.Eval4(p[0]*freq, p[1]*freq, p[2]*freq, t)
		norm += amp
		amp *= params.Gain
		freq *= params.Lacunarity
	}
	if norm == 0 {
		return 0
	}
	return sum / norm
}

// Offsets decorrelate the warp field from the base field.
var (
	warpOffsetA = mgl32.Vec3{5.2, 1.3, 2.8}
	warpOffsetB = mgl32.Vec3{1.7, 9.2, 4.1}
)

// cloud warps the domain with two fbm fields before sampling, then pulls
// the result towards the middle so large areas read as soft cover.
func (g *Generator) cloud(p mgl32.Vec3, t float32, params Params) float32 {
	qx := g.fbm(p.Add(warpOffsetA), t, params)
	qy := g.fbm(p.Add(warpOffsetB), t, params)
	warped := p.Add(mgl32.Vec3{qx, qy, qx * qy}.Mul(1.5))
	v := g.fbm(warped, t*0.5, params)
	// Smoothstep around zero keeps the sign but softens the extremes.
	s := (v + 1) / 2
	s = s * s * (3 - 2*s)
	return s*2 - 1
}
