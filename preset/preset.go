// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package preset holds the built-in planet shader stacks and the YAML
// scene format used by the soft3d commands.
package preset

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/gogpu/soft3d"
	"github.com/gogpu/soft3d/noise"
)

// ErrUnknownPreset is returned by Get for names that are not built in.
var ErrUnknownPreset = errors.New("preset: unknown planet")

// Planet is a named shader stack meant for a sphere mesh.
type Planet struct {
	Name   string
	Layers []soft3d.Layer
}

// Entity builds an entity from the planet's stack and the given mesh.
func (p Planet) Entity(vertices []soft3d.Vertex) (*soft3d.Entity, error) {
	return soft3d.NewEntity(p.Name, vertices, p.Layers)
}

// DisplayName returns the planet name in title case, e.g. "Gas Giant".
func (p Planet) DisplayName() string {
	return DisplayName(p.Name)
}

// DisplayName turns a preset name such as "gas_giant" into "Gas Giant".
func DisplayName(name string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(name, "_", " "))
}

var (
	deepSea = soft3d.RGB(10, 30, 90)
	shallow = soft3d.RGB(30, 110, 200)
	sand    = soft3d.RGB(220, 200, 140)
	forest  = soft3d.RGB(30, 110, 40)
	silver  = soft3d.RGB(170, 170, 170)
	rust    = soft3d.RGB(120, 70, 40)
	tan     = soft3d.RGB(200, 150, 100)
	ember   = soft3d.RGB(255, 80, 0)
	flare   = soft3d.RGB(255, 200, 0)
	moss    = soft3d.RGB(20, 80, 20)
	lime    = soft3d.RGB(180, 255, 120)
	ice     = soft3d.RGB(200, 220, 255)
)

func lit() soft3d.Layer {
	return soft3d.Layer{Shader: soft3d.Intensity()}
}

// planets lists the built-in stacks in key order (1-8 in the viewer).
// Speeds are per second of Uniforms.Time.
var planets = []Planet{
	{
		Name: "disco",
		Layers: []soft3d.Layer{
			{Shader: soft3d.MovingStripes(1, 0.1), Palette: []soft3d.Color{soft3d.Pink, soft3d.Green}},
			{Shader: soft3d.MovingStripes(0.1, 0.1), Palette: []soft3d.Color{soft3d.Black, soft3d.Blue}, Blend: soft3d.BlendNormal},
			lit(),
		},
	},
	{
		Name: "star",
		Layers: []soft3d.Layer{
			{Shader: soft3d.MovingStripes(1, 0.1), Palette: []soft3d.Color{silver, soft3d.Blue}},
			{Shader: soft3d.MovingStripes(0.1, 0.1), Palette: []soft3d.Color{soft3d.Black, soft3d.Green}, Blend: soft3d.BlendNormal},
			lit(),
		},
	},
	{
		Name: "ocean",
		Layers: []soft3d.Layer{
			{Shader: soft3d.Fractal(1.5, 0.02, noise.DefaultParams()), Palette: []soft3d.Color{deepSea, deepSea, shallow, sand, forest}},
			{Shader: soft3d.Cloud(2, 0.1, noise.Params{Octaves: 3}), Palette: []soft3d.Color{soft3d.Black, soft3d.Black, soft3d.White}, Blend: soft3d.BlendScreen},
			lit(),
		},
	},
	{
		Name: "gas_giant",
		Layers: []soft3d.Layer{
			{Shader: soft3d.Cloud(1.2, 0.05, noise.Params{Octaves: 5, Gain: 0.6}), Palette: []soft3d.Color{rust, tan, sand}},
			{Shader: soft3d.MovingStripes(0.05, 0.15), Palette: []soft3d.Color{tan, rust}, Blend: soft3d.BlendOverlay},
			lit(),
		},
	},
	{
		Name: "face",
		Layers: []soft3d.Layer{
			{Shader: soft3d.Cellular(4, 0.5), Palette: []soft3d.Color{soft3d.Black, soft3d.Orange, soft3d.Yellow}},
			{Shader: soft3d.BaseColor(), Palette: []soft3d.Color{soft3d.Pink}, Blend: soft3d.BlendMultiply},
			lit(),
		},
	},
	{
		Name: "snow",
		Layers: []soft3d.Layer{
			{Shader: soft3d.Fractal(3, 0, noise.Params{Octaves: 6}), Palette: []soft3d.Color{soft3d.Gray, ice, soft3d.White}},
			{Shader: soft3d.Cloud(2, 0.1, noise.DefaultParams()), Palette: []soft3d.Color{soft3d.Black, soft3d.White}, Blend: soft3d.BlendScreen},
			lit(),
		},
	},
	{
		Name: "sun",
		Layers: []soft3d.Layer{
			{Shader: soft3d.Cellular(6, 1), Palette: []soft3d.Color{ember, soft3d.Orange, soft3d.Yellow}},
			{Shader: soft3d.Fractal(2, 0.5, noise.DefaultParams()), Palette: []soft3d.Color{soft3d.Black, flare}, Blend: soft3d.BlendAdd},
		},
	},
	{
		Name: "green",
		Layers: []soft3d.Layer{
			{Shader: soft3d.Fractal(2, 0.05, noise.DefaultParams()), Palette: []soft3d.Color{moss, soft3d.Green, lime}},
			lit(),
		},
	},
}

// Names returns the built-in preset names in their canonical order.
func Names() []string {
	names := make([]string, len(planets))
	for i, p := range planets {
		names[i] = p.Name
	}
	return names
}

// Get returns the named preset. Matching ignores case and accepts '-' or
// ' ' in place of '_'. The returned stack is a copy.
func Get(name string) (Planet, error) {
	key := strings.NewReplacer("-", "_", " ", "_").Replace(strings.ToLower(strings.TrimSpace(name)))
	for _, p := range planets {
		if p.Name == key {
			return clonePlanet(p), nil
		}
	}
	return Planet{}, fmt.Errorf("%w %q (have %s)", ErrUnknownPreset, name, strings.Join(Names(), ", "))
}

// Index returns the preset at position i of Names, wrapping around.
func Index(i int) Planet {
	n := len(planets)
	return clonePlanet(planets[((i%n)+n)%n])
}

func clonePlanet(p Planet) Planet {
	layers := make([]soft3d.Layer, len(p.Layers))
	for i, l := range p.Layers {
		l.Palette = slices.Clone(l.Palette)
		layers[i] = l
	}
	p.Layers = layers
	return p
}
