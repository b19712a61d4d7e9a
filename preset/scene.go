// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package preset

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/soft3d"
	"github.com/gogpu/soft3d/mesh"
	"github.com/gogpu/soft3d/noise"
)

// Scene defaults.
const (
	DefaultWidth  = 640
	DefaultHeight = 480
	DefaultStacks = 32
	DefaultSlices = 48

	// SphereMesh is the mesh name that selects the built-in UV sphere.
	SphereMesh = "sphere"
)

// ErrInvalidScene is returned (wrapped) for scenes that parse but cannot
// be rendered.
var ErrInvalidScene = errors.New("preset: invalid scene")

// Scene is a YAML scene description:
//
//	width: 640
//	height: 480
//	background: "#000010"
//	camera:
//	  eye: [0, 0, 10]
//	light: [1, 1, 1]
//	entities:
//	  - name: planet
//	    preset: ocean
//	  - name: moon
//	    mesh: moon.obj
//	    position: [3, 1, 0]
//	    scale: 0.4
//	    layers:
//	      - shader: cellular
//	        zoom: 4
//	        palette: ["#333333", "#aaaaaa"]
//	      - shader: intensity
//
// Colours are "#rrggbb" strings; shaders and blend modes are given by
// name. Relative mesh paths resolve against the scene file's directory.
type Scene struct {
	Width      int          `yaml:"width,omitempty"`
	Height     int          `yaml:"height,omitempty"`
	Background soft3d.Color `yaml:"background"`
	Camera     Camera       `yaml:"camera"`

	// Light is the direction towards the light. Nil lights from the
	// camera.
	Light *mgl32.Vec3 `yaml:"light,omitempty"`

	// Time is the start value of Uniforms.Time in seconds.
	Time float32 `yaml:"time,omitempty"`

	Entities []EntityConfig `yaml:"entities"`

	dir string
}

// Camera places the scene camera.
type Camera struct {
	Eye    mgl32.Vec3 `yaml:"eye"`
	Center mgl32.Vec3 `yaml:"center"`
	Up     mgl32.Vec3 `yaml:"up"`
}

// EntityConfig describes one entity. Either Preset or Layers must be set;
// Layers wins when both are.
type EntityConfig struct {
	Name   string `yaml:"name"`
	Preset string `yaml:"preset,omitempty"`

	// Mesh is SphereMesh (the default) or the path of an OBJ file.
	Mesh   string `yaml:"mesh,omitempty"`
	Stacks int    `yaml:"stacks,omitempty"`
	Slices int    `yaml:"slices,omitempty"`

	Position mgl32.Vec3 `yaml:"position"`
	Scale    float32    `yaml:"scale,omitempty"`
	// Rotation is XYZ Euler angles in degrees.
	Rotation mgl32.Vec3 `yaml:"rotation"`

	Layers []LayerConfig `yaml:"layers,omitempty"`
}

// LayerConfig is the YAML form of a soft3d.Layer.
type LayerConfig struct {
	Shader  soft3d.ShaderKind `yaml:"shader"`
	Speed   float32           `yaml:"speed,omitempty"`
	Width   float32           `yaml:"width,omitempty"`
	Zoom    float32           `yaml:"zoom,omitempty"`
	Noise   noise.Params      `yaml:"noise,omitempty"`
	Palette []soft3d.Color    `yaml:"palette,omitempty"`
	Blend   soft3d.BlendMode  `yaml:"blend"`
}

// Layer converts the configuration into a pipeline layer.
func (c LayerConfig) Layer() soft3d.Layer {
	return soft3d.Layer{
		Shader: soft3d.Shader{
			Kind:        c.Shader,
			Speed:       c.Speed,
			StripeWidth: c.Width,
			Zoom:        c.Zoom,
			Noise:       c.Noise,
		},
		Palette: c.Palette,
		Blend:   c.Blend,
	}
}

// LayerConfigOf converts a pipeline layer into its YAML form.
func LayerConfigOf(l soft3d.Layer) LayerConfig {
	return LayerConfig{
		Shader:  l.Shader.Kind,
		Speed:   l.Shader.Speed,
		Width:   l.Shader.StripeWidth,
		Zoom:    l.Shader.Zoom,
		Noise:   l.Shader.Noise,
		Palette: l.Palette,
		Blend:   l.Blend,
	}
}

// NewScene returns a scene with a single sphere entity using the named
// preset.
func NewScene(presetName string) (*Scene, error) {
	if _, err := Get(presetName); err != nil {
		return nil, err
	}
	s := &Scene{
		Entities: []EntityConfig{{Name: "planet", Preset: presetName}},
	}
	s.applyDefaults()
	return s, nil
}

// LoadScene reads and validates a scene file.
func LoadScene(path string) (*Scene, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return nil, err
	}
	s, err := ParseScene(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.dir = filepath.Dir(path)
	soft3d.Logger().Info("preset: scene loaded", "path", path, "entities", len(s.Entities))
	return s, nil
}

// ParseScene decodes and validates a YAML scene. Unknown keys are errors.
func ParseScene(data []byte) (*Scene, error) {
	var s Scene
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("preset: parse scene: %w", err)
	}
	s.applyDefaults()
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Marshal encodes the scene as YAML.
func (s *Scene) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Resize overrides the framebuffer size. Non-positive values keep the
// current dimension, so unset command-line flags leave the scene's own
// size alone.
func (s *Scene) Resize(width, height int) {
	if width > 0 {
		s.Width = width
	}
	if height > 0 {
		s.Height = height
	}
}

func (s *Scene) applyDefaults() {
	if s.Width <= 0 {
		s.Width = DefaultWidth
	}
	if s.Height <= 0 {
		s.Height = DefaultHeight
	}
	if s.Camera.Eye == s.Camera.Center {
		s.Camera.Eye = s.Camera.Center.Add(mgl32.Vec3{0, 0, 10})
	}
	if s.Camera.Up == (mgl32.Vec3{}) {
		s.Camera.Up = mgl32.Vec3{0, 1, 0}
	}
	for i := range s.Entities {
		e := &s.Entities[i]
		if e.Name == "" {
			e.Name = fmt.Sprintf("entity%d", i)
		}
		if e.Mesh == "" {
			e.Mesh = SphereMesh
		}
		if e.Scale == 0 {
			e.Scale = 1
		}
	}
}

func (s *Scene) validate() error {
	if len(s.Entities) == 0 {
		return fmt.Errorf("%w: no entities", ErrInvalidScene)
	}
	for _, e := range s.Entities {
		if len(e.Layers) > 0 {
			continue
		}
		if e.Preset == "" {
			return fmt.Errorf("%w: entity %q has neither preset nor layers", ErrInvalidScene, e.Name)
		}
		if _, err := Get(e.Preset); err != nil {
			return fmt.Errorf("%w: entity %q: %w", ErrInvalidScene, e.Name, err)
		}
	}
	return nil
}

// Uniforms returns the frame uniforms for the scene's size, camera, light
// and start time.
func (s *Scene) Uniforms() soft3d.Uniforms {
	u := soft3d.NewUniforms(s.Width, s.Height, s.Camera.Eye, s.Camera.Center, s.Camera.Up)
	if s.Light != nil {
		if l := *s.Light; l.Len() > 0 {
			u.LightDir = l.Normalize()
		}
	}
	u.Time = s.Time
	return u
}

// BuildEntities builds the scene's entities. Meshes shared by several
// entities are loaded once.
func (s *Scene) BuildEntities() ([]*soft3d.Entity, error) {
	meshes := make(map[string][]soft3d.Vertex)
	out := make([]*soft3d.Entity, 0, len(s.Entities))

	for _, cfg := range s.Entities {
		verts, err := s.loadMesh(meshes, &cfg)
		if err != nil {
			return nil, fmt.Errorf("preset: entity %q: %w", cfg.Name, err)
		}

		layers, err := cfg.layers()
		if err != nil {
			return nil, err
		}

		e, err := soft3d.NewEntity(cfg.Name, verts, layers)
		if err != nil {
			return nil, err
		}
		rot := mgl32.Vec3{
			mgl32.DegToRad(cfg.Rotation[0]),
			mgl32.DegToRad(cfg.Rotation[1]),
			mgl32.DegToRad(cfg.Rotation[2]),
		}
		e.Place(cfg.Position, cfg.Scale, rot)
		out = append(out, e)
	}
	return out, nil
}

func (cfg *EntityConfig) layers() ([]soft3d.Layer, error) {
	if len(cfg.Layers) > 0 {
		layers := make([]soft3d.Layer, len(cfg.Layers))
		for i, l := range cfg.Layers {
			layers[i] = l.Layer()
		}
		return layers, nil
	}
	p, err := Get(cfg.Preset)
	if err != nil {
		return nil, err
	}
	return p.Layers, nil
}

func (s *Scene) loadMesh(cache map[string][]soft3d.Vertex, cfg *EntityConfig) ([]soft3d.Vertex, error) {
	if strings.EqualFold(cfg.Mesh, SphereMesh) {
		stacks, slices := cfg.Stacks, cfg.Slices
		if stacks <= 0 {
			stacks = DefaultStacks
		}
		if slices <= 0 {
			slices = DefaultSlices
		}
		key := fmt.Sprintf("%s:%dx%d", SphereMesh, stacks, slices)
		if v, ok := cache[key]; ok {
			return v, nil
		}
		v := mesh.Sphere(stacks, slices)
		cache[key] = v
		return v, nil
	}

	path := cfg.Mesh
	if !filepath.IsAbs(path) && s.dir != "" {
		path = filepath.Join(s.dir, path)
	}
	if v, ok := cache[path]; ok {
		return v, nil
	}
	v, err := mesh.LoadOBJFile(path)
	if err != nil {
		return nil, err
	}
	cache[path] = v
	return v, nil
}
