// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package soft3d

import (
	"fmt"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
)

// Entity is an independently rendered mesh: a flat triangle list in
// object space, a model matrix, and an ordered shader stack.
//
// Entities share no mutable state. NewEntity copies the vertices and
// layers it is given.
type Entity struct {
	// Name identifies the entity in logs.
	Name string

	// Model places the entity in the world.
	Model mgl32.Mat4

	vertices []Vertex
	layers   []Layer

	warnedSingular bool
}

// NewEntity validates a triangle list and builds an entity with an
// identity model matrix. The vertex count must be a non-zero multiple of 3.
func NewEntity(name string, vertices []Vertex, layers []Layer) (*Entity, error) {
	if len(vertices) == 0 {
		return nil, fmt.Errorf("%w: entity %q", ErrEmptyMesh, name)
	}
	if len(vertices)%3 != 0 {
		return nil, fmt.Errorf("%w: entity %q has %d vertices", ErrVertexCount, name, len(vertices))
	}

	return &Entity{
		Name:     name,
		Model:    mgl32.Ident4(),
		vertices: slices.Clone(vertices),
		layers:   cloneLayers(layers),
	}, nil
}

// Vertices returns the entity's triangle list. Callers must not modify it.
func (e *Entity) Vertices() []Vertex {
	return e.vertices
}

// Layers returns the entity's shader stack. Callers must not modify it.
func (e *Entity) Layers() []Layer {
	return e.layers
}

// TriangleCount returns the number of triangles in the mesh.
func (e *Entity) TriangleCount() int {
	return len(e.vertices) / 3
}

// SetLayers replaces the shader stack with a copy of layers.
func (e *Entity) SetLayers(layers []Layer) {
	e.layers = cloneLayers(layers)
}

// Place sets the model matrix from a translation, a uniform scale and XYZ
// Euler rotation in radians. See ModelMatrix.
func (e *Entity) Place(translation mgl32.Vec3, scale float32, rotation mgl32.Vec3) {
	e.Model = ModelMatrix(translation, scale, rotation)
}

func cloneLayers(layers []Layer) []Layer {
	owned := make([]Layer, len(layers))
	for i, l := range layers {
		l.Palette = slices.Clone(l.Palette)
		owned[i] = l
	}
	return owned
}
