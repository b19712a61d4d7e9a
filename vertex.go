// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package soft3d

import "github.com/go-gl/mathgl/mgl32"

// Vertex is the per-vertex attribute bundle flowing through the pipeline.
//
// Mesh sources fill Position, Normal, TexCoords and Color in object space.
// TransformVertex returns a new Vertex whose Position is in screen space
// (pixels, NDC depth in Z) and whose Normal is in world space; it also
// records ObjectPosition and InvW for the rasteriser.
type Vertex struct {
	Position  mgl32.Vec3
	Normal    mgl32.Vec3
	TexCoords mgl32.Vec2
	Color     Color

	// ObjectPosition is the untransformed position, carried so procedural
	// shaders can sample noise in a space that moves with the mesh.
	ObjectPosition mgl32.Vec3

	// InvW is 1/w from the homogeneous divide. Zero means the vertex was
	// not produced by TransformVertex and attributes interpolate affinely.
	InvW float32
}

// NewVertex creates an object-space vertex. Its colour is black; stacks
// normally start with a layer that replaces it.
func NewVertex(position, normal mgl32.Vec3, texCoords mgl32.Vec2) Vertex {
	return Vertex{
		Position:  position,
		Normal:    normal,
		TexCoords: texCoords,
	}
}

// Fragment is one covered pixel sample produced by the rasteriser.
//
// Shaders read it and update Color; the framebuffer consumes Position,
// Depth and the final Color.
type Fragment struct {
	// Position is the pixel centre in screen space.
	Position mgl32.Vec2

	// Depth is the interpolated NDC depth; smaller is nearer.
	Depth float32

	// Color is the running colour of the shading stage.
	Color Color

	// Intensity is the Lambert term clamp(N·L, 0, 1).
	Intensity float32

	// Normal is the interpolated, renormalised world-space normal.
	Normal mgl32.Vec3

	// ObjectPosition is the perspective-correct object-space position.
	ObjectPosition mgl32.Vec3

	// TexCoords are the perspective-correct texture coordinates.
	TexCoords mgl32.Vec2
}
