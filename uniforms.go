// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package soft3d

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Projection defaults.
const (
	// FieldOfView is the vertical field of view in degrees.
	FieldOfView = 45.0
	// NearPlane is the distance to the near clipping plane.
	NearPlane = 0.1
	// FarPlane is the distance to the far clipping plane.
	FarPlane = 1000.0
)

// Uniforms is the per-frame, read-only state shared by every stage.
//
// The frame driver owns it and passes it by pointer; the pipeline never
// modifies it. [Renderer] derives a private copy per entity with the
// entity's model matrix.
type Uniforms struct {
	Model      mgl32.Mat4
	View       mgl32.Mat4
	Projection mgl32.Mat4
	Viewport   mgl32.Mat4

	// Time drives animated shaders. It only ever increases.
	Time float32

	// ViewDir is the normalised direction the camera looks along, used
	// for backface culling.
	ViewDir mgl32.Vec3

	// LightDir is the normalised direction from surfaces towards the
	// light. A zero vector disables lighting (intensity 1).
	LightDir mgl32.Vec3
}

// NewUniforms builds uniforms for a width×height framebuffer and a camera
// at eye looking at center. The model matrix is the identity and the light
// shines from the camera.
func NewUniforms(width, height int, eye, center, up mgl32.Vec3) Uniforms {
	w, h := float32(width), float32(height)
	return Uniforms{
		Model:      mgl32.Ident4(),
		View:       ViewMatrix(eye, center, up),
		Projection: ProjectionMatrix(w, h),
		Viewport:   ViewportMatrix(w, h),
		ViewDir:    normalize(center.Sub(eye)),
		LightDir:   normalize(eye.Sub(center)),
	}
}

// SetCamera replaces the view matrix and view direction.
func (u *Uniforms) SetCamera(eye, center, up mgl32.Vec3) {
	u.View = ViewMatrix(eye, center, up)
	u.ViewDir = normalize(center.Sub(eye))
}

// MVP returns Viewport * Projection * View * Model, the matrix that takes
// object space to homogeneous screen space.
func (u *Uniforms) MVP() mgl32.Mat4 {
	return u.Viewport.Mul4(u.Projection).Mul4(u.View).Mul4(u.Model)
}

// ModelMatrix returns T * S * Rz * Ry * Rx: rotate about X, then Y, then
// Z (radians), scale uniformly, then translate.
func ModelMatrix(translation mgl32.Vec3, scale float32, rotation mgl32.Vec3) mgl32.Mat4 {
	r := mgl32.HomogRotate3DZ(rotation.Z()).
		Mul4(mgl32.HomogRotate3DY(rotation.Y())).
		Mul4(mgl32.HomogRotate3DX(rotation.X()))
	ts := mgl32.Translate3D(translation.X(), translation.Y(), translation.Z()).
		Mul4(mgl32.Scale3D(scale, scale, scale))
	return ts.Mul4(r)
}

// ViewMatrix returns the look-at matrix for a camera at eye.
func ViewMatrix(eye, center, up mgl32.Vec3) mgl32.Mat4 {
	return mgl32.LookAtV(eye, center, up)
}

// ProjectionMatrix returns a perspective projection with the default field
// of view and clip planes for the given aspect.
func ProjectionMatrix(width, height float32) mgl32.Mat4 {
	aspect := float32(1)
	if height > 0 {
		aspect = width / height
	}
	return mgl32.Perspective(mgl32.DegToRad(FieldOfView), aspect, NearPlane, FarPlane)
}

// ViewportMatrix maps normalised device coordinates to pixels: X from
// [-1, 1] to [0, width], Y from [-1, 1] to [height, 0] (flipped so screen
// Y grows downwards), Z unchanged.
func ViewportMatrix(width, height float32) mgl32.Mat4 {
	return mgl32.Translate3D(width/2, height/2, 0).
		Mul4(mgl32.Scale3D(width/2, -height/2, 1))
}
