// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package soft3d

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// singularDet is the determinant magnitude below which a model matrix is
// treated as non-invertible for normal transformation.
const singularDet = 1e-12

// VertexTransform holds the matrices derived from a set of Uniforms so
// they are computed once per entity rather than once per vertex.
//
// A VertexTransform is immutable and safe for concurrent use.
type VertexTransform struct {
	mvp      mgl32.Mat4
	normal   mgl32.Mat3
	singular bool
}

// NewVertexTransform precomputes the full transform and normal matrix.
func NewVertexTransform(u *Uniforms) VertexTransform {
	nm, ok := NormalMatrix(u.Model)
	return VertexTransform{
		mvp:      u.MVP(),
		normal:   nm,
		singular: !ok,
	}
}

// Singular reports whether the model matrix was singular and normals fall
// back to the identity transform.
func (t *VertexTransform) Singular() bool {
	return t.singular
}

// Apply transforms v into screen space. It returns ok=false when the
// homogeneous w is zero (the vertex lies on the camera's eye plane) or not
// finite; callers drop every triangle that uses such a vertex. v is not
// modified.
func (t *VertexTransform) Apply(v *Vertex) (Vertex, bool) {
	clip := t.mvp.Mul4x1(v.Position.Vec4(1))
	w := clip.W()
	if w == 0 || !finite(w) {
		return Vertex{}, false
	}

	invW := 1 / w
	return Vertex{
		Position:       mgl32.Vec3{clip.X() * invW, clip.Y() * invW, clip.Z() * invW},
		Normal:         normalize(t.normal.Mul3x1(v.Normal)),
		TexCoords:      v.TexCoords,
		Color:          v.Color,
		ObjectPosition: v.Position,
		InvW:           invW,
	}, true
}

// TransformVertex applies the uniforms' model, view, projection and
// viewport matrices to v. See VertexTransform.Apply for the result.
// When transforming many vertices with the same uniforms, build a
// VertexTransform once instead.
func TransformVertex(v *Vertex, u *Uniforms) (Vertex, bool) {
	t := NewVertexTransform(u)
	return t.Apply(v)
}

// NormalMatrix returns the inverse-transpose of model's upper 3×3 block,
// which keeps normals perpendicular to surfaces under non-uniform scale.
// If the block is singular it returns the identity and ok=false.
func NormalMatrix(model mgl32.Mat4) (m mgl32.Mat3, ok bool) {
	m3 := model.Mat3()
	det := m3.Det()
	if !finite(det) || math.Abs(float64(det)) < singularDet {
		return mgl32.Ident3(), false
	}
	return m3.Inv().Transpose(), true
}

// normalize returns v scaled to unit length. Zero and non-finite vectors
// are returned as the zero vector rather than NaN.
func normalize(v mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if l == 0 || !finite(l) {
		return mgl32.Vec3{}
	}
	return v.Mul(1 / l)
}

func finite(f float32) bool {
	return !math.IsNaN(float64(f)) && !math.IsInf(float64(f), 0)
}
