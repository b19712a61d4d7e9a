// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package mesh

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/soft3d"
)

// Minimum tessellation accepted by Sphere.
const (
	MinStacks = 2
	MinSlices = 3
)

// Sphere returns a unit UV sphere centred on the origin as a flat
// triangle list. stacks divides it from pole to pole and slices around the
// Y axis; smaller values are raised to MinStacks and MinSlices.
//
// Triangles wind counter-clockwise seen from outside, normals point
// outwards and texture coordinates run from (0, 0) at the north pole seam
// to (1, 1) at the south pole.
func Sphere(stacks, slices int) []soft3d.Vertex {
	stacks = max(stacks, MinStacks)
	slices = max(slices, MinSlices)

	point := func(i, j int) soft3d.Vertex {
		phi := math.Pi * float64(i) / float64(stacks)
		theta := 2 * math.Pi * float64(j) / float64(slices)
		sp, cp := math.Sincos(phi)
		st, ct := math.Sincos(theta)
		p := mgl32.Vec3{float32(sp * st), float32(cp), float32(sp * ct)}
		uv := mgl32.Vec2{float32(j) / float32(slices), float32(i) / float32(stacks)}
		return soft3d.NewVertex(p, p, uv)
	}

	out := make([]soft3d.Vertex, 0, slices*(2*stacks-2)*3)
	for i := range stacks {
		for j := range slices {
			tl, tr := point(i, j), point(i, j+1)
			bl, br := point(i+1, j), point(i+1, j+1)
			if i < stacks-1 {
				out = append(out, tl, bl, br)
			}
			if i > 0 {
				out = append(out, tl, br, tr)
			}
		}
	}
	return out
}
