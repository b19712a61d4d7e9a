// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package soft3d

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// degenerateArea is the screen-space edge-function magnitude (twice the
// triangle area, in square pixels) below which a triangle produces no
// fragments.
const degenerateArea = 1e-6

// RasterConfig controls RasterizeTriangle.
type RasterConfig struct {
	// Width and Height bound the sampled region, normally the
	// framebuffer size.
	Width, Height int

	// ViewDir is the camera's normalised viewing direction. Fragments
	// whose normal has a non-negative dot product with it face away from
	// the camera and are discarded. A zero vector disables culling.
	ViewDir mgl32.Vec3

	// LightDir is the normalised direction towards the light used for
	// Fragment.Intensity. A zero vector gives intensity 1.
	LightDir mgl32.Vec3

	// Step is the sampling step in pixels. Values <= 0 mean 1. Coarser
	// steps trade quality for speed.
	Step float32

	// DisableCulling keeps back-facing fragments.
	DisableCulling bool
}

// EdgeFunction returns (p.x-a.x)(b.y-a.y) - (p.y-a.y)(b.x-a.x), twice the
// signed area of triangle (a, b, p). Its sign tells on which side of edge
// a→b the point p lies.
func EdgeFunction(a, b, p mgl32.Vec2) float32 {
	return (p[0]-a[0])*(b[1]-a[1]) - (p[1]-a[1])*(b[0]-a[0])
}

// Barycentric returns the weights of p with respect to triangle (a, b, c).
// The weights sum to 1 and p is inside (edges included) exactly when all
// three lie in [0, 1]. ok is false for degenerate triangles.
func Barycentric(a, b, c, p mgl32.Vec2) (w1, w2, w3 float32, ok bool) {
	area := EdgeFunction(a, b, c)
	if math.Abs(float64(area)) < degenerateArea {
		return 0, 0, 0, false
	}
	w1 = EdgeFunction(b, c, p) / area
	w2 = EdgeFunction(c, a, p) / area
	w3 = EdgeFunction(a, b, p) / area
	return w1, w2, w3, true
}

// TriangleSkipped reports whether RasterizeTriangle rejects the triangle
// outright: a vertex lies behind the eye (negative InvW) or the
// screen-space area is degenerate or not finite.
func TriangleSkipped(a, b, c *Vertex) bool {
	if a.InvW < 0 || b.InvW < 0 || c.InvW < 0 {
		return true
	}
	area := float64(EdgeFunction(a.Position.Vec2(), b.Position.Vec2(), c.Position.Vec2()))
	return !(math.Abs(area) >= degenerateArea) || math.IsInf(area, 0)
}

// RasterizeTriangle appends one Fragment to dst for every sample point
// inside the screen-space triangle (a, b, c) and returns the extended
// slice.
//
// The vertices are expected to come from TransformVertex. Degenerate
// triangles and triangles with a vertex behind the eye (negative InvW)
// produce nothing. Depth is interpolated linearly in screen space; the
// normal, object position, texture coordinates and colour are interpolated
// perspective-correctly.
func RasterizeTriangle(dst []Fragment, a, b, c *Vertex, cfg *RasterConfig) []Fragment {
	if TriangleSkipped(a, b, c) {
		return dst
	}

	pa := a.Position.Vec2()
	pb := b.Position.Vec2()
	pc := c.Position.Vec2()

	area := EdgeFunction(pa, pb, pc)
	invArea := 1 / area

	// Bounding box, clamped to the target.
	minX, maxX, okX := clampSpan(min(pa[0], pb[0], pc[0]), max(pa[0], pb[0], pc[0]), cfg.Width)
	minY, maxY, okY := clampSpan(min(pa[1], pb[1], pc[1]), max(pa[1], pb[1], pc[1]), cfg.Height)
	if !okX || !okY {
		return dst
	}

	step := cfg.Step
	if !(step > 0) {
		step = 1
	}

	// Without normals the face orientation comes from the winding: the
	// viewport flips Y, so counter-clockwise NDC triangles have positive
	// screen area.
	faceNormal := cfg.ViewDir
	if area > 0 {
		faceNormal = cfg.ViewDir.Mul(-1)
	}

	cull := !cfg.DisableCulling && cfg.ViewDir != (mgl32.Vec3{})
	light := normalize(cfg.LightDir)
	lit := light != (mgl32.Vec3{})

	for py := float32(minY) + step/2; py < float32(maxY); py += step {
		for px := float32(minX) + step/2; px < float32(maxX); px += step {
			p := mgl32.Vec2{px, py}

			w1 := EdgeFunction(pb, pc, p) * invArea
			w2 := EdgeFunction(pc, pa, p) * invArea
			w3 := EdgeFunction(pa, pb, p) * invArea
			// The weights sum to 1, so all three are in [0, 1] exactly
			// when none is negative.
			if w1 < 0 || w2 < 0 || w3 < 0 {
				continue
			}

			p1, p2, p3 := perspectiveWeights(w1, w2, w3, a.InvW, b.InvW, c.InvW)

			normal := normalize(lerp3(a.Normal, b.Normal, c.Normal, p1, p2, p3))
			if normal == (mgl32.Vec3{}) {
				normal = faceNormal
			}
			if cull && normal.Dot(cfg.ViewDir) >= 0 {
				continue
			}

			intensity := float32(1)
			if lit {
				intensity = mgl32.Clamp(normal.Dot(light), 0, 1)
			}

			dst = append(dst, Fragment{
				Position:       p,
				Depth:          w1*a.Position[2] + w2*b.Position[2] + w3*c.Position[2],
				Color:          lerpColor(a.Color, b.Color, c.Color, p1, p2, p3),
				Intensity:      intensity,
				Normal:         normal,
				ObjectPosition: lerp3(a.ObjectPosition, b.ObjectPosition, c.ObjectPosition, p1, p2, p3),
				TexCoords: mgl32.Vec2{
					p1*a.TexCoords[0] + p2*b.TexCoords[0] + p3*c.TexCoords[0],
					p1*a.TexCoords[1] + p2*b.TexCoords[1] + p3*c.TexCoords[1],
				},
			})
		}
	}
	return dst
}

// clampSpan returns the pixel range [lo, hi) covering [minV, maxV],
// clamped to [0, limit]. Clamping happens before the int conversion so
// huge or infinite coordinates cannot overflow. ok is false when the
// range is empty.
func clampSpan(minV, maxV float32, limit int) (lo, hi int, ok bool) {
	l := math.Max(0, math.Floor(float64(minV)))
	h := math.Min(float64(limit), math.Ceil(float64(maxV)))
	if !(l < h) {
		return 0, 0, false
	}
	return int(l), int(h), true
}

// perspectiveWeights converts screen-space barycentric weights into
// weights for attributes that vary linearly in world space. When the
// vertices carry no 1/w the screen weights are used unchanged.
func perspectiveWeights(w1, w2, w3, iw1, iw2, iw3 float32) (float32, float32, float32) {
	q1, q2, q3 := w1*iw1, w2*iw2, w3*iw3
	sum := q1 + q2 + q3
	if sum <= 0 || !finite(sum) {
		return w1, w2, w3
	}
	inv := 1 / sum
	return q1 * inv, q2 * inv, q3 * inv
}

func lerp3(a, b, c mgl32.Vec3, w1, w2, w3 float32) mgl32.Vec3 {
	return mgl32.Vec3{
		w1*a[0] + w2*b[0] + w3*c[0],
		w1*a[1] + w2*b[1] + w3*c[1],
		w1*a[2] + w2*b[2] + w3*c[2],
	}
}

func lerpColor(a, b, c Color, w1, w2, w3 float32) Color {
	ch := func(x, y, z uint8) uint8 {
		v := w1*float32(x) + w2*float32(y) + w3*float32(z) + 0.5
		switch {
		case !(v > 0):
			return 0
		case v >= 255:
			return 255
		}
		return uint8(v)
	}
	return Color{
		R: ch(a.R, b.R, c.R),
		G: ch(a.G, b.G, c.G),
		B: ch(a.B, b.B, c.B),
	}
}
