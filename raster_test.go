// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package soft3d

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// screenVertex builds an already transformed vertex.
func screenVertex(x, y, z float32, normal mgl32.Vec3) Vertex {
	return Vertex{
		Position: mgl32.Vec3{x, y, z},
		Normal:   normal,
		Color:    White,
		InvW:     1,
	}
}

var towardCamera = mgl32.Vec3{0, 0, 1}

func TestBarycentric(t *testing.T) {
	a := mgl32.Vec2{0, 0}
	b := mgl32.Vec2{10, 0}
	c := mgl32.Vec2{0, 10}

	tests := []struct {
		name       string
		p          mgl32.Vec2
		w1, w2, w3 float32
	}{
		{"corner a", a, 1, 0, 0},
		{"corner b", b, 0, 1, 0},
		{"corner c", c, 0, 0, 1},
		{"centroid", mgl32.Vec2{10.0 / 3, 10.0 / 3}, 1.0 / 3, 1.0 / 3, 1.0 / 3},
		{"outside", mgl32.Vec2{10, 10}, -1, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w1, w2, w3, ok := Barycentric(a, b, c, tt.p)
			if !ok {
				t.Fatal("not ok")
			}
			if math.Abs(float64(w1-tt.w1)) > eps || math.Abs(float64(w2-tt.w2)) > eps || math.Abs(float64(w3-tt.w3)) > eps {
				t.Errorf("Barycentric(%v) = %v %v %v, want %v %v %v", tt.p, w1, w2, w3, tt.w1, tt.w2, tt.w3)
			}
			if s := w1 + w2 + w3; math.Abs(float64(s-1)) > eps {
				t.Errorf("weights sum to %v", s)
			}
		})
	}

	if _, _, _, ok := Barycentric(a, mgl32.Vec2{5, 5}, mgl32.Vec2{10, 10}, a); ok {
		t.Error("collinear triangle should not be ok")
	}
}

// TestRasterizeTriangle_FarVertex checks that a vertex far outside the
// target does not lose the visible part of the triangle.
func TestRasterizeTriangle_FarVertex(t *testing.T) {
	tests := []struct {
		name string
		x    float32
	}{
		{"moderate", 1e6},
		{"beyond int range", 1e19},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := screenVertex(0, 0, 0, towardCamera)
			b := screenVertex(tt.x, 5, 0, towardCamera)
			c := screenVertex(0, 10, 0, towardCamera)
			cfg := RasterConfig{Width: 10, Height: 10, DisableCulling: true}
			if got := len(RasterizeTriangle(nil, &a, &b, &c, &cfg)); got != 100 {
				t.Errorf("fragments = %d, want 100", got)
			}
		})
	}
}

func TestClampSpan(t *testing.T) {
	inf := float32(math.Inf(1))
	tests := []struct {
		name       string
		minV, maxV float32
		lo, hi     int
		ok         bool
	}{
		{"inside", 2.5, 7.2, 2, 8, true},
		{"clamped both sides", -50, 50, 0, 10, true},
		{"huge", -1e30, 1e30, 0, 10, true},
		{"infinite", -inf, inf, 0, 10, true},
		{"left of target", -20, -1, 0, 0, false},
		{"right of target", 10, 30, 0, 0, false},
		{"nan", float32(math.NaN()), 5, 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi, ok := clampSpan(tt.minV, tt.maxV, 10)
			if lo != tt.lo || hi != tt.hi || ok != tt.ok {
				t.Errorf("clampSpan(%v, %v, 10) = %d, %d, %v, want %d, %d, %v",
					tt.minV, tt.maxV, lo, hi, ok, tt.lo, tt.hi, tt.ok)
			}
		})
	}
}

func TestRasterizeTriangle_Culling(t *testing.T) {
	a := screenVertex(0, 0, 0, towardCamera)
	b := screenVertex(40, 0, 0, towardCamera)
	c := screenVertex(0, 40, 0, towardCamera)

	tests := []struct {
		name    string
		viewDir mgl32.Vec3
		disable bool
		want    int
	}{
		{"facing camera", mgl32.Vec3{0, 0, -1}, false, 100},
		{"facing away", mgl32.Vec3{0, 0, 1}, false, 0},
		{"edge on", mgl32.Vec3{1, 0, 0}, false, 0},
		{"culling disabled", mgl32.Vec3{0, 0, 1}, true, 100},
		{"no view direction", mgl32.Vec3{}, false, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := RasterConfig{Width: 10, Height: 10, ViewDir: tt.viewDir, DisableCulling: tt.disable}
			got := RasterizeTriangle(nil, &a, &b, &c, &cfg)
			if len(got) != tt.want {
				t.Errorf("fragments = %d, want %d", len(got), tt.want)
			}
		})
	}
}

func TestRasterizeTriangle_Step(t *testing.T) {
	a := screenVertex(0, 0, 0, towardCamera)
	b := screenVertex(40, 0, 0, towardCamera)
	c := screenVertex(0, 40, 0, towardCamera)

	for _, tt := range []struct {
		step float32
		want int
	}{
		{0, 100},
		{1, 100},
		{2, 25},
	} {
		cfg := RasterConfig{Width: 10, Height: 10, ViewDir: mgl32.Vec3{0, 0, -1}, Step: tt.step}
		if got := RasterizeTriangle(nil, &a, &b, &c, &cfg); len(got) != tt.want {
			t.Errorf("step %v: fragments = %d, want %d", tt.step, len(got), tt.want)
		}
	}
}

func TestRasterizeTriangle_Coverage(t *testing.T) {
	// Right triangle covering the pixels with x <= y on a 10×10 target.
	a := screenVertex(0, 0, 0, towardCamera)
	b := screenVertex(0, 10, 0, towardCamera)
	c := screenVertex(10, 10, 0, towardCamera)
	cfg := RasterConfig{Width: 10, Height: 10, ViewDir: mgl32.Vec3{0, 0, -1}}

	frags := RasterizeTriangle(nil, &a, &b, &c, &cfg)
	if len(frags) != 55 {
		t.Fatalf("fragments = %d, want 55", len(frags))
	}
	for _, f := range frags {
		x, y := int(f.Position[0]), int(f.Position[1])
		if x > y {
			t.Errorf("fragment at (%d,%d) outside the triangle", x, y)
		}
		if f.Position[0]-float32(x) != 0.5 || f.Position[1]-float32(y) != 0.5 {
			t.Errorf("fragment %v not at a pixel centre", f.Position)
		}
	}
}

func TestRasterizeTriangle_Degenerate(t *testing.T) {
	a := screenVertex(0, 0, 0, towardCamera)
	b := screenVertex(5, 5, 0, towardCamera)
	c := screenVertex(9, 9, 0, towardCamera)
	cfg := RasterConfig{Width: 10, Height: 10}
	if got := RasterizeTriangle(nil, &a, &b, &c, &cfg); len(got) != 0 {
		t.Errorf("degenerate triangle produced %d fragments", len(got))
	}
}

func TestRasterizeTriangle_BehindEye(t *testing.T) {
	a := screenVertex(0, 0, 0, towardCamera)
	b := screenVertex(40, 0, 0, towardCamera)
	c := screenVertex(0, 40, 0, towardCamera)
	c.InvW = -1
	cfg := RasterConfig{Width: 10, Height: 10}
	if got := RasterizeTriangle(nil, &a, &b, &c, &cfg); len(got) != 0 {
		t.Errorf("triangle behind the eye produced %d fragments", len(got))
	}
}

func TestRasterizeTriangle_OffScreen(t *testing.T) {
	a := screenVertex(-30, -30, 0, towardCamera)
	b := screenVertex(-20, -30, 0, towardCamera)
	c := screenVertex(-30, -20, 0, towardCamera)
	cfg := RasterConfig{Width: 10, Height: 10}
	if got := RasterizeTriangle(nil, &a, &b, &c, &cfg); len(got) != 0 {
		t.Errorf("off-screen triangle produced %d fragments", len(got))
	}
}

func TestRasterizeTriangle_WindingFallback(t *testing.T) {
	var zero mgl32.Vec3
	cfg := RasterConfig{Width: 10, Height: 10, ViewDir: mgl32.Vec3{0, 0, -1}}

	// Positive screen area: front facing.
	a := screenVertex(0, 0, 0, zero)
	b := screenVertex(0, 40, 0, zero)
	c := screenVertex(40, 0, 0, zero)
	front := RasterizeTriangle(nil, &a, &b, &c, &cfg)
	if len(front) != 100 {
		t.Errorf("front-facing fragments = %d, want 100", len(front))
	}
	if len(front) > 0 && !vecNear(front[0].Normal, mgl32.Vec3{0, 0, 1}) {
		t.Errorf("fallback normal = %v, want (0,0,1)", front[0].Normal)
	}

	back := RasterizeTriangle(nil, &a, &c, &b, &cfg)
	if len(back) != 0 {
		t.Errorf("back-facing fragments = %d, want 0", len(back))
	}
}

func TestRasterizeTriangle_Intensity(t *testing.T) {
	a := screenVertex(0, 0, 0, towardCamera)
	b := screenVertex(40, 0, 0, towardCamera)
	c := screenVertex(0, 40, 0, towardCamera)

	tests := []struct {
		name  string
		light mgl32.Vec3
		want  float32
	}{
		{"head on", mgl32.Vec3{0, 0, 1}, 1},
		{"unnormalised", mgl32.Vec3{0, 0, 7}, 1},
		{"grazing", mgl32.Vec3{1, 0, 0}, 0},
		{"behind", mgl32.Vec3{0, 0, -1}, 0},
		{"45 degrees", mgl32.Vec3{1, 0, 1}, float32(math.Sqrt2 / 2)},
		{"no light", mgl32.Vec3{}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := RasterConfig{Width: 10, Height: 10, ViewDir: mgl32.Vec3{0, 0, -1}, LightDir: tt.light}
			frags := RasterizeTriangle(nil, &a, &b, &c, &cfg)
			if len(frags) == 0 {
				t.Fatal("no fragments")
			}
			for _, f := range frags {
				if math.Abs(float64(f.Intensity-tt.want)) > eps {
					t.Fatalf("Intensity = %v, want %v", f.Intensity, tt.want)
				}
			}
		})
	}
}

func TestRasterizeTriangle_InterpolatesAttributes(t *testing.T) {
	a := screenVertex(0, 0, -1, towardCamera)
	b := screenVertex(40, 0, 1, towardCamera)
	c := screenVertex(0, 40, 1, towardCamera)
	a.Color, b.Color, c.Color = Red, Red, Red
	a.ObjectPosition = mgl32.Vec3{0, 0, 0}
	b.ObjectPosition = mgl32.Vec3{4, 0, 0}
	c.ObjectPosition = mgl32.Vec3{0, 4, 0}
	a.TexCoords, b.TexCoords, c.TexCoords = mgl32.Vec2{0, 0}, mgl32.Vec2{1, 0}, mgl32.Vec2{0, 1}

	cfg := RasterConfig{Width: 1, Height: 1, ViewDir: mgl32.Vec3{0, 0, -1}}
	frags := RasterizeTriangle(nil, &a, &b, &c, &cfg)
	if len(frags) != 1 {
		t.Fatalf("fragments = %d, want 1", len(frags))
	}
	f := frags[0]
	// Sample (0.5, 0.5): weights 0.975, 0.0125, 0.0125.
	if math.Abs(float64(f.Depth-(-0.95))) > eps {
		t.Errorf("Depth = %v, want -0.95", f.Depth)
	}
	if !vecNear(f.ObjectPosition, mgl32.Vec3{0.05, 0.05, 0}) {
		t.Errorf("ObjectPosition = %v, want (0.05,0.05,0)", f.ObjectPosition)
	}
	if math.Abs(float64(f.TexCoords[0]-0.0125)) > eps || math.Abs(float64(f.TexCoords[1]-0.0125)) > eps {
		t.Errorf("TexCoords = %v", f.TexCoords)
	}
	if f.Color != Red {
		t.Errorf("Color = %v, want red", f.Color)
	}
}

func TestPerspectiveWeights(t *testing.T) {
	third := float32(1.0 / 3)
	p1, p2, p3 := perspectiveWeights(third, third, third, 2, 1, 1)
	if math.Abs(float64(p1-0.5)) > eps || math.Abs(float64(p2-0.25)) > eps || math.Abs(float64(p3-0.25)) > eps {
		t.Errorf("perspectiveWeights = %v %v %v, want 0.5 0.25 0.25", p1, p2, p3)
	}

	p1, p2, p3 = perspectiveWeights(0.2, 0.3, 0.5, 0, 0, 0)
	if p1 != 0.2 || p2 != 0.3 || p3 != 0.5 {
		t.Errorf("zero 1/w should fall back to screen weights, got %v %v %v", p1, p2, p3)
	}
}

func TestRasterizeTriangle_ReusesDst(t *testing.T) {
	a := screenVertex(0, 0, 0, towardCamera)
	b := screenVertex(40, 0, 0, towardCamera)
	c := screenVertex(0, 40, 0, towardCamera)
	cfg := RasterConfig{Width: 10, Height: 10, ViewDir: mgl32.Vec3{0, 0, -1}}

	buf := make([]Fragment, 0, 128)
	got := RasterizeTriangle(buf, &a, &b, &c, &cfg)
	if &got[0] != &buf[:1][0] {
		t.Error("RasterizeTriangle did not append into dst")
	}
}

func BenchmarkRasterizeTriangle(b *testing.B) {
	v0 := screenVertex(0, 0, 0, towardCamera)
	v1 := screenVertex(256, 0, 0, towardCamera)
	v2 := screenVertex(0, 256, 0, towardCamera)
	cfg := RasterConfig{Width: 256, Height: 256, ViewDir: mgl32.Vec3{0, 0, -1}, LightDir: towardCamera}
	buf := make([]Fragment, 0, 256*256)
	b.ReportAllocs()
	for b.Loop() {
		buf = RasterizeTriangle(buf[:0], &v0, &v1, &v2, &cfg)
	}
}
