// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const eps = 1e-4

// vecNear compares component-wise with an absolute tolerance.
func vecNear(got, want mgl32.Vec3) bool {
	for i := range got {
		if math.Abs(float64(got[i]-want[i])) > eps {
			return false
		}
	}
	return true
}

func newTestOrbit() *Orbit {
	return New(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
}

func TestOrbit_PreservesDistance(t *testing.T) {
	tests := []struct {
		name         string
		dYaw, dPitch float32
	}{
		{"yaw", 0.3, 0},
		{"pitch", 0, 0.4},
		{"both", -1.2, -0.7},
		{"full turn", 2 * math.Pi, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := New(mgl32.Vec3{3, 2, 5}, mgl32.Vec3{1, 1, 1}, mgl32.Vec3{0, 1, 0})
			before := o.Distance()
			o.Orbit(tt.dYaw, tt.dPitch)
			if d := o.Distance(); math.Abs(float64(d-before)) > eps {
				t.Errorf("distance = %v, want %v", d, before)
			}
		})
	}
}

func TestOrbit_Yaw(t *testing.T) {
	o := newTestOrbit()
	o.Orbit(math.Pi/2, 0)
	if !vecNear(o.Eye, mgl32.Vec3{10, 0, 0}) {
		t.Errorf("eye after quarter turn = %v, want (10,0,0)", o.Eye)
	}
	o.Orbit(3*math.Pi/2, 0)
	if !vecNear(o.Eye, mgl32.Vec3{0, 0, 10}) {
		t.Errorf("eye after full turn = %v, want (0,0,10)", o.Eye)
	}
}

func TestOrbit_PitchClamped(t *testing.T) {
	o := newTestOrbit()
	o.Orbit(0, 10)
	want := float32(10 * math.Sin(MaxPitch))
	if math.Abs(float64(o.Eye.Y()-want)) > eps {
		t.Errorf("eye height = %v, want %v", o.Eye.Y(), want)
	}
	if math.Abs(float64(o.Eye.X())) > eps {
		t.Errorf("pitch moved the eye sideways: %v", o.Eye)
	}

	o.Orbit(0, -20)
	if math.Abs(float64(o.Eye.Y()+want)) > eps {
		t.Errorf("eye height = %v, want %v", o.Eye.Y(), -want)
	}
}

func TestOrbit_Zoom(t *testing.T) {
	o := newTestOrbit()
	o.Zoom(4)
	if !vecNear(o.Eye, mgl32.Vec3{0, 0, 6}) {
		t.Errorf("eye = %v, want (0,0,6)", o.Eye)
	}
	o.Zoom(-2)
	if !vecNear(o.Eye, mgl32.Vec3{0, 0, 8}) {
		t.Errorf("eye = %v, want (0,0,8)", o.Eye)
	}
	o.Zoom(100)
	if d := o.Distance(); math.Abs(float64(d-MinDistance)) > eps {
		t.Errorf("distance = %v, want %v", d, MinDistance)
	}
}

func TestOrbit_Changed(t *testing.T) {
	o := newTestOrbit()
	if !o.Changed() {
		t.Error("new camera should be changed")
	}
	o.ResetChanged()
	if o.Changed() {
		t.Error("ResetChanged did not clear the flag")
	}
	o.Orbit(0.1, 0)
	if !o.Changed() {
		t.Error("Orbit did not set the flag")
	}
	o.ResetChanged()
	o.Zoom(1)
	if !o.Changed() {
		t.Error("Zoom did not set the flag")
	}
}

func TestOrbit_ViewMatrix(t *testing.T) {
	o := newTestOrbit()
	if !vecNear(o.ViewDirection(), mgl32.Vec3{0, 0, -1}) {
		t.Errorf("ViewDirection = %v", o.ViewDirection())
	}
	// The centre lies on the view axis, 10 units in front.
	c := o.View().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	if !vecNear(c.Vec3(), mgl32.Vec3{0, 0, -10}) {
		t.Errorf("centre in view space = %v, want (0,0,-10)", c)
	}
}

func TestOrbit_Degenerate(t *testing.T) {
	o := New(mgl32.Vec3{}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	o.Orbit(1, 1)
	o.Zoom(1)
	if o.Eye != (mgl32.Vec3{}) {
		t.Errorf("eye moved to %v", o.Eye)
	}
	if o.ViewDirection() != (mgl32.Vec3{}) {
		t.Errorf("ViewDirection = %v, want zero", o.ViewDirection())
	}
}
