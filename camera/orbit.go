// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package camera provides an orbit camera for soft3d frame drivers.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// MaxPitch keeps the eye just short of the poles, where the view
	// direction would become parallel to Up.
	MaxPitch = math.Pi/2 - 0.01

	// MinDistance is the closest the eye may get to the centre.
	MinDistance = 0.5
)

// Orbit is a camera that circles a centre point. Yaw turns around Up and
// pitch tilts towards it; the distance to the centre only changes through
// Zoom.
//
// Orbit records whether it moved since the last ResetChanged so a frame
// driver can skip re-rendering a still image.
type Orbit struct {
	Eye    mgl32.Vec3
	Center mgl32.Vec3
	Up     mgl32.Vec3

	changed bool
}

// New returns a camera at eye looking at center. It starts as changed so
// the first frame is always drawn.
func New(eye, center, up mgl32.Vec3) *Orbit {
	return &Orbit{Eye: eye, Center: center, Up: up, changed: true}
}

// Distance returns the distance from the eye to the centre.
func (o *Orbit) Distance() float32 {
	return o.Eye.Sub(o.Center).Len()
}

// Orbit rotates the eye around the centre by dYaw (around Up) and dPitch
// (towards Up), in radians. The resulting pitch is clamped to ±MaxPitch.
func (o *Orbit) Orbit(dYaw, dPitch float32) {
	offset := o.Eye.Sub(o.Center)
	r := offset.Len()
	if r == 0 {
		return
	}

	up := o.Up.Normalize()
	forward, right := o.basis(up)

	// Decompose into yaw around up and pitch above the forward/right plane.
	y := float64(offset.Dot(up))
	h := offset.Sub(up.Mul(float32(y)))
	yaw := math.Atan2(float64(h.Dot(right)), float64(h.Dot(forward)))
	pitch := math.Asin(clamp(y/float64(r), -1, 1))

	yaw += float64(dYaw)
	pitch = clamp(pitch+float64(dPitch), -MaxPitch, MaxPitch)

	sy, cy := math.Sincos(yaw)
	sp, cp := math.Sincos(pitch)
	dir := forward.Mul(float32(cp * cy)).
		Add(right.Mul(float32(cp * sy))).
		Add(up.Mul(float32(sp)))

	o.Eye = o.Center.Add(dir.Mul(r))
	o.changed = true
}

// Zoom moves the eye delta units towards the centre (negative values move
// away), never closer than MinDistance.
func (o *Orbit) Zoom(delta float32) {
	offset := o.Eye.Sub(o.Center)
	r := offset.Len()
	if r == 0 {
		return
	}
	nr := max(r-delta, MinDistance)
	o.Eye = o.Center.Add(offset.Mul(nr / r))
	o.changed = true
}

// View returns the look-at view matrix.
func (o *Orbit) View() mgl32.Mat4 {
	return mgl32.LookAtV(o.Eye, o.Center, o.Up)
}

// ViewDirection returns the normalised direction from the eye to the
// centre.
func (o *Orbit) ViewDirection() mgl32.Vec3 {
	d := o.Center.Sub(o.Eye)
	if d.Len() == 0 {
		return mgl32.Vec3{}
	}
	return d.Normalize()
}

// Changed reports whether the camera moved since the last ResetChanged.
func (o *Orbit) Changed() bool {
	return o.changed
}

// ResetChanged clears the changed flag.
func (o *Orbit) ResetChanged() {
	o.changed = false
}

// basis returns two unit vectors perpendicular to up and to each other.
// forward is the world axis least aligned with up projected onto the
// plane, so the decomposition is stable for any up vector.
func (o *Orbit) basis(up mgl32.Vec3) (forward, right mgl32.Vec3) {
	ref := mgl32.Vec3{0, 0, 1}
	if math.Abs(float64(up.Dot(ref))) > 0.9 {
		ref = mgl32.Vec3{1, 0, 0}
	}
	forward = ref.Sub(up.Mul(ref.Dot(up))).Normalize()
	right = up.Cross(forward)
	return forward, right
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
