// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package noise

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// cellular returns F1 Worley noise: the distance from p to the nearest
// feature point, one point per unit cell, remapped so that points at a
// feature give 1 and points a full cell away give -1.
//
// Feature points orbit inside their cells over time.
func (g *Generator) cellular(p mgl32.Vec3, t float32) float32 {
	cx := int32(math.Floor(float64(p[0])))
	cy := int32(math.Floor(float64(p[1])))
	cz := int32(math.Floor(float64(p[2])))

	best := float32(math.MaxFloat32)
	for dz := int32(-1); dz <= 1; dz++ {
		for dy := int32(-1); dy <= 1; dy++ {
			for dx := int32(-1); dx <= 1; dx++ {
				x, y, z := cx+dx, cy+dy, cz+dz
				f := g.feature(x, y, z, t)
				d := f.Sub(p)
				if l := d.Dot(d); l < best {
					best = l
				}
			}
		}
	}

	dist := float32(math.Sqrt(float64(best)))
	return 1 - 2*mgl32.Clamp(dist, 0, 1)
}

// feature returns the animated feature point of cell (x, y, z).
func (g *Generator) feature(x, y, z int32, t float32) mgl32.Vec3 {
	h := hash3(g.seed, x, y, z)
	jx := unit(h)
	jy := unit(h >> 21)
	jz := unit(h >> 42)
	phase := float64(unit(h*0x9e3779b97f4a7c15)) * 2 * math.Pi

	// Keep the orbit small enough that points stay inside their cell.
	s, c := math.Sincos(float64(t) + phase)
	ox := 0.25 * float32(c)
	oy := 0.25 * float32(s)

	return mgl32.Vec3{
		float32(x) + 0.5 + (jx-0.5)*0.5 + ox,
		float32(y) + 0.5 + (jy-0.5)*0.5 + oy,
		float32(z) + jz,
	}
}

// hash3 mixes a seed and a cell coordinate into 64 well-distributed bits
// (SplitMix64 finaliser).
func hash3(seed int64, x, y, z int32) uint64 {
	h := uint64(seed)
	h ^= uint64(uint32(x)) * 0x9e3779b97f4a7c15
	h ^= uint64(uint32(y)) * 0xbf58476d1ce4e5b9
	h ^= uint64(uint32(z)) * 0x94d049bb133111eb
	h ^= h >> 30
	h *= 0xbf58476d1ce4e5b9
	h ^= h >> 27
	h *= 0x94d049bb133111eb
	h ^= h >> 31
	return h
}

// unit maps the low 21 bits of h to [0, 1).
func unit(h uint64) float32 {
	return float32(h&0x1fffff) / float32(1<<21)
}
