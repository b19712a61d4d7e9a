// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package soft3d

import "errors"

// Input-contract errors returned by constructors. Per-vertex and
// per-fragment problems (degenerate triangles, singular transforms,
// out-of-bounds pixels) are recovered locally and never surface as errors.
var (
	// ErrEmptyMesh is returned when an entity has no vertices.
	ErrEmptyMesh = errors.New("soft3d: mesh has no vertices")

	// ErrVertexCount is returned when a mesh is not a flat triangle list.
	ErrVertexCount = errors.New("soft3d: vertex count is not a multiple of 3")

	// ErrInvalidSize is returned for non-positive framebuffer dimensions.
	ErrInvalidSize = errors.New("soft3d: invalid framebuffer size")

	// ErrInvalidColor is returned when a colour string cannot be parsed.
	ErrInvalidColor = errors.New("soft3d: invalid color")
)
