// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package soft3d is a software (CPU) 3D rendering pipeline.
//
// # Overview
//
// soft3d turns a flat list of lit, procedurally shaded meshes into pixels
// without a GPU. It implements the fixed-function stages a GPU would run:
//
//	mesh vertices -> TransformVertex -> RasterizeTriangle -> ShadeFragment -> Framebuffer.Paint
//
// Each stage is a plain function that can be called on its own. [Renderer]
// drives all four for a list of [Entity] values, running the transform and
// rasterisation stages in parallel and the depth test sequentially.
//
// # Quick Start
//
//	fb, err := soft3d.NewFramebuffer(320, 200)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	planet, err := soft3d.NewEntity("planet", mesh.Sphere(32, 48), []soft3d.Layer{
//	    {Shader: soft3d.BaseColor(), Palette: []soft3d.Color{soft3d.Orange}},
//	    {Shader: soft3d.Intensity()},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	u := soft3d.NewUniforms(320, 200, mgl32.Vec3{0, 0, 5}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
//
//	r := soft3d.NewRenderer()
//	defer r.Close()
//
//	fb.Clear()
//	r.Render(fb, []*soft3d.Entity{planet}, &u)
//	_ = fb.SavePNG("planet.png")
//
// # Coordinate System
//
// Object and world space are right-handed with Y up. After the viewport
// transform, screen space has its origin at the top-left pixel corner with
// X increasing right and Y increasing down; pixel (x, y) has its centre at
// (x+0.5, y+0.5). Depth is normalised device Z in [-1, 1] and smaller
// values are nearer.
//
// # Shading
//
// An entity's [Layer] stack is applied in order. Each [Shader] sees the
// colour left by the previous layer and its output is composited with the
// layer's [BlendMode].
package soft3d
