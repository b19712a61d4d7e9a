// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package soft3d

import (
	"github.com/gogpu/soft3d/noise"
)

// DefaultBatchSize is the number of triangles rasterised per work item.
const DefaultBatchSize = 64

// Option configures a Renderer during creation.
// Use functional options to customise Renderer behaviour.
//
// Example:
//
//	// Default: one worker per CPU, full-resolution sampling
//	r := soft3d.NewRenderer()
//
//	// Single-threaded preview at half resolution
//	r := soft3d.NewRenderer(soft3d.WithWorkers(1), soft3d.WithSampleStep(2))
type Option func(*rendererOptions)

// rendererOptions holds optional configuration for Renderer creation.
type rendererOptions struct {
	workers   int
	step      float32
	noise     noise.Source
	noiseSet  bool
	culling   bool
	batchSize int
}

// defaultOptions returns the default renderer options.
func defaultOptions() rendererOptions {
	return rendererOptions{
		workers:   0, // GOMAXPROCS
		step:      1,
		noise:     nil, // seeded generator created in NewRenderer
		culling:   true,
		batchSize: DefaultBatchSize,
	}
}

// WithWorkers sets the number of worker goroutines.
// Values <= 0 use GOMAXPROCS. One worker renders on the calling goroutine.
func WithWorkers(n int) Option {
	return func(o *rendererOptions) {
		o.workers = n
	}
}

// WithSampleStep sets the rasteriser sampling step in pixels.
// Values <= 0 are ignored.
func WithSampleStep(step float32) Option {
	return func(o *rendererOptions) {
		if step > 0 {
			o.step = step
		}
	}
}

// WithNoise sets the noise source used by the noise shaders.
// A nil source makes those shaders pass the running colour through.
func WithNoise(src noise.Source) Option {
	return func(o *rendererOptions) {
		o.noise = src
		o.noiseSet = true
	}
}

// WithCulling enables or disables per-fragment backface culling.
func WithCulling(enabled bool) Option {
	return func(o *rendererOptions) {
		o.culling = enabled
	}
}

// WithBatchSize sets how many triangles one work item rasterises.
// Values <= 0 are ignored.
func WithBatchSize(n int) Option {
	return func(o *rendererOptions) {
		if n > 0 {
			o.batchSize = n
		}
	}
}
