// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package soft3d

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/sync/errgroup"

	"github.com/gogpu/soft3d/internal/parallel"
	"github.com/gogpu/soft3d/noise"
)

// transformChunk is the number of vertices one transform goroutine handles.
const transformChunk = 1024

// Stats summarises one Render call.
type Stats struct {
	Entities  int
	Triangles int
	// DroppedTriangles counts triangles skipped because a vertex could not
	// be projected (w == 0 or non-finite), a vertex lies behind the eye, or
	// the projected area is degenerate. Triangles that are merely off
	// screen are not counted.
	DroppedTriangles int
	// Fragments is the number of fragments that survived culling.
	Fragments int
	// Painted is the number of fragments that passed the depth test.
	Painted int
	Elapsed time.Duration
}

// Renderer draws entities into a Framebuffer.
//
// Each entity goes through three phases: its vertices are transformed in
// parallel, its triangles are rasterised and shaded in parallel batches
// that each own their fragment list, and the shaded fragments are then
// painted sequentially in batch order. Only the last phase touches the
// framebuffer, so the output does not depend on the worker count.
//
// Thread safety: a Renderer must not be used by several goroutines at once.
type Renderer struct {
	opts rendererOptions
	pool *parallel.WorkerPool
}

// NewRenderer creates a renderer. Call Close to stop its workers.
func NewRenderer(opts ...Option) *Renderer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if !o.noiseSet {
		o.noise = noise.New(noise.DefaultSeed)
	}

	r := &Renderer{opts: o}
	if o.workers != 1 {
		r.pool = parallel.NewWorkerPool(o.workers)
	}
	Logger().Info("soft3d: renderer created",
		"workers", r.Workers(),
		"step", o.step,
		"culling", o.culling,
	)
	return r
}

// Workers returns the number of goroutines used per phase.
func (r *Renderer) Workers() int {
	if r.pool == nil {
		return 1
	}
	return r.pool.Workers()
}

// Close stops the worker goroutines. Rendering after Close still works on
// the calling goroutine. Close is idempotent.
func (r *Renderer) Close() {
	if r.pool != nil {
		r.pool.Close()
	}
}

// Render draws entities into fb using u as the frame's uniforms; u.Model is
// replaced by each entity's model matrix. fb is neither cleared nor
// resized. A nil framebuffer or uniforms renders nothing.
func (r *Renderer) Render(fb *Framebuffer, entities []*Entity, u *Uniforms) Stats {
	var st Stats
	if fb == nil || u == nil {
		return st
	}
	start := time.Now()

	cfg := RasterConfig{
		Width:          fb.Width(),
		Height:         fb.Height(),
		ViewDir:        u.ViewDir,
		LightDir:       u.LightDir,
		Step:           r.opts.step,
		DisableCulling: !r.opts.culling,
	}

	for _, e := range entities {
		if e == nil || len(e.vertices) == 0 {
			continue
		}
		st.Entities++
		r.renderEntity(fb, e, u, &cfg, &st)
	}

	st.Elapsed = time.Since(start)
	Logger().Debug("soft3d: frame rendered",
		"entities", st.Entities,
		"triangles", st.Triangles,
		"dropped", st.DroppedTriangles,
		"fragments", st.Fragments,
		"painted", st.Painted,
		"elapsed", st.Elapsed,
	)
	return st
}

// shaded is a fragment reduced to what Paint needs.
type shaded struct {
	pos   mgl32.Vec2
	color Color
	depth float32
}

type batchResult struct {
	frags   []shaded
	dropped int
}

func (r *Renderer) renderEntity(fb *Framebuffer, e *Entity, frame *Uniforms, cfg *RasterConfig, st *Stats) {
	u := *frame
	u.Model = e.Model

	xf := NewVertexTransform(&u)
	if xf.Singular() && !e.warnedSingular {
		e.warnedSingular = true
		Logger().Warn("soft3d: singular model matrix, normals left untransformed", "entity", e.Name)
	}

	verts, valid := r.transform(&xf, e.vertices)

	tris := len(verts) / 3
	st.Triangles += tris

	results := parallel.MapBatches(r.pool, tris, r.opts.batchSize, func(begin, end int) batchResult {
		var res batchResult
		var frags []Fragment
		for t := begin; t < end; t++ {
			i := t * 3
			if !valid[i] || !valid[i+1] || !valid[i+2] ||
				TriangleSkipped(&verts[i], &verts[i+1], &verts[i+2]) {
				res.dropped++
				continue
			}
			frags = RasterizeTriangle(frags[:0], &verts[i], &verts[i+1], &verts[i+2], cfg)
			for j := range frags {
				f := &frags[j]
				res.frags = append(res.frags, shaded{
					pos:   f.Position,
					color: ShadeFragment(*f, e.layers, &u, r.opts.noise),
					depth: f.Depth,
				})
			}
		}
		return res
	})

	for i := range results {
		st.DroppedTriangles += results[i].dropped
		st.Fragments += len(results[i].frags)
		for _, f := range results[i].frags {
			if fb.Paint(f.pos, f.color, f.depth) {
				st.Painted++
			}
		}
	}
}

// transform projects every vertex into screen space. valid[i] is false
// when vertex i could not be projected.
func (r *Renderer) transform(xf *VertexTransform, src []Vertex) (out []Vertex, valid []bool) {
	out = make([]Vertex, len(src))
	valid = make([]bool, len(src))

	var g errgroup.Group
	g.SetLimit(r.Workers())
	for _, b := range parallel.Batches(len(src), transformChunk) {
		g.Go(func() error {
			for i := b[0]; i < b[1]; i++ {
				out[i], valid[i] = xf.Apply(&src[i])
			}
			return nil
		})
	}
	_ = g.Wait() // workers never fail
	return out, valid
}
