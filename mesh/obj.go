// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package mesh produces triangle lists for soft3d entities.
//
// Meshes are flat: every three consecutive vertices form one triangle and
// no index buffer is kept. Wavefront OBJ files are read with LoadOBJ;
// Sphere builds a UV sphere procedurally.
package mesh

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/soft3d"
)

// ErrMalformed is returned (wrapped, with the line number) for OBJ input
// that cannot be parsed.
var ErrMalformed = errors.New("mesh: malformed OBJ")

// objIndex references one corner of a face. Zero means absent.
type objIndex struct {
	v, vt, vn int
}

type objReader struct {
	positions []mgl32.Vec3
	normals   []mgl32.Vec3
	texCoords []mgl32.Vec2
	out       []soft3d.Vertex
	faces     int
	skipped   int
}

// LoadOBJ reads a Wavefront OBJ stream and returns its faces as a flat
// triangle list. Polygons are fan-triangulated. Faces without normals get
// the flat normal of their triangle. Materials, groups and other
// directives are ignored.
func LoadOBJ(r io.Reader) ([]soft3d.Vertex, error) {
	var o objReader

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}
		if err := o.directive(fields[0], fields[1:]); err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrMalformed, line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("mesh: read OBJ: %w", err)
	}

	soft3d.Logger().Debug("mesh: OBJ loaded",
		"positions", len(o.positions),
		"faces", o.faces,
		"triangles", len(o.out)/3,
		"degenerate", o.skipped,
	)
	return o.out, nil
}

// LoadOBJFile opens path and reads it with LoadOBJ.
func LoadOBJFile(path string) ([]soft3d.Vertex, error) {
	f, err := os.Open(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return nil, err
	}
	defer f.Close()

	verts, err := LoadOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return verts, nil
}

func (o *objReader) directive(kind string, args []string) error {
	switch kind {
	case "v":
		v, err := parseFloats(args, 3)
		if err != nil {
			return err
		}
		o.positions = append(o.positions, mgl32.Vec3{v[0], v[1], v[2]})
	case "vn":
		v, err := parseFloats(args, 3)
		if err != nil {
			return err
		}
		o.normals = append(o.normals, mgl32.Vec3{v[0], v[1], v[2]})
	case "vt":
		v, err := parseFloats(args, 1)
		if err != nil {
			return err
		}
		uv := mgl32.Vec2{v[0]}
		if len(v) > 1 {
			uv[1] = v[1]
		}
		o.texCoords = append(o.texCoords, uv)
	case "f":
		return o.face(args)
	}
	return nil
}

func (o *objReader) face(args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("face has %d vertices, need at least 3", len(args))
	}
	corners := make([]objIndex, len(args))
	for i, a := range args {
		c, err := o.parseCorner(a)
		if err != nil {
			return err
		}
		corners[i] = c
	}
	o.faces++

	for i := 1; i+1 < len(corners); i++ {
		o.triangle(corners[0], corners[i], corners[i+1])
	}
	return nil
}

func (o *objReader) triangle(a, b, c objIndex) {
	pa, pb, pc := o.positions[a.v-1], o.positions[b.v-1], o.positions[c.v-1]

	var flat mgl32.Vec3
	if a.vn == 0 || b.vn == 0 || c.vn == 0 {
		n := pb.Sub(pa).Cross(pc.Sub(pa))
		if n.Len() == 0 {
			o.skipped++
			return
		}
		flat = n.Normalize()
	}

	for _, idx := range [3]objIndex{a, b, c} {
		v := soft3d.NewVertex(o.positions[idx.v-1], flat, mgl32.Vec2{})
		if idx.vn != 0 {
			v.Normal = o.normals[idx.vn-1]
		}
		if idx.vt != 0 {
			v.TexCoords = o.texCoords[idx.vt-1]
		}
		o.out = append(o.out, v)
	}
}

// parseCorner parses "v", "v/vt", "v//vn" or "v/vt/vn" and resolves
// negative (relative) indices.
func (o *objReader) parseCorner(s string) (objIndex, error) {
	parts := strings.Split(s, "/")
	if len(parts) > 3 {
		return objIndex{}, fmt.Errorf("bad face vertex %q", s)
	}

	var c objIndex
	var err error
	if c.v, err = resolveIndex(parts[0], len(o.positions)); err != nil || c.v == 0 {
		return objIndex{}, fmt.Errorf("bad position index in %q", s)
	}
	if len(parts) > 1 && parts[1] != "" {
		if c.vt, err = resolveIndex(parts[1], len(o.texCoords)); err != nil || c.vt == 0 {
			return objIndex{}, fmt.Errorf("bad texture index in %q", s)
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		if c.vn, err = resolveIndex(parts[2], len(o.normals)); err != nil || c.vn == 0 {
			return objIndex{}, fmt.Errorf("bad normal index in %q", s)
		}
	}
	return c, nil
}

// resolveIndex converts a 1-based or negative OBJ index into a 1-based
// index within [1, n]. It returns 0 for out-of-range references.
func resolveIndex(s string, n int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if i < 0 {
		i = n + 1 + i
	}
	if i < 1 || i > n {
		return 0, nil
	}
	return i, nil
}

func parseFloats(args []string, minCount int) ([]float32, error) {
	if len(args) < minCount {
		return nil, fmt.Errorf("need %d values, got %d", minCount, len(args))
	}
	out := make([]float32, 0, 3)
	for _, a := range args[:min(len(args), 3)] {
		f, err := strconv.ParseFloat(a, 32)
		if err != nil {
			return nil, err
		}
		out = append(out, float32(f))
	}
	return out, nil
}
