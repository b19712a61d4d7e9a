// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package soft3d

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

// Framebuffer is a fixed-size colour buffer with a parallel depth buffer.
//
// Colours are stored as opaque RGBA bytes (4 per pixel, row-major) so the
// buffer can be handed to a display surface without conversion. Depth
// values follow the NDC convention: smaller is nearer, +Inf is empty.
//
// Thread safety: Framebuffer is not safe for concurrent use. Renderer
// paints into it from a single goroutine.
type Framebuffer struct {
	width      int
	height     int
	pix        []uint8
	depth      []float32
	background Color
}

// NewFramebuffer creates a cleared framebuffer with a black background.
func NewFramebuffer(width, height int) (*Framebuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	fb := &Framebuffer{
		width:  width,
		height: height,
		pix:    make([]uint8, width*height*4),
		depth:  make([]float32, width*height),
	}
	fb.Clear()
	return fb, nil
}

// Width returns the width of the framebuffer.
func (fb *Framebuffer) Width() int {
	return fb.width
}

// Height returns the height of the framebuffer.
func (fb *Framebuffer) Height() int {
	return fb.height
}

// Background returns the colour used by Clear.
func (fb *Framebuffer) Background() Color {
	return fb.background
}

// SetBackground sets the colour used by subsequent Clear calls.
func (fb *Framebuffer) SetBackground(c Color) {
	fb.background = c
}

// Clear resets every pixel to the background colour and every depth cell
// to +Inf.
func (fb *Framebuffer) Clear() {
	bg := fb.background
	for i := 0; i < len(fb.pix); i += 4 {
		fb.pix[i+0] = bg.R
		fb.pix[i+1] = bg.G
		fb.pix[i+2] = bg.B
		fb.pix[i+3] = 0xff
	}
	far := float32(math.Inf(1))
	for i := range fb.depth {
		fb.depth[i] = far
	}
}

// Paint writes c at the pixel containing pos if depth is nearer than the
// stored depth, then records depth. It reports whether the pixel was
// written. Positions outside the buffer and NaN depths are ignored.
func (fb *Framebuffer) Paint(pos mgl32.Vec2, c Color, depth float32) bool {
	fx, fy := float64(pos[0]), float64(pos[1])
	if !(fx >= 0 && fy >= 0 && fx < float64(fb.width) && fy < float64(fb.height)) {
		return false
	}
	x, y := int(fx), int(fy)

	i := y*fb.width + x
	if !(depth < fb.depth[i]) {
		return false
	}
	fb.depth[i] = depth

	o := i * 4
	fb.pix[o+0] = c.R
	fb.pix[o+1] = c.G
	fb.pix[o+2] = c.B
	return true
}

// Pixel returns the colour at (x, y), or the background outside the buffer.
func (fb *Framebuffer) Pixel(x, y int) Color {
	if x < 0 || x >= fb.width || y < 0 || y >= fb.height {
		return fb.background
	}
	o := (y*fb.width + x) * 4
	return Color{R: fb.pix[o], G: fb.pix[o+1], B: fb.pix[o+2]}
}

// Depth returns the stored depth at (x, y), or +Inf outside the buffer.
func (fb *Framebuffer) Depth(x, y int) float32 {
	if x < 0 || x >= fb.width || y < 0 || y >= fb.height {
		return float32(math.Inf(1))
	}
	return fb.depth[y*fb.width+x]
}

// Pixels returns the raw RGBA bytes, 4 per pixel in row-major order.
// The slice aliases the framebuffer and is valid until the next Paint.
func (fb *Framebuffer) Pixels() []uint8 {
	return fb.pix
}

// ToImage copies the framebuffer into a new image.RGBA.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
	copy(img.Pix, fb.pix)
	return img
}

// Scaled returns the framebuffer resized to width×height with
// nearest-neighbour sampling, which keeps the hard pixel edges of the
// rasteriser.
func (fb *Framebuffer) Scaled(width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), fb.ToImage(), image.Rect(0, 0, fb.width, fb.height), draw.Src, nil)
	return dst
}

// At implements the image.Image interface.
func (fb *Framebuffer) At(x, y int) color.Color {
	return fb.Pixel(x, y)
}

// Bounds implements the image.Image interface.
func (fb *Framebuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, fb.width, fb.height)
}

// ColorModel implements the image.Image interface.
func (fb *Framebuffer) ColorModel() color.Model {
	return color.RGBAModel
}

// SavePNG saves the framebuffer to a PNG file.
func (fb *Framebuffer) SavePNG(path string) error {
	return fb.save(path, func(f *os.File) error {
		return png.Encode(f, fb.ToImage())
	})
}

// SaveBMP saves the framebuffer to a 24-bit BMP file.
func (fb *Framebuffer) SaveBMP(path string) error {
	return fb.save(path, func(f *os.File) error {
		return bmp.Encode(f, fb.ToImage())
	})
}

func (fb *Framebuffer) save(path string, encode func(*os.File) error) (err error) {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return encode(f)
}
