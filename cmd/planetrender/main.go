// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Command planetrender renders a soft3d scene or planet preset to image
// files without opening a window.
//
// Usage:
//
//	planetrender -preset ocean -out ocean.png
//	planetrender -scene scene.yaml -frames 120 -dt 0.04 -out frames/%04d.bmp
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/image/bmp"

	"github.com/gogpu/soft3d"
	"github.com/gogpu/soft3d/preset"
)

type options struct {
	scene   string
	preset  string
	width   int
	height  int
	frames  int
	dt      float64
	out     string
	scale   int
	workers int
	step    float64
	verbose bool
}

func parseFlags(args []string) (*options, error) {
	fs := flag.NewFlagSet("planetrender", flag.ContinueOnError)

	o := &options{}
	fs.StringVar(&o.scene, "scene", "", "YAML scene file (overrides -preset)")
	fs.StringVar(&o.preset, "preset", "green", "planet preset: "+strings.Join(preset.Names(), ", "))
	fs.IntVar(&o.width, "width", 0, "framebuffer width (default: scene width)")
	fs.IntVar(&o.height, "height", 0, "framebuffer height (default: scene height)")
	fs.IntVar(&o.frames, "frames", 1, "number of frames to render")
	fs.Float64Var(&o.dt, "dt", 1.0/30, "seconds of scene time between frames")
	fs.StringVar(&o.out, "out", "planet.png", "output file (.png or .bmp); a printf pattern such as %04d numbers frames")
	fs.IntVar(&o.scale, "scale", 1, "integer upscale factor applied to the output image")
	fs.IntVar(&o.workers, "workers", 0, "worker goroutines (0 = GOMAXPROCS)")
	fs.Float64Var(&o.step, "step", 1, "rasteriser sampling step in pixels")
	fs.BoolVar(&o.verbose, "v", false, "log per-frame statistics")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if o.frames < 1 {
		return nil, fmt.Errorf("-frames must be at least 1, got %d", o.frames)
	}
	if o.scale < 1 {
		return nil, fmt.Errorf("-scale must be at least 1, got %d", o.scale)
	}
	switch strings.ToLower(filepath.Ext(o.out)) {
	case ".png", ".bmp":
	default:
		return nil, fmt.Errorf("-out must end in .png or .bmp, got %q", o.out)
	}
	return o, nil
}

// framePath returns the output path of frame i. Multi-frame runs without
// a pattern get a -NNNN suffix before the extension.
func framePath(pattern string, i, frames int) string {
	if strings.Contains(pattern, "%") {
		return fmt.Sprintf(pattern, i)
	}
	if frames == 1 {
		return pattern
	}
	ext := filepath.Ext(pattern)
	return fmt.Sprintf("%s-%04d%s", strings.TrimSuffix(pattern, ext), i, ext)
}

func loadScene(o *options) (*preset.Scene, error) {
	var (
		s   *preset.Scene
		err error
	)
	if o.scene != "" {
		s, err = preset.LoadScene(o.scene)
	} else {
		s, err = preset.NewScene(o.preset)
	}
	if err != nil {
		return nil, err
	}
	s.Resize(o.width, o.height)
	return s, nil
}

func run(args []string) error {
	o, err := parseFlags(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}
	soft3d.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	s, err := loadScene(o)
	if err != nil {
		return fmt.Errorf("failed to load scene: %w", err)
	}
	entities, err := s.BuildEntities()
	if err != nil {
		return fmt.Errorf("failed to build entities: %w", err)
	}

	fb, err := soft3d.NewFramebuffer(s.Width, s.Height)
	if err != nil {
		return err
	}
	fb.SetBackground(s.Background)

	r := soft3d.NewRenderer(
		soft3d.WithWorkers(o.workers),
		soft3d.WithSampleStep(float32(o.step)),
	)
	defer r.Close()

	u := s.Uniforms()

	var bar *progressbar.ProgressBar
	if o.frames > 1 {
		bar = progressbar.Default(int64(o.frames), "rendering")
		defer bar.Close()
	}

	start := time.Now()
	var painted int
	for i := range o.frames {
		fb.Clear()
		st := r.Render(fb, entities, &u)
		painted += st.Painted

		if err := save(fb, framePath(o.out, i, o.frames), o.scale); err != nil {
			return fmt.Errorf("failed to save frame %d: %w", i, err)
		}

		u.Time += float32(o.dt)
		if bar != nil {
			_ = bar.Add(1)
		}
	}

	soft3d.Logger().Info("done",
		"frames", o.frames,
		"size", fmt.Sprintf("%dx%d", s.Width*o.scale, s.Height*o.scale),
		"painted", painted,
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	return nil
}

func save(fb *soft3d.Framebuffer, path string, scale int) error {
	bmpOut := strings.EqualFold(filepath.Ext(path), ".bmp")
	if scale == 1 {
		if bmpOut {
			return fb.SaveBMP(path)
		}
		return fb.SavePNG(path)
	}

	img := fb.Scaled(fb.Width()*scale, fb.Height()*scale)
	return writeImage(path, img, bmpOut)
}

func writeImage(path string, img image.Image, bmpOut bool) (err error) {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if bmpOut {
		return bmp.Encode(f, img)
	}
	return png.Encode(f, img)
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "planetrender: %v\n", err)
		os.Exit(1)
	}
}
