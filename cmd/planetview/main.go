// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Command planetview shows the soft3d planet presets in a window.
//
// Controls: arrow keys orbit the camera, W/S zoom, 1-8 switch presets,
// Esc quits.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/gogpu/soft3d"
	"github.com/gogpu/soft3d/camera"
	"github.com/gogpu/soft3d/mesh"
	"github.com/gogpu/soft3d/preset"
)

const (
	titlePrefix = "soft3d"

	// Preset-only sessions open at this size unless -width/-height say
	// otherwise; scene files keep their own size.
	presetWidth  = 480
	presetHeight = 320

	// orbitSpeed is in radians per second, zoomSpeed in units per second.
	orbitSpeed = math.Pi / 2
	zoomSpeed  = 6
)

var presetKeys = []ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4,
	ebiten.Key5, ebiten.Key6, ebiten.Key7, ebiten.Key8,
}

type viewer struct {
	fb       *soft3d.Framebuffer
	screen   *ebiten.Image
	renderer *soft3d.Renderer
	cam      *camera.Orbit
	uniforms soft3d.Uniforms

	sphere   []soft3d.Vertex
	entities []*soft3d.Entity
	title    string

	start time.Time
	last  time.Time
}

func newViewer(fb *soft3d.Framebuffer, r *soft3d.Renderer, s *preset.Scene) (*viewer, error) {
	entities, err := s.BuildEntities()
	if err != nil {
		return nil, err
	}
	title := preset.DisplayName(s.Entities[0].Preset)
	if title == "" {
		title = s.Entities[0].Name
	}

	now := time.Now()
	return &viewer{
		fb:       fb,
		screen:   ebiten.NewImage(fb.Width(), fb.Height()),
		renderer: r,
		cam:      camera.New(s.Camera.Eye, s.Camera.Center, s.Camera.Up),
		uniforms: s.Uniforms(),
		sphere:   mesh.Sphere(preset.DefaultStacks, preset.DefaultSlices),
		entities: entities,
		title:    title,
		start:    now.Add(-time.Duration(s.Time * float32(time.Second))),
		last:     now,
	}, nil
}

func (v *viewer) switchPreset(i int) {
	p := preset.Index(i)
	e, err := p.Entity(v.sphere)
	if err != nil {
		soft3d.Logger().Error("planetview: preset", "name", p.Name, "err", err)
		return
	}
	v.entities = []*soft3d.Entity{e}
	v.title = p.DisplayName()
	soft3d.Logger().Info("planetview: preset selected", "name", p.Name)
}

// Update handles input and advances time.
func (v *viewer) Update() error {
	if ebiten.IsWindowBeingClosed() || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	now := time.Now()
	dt := float32(now.Sub(v.last).Seconds())
	v.last = now

	var yaw, pitch, zoom float32
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		yaw -= orbitSpeed * dt
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		yaw += orbitSpeed * dt
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		pitch += orbitSpeed * dt
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		pitch -= orbitSpeed * dt
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) {
		zoom += zoomSpeed * dt
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) {
		zoom -= zoomSpeed * dt
	}
	if yaw != 0 || pitch != 0 {
		v.cam.Orbit(yaw, pitch)
	}
	if zoom != 0 {
		v.cam.Zoom(zoom)
	}

	for i, k := range presetKeys {
		if inpututil.IsKeyJustPressed(k) {
			v.switchPreset(i)
		}
	}

	if v.cam.Changed() {
		v.uniforms.SetCamera(v.cam.Eye, v.cam.Center, v.cam.Up)
		v.cam.ResetChanged()
	}
	v.uniforms.Time = float32(now.Sub(v.start).Seconds())

	v.fb.Clear()
	v.renderer.Render(v.fb, v.entities, &v.uniforms)

	ebiten.SetWindowTitle(fmt.Sprintf("%s - %s - %.1f fps", titlePrefix, v.title, ebiten.ActualFPS()))
	return nil
}

// Draw uploads the framebuffer and scales it to the window.
func (v *viewer) Draw(screen *ebiten.Image) {
	v.screen.WritePixels(v.fb.Pixels())
	screen.DrawImage(v.screen, nil)
}

// Layout keeps the logical screen at framebuffer resolution.
func (v *viewer) Layout(_, _ int) (int, int) {
	return v.fb.Width(), v.fb.Height()
}

func run(args []string) error {
	fs := flag.NewFlagSet("planetview", flag.ContinueOnError)
	scenePath := fs.String("scene", "", "YAML scene file (overrides -preset)")
	presetName := fs.String("preset", "green", "planet preset: "+strings.Join(preset.Names(), ", "))
	width := fs.Int("width", 0, "framebuffer width (default: scene width, 480 for presets)")
	height := fs.Int("height", 0, "framebuffer height (default: scene height, 320 for presets)")
	scale := fs.Int("scale", 2, "window scale factor")
	workers := fs.Int("workers", 0, "worker goroutines (0 = GOMAXPROCS)")
	step := fs.Float64("step", 1, "rasteriser sampling step in pixels")
	verbose := fs.Bool("v", false, "log per-frame statistics")
	if err := fs.Parse(args); err != nil {
		return err
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	soft3d.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	var (
		s   *preset.Scene
		err error
	)
	if *scenePath != "" {
		s, err = preset.LoadScene(*scenePath)
	} else {
		s, err = preset.NewScene(*presetName)
		if err == nil {
			s.Resize(presetWidth, presetHeight)
		}
	}
	if err != nil {
		return err
	}
	s.Resize(*width, *height)

	fb, err := soft3d.NewFramebuffer(s.Width, s.Height)
	if err != nil {
		return err
	}
	fb.SetBackground(s.Background)

	r := soft3d.NewRenderer(soft3d.WithWorkers(*workers), soft3d.WithSampleStep(float32(*step)))
	defer r.Close()

	v, err := newViewer(fb, r, s)
	if err != nil {
		return err
	}

	ebiten.SetWindowSize(s.Width*max(*scale, 1), s.Height*max(*scale, 1))
	ebiten.SetWindowTitle(titlePrefix + " - " + v.title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetVsyncEnabled(true)

	if err := ebiten.RunGame(v); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "planetview: %v\n", err)
		os.Exit(1)
	}
}
