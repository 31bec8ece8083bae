// MeshView - standalone OpenGL viewer for generated PLY models.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/meshforge/internal/config"
	"github.com/Faultbox/meshforge/internal/engine/debug"
	"github.com/Faultbox/meshforge/internal/engine/input"
	"github.com/Faultbox/meshforge/internal/engine/scene"
	"github.com/Faultbox/meshforge/internal/engine/window"
	"github.com/Faultbox/meshforge/internal/generation"
	"github.com/Faultbox/meshforge/internal/loader"
	"github.com/Faultbox/meshforge/internal/logger"
)

var (
	flagFile  = flag.String("file", "", "Path to a local PLY model")
	flagModel = flag.String("model", "", "Artifact filename to fetch from the generation server")
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if *flagFile == "" && *flagModel == "" {
		fmt.Fprintln(os.Stderr, "Usage: meshview -file <model.ply> | -model <artifact> [-server <url>]")
		os.Exit(2)
	}

	// Fetch and parse before opening the window so a slow download does
	// not sit behind a frozen frame.
	res, name := loadModel(cfg)
	if res.Err != nil {
		logger.Error("model load failed", zap.Error(res.Err))
		os.Exit(1)
	}

	v, err := newViewer(cfg)
	if err != nil {
		logger.Error("viewer init failed", zap.Error(err))
		os.Exit(1)
	}
	defer v.Close()

	v.install(res, name)

	if err := v.Run(); err != nil {
		logger.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("viewer closed")
}

// loadModel resolves the -file/-model flag into a parsed, normalized mesh.
func loadModel(cfg *config.Config) (loader.Result, string) {
	if *flagFile != "" {
		base := filepath.Base(*flagFile)
		name := generation.SafeName(strings.TrimSuffix(base, filepath.Ext(base)))
		return loader.FromFile(*flagFile), name
	}

	client := generation.NewClient(generation.Config{
		BaseURL:         cfg.Server.BaseURL,
		RequestTimeout:  cfg.Server.RequestTimeout,
		DownloadTimeout: cfg.Server.DownloadTimeout,
	})
	ld := loader.New(client)
	ld.Load(context.Background(), *flagModel)
	res := <-ld.Results()

	name := generation.SafeName(strings.TrimSuffix(*flagModel, filepath.Ext(*flagModel)))
	return res, name
}

// viewer owns the window, input handling and scene for one model.
type viewer struct {
	cfg     *config.Config
	window  *window.Window
	input   *input.Pump
	scene   *scene.Scene
	capture *debug.Capture

	running   bool
	modelName string

	screenshotPending bool

	dragButton uint8 // active mouse button, 0 when not dragging
	lastX      int
	lastY      int
}

func newViewer(cfg *config.Config) (*viewer, error) {
	v := &viewer{
		cfg:     cfg,
		capture: debug.NewCapture(cfg.Viewer.ScreenshotDir),
	}

	var err error
	v.window, err = window.New(window.Config{
		Title:      "MeshView",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("creating window: %w", err)
	}

	if err := gl.Init(); err != nil {
		v.window.Close()
		return nil, fmt.Errorf("initializing OpenGL: %w", err)
	}

	pw, ph := v.window.GetDrawableSize()
	v.scene = scene.New(scene.Config{
		Width:      int32(pw),
		Height:     int32(ph),
		Background: cfg.Viewer.Background,
		PointSize:  cfg.Viewer.PointSize,
		Wireframe:  cfg.Viewer.Wireframe,
		ShowBounds: cfg.Viewer.ShowBounds,
	})
	if err := v.scene.InitGL(); err != nil {
		v.window.Close()
		return nil, fmt.Errorf("initializing scene: %w", err)
	}

	v.input = input.NewPump()
	return v, nil
}

func (v *viewer) install(res loader.Result, name string) {
	v.modelName = name
	v.scene.InstallMesh(res.Mesh)
	v.scene.ResetCamera()
	v.window.SetTitle(fmt.Sprintf("MeshView - %s (%d vertices, %d faces)",
		name, res.Mesh.VertexCount(), res.Mesh.FaceCount()))
}

// Run drives the render loop until quit.
func (v *viewer) Run() error {
	v.running = true

	frameCount := 0
	fpsTimer := time.Now()

	var frameDur time.Duration
	if v.cfg.Graphics.FPSLimit > 0 {
		frameDur = time.Second / time.Duration(v.cfg.Graphics.FPSLimit)
	}

	for v.running {
		frameStart := time.Now()

		if v.input.Poll() {
			v.running = false
			break
		}
		for _, ev := range v.input.Events() {
			v.handleEvent(ev)
		}

		v.scene.Render()
		pw, ph := v.window.GetDrawableSize()
		v.scene.Present(int32(pw), int32(ph))

		if v.screenshotPending {
			v.screenshotPending = false
			v.screenshot(pw, ph)
		}

		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps", zap.Int("frames", frameCount))
			frameCount = 0
			fpsTimer = time.Now()
		}

		if frameDur > 0 {
			if sleep := frameDur - time.Since(frameStart); sleep > 0 {
				time.Sleep(sleep)
			}
		}
	}

	return nil
}

func (v *viewer) handleEvent(ev input.Event) {
	switch ev.Kind {
	case input.KindResize:
		pw, ph := v.window.GetDrawableSize()
		v.scene.Resize(int32(pw), int32(ph))

	case input.KindKeyDown:
		v.handleKey(ev.Key)

	case input.KindMouseDown:
		if ev.Button == sdl.BUTTON_LEFT || ev.Button == sdl.BUTTON_RIGHT {
			v.dragButton = ev.Button
			v.lastX, v.lastY = ev.X, ev.Y
		}

	case input.KindMouseUp:
		if ev.Button == v.dragButton {
			v.dragButton = 0
		}

	case input.KindMouseMove:
		if v.dragButton == 0 {
			return
		}
		dx := float32(ev.X - v.lastX)
		dy := float32(ev.Y - v.lastY)
		v.lastX, v.lastY = ev.X, ev.Y
		if v.dragButton == sdl.BUTTON_RIGHT {
			v.scene.Camera.HandlePan(dx, dy)
		} else {
			v.scene.Camera.HandleDrag(dx, dy)
		}

	case input.KindWheel:
		v.scene.Camera.HandleZoom(float32(ev.WheelY))
	}
}

func (v *viewer) handleKey(key sdl.Scancode) {
	switch key {
	case sdl.SCANCODE_ESCAPE:
		v.running = false
	case sdl.SCANCODE_B:
		v.scene.CycleBackground()
	case sdl.SCANCODE_F:
		v.scene.ToggleWireframe()
	case sdl.SCANCODE_X:
		v.scene.ToggleBounds()
	case sdl.SCANCODE_R:
		v.scene.ResetCamera()
	case sdl.SCANCODE_S:
		v.screenshotPending = true
	}
}

// screenshot reads the back buffer before it is presented.
func (v *viewer) screenshot(width, height int) {
	pixels := make([]byte, width*height*4)
	gl.ReadBuffer(gl.BACK)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))

	path, err := v.capture.FromPixels(v.modelName, pixels, width, height)
	if err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

// Close releases the scene and window.
func (v *viewer) Close() {
	if v.scene != nil {
		v.scene.Dispose()
	}
	if v.window != nil {
		v.window.Close()
	}
}
