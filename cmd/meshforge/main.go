// MeshForge - desktop client for a text-to-3D generation service.
package main

import (
	"context"
	"fmt"
	"image"
	"os"
	"runtime"
	"time"

	"github.com/AllenDang/cimgui-go/backend"
	"github.com/AllenDang/cimgui-go/backend/sdlbackend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/meshforge/internal/config"
	"github.com/Faultbox/meshforge/internal/engine/audio"
	"github.com/Faultbox/meshforge/internal/engine/debug"
	"github.com/Faultbox/meshforge/internal/engine/scene"
	"github.com/Faultbox/meshforge/internal/generation"
	"github.com/Faultbox/meshforge/internal/loader"
	"github.com/Faultbox/meshforge/internal/logger"
)

const thumbnailSize = 96

func main() {
	runtime.LockOSThread()

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

	logger.Info("=== MeshForge ===", zap.String("server", cfg.Server.BaseURL))

	app := NewApp(cfg)
	defer app.Close()

	app.Run()
}

// App holds the client state: generation pipeline, scene, and UI.
type App struct {
	backend backend.Backend[sdlbackend.SDLWindowFlags]
	cfg     *config.Config

	client     *generation.Client
	controller *generation.Controller
	loader     *loader.Loader
	scene      *scene.Scene
	audio      *audio.Manager
	capture    *debug.Capture

	// Generate panel state
	promptText string
	quality    generation.Quality
	enhance    bool
	activeJob  generation.Job
	jobRunning bool
	lastError  string

	// Viewer state
	modelName   string // safe name of the loaded model
	modelStats  string
	pendingName string // display name for the load in flight
	loadedFile  string // artifact filename of the installed mesh
	lastFiles   generation.Files
	loading     bool

	// Gallery state
	models         []generation.ModelInfo
	galleryErr     string
	galleryLoading bool
	galleryCh      chan galleryResult
	thumbnails     map[string]*backend.Texture
	thumbPending   string

	// Cross-thread results from dialogs and downloads
	localPicks chan string
	notices    chan string

	// Notification overlay
	notifyMsg  string
	notifyShow bool
	notifyTime time.Time

	screenshotRequested bool
	sceneReady          bool
}

type galleryResult struct {
	models []generation.ModelInfo
	err    error
}

// NewApp creates the application and its window.
func NewApp(cfg *config.Config) *App {
	quality, err := generation.ParseQuality(cfg.Generation.DefaultQuality)
	if err != nil {
		logger.Warn("invalid default_quality in config, using standard",
			zap.String("value", cfg.Generation.DefaultQuality))
		quality = generation.QualityStandard
	}

	client := generation.NewClient(generation.Config{
		BaseURL:         cfg.Server.BaseURL,
		RequestTimeout:  cfg.Server.RequestTimeout,
		DownloadTimeout: cfg.Server.DownloadTimeout,
	})

	app := &App{
		cfg:        cfg,
		client:     client,
		controller: generation.NewController(client, cfg.Server.PollInterval),
		loader:     loader.New(client),
		audio:      audio.New(),
		capture:    debug.NewCapture(cfg.Viewer.ScreenshotDir),
		quality:    quality,
		enhance:    cfg.Generation.EnhancePrompts,
		galleryCh:  make(chan galleryResult, 1),
		thumbnails: make(map[string]*backend.Texture),
		localPicks: make(chan string, 1),
		notices:    make(chan string, 4),
	}

	app.scene = scene.New(scene.Config{
		Width:      1024,
		Height:     768,
		Background: cfg.Viewer.Background,
		PointSize:  cfg.Viewer.PointSize,
		Wireframe:  cfg.Viewer.Wireframe,
		ShowBounds: cfg.Viewer.ShowBounds,
	})

	if err := app.audio.Init(); err != nil {
		logger.Warn("audio unavailable", zap.Error(err))
	}
	app.audio.SetVolume(float64(cfg.Audio.Volume))
	app.audio.SetMuted(cfg.Audio.Muted)

	app.backend, err = backend.CreateBackend(sdlbackend.NewSDLBackend())
	if err != nil {
		panic(fmt.Sprintf("failed to create backend: %v", err))
	}

	app.backend.SetBgColor(imgui.NewVec4(0.1, 0.1, 0.12, 1.0))
	app.backend.CreateWindow("MeshForge", cfg.Graphics.Width, cfg.Graphics.Height)

	if err := gl.Init(); err != nil {
		panic(fmt.Sprintf("OpenGL init failed: %v", err))
	}
	if err := app.scene.InitGL(); err != nil {
		panic(fmt.Sprintf("scene init failed: %v", err))
	}
	app.sceneReady = true

	app.refreshGallery()

	return app
}

// Close cleans up resources.
func (app *App) Close() {
	app.controller.Cancel()
	for _, tex := range app.thumbnails {
		if tex != nil {
			tex.Release()
		}
	}
	app.thumbnails = nil
	if app.scene != nil {
		app.scene.Dispose()
	}
	app.audio.Close()
}

// Run starts the main application loop.
func (app *App) Run() {
	app.backend.Run(app.render)
}

// render is called each frame to draw the UI.
func (app *App) render() {
	app.drainEvents()
	app.drainResults()
	app.drainLocalPicks()
	app.drainGallery()
	app.drainNotices()

	if imgui.IsKeyChordPressed(imgui.KeyChord(imgui.KeyF12)) {
		app.screenshotRequested = true
	}

	if imgui.BeginMainMenuBar() {
		if imgui.BeginMenu("File") {
			if imgui.MenuItemBool("Open Local Model...") {
				app.openFileDialog()
			}
			if imgui.MenuItemBool("Save Model As...") {
				app.saveModelDialog()
			}
			imgui.Separator()
			if imgui.MenuItemBool("Exit") {
				os.Exit(0)
			}
			imgui.EndMenu()
		}
		if imgui.BeginMenu("View") {
			if imgui.MenuItemBool("Reset Camera") {
				app.scene.ResetCamera()
			}
			if imgui.MenuItemBool("Cycle Background") {
				app.scene.CycleBackground()
			}
			if imgui.MenuItemBool("Toggle Wireframe") {
				app.scene.ToggleWireframe()
			}
			if imgui.MenuItemBool("Toggle Bounds") {
				app.scene.ToggleBounds()
			}
			imgui.Separator()
			muted := app.audio.Muted()
			if imgui.Checkbox("Mute Sounds", &muted) {
				app.audio.SetMuted(muted)
			}
			imgui.Separator()
			if imgui.MenuItemBool("Save Settings") {
				app.saveSettings()
			}
			imgui.EndMenu()
		}
		imgui.EndMainMenuBar()
	}

	viewport := imgui.MainViewport()
	workPos := viewport.WorkPos()
	workSize := viewport.WorkSize()

	leftPanelWidth := float32(360)
	statusBarHeight := float32(30)
	contentHeight := workSize.Y - statusBarHeight

	flags := imgui.WindowFlagsNoMove | imgui.WindowFlagsNoResize | imgui.WindowFlagsNoCollapse

	// Left panel - Generate on top, Gallery below
	imgui.SetNextWindowPos(workPos)
	imgui.SetNextWindowSize(imgui.NewVec2(leftPanelWidth, contentHeight))
	if imgui.BeginV("Generate", nil, flags) {
		app.renderGeneratePanel()
		imgui.Separator()
		app.renderGalleryPanel()
	}
	imgui.End()

	// Center panel - 3D viewer
	imgui.SetNextWindowPos(imgui.NewVec2(workPos.X+leftPanelWidth, workPos.Y))
	imgui.SetNextWindowSize(imgui.NewVec2(workSize.X-leftPanelWidth, contentHeight))
	if imgui.BeginV("Viewer", nil, flags) {
		app.renderViewerPanel()
	}
	imgui.End()

	// Status bar at bottom
	imgui.SetNextWindowPos(imgui.NewVec2(workPos.X, workPos.Y+contentHeight))
	imgui.SetNextWindowSize(imgui.NewVec2(workSize.X, statusBarHeight))
	statusFlags := flags | imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoScrollbar
	if imgui.BeginV("##StatusBar", nil, statusFlags) {
		app.renderStatusBar()
	}
	imgui.End()

	if app.cfg.Viewer.ShowStats {
		app.renderStatsOverlay(workPos, workSize)
	}

	// Notification overlay, shown for 2 seconds
	if app.notifyShow && time.Since(app.notifyTime) < 2*time.Second {
		notifyFlags := imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoResize |
			imgui.WindowFlagsNoMove | imgui.WindowFlagsNoScrollbar |
			imgui.WindowFlagsAlwaysAutoResize | imgui.WindowFlagsNoFocusOnAppearing
		imgui.SetNextWindowPos(imgui.NewVec2(workPos.X+10, workPos.Y+10))
		imgui.SetNextWindowBgAlpha(0.85)
		if imgui.BeginV("##Notify", nil, notifyFlags) {
			imgui.Text(app.notifyMsg)
		}
		imgui.End()
	} else if app.notifyShow {
		app.notifyShow = false
	}
}

// renderStatsOverlay draws the frame rate and model counters in the
// top-right corner. Enabled with -debug or viewer.show_stats.
func (app *App) renderStatsOverlay(workPos, workSize imgui.Vec2) {
	const overlayWidth = 220

	imgui.SetNextWindowPos(imgui.NewVec2(workPos.X+workSize.X-overlayWidth-10, workPos.Y+10))
	imgui.SetNextWindowSize(imgui.NewVec2(overlayWidth, 0))
	imgui.SetNextWindowBgAlpha(0.6)

	overlayFlags := imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoResize |
		imgui.WindowFlagsNoMove | imgui.WindowFlagsNoScrollbar |
		imgui.WindowFlagsNoSavedSettings | imgui.WindowFlagsNoFocusOnAppearing |
		imgui.WindowFlagsNoInputs

	if imgui.BeginV("##StatsOverlay", nil, overlayFlags) {
		fps := imgui.CurrentIO().Framerate()
		fpsColor := imgui.NewVec4(0.2, 1.0, 0.2, 1.0)
		if fps < 30 {
			fpsColor = imgui.NewVec4(1.0, 0.2, 0.2, 1.0)
		} else if fps < 60 {
			fpsColor = imgui.NewVec4(1.0, 1.0, 0.2, 1.0)
		}
		imgui.TextColored(fpsColor, fmt.Sprintf("FPS: %.1f", fps))
		if fps > 0 {
			imgui.SameLine()
			imgui.TextDisabled(fmt.Sprintf("(%.2f ms)", 1000.0/fps))
		}

		if mesh := app.scene.Mesh(); mesh != nil {
			imgui.Text(fmt.Sprintf("Vertices: %d", mesh.VertexCount()))
			imgui.Text(fmt.Sprintf("Faces: %d", mesh.FaceCount()))
		}
		if app.jobRunning {
			imgui.Text(fmt.Sprintf("Job: %s %.0f%%", app.activeJob.Status, app.activeJob.Progress))
		}
	}
	imgui.End()
}

// showNotification displays a brief overlay notification message.
func (app *App) showNotification(msg string) {
	app.notifyMsg = msg
	app.notifyShow = true
	app.notifyTime = time.Now()
}

// saveSettings writes the live viewer and generation state back to the
// user's config file.
func (app *App) saveSettings() {
	app.cfg.Viewer.Background = app.scene.Background()
	app.cfg.Viewer.Wireframe = app.scene.Wireframe()
	app.cfg.Viewer.ShowBounds = app.scene.ShowBounds()
	app.cfg.Viewer.PointSize = app.scene.PointSize()
	app.cfg.Generation.DefaultQuality = string(app.quality)
	app.cfg.Generation.EnhancePrompts = app.enhance
	app.cfg.Audio.Muted = app.audio.Muted()

	if err := app.cfg.Save(); err != nil {
		logger.Error("saving settings", zap.Error(err))
		app.showNotification("Could not save settings")
		return
	}
	app.showNotification("Settings saved")
}

// renderStatusBar renders the status bar at the bottom.
func (app *App) renderStatusBar() {
	switch {
	case app.jobRunning:
		imgui.Text(fmt.Sprintf("%s | job %s: %s (%.0f%%)",
			app.client.BaseURL(), app.activeJob.ID, app.activeJob.Status, app.activeJob.Progress))
	case app.loading:
		imgui.Text(fmt.Sprintf("%s | loading model...", app.client.BaseURL()))
	case app.modelName != "":
		imgui.Text(fmt.Sprintf("%s | %s | %s", app.client.BaseURL(), app.modelName, app.modelStats))
	default:
		imgui.Text(fmt.Sprintf("%s | no model loaded", app.client.BaseURL()))
	}
}

// openFileDialog shows a native dialog to pick a local PLY file.
// SDL window operations must stay on the main thread, so the result is
// queued and picked up in render().
func (app *App) openFileDialog() {
	go func() {
		filename, err := dialog.File().
			Filter("PLY Models", "ply").
			Filter("All Files", "*").
			Title("Open Model").
			Load()
		if err != nil {
			if err != dialog.ErrCancelled {
				logger.Warn("file dialog failed", zap.Error(err))
			}
			return
		}
		select {
		case app.localPicks <- filename:
		default:
		}
	}()
}

// saveModelDialog picks a directory and downloads every artifact of the
// current model into it.
func (app *App) saveModelDialog() {
	files := app.lastFiles
	if len(files.List()) == 0 {
		app.showNotification("No model to save")
		return
	}

	go func() {
		dir, err := dialog.Directory().Title("Choose download directory").Browse()
		if err != nil {
			if err != dialog.ErrCancelled {
				logger.Warn("directory dialog failed", zap.Error(err))
			}
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		paths, err := app.client.DownloadAll(ctx, files, dir)
		if err != nil {
			logger.Warn("download failed", zap.Error(err))
			app.notices <- fmt.Sprintf("Download failed: %v", err)
			return
		}
		logger.Info("artifacts downloaded",
			zap.Int("count", len(paths)), zap.String("dir", dir))
		app.notices <- fmt.Sprintf("Saved %d file(s) to %s", len(paths), dir)
	}()
}

// captureViewer saves the current viewer framebuffer as a PNG.
func (app *App) captureViewer() {
	pixels, w, h := app.scene.CaptureImage()
	if pixels == nil {
		app.showNotification("Screenshot failed: viewer not ready")
		return
	}

	img := &image.RGBA{Pix: pixels, Stride: int(w) * 4, Rect: image.Rect(0, 0, int(w), int(h))}
	name := app.modelName
	if name == "" {
		name = "viewer"
	}
	path, err := app.capture.FromImage(name, img)
	if err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
		app.showNotification(fmt.Sprintf("Screenshot failed: %v", err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
	app.showNotification("Saved: " + path)
}
