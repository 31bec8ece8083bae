// Package scene owns the viewer's render state: camera, light rig,
// background palette, wireframe mode, and the single displayed mesh.
package scene

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/meshforge/internal/engine/camera"
	"github.com/Faultbox/meshforge/internal/engine/framebuffer"
	"github.com/Faultbox/meshforge/internal/engine/lighting"
	"github.com/Faultbox/meshforge/internal/engine/model"
	"github.com/Faultbox/meshforge/pkg/math"
)

// PaletteSize is the number of background colors in the cycle.
const PaletteSize = 5

// backgroundPalette is the fixed ordered cycle of clear colors.
var backgroundPalette = [PaletteSize][3]float32{
	{0.10, 0.11, 0.13}, // charcoal
	{0.17, 0.18, 0.21}, // slate
	{0.94, 0.94, 0.92}, // studio white
	{0.05, 0.08, 0.15}, // midnight
	{0.14, 0.09, 0.17}, // plum
}

// Config contains scene configuration options.
type Config struct {
	Width      int32
	Height     int32
	Background int
	PointSize  float32
	Wireframe  bool
	ShowBounds bool
}

// DefaultConfig returns a default scene configuration.
func DefaultConfig() Config {
	return Config{
		Width:     1280,
		Height:    720,
		PointSize: 3.0,
	}
}

// Scene drives the model viewport. Plain state (camera, rig, palette
// index, flags, the current mesh) works without a GL context; GL
// resources exist only between InitGL and Dispose and are touched on
// the main thread.
type Scene struct {
	config Config

	// Camera is the viewer's orbit camera.
	Camera *camera.Orbit

	rig        *lighting.Rig
	background int
	wireframe  bool
	showBounds bool
	pointSize  float32

	mesh      *model.Mesh
	meshDirty bool // GPU buffers out of sync with mesh

	framebuffer *framebuffer.Framebuffer
	renderer    *MeshRenderer
	bounds      *BoundsRenderer
	initialized bool
	disposed    bool
}

// New creates a scene with the given configuration. No GL calls are
// made until InitGL.
func New(cfg Config) *Scene {
	if cfg.Width < 1 {
		cfg.Width = 1
	}
	if cfg.Height < 1 {
		cfg.Height = 1
	}
	if cfg.PointSize <= 0 {
		cfg.PointSize = 3.0
	}

	s := &Scene{
		config:     cfg,
		Camera:     camera.NewOrbit(),
		background: ((cfg.Background % PaletteSize) + PaletteSize) % PaletteSize,
		wireframe:  cfg.Wireframe,
		showBounds: cfg.ShowBounds,
		pointSize:  cfg.PointSize,
	}
	s.Reset()
	return s
}

// Reset rebuilds the light rig from scratch. The rig is replaced
// wholesale, never appended to, so repeated resets cannot accumulate
// lights.
func (s *Scene) Reset() {
	s.rig = lighting.DefaultRig()
}

// InitGL creates the framebuffer and mesh renderer. Requires a current
// GL context on the calling thread.
func (s *Scene) InitGL() error {
	if s.disposed {
		return fmt.Errorf("scene is disposed")
	}
	if s.initialized {
		return nil
	}

	fb, err := framebuffer.New(s.config.Width, s.config.Height)
	if err != nil {
		return fmt.Errorf("creating framebuffer: %w", err)
	}

	renderer, err := NewMeshRenderer()
	if err != nil {
		fb.Destroy()
		return fmt.Errorf("creating mesh renderer: %w", err)
	}

	bounds, err := NewBoundsRenderer()
	if err != nil {
		renderer.Destroy()
		fb.Destroy()
		return fmt.Errorf("creating bounds renderer: %w", err)
	}

	s.framebuffer = fb
	s.renderer = renderer
	s.bounds = bounds
	s.initialized = true
	s.meshDirty = s.mesh != nil
	return nil
}

// InstallMesh makes the given mesh the scene's single displayed model,
// replacing any previous one. GPU buffers of the replaced mesh are
// released on the next rendered frame.
func (s *Scene) InstallMesh(mesh *model.Mesh) {
	if s.disposed {
		return
	}
	s.mesh = mesh
	s.meshDirty = true
}

// ClearMesh removes the current mesh.
func (s *Scene) ClearMesh() {
	s.InstallMesh(nil)
}

// Mesh returns the current mesh, or nil.
func (s *Scene) Mesh() *model.Mesh {
	return s.mesh
}

// HasMesh reports whether a mesh is installed.
func (s *Scene) HasMesh() bool {
	return s.mesh != nil
}

// ResetCamera reframes the view: fit to the current mesh bounds when a
// mesh is present, default framing otherwise.
func (s *Scene) ResetCamera() {
	if s.mesh != nil {
		b := s.mesh.Bounds
		s.Camera.FitToBounds(
			math.Vec3{X: b.Min[0], Y: b.Min[1], Z: b.Min[2]},
			math.Vec3{X: b.Max[0], Y: b.Max[1], Z: b.Max[2]},
		)
		return
	}
	s.Camera.Reset()
}

// CycleBackground advances to the next palette color, wrapping to the
// first after the last. Returns the new index.
func (s *Scene) CycleBackground() int {
	s.background = (s.background + 1) % PaletteSize
	return s.background
}

// Background returns the active palette index.
func (s *Scene) Background() int {
	return s.background
}

// BackgroundColor returns the active clear color.
func (s *Scene) BackgroundColor() [3]float32 {
	return backgroundPalette[s.background]
}

// ToggleWireframe flips wireframe mode. Without a mesh it is a no-op.
// Once set, the flag persists across mesh loads.
func (s *Scene) ToggleWireframe() bool {
	if s.mesh == nil {
		return s.wireframe
	}
	s.wireframe = !s.wireframe
	return s.wireframe
}

// Wireframe returns the current wireframe flag.
func (s *Scene) Wireframe() bool {
	return s.wireframe
}

// ToggleBounds flips the bounding-box overlay and returns the new
// state.
func (s *Scene) ToggleBounds() bool {
	s.showBounds = !s.showBounds
	return s.showBounds
}

// ShowBounds returns whether the bounding-box overlay is drawn.
func (s *Scene) ShowBounds() bool {
	return s.showBounds
}

// PointSize returns the point-cloud draw size.
func (s *Scene) PointSize() float32 {
	return s.pointSize
}

// SetPointSize updates the point-cloud draw size.
func (s *Scene) SetPointSize(size float32) {
	if size > 0 {
		s.pointSize = size
	}
}

// Rig returns the active light rig.
func (s *Scene) Rig() *lighting.Rig {
	return s.rig
}

// Resize updates the output dimensions. Unchanged dimensions are a
// no-op.
func (s *Scene) Resize(width, height int32) {
	if width == s.config.Width && height == s.config.Height {
		return
	}
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	s.config.Width = width
	s.config.Height = height
	if s.initialized {
		s.framebuffer.Resize(width, height)
	}
}

// Size returns the output dimensions.
func (s *Scene) Size() (width, height int32) {
	return s.config.Width, s.config.Height
}

// Render draws one frame into the offscreen framebuffer and returns
// its color texture. Pending mesh changes are synced to the GPU first.
// Returns 0 before InitGL or after Dispose.
func (s *Scene) Render() uint32 {
	if !s.initialized || s.disposed {
		return 0
	}

	if s.meshDirty {
		s.renderer.Upload(s.mesh)
		s.bounds.Upload(s.mesh)
		s.meshDirty = false
	}

	restore := s.framebuffer.BindWithViewport()
	defer restore()

	bg := backgroundPalette[s.background]
	s.framebuffer.Clear(bg[0], bg[1], bg[2], 1.0)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)

	if s.renderer.HasMesh() {
		aspect := float32(s.config.Width) / float32(s.config.Height)
		proj := math.Perspective(0.785398, aspect, 0.05, 100.0) // 45 degree FOV
		viewProj := proj.Mul(s.Camera.ViewMatrix())
		s.renderer.Render(viewProj, s.rig, s.wireframe, s.pointSize)
		if s.showBounds {
			s.bounds.Render(viewProj)
		}
	}

	return s.framebuffer.ColorTexture()
}

// Present blits the last rendered frame onto the default framebuffer,
// scaled to the window's drawable size. No-op before InitGL.
func (s *Scene) Present(width, height int32) {
	if !s.initialized || s.disposed {
		return
	}
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, 0)
	s.framebuffer.BlitTo(width, height)
}

// CaptureImage captures the last rendered frame as RGBA pixel data.
// Pixels are returned top-to-bottom. Returns nil before InitGL.
func (s *Scene) CaptureImage() ([]byte, int32, int32) {
	if !s.initialized || s.disposed {
		return nil, 0, 0
	}

	width, height := s.framebuffer.Size()
	pixels := s.framebuffer.ReadPixels()

	// Flip vertically (GL origin is bottom-left)
	rowSize := int(width) * 4
	flipped := make([]byte, len(pixels))
	for y := 0; y < int(height); y++ {
		srcRow := (int(height) - 1 - y) * rowSize
		dstRow := y * rowSize
		copy(flipped[dstRow:dstRow+rowSize], pixels[srcRow:srcRow+rowSize])
	}

	return flipped, width, height
}

// Dispose releases all GL resources and detaches the mesh. The scene
// is unusable afterward.
func (s *Scene) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	s.mesh = nil
	s.meshDirty = false

	if s.bounds != nil {
		s.bounds.Destroy()
		s.bounds = nil
	}
	if s.renderer != nil {
		s.renderer.Destroy()
		s.renderer = nil
	}
	if s.framebuffer != nil {
		s.framebuffer.Destroy()
		s.framebuffer = nil
	}
	s.initialized = false
}

// Disposed reports whether Dispose has been called.
func (s *Scene) Disposed() bool {
	return s.disposed
}
