package scene

import (
	"testing"

	"github.com/Faultbox/meshforge/internal/engine/model"
	"github.com/Faultbox/meshforge/pkg/math"
)

// All tests here run against the scene's plain state; GL-side behavior
// needs a live context and is exercised by the viewer binaries.

func testMesh() *model.Mesh {
	mesh := &model.Mesh{
		Vertices: []model.Vertex{
			{Position: [3]float32{-1, -1, -1}},
			{Position: [3]float32{1, 1, 1}},
		},
	}
	mesh.RecomputeBounds()
	return mesh
}

func TestPaletteCyclesAndWraps(t *testing.T) {
	if len(backgroundPalette) != PaletteSize {
		t.Fatalf("palette has %d colors, want %d", len(backgroundPalette), PaletteSize)
	}

	s := New(DefaultConfig())
	if s.Background() != 0 {
		t.Fatalf("initial background = %d, want 0", s.Background())
	}

	seen := map[int]bool{0: true}
	for i := 1; i < PaletteSize; i++ {
		got := s.CycleBackground()
		if got != i {
			t.Errorf("cycle %d returned index %d", i, got)
		}
		if seen[got] {
			t.Errorf("index %d repeated before wrap", got)
		}
		seen[got] = true
	}

	if got := s.CycleBackground(); got != 0 {
		t.Errorf("cycle after last color = %d, want wrap to 0", got)
	}
}

func TestBackgroundFromConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Background = 7 // out of range, reduced modulo palette

	s := New(cfg)
	if s.Background() != 7%PaletteSize {
		t.Errorf("background = %d, want %d", s.Background(), 7%PaletteSize)
	}

	cfg.Background = -1
	s = New(cfg)
	if got := s.Background(); got < 0 || got >= PaletteSize {
		t.Errorf("negative config index mapped to %d, want in [0,%d)", got, PaletteSize)
	}
}

func TestInstallMeshReplaces(t *testing.T) {
	s := New(DefaultConfig())
	if s.HasMesh() {
		t.Fatal("new scene has a mesh")
	}

	first := testMesh()
	second := testMesh()

	s.InstallMesh(first)
	if s.Mesh() != first {
		t.Fatal("first mesh not installed")
	}

	s.InstallMesh(second)
	if s.Mesh() != second {
		t.Error("second install did not replace the first mesh")
	}

	s.ClearMesh()
	if s.HasMesh() {
		t.Error("mesh still present after ClearMesh")
	}
}

func TestToggleWireframe(t *testing.T) {
	s := New(DefaultConfig())

	// No mesh: toggling is a no-op.
	if got := s.ToggleWireframe(); got {
		t.Error("toggle without mesh changed the flag")
	}

	s.InstallMesh(testMesh())
	if got := s.ToggleWireframe(); !got {
		t.Error("toggle with mesh did not enable wireframe")
	}

	// The flag persists across loads.
	s.ClearMesh()
	s.InstallMesh(testMesh())
	if !s.Wireframe() {
		t.Error("wireframe flag did not persist across mesh loads")
	}
}

func TestResetRebuildsRig(t *testing.T) {
	s := New(DefaultConfig())

	rig := s.Rig()
	rig.Lights[0].Intensity = 42
	rig.Ambient = [3]float32{9, 9, 9}

	s.Reset()

	fresh := s.Rig()
	if fresh == rig {
		t.Fatal("Reset kept the old rig instance")
	}
	if fresh.Lights[0].Intensity == 42 || fresh.Ambient == ([3]float32{9, 9, 9}) {
		t.Error("Reset did not restore default rig values")
	}

	// Repeated resets never grow the rig.
	for i := 0; i < 10; i++ {
		s.Reset()
	}
	if len(s.Rig().Lights) != len(fresh.Lights) {
		t.Errorf("rig grew to %d lights after repeated resets", len(s.Rig().Lights))
	}
}

func TestResetCameraFraming(t *testing.T) {
	s := New(DefaultConfig())

	s.Camera.HandleDrag(500, 300)
	s.Camera.HandleZoom(5)
	s.ResetCamera()
	defaultDist := s.Camera.Distance

	// A mesh spanning the canonical envelope gets fit-to-bounds framing.
	s.InstallMesh(testMesh())
	s.Camera.HandleZoom(5)
	s.ResetCamera()

	if s.Camera.Center != (math.Vec3{}) {
		t.Errorf("camera center = %v, want mesh center", s.Camera.Center)
	}
	// A canonical-size mesh frames at the same distance as the default.
	if s.Camera.Distance != defaultDist {
		t.Errorf("fit distance = %v, want %v", s.Camera.Distance, defaultDist)
	}
}

func TestResizeIdempotent(t *testing.T) {
	s := New(DefaultConfig())

	s.Resize(800, 600)
	w, h := s.Size()
	if w != 800 || h != 600 {
		t.Fatalf("Size = %dx%d, want 800x600", w, h)
	}

	// Same dimensions again: nothing changes.
	s.Resize(800, 600)
	w, h = s.Size()
	if w != 800 || h != 600 {
		t.Errorf("Size after repeat resize = %dx%d", w, h)
	}

	// Degenerate dimensions are clamped.
	s.Resize(0, -5)
	w, h = s.Size()
	if w < 1 || h < 1 {
		t.Errorf("Size after zero resize = %dx%d", w, h)
	}
}

func TestToggleBounds(t *testing.T) {
	s := New(DefaultConfig())

	if s.ShowBounds() {
		t.Fatal("bounds overlay enabled by default")
	}
	if got := s.ToggleBounds(); !got {
		t.Error("first toggle did not enable the overlay")
	}
	if got := s.ToggleBounds(); got {
		t.Error("second toggle did not disable the overlay")
	}

	cfg := DefaultConfig()
	cfg.ShowBounds = true
	if !New(cfg).ShowBounds() {
		t.Error("config ShowBounds not honored")
	}
}

func TestSetPointSize(t *testing.T) {
	s := New(DefaultConfig())

	s.SetPointSize(5)
	if s.PointSize() != 5 {
		t.Errorf("PointSize = %v, want 5", s.PointSize())
	}

	s.SetPointSize(-1)
	if s.PointSize() != 5 {
		t.Errorf("non-positive size accepted: %v", s.PointSize())
	}
}

func TestDispose(t *testing.T) {
	s := New(DefaultConfig())
	s.InstallMesh(testMesh())

	s.Dispose()

	if !s.Disposed() {
		t.Fatal("Disposed() = false after Dispose")
	}
	if s.HasMesh() {
		t.Error("mesh still attached after Dispose")
	}
	if got := s.Render(); got != 0 {
		t.Errorf("Render after Dispose = %d, want 0", got)
	}

	s.InstallMesh(testMesh())
	if s.HasMesh() {
		t.Error("InstallMesh succeeded on a disposed scene")
	}

	// Dispose is safe to call twice.
	s.Dispose()
}

func TestRenderBeforeInitGL(t *testing.T) {
	s := New(DefaultConfig())
	s.InstallMesh(testMesh())

	if got := s.Render(); got != 0 {
		t.Errorf("Render before InitGL = %d, want 0", got)
	}
	if pixels, _, _ := s.CaptureImage(); pixels != nil {
		t.Error("CaptureImage before InitGL returned data")
	}
}
