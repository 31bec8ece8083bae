package camera

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/meshforge/pkg/math"
)

func nearf(a, b, eps float32) bool {
	return float32(gomath.Abs(float64(a-b))) <= eps
}

func TestNewOrbitDefaults(t *testing.T) {
	c := NewOrbit()

	if c.Distance != defaultDistance {
		t.Errorf("Distance = %v, want %v", c.Distance, defaultDistance)
	}
	if c.Center != (math.Vec3{}) {
		t.Errorf("Center = %v, want origin", c.Center)
	}
	if c.MinDistance <= 0 || c.MaxDistance <= c.MinDistance {
		t.Errorf("distance constraints invalid: min %v max %v", c.MinDistance, c.MaxDistance)
	}
	if c.MaxPitch <= 0 {
		t.Errorf("MaxPitch = %v, want positive", c.MaxPitch)
	}
}

func TestPositionGeometry(t *testing.T) {
	c := NewOrbit()
	c.Center = math.Vec3{X: 1, Y: 2, Z: 3}
	c.Pitch = 0
	c.Yaw = 0
	c.Distance = 5

	pos := c.Position()
	if !nearf(pos.X, 1, 1e-5) || !nearf(pos.Y, 2, 1e-5) || !nearf(pos.Z, 8, 1e-5) {
		t.Errorf("Position at zero angles = %v, want (1,2,8)", pos)
	}

	// Distance from center is invariant under rotation.
	for _, angles := range [][2]float32{{0.3, 1.1}, {-0.7, 2.9}, {1.2, -0.4}} {
		c.Pitch = angles[0]
		c.Yaw = angles[1]
		if d := c.Position().Distance(c.Center); !nearf(d, c.Distance, 1e-4) {
			t.Errorf("distance at pitch %v yaw %v = %v, want %v", angles[0], angles[1], d, c.Distance)
		}
	}
}

func TestViewMatrixCentersTarget(t *testing.T) {
	c := NewOrbit()
	c.Center = math.Vec3{X: 2, Y: -1, Z: 4}
	c.Pitch = 0.5
	c.Yaw = 1.2
	c.Distance = 6

	view := c.ViewMatrix()
	p := view.TransformPoint([3]float32{2, -1, 4})

	if !nearf(p[0], 0, 1e-4) || !nearf(p[1], 0, 1e-4) {
		t.Errorf("center projects to (%v,%v), want on the view axis", p[0], p[1])
	}
	if !nearf(p[2], -6, 1e-4) {
		t.Errorf("center depth = %v, want -6", p[2])
	}
}

func TestHandleDragClampsPitch(t *testing.T) {
	c := NewOrbit()

	c.HandleDrag(0, 10000)
	if c.Pitch != c.MaxPitch {
		t.Errorf("Pitch after large down drag = %v, want clamp %v", c.Pitch, c.MaxPitch)
	}

	c.HandleDrag(0, -20000)
	if c.Pitch != -c.MaxPitch {
		t.Errorf("Pitch after large up drag = %v, want clamp %v", c.Pitch, -c.MaxPitch)
	}

	before := c.Yaw
	c.HandleDrag(100, 0)
	if c.Yaw >= before {
		t.Errorf("Yaw did not decrease on rightward drag: %v -> %v", before, c.Yaw)
	}
}

func TestHandleZoomClamps(t *testing.T) {
	c := NewOrbit()

	for i := 0; i < 100; i++ {
		c.HandleZoom(10)
	}
	if c.Distance != c.MinDistance {
		t.Errorf("Distance after zooming in = %v, want %v", c.Distance, c.MinDistance)
	}

	for i := 0; i < 100; i++ {
		c.HandleZoom(-10)
	}
	if c.Distance != c.MaxDistance {
		t.Errorf("Distance after zooming out = %v, want %v", c.Distance, c.MaxDistance)
	}
}

func TestHandlePanMovesCenter(t *testing.T) {
	c := NewOrbit()
	c.Pitch = 0
	c.Yaw = 0

	c.HandlePan(10, 0)
	if c.Center.X >= 0 {
		t.Errorf("Center.X after rightward pan = %v, want negative", c.Center.X)
	}
	if c.Center.Y != 0 {
		t.Errorf("Center.Y after horizontal pan = %v, want 0", c.Center.Y)
	}

	c.Reset()
	c.Pitch = 0
	c.HandlePan(0, 10)
	if c.Center.Y <= 0 {
		t.Errorf("Center.Y after vertical pan = %v, want positive", c.Center.Y)
	}
}

func TestFitToBounds(t *testing.T) {
	c := NewOrbit()
	c.HandleDrag(500, 300)
	c.HandleZoom(-5)

	c.FitToBounds(math.Vec3{X: -1, Y: -1, Z: -1}, math.Vec3{X: 1, Y: 1, Z: 1})

	if c.Center != (math.Vec3{}) {
		t.Errorf("Center = %v, want origin", c.Center)
	}
	if !nearf(c.Distance, 4.5, 1e-5) {
		t.Errorf("Distance = %v, want 4.5", c.Distance)
	}
	if c.Pitch != defaultPitch || c.Yaw != defaultYaw {
		t.Errorf("orientation = (%v,%v), want defaults", c.Pitch, c.Yaw)
	}
}

func TestFitToBoundsDegenerate(t *testing.T) {
	c := NewOrbit()

	c.FitToBounds(math.Vec3{X: 5, Y: 5, Z: 5}, math.Vec3{X: 5, Y: 5, Z: 5})

	if c.Center != (math.Vec3{X: 5, Y: 5, Z: 5}) {
		t.Errorf("Center = %v, want (5,5,5)", c.Center)
	}
	if c.Distance != 1.0 {
		t.Errorf("Distance = %v, want floor 1.0", c.Distance)
	}
}

func TestReset(t *testing.T) {
	c := NewOrbit()
	c.Center = math.Vec3{X: 7, Y: 8, Z: 9}
	c.HandleDrag(1000, 400)
	c.HandleZoom(3)

	c.Reset()

	if c.Center != (math.Vec3{}) {
		t.Errorf("Center after Reset = %v, want origin", c.Center)
	}
	if c.Distance != defaultDistance || c.Pitch != defaultPitch || c.Yaw != defaultYaw {
		t.Errorf("framing after Reset = (%v,%v,%v), want defaults", c.Distance, c.Pitch, c.Yaw)
	}
}
