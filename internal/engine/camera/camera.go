// Package camera provides the orbit camera for the model viewer.
package camera

import (
	gomath "math"

	"github.com/Faultbox/meshforge/pkg/math"
)

// Default framing for a model normalized to the canonical envelope.
const (
	defaultDistance = 4.5
	defaultPitch    = 0.45
	defaultYaw      = 0.6
)

// Framing margin used by FitToBounds.
const (
	fitMargin      = 2.25
	minFitDistance = 1.0
)

// Orbit is a camera that circles a center point at a fixed distance.
// Pitch and Yaw are radians; pitch is clamped short of the poles so
// the up vector stays stable.
type Orbit struct {
	Center   math.Vec3
	Distance float32
	Pitch    float32
	Yaw      float32

	MinDistance float32
	MaxDistance float32
	MaxPitch    float32

	RotateSpeed float32
	ZoomSpeed   float32
	PanSpeed    float32
}

// NewOrbit returns a camera framed for normalized models.
func NewOrbit() *Orbit {
	return &Orbit{
		Distance:    defaultDistance,
		Pitch:       defaultPitch,
		Yaw:         defaultYaw,
		MinDistance: 0.5,
		MaxDistance: 50.0,
		MaxPitch:    1.5,
		RotateSpeed: 0.005,
		ZoomSpeed:   0.1,
		PanSpeed:    0.002,
	}
}

// Position returns the camera position in world space.
func (c *Orbit) Position() math.Vec3 {
	sy, cy := sincos(c.Yaw)
	sp, cp := sincos(c.Pitch)
	return c.Center.Add(math.Vec3{
		X: c.Distance * cp * sy,
		Y: c.Distance * sp,
		Z: c.Distance * cp * cy,
	})
}

// ViewMatrix returns the world-to-view transform.
func (c *Orbit) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Center, math.Vec3{Y: 1})
}

// HandleDrag rotates the camera by a mouse delta in pixels.
func (c *Orbit) HandleDrag(dx, dy float32) {
	c.Yaw -= dx * c.RotateSpeed
	c.Pitch = clamp(c.Pitch+dy*c.RotateSpeed, -c.MaxPitch, c.MaxPitch)
}

// HandleZoom moves the camera along its view axis; the step scales
// with the current distance. Positive delta zooms in.
func (c *Orbit) HandleZoom(delta float32) {
	c.Distance = clamp(c.Distance-delta*c.Distance*c.ZoomSpeed, c.MinDistance, c.MaxDistance)
}

// HandlePan shifts the orbit center in the view plane. The scene
// follows the cursor, so the center moves against the drag.
func (c *Orbit) HandlePan(dx, dy float32) {
	sy, cy := sincos(c.Yaw)
	sp, cp := sincos(c.Pitch)

	right := math.Vec3{X: cy, Z: -sy}
	up := math.Vec3{X: -sp * sy, Y: cp, Z: -sp * cy}

	step := c.Distance * c.PanSpeed
	c.Center = c.Center.Add(right.Scale(-dx * step)).Add(up.Scale(dy * step))
}

// Reset restores the default framing around the origin.
func (c *Orbit) Reset() {
	c.Center = math.Vec3{}
	c.Distance = defaultDistance
	c.Pitch = defaultPitch
	c.Yaw = defaultYaw
}

// FitToBounds centers on the box midpoint, backs off proportionally to
// its largest extent and restores the default orientation.
func (c *Orbit) FitToBounds(min, max math.Vec3) {
	c.Center = min.Add(max).Scale(0.5)

	size := max.X - min.X
	if s := max.Y - min.Y; s > size {
		size = s
	}
	if s := max.Z - min.Z; s > size {
		size = s
	}

	c.Distance = size * fitMargin
	if c.Distance < minFitDistance {
		c.Distance = minFitDistance
	}
	c.Pitch = defaultPitch
	c.Yaw = defaultYaw
}

func sincos(a float32) (float32, float32) {
	s, c := gomath.Sincos(float64(a))
	return float32(s), float32(c)
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
