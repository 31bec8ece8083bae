// Package lighting provides the viewer's fixed light rig.
package lighting

import "math"

// MaxDirectionalLights is the number of directional slots in the mesh
// shaders.
const MaxDirectionalLights = 3

// DirectionalLight is a single directional light for GPU upload.
type DirectionalLight struct {
	Direction [3]float32 // normalized, pointing toward the light
	Color     [3]float32 // RGB color (0-1 range)
	Intensity float32
}

// Rig is the ambient term plus the directional lights applied to every
// model. A reset replaces the rig wholesale, never appends, so lights
// cannot accumulate across scene resets.
type Rig struct {
	Ambient [3]float32
	Lights  [MaxDirectionalLights]DirectionalLight
}

// DefaultRig returns the key/fill/rim setup the viewer uses for every
// model. Each call builds a fresh rig.
func DefaultRig() *Rig {
	return &Rig{
		Ambient: [3]float32{0.22, 0.22, 0.25},
		Lights: [MaxDirectionalLights]DirectionalLight{
			{
				Direction: Direction(35, 50),
				Color:     [3]float32{1.0, 1.0, 1.0},
				Intensity: 0.85,
			},
			{
				Direction: Direction(-120, 15),
				Color:     [3]float32{0.75, 0.82, 1.0},
				Intensity: 0.35,
			},
			{
				Direction: Direction(170, 30),
				Color:     [3]float32{1.0, 0.95, 0.85},
				Intensity: 0.30,
			},
		},
	}
}

// Direction converts longitude/latitude angles in degrees to a light
// direction vector. Longitude is rotation around the Y axis, latitude
// is elevation from the horizon. Returns a normalized vector pointing
// toward the light.
func Direction(longitude, latitude float32) [3]float32 {
	lonRad := float64(longitude) * math.Pi / 180.0
	latRad := float64(latitude) * math.Pi / 180.0

	x := float32(math.Cos(latRad) * math.Sin(lonRad))
	y := float32(math.Sin(latRad))
	z := float32(math.Cos(latRad) * math.Cos(lonRad))

	return [3]float32{x, y, z}
}

// Directions returns light directions as a flat float32 slice for GPU
// upload. Format: [x0, y0, z0, x1, y1, z1, ...]
func (r *Rig) Directions() []float32 {
	result := make([]float32, MaxDirectionalLights*3)
	for i, light := range r.Lights {
		result[i*3+0] = light.Direction[0]
		result[i*3+1] = light.Direction[1]
		result[i*3+2] = light.Direction[2]
	}
	return result
}

// Colors returns light colors as a flat float32 slice for GPU upload.
// Format: [r0, g0, b0, r1, g1, b1, ...]
func (r *Rig) Colors() []float32 {
	result := make([]float32, MaxDirectionalLights*3)
	for i, light := range r.Lights {
		result[i*3+0] = light.Color[0]
		result[i*3+1] = light.Color[1]
		result[i*3+2] = light.Color[2]
	}
	return result
}

// Intensities returns light intensities as a flat float32 slice for
// GPU upload.
func (r *Rig) Intensities() []float32 {
	result := make([]float32, MaxDirectionalLights)
	for i, light := range r.Lights {
		result[i] = light.Intensity
	}
	return result
}
