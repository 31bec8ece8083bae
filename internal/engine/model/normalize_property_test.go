package model

import (
	gomath "math"
	"testing"

	"pgregory.net/rapid"
)

// Tenth-unit grid coordinates keep the bounds arithmetic well
// conditioned so the assertions below hold at float32 precision.
func gridCoord(rt *rapid.T, label string) float32 {
	return float32(rapid.IntRange(-1000, 1000).Draw(rt, label)) / 10
}

func TestNormalizeProperties(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		count := rapid.IntRange(1, 32).Draw(rt, "vertices")
		mesh := &Mesh{Vertices: make([]Vertex, count)}
		for i := range mesh.Vertices {
			mesh.Vertices[i].Position = [3]float32{
				gridCoord(rt, "x"),
				gridCoord(rt, "y"),
				gridCoord(rt, "z"),
			}
		}
		mesh.RecomputeBounds()

		norm := NormalizeMesh(mesh)

		for i, v := range mesh.Vertices {
			for axis := 0; axis < 3; axis++ {
				if gomath.IsNaN(float64(v.Position[axis])) || gomath.IsInf(float64(v.Position[axis]), 0) {
					rt.Fatalf("vertex %d has non-finite coordinate: %v", i, v.Position)
				}
			}
		}

		if norm.MaxDim > 0 {
			if got := mesh.Bounds.MaxDimension(); gomath.Abs(float64(got-CanonicalSize)) > 1e-3 {
				rt.Fatalf("MaxDimension = %v, want %v", got, CanonicalSize)
			}
			center := mesh.Bounds.Center()
			for axis := 0; axis < 3; axis++ {
				if gomath.Abs(float64(center[axis])) > 1e-3 {
					rt.Fatalf("center off origin: %v", center)
				}
			}
			for i, v := range mesh.Vertices {
				for axis := 0; axis < 3; axis++ {
					if gomath.Abs(float64(v.Position[axis])) > float64(CanonicalSize)/2+1e-3 {
						rt.Fatalf("vertex %d outside canonical envelope: %v", i, v.Position)
					}
				}
			}
		} else {
			for i, v := range mesh.Vertices {
				if !near3(v.Position, [3]float32{}, 1e-6) {
					rt.Fatalf("zero-extent vertex %d not centered: %v", i, v.Position)
				}
			}
		}

		before := make([][3]float32, len(mesh.Vertices))
		for i, v := range mesh.Vertices {
			before[i] = v.Position
		}

		NormalizeMesh(mesh)

		for i, v := range mesh.Vertices {
			if !near3(v.Position, before[i], 1e-3) {
				rt.Fatalf("vertex %d moved on second normalize: %v -> %v", i, before[i], v.Position)
			}
		}
	})
}
