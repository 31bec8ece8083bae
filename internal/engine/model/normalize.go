package model

// CanonicalSize is the target extent of the largest bounding-box axis
// after normalization. Every loaded model lands in the same envelope
// so camera framing and lighting distances stay constant across
// generations.
const CanonicalSize float32 = 2.0

// Normalization records the transform applied by Normalize.
type Normalization struct {
	Center [3]float32
	Scale  float32
	MaxDim float32
}

// NormalizeMesh recenters the mesh on the origin and uniformly scales
// it so its largest bounding dimension equals CanonicalSize. Degenerate
// geometry with zero extent is centered but left unscaled. Normalizing
// an already normalized mesh is a no-op up to float precision.
func NormalizeMesh(mesh *Mesh) Normalization {
	if mesh == nil || len(mesh.Vertices) == 0 {
		return Normalization{Scale: 1}
	}

	center := mesh.Bounds.Center()
	maxDim := mesh.Bounds.MaxDimension()

	scale := float32(1)
	if maxDim > 0 {
		scale = CanonicalSize / maxDim
	}

	for i := range mesh.Vertices {
		p := &mesh.Vertices[i].Position
		p[0] = (p[0] - center[0]) * scale
		p[1] = (p[1] - center[1]) * scale
		p[2] = (p[2] - center[2]) * scale
	}

	for i := 0; i < 3; i++ {
		mesh.Bounds.Min[i] = (mesh.Bounds.Min[i] - center[i]) * scale
		mesh.Bounds.Max[i] = (mesh.Bounds.Max[i] - center[i]) * scale
	}

	return Normalization{Center: center, Scale: scale, MaxDim: maxDim}
}
