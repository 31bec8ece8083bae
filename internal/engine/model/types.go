// Package model converts parsed geometry payloads into renderable
// meshes: vertex assembly, normal reconstruction, and canonical-size
// normalization.
package model

// Vertex is a single mesh vertex with interleaved attributes.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	Color    [3]float32
}

// Mesh holds geometry ready for GPU upload. Indices is empty for
// point clouds.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Bounds   Bounds
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// VertexCount returns the number of vertices in the mesh.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// FaceCount returns the number of triangles in the mesh.
func (m *Mesh) FaceCount() int {
	return len(m.Indices) / 3
}

// IsPointCloud reports whether the mesh has no face topology and
// should be rendered as points.
func (m *Mesh) IsPointCloud() bool {
	return len(m.Indices) == 0
}

// RecomputeBounds rebuilds the bounding box from vertex positions.
func (m *Mesh) RecomputeBounds() {
	m.Bounds = Bounds{
		Min: [3]float32{1e10, 1e10, 1e10},
		Max: [3]float32{-1e10, -1e10, -1e10},
	}
	for i := range m.Vertices {
		updateBounds(&m.Bounds, m.Vertices[i].Position)
	}
}

// Size returns the extent of the bounds along each axis.
func (b Bounds) Size() [3]float32 {
	return [3]float32{
		b.Max[0] - b.Min[0],
		b.Max[1] - b.Min[1],
		b.Max[2] - b.Min[2],
	}
}

// Center returns the midpoint of the bounds.
func (b Bounds) Center() [3]float32 {
	return [3]float32{
		(b.Min[0] + b.Max[0]) / 2,
		(b.Min[1] + b.Max[1]) / 2,
		(b.Min[2] + b.Max[2]) / 2,
	}
}

// MaxDimension returns the largest extent across the three axes.
func (b Bounds) MaxDimension() float32 {
	size := b.Size()
	maxDim := size[0]
	if size[1] > maxDim {
		maxDim = size[1]
	}
	if size[2] > maxDim {
		maxDim = size[2]
	}
	return maxDim
}

func updateBounds(bounds *Bounds, pos [3]float32) {
	for i := 0; i < 3; i++ {
		if pos[i] < bounds.Min[i] {
			bounds.Min[i] = pos[i]
		}
		if pos[i] > bounds.Max[i] {
			bounds.Max[i] = pos[i]
		}
	}
}
