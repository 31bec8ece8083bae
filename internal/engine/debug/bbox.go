package debug

// BoxWireframeVertexCount is the number of vertices for a box
// wireframe (12 edges x 2 endpoints).
const BoxWireframeVertexCount = 24

// DefaultBoxPadding inflates the bounds overlay just enough to keep
// the lines from z-fighting the mesh surface at canonical scale.
const DefaultBoxPadding = 0.02

// BoxWireframeVertices creates line-list vertices for a
// wireframe bounding box, format [x, y, z] per vertex.
func BoxWireframeVertices(minX, minY, minZ, maxX, maxY, maxZ float32) []float32 {
	return []float32{
		// Bottom face (4 edges)
		minX, minY, minZ, maxX, minY, minZ,
		maxX, minY, minZ, maxX, minY, maxZ,
		maxX, minY, maxZ, minX, minY, maxZ,
		minX, minY, maxZ, minX, minY, minZ,
		// Top face (4 edges)
		minX, maxY, minZ, maxX, maxY, minZ,
		maxX, maxY, minZ, maxX, maxY, maxZ,
		maxX, maxY, maxZ, minX, maxY, maxZ,
		minX, maxY, maxZ, minX, maxY, minZ,
		// Vertical edges (4 edges)
		minX, minY, minZ, minX, maxY, minZ,
		maxX, minY, minZ, maxX, maxY, minZ,
		maxX, minY, maxZ, maxX, maxY, maxZ,
		minX, minY, maxZ, minX, maxY, maxZ,
	}
}

// BoxWireframePadded creates wireframe vertices for the box
// spanning min..max, expanded by padding on all sides.
func BoxWireframePadded(min, max [3]float32, padding float32) []float32 {
	return BoxWireframeVertices(
		min[0]-padding, min[1]-padding, min[2]-padding,
		max[0]+padding, max[1]+padding, max[2]+padding,
	)
}
