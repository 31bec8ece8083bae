package model

import (
	gomath "math"

	"github.com/Faultbox/meshforge/pkg/formats"
)

// defaultColor is the flat shade applied when the payload carries no
// per-vertex colors.
var defaultColor = [3]float32{0.72, 0.72, 0.75}

// BuildMesh converts a parsed PLY payload into a renderable mesh.
// File normals are kept when present, otherwise they are reconstructed
// from face topology. Missing colors fall back to a flat default.
// Returns nil for an empty payload.
func BuildMesh(ply *formats.PLY) *Mesh {
	if ply == nil || len(ply.Positions) == 0 {
		return nil
	}

	vertices := make([]Vertex, len(ply.Positions))
	for i, pos := range ply.Positions {
		v := Vertex{Position: pos, Color: defaultColor}
		if ply.HasNormals() {
			v.Normal = ply.Normals[i]
		}
		if ply.HasColors() {
			c := ply.Colors[i]
			v.Color = [3]float32{
				float32(c[0]) / 255.0,
				float32(c[1]) / 255.0,
				float32(c[2]) / 255.0,
			}
		}
		vertices[i] = v
	}

	var indices []uint32
	if len(ply.Faces) > 0 {
		indices = make([]uint32, 0, len(ply.Faces)*3)
		for _, face := range ply.Faces {
			indices = append(indices, face[0], face[1], face[2])
		}
	}

	mesh := &Mesh{Vertices: vertices, Indices: indices}
	if !ply.HasNormals() {
		computeNormals(mesh)
	}
	mesh.RecomputeBounds()
	return mesh
}

// computeNormals derives per-vertex normals by accumulating face
// normals over shared vertices. Unnormalized face normals weight large
// triangles more, which reads better on coarse generated geometry.
// Point clouds get a uniform up normal.
func computeNormals(mesh *Mesh) {
	for i := range mesh.Vertices {
		mesh.Vertices[i].Normal = [3]float32{}
	}

	for i := 0; i+2 < len(mesh.Indices); i += 3 {
		i0 := mesh.Indices[i]
		i1 := mesh.Indices[i+1]
		i2 := mesh.Indices[i+2]

		v0 := mesh.Vertices[i0].Position
		v1 := mesh.Vertices[i1].Position
		v2 := mesh.Vertices[i2].Position

		e1 := [3]float32{v1[0] - v0[0], v1[1] - v0[1], v1[2] - v0[2]}
		e2 := [3]float32{v2[0] - v0[0], v2[1] - v0[1], v2[2] - v0[2]}
		faceNormal := Cross(e1, e2)

		// Degenerate triangle detection
		normalMag := float32(gomath.Sqrt(float64(faceNormal[0]*faceNormal[0] + faceNormal[1]*faceNormal[1] + faceNormal[2]*faceNormal[2])))
		if normalMag < 1e-5 {
			continue
		}

		for _, idx := range [3]uint32{i0, i1, i2} {
			n := &mesh.Vertices[idx].Normal
			n[0] += faceNormal[0]
			n[1] += faceNormal[1]
			n[2] += faceNormal[2]
		}
	}

	for i := range mesh.Vertices {
		mesh.Vertices[i].Normal = Normalize(mesh.Vertices[i].Normal)
	}
}
