package scene

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/meshforge/internal/engine/lighting"
	"github.com/Faultbox/meshforge/internal/engine/model"
	"github.com/Faultbox/meshforge/internal/engine/shader"
	"github.com/Faultbox/meshforge/pkg/math"
)

// MeshRenderer draws the single current mesh: indexed triangles for
// solid geometry, GL point draws for point clouds.
type MeshRenderer struct {
	program uint32

	// Uniform locations
	locMVP              int32
	locPointSize        int32
	locAmbient          int32
	locLightDirs        int32
	locLightColors      int32
	locLightIntensities int32

	// Current GPU mesh
	vao         uint32
	vbo         uint32
	ebo         uint32
	indexCount  int32
	vertexCount int32
	pointCloud  bool
}

// NewMeshRenderer compiles the mesh shader program. Requires a current
// GL context.
func NewMeshRenderer() (*MeshRenderer, error) {
	mr := &MeshRenderer{}

	program, err := shader.CompileProgram(meshVertexShader, meshFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("mesh shader: %w", err)
	}
	mr.program = program

	mr.locMVP = shader.GetUniform(program, "uMVP")
	mr.locPointSize = shader.GetUniform(program, "uPointSize")
	mr.locAmbient = shader.GetUniform(program, "uAmbient")
	mr.locLightDirs = shader.GetUniform(program, "uLightDirs")
	mr.locLightColors = shader.GetUniform(program, "uLightColors")
	mr.locLightIntensities = shader.GetUniform(program, "uLightIntensities")

	return mr, nil
}

// Upload replaces the GPU mesh with the given one. The previous
// buffers are released first. A nil mesh just releases.
func (mr *MeshRenderer) Upload(mesh *model.Mesh) {
	mr.release()

	if mesh == nil || len(mesh.Vertices) == 0 {
		return
	}

	gl.GenVertexArrays(1, &mr.vao)
	gl.BindVertexArray(mr.vao)

	gl.GenBuffers(1, &mr.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, mr.vbo)
	vertexSize := int(unsafe.Sizeof(model.Vertex{}))
	gl.BufferData(gl.ARRAY_BUFFER, len(mesh.Vertices)*vertexSize, unsafe.Pointer(&mesh.Vertices[0]), gl.STATIC_DRAW)

	// Position
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, int32(vertexSize), 0)
	gl.EnableVertexAttribArray(0)
	// Normal
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, int32(vertexSize), 3*4)
	gl.EnableVertexAttribArray(1)
	// Color
	gl.VertexAttribPointerWithOffset(2, 3, gl.FLOAT, false, int32(vertexSize), 6*4)
	gl.EnableVertexAttribArray(2)

	mr.pointCloud = mesh.IsPointCloud()
	mr.vertexCount = int32(len(mesh.Vertices))

	if !mr.pointCloud {
		gl.GenBuffers(1, &mr.ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, mr.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*4, unsafe.Pointer(&mesh.Indices[0]), gl.STATIC_DRAW)
		mr.indexCount = int32(len(mesh.Indices))
	}

	gl.BindVertexArray(0)
}

// HasMesh reports whether a mesh is resident on the GPU.
func (mr *MeshRenderer) HasMesh() bool {
	return mr.vao != 0
}

// Render draws the current mesh with the given view-projection and
// light rig.
func (mr *MeshRenderer) Render(viewProj math.Mat4, rig *lighting.Rig, wireframe bool, pointSize float32) {
	if mr.vao == 0 {
		return
	}

	gl.UseProgram(mr.program)

	gl.UniformMatrix4fv(mr.locMVP, 1, false, &viewProj[0])
	gl.Uniform1f(mr.locPointSize, pointSize)

	gl.Uniform3f(mr.locAmbient, rig.Ambient[0], rig.Ambient[1], rig.Ambient[2])
	dirs := rig.Directions()
	colors := rig.Colors()
	intensities := rig.Intensities()
	gl.Uniform3fv(mr.locLightDirs, lighting.MaxDirectionalLights, &dirs[0])
	gl.Uniform3fv(mr.locLightColors, lighting.MaxDirectionalLights, &colors[0])
	gl.Uniform1fv(mr.locLightIntensities, lighting.MaxDirectionalLights, &intensities[0])

	gl.BindVertexArray(mr.vao)

	if mr.pointCloud {
		gl.Enable(gl.PROGRAM_POINT_SIZE)
		gl.DrawArrays(gl.POINTS, 0, mr.vertexCount)
		gl.Disable(gl.PROGRAM_POINT_SIZE)
	} else {
		if wireframe {
			gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
		}
		gl.DrawElements(gl.TRIANGLES, mr.indexCount, gl.UNSIGNED_INT, nil)
		if wireframe {
			gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
		}
	}

	gl.BindVertexArray(0)
}

func (mr *MeshRenderer) release() {
	if mr.vao != 0 {
		gl.DeleteVertexArrays(1, &mr.vao)
		mr.vao = 0
	}
	if mr.vbo != 0 {
		gl.DeleteBuffers(1, &mr.vbo)
		mr.vbo = 0
	}
	if mr.ebo != 0 {
		gl.DeleteBuffers(1, &mr.ebo)
		mr.ebo = 0
	}
	mr.indexCount = 0
	mr.vertexCount = 0
	mr.pointCloud = false
}

// Destroy releases all resources.
func (mr *MeshRenderer) Destroy() {
	mr.release()
	if mr.program != 0 {
		gl.DeleteProgram(mr.program)
		mr.program = 0
	}
}
