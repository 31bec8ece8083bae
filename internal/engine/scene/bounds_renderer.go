package scene

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/meshforge/internal/engine/debug"
	"github.com/Faultbox/meshforge/internal/engine/model"
	"github.com/Faultbox/meshforge/internal/engine/shader"
	"github.com/Faultbox/meshforge/pkg/math"
)

// boundsColor is the wireframe overlay color.
var boundsColor = [3]float32{1.0, 0.78, 0.25}

// BoundsRenderer draws the current mesh's bounding box as a line
// wireframe on top of the model.
type BoundsRenderer struct {
	program  uint32
	locMVP   int32
	locColor int32

	vao         uint32
	vbo         uint32
	vertexCount int32
}

// NewBoundsRenderer compiles the line shader program. Requires a
// current GL context.
func NewBoundsRenderer() (*BoundsRenderer, error) {
	program, err := shader.CompileProgram(lineVertexShader, lineFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("bounds shader: %w", err)
	}

	return &BoundsRenderer{
		program:  program,
		locMVP:   shader.GetUniform(program, "uMVP"),
		locColor: shader.GetUniform(program, "uColor"),
	}, nil
}

// Upload rebuilds the wireframe for the given mesh's bounds. A nil
// mesh just releases the buffers.
func (br *BoundsRenderer) Upload(mesh *model.Mesh) {
	br.release()

	if mesh == nil || len(mesh.Vertices) == 0 {
		return
	}

	verts := debug.BoxWireframePadded(
		mesh.Bounds.Min, mesh.Bounds.Max, debug.DefaultBoxPadding)

	gl.GenVertexArrays(1, &br.vao)
	gl.BindVertexArray(br.vao)

	gl.GenBuffers(1, &br.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, br.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, unsafe.Pointer(&verts[0]), gl.STATIC_DRAW)

	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(0)

	gl.BindVertexArray(0)
	br.vertexCount = int32(len(verts) / 3)
}

// Render draws the wireframe with the given view-projection.
func (br *BoundsRenderer) Render(viewProj math.Mat4) {
	if br.vao == 0 {
		return
	}

	gl.UseProgram(br.program)
	gl.UniformMatrix4fv(br.locMVP, 1, false, &viewProj[0])
	gl.Uniform3f(br.locColor, boundsColor[0], boundsColor[1], boundsColor[2])

	gl.BindVertexArray(br.vao)
	gl.DrawArrays(gl.LINES, 0, br.vertexCount)
	gl.BindVertexArray(0)
}

func (br *BoundsRenderer) release() {
	if br.vao != 0 {
		gl.DeleteVertexArrays(1, &br.vao)
		br.vao = 0
	}
	if br.vbo != 0 {
		gl.DeleteBuffers(1, &br.vbo)
		br.vbo = 0
	}
	br.vertexCount = 0
}

// Destroy releases all resources.
func (br *BoundsRenderer) Destroy() {
	br.release()
	if br.program != 0 {
		gl.DeleteProgram(br.program)
		br.program = 0
	}
}
