// Package shader compiles and links the viewer's GLSL programs.
package shader

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// CompileProgram builds a program from vertex and fragment sources.
// The intermediate shader objects are released whether or not linking
// succeeds.
func CompileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vert, err := compileStage(vertexSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vert)

	frag, err := compileStage(fragmentSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(frag)

	program := gl.CreateProgram()
	gl.AttachShader(program, vert)
	gl.AttachShader(program, frag)
	gl.LinkProgram(program)

	var ok int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &ok)
	if ok == gl.FALSE {
		msg := programLog(program)
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("linking program: %s", msg)
	}
	return program, nil
}

// GetUniform looks up a uniform location. A missing or inactive uniform
// yields -1, which the gl.Uniform* calls silently ignore.
func GetUniform(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func compileStage(source string, stage uint32) (uint32, error) {
	id := gl.CreateShader(stage)
	src, free := gl.Strs(source + "\x00")
	gl.ShaderSource(id, 1, src, nil)
	free()
	gl.CompileShader(id)

	var ok int32
	gl.GetShaderiv(id, gl.COMPILE_STATUS, &ok)
	if ok == gl.FALSE {
		msg := shaderLog(id)
		gl.DeleteShader(id)
		return 0, fmt.Errorf("compiling %s shader: %s", stageName(stage), msg)
	}
	return id, nil
}

func stageName(stage uint32) string {
	switch stage {
	case gl.VERTEX_SHADER:
		return "vertex"
	case gl.FRAGMENT_SHADER:
		return "fragment"
	default:
		return fmt.Sprintf("stage(0x%x)", stage)
	}
}

func shaderLog(id uint32) string {
	var length int32
	gl.GetShaderiv(id, gl.INFO_LOG_LENGTH, &length)
	if length <= 0 {
		return "no info log"
	}
	buf := make([]byte, length)
	gl.GetShaderInfoLog(id, length, nil, &buf[0])
	return strings.TrimSpace(string(buf))
}

func programLog(id uint32) string {
	var length int32
	gl.GetProgramiv(id, gl.INFO_LOG_LENGTH, &length)
	if length <= 0 {
		return "no info log"
	}
	buf := make([]byte, length)
	gl.GetProgramInfoLog(id, length, nil, &buf[0])
	return strings.TrimSpace(string(buf))
}
