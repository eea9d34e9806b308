package opengl

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v3.2-core/gl"
	"github.com/spaghettifunk/shady/engine/core"
	"github.com/spaghettifunk/shady/engine/renderer/metadata"
)

// Uniform names every program may declare. Missing ones are ignored.
var uniformNames = []string{
	"lightDir", "lightColor",
	"modelMatrix", "normalMatrix", "viewMatrix", "projMatrix",
	"objColor", "Ka", "Kd", "Ks", "gi", "shexp",
	"gouraudMode", "seamFix",
	"samplerA", "samplerB", "samplerC", "samplerD",
}

type glProgram struct {
	ID       uint32
	Source   *metadata.ShaderSource
	uniforms map[string]int32
}

func (p *glProgram) location(name string) int32 {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	return -1
}

func newProgram(source *metadata.ShaderSource) (*glProgram, error) {
	vertexShader, err := compileShader(source.Vertex, gl.VERTEX_SHADER, source.VertexPath)
	if err != nil {
		return nil, err
	}
	fragmentShader, err := compileShader(source.Fragment, gl.FRAGMENT_SHADER, source.FragmentPath)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return nil, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	for index, name := range metadata.AttributeNames {
		gl.BindAttribLocation(program, index, gl.Str(name+"\x00"))
	}
	gl.LinkProgram(program)

	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)

		return nil, fmt.Errorf("program %s (%s, %s): %s: %w", source.Program, source.VertexPath, source.FragmentPath, strings.TrimRight(log, "\x00"), core.ErrShaderLink)
	}

	p := &glProgram{
		ID:       program,
		Source:   source,
		uniforms: make(map[string]int32, len(uniformNames)),
	}
	for _, name := range uniformNames {
		p.uniforms[name] = gl.GetUniformLocation(program, gl.Str(name+"\x00"))
	}
	return p, nil
}

func compileShader(source string, shaderType uint32, path string) (uint32, error) {
	shader := gl.CreateShader(shaderType)

	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)

		return 0, fmt.Errorf("failed to compile %s: %s: %w", path, strings.TrimRight(log, "\x00"), core.ErrShaderCompile)
	}
	return shader, nil
}
