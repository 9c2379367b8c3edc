// Package shader compiles GLSL programs and uploads uniforms by name.
package shader

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/scenegraph/pkg/math"
)

// Program is a linked shader program with cached uniform and attribute locations.
type Program struct {
	id       uint32
	name     string
	log      *zap.Logger
	uniforms map[string]int32
	attribs  map[string]int32
}

// New compiles and links a program. name is used in errors and logs.
func New(name, vertexSrc, fragmentSrc string, log *zap.Logger) (*Program, error) {
	if log == nil {
		log = zap.NewNop()
	}
	id, err := CompileProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return nil, fmt.Errorf("%s program: %w", name, err)
	}
	log.Debug("shader program linked", zap.String("program", name), zap.Uint32("id", id))
	return &Program{
		id:       id,
		name:     name,
		log:      log,
		uniforms: make(map[string]int32),
		attribs:  make(map[string]int32),
	}, nil
}

// ID returns the GL program name.
func (p *Program) ID() uint32 { return p.id }

// Use makes the program current.
func (p *Program) Use() {
	gl.UseProgram(p.id)
}

// Uniform returns the location of a uniform, or -1 if it is inactive.
func (p *Program) Uniform(name string) int32 {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.id, gl.Str(name+"\x00"))
	if loc < 0 {
		p.log.Debug("inactive uniform", zap.String("program", p.name), zap.String("uniform", name))
	}
	p.uniforms[name] = loc
	return loc
}

// Attrib returns the location of a vertex attribute, or -1 if it is inactive.
func (p *Program) Attrib(name string) int32 {
	if loc, ok := p.attribs[name]; ok {
		return loc
	}
	loc := gl.GetAttribLocation(p.id, gl.Str(name+"\x00"))
	if loc < 0 {
		p.log.Debug("inactive attribute", zap.String("program", p.name), zap.String("attribute", name))
	}
	p.attribs[name] = loc
	return loc
}

// SetMat4 uploads a column-major matrix.
func (p *Program) SetMat4(name string, m math.Mat4) {
	if loc := p.Uniform(name); loc >= 0 {
		gl.UniformMatrix4fv(loc, 1, false, m.Ptr())
	}
}

// SetVec4 uploads a vec4.
func (p *Program) SetVec4(name string, v math.Vec4) {
	if loc := p.Uniform(name); loc >= 0 {
		gl.Uniform4f(loc, v.X, v.Y, v.Z, v.W)
	}
}

// SetFloat uploads a float.
func (p *Program) SetFloat(name string, v float32) {
	if loc := p.Uniform(name); loc >= 0 {
		gl.Uniform1f(loc, v)
	}
}

// SetInt uploads an int or sampler unit.
func (p *Program) SetInt(name string, v int32) {
	if loc := p.Uniform(name); loc >= 0 {
		gl.Uniform1i(loc, v)
	}
}

// Delete releases the program.
func (p *Program) Delete() {
	if p.id != 0 {
		gl.DeleteProgram(p.id)
		p.id = 0
	}
}

// CompileProgram compiles vertex and fragment shaders and links them into a program.
func CompileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vertShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER, "vertex")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vertShader)

	fragShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER, "fragment")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fragShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertShader)
	gl.AttachShader(program, fragShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		msg := infoLog(logLen, func(buf *uint8) { gl.GetProgramInfoLog(program, logLen, nil, buf) })
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link: %s", msg)
	}

	return program, nil
}

func compileShader(source string, shaderType uint32, stage string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		msg := infoLog(logLen, func(buf *uint8) { gl.GetShaderInfoLog(shader, logLen, nil, buf) })
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%s shader: %s", stage, msg)
	}

	return shader, nil
}

func infoLog(n int32, read func(*uint8)) string {
	if n <= 0 {
		return "no info log"
	}
	buf := make([]byte, n)
	read(&buf[0])
	return strings.TrimRight(string(buf), "\x00\n")
}
