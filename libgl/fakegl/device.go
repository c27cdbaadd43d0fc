// Package fakegl provides an in-memory libgl.Device for tests.
package fakegl

import (
	"fmt"
	"regexp"
	"strings"

	"learn-gl/libgl"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	uniformDecl = regexp.MustCompile(`(?m)^\s*uniform\s+\w+\s+(\w+)\s*;`)
	inDecl      = regexp.MustCompile(`(?m)^\s*(?:layout\s*\([^)]*\)\s*)?in\s+\w+\s+(\w+)\s*;`)
	outDecl     = regexp.MustCompile(`(?m)^\s*(?:layout\s*\([^)]*\)\s*)?out\s+\w+\s+(\w+)\s*;`)
)

type fakeShader struct {
	kind     libgl.StageKind
	source   string
	compiled bool
	log      string
}

type fakeProgram struct {
	attached map[uint32]bool
	linked   bool
	log      string
	uniforms map[string]int32
}

type UniformWrite struct {
	Program  uint32
	Location int32
	Value    any
}

// Device imitates a GLSL driver closely enough for program building. It
// rejects sources with unbalanced braces or without main, fails links with
// unmatched fragment inputs and drops uniforms that are declared but unused.
// Invalid calls are recorded in Errors instead of failing.
type Device struct {
	nextId   uint32
	shaders  map[uint32]*fakeShader
	programs map[uint32]*fakeProgram
	Current  uint32
	Writes   []UniformWrite
	Errors   []string
}

func New() *Device {
	return &Device{
		shaders:  map[uint32]*fakeShader{},
		programs: map[uint32]*fakeProgram{},
	}
}

func (d *Device) id() uint32 {
	d.nextId++
	return d.nextId
}

func (d *Device) errorf(format string, args ...any) {
	d.Errors = append(d.Errors, fmt.Sprintf(format, args...))
}

var _ libgl.Device = (*Device)(nil)

func (d *Device) CreateShader(kind libgl.StageKind) uint32 {
	id := d.id()
	d.shaders[id] = &fakeShader{kind: kind}
	return id
}

func (d *Device) CompileShader(shader uint32, source string) bool {
	s, ok := d.shaders[shader]
	if !ok {
		d.errorf("compile of unknown shader %d", shader)
		return false
	}
	s.source = source
	depth := 0
	for i, line := range strings.Split(source, "\n") {
		depth += strings.Count(line, "{") - strings.Count(line, "}")
		if depth < 0 {
			s.log = fmt.Sprintf("0:%d(1): error: syntax error, unexpected '}'", i+1)
			return false
		}
	}
	if depth != 0 {
		s.log = "0:0(0): error: syntax error, unexpected end of file"
		return false
	}
	if !strings.Contains(source, "void main") {
		s.log = "0:0(0): error: function `main' is not defined"
		return false
	}
	s.compiled = true
	return true
}

func (d *Device) ShaderInfoLog(shader uint32) string {
	if s, ok := d.shaders[shader]; ok {
		return s.log
	}
	return ""
}

func (d *Device) DeleteShader(shader uint32) {
	if _, ok := d.shaders[shader]; !ok {
		d.errorf("delete of unknown shader %d", shader)
		return
	}
	for _, p := range d.programs {
		if p.attached[shader] {
			d.errorf("delete of shader %d while still attached", shader)
		}
	}
	delete(d.shaders, shader)
}

func (d *Device) CreateProgram() uint32 {
	id := d.id()
	d.programs[id] = &fakeProgram{attached: map[uint32]bool{}, uniforms: map[string]int32{}}
	return id
}

func (d *Device) AttachShader(program, shader uint32) {
	p, ok := d.programs[program]
	if !ok {
		d.errorf("attach to unknown program %d", program)
		return
	}
	if _, ok := d.shaders[shader]; !ok {
		d.errorf("attach of unknown shader %d", shader)
		return
	}
	p.attached[shader] = true
}

func (d *Device) DetachShader(program, shader uint32) {
	p, ok := d.programs[program]
	if !ok {
		d.errorf("detach from unknown program %d", program)
		return
	}
	if !p.attached[shader] {
		d.errorf("detach of shader %d which is not attached to %d", shader, program)
		return
	}
	delete(p.attached, shader)
}

func (d *Device) LinkProgram(program uint32) bool {
	p, ok := d.programs[program]
	if !ok {
		d.errorf("link of unknown program %d", program)
		return false
	}
	outputs := map[string]bool{}
	var inputs []string
	var sources []string
	for id := range p.attached {
		s := d.shaders[id]
		if !s.compiled {
			p.log = "error: linking with uncompiled shader"
			return false
		}
		sources = append(sources, s.source)
		if s.kind == libgl.VertexStage {
			for _, m := range outDecl.FindAllStringSubmatch(s.source, -1) {
				outputs[m[1]] = true
			}
		} else {
			for _, m := range inDecl.FindAllStringSubmatch(s.source, -1) {
				inputs = append(inputs, m[1])
			}
		}
	}
	for _, in := range inputs {
		if !outputs[in] {
			p.log = fmt.Sprintf("error: fragment shader input `%s' has no matching output in the previous stage", in)
			return false
		}
	}

	location := int32(0)
	for _, src := range sources {
		for _, m := range uniformDecl.FindAllStringSubmatch(src, -1) {
			name := m[1]
			uses := regexp.MustCompile(`\b`+name+`\b`).FindAllStringIndex(src, -1)
			if len(uses) < 2 {
				// declared but never read
				continue
			}
			if _, ok := p.uniforms[name]; !ok {
				p.uniforms[name] = location
				location++
			}
		}
	}
	p.linked = true
	return true
}

func (d *Device) ProgramInfoLog(program uint32) string {
	if p, ok := d.programs[program]; ok {
		return p.log
	}
	return ""
}

func (d *Device) UseProgram(program uint32) {
	if p, ok := d.programs[program]; !ok || !p.linked {
		d.errorf("use of unusable program %d", program)
		return
	}
	d.Current = program
}

func (d *Device) DeleteProgram(program uint32) {
	if _, ok := d.programs[program]; !ok {
		d.errorf("delete of unknown program %d", program)
		return
	}
	delete(d.programs, program)
	if d.Current == program {
		d.Current = 0
	}
}

func (d *Device) GetUniformLocation(program uint32, name string) int32 {
	p, ok := d.programs[program]
	if !ok || !p.linked {
		d.errorf("uniform lookup on unusable program %d", program)
		return -1
	}
	if location, ok := p.uniforms[name]; ok {
		return location
	}
	return -1
}

func (d *Device) write(program uint32, location int32, value any) {
	if _, ok := d.programs[program]; !ok {
		d.errorf("uniform write to unknown program %d", program)
		return
	}
	d.Writes = append(d.Writes, UniformWrite{program, location, value})
}

func (d *Device) ProgramUniform1i(program uint32, location int32, v int32) {
	d.write(program, location, v)
}

func (d *Device) ProgramUniform1f(program uint32, location int32, v float32) {
	d.write(program, location, v)
}

func (d *Device) ProgramUniform3f(program uint32, location int32, v mgl32.Vec3) {
	d.write(program, location, v)
}

func (d *Device) ProgramUniform4f(program uint32, location int32, v mgl32.Vec4) {
	d.write(program, location, v)
}

func (d *Device) ProgramUniformMatrix4f(program uint32, location int32, m mgl32.Mat4) {
	d.write(program, location, m)
}

// Live counts shaders and programs that were created but not deleted.
func (d *Device) Live() int {
	return len(d.shaders) + len(d.programs)
}
