package libgl

import (
	"strings"

	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Device is the subset of the GL API used to build and drive shader programs.
// All calls must happen on the thread that owns the current context.
type Device interface {
	CreateShader(kind StageKind) uint32
	CompileShader(shader uint32, source string) (ok bool)
	ShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	DetachShader(program, shader uint32)
	LinkProgram(program uint32) (ok bool)
	ProgramInfoLog(program uint32) string
	UseProgram(program uint32)
	DeleteProgram(program uint32)

	GetUniformLocation(program uint32, name string) int32
	ProgramUniform1i(program uint32, location int32, v int32)
	ProgramUniform1f(program uint32, location int32, v float32)
	ProgramUniform3f(program uint32, location int32, v mgl32.Vec3)
	ProgramUniform4f(program uint32, location int32, v mgl32.Vec4)
	ProgramUniformMatrix4f(program uint32, location int32, m mgl32.Mat4)
}

type glDevice struct{}

var theGlDevice Device = glDevice{}

// GlDevice returns the Device backed by the current OpenGL context.
func GlDevice() Device {
	return theGlDevice
}

func (glDevice) CreateShader(kind StageKind) uint32 {
	return gl.CreateShader(uint32(kind))
}

func (glDevice) CompileShader(shader uint32, source string) bool {
	cStrs, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, cStrs, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	return status != gl.FALSE
}

func (glDevice) ShaderInfoLog(shader uint32) string {
	var logLength int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}

	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (glDevice) DeleteShader(shader uint32) {
	gl.DeleteShader(shader)
}

func (glDevice) CreateProgram() uint32 {
	return gl.CreateProgram()
}

func (glDevice) AttachShader(program, shader uint32) {
	gl.AttachShader(program, shader)
}

func (glDevice) DetachShader(program, shader uint32) {
	gl.DetachShader(program, shader)
}

func (glDevice) LinkProgram(program uint32) bool {
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	return status != gl.FALSE
}

func (glDevice) ProgramInfoLog(program uint32) string {
	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}

	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (glDevice) UseProgram(program uint32) {
	if State != nil {
		State.UseProgram(program)
		return
	}
	gl.UseProgram(program)
}

func (glDevice) DeleteProgram(program uint32) {
	if State != nil && State.Program == program {
		State.Program = 0
	}
	gl.DeleteProgram(program)
}

func (glDevice) GetUniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (glDevice) ProgramUniform1i(program uint32, location int32, v int32) {
	gl.ProgramUniform1i(program, location, v)
}

func (glDevice) ProgramUniform1f(program uint32, location int32, v float32) {
	gl.ProgramUniform1f(program, location, v)
}

func (glDevice) ProgramUniform3f(program uint32, location int32, v mgl32.Vec3) {
	gl.ProgramUniform3f(program, location, v.X(), v.Y(), v.Z())
}

func (glDevice) ProgramUniform4f(program uint32, location int32, v mgl32.Vec4) {
	gl.ProgramUniform4f(program, location, v.X(), v.Y(), v.Z(), v.W())
}

func (glDevice) ProgramUniformMatrix4f(program uint32, location int32, m mgl32.Mat4) {
	gl.ProgramUniformMatrix4fv(program, location, 1, false, &m[0])
}
