package libgl

import (
	"fmt"
	"log"
	"strings"

	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

type StageKind uint32

const (
	VertexStage   StageKind = gl.VERTEX_SHADER
	FragmentStage StageKind = gl.FRAGMENT_SHADER
)

func (kind StageKind) String() string {
	switch kind {
	case VertexStage:
		return "vertex"
	case FragmentStage:
		return "fragment"
	}
	return fmt.Sprintf("stage(0x%04x)", uint32(kind))
}

// Extension returns the file extension used for sources of this stage.
func (kind StageKind) Extension() string {
	switch kind {
	case VertexStage:
		return ".vert"
	case FragmentStage:
		return ".frag"
	}
	return ""
}

// StageKindFromName derives the stage from a source file name.
func StageKindFromName(name string) (StageKind, error) {
	switch {
	case strings.HasSuffix(name, VertexStage.Extension()):
		return VertexStage, nil
	case strings.HasSuffix(name, FragmentStage.Extension()):
		return FragmentStage, nil
	}
	return 0, fmt.Errorf("can't determine shader type for resource %q", name)
}

// Stage is a single compiled shader object.
type Stage struct {
	dev  Device
	glId uint32
	kind StageKind
	name string
}

// CompileStage compiles source as a stage of the given kind. The shader object
// is deleted again when compilation fails.
func CompileStage(dev Device, kind StageKind, name, source string) (*Stage, error) {
	id := dev.CreateShader(kind)
	if !dev.CompileShader(id, source) {
		message := strings.TrimSpace(dev.ShaderInfoLog(id))
		dev.DeleteShader(id)
		if message == "" {
			message = "unknown error"
		}
		return nil, &CompileError{Name: name, Message: message}
	}
	return &Stage{dev: dev, glId: id, kind: kind, name: name}, nil
}

func (stage *Stage) Id() uint32 {
	return stage.glId
}

func (stage *Stage) Kind() StageKind {
	return stage.kind
}

func (stage *Stage) Name() string {
	return stage.name
}

func (stage *Stage) Delete() {
	if stage.glId == 0 {
		return
	}
	stage.dev.DeleteShader(stage.glId)
	stage.glId = 0
}

// ProgramBuilder collects stages for a program. The first error is kept and
// turns every later step into a no-op, so calls can be chained:
//
//	prog, err := libgl.NewProgramBuilder(dev, "cube").
//		Vertex("cube.vert", vsh).
//		Fragment("cube.frag", fsh).
//		Link()
//
// The GL program object is only created by Link. Stages compiled by the
// builder are released by Link or Discard.
type ProgramBuilder struct {
	dev      Device
	name     string
	vertex   *Stage
	fragment *Stage
	err      error
	done     bool
}

func NewProgramBuilder(dev Device, name string) *ProgramBuilder {
	return &ProgramBuilder{
		dev:  dev,
		name: name,
	}
}

func (b *ProgramBuilder) Err() error {
	return b.err
}

func (b *ProgramBuilder) Vertex(name, source string) *ProgramBuilder {
	return b.compile(VertexStage, name, source)
}

func (b *ProgramBuilder) Fragment(name, source string) *ProgramBuilder {
	return b.compile(FragmentStage, name, source)
}

func (b *ProgramBuilder) compile(kind StageKind, name, source string) *ProgramBuilder {
	if b.err != nil || b.done {
		return b
	}
	stage, err := CompileStage(b.dev, kind, name, source)
	if err != nil {
		b.fail(err)
		return b
	}
	return b.Attach(stage)
}

// Attach hands ownership of stage to the builder. A previously attached stage
// of the same kind is deleted.
func (b *ProgramBuilder) Attach(stage *Stage) *ProgramBuilder {
	if stage == nil {
		b.fail(fmt.Errorf("nil shader stage attached to program %q", b.name))
		return b
	}
	if b.done || b.err != nil {
		stage.Delete()
		return b
	}

	var slot **Stage
	switch stage.kind {
	case VertexStage:
		slot = &b.vertex
	case FragmentStage:
		slot = &b.fragment
	default:
		stage.Delete()
		b.fail(fmt.Errorf("unsupported shader stage %v for program %q", stage.kind, b.name))
		return b
	}

	if prev := *slot; prev != nil {
		prev.Delete()
	}
	*slot = stage
	return b
}

// Link creates the program and links the attached stages. The stages are
// deleted afterwards; on failure the program is deleted as well.
func (b *ProgramBuilder) Link() (*Program, error) {
	if b.done {
		return nil, fmt.Errorf("program %q was already linked or discarded", b.name)
	}
	defer b.Discard()

	if b.err != nil {
		return nil, b.err
	}

	var missing []string
	if b.vertex == nil {
		missing = append(missing, VertexStage.String())
	}
	if b.fragment == nil {
		missing = append(missing, FragmentStage.String())
	}
	if len(missing) > 0 {
		b.fail(&LinkError{Message: fmt.Sprintf("program %q is missing a %s stage", b.name, strings.Join(missing, " and "))})
		return nil, b.err
	}

	id := b.dev.CreateProgram()
	stages := []*Stage{b.vertex, b.fragment}
	for _, stage := range stages {
		b.dev.AttachShader(id, stage.glId)
	}
	ok := b.dev.LinkProgram(id)
	for _, stage := range stages {
		b.dev.DetachShader(id, stage.glId)
	}

	if !ok {
		message := strings.TrimSpace(b.dev.ProgramInfoLog(id))
		if message == "" {
			message = "unknown error"
		}
		b.dev.DeleteProgram(id)
		b.fail(&LinkError{Message: message})
		return nil, b.err
	}

	return &Program{
		dev:              b.dev,
		glId:             id,
		name:             b.name,
		uniformLocations: map[string]int32{},
	}, nil
}

// Discard deletes the attached stages and ends the builder. Link calls it;
// a builder that is abandoned before linking should call it instead.
func (b *ProgramBuilder) Discard() {
	b.done = true
	for _, stage := range []*Stage{b.vertex, b.fragment} {
		if stage != nil {
			stage.Delete()
		}
	}
	b.vertex, b.fragment = nil, nil
}

func (b *ProgramBuilder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Program is a linked shader program.
type Program struct {
	dev              Device
	glId             uint32
	name             string
	uniformLocations map[string]int32
	warned           map[string]bool
}

func (prog *Program) Id() uint32 {
	return prog.glId
}

func (prog *Program) Name() string {
	return prog.name
}

func (prog *Program) Use() {
	prog.dev.UseProgram(prog.glId)
}

// UniformLocation resolves and caches the location of a uniform.
func (prog *Program) UniformLocation(name string) (int32, error) {
	location, ok := prog.uniformLocations[name]
	if !ok {
		location = prog.dev.GetUniformLocation(prog.glId, name)
		prog.uniformLocations[name] = location
	}
	if location < 0 {
		return -1, &UniformNotFoundError{Name: name}
	}
	return location, nil
}

// SetTextureUnit assigns a sampler uniform to a texture unit.
func (prog *Program) SetTextureUnit(name string, unit int32) error {
	location, err := prog.UniformLocation(name)
	if err != nil {
		return err
	}
	prog.dev.ProgramUniform1i(prog.glId, location, unit)
	return nil
}

func (prog *Program) SetInt(name string, value int32) error {
	location, err := prog.UniformLocation(name)
	if err != nil {
		return err
	}
	prog.dev.ProgramUniform1i(prog.glId, location, value)
	return nil
}

func (prog *Program) SetFloat(name string, value float32) error {
	location, err := prog.UniformLocation(name)
	if err != nil {
		return err
	}
	prog.dev.ProgramUniform1f(prog.glId, location, value)
	return nil
}

func (prog *Program) SetVec3(name string, value mgl32.Vec3) error {
	location, err := prog.UniformLocation(name)
	if err != nil {
		return err
	}
	prog.dev.ProgramUniform3f(prog.glId, location, value)
	return nil
}

func (prog *Program) SetVec4(name string, value mgl32.Vec4) error {
	location, err := prog.UniformLocation(name)
	if err != nil {
		return err
	}
	prog.dev.ProgramUniform4f(prog.glId, location, value)
	return nil
}

func (prog *Program) SetMat4(name string, value mgl32.Mat4) error {
	location, err := prog.UniformLocation(name)
	if err != nil {
		return err
	}
	prog.dev.ProgramUniformMatrix4f(prog.glId, location, value)
	return nil
}

// Warn logs err once per uniform. Meant for per-frame uploads where a missing
// uniform should not stop rendering.
func (prog *Program) Warn(err error) {
	if err == nil {
		return
	}
	if prog.warned == nil {
		prog.warned = map[string]bool{}
	}
	key := err.Error()
	if prog.warned[key] {
		return
	}
	prog.warned[key] = true
	log.Printf("%v shader: %v\n", prog.name, err)
}

// Delete releases the program. Calling it more than once is a no-op.
func (prog *Program) Delete() {
	if prog.glId == 0 {
		return
	}
	prog.dev.DeleteProgram(prog.glId)
	prog.glId = 0
	prog.uniformLocations = map[string]int32{}
}
