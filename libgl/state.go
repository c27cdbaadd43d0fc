package libgl

import (
	"strings"

	"github.com/go-gl/gl/v4.5-core/gl"
)

type Capability uint32

const (
	DepthTest   Capability = gl.DEPTH_TEST
	Blend       Capability = gl.BLEND
	ScissorTest Capability = gl.SCISSOR_TEST
	CullFace    Capability = gl.CULL_FACE
)

type BlendFactor uint32

const (
	BlendZero             BlendFactor = gl.ZERO
	BlendOne              BlendFactor = gl.ONE
	BlendSrcAlpha         BlendFactor = gl.SRC_ALPHA
	BlendOneMinusSrcAlpha BlendFactor = gl.ONE_MINUS_SRC_ALPHA
)

type DepthFunc uint32

const (
	DepthFuncLess   DepthFunc = gl.LESS
	DepthFuncLEqual DepthFunc = gl.LEQUAL
	DepthFuncAlways DepthFunc = gl.ALWAYS
)

// StateManager caches GL state to skip redundant calls.
type StateManager struct {
	Caps            map[Capability]bool
	TextureUnits    []uint32
	VertexArray     uint32
	Framebuffer     uint32
	Program         uint32
	ViewportRect    [4]int
	ScissorRect     [4]int
	BlendFactorSrc  BlendFactor
	BlendFactorDst  BlendFactor
	DepthFuncFn     DepthFunc
	DepthWriteMask  bool
	ClearColorRGBA  [4]float32
	PolygonModeFill uint32
}

var State *StateManager

func NewStateManager() *StateManager {
	return &StateManager{
		Caps:            map[Capability]bool{},
		TextureUnits:    make([]uint32, 32),
		DepthFuncFn:     DepthFuncLess,
		DepthWriteMask:  true,
		PolygonModeFill: gl.FILL,
	}
}

// Env describes the driver behind the current context.
type Env struct {
	Vendor   string
	Renderer string
	Version  string
}

func GetEnv() *Env {
	return &Env{
		Vendor:   strings.TrimSpace(gl.GoStr(gl.GetString(gl.VENDOR))),
		Renderer: strings.TrimSpace(gl.GoStr(gl.GetString(gl.RENDERER))),
		Version:  strings.TrimSpace(gl.GoStr(gl.GetString(gl.VERSION))),
	}
}

func (s *StateManager) Enable(cap Capability) {
	if s.Caps[cap] {
		return
	}
	gl.Enable(uint32(cap))
	s.Caps[cap] = true
}

func (s *StateManager) Disable(cap Capability) {
	if !s.Caps[cap] {
		return
	}
	gl.Disable(uint32(cap))
	s.Caps[cap] = false
}

// SetEnabled enables exactly the given capabilities and disables the rest.
func (s *StateManager) SetEnabled(caps ...Capability) {
	want := map[Capability]bool{}
	for _, c := range caps {
		want[c] = true
	}
	for c, on := range s.Caps {
		if on && !want[c] {
			s.Disable(c)
		}
	}
	for c := range want {
		s.Enable(c)
	}
}

func (s *StateManager) BlendFunc(sfactor, dfactor BlendFactor) {
	if s.BlendFactorSrc == sfactor && s.BlendFactorDst == dfactor {
		return
	}
	gl.BlendFunc(uint32(sfactor), uint32(dfactor))
	s.BlendFactorSrc = sfactor
	s.BlendFactorDst = dfactor
}

func (s *StateManager) DepthFunc(fn DepthFunc) {
	if s.DepthFuncFn == fn {
		return
	}
	gl.DepthFunc(uint32(fn))
	s.DepthFuncFn = fn
}

func (s *StateManager) DepthMask(flag bool) {
	if s.DepthWriteMask == flag {
		return
	}
	gl.DepthMask(flag)
	s.DepthWriteMask = flag
}

// Wireframe toggles between line and fill polygon mode.
func (s *StateManager) Wireframe(enabled bool) {
	mode := uint32(gl.FILL)
	if enabled {
		mode = gl.LINE
	}
	if s.PolygonModeFill == mode {
		return
	}
	gl.PolygonMode(gl.FRONT_AND_BACK, mode)
	s.PolygonModeFill = mode
}

func (s *StateManager) BindTextureUnit(unit int, texture uint32) {
	if s.TextureUnits[unit] == texture {
		return
	}
	gl.BindTextureUnit(uint32(unit), texture)
	s.TextureUnits[unit] = texture
}

func (s *StateManager) forgetTexture(texture uint32) {
	for unit, id := range s.TextureUnits {
		if id == texture {
			s.TextureUnits[unit] = 0
		}
	}
}

func (s *StateManager) BindVertexArray(array uint32) {
	if s.VertexArray == array {
		return
	}
	gl.BindVertexArray(array)
	s.VertexArray = array
}

func (s *StateManager) BindFramebuffer(framebuffer uint32) {
	if s.Framebuffer == framebuffer {
		return
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, framebuffer)
	s.Framebuffer = framebuffer
}

func (s *StateManager) UseProgram(program uint32) {
	if s.Program == program {
		return
	}
	gl.UseProgram(program)
	s.Program = program
}

func (s *StateManager) Viewport(x, y, w, h int) {
	if s.ViewportRect == [4]int{x, y, w, h} {
		return
	}
	gl.Viewport(int32(x), int32(y), int32(w), int32(h))
	s.ViewportRect = [4]int{x, y, w, h}
}

func (s *StateManager) Scissor(x, y, w, h int) {
	if s.ScissorRect == [4]int{x, y, w, h} {
		return
	}
	gl.Scissor(int32(x), int32(y), int32(w), int32(h))
	s.ScissorRect = [4]int{x, y, w, h}
}

func (s *StateManager) ClearColor(r, g, b, a float32) {
	if s.ClearColorRGBA == [4]float32{r, g, b, a} {
		return
	}
	gl.ClearColor(r, g, b, a)
	s.ClearColorRGBA = [4]float32{r, g, b, a}
}
