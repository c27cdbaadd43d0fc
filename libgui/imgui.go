package libgui

import (
	"unsafe"

	"learn-gl/libgl"
	"learn-gl/libutil"

	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/inkyblackness/imgui-go/v4"
)

type ImGui struct {
	IO        imgui.IO
	FrameTime float32
	win       *glfw.Window
	context   *imgui.Context
	vao       *libgl.VertexArray
	vbo       *libgl.Buffer
	ebo       *libgl.Buffer
	atlas     *libgl.Texture
	program   *libgl.Program
}

// NewImGui creates the imgui context for win and uploads the font atlas.
// Input callbacks already installed on win keep receiving events.
func NewImGui(win *glfw.Window, program *libgl.Program) *ImGui {
	context := imgui.CreateContext(nil)

	io := imgui.CurrentIO()
	dispWidth, dispHeight := win.GetSize()
	io.SetDisplaySize(imgui.Vec2{X: float32(dispWidth), Y: float32(dispHeight)})
	imgui.StyleColorsDark()

	vao := libgl.NewVertexArray("imgui")
	vertexSize, vertexOffsetPos, vertexOffsetUv, vertexOffsetCol := imgui.VertexBufferLayout()
	vao.Attribute(0, libgl.FloatAttribute(0, 2, vertexOffsetPos))
	vao.Attribute(0, libgl.FloatAttribute(1, 2, vertexOffsetUv))
	vao.Attribute(0, libgl.VertexAttribute{Location: 2, Components: 4, Type: gl.UNSIGNED_BYTE, Normalized: true, Offset: vertexOffsetCol})

	vbo := libgl.NewStreamBuffer("imgui vertices", vertexSize*1024)
	vao.VertexBuffer(0, vbo, vertexSize)

	ebo := libgl.NewStreamBuffer("imgui indices", imgui.IndexBufferLayout()*3*1024)
	vao.ElementBuffer(ebo)

	image := io.Fonts().TextureDataRGBA32()
	atlas := libgl.NewTexture2D("imgui font atlas", 1, gl.RGBA8, image.Width, image.Height)
	atlas.Upload(gl.RGBA, unsafe.Slice((*byte)(image.Pixels), image.Width*image.Height*4))
	io.Fonts().SetTextureID(imgui.TextureID(atlas.Id()))

	gui := &ImGui{
		IO:        io,
		FrameTime: float32(glfw.GetTime()),
		win:       win,
		context:   context,
		vao:       vao,
		vbo:       vbo,
		ebo:       ebo,
		atlas:     atlas,
		program:   program,
	}
	gui.installCallbacks()
	return gui
}

func (gui *ImGui) installCallbacks() {
	io := gui.IO
	win := gui.win

	var prevCursor glfw.CursorPosCallback
	prevCursor = win.SetCursorPosCallback(func(w *glfw.Window, mx, my float64) {
		io.SetMousePosition(imgui.Vec2{X: float32(mx), Y: float32(my)})
		if prevCursor != nil {
			prevCursor(w, mx, my)
		}
	})
	var prevButton glfw.MouseButtonCallback
	prevButton = win.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		io.SetMouseButtonDown(int(button), action == glfw.Press)
		if prevButton != nil {
			prevButton(w, button, action, mods)
		}
	})
	var prevScroll glfw.ScrollCallback
	prevScroll = win.SetScrollCallback(func(w *glfw.Window, x, y float64) {
		io.AddMouseWheelDelta(float32(x), float32(y))
		if prevScroll != nil {
			prevScroll(w, x, y)
		}
	})
	win.SetCharCallback(func(w *glfw.Window, char rune) {
		io.AddInputCharacters(string(char))
	})
	win.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action == glfw.Press {
			io.KeyPress(int(key))
		}
		if action == glfw.Release {
			io.KeyRelease(int(key))
		}

		// Modifiers are not reliable across systems
		io.KeyCtrl(int(glfw.KeyLeftControl), int(glfw.KeyRightControl))
		io.KeyShift(int(glfw.KeyLeftShift), int(glfw.KeyRightShift))
		io.KeyAlt(int(glfw.KeyLeftAlt), int(glfw.KeyRightAlt))
		io.KeySuper(int(glfw.KeyLeftSuper), int(glfw.KeyRightSuper))
	})

	for imKey, glfwKey := range map[int]glfw.Key{
		imgui.KeyTab:        glfw.KeyTab,
		imgui.KeyLeftArrow:  glfw.KeyLeft,
		imgui.KeyRightArrow: glfw.KeyRight,
		imgui.KeyUpArrow:    glfw.KeyUp,
		imgui.KeyDownArrow:  glfw.KeyDown,
		imgui.KeyPageUp:     glfw.KeyPageUp,
		imgui.KeyPageDown:   glfw.KeyPageDown,
		imgui.KeyHome:       glfw.KeyHome,
		imgui.KeyEnd:        glfw.KeyEnd,
		imgui.KeyInsert:     glfw.KeyInsert,
		imgui.KeyDelete:     glfw.KeyDelete,
		imgui.KeyBackspace:  glfw.KeyBackspace,
		imgui.KeySpace:      glfw.KeySpace,
		imgui.KeyEnter:      glfw.KeyEnter,
		imgui.KeyEscape:     glfw.KeyEscape,
		imgui.KeyA:          glfw.KeyA,
		imgui.KeyC:          glfw.KeyC,
		imgui.KeyV:          glfw.KeyV,
		imgui.KeyX:          glfw.KeyX,
		imgui.KeyY:          glfw.KeyY,
		imgui.KeyZ:          glfw.KeyZ,
	} {
		io.KeyMap(imKey, int(glfwKey))
	}
}

// SetProgram replaces the program used for drawing, e.g. after a reload.
func (gui *ImGui) SetProgram(program *libgl.Program) {
	gui.program = program
}

// SetMouseEnabled lets the gui react to the mouse. Disable it while the
// cursor is captured by a free-look camera.
func (gui *ImGui) SetMouseEnabled(enabled bool) {
	if enabled {
		gui.IO.SetConfigFlags(0)
	} else {
		gui.IO.SetConfigFlags(imgui.ConfigFlagsNoMouse)
	}
}

// WantsMouse reports whether the last frame's widgets consumed the mouse.
func (gui *ImGui) WantsMouse() bool {
	return gui.IO.WantCaptureMouse()
}

func (gui *ImGui) NewFrame() {
	dispWidth, dispHeight := gui.win.GetSize()
	gui.IO.SetDisplaySize(imgui.Vec2{X: float32(dispWidth), Y: float32(dispHeight)})

	time := float32(glfw.GetTime())
	gui.IO.SetDeltaTime(time - gui.FrameTime)
	gui.FrameTime = time

	imgui.NewFrame()
}

func (gui *ImGui) Draw() {
	libgl.PushDebugGroup("Draw ImGui")
	defer libgl.PopDebugGroup()

	dispWidth, dispHeight := gui.win.GetSize()
	fbWidth, fbHeight := gui.win.GetFramebufferSize()
	if fbWidth <= 0 || fbHeight <= 0 {
		imgui.Render()
		return
	}
	libgl.State.Viewport(0, 0, fbWidth, fbHeight)
	ortho := mgl32.Ortho2D(0, float32(dispWidth), float32(dispHeight), 0)

	gui.vao.Bind()
	gui.program.Use()
	gui.program.Warn(gui.program.SetMat4("u_proj_mat", ortho))
	gui.program.Warn(gui.program.SetTextureUnit("u_texture", 0))

	libgl.State.SetEnabled(libgl.Blend, libgl.ScissorTest)
	gl.BlendEquation(gl.FUNC_ADD)
	libgl.State.BlendFunc(libgl.BlendSrcAlpha, libgl.BlendOneMinusSrcAlpha)
	gl.BindSampler(0, 0)

	imgui.Render()
	drawData := imgui.RenderedDrawData()
	drawData.ScaleClipRects(imgui.Vec2{
		X: float32(fbWidth) / float32(dispWidth),
		Y: float32(fbHeight) / float32(dispHeight),
	})

	var indexType uint32
	indexSize := imgui.IndexBufferLayout()
	switch indexSize {
	case 1:
		indexType = gl.UNSIGNED_BYTE
	case 2:
		indexType = gl.UNSIGNED_SHORT
	case 4:
		indexType = gl.UNSIGNED_INT
	}

	for _, list := range drawData.CommandLists() {
		vertexBuffer, vertexBufferSize := list.VertexBuffer()
		gui.vbo.Upload(unsafe.Slice((*byte)(vertexBuffer), vertexBufferSize))
		indexBuffer, indexBufferSize := list.IndexBuffer()
		gui.ebo.Upload(unsafe.Slice((*byte)(indexBuffer), indexBufferSize))

		for _, cmd := range list.Commands() {
			if cmd.HasUserCallback() {
				cmd.CallUserCallback(list)
				continue
			}
			libgl.State.BindTextureUnit(0, uint32(cmd.TextureID()))
			clipRect := cmd.ClipRect()
			x, y := int(clipRect.X), fbHeight-int(clipRect.W)
			if y <= 0 {
				y = 0
			}
			libgl.State.Scissor(x, y, int(clipRect.Z-clipRect.X), int(clipRect.W-clipRect.Y))
			gl.DrawElementsBaseVertexWithOffset(gl.TRIANGLES, int32(cmd.ElementCount()), indexType, uintptr(cmd.IndexOffset()*indexSize), int32(cmd.VertexOffset()))
		}
	}

	libgl.State.Disable(libgl.ScissorTest)
}

func (gui *ImGui) Delete() {
	libutil.DeleteAll(gui.vao, gui.vbo, gui.ebo, gui.atlas)
	gui.context.Destroy()
}
