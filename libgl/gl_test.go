//go:build gltest

package libgl_test

import (
	"errors"
	"image"
	"os"
	"runtime"
	"testing"
	"unsafe"

	"learn-gl/assets"
	"learn-gl/libgl"
	"learn-gl/libio"
	"learn-gl/libutil"

	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var onMain chan func()
var onMainDone chan struct{}

// TestMain runs the tests against a real driver in a hidden window. GL calls
// have to be made from the main thread, so tests submit them through onMain.
func TestMain(m *testing.M) {
	runtime.LockOSThread()

	check(glfw.Init())
	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 5)
	glfw.WindowHint(glfw.OpenGLDebugContext, glfw.True)
	ctx, err := glfw.CreateWindow(640, 480, "Testing Window", nil, nil)
	check(err)
	ctx.MakeContextCurrent()

	check(gl.InitWithProcAddrFunc(func(name string) unsafe.Pointer {
		addr := glfw.GetProcAddress(name)
		if addr == nil {
			return unsafe.Pointer(libutil.InvalidAddress)
		}
		return addr
	}))
	libgl.State = libgl.NewStateManager()

	onMain = make(chan func())
	onMainDone = make(chan struct{})

	go func() {
		code := m.Run()
		ctx.Destroy()
		os.Exit(code)
	}()

	for fn := range onMain {
		fn()
		onMainDone <- struct{}{}
	}
}

func check(err error) {
	if err != nil {
		panic(err)
	}
}

func onMainThread(fn func()) {
	onMain <- fn
	<-onMainDone
}

func TestGlEmbeddedPrograms(t *testing.T) {
	res := libio.FromFS(assets.FS)
	for _, name := range []string{"triangle", "textured", "cube", "imgui"} {
		var prog *libgl.Program
		var err error
		onMainThread(func() {
			prog, err = libgl.LoadProgram(libgl.GlDevice(), res, "shaders/"+name)
		})
		require.NoError(t, err, name)
		assert.NotZero(t, prog.Id())
		onMainThread(prog.Delete)
		assert.Zero(t, prog.Id())
	}
}

func TestGlCompileError(t *testing.T) {
	var err error
	onMainThread(func() {
		_, err = libgl.NewProgramBuilder(libgl.GlDevice(), "broken").
			Vertex("broken.vert", "#version 450 core\nvoid main() { gl_Position = vec4(1.0) }\n").
			Fragment("broken.frag", fragmentSource).
			Link()
	})
	var compileErr *libgl.CompileError
	require.True(t, errors.As(err, &compileErr))
	assert.Equal(t, "broken.vert", compileErr.Name)
	assert.NotEmpty(t, compileErr.Message)
}

func TestGlLinkError(t *testing.T) {
	var err error
	onMainThread(func() {
		_, err = libgl.NewProgramBuilder(libgl.GlDevice(), "mismatch").
			Vertex("mismatch.vert", "#version 450 core\nvoid main() { gl_Position = vec4(0.0); }\n").
			Fragment("mismatch.frag", "#version 450 core\nin vec3 v_missing;\nout vec4 o_color;\nvoid main() { o_color = vec4(v_missing, 1.0); }\n").
			Link()
	})
	var linkErr *libgl.LinkError
	require.True(t, errors.As(err, &linkErr))
	assert.NotEmpty(t, linkErr.Message)
}

func TestGlUniforms(t *testing.T) {
	res := libio.FromFS(assets.FS)
	var prog *libgl.Program
	var err error
	onMainThread(func() {
		prog, err = libgl.LoadProgram(libgl.GlDevice(), res, "shaders/cube")
	})
	require.NoError(t, err)
	defer onMainThread(prog.Delete)

	onMainThread(func() {
		prog.Use()
		assert.Equal(t, prog.Id(), libgl.State.Program)
		assert.NoError(t, prog.SetMat4("u_model", mgl32.Ident4()))
		assert.NoError(t, prog.SetFloat("u_mix", 0.5))
		assert.NoError(t, prog.SetTextureUnit("u_texture1", 1))

		var mix float32
		location, _ := prog.UniformLocation("u_mix")
		gl.GetUniformfv(prog.Id(), location, &mix)
		assert.Equal(t, float32(0.5), mix)

		var notFound *libgl.UniformNotFoundError
		assert.ErrorAs(t, prog.SetVec3("u_nothing", mgl32.Vec3{}), &notFound)
	})
}

func TestGlRenderTriangleOffscreen(t *testing.T) {
	res := libio.FromFS(assets.FS)
	var pixels *image.RGBA
	var err error
	onMainThread(func() {
		var rt *libgl.RenderTarget
		rt, err = libgl.NewRenderTarget(64, 64)
		if err != nil {
			return
		}
		defer rt.Delete()

		var prog *libgl.Program
		prog, err = libgl.LoadProgram(libgl.GlDevice(), res, "shaders/triangle")
		if err != nil {
			return
		}
		defer prog.Delete()

		vertices := []float32{
			-1, -1, 0, 1, 1, 1,
			3, -1, 0, 1, 1, 1,
			-1, 3, 0, 1, 1, 1,
		}
		vbo := libgl.NewStaticBuffer("triangle", vertices)
		defer vbo.Delete()
		vao := libgl.NewVertexArray("triangle")
		defer vao.Delete()
		vao.Attribute(0, libgl.FloatAttribute(0, 3, 0))
		vao.Attribute(0, libgl.FloatAttribute(1, 3, 3*4))
		vao.VertexBuffer(0, vbo, 6*4)

		rt.Bind()
		libgl.State.ClearColor(0, 0, 0, 1)
		gl.Clear(gl.COLOR_BUFFER_BIT)
		prog.Use()
		assert.NoError(t, prog.SetFloat("u_brightness", 0.5))
		vao.Bind()
		gl.DrawArrays(gl.TRIANGLES, 0, 3)
		pixels = rt.ReadPixels()
		libgl.State.BindFramebuffer(0)
	})
	require.NoError(t, err)
	c := pixels.RGBAAt(32, 32)
	assert.InDelta(t, 128, int(c.R), 2)
	assert.InDelta(t, 128, int(c.G), 2)
	assert.Equal(t, uint8(255), c.A)
}

func TestGlStreamBufferGrows(t *testing.T) {
	onMainThread(func() {
		buf := libgl.NewStreamBuffer("stream", 16)
		defer buf.Delete()
		assert.Equal(t, 16, buf.Size())
		buf.Upload(make([]float32, 2))
		assert.Equal(t, 16, buf.Size())
		buf.Upload(make([]float32, 8))
		assert.Equal(t, 32, buf.Size())

		static := libgl.NewStaticBuffer("static", []uint32{1, 2, 3})
		defer static.Delete()
		assert.Equal(t, 12, static.Size())
		assert.Panics(t, func() { static.Upload(make([]uint32, 4)) })
	})
}
