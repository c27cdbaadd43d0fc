package libapp

import (
	"fmt"
	"log"
	"strings"
	"unsafe"

	"learn-gl/libgl"
	"learn-gl/libutil"

	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

var vendorSuffixes = []string{"3DFX", "PGI", "SGIX", "SGIS", "SGI", "IBM", "HP", "NV", "NVX", "INGR", "ARB", "EXT", "AMD", "ATI", "MESA", "KHR", "INTEL", "GREMEDY", "APPLE", "OES", "SUN", "SUNX"}

// Window owns the glfw window and its GL context.
type Window struct {
	*glfw.Window
	Env *libgl.Env
}

// OpenWindow initializes glfw, creates a window with a current GL 4.5 context
// and loads the GL functions. It must be called from the main thread after
// runtime.LockOSThread.
func OpenWindow(cfg Config) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("could not initialize glfw: %w", err)
	}

	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 5)
	if cfg.GL.EnableCompatibilityProfile {
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCompatProfile)
	} else {
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	}
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLDebugContext, glfwBool(cfg.GL.Debug))
	glfw.WindowHint(glfw.Resizable, glfwBool(cfg.Window.Resizable))
	glfw.WindowHint(glfw.Visible, glfw.False)

	ctx, err := glfw.CreateWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("could not create window: %w", err)
	}
	ctx.MakeContextCurrent()
	if cfg.Window.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	if err := initGL(cfg.GL.Debug); err != nil {
		ctx.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("could not initialize OpenGL: %w", err)
	}

	w := &Window{Window: ctx, Env: libgl.GetEnv()}
	log.Printf("OpenGL %v, %v (%v)", w.Env.Version, w.Env.Renderer, w.Env.Vendor)

	width, height := ctx.GetFramebufferSize()
	libgl.State.Viewport(0, 0, width, height)
	ctx.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		libgl.State.Viewport(0, 0, width, height)
	})

	return w, nil
}

func initGL(debug bool) error {
	err := gl.InitWithProcAddrFunc(func(name string) unsafe.Pointer {
		addr := glfw.GetProcAddress(name)
		if addr == nil {
			if !hasVendorSuffix(name) {
				log.Printf("Proc missing: %v\n", name)
			}
			return unsafe.Pointer(libutil.InvalidAddress)
		}
		return addr
	})
	if err != nil {
		return err
	}
	libgl.State = libgl.NewStateManager()
	if debug {
		libgl.EnableDebugOutput()
	}
	return nil
}

func hasVendorSuffix(name string) bool {
	for _, suffix := range vendorSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

// AspectRatio of the framebuffer, 1 for a minimized window.
func (w *Window) AspectRatio() float32 {
	width, height := w.GetFramebufferSize()
	if width <= 0 || height <= 0 {
		return 1
	}
	return float32(width) / float32(height)
}

// CaptureCursor hides the cursor and switches to unbounded movement for
// free-look cameras.
func (w *Window) CaptureCursor(capture bool) {
	if capture {
		w.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	} else {
		w.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	}
}

func (w *Window) Close() {
	w.Destroy()
	glfw.Terminate()
}

func glfwBool(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}
