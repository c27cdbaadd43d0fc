// Command cubes renders a field of textured cubes seen through a free-look
// camera. Tab toggles between flying (WASD, mouse, scroll to zoom) and using
// the overlay, F12 saves a screenshot.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"learn-gl/assets"
	"learn-gl/libapp"
	"learn-gl/libgl"
	"learn-gl/libgui"
	"learn-gl/libio"
	"learn-gl/libscn"
	"learn-gl/libutil"

	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/inkyblackness/imgui-go/v4"
)

func main() {
	log.SetPrefix("[cubes] ")
	cfg, err := libapp.ParseArguments("cubes", os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err == nil {
		runtime.LockOSThread()
		err = run(cfg)
	}
	if err != nil {
		log.Println(libutil.FormatErrorChain(err))
		os.Exit(1)
	}
}

type scene struct {
	shaders   *libapp.ShaderLibrary
	cube      *libscn.Model
	textures  [2]*libgl.Texture
	sampler   *libgl.Sampler
	camera    *libscn.Camera
	mix       float32
	tint      mgl32.Vec4
	wireframe bool
	paused    bool
	time      float32
}

func run(cfg libapp.Config) error {
	res, watcher, err := libapp.OpenResources(cfg, assets.FS)
	if err != nil {
		return err
	}
	if watcher != nil {
		defer watcher.Close()
	}

	win, err := libapp.OpenWindow(cfg)
	if err != nil {
		return err
	}
	defer win.Close()

	shaders := libapp.NewShaderLibrary(libgl.GlDevice(), res)
	defer shaders.Delete()
	for _, name := range []string{"shaders/cube", "shaders/imgui"} {
		if _, err := shaders.Load(name); err != nil {
			return err
		}
	}

	scn := &scene{
		shaders: shaders,
		camera: libscn.NewCamera().
			SetPosition(cfg.Camera.PositionVec()).
			SetAspectRatio(win.AspectRatio()),
		mix:  0.2,
		tint: mgl32.Vec4{1, 1, 1, 1},
	}
	scn.camera.MovementSpeed = cfg.Camera.MovementSpeed
	scn.camera.Sensitivity = cfg.Camera.Sensitivity

	for i, name := range []string{"textures/container.png", "textures/face.png"} {
		tex, err := libapp.LoadTexture(res, name)
		if err != nil {
			return err
		}
		defer tex.Delete()
		scn.textures[i] = tex
	}

	scn.sampler = libgl.NewSampler("cubes", gl.REPEAT)
	defer scn.sampler.Delete()

	scn.cube, err = libscn.UploadMesh(libscn.Cube())
	if err != nil {
		return fmt.Errorf("could not upload cube: %w", err)
	}
	defer scn.cube.Delete()

	input := libapp.NewInput(win.Window)
	gui := libgui.NewImGui(win.Window, shaders.Get("shaders/imgui"))
	defer gui.Delete()

	captured := true
	win.CaptureCursor(captured)
	gui.SetMouseEnabled(!captured)

	win.Show()
	for !win.ShouldClose() {
		glfw.PollEvents()
		input.Update()
		if input.IsKeyTap(glfw.KeyEscape) {
			win.SetShouldClose(true)
		}
		if watcher != nil {
			shaders.Reload(watcher.Changed())
		}

		if input.IsKeyTap(glfw.KeyTab) {
			captured = !captured
			win.CaptureCursor(captured)
			gui.SetMouseEnabled(!captured)
		} else if captured {
			scn.camera.Rotate(input.CursorDelta())
		}
		if captured || !gui.WantsMouse() {
			scn.camera.AdjustZoom(input.ScrollDelta())
		}
		if captured {
			for _, movement := range input.Movements() {
				scn.camera.Move(movement, input.TimeDelta())
			}
		}
		scn.camera.SetAspectRatio(win.AspectRatio())
		if !scn.paused {
			scn.time += input.TimeDelta()
		}

		scn.draw()
		if input.IsKeyTap(glfw.KeyF12) {
			screenshot(win)
		}

		gui.SetProgram(shaders.Get("shaders/imgui"))
		gui.NewFrame()
		scn.drawUi(win.Env.Renderer, input.TimeDelta())
		gui.Draw()

		win.SwapBuffers()
	}
	return nil
}

func (scn *scene) draw() {
	libgl.PushDebugGroup("Draw cubes")
	defer libgl.PopDebugGroup()

	libgl.State.SetEnabled(libgl.DepthTest)
	libgl.State.DepthFunc(libgl.DepthFuncLess)
	libgl.State.DepthMask(true)
	libgl.State.Wireframe(scn.wireframe)
	libgl.State.ClearColor(0.2, 0.3, 0.3, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	program := scn.shaders.Get("shaders/cube")
	program.Use()
	program.Warn(program.SetTextureUnit("u_texture0", 0))
	program.Warn(program.SetTextureUnit("u_texture1", 1))
	program.Warn(program.SetFloat("u_mix", scn.mix))
	program.Warn(program.SetVec4("u_tint", scn.tint))
	program.Warn(program.SetMat4("u_view_projection", scn.camera.ViewProjectionMatrix()))

	for unit, tex := range scn.textures {
		scn.sampler.Bind(unit)
		tex.Bind(unit)
	}

	for i := range libscn.CubePositions {
		program.Warn(program.SetMat4("u_model", libscn.CubeModelMatrix(i, scn.time)))
		scn.cube.Draw()
	}

	libgl.State.Wireframe(false)
}

func (scn *scene) drawUi(renderer string, frameTime float32) {
	imgui.Begin("main_window")
	libgui.StatsPanel(frameTime, renderer)
	imgui.Text("Tab: toggle fly mode")
	imgui.Checkbox("Wireframe", &scn.wireframe)
	imgui.Checkbox("Pause", &scn.paused)
	imgui.SliderFloat("Texture mix", &scn.mix, 0, 1)
	tint := [4]float32(scn.tint)
	if imgui.ColorEdit4("Tint", &tint) {
		scn.tint = mgl32.Vec4(tint)
	}
	libgui.CameraPanel(scn.camera)
	imgui.End()
}

// screenshot saves the scene without the overlay next to the working
// directory.
func screenshot(win *libapp.Window) {
	width, height := win.GetFramebufferSize()
	img := libgl.ReadDefaultFramebuffer(width, height)
	name := fmt.Sprintf("cubes-%s.png", time.Now().Format("20060102-150405"))
	if err := libio.SavePNG(name, img); err != nil {
		log.Printf("Screenshot failed: %v", err)
		return
	}
	log.Printf("Saved screenshot %v", name)
}
