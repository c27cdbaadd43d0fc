// Command textured draws a quad blending two textures bound to separate
// texture units.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"

	"learn-gl/assets"
	"learn-gl/libapp"
	"learn-gl/libgl"
	"learn-gl/libscn"
	"learn-gl/libutil"

	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

func main() {
	log.SetPrefix("[textured] ")
	cfg, err := libapp.ParseArguments("textured", os.Args[1:])
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
	if _, err := shaders.Load("shaders/textured"); err != nil {
		return err
	}

	container, err := libapp.LoadTexture(res, "textures/container.png")
	if err != nil {
		return err
	}
	defer container.Delete()
	face, err := libapp.LoadTexture(res, "textures/face.png")
	if err != nil {
		return err
	}
	defer face.Delete()

	sampler := libgl.NewSampler("textured", gl.REPEAT)
	defer sampler.Delete()

	quad, err := libscn.UploadMesh(libscn.Quad())
	if err != nil {
		return fmt.Errorf("could not upload quad: %w", err)
	}
	defer quad.Delete()

	input := libapp.NewInput(win.Window)
	libgl.State.ClearColor(0.2, 0.3, 0.3, 1.0)
	mix := float32(0.2)

	win.Show()
	for !win.ShouldClose() {
		glfw.PollEvents()
		input.Update()
		if input.IsKeyTap(glfw.KeyEscape) {
			win.SetShouldClose(true)
		}
		if input.IsKeyDown(glfw.KeyUp) {
			mix += input.TimeDelta()
		}
		if input.IsKeyDown(glfw.KeyDown) {
			mix -= input.TimeDelta()
		}
		mix = libutil.Clamp(mix, 0, 1)
		if watcher != nil {
			shaders.Reload(watcher.Changed())
		}

		gl.Clear(gl.COLOR_BUFFER_BIT)

		transform := mgl32.HomogRotate3DZ(input.Time()).Mul4(mgl32.Scale3D(1.5, 1.5, 1))
		program := shaders.Get("shaders/textured")
		program.Use()
		program.Warn(program.SetTextureUnit("u_texture0", 0))
		program.Warn(program.SetTextureUnit("u_texture1", 1))
		program.Warn(program.SetFloat("u_mix", mix))
		program.Warn(program.SetMat4("u_transform", transform))
		sampler.Bind(0)
		container.Bind(0)
		sampler.Bind(1)
		face.Bind(1)
		quad.Draw()

		win.SwapBuffers()
	}
	return nil
}
