// Command triangle draws a single triangle with interpolated vertex colors.
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

	"github.com/chewxy/math32"
	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

func main() {
	log.SetPrefix("[triangle] ")
	cfg, err := libapp.ParseArguments("triangle", os.Args[1:])
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
	if _, err := shaders.Load("shaders/triangle"); err != nil {
		return err
	}

	triangle, err := libscn.UploadMesh(libscn.Triangle())
	if err != nil {
		return fmt.Errorf("could not upload triangle: %w", err)
	}
	defer triangle.Delete()

	input := libapp.NewInput(win.Window)
	libgl.State.ClearColor(0.2, 0.3, 0.3, 1.0)
	pulse := false

	win.Show()
	for !win.ShouldClose() {
		glfw.PollEvents()
		input.Update()
		if input.IsKeyTap(glfw.KeyEscape) {
			win.SetShouldClose(true)
		}
		if input.IsKeyTap(glfw.KeyP) {
			pulse = !pulse
		}
		if watcher != nil {
			shaders.Reload(watcher.Changed())
		}

		gl.Clear(gl.COLOR_BUFFER_BIT)

		brightness := float32(1)
		if pulse {
			brightness = 0.5 + 0.5*math32.Sin(input.Time()*2)
		}
		program := shaders.Get("shaders/triangle")
		program.Use()
		program.Warn(program.SetFloat("u_brightness", brightness))
		triangle.Draw()

		win.SwapBuffers()
	}
	return nil
}
