package libapp

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

type WindowConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Title     string `yaml:"title"`
	Resizable bool   `yaml:"resizable"`
	VSync     bool   `yaml:"vsync"`
}

type GLConfig struct {
	Debug                      bool `yaml:"debug"`
	EnableCompatibilityProfile bool `yaml:"compatibility_profile"`
}

type CameraConfig struct {
	MovementSpeed float32    `yaml:"movement_speed"`
	Sensitivity   float32    `yaml:"sensitivity"`
	Position      [3]float32 `yaml:"position"`
}

func (c CameraConfig) PositionVec() mgl32.Vec3 {
	return mgl32.Vec3(c.Position)
}

type Config struct {
	Window WindowConfig `yaml:"window"`
	GL     GLConfig     `yaml:"gl"`
	Camera CameraConfig `yaml:"camera"`
	// Assets is a directory to load resources from instead of the embedded ones.
	Assets    string `yaml:"assets"`
	HotReload bool   `yaml:"hot_reload"`
}

func DefaultConfig(title string) Config {
	return Config{
		Window: WindowConfig{
			Width:  800,
			Height: 600,
			Title:  title,
			VSync:  true,
		},
		GL: GLConfig{
			Debug: true,
		},
		Camera: CameraConfig{
			MovementSpeed: 10,
			Sensitivity:   0.005,
			Position:      [3]float32{0, 0, 3},
		},
	}
}

// Decode overlays the YAML document from r onto the config. Unknown keys are
// rejected.
func (c *Config) Decode(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return c.Validate()
}

func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Camera.MovementSpeed < 0 {
		return fmt.Errorf("camera movement speed must not be negative, got %v", c.Camera.MovementSpeed)
	}
	if c.Camera.Sensitivity <= 0 {
		return fmt.Errorf("camera sensitivity must be positive, got %v", c.Camera.Sensitivity)
	}
	if c.HotReload && c.Assets == "" {
		return errors.New("hot reload requires an asset directory")
	}
	return nil
}

func (c *Config) AspectRatio() float32 {
	return float32(c.Window.Width) / float32(c.Window.Height)
}

// ParseArguments reads the command line. A file named by -config is decoded
// first and flags given explicitly on the command line override its values.
func ParseArguments(title string, args []string) (Config, error) {
	cfg := DefaultConfig(title)

	fs := flag.NewFlagSet(title, flag.ContinueOnError)
	configPath := fs.String("config", "", "path to a YAML config file")
	assets := fs.String("assets", "", "load assets from this directory instead of the embedded ones")
	compat := fs.Bool("enable-compatibility-profile", false, "request an OpenGL compatibility profile")
	hotReload := fs.Bool("hot-reload", false, "rebuild shaders when their sources change, requires -assets")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	if *configPath != "" {
		data, err := os.ReadFile(*configPath)
		if err != nil {
			return cfg, fmt.Errorf("could not read config: %w", err)
		}
		if err := cfg.Decode(bytes.NewReader(data)); err != nil {
			return cfg, fmt.Errorf("could not parse config %q: %w", *configPath, err)
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "assets":
			cfg.Assets = *assets
		case "enable-compatibility-profile":
			cfg.GL.EnableCompatibilityProfile = *compat
		case "hot-reload":
			cfg.HotReload = *hotReload
		}
	})

	return cfg, cfg.Validate()
}
