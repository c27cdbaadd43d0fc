package libapp

import (
	"fmt"
	"log"

	"learn-gl/libgl"

	"golang.org/x/exp/slices"
)

// ShaderLibrary owns the programs of a demo by resource name ("shaders/cube"
// for shaders/cube.vert and shaders/cube.frag).
type ShaderLibrary struct {
	dev      libgl.Device
	res      libgl.SourceLoader
	programs map[string]*libgl.Program
}

func NewShaderLibrary(dev libgl.Device, res libgl.SourceLoader) *ShaderLibrary {
	return &ShaderLibrary{
		dev:      dev,
		res:      res,
		programs: map[string]*libgl.Program{},
	}
}

// Load builds the program and registers it, replacing a previously loaded
// program of the same name.
func (lib *ShaderLibrary) Load(name string) (*libgl.Program, error) {
	prog, err := libgl.LoadProgram(lib.dev, lib.res, name)
	if err != nil {
		return nil, fmt.Errorf("could not load shader program %q: %w", name, err)
	}
	if old, ok := lib.programs[name]; ok {
		old.Delete()
	}
	lib.programs[name] = prog
	return prog, nil
}

// Get returns a loaded program or nil.
func (lib *ShaderLibrary) Get(name string) *libgl.Program {
	return lib.programs[name]
}

func (lib *ShaderLibrary) Names() []string {
	names := make([]string, 0, len(lib.programs))
	for name := range lib.programs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Reload rebuilds every program with a source among the changed resource
// names. A program that fails to rebuild keeps its previous version and the
// error is logged. Reload returns the names of the rebuilt programs.
func (lib *ShaderLibrary) Reload(changed []string) []string {
	var reloaded []string
	for _, name := range lib.Names() {
		affected := slices.ContainsFunc(changed, func(file string) bool {
			return file == name+libgl.VertexStage.Extension() || file == name+libgl.FragmentStage.Extension()
		})
		if !affected {
			continue
		}
		if _, err := lib.Load(name); err != nil {
			log.Printf("Shader reload failed, keeping the previous version: %v", err)
			continue
		}
		log.Printf("Reloaded shader program %q", name)
		reloaded = append(reloaded, name)
	}
	return reloaded
}

func (lib *ShaderLibrary) Delete() {
	for name, prog := range lib.programs {
		prog.Delete()
		delete(lib.programs, name)
	}
}
