package libapp

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"

	"learn-gl/libgl"
	"learn-gl/libio"
)

// OpenResources picks the resource root for a demo: the configured asset
// directory, looked up in the working directory and then next to the
// executable, or the embedded fallback when none is configured. A watcher is
// returned when hot reload is enabled.
func OpenResources(cfg Config, embedded fs.FS) (*libio.Resources, *libio.Watcher, error) {
	if cfg.Assets == "" {
		return libio.FromFS(embedded), nil, nil
	}

	var res *libio.Resources
	if info, err := os.Stat(cfg.Assets); err == nil && info.IsDir() {
		res = libio.FromDir(cfg.Assets)
	} else {
		res, err = libio.FromRelativeExePath(cfg.Assets)
		if err != nil {
			return nil, nil, fmt.Errorf("could not find asset directory %q: %w", cfg.Assets, err)
		}
	}
	log.Printf("Loading assets from %v", res.Root())

	if !cfg.HotReload {
		return res, nil, nil
	}
	watcher, err := libio.NewWatcher(res.Root())
	if err != nil {
		return nil, nil, fmt.Errorf("could not watch asset directory: %w", err)
	}
	return res, watcher, nil
}

// LoadTexture decodes an image resource into a mipmapped sRGB texture.
func LoadTexture(res *libio.Resources, name string) (*libgl.Texture, error) {
	img, err := res.LoadImage(name)
	if err != nil {
		return nil, err
	}
	if img.Rect.Empty() {
		return nil, errors.New("image " + name + " is empty")
	}
	return libgl.NewTextureFromImage(name, img), nil
}
