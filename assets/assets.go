// Package assets embeds the shaders and textures of the demos.
package assets

import "embed"

//go:embed shaders textures
var FS embed.FS
