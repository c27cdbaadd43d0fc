package libgl

import (
	"image"
	"math/bits"

	"github.com/go-gl/gl/v4.5-core/gl"
)

// Texture is a 2D texture with immutable storage.
type Texture struct {
	glId   uint32
	width  int
	height int
	levels int
}

// NewTexture2D allocates storage for a width x height texture. levels 0
// means a full mip chain.
func NewTexture2D(label string, levels int, internalFormat uint32, width, height int) *Texture {
	if levels <= 0 {
		levels = MipLevels(width, height)
	}
	var id uint32
	gl.CreateTextures(gl.TEXTURE_2D, 1, &id)
	gl.TextureStorage2D(id, int32(levels), internalFormat, int32(width), int32(height))
	tex := &Texture{glId: id, width: width, height: height, levels: levels}
	tex.SetDebugLabel(label)
	return tex
}

// NewTextureFromImage uploads img as an sRGB texture with a full mip chain.
// Rows are uploaded in order, so img should already be flipped for GL's
// bottom-left origin.
func NewTextureFromImage(label string, img *image.RGBA) *Texture {
	tex := NewTexture2D(label, 0, gl.SRGB8_ALPHA8, img.Rect.Dx(), img.Rect.Dy())
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(img.Stride/4))
	tex.Upload(gl.RGBA, img.Pix)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	tex.GenerateMipmap()
	return tex
}

// MipLevels returns the length of a full mip chain for the given size.
func MipLevels(width, height int) int {
	size := width
	if height > size {
		size = height
	}
	if size <= 0 {
		return 1
	}
	return bits.Len(uint(size))
}

func (tex *Texture) Id() uint32  { return tex.glId }
func (tex *Texture) Width() int  { return tex.width }
func (tex *Texture) Height() int { return tex.height }

func (tex *Texture) SetDebugLabel(label string) {
	setObjectLabel(gl.TEXTURE, tex.glId, label)
}

// Bind attaches the texture to a texture unit.
func (tex *Texture) Bind(unit int) {
	State.BindTextureUnit(unit, tex.glId)
}

// Upload replaces the base level with 8 bit pixels in the given format.
func (tex *Texture) Upload(format uint32, pixels []byte) {
	gl.TextureSubImage2D(tex.glId, 0, 0, 0, int32(tex.width), int32(tex.height), format, gl.UNSIGNED_BYTE, Pointer(pixels))
}

func (tex *Texture) GenerateMipmap() {
	if tex.levels > 1 {
		gl.GenerateTextureMipmap(tex.glId)
	}
}

func (tex *Texture) Delete() {
	if tex.glId == 0 {
		return
	}
	if State != nil {
		State.forgetTexture(tex.glId)
	}
	gl.DeleteTextures(1, &tex.glId)
	tex.glId = 0
}

// Sampler holds filtering and wrapping parameters independent of textures.
type Sampler struct {
	glId uint32
}

// NewSampler creates a sampler with trilinear filtering and the given wrap
// mode on both axes.
func NewSampler(label string, wrap int32) *Sampler {
	var id uint32
	gl.CreateSamplers(1, &id)
	s := &Sampler{glId: id}
	setObjectLabel(gl.SAMPLER, id, label)
	s.Filter(gl.LINEAR_MIPMAP_LINEAR, gl.LINEAR)
	s.Wrap(wrap, wrap)
	return s
}

func (s *Sampler) Id() uint32 {
	return s.glId
}

func (s *Sampler) Bind(unit int) {
	gl.BindSampler(uint32(unit), s.glId)
}

func (s *Sampler) Filter(min, mag int32) {
	gl.SamplerParameteri(s.glId, gl.TEXTURE_MIN_FILTER, min)
	gl.SamplerParameteri(s.glId, gl.TEXTURE_MAG_FILTER, mag)
}

func (s *Sampler) Wrap(wrapS, wrapT int32) {
	gl.SamplerParameteri(s.glId, gl.TEXTURE_WRAP_S, wrapS)
	gl.SamplerParameteri(s.glId, gl.TEXTURE_WRAP_T, wrapT)
}

func (s *Sampler) Delete() {
	if s.glId == 0 {
		return
	}
	gl.DeleteSamplers(1, &s.glId)
	s.glId = 0
}
