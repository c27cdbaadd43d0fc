package libgl

import (
	"fmt"
	"image"

	"learn-gl/libio"

	"github.com/go-gl/gl/v4.5-core/gl"
)

// RenderTarget is an offscreen framebuffer with one RGBA8 color texture and
// a depth renderbuffer.
type RenderTarget struct {
	glId  uint32
	color *Texture
	depth uint32
}

func NewRenderTarget(width, height int) (*RenderTarget, error) {
	var id uint32
	gl.CreateFramebuffers(1, &id)
	rt := &RenderTarget{glId: id}

	rt.color = NewTexture2D("", 1, gl.RGBA8, width, height)
	gl.NamedFramebufferTexture(id, gl.COLOR_ATTACHMENT0, rt.color.Id(), 0)

	gl.CreateRenderbuffers(1, &rt.depth)
	gl.NamedRenderbufferStorage(rt.depth, gl.DEPTH_COMPONENT24, int32(width), int32(height))
	gl.NamedFramebufferRenderbuffer(id, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, rt.depth)

	if err := FramebufferStatus(gl.CheckNamedFramebufferStatus(id, gl.FRAMEBUFFER)); err != nil {
		rt.Delete()
		return nil, err
	}
	return rt, nil
}

func (rt *RenderTarget) Id() uint32 {
	return rt.glId
}

func (rt *RenderTarget) Color() *Texture {
	return rt.color
}

func (rt *RenderTarget) SetDebugLabel(label string) {
	setObjectLabel(gl.FRAMEBUFFER, rt.glId, label)
	rt.color.SetDebugLabel(label + " color")
}

// Bind makes the target the draw and read framebuffer and sets the viewport
// to its size.
func (rt *RenderTarget) Bind() {
	State.BindFramebuffer(rt.glId)
	State.Viewport(0, 0, rt.color.Width(), rt.color.Height())
}

// ReadPixels copies the color attachment into an image with the top row
// first.
func (rt *RenderTarget) ReadPixels() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, rt.color.Width(), rt.color.Height()))
	gl.GetTextureImage(rt.color.Id(), 0, gl.RGBA, gl.UNSIGNED_BYTE, int32(len(img.Pix)), Pointer(img.Pix))
	libio.FlipVertical(img)
	return img
}

func (rt *RenderTarget) Delete() {
	if rt.glId == 0 {
		return
	}
	if State != nil && State.Framebuffer == rt.glId {
		State.BindFramebuffer(0)
	}
	gl.DeleteFramebuffers(1, &rt.glId)
	gl.DeleteRenderbuffers(1, &rt.depth)
	rt.color.Delete()
	rt.glId = 0
}

// ReadDefaultFramebuffer copies the back buffer of the window into an image
// with the top row first.
func ReadDefaultFramebuffer(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	State.BindFramebuffer(0)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, Pointer(img.Pix))
	libio.FlipVertical(img)
	return img
}

// FramebufferStatus turns a completeness status into an error, nil when the
// framebuffer is complete.
func FramebufferStatus(status uint32) error {
	switch status {
	case gl.FRAMEBUFFER_COMPLETE:
		return nil
	case gl.FRAMEBUFFER_INCOMPLETE_ATTACHMENT:
		return fmt.Errorf("an attachment is framebuffer incomplete (GL_FRAMEBUFFER_INCOMPLETE_ATTACHMENT)")
	case gl.FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT:
		return fmt.Errorf("the framebuffer has no attachments (GL_FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT)")
	case gl.FRAMEBUFFER_INCOMPLETE_DRAW_BUFFER:
		return fmt.Errorf("the object type of a draw attachment is none (GL_FRAMEBUFFER_INCOMPLETE_DRAW_BUFFER)")
	case gl.FRAMEBUFFER_INCOMPLETE_READ_BUFFER:
		return fmt.Errorf("the object type of the read attachment is none (GL_FRAMEBUFFER_INCOMPLETE_READ_BUFFER)")
	case gl.FRAMEBUFFER_UNSUPPORTED:
		return fmt.Errorf("the combination of internal formats of the attachments is not supported (GL_FRAMEBUFFER_UNSUPPORTED)")
	case gl.FRAMEBUFFER_INCOMPLETE_MULTISAMPLE:
		return fmt.Errorf("the attachments have different sampling (GL_FRAMEBUFFER_INCOMPLETE_MULTISAMPLE)")
	}
	return fmt.Errorf("unknown framebuffer status: %X", status)
}
