package libgl_test

import (
	"testing"
	"unsafe"

	"learn-gl/libgl"

	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestPointer(t *testing.T) {
	vertices := []float32{1, 2, 3}
	assert.True(t, unsafe.Pointer(&vertices[0]) == libgl.Pointer(vertices))

	m := mgl32.Ident4()
	assert.True(t, unsafe.Pointer(&m) == libgl.Pointer(&m))

	assert.True(t, libgl.Pointer(nil) == nil)
	assert.True(t, libgl.Pointer([]float32{}) == nil)
	assert.True(t, libgl.Pointer((*mgl32.Mat4)(nil)) == nil)
	assert.Panics(t, func() { libgl.Pointer(42) })
}

func TestFormatDebugMessage(t *testing.T) {
	msg := libgl.FormatDebugMessage(gl.DEBUG_SOURCE_SHADER_COMPILER, gl.DEBUG_TYPE_ERROR, 7, gl.DEBUG_SEVERITY_MEDIUM, "oops")
	assert.Equal(t, "[ERROR] ERROR #7 from SHADER_COMPILER: oops", msg)

	msg = libgl.FormatDebugMessage(0x1, 0x2, 3, 0x4, "unknown")
	assert.Equal(t, "[0x4] 0x2 #3 from 0x1: unknown", msg)
}

func TestFramebufferStatus(t *testing.T) {
	assert.NoError(t, libgl.FramebufferStatus(gl.FRAMEBUFFER_COMPLETE))
	assert.ErrorContains(t, libgl.FramebufferStatus(gl.FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT), "no attachments")
	assert.ErrorContains(t, libgl.FramebufferStatus(0x1234), "unknown framebuffer status: 1234")
}
