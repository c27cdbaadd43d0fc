package libgl

import (
	"encoding/binary"
	"fmt"
	"log"

	"github.com/go-gl/gl/v4.5-core/gl"
)

// Buffer is a GL buffer object. Static buffers get immutable storage sized to
// their initial data; stream buffers are reallocated when an upload outgrows
// them.
type Buffer struct {
	glId   uint32
	size   int
	stream bool
}

// NewStaticBuffer creates a buffer with immutable storage holding data, which
// must be a fixed size value or a slice of them.
func NewStaticBuffer(label string, data any) *Buffer {
	buf := newBuffer(label)
	size := byteSize(data)
	if size == 0 {
		InsertDebugMessage(fmt.Sprintf("Zero size allocation of buffer %q", label))
		return buf
	}
	gl.NamedBufferStorage(buf.glId, size, Pointer(data), gl.DYNAMIC_STORAGE_BIT)
	buf.size = size
	return buf
}

// NewStreamBuffer creates a buffer for data rewritten every frame.
func NewStreamBuffer(label string, capacity int) *Buffer {
	buf := newBuffer(label)
	buf.stream = true
	if capacity > 0 {
		gl.NamedBufferData(buf.glId, capacity, nil, gl.STREAM_DRAW)
		buf.size = capacity
	}
	return buf
}

func newBuffer(label string) *Buffer {
	var id uint32
	gl.CreateBuffers(1, &id)
	buf := &Buffer{glId: id}
	buf.SetDebugLabel(label)
	return buf
}

func byteSize(data any) int {
	size := binary.Size(data)
	if size == -1 {
		log.Panicf("%T does not have a fixed size", data)
	}
	return size
}

func (buf *Buffer) Id() uint32 {
	return buf.glId
}

func (buf *Buffer) Size() int {
	return buf.size
}

func (buf *Buffer) SetDebugLabel(label string) {
	setObjectLabel(gl.BUFFER, buf.glId, label)
}

// Upload replaces the contents from the start of the buffer. Stream buffers
// grow as needed, static buffers panic when data does not fit.
func (buf *Buffer) Upload(data any) {
	size := byteSize(data)
	if size == 0 {
		return
	}
	if size > buf.size {
		if !buf.stream {
			log.Panicf("upload of %d bytes into static buffer %d of %d bytes", size, buf.glId, buf.size)
		}
		gl.NamedBufferData(buf.glId, size, Pointer(data), gl.STREAM_DRAW)
		buf.size = size
		return
	}
	gl.NamedBufferSubData(buf.glId, 0, size, Pointer(data))
}

func (buf *Buffer) Delete() {
	if buf.glId == 0 {
		return
	}
	gl.DeleteBuffers(1, &buf.glId)
	buf.glId = 0
	buf.size = 0
}

// VertexAttribute describes how one shader input is read from a vertex
// buffer binding. Offset is in bytes.
type VertexAttribute struct {
	Location   int
	Components int
	Type       uint32
	Normalized bool
	Offset     int
}

// FloatAttribute is a non normalized float attribute.
func FloatAttribute(location, components, offset int) VertexAttribute {
	return VertexAttribute{Location: location, Components: components, Type: gl.FLOAT, Offset: offset}
}

type VertexArray struct {
	glId uint32
}

func NewVertexArray(label string) *VertexArray {
	var id uint32
	gl.CreateVertexArrays(1, &id)
	vao := &VertexArray{glId: id}
	vao.SetDebugLabel(label)
	return vao
}

func (vao *VertexArray) Id() uint32 {
	return vao.glId
}

func (vao *VertexArray) SetDebugLabel(label string) {
	setObjectLabel(gl.VERTEX_ARRAY, vao.glId, label)
}

// Attribute enables attr and sources it from the given buffer binding.
func (vao *VertexArray) Attribute(binding int, attr VertexAttribute) {
	location := uint32(attr.Location)
	gl.EnableVertexArrayAttrib(vao.glId, location)
	gl.VertexArrayAttribFormat(vao.glId, location, int32(attr.Components), attr.Type, attr.Normalized, uint32(attr.Offset))
	gl.VertexArrayAttribBinding(vao.glId, location, uint32(binding))
}

// VertexBuffer attaches buf to a binding; stride is in bytes.
func (vao *VertexArray) VertexBuffer(binding int, buf *Buffer, stride int) {
	gl.VertexArrayVertexBuffer(vao.glId, uint32(binding), buf.Id(), 0, int32(stride))
}

func (vao *VertexArray) ElementBuffer(buf *Buffer) {
	gl.VertexArrayElementBuffer(vao.glId, buf.Id())
}

func (vao *VertexArray) Bind() {
	State.BindVertexArray(vao.glId)
}

func (vao *VertexArray) Delete() {
	if vao.glId == 0 {
		return
	}
	if State != nil && State.VertexArray == vao.glId {
		State.VertexArray = 0
	}
	gl.DeleteVertexArrays(1, &vao.glId)
	vao.glId = 0
}
