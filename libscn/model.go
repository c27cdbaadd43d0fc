package libscn

import (
	"learn-gl/libgl"

	"github.com/go-gl/gl/v4.5-core/gl"
)

// Model is a mesh uploaded to the GPU.
type Model struct {
	Mesh          *Mesh
	VertexArray   *libgl.VertexArray
	VertexBuffer  *libgl.Buffer
	ElementBuffer *libgl.Buffer
}

func UploadMesh(mesh *Mesh) (*Model, error) {
	if err := mesh.Validate(); err != nil {
		return nil, err
	}

	model := &Model{
		Mesh:         mesh,
		VertexArray:  libgl.NewVertexArray(mesh.Name),
		VertexBuffer: libgl.NewStaticBuffer(mesh.Name+" vertices", mesh.Vertices),
	}
	for _, attr := range mesh.Attributes {
		model.VertexArray.Attribute(0, libgl.FloatAttribute(attr.Location, attr.Size, attr.Offset*FloatSize))
	}
	model.VertexArray.VertexBuffer(0, model.VertexBuffer, mesh.Stride*FloatSize)

	if len(mesh.Indices) > 0 {
		model.ElementBuffer = libgl.NewStaticBuffer(mesh.Name+" indices", mesh.Indices)
		model.VertexArray.ElementBuffer(model.ElementBuffer)
	}

	return model, nil
}

func (model *Model) Draw() {
	model.VertexArray.Bind()
	if model.ElementBuffer != nil {
		gl.DrawElements(gl.TRIANGLES, int32(model.Mesh.ElementCount()), gl.UNSIGNED_INT, nil)
	} else {
		gl.DrawArrays(gl.TRIANGLES, 0, int32(model.Mesh.VertexCount()))
	}
}

func (model *Model) Delete() {
	model.VertexArray.Delete()
	model.VertexBuffer.Delete()
	if model.ElementBuffer != nil {
		model.ElementBuffer.Delete()
	}
}
