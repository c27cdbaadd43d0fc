package libscn

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

const FloatSize = int(unsafe.Sizeof(float32(0)))

// Attribute describes one float vertex attribute inside an interleaved vertex.
// Size and Offset are counted in floats.
type Attribute struct {
	Location int
	Size     int
	Offset   int
}

// Mesh is interleaved float vertex data with an optional index list.
// Stride is counted in floats.
type Mesh struct {
	Name       string
	Vertices   []float32
	Stride     int
	Attributes []Attribute
	Indices    []uint32
}

func (mesh *Mesh) VertexCount() int {
	if mesh.Stride == 0 {
		return 0
	}
	return len(mesh.Vertices) / mesh.Stride
}

// ElementCount is the number of vertices a draw call has to process.
func (mesh *Mesh) ElementCount() int {
	if len(mesh.Indices) > 0 {
		return len(mesh.Indices)
	}
	return mesh.VertexCount()
}

func (mesh *Mesh) Validate() error {
	if mesh.Stride <= 0 {
		return fmt.Errorf("mesh %q: stride must be positive, got %d", mesh.Name, mesh.Stride)
	}
	if len(mesh.Vertices)%mesh.Stride != 0 {
		return fmt.Errorf("mesh %q: %d floats are not a multiple of the stride %d", mesh.Name, len(mesh.Vertices), mesh.Stride)
	}
	for _, attr := range mesh.Attributes {
		if attr.Size < 1 || attr.Size > 4 {
			return fmt.Errorf("mesh %q: attribute %d has invalid size %d", mesh.Name, attr.Location, attr.Size)
		}
		if attr.Offset < 0 || attr.Offset+attr.Size > mesh.Stride {
			return fmt.Errorf("mesh %q: attribute %d exceeds the stride", mesh.Name, attr.Location)
		}
	}
	count := uint32(mesh.VertexCount())
	for i, index := range mesh.Indices {
		if index >= count {
			return fmt.Errorf("mesh %q: index %d at %d is out of range", mesh.Name, index, i)
		}
	}
	return nil
}

// Triangle is a single triangle with per-vertex colors.
func Triangle() *Mesh {
	return &Mesh{
		Name: "triangle",
		Vertices: []float32{
			// positions     // colors
			-0.5, -0.5, 0.0, 1.0, 0.0, 0.0,
			0.5, -0.5, 0.0, 0.0, 1.0, 0.0,
			0.0, 0.5, 0.0, 0.0, 0.0, 1.0,
		},
		Stride: 6,
		Attributes: []Attribute{
			{Location: 0, Size: 3, Offset: 0},
			{Location: 1, Size: 3, Offset: 3},
		},
	}
}

// Quad is an indexed quad with colors and texture coordinates.
func Quad() *Mesh {
	return &Mesh{
		Name: "quad",
		Vertices: []float32{
			// positions     // colors      // uv
			0.5, 0.5, 0.0, 1.0, 0.0, 0.0, 1.0, 1.0,
			0.5, -0.5, 0.0, 0.0, 1.0, 0.0, 1.0, 0.0,
			-0.5, -0.5, 0.0, 0.0, 0.0, 1.0, 0.0, 0.0,
			-0.5, 0.5, 0.0, 1.0, 1.0, 0.0, 0.0, 1.0,
		},
		Stride: 8,
		Attributes: []Attribute{
			{Location: 0, Size: 3, Offset: 0},
			{Location: 1, Size: 3, Offset: 3},
			{Location: 2, Size: 2, Offset: 6},
		},
		Indices: []uint32{
			0, 1, 3,
			1, 2, 3,
		},
	}
}

// Cube is a unit cube with texture coordinates, 36 unindexed vertices.
func Cube() *Mesh {
	return &Mesh{
		Name: "cube",
		Vertices: []float32{
			-0.5, -0.5, -0.5, 0.0, 0.0,
			0.5, -0.5, -0.5, 1.0, 0.0,
			0.5, 0.5, -0.5, 1.0, 1.0,
			0.5, 0.5, -0.5, 1.0, 1.0,
			-0.5, 0.5, -0.5, 0.0, 1.0,
			-0.5, -0.5, -0.5, 0.0, 0.0,

			-0.5, -0.5, 0.5, 0.0, 0.0,
			0.5, -0.5, 0.5, 1.0, 0.0,
			0.5, 0.5, 0.5, 1.0, 1.0,
			0.5, 0.5, 0.5, 1.0, 1.0,
			-0.5, 0.5, 0.5, 0.0, 1.0,
			-0.5, -0.5, 0.5, 0.0, 0.0,

			-0.5, 0.5, 0.5, 1.0, 0.0,
			-0.5, 0.5, -0.5, 1.0, 1.0,
			-0.5, -0.5, -0.5, 0.0, 1.0,
			-0.5, -0.5, -0.5, 0.0, 1.0,
			-0.5, -0.5, 0.5, 0.0, 0.0,
			-0.5, 0.5, 0.5, 1.0, 0.0,

			0.5, 0.5, 0.5, 1.0, 0.0,
			0.5, 0.5, -0.5, 1.0, 1.0,
			0.5, -0.5, -0.5, 0.0, 1.0,
			0.5, -0.5, -0.5, 0.0, 1.0,
			0.5, -0.5, 0.5, 0.0, 0.0,
			0.5, 0.5, 0.5, 1.0, 0.0,

			-0.5, -0.5, -0.5, 0.0, 1.0,
			0.5, -0.5, -0.5, 1.0, 1.0,
			0.5, -0.5, 0.5, 1.0, 0.0,
			0.5, -0.5, 0.5, 1.0, 0.0,
			-0.5, -0.5, 0.5, 0.0, 0.0,
			-0.5, -0.5, -0.5, 0.0, 1.0,

			-0.5, 0.5, -0.5, 0.0, 1.0,
			0.5, 0.5, -0.5, 1.0, 1.0,
			0.5, 0.5, 0.5, 1.0, 0.0,
			0.5, 0.5, 0.5, 1.0, 0.0,
			-0.5, 0.5, 0.5, 0.0, 0.0,
			-0.5, 0.5, -0.5, 0.0, 1.0,
		},
		Stride: 5,
		Attributes: []Attribute{
			{Location: 0, Size: 3, Offset: 0},
			{Location: 1, Size: 2, Offset: 3},
		},
	}
}

// CubePositions places the cubes of the cube scene.
var CubePositions = []mgl32.Vec3{
	{0.0, 0.0, 0.0},
	{2.0, 5.0, -15.0},
	{-1.5, -2.2, -2.5},
	{-3.8, -2.0, -12.3},
	{2.4, -0.4, -3.5},
	{-1.7, 3.0, -7.5},
	{1.3, -2.0, -2.5},
	{1.5, 2.0, -2.5},
	{1.5, 0.2, -1.5},
	{-1.3, 1.0, -1.5},
}

// CubeModelMatrix is the model matrix of cube i at time t: each cube spins
// around its own tilted axis at a rate that depends on its index.
func CubeModelMatrix(i int, t float32) mgl32.Mat4 {
	pos := CubePositions[i%len(CubePositions)]
	angle := mgl32.DegToRad(20*float32(i)) + t*float32(i%3+1)*0.5
	axis := mgl32.Vec3{1.0, 0.3, 0.5}.Normalize()
	return mgl32.Translate3D(pos[0], pos[1], pos[2]).Mul4(mgl32.HomogRotate3D(angle, axis))
}
