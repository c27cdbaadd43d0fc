package libapp

import (
	"testing"

	"learn-gl/libscn"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"
)

type fakeSource struct {
	x, y    float64
	keys    map[glfw.Key]bool
	buttons map[glfw.MouseButton]bool
	now     float64
}

func newFakeSource() *fakeSource {
	return &fakeSource{keys: map[glfw.Key]bool{}, buttons: map[glfw.MouseButton]bool{}}
}

func (s *fakeSource) GetCursorPos() (float64, float64) {
	return s.x, s.y
}

func (s *fakeSource) GetKey(key glfw.Key) glfw.Action {
	if s.keys[key] {
		return glfw.Press
	}
	return glfw.Release
}

func (s *fakeSource) GetMouseButton(button glfw.MouseButton) glfw.Action {
	if s.buttons[button] {
		return glfw.Press
	}
	return glfw.Release
}

func (s *fakeSource) clock() float64 {
	return s.now
}

func TestInputInitialState(t *testing.T) {
	src := newFakeSource()
	src.x, src.y = 10, 20
	src.now = 5
	i := newInput(src, src.clock)

	dx, dy := i.CursorDelta()
	assert.Zero(t, dx)
	assert.Zero(t, dy)
	assert.Zero(t, i.ScrollDelta())
	assert.InDelta(t, 1./60., i.TimeDelta(), 1e-6)
}

func TestInputDeltas(t *testing.T) {
	src := newFakeSource()
	i := newInput(src, src.clock)

	src.x, src.y = 12.4, -3.6
	src.now = 0.25
	i.Update()
	dx, dy := i.CursorDelta()
	assert.Equal(t, int32(12), dx)
	assert.Equal(t, int32(-4), dy)
	assert.InDelta(t, 0.25, i.TimeDelta(), 1e-6)

	i.Update()
	dx, dy = i.CursorDelta()
	assert.Zero(t, dx)
	assert.Zero(t, dy)
}

func TestInputScrollCarriesRemainder(t *testing.T) {
	src := newFakeSource()
	i := newInput(src, src.clock)

	i.AddScroll(0.75)
	i.Update()
	assert.Zero(t, i.ScrollDelta())

	i.AddScroll(0.5)
	i.Update()
	assert.Equal(t, int32(1), i.ScrollDelta())

	i.AddScroll(-3)
	i.Update()
	assert.Equal(t, int32(-2), i.ScrollDelta())

	i.Update()
	assert.Zero(t, i.ScrollDelta())
}

func TestScrollUpZoomsIn(t *testing.T) {
	src := newFakeSource()
	i := newInput(src, src.clock)
	cam := libscn.NewCamera()
	wide := cam.FieldOfView()

	i.AddScroll(2)
	i.Update()
	cam.AdjustZoom(i.ScrollDelta())
	assert.Less(t, cam.FieldOfView(), wide)
}

func TestInputKeyTap(t *testing.T) {
	src := newFakeSource()
	i := newInput(src, src.clock)

	src.keys[glfw.KeyF] = true
	src.buttons[glfw.MouseButtonRight] = true
	i.Update()
	assert.True(t, i.IsKeyDown(glfw.KeyF))
	assert.True(t, i.IsKeyTap(glfw.KeyF))
	assert.True(t, i.IsMouseTap(glfw.MouseButtonRight))

	i.Update()
	assert.True(t, i.IsKeyDown(glfw.KeyF))
	assert.False(t, i.IsKeyTap(glfw.KeyF))
	assert.True(t, i.IsMouseDown(glfw.MouseButtonRight))
	assert.False(t, i.IsMouseTap(glfw.MouseButtonRight))

	src.keys[glfw.KeyF] = false
	i.Update()
	assert.False(t, i.IsKeyDown(glfw.KeyF))
}

func TestInputMovements(t *testing.T) {
	src := newFakeSource()
	i := newInput(src, src.clock)
	assert.Empty(t, i.Movements())

	src.keys[glfw.KeyD] = true
	src.keys[glfw.KeyW] = true
	i.Update()
	assert.Equal(t, []libscn.Movement{libscn.Forward, libscn.Right}, i.Movements())

	i.Bindings = []MovementBinding{{glfw.KeyUp, libscn.Forward}}
	assert.Empty(t, i.Movements())
}
