package libapp

import (
	"math"

	"learn-gl/libscn"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// inputSource is the part of *glfw.Window that input polls each frame.
type inputSource interface {
	GetCursorPos() (x, y float64)
	GetKey(key glfw.Key) glfw.Action
	GetMouseButton(button glfw.MouseButton) glfw.Action
}

type MovementBinding struct {
	Key      glfw.Key
	Movement libscn.Movement
}

var DefaultMovementBindings = []MovementBinding{
	{glfw.KeyW, libscn.Forward},
	{glfw.KeyS, libscn.Backward},
	{glfw.KeyA, libscn.Left},
	{glfw.KeyD, libscn.Right},
}

// Input keeps the current and previous polled state so that per-frame deltas
// and key taps can be derived.
type Input struct {
	curr     inputState
	prev     inputState
	source   inputSource
	clock    func() float64
	scroll   float64
	Bindings []MovementBinding
}

type inputState struct {
	time         float64
	cursorX      int32
	cursorY      int32
	scroll       int32
	keys         []bool
	mousebuttons []bool
}

func newInputState() inputState {
	return inputState{
		keys:         make([]bool, glfw.KeyLast+1),
		mousebuttons: make([]bool, glfw.MouseButtonLast+1),
	}
}

// NewInput polls the window once and installs a scroll callback. Callbacks
// installed later should chain to the previous one.
func NewInput(win *glfw.Window) *Input {
	i := newInput(win, glfw.GetTime)
	win.SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		i.AddScroll(yoff)
	})
	return i
}

func newInput(source inputSource, clock func() float64) *Input {
	i := &Input{
		curr:     newInputState(),
		prev:     newInputState(),
		source:   source,
		clock:    clock,
		Bindings: DefaultMovementBindings,
	}
	i.Update()
	i.prev.cursorX, i.prev.cursorY = i.curr.cursorX, i.curr.cursorY
	// Make sure dTime != 0 to avoid possible errors
	i.prev.time = i.curr.time - 1./60.
	copy(i.prev.keys, i.curr.keys)
	copy(i.prev.mousebuttons, i.curr.mousebuttons)
	return i
}

// AddScroll records vertical scroll offset until the next Update.
func (i *Input) AddScroll(yoff float64) {
	i.scroll += yoff
}

func (i *Input) Update() {
	keys := i.prev.keys
	mousebuttons := i.prev.mousebuttons
	i.prev = i.curr

	for key := glfw.KeySpace; key <= glfw.KeyLast; key++ {
		keys[key] = i.source.GetKey(key) != glfw.Release
	}
	for button := glfw.MouseButton1; button <= glfw.MouseButtonLast; button++ {
		mousebuttons[button] = i.source.GetMouseButton(button) != glfw.Release
	}

	// whole steps only, the remainder carries over to the next frame
	scroll := math.Trunc(i.scroll)
	i.scroll -= scroll

	x, y := i.source.GetCursorPos()
	i.curr = inputState{
		time:         i.clock(),
		cursorX:      int32(math.Round(x)),
		cursorY:      int32(math.Round(y)),
		scroll:       int32(scroll),
		keys:         keys,
		mousebuttons: mousebuttons,
	}
}

// CursorDelta is the cursor movement since the last frame in whole pixels.
func (i *Input) CursorDelta() (dx, dy int32) {
	return i.curr.cursorX - i.prev.cursorX, i.curr.cursorY - i.prev.cursorY
}

func (i *Input) ScrollDelta() int32 {
	return i.curr.scroll
}

func (i *Input) TimeDelta() float32 {
	return float32(i.curr.time - i.prev.time)
}

func (i *Input) Time() float32 {
	return float32(i.curr.time)
}

func (i *Input) IsKeyDown(key glfw.Key) bool {
	return i.curr.keys[key]
}

func (i *Input) IsKeyTap(key glfw.Key) bool {
	return i.curr.keys[key] && !i.prev.keys[key]
}

func (i *Input) IsMouseDown(button glfw.MouseButton) bool {
	return i.curr.mousebuttons[button]
}

func (i *Input) IsMouseTap(button glfw.MouseButton) bool {
	return i.curr.mousebuttons[button] && !i.prev.mousebuttons[button]
}

// Movements lists the camera movements whose keys are held, in binding order.
func (i *Input) Movements() []libscn.Movement {
	var movements []libscn.Movement
	for _, binding := range i.Bindings {
		if i.IsKeyDown(binding.Key) {
			movements = append(movements, binding.Movement)
		}
	}
	return movements
}
