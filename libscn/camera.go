package libscn

import (
	"learn-gl/libutil"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	FovMin = 0.01 * math32.Pi
	FovMax = 0.5 * math32.Pi

	ZoomMin = float32(1.0)
	ZoomMax = float32(100.0)

	PitchMin = -0.49 * math32.Pi
	PitchMax = 0.49 * math32.Pi

	NearPlane = float32(0.1)
	FarPlane  = float32(100.0)
)

var WorldUp = mgl32.Vec3{0, 1, 0}

type Movement int

const (
	Forward Movement = iota
	Backward
	Left
	Right
)

func (m Movement) String() string {
	switch m {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "unknown"
}

// Camera is a free-look camera driven by yaw and pitch in radians.
//
// Zoom is kept in [ZoomMin, ZoomMax] and maps linearly onto the vertical
// field of view, ZoomMin being the widest.
type Camera struct {
	Position      mgl32.Vec3
	MovementSpeed float32
	Sensitivity   float32
	AspectRatio   float32

	direction mgl32.Vec3
	up        mgl32.Vec3
	right     mgl32.Vec3

	yaw   float32
	pitch float32
	zoom  float32
}

func NewCamera() *Camera {
	cam := &Camera{
		MovementSpeed: 10.0,
		Sensitivity:   0.005,
		AspectRatio:   4.0 / 3.0,
		// Facing -Z
		yaw:  -0.5 * math32.Pi,
		zoom: ZoomMin,
	}
	cam.updateBasis()
	return cam
}

func (cam *Camera) SetPosition(value mgl32.Vec3) *Camera {
	cam.Position = value
	return cam
}

func (cam *Camera) SetAspectRatio(value float32) *Camera {
	cam.AspectRatio = value
	return cam
}

func (cam *Camera) Yaw() float32          { return cam.yaw }
func (cam *Camera) Pitch() float32        { return cam.pitch }
func (cam *Camera) Zoom() float32         { return cam.zoom }
func (cam *Camera) Direction() mgl32.Vec3 { return cam.direction }
func (cam *Camera) Up() mgl32.Vec3        { return cam.up }
func (cam *Camera) Right() mgl32.Vec3     { return cam.right }

// Move displaces the camera along its view direction or its right vector.
func (cam *Camera) Move(direction Movement, deltaTime float32) {
	speed := cam.MovementSpeed * deltaTime
	switch direction {
	case Forward:
		cam.Position = cam.Position.Add(cam.direction.Mul(speed))
	case Backward:
		cam.Position = cam.Position.Sub(cam.direction.Mul(speed))
	case Left:
		cam.Position = cam.Position.Sub(cam.right.Mul(speed))
	case Right:
		cam.Position = cam.Position.Add(cam.right.Mul(speed))
	}
}

func (cam *Camera) AdjustZoom(delta int32) {
	cam.zoom = libutil.Clamp(cam.zoom+float32(delta), ZoomMin, ZoomMax)
}

// Rotate applies mouse deltas. Positive pitchDelta (cursor moving down) looks down.
func (cam *Camera) Rotate(yawDelta, pitchDelta int32) {
	cam.pitch -= float32(pitchDelta) * cam.Sensitivity
	cam.pitch = libutil.Clamp(cam.pitch, PitchMin, PitchMax)
	cam.yaw += float32(yawDelta) * cam.Sensitivity
	cam.updateBasis()
}

// LookAt turns the camera towards target. The resulting pitch is clamped, so
// targets straight above or below are only approximated.
func (cam *Camera) LookAt(target mgl32.Vec3) {
	d := target.Sub(cam.Position)
	if d.LenSqr() == 0 {
		return
	}
	d = d.Normalize()
	cam.pitch = libutil.Clamp(math32.Asin(libutil.Clamp(d[1], -1, 1)), PitchMin, PitchMax)
	if d[0] != 0 || d[2] != 0 {
		cam.yaw = math32.Atan2(d[2], d[0])
	}
	cam.updateBasis()
}

func (cam *Camera) updateBasis() {
	sinPitch, cosPitch := math32.Sincos(cam.pitch)
	sinYaw, cosYaw := math32.Sincos(cam.yaw)
	cam.direction = mgl32.Vec3{cosPitch * cosYaw, sinPitch, cosPitch * sinYaw}.Normalize()
	cam.right = cam.direction.Cross(WorldUp).Normalize()
	cam.up = cam.right.Cross(cam.direction).Normalize()
}

// FieldOfView returns the vertical FOV in radians.
func (cam *Camera) FieldOfView() float32 {
	t := (cam.zoom - ZoomMin) / (ZoomMax - ZoomMin)
	return libutil.Lerp(FovMax, FovMin, t)
}

func (cam *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(cam.Position, cam.Position.Add(cam.direction), cam.up)
}

func (cam *Camera) ProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(cam.FieldOfView(), cam.AspectRatio, NearPlane, FarPlane)
}

func (cam *Camera) ViewProjectionMatrix() mgl32.Mat4 {
	return cam.ProjectionMatrix().Mul4(cam.ViewMatrix())
}
