package libscn_test

import (
	"math/rand"
	"testing"

	"learn-gl/libscn"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const epsilon = 1e-5

func assertOrthonormal(t *testing.T, cam *libscn.Camera) {
	t.Helper()
	d, u, r := cam.Direction(), cam.Up(), cam.Right()
	assert.InDelta(t, 1, d.Len(), epsilon, "direction length")
	assert.InDelta(t, 1, u.Len(), epsilon, "up length")
	assert.InDelta(t, 1, r.Len(), epsilon, "right length")
	assert.InDelta(t, 0, d.Dot(u), epsilon, "direction·up")
	assert.InDelta(t, 0, r.Dot(u), epsilon, "right·up")
	assert.InDelta(t, 0, d.Dot(r), epsilon, "direction·right")
}

func assertVec3InDelta(t *testing.T, expected, actual mgl32.Vec3, delta float64) {
	t.Helper()
	for i := range expected {
		assert.InDelta(t, expected[i], actual[i], delta, "component %d of %v", i, actual)
	}
}

func TestNewCameraFacesNegativeZ(t *testing.T) {
	cam := libscn.NewCamera()
	assertVec3InDelta(t, mgl32.Vec3{0, 0, -1}, cam.Direction(), epsilon)
	assertVec3InDelta(t, mgl32.Vec3{0, 1, 0}, cam.Up(), epsilon)
	assertVec3InDelta(t, mgl32.Vec3{1, 0, 0}, cam.Right(), epsilon)
	assert.Equal(t, libscn.ZoomMin, cam.Zoom())
	assertOrthonormal(t, cam)
}

func TestPitchStaysClamped(t *testing.T) {
	cam := libscn.NewCamera()
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		cam.Rotate(int32(rng.Intn(2001)-1000), int32(rng.Intn(2001)-1000))
		require.GreaterOrEqual(t, cam.Pitch(), float32(libscn.PitchMin))
		require.LessOrEqual(t, cam.Pitch(), float32(libscn.PitchMax))
	}

	cam.Rotate(0, -100000)
	assert.Equal(t, float32(libscn.PitchMax), cam.Pitch())
	cam.Rotate(0, 100000)
	assert.Equal(t, float32(libscn.PitchMin), cam.Pitch())
}

func TestBasisStaysOrthonormal(t *testing.T) {
	cam := libscn.NewCamera()
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 500; i++ {
		cam.Rotate(int32(rng.Intn(401)-200), int32(rng.Intn(401)-200))
		assertOrthonormal(t, cam)
	}
	cam.Rotate(0, -100000)
	assertOrthonormal(t, cam)
}

func TestYawIsAdditive(t *testing.T) {
	cam := libscn.NewCamera()
	yaw := cam.Yaw()
	cam.Rotate(100, 0)
	assert.InDelta(t, yaw+0.5, cam.Yaw(), epsilon)
	cam.Rotate(-100, 0)
	assert.InDelta(t, yaw, cam.Yaw(), epsilon)
}

func TestZoomStaysClamped(t *testing.T) {
	cam := libscn.NewCamera()
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 1000; i++ {
		cam.AdjustZoom(int32(rng.Intn(61) - 30))
		require.GreaterOrEqual(t, cam.Zoom(), libscn.ZoomMin)
		require.LessOrEqual(t, cam.Zoom(), libscn.ZoomMax)
		fov := cam.FieldOfView()
		require.GreaterOrEqual(t, fov, float32(libscn.FovMin)-epsilon)
		require.LessOrEqual(t, fov, float32(libscn.FovMax)+epsilon)
	}
}

func TestZoomClampsToMax(t *testing.T) {
	cam := libscn.NewCamera()
	cam.AdjustZoom(200)
	assert.Equal(t, libscn.ZoomMax, cam.Zoom())
	assert.InDelta(t, libscn.FovMin, cam.FieldOfView(), epsilon)

	cam.AdjustZoom(-500)
	assert.Equal(t, libscn.ZoomMin, cam.Zoom())
	assert.InDelta(t, libscn.FovMax, cam.FieldOfView(), epsilon)
}

func TestFieldOfViewDecreasesWithZoom(t *testing.T) {
	cam := libscn.NewCamera()
	prev := cam.FieldOfView()
	for i := 0; i < 99; i++ {
		cam.AdjustZoom(1)
		fov := cam.FieldOfView()
		assert.Less(t, fov, prev, "zoom %v", cam.Zoom())
		prev = fov
	}
}

func TestMove(t *testing.T) {
	cam := libscn.NewCamera().SetPosition(mgl32.Vec3{1, 2, 3})
	cam.MovementSpeed = 2

	cam.Move(libscn.Forward, 0.5)
	assertVec3InDelta(t, mgl32.Vec3{1, 2, 2}, cam.Position, epsilon)
	cam.Move(libscn.Backward, 0.5)
	assertVec3InDelta(t, mgl32.Vec3{1, 2, 3}, cam.Position, epsilon)
	cam.Move(libscn.Right, 1)
	assertVec3InDelta(t, mgl32.Vec3{3, 2, 3}, cam.Position, epsilon)
	cam.Move(libscn.Left, 1)
	assertVec3InDelta(t, mgl32.Vec3{1, 2, 3}, cam.Position, epsilon)
}

func TestLookAt(t *testing.T) {
	cam := libscn.NewCamera().SetPosition(mgl32.Vec3{0, 0, 5})
	cam.LookAt(mgl32.Vec3{5, 0, 5})
	assertVec3InDelta(t, mgl32.Vec3{1, 0, 0}, cam.Direction(), epsilon)
	assertOrthonormal(t, cam)

	cam.LookAt(mgl32.Vec3{0, 100, 5})
	assert.InDelta(t, libscn.PitchMax, cam.Pitch(), epsilon)
	assertOrthonormal(t, cam)
}

func TestViewMatrixMapsEyeToOrigin(t *testing.T) {
	cam := libscn.NewCamera().SetPosition(mgl32.Vec3{4, -2, 7})
	cam.Rotate(37, -12)
	eye := cam.ViewMatrix().Mul4x1(cam.Position.Vec4(1))
	assertVec3InDelta(t, mgl32.Vec3{}, eye.Vec3(), 1e-4)

	// A point in front of the camera ends up on the -Z axis in view space.
	ahead := cam.ViewMatrix().Mul4x1(cam.Position.Add(cam.Direction().Mul(3)).Vec4(1))
	assert.InDelta(t, -3, ahead.Z(), 1e-4)
}

func TestProjectionMatrixUsesFieldOfView(t *testing.T) {
	cam := libscn.NewCamera().SetAspectRatio(16.0 / 9.0)
	cam.AdjustZoom(40)
	expected := mgl32.Perspective(cam.FieldOfView(), 16.0/9.0, libscn.NearPlane, libscn.FarPlane)
	projection := cam.ProjectionMatrix()
	for i := range expected {
		assert.InDelta(t, expected[i], projection[i], 1e-6, "element %d", i)
	}
	// m[5] = 1 / tan(fov/2)
	assert.InDelta(t, 1/math32.Tan(cam.FieldOfView()/2), cam.ProjectionMatrix()[5], 1e-4)
}

func TestViewProjectionMatrix(t *testing.T) {
	cam := libscn.NewCamera().SetPosition(mgl32.Vec3{1, 2, 3})
	cam.Rotate(-25, 40)
	cam.AdjustZoom(10)

	expected := cam.ProjectionMatrix().Mul4(cam.ViewMatrix())
	actual := cam.ViewProjectionMatrix()
	for i := range expected {
		assert.InDelta(t, expected[i], actual[i], 1e-6, "element %d", i)
	}

	// The point straight ahead projects to the center of the screen.
	clip := actual.Mul4x1(cam.Position.Add(cam.Direction().Mul(5)).Vec4(1))
	assert.InDelta(t, 0, clip.X()/clip.W(), 1e-4)
	assert.InDelta(t, 0, clip.Y()/clip.W(), 1e-4)
}

func TestMovementString(t *testing.T) {
	assert.Equal(t, "forward", libscn.Forward.String())
	assert.Equal(t, "left", libscn.Left.String())
	assert.Equal(t, "unknown", libscn.Movement(42).String())
}
