package libgui

import (
	"fmt"

	"learn-gl/libscn"
	"learn-gl/libutil"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/inkyblackness/imgui-go/v4"
)

// CameraPanel shows the camera state and lets position, zoom and speed be
// edited. It returns true when the camera was changed.
func CameraPanel(cam *libscn.Camera) bool {
	changed := false
	imgui.PushID("camera")
	defer imgui.PopID()
	if !imgui.CollapsingHeader("Camera") {
		return false
	}

	pos := [3]float32(cam.Position)
	if imgui.DragFloat3("Position", &pos) {
		cam.Position = mgl32.Vec3(pos)
		changed = true
	}
	imgui.Text(fmt.Sprintf("Yaw %.1f°  Pitch %.1f°", cam.Yaw()*libutil.Rad2Deg, cam.Pitch()*libutil.Rad2Deg))
	dir := cam.Direction()
	imgui.Text(fmt.Sprintf("Direction %.2f %.2f %.2f", dir[0], dir[1], dir[2]))

	zoom := int32(cam.Zoom())
	if imgui.SliderInt("Zoom", &zoom, int32(libscn.ZoomMin), int32(libscn.ZoomMax)) {
		cam.AdjustZoom(zoom - int32(cam.Zoom()))
		changed = true
	}
	imgui.Text(fmt.Sprintf("FOV %.1f°", cam.FieldOfView()*libutil.Rad2Deg))

	if imgui.SliderFloat("Speed", &cam.MovementSpeed, 0.5, 50) {
		changed = true
	}
	if imgui.Button("Look at origin") {
		cam.LookAt(mgl32.Vec3{})
		changed = true
	}
	return changed
}

// StatsPanel shows frame timing and the driver in use.
func StatsPanel(frameTime float32, renderer string) {
	fps := float32(0)
	if frameTime > 0 {
		fps = 1 / frameTime
	}
	imgui.Text(fmt.Sprintf("%.2f ms (%.0f fps)", frameTime*1000, fps))
	imgui.Text(renderer)
}
