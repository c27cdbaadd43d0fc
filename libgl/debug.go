package libgl

import (
	"fmt"
	"log"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.5-core/gl"
)

type LabeledGlObject interface {
	SetDebugLabel(string)
}

var (
	_ LabeledGlObject = (*Buffer)(nil)
	_ LabeledGlObject = (*VertexArray)(nil)
	_ LabeledGlObject = (*Texture)(nil)
	_ LabeledGlObject = (*RenderTarget)(nil)
)

func setObjectLabel(namespace, id uint32, label string) {
	if label == "" || id == 0 {
		return
	}
	bytes := []byte(label)
	gl.ObjectLabel(namespace, id, int32(len(bytes)), (*uint8)(unsafe.Pointer(&bytes[0])))
}

func PushDebugGroup(name string) {
	gl.PushDebugGroup(gl.DEBUG_SOURCE_APPLICATION, 0, -1, gl.Str(name+"\x00"))
}

func PopDebugGroup() {
	gl.PopDebugGroup()
}

// InsertDebugMessage reports an application error through the debug output,
// so it shows up next to the driver's messages.
func InsertDebugMessage(message string) {
	gl.DebugMessageInsert(gl.DEBUG_SOURCE_APPLICATION, gl.DEBUG_TYPE_ERROR, 1, gl.DEBUG_SEVERITY_MEDIUM, -1, gl.Str(message+"\x00"))
}

// ignoredDebugMessages are driver notifications that fire on every buffer
// allocation (NVIDIA).
var ignoredDebugMessages = []uint32{131185}

// debugOutput tracks the pushed debug groups so that fatal messages can say
// where they happened.
type debugOutput struct {
	groups []string
}

func (out *debugOutput) handle(source, gltype, id, severity uint32, length int32, message string, userParam unsafe.Pointer) {
	switch gltype {
	case gl.DEBUG_TYPE_PUSH_GROUP:
		out.groups = append(out.groups, message)
		return
	case gl.DEBUG_TYPE_POP_GROUP:
		if len(out.groups) > 0 {
			out.groups = out.groups[:len(out.groups)-1]
		}
		return
	}
	formatted := FormatDebugMessage(source, gltype, id, severity, message)
	if severity == gl.DEBUG_SEVERITY_HIGH {
		log.Panicf("%v\ndebug stack: %v", formatted, strings.Join(append([]string{"top"}, out.groups...), " > "))
	}
	log.Println(formatted)
}

// EnableDebugOutput routes driver messages to the standard logger. High
// severity messages panic with the current debug group stack.
func EnableDebugOutput() {
	gl.Enable(gl.DEBUG_OUTPUT)
	gl.Enable(gl.DEBUG_OUTPUT_SYNCHRONOUS)
	out := &debugOutput{}
	gl.DebugMessageCallback(out.handle, nil)
	gl.DebugMessageControl(gl.DEBUG_SOURCE_API, gl.DEBUG_TYPE_OTHER, gl.DONT_CARE, int32(len(ignoredDebugMessages)), &ignoredDebugMessages[0], false)
}

var (
	debugSeverityNames = map[uint32]string{
		gl.DEBUG_SEVERITY_HIGH:         "CRITICAL_ERROR",
		gl.DEBUG_SEVERITY_MEDIUM:       "ERROR",
		gl.DEBUG_SEVERITY_LOW:          "WARNING",
		gl.DEBUG_SEVERITY_NOTIFICATION: "INFO",
	}
	debugTypeNames = map[uint32]string{
		gl.DEBUG_TYPE_ERROR:               "ERROR",
		gl.DEBUG_TYPE_DEPRECATED_BEHAVIOR: "DEPRECATED_BEHAVIOR",
		gl.DEBUG_TYPE_UNDEFINED_BEHAVIOR:  "UNDEFINED_BEHAVIOR",
		gl.DEBUG_TYPE_PERFORMANCE:         "PERFORMANCE",
		gl.DEBUG_TYPE_PORTABILITY:         "PORTABILITY",
		gl.DEBUG_TYPE_OTHER:               "OTHER",
		gl.DEBUG_TYPE_MARKER:              "MARKER",
	}
	debugSourceNames = map[uint32]string{
		gl.DEBUG_SOURCE_API:             "GRAPHICS_LIBRARY",
		gl.DEBUG_SOURCE_SHADER_COMPILER: "SHADER_COMPILER",
		gl.DEBUG_SOURCE_WINDOW_SYSTEM:   "WINDOW_SYSTEM",
		gl.DEBUG_SOURCE_THIRD_PARTY:     "THIRD_PARTY",
		gl.DEBUG_SOURCE_APPLICATION:     "APPLICATION",
		gl.DEBUG_SOURCE_OTHER:           "OTHER",
	}
)

func debugEnumName(names map[uint32]string, value uint32) string {
	if name, ok := names[value]; ok {
		return name
	}
	return fmt.Sprintf("0x%X", value)
}

// FormatDebugMessage renders a debug output message as
// "[SEVERITY] TYPE #id from SOURCE: message".
func FormatDebugMessage(source, gltype, id, severity uint32, message string) string {
	return fmt.Sprintf("[%v] %v #%v from %v: %v",
		debugEnumName(debugSeverityNames, severity),
		debugEnumName(debugTypeNames, gltype),
		id,
		debugEnumName(debugSourceNames, source),
		message)
}
