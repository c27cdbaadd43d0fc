package libgl

import "fmt"

// IoError reports a shader source that could not be read.
type IoError struct {
	Name string
	Err  error
}

func (e *IoError) Error() string {
	return fmt.Sprintf("I/O error (%s): %v", e.Name, e.Err)
}

func (e *IoError) Unwrap() error {
	return e.Err
}

// CompileError carries the driver's compile log for one stage.
type CompileError struct {
	Name    string
	Message string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("failed to compile shader %s: %s", e.Name, e.Message)
}

// LinkError carries the driver's program link log.
type LinkError struct {
	Message string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("failed to link program: %s", e.Message)
}

// UniformNotFoundError is returned for uniforms that are not declared in the
// program or that the compiler optimized away.
type UniformNotFoundError struct {
	Name string
}

func (e *UniformNotFoundError) Error() string {
	return fmt.Sprintf("couldn't get uniform location for %q", e.Name)
}
