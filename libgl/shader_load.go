package libgl

// SourceLoader provides shader sources by resource name.
type SourceLoader interface {
	LoadString(name string) (string, error)
}

// LoadStage reads and compiles a single stage; the kind is derived from the
// file extension (.vert or .frag).
func LoadStage(dev Device, res SourceLoader, name string) (*Stage, error) {
	kind, err := StageKindFromName(name)
	if err != nil {
		return nil, err
	}
	source, err := res.LoadString(name)
	if err != nil {
		return nil, &IoError{Name: name, Err: err}
	}
	return CompileStage(dev, kind, name, source)
}

// LoadProgram builds the program from name.vert and name.frag.
func LoadProgram(dev Device, res SourceLoader, name string) (*Program, error) {
	b := NewProgramBuilder(dev, name)
	for _, kind := range []StageKind{VertexStage, FragmentStage} {
		file := name + kind.Extension()
		source, err := res.LoadString(file)
		if err != nil {
			b.fail(&IoError{Name: file, Err: err})
			break
		}
		b.compile(kind, file, source)
	}
	return b.Link()
}
