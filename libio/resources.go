package libio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/pierrec/lz4/v4"
)

// CompressedSuffix marks lz4 frame compressed resources. A resource "a.vert"
// may also be stored as "a.vert.lz4".
const CompressedSuffix = ".lz4"

// Resources loads assets by slash separated name from a file system root.
type Resources struct {
	fsys fs.FS
	root string
}

func FromFS(fsys fs.FS) *Resources {
	return &Resources{fsys: fsys}
}

func FromDir(dir string) *Resources {
	return &Resources{fsys: os.DirFS(dir), root: dir}
}

// FromRelativeExePath roots the resources at a directory next to the running
// executable.
func FromRelativeExePath(rel string) (*Resources, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("could not find executable path: %w", err)
	}
	dir := filepath.Join(filepath.Dir(exe), rel)
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("could not open resource directory %q: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("resource root %q is not a directory", dir)
	}
	return FromDir(dir), nil
}

// Root is the directory on disk, or "" for embedded resources.
func (res *Resources) Root() string {
	return res.root
}

func (res *Resources) FS() fs.FS {
	return res.fsys
}

// Open opens a resource, falling back to its compressed variant.
func (res *Resources) Open(name string) (io.ReadCloser, error) {
	name = path.Clean(strings.TrimPrefix(filepath.ToSlash(name), "/"))

	if strings.HasSuffix(name, CompressedSuffix) {
		f, err := res.fsys.Open(name)
		if err != nil {
			return nil, fmt.Errorf("could not open resource %q: %w", name, err)
		}
		return newLz4ReadCloser(f), nil
	}

	f, err := res.fsys.Open(name)
	if err == nil {
		return f, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("could not open resource %q: %w", name, err)
	}
	cf, cerr := res.fsys.Open(name + CompressedSuffix)
	if cerr != nil {
		return nil, fmt.Errorf("could not open resource %q: %w", name, err)
	}
	return newLz4ReadCloser(cf), nil
}

func (res *Resources) LoadBytes(name string) ([]byte, error) {
	r, err := res.Open(name)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("could not read resource %q: %w", name, err)
	}
	return data, nil
}

// LoadString loads a text resource. The content has to be valid UTF-8
// without NUL bytes, since it is handed to C APIs.
func (res *Resources) LoadString(name string) (string, error) {
	data, err := res.LoadBytes(name)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("resource %q is not valid UTF-8", name)
	}
	if i := bytes.IndexByte(data, 0); i >= 0 {
		return "", fmt.Errorf("resource %q contains a NUL byte at offset %d", name, i)
	}
	return string(data), nil
}

type lz4ReadCloser struct {
	*lz4.Reader
	src io.Closer
}

func newLz4ReadCloser(src io.ReadCloser) io.ReadCloser {
	return &lz4ReadCloser{Reader: lz4.NewReader(src), src: src}
}

func (r *lz4ReadCloser) Close() error {
	return r.src.Close()
}
