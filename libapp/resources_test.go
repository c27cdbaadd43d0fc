package libapp_test

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"learn-gl/libapp"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenResourcesEmbedded(t *testing.T) {
	embedded := fstest.MapFS{"shaders/a.vert": {Data: []byte("void main() {}")}}
	res, watcher, err := libapp.OpenResources(libapp.DefaultConfig("demo"), embedded)
	require.NoError(t, err)
	assert.Nil(t, watcher)
	assert.Equal(t, "", res.Root())
	src, err := res.LoadString("shaders/a.vert")
	require.NoError(t, err)
	assert.Equal(t, "void main() {}", src)
}

func TestOpenResourcesDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.frag"), []byte("void main() {}"), 0o644))

	cfg := libapp.DefaultConfig("demo")
	cfg.Assets = dir
	res, watcher, err := libapp.OpenResources(cfg, nil)
	require.NoError(t, err)
	assert.Nil(t, watcher)
	assert.Equal(t, dir, res.Root())

	cfg.HotReload = true
	res, watcher, err = libapp.OpenResources(cfg, nil)
	require.NoError(t, err)
	require.NotNil(t, watcher)
	defer watcher.Close()
	_, err = res.LoadString("a.frag")
	assert.NoError(t, err)
}

func TestOpenResourcesMissingDirectory(t *testing.T) {
	cfg := libapp.DefaultConfig("demo")
	cfg.Assets = filepath.Join(t.TempDir(), "missing")
	_, _, err := libapp.OpenResources(cfg, nil)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
