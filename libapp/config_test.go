package libapp_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"learn-gl/libapp"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := libapp.DefaultConfig("demo")
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "demo", cfg.Window.Title)
	assert.Equal(t, float32(10), cfg.Camera.MovementSpeed)
	assert.Equal(t, float32(0.005), cfg.Camera.Sensitivity)
	assert.InDelta(t, 4.0/3.0, cfg.AspectRatio(), 1e-6)
}

func TestDecodeOverlaysDefaults(t *testing.T) {
	cfg := libapp.DefaultConfig("demo")
	err := cfg.Decode(strings.NewReader(`
window:
  width: 1280
  height: 720
camera:
  position: [1, 2, 3]
`))
	require.NoError(t, err)
	assert.Equal(t, 1280, cfg.Window.Width)
	assert.Equal(t, 720, cfg.Window.Height)
	assert.Equal(t, "demo", cfg.Window.Title, "keys missing from the file keep their default")
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, cfg.Camera.PositionVec())
	assert.Equal(t, float32(10), cfg.Camera.MovementSpeed)
}

func TestDecodeEmptyDocument(t *testing.T) {
	cfg := libapp.DefaultConfig("demo")
	require.NoError(t, cfg.Decode(strings.NewReader("")))
	assert.Equal(t, libapp.DefaultConfig("demo"), cfg)
}

func TestDecodeRejectsBadInput(t *testing.T) {
	cases := map[string]string{
		"unknown key":   "window:\n  depth: 3\n",
		"bad size":      "window:\n  width: -1\n",
		"bad speed":     "camera:\n  movement_speed: -2\n",
		"no assets":     "hot_reload: true\n",
		"not a mapping": "- 1\n- 2\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := libapp.DefaultConfig("demo")
			assert.Error(t, cfg.Decode(strings.NewReader(doc)))
		})
	}
}

func TestParseArgumentsFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
assets: from-file
gl:
  compatibility_profile: true
`), 0o644))

	cfg, err := libapp.ParseArguments("demo", []string{"-config", path, "-assets", "from-flag", "-hot-reload"})
	require.NoError(t, err)
	assert.Equal(t, "from-flag", cfg.Assets)
	assert.True(t, cfg.HotReload)
	assert.True(t, cfg.GL.EnableCompatibilityProfile, "unset flags keep the file value")
}

func TestParseArgumentsErrors(t *testing.T) {
	_, err := libapp.ParseArguments("demo", []string{"-config", filepath.Join(t.TempDir(), "missing.yaml")})
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = libapp.ParseArguments("demo", []string{"-hot-reload"})
	assert.Error(t, err)

	_, err = libapp.ParseArguments("demo", []string{"-no-such-flag"})
	assert.Error(t, err)
}
