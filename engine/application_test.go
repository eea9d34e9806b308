package engine

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spaghettifunk/shady/engine/core"
	"github.com/spaghettifunk/shady/engine/math"
	"github.com/spaghettifunk/shady/engine/renderer/components"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeConfigKeepsDefaults(t *testing.T) {
	config, err := DecodeConfig(strings.NewReader(`
[window]
width = 640

[camera]
from = [0.0, 1.0, -2.0]

[scene]
preset = 2

[assets]
watch = true
`))
	require.NoError(t, err)

	assert.Equal(t, 640, config.Window.Width)
	assert.Equal(t, 700, config.Window.Height)
	assert.Equal(t, "Shady", config.Window.Name)
	assert.Equal(t, [3]float32{0, 1, -2}, config.Camera.From)
	assert.Equal(t, components.DefaultFOV, config.Camera.FOV)
	assert.Equal(t, 2, config.Scene.Preset)
	assert.True(t, config.Assets.Watch)
	assert.Len(t, config.Assets.Textures, MaxTextures)
}

func TestDecodeConfigRejectsUnknownKeys(t *testing.T) {
	_, err := DecodeConfig(strings.NewReader("[window]\ncolour = \"red\"\n"))
	assert.ErrorIs(t, err, core.ErrInvalidConfig)
	assert.Contains(t, err.Error(), "colour")
}

func TestDecodeConfigSyntaxError(t *testing.T) {
	_, err := DecodeConfig(strings.NewReader("[window\nwidth = 1\n"))
	assert.ErrorIs(t, err, core.ErrInvalidConfig)
	assert.Contains(t, err.Error(), "line 1")
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shady.toml")
	require.NoError(t, os.WriteFile(path, []byte("[log]\nlevel = \"debug\"\n"), 0o644))

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", config.Log.Level)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, core.ErrInvalidConfig)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(c *ApplicationConfig){
		"window":          func(c *ApplicationConfig) { c.Window.Height = 0 },
		"camera.fov":      func(c *ApplicationConfig) { c.Camera.FOV = math.K_PI },
		"camera.near":     func(c *ApplicationConfig) { c.Camera.Far = c.Camera.Near },
		"camera.from":     func(c *ApplicationConfig) { c.Camera.At = c.Camera.From },
		"camera.up":       func(c *ApplicationConfig) { c.Camera.Up = [3]float32{} },
		"assets.textures": func(c *ApplicationConfig) { c.Assets.Textures = append(c.Assets.Textures, "extra.png") },
		"assets.vertex_shader": func(c *ApplicationConfig) {
			c.Assets.VertexShader = "mine.vert"
		},
		"scene.preset": func(c *ApplicationConfig) { c.Scene.Preset = 4 },
		"log.level":    func(c *ApplicationConfig) { c.Log.Level = "verbose" },
	}
	for field, breakIt := range cases {
		t.Run(field, func(t *testing.T) {
			config := DefaultApplicationConfig()
			require.NoError(t, config.Validate())
			breakIt(config)
			err := config.Validate()
			assert.ErrorIs(t, err, core.ErrInvalidConfig)
			assert.True(t, strings.HasPrefix(err.Error(), field+":"), err.Error())
		})
	}
}

func TestWatchDirs(t *testing.T) {
	config := DefaultApplicationConfig()
	assert.Equal(t, []string{
		filepath.Join("assets", "shaders"),
		filepath.Join("assets", "textimg"),
	}, config.watchDirs())

	config.Assets.VertexShader = filepath.Join("mine", "a.vert")
	config.Assets.FragmentShader = filepath.Join("mine", "a.frag")
	require.True(t, config.HasCustomProgram())
	assert.Equal(t, []string{
		filepath.Join("assets", "shaders"),
		filepath.Join("assets", "textimg"),
		"mine",
	}, config.watchDirs())
}

func TestSystemManagerConfig(t *testing.T) {
	config := DefaultApplicationConfig()
	config.Window.Width = 300
	config.Camera.Near = -5
	config.Light.Color = [3]float32{1, 0.5, 0}

	sm := config.SystemManagerConfig()
	assert.Equal(t, 300, sm.Camera.WindowWidth)
	assert.Equal(t, float32(-5), sm.Camera.Near)
	assert.Equal(t, math.NewVec3(1, 0.5, 0), sm.Camera.LightColor)
	assert.Equal(t, math.NewVec3(0, 0, -1), sm.Camera.From)
}
