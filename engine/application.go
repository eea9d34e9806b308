package engine

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spaghettifunk/shady/engine/core"
	"github.com/spaghettifunk/shady/engine/math"
	"github.com/spaghettifunk/shady/engine/renderer/components"
	"github.com/spaghettifunk/shady/engine/systems"
)

// Number of texture units the viewer binds, samplerA..samplerD.
const MaxTextures = 4

type WindowConfig struct {
	// The application name used as the window title.
	Name   string `toml:"name"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

type CameraConfig struct {
	From [3]float32 `toml:"from"`
	At   [3]float32 `toml:"at"`
	Up   [3]float32 `toml:"up"`
	// Vertical field of view in radians.
	FOV  float32 `toml:"fov"`
	Near float32 `toml:"near"`
	Far  float32 `toml:"far"`
}

type LightConfig struct {
	Direction [3]float32 `toml:"direction"`
	Color     [3]float32 `toml:"color"`
}

type SceneConfig struct {
	Background [3]float32 `toml:"background"`
	// Placement preset applied at startup, 0 for none.
	Preset int `toml:"preset"`
}

type AssetsConfig struct {
	ShaderDir string `toml:"shader_dir"`
	// Images bound to texture units 0..3, in order.
	Textures      []string `toml:"textures"`
	ScreenshotDir string   `toml:"screenshot_dir"`
	// Reload shaders when their files change.
	Watch bool `toml:"watch"`
	// Optional custom program, used instead of the phong one.
	VertexShader   string `toml:"vertex_shader"`
	FragmentShader string `toml:"fragment_shader"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

type RendererConfig struct {
	AbortOnGLError bool `toml:"abort_on_gl_error"`
}

type ApplicationConfig struct {
	Window   WindowConfig   `toml:"window"`
	Camera   CameraConfig   `toml:"camera"`
	Light    LightConfig    `toml:"light"`
	Scene    SceneConfig    `toml:"scene"`
	Assets   AssetsConfig   `toml:"assets"`
	Log      LogConfig      `toml:"log"`
	Renderer RendererConfig `toml:"renderer"`
}

// DefaultApplicationConfig returns the configuration the viewer starts
// with when no file is given.
func DefaultApplicationConfig() *ApplicationConfig {
	return &ApplicationConfig{
		Window: WindowConfig{Name: "Shady", Width: 900, Height: 700},
		Camera: CameraConfig{
			From: [3]float32{0, 0, -1},
			At:   [3]float32{0, 0, 0},
			Up:   [3]float32{0, 1, 0},
			FOV:  components.DefaultFOV,
			Near: components.DefaultNear,
			Far:  components.DefaultFar,
		},
		Light: LightConfig{
			Direction: [3]float32{1, 0, 0},
			Color:     [3]float32{1, 1, 1},
		},
		Scene: SceneConfig{Background: [3]float32{0.2, 0.25, 0.3}},
		Assets: AssetsConfig{
			ShaderDir: filepath.Join("assets", "shaders"),
			Textures: []string{
				filepath.Join("assets", "textimg", "uchic-rgb.png"),
				filepath.Join("assets", "textimg", "uchic-norm08.png"),
				filepath.Join("assets", "textimg", "uchic-hght08.png"),
				filepath.Join("assets", "textimg", "check-rgb.png"),
			},
			ScreenshotDir: ".",
		},
		Log: LogConfig{Level: "info"},
	}
}

/**
 * @brief Reads a TOML configuration file on top of the defaults. Keys the
 * file leaves out keep their default value; unknown keys are an error.
 */
func LoadConfig(path string) (*ApplicationConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %v: %w", err, core.ErrInvalidConfig)
	}
	defer f.Close()
	return DecodeConfig(f)
}

func DecodeConfig(r io.Reader) (*ApplicationConfig, error) {
	config := DefaultApplicationConfig()
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(config); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("config: %s: %w", strings.TrimSpace(strict.String()), core.ErrInvalidConfig)
		}
		var decodeErr *toml.DecodeError
		if errors.As(err, &decodeErr) {
			row, col := decodeErr.Position()
			return nil, fmt.Errorf("config line %d column %d: %v: %w", row, col, decodeErr, core.ErrInvalidConfig)
		}
		return nil, fmt.Errorf("config: %v: %w", err, core.ErrInvalidConfig)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func invalid(field, format string, args ...interface{}) error {
	return fmt.Errorf("%s: %s: %w", field, fmt.Sprintf(format, args...), core.ErrInvalidConfig)
}

// Validate reports the first field that cannot be used.
func (c *ApplicationConfig) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return invalid("window", "size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV >= math.K_PI {
		return invalid("camera.fov", "%v is outside (0, pi)", c.Camera.FOV)
	}
	if c.Camera.Near == c.Camera.Far {
		return invalid("camera.near", "near and far are both %v", c.Camera.Near)
	}
	if c.Camera.From == c.Camera.At {
		return invalid("camera.from", "from and at are the same point")
	}
	if c.Camera.Up == [3]float32{} {
		return invalid("camera.up", "up vector is zero")
	}
	if len(c.Assets.Textures) > MaxTextures {
		return invalid("assets.textures", "%d images for %d texture units", len(c.Assets.Textures), MaxTextures)
	}
	if (c.Assets.VertexShader == "") != (c.Assets.FragmentShader == "") {
		return invalid("assets.vertex_shader", "a custom program needs both a vertex and a fragment shader")
	}
	if c.Scene.Preset < 0 || c.Scene.Preset > 3 {
		return invalid("scene.preset", "%d is not a preset", c.Scene.Preset)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error", "fatal":
	default:
		return invalid("log.level", "unknown level %q", c.Log.Level)
	}
	return nil
}

// HasCustomProgram reports whether a vertex/fragment pair was configured.
func (c *ApplicationConfig) HasCustomProgram() bool {
	return c.Assets.VertexShader != "" && c.Assets.FragmentShader != ""
}

// watchDirs lists the directories holding the shaders and images, once each.
func (c *ApplicationConfig) watchDirs() []string {
	paths := append([]string{}, c.Assets.Textures...)
	if c.HasCustomProgram() {
		paths = append(paths, c.Assets.VertexShader, c.Assets.FragmentShader)
	}
	dirs := []string{filepath.Clean(c.Assets.ShaderDir)}
	for _, p := range paths {
		dir := filepath.Dir(p)
		if !slices.Contains(dirs, dir) {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

// SystemManagerConfig derives the configuration of the viewer state.
func (c *ApplicationConfig) SystemManagerConfig() *systems.SystemManagerConfig {
	config := systems.DefaultSystemManagerConfig()
	cam := config.Camera
	cam.WindowWidth = c.Window.Width
	cam.WindowHeight = c.Window.Height
	cam.From = vec3(c.Camera.From)
	cam.At = vec3(c.Camera.At)
	cam.Up = vec3(c.Camera.Up)
	cam.FOV = c.Camera.FOV
	cam.Near = c.Camera.Near
	cam.Far = c.Camera.Far
	cam.LightDirection = vec3(c.Light.Direction)
	cam.LightColor = vec3(c.Light.Color)
	return config
}

func vec3(v [3]float32) math.Vec3 {
	return math.NewVec3(v[0], v[1], v[2])
}
