package systems

import (
	"fmt"

	"github.com/spaghettifunk/shady/engine/core"
	"github.com/spaghettifunk/shady/engine/math"
	"github.com/spaghettifunk/shady/engine/renderer/components"
)

/**
 * @brief Owns the viewing camera, the spotlight and the directional light,
 * together with the window size the projection is derived from.
 */
type CameraSystem struct {
	Config  *CameraSystemConfig
	cameras map[string]*components.Camera
	// A default camera that always exists.
	DefaultCamera *components.Camera
	Spotlight     *components.Camera
	Light         *components.Light

	width  int
	height int
}

/** @brief The camera system configuration. */
type CameraSystemConfig struct {
	/** @brief The maximum number of named cameras, default and spotlight included. */
	MaxCameraCount uint16
	WindowWidth    int
	WindowHeight   int

	From math.Vec3
	At   math.Vec3
	Up   math.Vec3
	FOV  float32
	Near float32
	Far  float32

	LightDirection math.Vec3
	LightColor     math.Vec3
}

// DefaultCameraSystemConfig returns the start-up camera and light.
func DefaultCameraSystemConfig() *CameraSystemConfig {
	return &CameraSystemConfig{
		MaxCameraCount: 4,
		WindowWidth:    900,
		WindowHeight:   700,
		From:           math.NewVec3(0, 0, -1),
		At:             math.NewVec3Zero(),
		Up:             math.NewVec3Up(),
		FOV:            components.DefaultFOV,
		Near:           components.DefaultNear,
		Far:            components.DefaultFar,
		LightDirection: math.NewVec3(1, 0, 0),
		LightColor:     math.NewVec3One(),
	}
}

/**
 * @brief Initializes the camera system.
 *
 * @param config The configuration for this system.
 * @return The system, or an error when the configuration is unusable.
 */
func NewCameraSystem(config *CameraSystemConfig) (*CameraSystem, error) {
	if config.MaxCameraCount < 2 {
		err := fmt.Errorf("func NewCameraSystem - config.MaxCameraCount must be >= 2: %w", core.ErrInvalidConfig)
		core.LogError(err.Error())
		return nil, err
	}
	cs := &CameraSystem{
		Config:  config,
		cameras: make(map[string]*components.Camera, config.MaxCameraCount),
		Light:   components.NewLight(),
		width:   max(config.WindowWidth, 1),
		height:  max(config.WindowHeight, 1),
	}
	cs.Light.Direction = config.LightDirection
	cs.Light.Color = config.LightColor

	// Setup default camera and spotlight.
	cs.DefaultCamera = cs.newConfiguredCamera()
	cs.Spotlight = cs.newConfiguredCamera()
	cs.cameras[components.DEFAULT_CAMERA_NAME] = cs.DefaultCamera
	cs.cameras[components.SPOTLIGHT_CAMERA_NAME] = cs.Spotlight

	if err := cs.Update(); err != nil {
		core.LogError(err.Error())
		return nil, err
	}
	if err := cs.DefaultCamera.Resize(cs.width, cs.height); err != nil {
		core.LogError(err.Error())
		return nil, err
	}
	return cs, nil
}

func (cs *CameraSystem) newConfiguredCamera() *components.Camera {
	c := components.NewCamera()
	c.From = cs.Config.From
	c.At = cs.Config.At
	c.Up = cs.Config.Up
	c.FOV = cs.Config.FOV
	c.Near = cs.Config.Near
	c.Far = cs.Config.Far
	return c
}

/**
 * @brief Acquires a camera by name, creating it if it does not exist yet.
 *
 * @param name The name of the camera to acquire.
 * @return The camera, or an error once MaxCameraCount cameras exist.
 */
func (cs *CameraSystem) Acquire(name string) (*components.Camera, error) {
	if c, ok := cs.cameras[name]; ok {
		return c, nil
	}
	if len(cs.cameras) >= int(cs.Config.MaxCameraCount) {
		err := fmt.Errorf("func CameraSystemAcquire failed to acquire new slot for %q. Adjust camera system config to allow more", name)
		core.LogError(err.Error())
		return nil, err
	}
	core.LogDebug("Creating new camera named '%s'...", name)
	c := cs.newConfiguredCamera()
	cs.cameras[name] = c
	return c, nil
}

/**
 * @brief Releases a named camera. The default camera and the spotlight
 * cannot be released.
 */
func (cs *CameraSystem) Release(name string) {
	if name == components.DEFAULT_CAMERA_NAME || name == components.SPOTLIGHT_CAMERA_NAME {
		core.LogDebug("Cannot release camera '%s'. Nothing was done.", name)
		return
	}
	delete(cs.cameras, name)
}

/**
 * @brief Gets a pointer to the default camera.
 */
func (cs *CameraSystem) GetDefault() *components.Camera {
	return cs.DefaultCamera
}

func (cs *CameraSystem) Shutdown() error {
	cs.cameras = nil
	return nil
}

// Update rebuilds the view bases of the camera and the spotlight. It is
// called once per frame before drawing.
func (cs *CameraSystem) Update() error {
	if err := cs.DefaultCamera.UpdateUVN(); err != nil {
		return fmt.Errorf("camera: %w", err)
	}
	if err := cs.Spotlight.UpdateUVN(); err != nil {
		return fmt.Errorf("spotlight: %w", err)
	}
	return nil
}

func (cs *CameraSystem) WindowSize() (int, int) {
	return cs.width, cs.height
}

// Resize records the new window size and rebuilds the projection.
func (cs *CameraSystem) Resize(width, height int) error {
	cs.width = max(width, 1)
	cs.height = max(height, 1)
	return cs.DefaultCamera.Resize(cs.width, cs.height)
}

// Refresh rebuilds the projection for the current window size.
func (cs *CameraSystem) Refresh() error {
	return cs.Resize(cs.width, cs.height)
}

func (cs *CameraSystem) ToggleOrtho() error {
	cs.DefaultCamera.Ortho = !cs.DefaultCamera.Ortho
	if cs.DefaultCamera.Ortho {
		core.LogInfo("Orthographic")
	} else {
		core.LogInfo("Perspective")
	}
	return cs.Refresh()
}

func (cs *CameraSystem) ToggleFixedUp() {
	cs.DefaultCamera.Fixed = !cs.DefaultCamera.Fixed
	if cs.DefaultCamera.Fixed {
		core.LogInfo("Up vector fixed")
	} else {
		core.LogInfo("Up vector free")
	}
}

/**
 * @brief Orbits the eye around UVN axis i (0 = U, 1 = V) by angle radians.
 * The light direction and the spotlight position turn with it.
 */
func (cs *CameraSystem) RotateView(axisIndex int, angle float32) {
	r := cs.DefaultCamera.Orbit(axisIndex, angle)
	cs.Light.Rotate(r)
	cs.Spotlight.From = cs.Spotlight.From.TransformDirection(r)
}

func (cs *CameraSystem) RotateViewU(angle float32) { cs.RotateView(0, angle) }
func (cs *CameraSystem) RotateViewV(angle float32) { cs.RotateView(1, angle) }

// RotateViewN rolls the camera around its viewing direction.
func (cs *CameraSystem) RotateViewN(angle float32) error {
	return cs.DefaultCamera.Roll(angle)
}

// TranslateViewUV moves eye and look-at point along U by su and V by sv.
func (cs *CameraSystem) TranslateViewUV(su, sv float32) {
	c := cs.DefaultCamera
	c.Pan(c.U().Normalized().MulScalar(su))
	c.Pan(c.V().Normalized().MulScalar(sv))
}

// TranslateViewN moves eye and look-at point along normalize(from - at).
func (cs *CameraSystem) TranslateViewN(s float32) error {
	c := cs.DefaultCamera
	dir, err := c.From.Sub(c.At).Normalize()
	if err != nil {
		return fmt.Errorf("translate view: %w", err)
	}
	c.Pan(dir.MulScalar(s))
	return nil
}

// Zoom scales the field of view and rebuilds the projection.
func (cs *CameraSystem) Zoom(s float32) error {
	cs.DefaultCamera.Zoom(s)
	return cs.Refresh()
}

// DollyNearFar moves the clipping planes and rebuilds the projection.
func (cs *CameraSystem) DollyNearFar(delta float32) error {
	cs.DefaultCamera.DollyNearFar(delta)
	return cs.Refresh()
}

/**
 * @brief Orbits the spotlight around its own UVN axis i. The light
 * direction follows; the camera is untouched.
 */
func (cs *CameraSystem) RotateSpotlight(axisIndex int, angle float32) {
	r := cs.Spotlight.Orbit(axisIndex, angle)
	cs.Light.Rotate(r)
}

func (cs *CameraSystem) RotateSpotlightN(angle float32) error {
	return cs.Spotlight.Roll(angle)
}

// DollySpotlight adjusts the spotlight's planes. The spotlight has no
// window, so no projection is rebuilt.
func (cs *CameraSystem) DollySpotlight(delta float32) {
	cs.Spotlight.DollyNearFar(delta)
}

// RotateLightAround turns the light direction by angle around camera UVN axis i.
func (cs *CameraSystem) RotateLightAround(axisIndex int, angle float32) {
	axis := cs.DefaultCamera.Axis(axisIndex)
	cs.Light.Direction = cs.Light.Direction.Rotate(axis, angle)
}
