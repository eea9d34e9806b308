package systems

import (
	"errors"
	"fmt"

	"github.com/spaghettifunk/shady/engine/core"
	"github.com/spaghettifunk/shady/engine/math"
	"github.com/spaghettifunk/shady/engine/renderer/components"
)

/** @brief The geometry system configuration. */
type GeometrySystemConfig struct {
	/** @brief The maximum number of geometries that can be registered. */
	MaxGeometryCount uint32
	/** @brief Uniform scale applied to every geometry when registered. */
	InitialScale float32
	SphereSlices int
	SphereStacks int
}

func DefaultGeometrySystemConfig() *GeometrySystemConfig {
	return &GeometrySystemConfig{
		MaxGeometryCount: 8,
		InitialScale:     0.25,
		SphereSlices:     32,
		SphereStacks:     16,
	}
}

// ColourSampler returns the RGB colour of an image at texture coordinate tc.
type ColourSampler interface {
	SampleRGB(tc math.Vec2) math.Vec3
}

/**
 * @brief Holds the fixed roster of geometries and applies the model
 * transforms driven by the mouse. Model rotations and translations are
 * expressed in the camera's current UVN basis.
 */
type GeometrySystem struct {
	Config     *GeometrySystemConfig
	geometries []*components.Geometry
	cameras    *CameraSystem

	// Index of the geometry edited by model-mode interaction.
	selected int
}

/**
 * @brief Initializes the geometry system.
 *
 * @param config The configuration for this system.
 * @param cameras The camera system whose basis drives model transforms.
 */
func NewGeometrySystem(config *GeometrySystemConfig, cameras *CameraSystem) (*GeometrySystem, error) {
	if config.MaxGeometryCount == 0 {
		err := fmt.Errorf("func NewGeometrySystem - config.MaxGeometryCount must be > 0: %w", core.ErrInvalidConfig)
		core.LogWarn(err.Error())
		return nil, err
	}
	if cameras == nil {
		return nil, fmt.Errorf("func NewGeometrySystem - camera system is required: %w", core.ErrInvalidConfig)
	}
	return &GeometrySystem{
		Config:     config,
		geometries: make([]*components.Geometry, 0, config.MaxGeometryCount),
		cameras:    cameras,
	}, nil
}

// CreateDefaultGeometries registers the sphere and the square.
func (gs *GeometrySystem) CreateDefaultGeometries() error {
	sphere, err := gs.Register("sphere", math.GenerateSphere(gs.Config.SphereSlices, gs.Config.SphereStacks))
	if err != nil {
		return err
	}
	if _, err := gs.Register("square", math.GenerateSquare()); err != nil {
		return err
	}
	sphere.Material.Ka = 0.3
	sphere.Material.Kd = 0.3
	sphere.Material.Ks = 0.3
	return nil
}

/**
 * @brief Registers a new geometry built from mesh, scaled by the
 * configured initial scale.
 */
func (gs *GeometrySystem) Register(name string, mesh math.Mesh) (*components.Geometry, error) {
	if uint32(len(gs.geometries)) >= gs.Config.MaxGeometryCount {
		err := fmt.Errorf("func GeometrySystemRegister - no free slot for %q. Adjust geometry system config to allow more", name)
		core.LogError(err.Error())
		return nil, err
	}
	g := components.NewGeometry(name, mesh)
	if gs.Config.InitialScale != 0 {
		g.ScaleUniform(gs.Config.InitialScale)
	}
	if err := g.UpdateNormals(); err != nil {
		return nil, err
	}
	gs.geometries = append(gs.geometries, g)
	core.LogDebug("registered geometry '%s' (%s) with %d vertices", name, g.ID, len(mesh.Vertices))
	return g, nil
}

func (gs *GeometrySystem) Count() int {
	return len(gs.geometries)
}

// Get returns geometry i, or false when the index is out of range.
func (gs *GeometrySystem) Get(i int) (*components.Geometry, bool) {
	if i < 0 || i >= len(gs.geometries) {
		return nil, false
	}
	return gs.geometries[i], true
}

func (gs *GeometrySystem) All() []*components.Geometry {
	return gs.geometries
}

// Select chooses the geometry edited in model mode.
func (gs *GeometrySystem) Select(i int) {
	if i >= 0 && i < len(gs.geometries) {
		gs.selected = i
	}
}

func (gs *GeometrySystem) Selected() (*components.Geometry, bool) {
	return gs.Get(gs.selected)
}

func (gs *GeometrySystem) Shutdown() error {
	gs.geometries = nil
	return nil
}

/**
 * @brief Rotates g by fraction of a full turn around camera UVN axis i.
 * The rotation is applied after the current orientation and the normal
 * matrix follows it. If the normals cannot be rebuilt the orientation is
 * left as it was.
 */
func (gs *GeometrySystem) RotateModel(g *components.Geometry, fraction float32, axisIndex int) error {
	angle := math.K_PI_2 * fraction
	axis := gs.cameras.DefaultCamera.Axis(axisIndex)
	prev := g.Quaternion
	g.Rotate(math.NewQuatFromAxisAngle(axis, angle))
	if err := g.UpdateNormals(); err != nil {
		g.Quaternion = prev
		return err
	}
	return nil
}

func (gs *GeometrySystem) RotateModelU(g *components.Geometry, t float32) error {
	return gs.RotateModel(g, -t, 0)
}

func (gs *GeometrySystem) RotateModelV(g *components.Geometry, t float32) error {
	return gs.RotateModel(g, -t, 1)
}

func (gs *GeometrySystem) RotateModelN(g *components.Geometry, t float32) error {
	return gs.RotateModel(g, -t, 2)
}

// RotateModelUV rotates around U by y, then around V by x.
func (gs *GeometrySystem) RotateModelUV(g *components.Geometry, x, y float32) error {
	if err := gs.RotateModelU(g, y); err != nil {
		return err
	}
	return gs.RotateModelV(g, x)
}

// TranslateModelUV moves g along the camera's U by su and V by sv.
func (gs *GeometrySystem) TranslateModelUV(g *components.Geometry, su, sv float32) {
	cam := gs.cameras.DefaultCamera
	g.Translate(cam.U().Normalized().MulScalar(su))
	g.Translate(cam.V().Normalized().MulScalar(sv))
}

// TranslateModelN moves g along normalize(from - at).
func (gs *GeometrySystem) TranslateModelN(g *components.Geometry, s float32) error {
	cam := gs.cameras.DefaultCamera
	dir, err := cam.From.Sub(cam.At).Normalize()
	if err != nil {
		return fmt.Errorf("translate model: %w", err)
	}
	g.Translate(dir.MulScalar(s))
	return nil
}

// UpdateAllNormals refreshes every normal matrix. Failures are joined;
// geometries that fail keep their previous normal matrix.
func (gs *GeometrySystem) UpdateAllNormals() error {
	var errs []error
	for _, g := range gs.geometries {
		if err := g.UpdateNormals(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

/**
 * @brief Colours the vertices of geometry i from samplers[i] when enabled,
 * or resets every vertex colour to white when disabled.
 */
func (gs *GeometrySystem) ApplyVertexColours(enabled bool, samplers []ColourSampler) {
	white := math.NewVec3One()
	for i, g := range gs.geometries {
		if !enabled || i >= len(samplers) || samplers[i] == nil {
			g.SetVertexColours(func(math.Vec2) math.Vec3 { return white })
			continue
		}
		g.SetVertexColours(samplers[i].SampleRGB)
	}
}
