package systems

import (
	"fmt"

	"github.com/spaghettifunk/shady/engine/core"
	"github.com/spaghettifunk/shady/engine/math"
	"github.com/spaghettifunk/shady/engine/renderer/metadata"
)

const (
	presetScale   float32 = 0.125
	presetSpacing float32 = 2.5
)

// SceneSystem switches between the demonstration scenes.
type SceneSystem struct {
	cameras    *CameraSystem
	geometries *GeometrySystem
	settings   *Settings
	current    int
}

func NewSceneSystem(cameras *CameraSystem, geometries *GeometrySystem, settings *Settings) *SceneSystem {
	return &SceneSystem{
		cameras:    cameras,
		geometries: geometries,
		settings:   settings,
		current:    1,
	}
}

// Current returns the scene last selected.
func (ss *SceneSystem) Current() int {
	return ss.current
}

/**
 * @brief Configures program and settings for scene n (1 to 4):
 * 1 Phong shading, 2 per-vertex texturing, 3 texture filtering,
 * 4 bump mapping.
 */
func (ss *SceneSystem) Select(n int) error {
	s := ss.settings
	switch n {
	case 1:
		s.GeometryOffset = 0
		s.Program = metadata.PROGRAM_PHONG
		s.Gouraud = true
		core.LogInfo("Setting scene 1: model, view and orthographic view transforms")
	case 2:
		if g, ok := ss.geometries.Get(0); ok {
			g.Material.Ka = 0.3
		}
		s.GeometryOffset = 0
		s.SeamFix = false
		s.SetPerVertexTexturing(true)
		core.LogInfo("Setting scene 2: perspective transform")
	case 3:
		s.SetFilteringMode(FilteringNearest)
		s.GeometryOffset = 1
		s.Program = metadata.PROGRAM_TEXTURE
		core.LogInfo("Setting scene 3: filtering modes")
	case 4:
		s.GeometryOffset = 0
		s.BumpMapping = BumpDisabled
		s.Program = metadata.PROGRAM_TEXTURE
		core.LogInfo("Setting scene 4: bump mapping modes")
	default:
		return fmt.Errorf("select scene %d: %w", n, core.ErrUnknownScene)
	}
	ss.current = n
	ss.geometries.Select(s.GeometryOffset)
	return nil
}

/**
 * @brief Places the geometries and the camera for placement preset n
 * (1 to 3). Geometry indices a preset names but the roster lacks are
 * skipped.
 */
func (ss *SceneSystem) ApplyPreset(n int) error {
	cam := ss.cameras.DefaultCamera
	all := ss.geometries.All()

	switch n {
	case 1:
		for _, g := range all {
			g.ResetModelMatrix()
			g.ScaleUniform(presetScale)
		}
		// one object on each side of the centre
		ss.translate(6, 2, presetSpacing)
		ss.translate(2, 0, presetSpacing)
		ss.translate(3, 1, -presetSpacing)
		ss.translate(4, 0, -presetSpacing)
		ss.translate(5, 2, -presetSpacing)
		ss.translate(1, 1, presetSpacing)
		cam.Ortho = true
		if err := ss.cameras.Refresh(); err != nil {
			return err
		}
		cam.From = math.NewVec3(1, 0.5, -1)
	case 2:
		for i, g := range all {
			g.ResetModelMatrix()
			g.ScaleUniform(presetScale)
			g.TranslateAxis(2, float32(i)*5)
		}
		cam.Ortho = false
		if err := ss.cameras.Refresh(); err != nil {
			return err
		}
		cam.From = math.NewVec3(0.75, 0.75, -2)
	case 3:
		for i, g := range all {
			g.ResetModelMatrix()
			if i != 0 && i != 1 {
				g.ScaleUniform(0)
			} else {
				g.ScaleUniform(presetScale)
			}
		}
		if g, ok := ss.geometries.Get(1); ok {
			g.TranslateAxis(1, 1)
			g.ScaleAxis(0, 1)
			g.ScaleAxis(1, 0.5)
			g.ScaleAxis(2, 0.2)
		}
		red := math.NewVec3(1, 0, 0)
		ss.setColor(0, red)
		ss.setColor(1, red)
		cam.Ortho = true
		if err := ss.cameras.Refresh(); err != nil {
			return err
		}
		cam.From = math.NewVec3(0, -1, -1)
	default:
		return fmt.Errorf("preset %d: %w", n, core.ErrUnknownScene)
	}

	// Collapsed geometries keep their old normal matrix.
	if err := ss.geometries.UpdateAllNormals(); err != nil {
		core.LogDebug("preset %d: %v", n, err)
	}
	core.LogInfo("Applied placement preset %d", n)
	return nil
}

func (ss *SceneSystem) translate(index, axis int, s float32) {
	if g, ok := ss.geometries.Get(index); ok {
		g.TranslateAxis(axis, s)
	}
}

func (ss *SceneSystem) setColor(index int, c math.Vec3) {
	if g, ok := ss.geometries.Get(index); ok {
		g.ObjColor = c
	}
}

