package systems

import (
	"fmt"

	"github.com/spaghettifunk/shady/engine/core"
	"github.com/spaghettifunk/shady/engine/renderer/metadata"
)

// Angle of one arrow-key step around U or V, in radians.
const arrowStep float32 = 0.125

type SystemManagerConfig struct {
	Camera   *CameraSystemConfig
	Geometry *GeometrySystemConfig
}

func DefaultSystemManagerConfig() *SystemManagerConfig {
	return &SystemManagerConfig{
		Camera:   DefaultCameraSystemConfig(),
		Geometry: DefaultGeometrySystemConfig(),
	}
}

/**
 * @brief Owns every piece of viewer state. It is built once by the engine
 * and handed to whatever needs to read or mutate that state.
 */
type SystemManager struct {
	Cameras     *CameraSystem
	Geometries  *GeometrySystem
	Settings    *Settings
	Interaction *InteractionSystem
	Scenes      *SceneSystem
	Errors      *core.ErrorLog
}

func NewSystemManager(config *SystemManagerConfig) (*SystemManager, error) {
	cs, err := NewCameraSystem(config.Camera)
	if err != nil {
		return nil, err
	}
	gs, err := NewGeometrySystem(config.Geometry, cs)
	if err != nil {
		return nil, err
	}
	if err := gs.CreateDefaultGeometries(); err != nil {
		return nil, err
	}
	settings := NewSettings(gs, nil)
	return &SystemManager{
		Cameras:     cs,
		Geometries:  gs,
		Settings:    settings,
		Interaction: NewInteractionSystem(cs, gs),
		Scenes:      NewSceneSystem(cs, gs, settings),
		Errors:      core.NewErrorLog(),
	}, nil
}

func (sm *SystemManager) Shutdown() error {
	if err := sm.Geometries.Shutdown(); err != nil {
		return err
	}
	if err := sm.Cameras.Shutdown(); err != nil {
		return err
	}
	return nil
}

/**
 * @brief Collects what the renderer reads for one frame. Geometries from
 * Settings.GeometryOffset on are included, one fewer than the roster holds.
 * A geometry whose transform cannot be normalized is skipped and logged.
 */
func (sm *SystemManager) FramePacket() (metadata.FramePacket, error) {
	cam := sm.Cameras.DefaultCamera
	view, err := cam.UVN.NormalizeHomogeneous()
	if err != nil {
		return metadata.FramePacket{}, fmt.Errorf("view matrix: %w", err)
	}
	s := sm.Settings
	packet := metadata.FramePacket{
		View:           view,
		Projection:     cam.Proj,
		LightDirection: sm.Cameras.Light.Direction,
		LightColor:     sm.Cameras.Light.Color,
		Background:     s.BgColor,
		Gouraud:        s.Gouraud,
		SeamFix:        s.SeamFix,
		Program:        s.Program,
		MinFilter:      s.MinFilter,
		MagFilter:      s.MagFilter,
	}

	last := sm.Geometries.Count() - 1 + s.GeometryOffset
	for i := s.GeometryOffset; i < last; i++ {
		g, ok := sm.Geometries.Get(i)
		if !ok {
			continue
		}
		model, err := g.Transform()
		if err != nil {
			sm.Errors.AddError(err)
			continue
		}
		packet.Geometries = append(packet.Geometries, metadata.GeometryRenderData{
			GeometryID: g.ID,
			Index:      int32(i),
			Model:      model,
			Normal:     g.NormalMatrix,
			ObjColor:   g.ObjColor,
			Ka:         g.Material.Ka,
			Kd:         g.Material.Kd,
			Ks:         g.Material.Ks,
			Shexp:      g.Material.Shexp,
		})
	}
	return packet, nil
}

// KeyResult tells the engine about key commands it has to carry out itself.
type KeyResult struct {
	Quit       bool
	Screenshot bool
}

/**
 * @brief Applies the command bound to a released key. Shift with a digit
 * applies a placement preset, a digit alone selects a scene.
 */
func (sm *SystemManager) HandleKey(key core.KeyCode, shift bool) (KeyResult, error) {
	if n, ok := key.IsDigit(); ok {
		if shift {
			return KeyResult{}, sm.Scenes.ApplyPreset(n)
		}
		return KeyResult{}, sm.Scenes.Select(n)
	}

	switch key {
	case core.KEY_D:
		return KeyResult{Screenshot: true}, nil
	case core.KEY_Q:
		return KeyResult{Quit: true}, nil
	case core.KEY_U:
		sm.Cameras.ToggleFixedUp()
	case core.KEY_P:
		return KeyResult{}, sm.Cameras.ToggleOrtho()
	case core.KEY_V:
		sm.Interaction.SetMode(ModeView)
	case core.KEY_M:
		sm.Interaction.SetMode(ModeModel)
	case core.KEY_L:
		sm.Interaction.SetMode(ModeLight)
	case core.KEY_UP:
		sm.Cameras.RotateViewU(arrowStep)
	case core.KEY_DOWN:
		sm.Cameras.RotateViewU(-arrowStep)
	case core.KEY_LEFT:
		sm.Cameras.RotateViewV(-arrowStep)
	case core.KEY_RIGHT:
		sm.Cameras.RotateViewV(arrowStep)
	default:
		core.LogDebug("Caught key code: %d", key)
	}
	return KeyResult{}, nil
}
