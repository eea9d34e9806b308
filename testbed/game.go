package testbed

import (
	"strings"

	"github.com/spaghettifunk/shady/engine"
	"github.com/spaghettifunk/shady/engine/core"
)

var controls = []string{
	"1-4        select a scene",
	"shift+1-3  place the geometries",
	"v / m / l  drag the view, the model or the light",
	"shift      drag with the alternate bindings",
	"arrows     rotate the view",
	"p          toggle orthographic / perspective",
	"u          toggle the fixed up vector",
	"d          save a screenshot",
	"q          quit",
}

// Viewer is the interactive front end: it only reports what happens, the
// engine owns the state.
type Viewer struct {
	*engine.Game
}

type viewerState struct {
	width  int
	height int
	frames uint64
}

func NewViewer(config *engine.ApplicationConfig) *Viewer {
	v := &Viewer{
		Game: &engine.Game{
			ApplicationConfig: config,
			State:             &viewerState{},
		},
	}
	v.FnInitialize = v.Initialize
	v.FnUpdate = v.Update
	v.FnOnResize = v.OnResize
	return v
}

func (v *Viewer) Initialize() error {
	core.LogInfo("Controls:\n  %s", strings.Join(controls, "\n  "))
	sm := v.SystemManager
	core.LogDebug("Mode %s, program '%s', %d geometries", sm.Interaction.Mode, sm.Settings.Program, sm.Geometries.Count())
	return nil
}

func (v *Viewer) Update(deltaTime float64) error {
	state := v.State.(*viewerState)
	state.frames++
	return nil
}

func (v *Viewer) OnResize(width int, height int) error {
	state := v.State.(*viewerState)
	state.width = width
	state.height = height
	return nil
}

// Frames reports how many frames were drawn so far.
func (v *Viewer) Frames() uint64 {
	return v.State.(*viewerState).frames
}
