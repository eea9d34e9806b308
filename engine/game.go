package engine

import (
	"github.com/spaghettifunk/shady/engine/systems"
)

/**
 * @brief What a front end plugs into the engine: its configuration and
 * optional hooks called at startup, once per frame and on resize. The
 * SystemManager is filled in by the engine before FnInitialize runs.
 */
type Game struct {
	ApplicationConfig *ApplicationConfig
	SystemManager     *systems.SystemManager
	State             interface{}
	FnInitialize      Initialize
	FnUpdate          Update
	FnOnResize        OnResize
}

type Initialize func() error
type Update func(deltaTime float64) error
type OnResize func(width int, height int) error

func (g *Game) initialize() error {
	if g.FnInitialize == nil {
		return nil
	}
	return g.FnInitialize()
}

func (g *Game) update(deltaTime float64) error {
	if g.FnUpdate == nil {
		return nil
	}
	return g.FnUpdate(deltaTime)
}

func (g *Game) onResize(width, height int) error {
	if g.FnOnResize == nil {
		return nil
	}
	return g.FnOnResize(width, height)
}
