package platform

import (
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/spaghettifunk/shady/engine/core"
)

func init() {
	// GLFW event handling and the GL context must stay on the main OS thread
	runtime.LockOSThread()
}

/**
 * @brief A single glfw window with an OpenGL 3.2 core context. Window
 * callbacks are turned into input state changes, which fire the
 * matching events.
 */
type Platform struct {
	Window *glfw.Window

	input     *core.InputState
	events    *core.EventSystem
	startTime float64
}

func New(input *core.InputState, events *core.EventSystem) *Platform {
	return &Platform{
		input:  input,
		events: events,
	}
}

func (p *Platform) Startup(applicationName string, width, height int) error {
	if err := glfw.Init(); err != nil {
		core.LogError("failed to initialize glfw: %s", err)
		return err
	}

	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 2)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.DepthBits, 32)

	window, err := glfw.CreateWindow(width, height, applicationName, nil, nil)
	if err != nil {
		core.LogError("failed to create window: %s", err)
		glfw.Terminate()
		return err
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)
	p.Window = window

	p.Window.SetKeyCallback(p.keyCallback)
	p.Window.SetMouseButtonCallback(p.mouseButtonCallback)
	p.Window.SetCursorPosCallback(p.cursorPosCallback)
	p.Window.SetSizeCallback(p.sizeCallback)
	p.Window.SetCloseCallback(p.closeCallback)
	p.Window.Show()

	p.startTime = glfw.GetTime()
	return nil
}

func (p *Platform) Shutdown() error {
	if p.Window != nil {
		p.Window.Destroy()
		p.Window = nil
	}
	glfw.Terminate()
	return nil
}

// WaitEvents blocks until at least one event arrived and dispatches it.
func (p *Platform) WaitEvents() {
	glfw.WaitEvents()
}

// WaitEventsTimeout is WaitEvents that returns after timeout seconds at
// the latest, so work queued by other goroutines gets picked up.
func (p *Platform) WaitEventsTimeout(timeout float64) {
	glfw.WaitEventsTimeout(timeout)
}

// Wake unblocks a pending WaitEvents from another goroutine.
func (p *Platform) Wake() {
	glfw.PostEmptyEvent()
}

func (p *Platform) SwapBuffers() {
	p.Window.SwapBuffers()
}

func (p *Platform) ShouldClose() bool {
	return p.Window == nil || p.Window.ShouldClose()
}

func (p *Platform) SetShouldClose() {
	if p.Window != nil {
		p.Window.SetShouldClose(true)
	}
}

// WindowSize returns the size in screen coordinates, used for mouse input.
func (p *Platform) WindowSize() (int, int) {
	return p.Window.GetSize()
}

// FramebufferSize returns the drawable size in pixels.
func (p *Platform) FramebufferSize() (int, int) {
	return p.Window.GetFramebufferSize()
}

func (p *Platform) CursorPos() (float64, float64) {
	return p.Window.GetCursorPos()
}

// GetAbsoluteTime returns the seconds elapsed since Startup.
func (p *Platform) GetAbsoluteTime() float64 {
	return glfw.GetTime() - p.startTime
}

func (p *Platform) keyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if action == glfw.Repeat {
		return
	}
	code := TranslateKey(key)
	if code == core.KEY_UNKNOWN {
		core.LogDebug("unmapped key %d (scancode %d)", key, scancode)
		return
	}
	p.input.ProcessKey(code, action == glfw.Press)
}

func (p *Platform) mouseButtonCallback(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	b, ok := TranslateButton(button)
	if !ok {
		return
	}
	x, y := w.GetCursorPos()
	p.input.ProcessMouseMove(x, y)
	p.input.ProcessButton(b, action == glfw.Press)
}

func (p *Platform) cursorPosCallback(w *glfw.Window, xpos, ypos float64) {
	p.input.ProcessMouseMove(xpos, ypos)
}

func (p *Platform) sizeCallback(w *glfw.Window, width, height int) {
	// some window managers report negative sizes while dragging
	if width < 1 || height < 1 {
		return
	}
	fbw, fbh := w.GetFramebufferSize()
	p.events.Fire(core.EventContext{
		Type: core.EVENT_CODE_RESIZED,
		Data: &core.ResizeEvent{
			Width:             width,
			Height:            height,
			FramebufferWidth:  fbw,
			FramebufferHeight: fbh,
		},
	})
}

func (p *Platform) closeCallback(w *glfw.Window) {
	p.events.Fire(core.EventContext{Type: core.EVENT_CODE_APPLICATION_QUIT})
}

// TranslateKey maps a glfw key to the engine's key code. Printable glfw
// keys share their ASCII values with the engine codes.
func TranslateKey(key glfw.Key) core.KeyCode {
	switch {
	case key >= glfw.Key0 && key <= glfw.Key9:
		return core.KEY_0 + core.KeyCode(key-glfw.Key0)
	case key >= glfw.KeyA && key <= glfw.KeyZ:
		return core.KEY_A + core.KeyCode(key-glfw.KeyA)
	}
	switch key {
	case glfw.KeyEnter:
		return core.KEY_ENTER
	case glfw.KeyEscape:
		return core.KEY_ESCAPE
	case glfw.KeySpace:
		return core.KEY_SPACE
	case glfw.KeyLeft:
		return core.KEY_LEFT
	case glfw.KeyRight:
		return core.KEY_RIGHT
	case glfw.KeyUp:
		return core.KEY_UP
	case glfw.KeyDown:
		return core.KEY_DOWN
	case glfw.KeyLeftShift:
		return core.KEY_LSHIFT
	case glfw.KeyRightShift:
		return core.KEY_RSHIFT
	}
	return core.KEY_UNKNOWN
}

func TranslateButton(button glfw.MouseButton) (core.Button, bool) {
	switch button {
	case glfw.MouseButtonLeft:
		return core.BUTTON_LEFT, true
	case glfw.MouseButtonRight:
		return core.BUTTON_RIGHT, true
	case glfw.MouseButtonMiddle:
		return core.BUTTON_MIDDLE, true
	}
	return 0, false
}

// String describes the current context, for the startup log.
func (p *Platform) String() string {
	if p.Window == nil {
		return "no window"
	}
	w, h := p.WindowSize()
	fbw, fbh := p.FramebufferSize()
	return fmt.Sprintf("window %dx%d, framebuffer %dx%d, glfw %s", w, h, fbw, fbh, glfw.GetVersionString())
}
