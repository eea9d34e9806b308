package core

import "sync"

// System event codes. The viewer only needs the input and window codes.
type EventCode int

const (
	// Shuts the application down on the next frame.
	EVENT_CODE_APPLICATION_QUIT EventCode = 0x01

	// Keyboard key pressed.
	/* Context usage:
	 * key := ctx.Data.(*KeyEvent)
	 */
	EVENT_CODE_KEY_PRESSED EventCode = 0x02

	// Keyboard key released.
	/* Context usage:
	 * key := ctx.Data.(*KeyEvent)
	 */
	EVENT_CODE_KEY_RELEASED EventCode = 0x03

	// Mouse button pressed.
	/* Context usage:
	 * button := ctx.Data.(*MouseEvent) (Button, PosX, PosY)
	 */
	EVENT_CODE_BUTTON_PRESSED EventCode = 0x04

	// Mouse button released.
	/* Context usage:
	 * button := ctx.Data.(*MouseEvent) (Button, PosX, PosY)
	 */
	EVENT_CODE_BUTTON_RELEASED EventCode = 0x05

	// Mouse moved.
	/* Context usage:
	 * move := ctx.Data.(*MouseEvent) (PosX, PosY)
	 */
	EVENT_CODE_MOUSE_MOVED EventCode = 0x06

	// Resized/resolution changed from the OS.
	/* Context usage:
	 * size := ctx.Data.(*ResizeEvent)
	 */
	EVENT_CODE_RESIZED EventCode = 0x07

	// A watched asset changed on disk.
	/* Context usage:
	 * path := ctx.Data.(*AssetEvent).Path
	 */
	EVENT_CODE_ASSET_CHANGED EventCode = 0x08

	MAX_EVENT_CODE EventCode = 0xFF
)

type KeyEvent struct {
	KeyCode KeyCode
	Shift   bool
}

type MouseEvent struct {
	Button Button
	PosX   float64
	PosY   float64
	Shift  bool
}

// ResizeEvent carries the window size in screen coordinates and the
// framebuffer size in pixels; they differ on high-DPI displays.
type ResizeEvent struct {
	Width             int
	Height            int
	FramebufferWidth  int
	FramebufferHeight int
}

type AssetEvent struct {
	Path string
}

type EventContext struct {
	Type EventCode
	Data interface{}
}

// Should return true if handled.
type FnOnEvent func(ctx EventContext, listener interface{}) bool

type registeredEvent struct {
	listener interface{}
	callback FnOnEvent
}

// EventSystem dispatches events to registered listeners in registration
// order. It is owned by the main goroutine; the mutex only guards
// registration from other goroutines.
type EventSystem struct {
	mu         sync.RWMutex
	registered map[EventCode][]*registeredEvent
}

func NewEventSystem() *EventSystem {
	return &EventSystem{
		registered: make(map[EventCode][]*registeredEvent),
	}
}

/**
 * Register to listen for when events are sent with the provided code. A listener can be
 * registered only once per code; a duplicate returns false.
 * @param code The event code to listen for.
 * @param listener A listener instance. Can be nil.
 * @param onEvent The callback invoked when the event code is fired.
 * @returns true if the event is successfully registered; otherwise false.
 */
func (es *EventSystem) Register(code EventCode, listener interface{}, onEvent FnOnEvent) bool {
	if code <= 0 || code >= MAX_EVENT_CODE || onEvent == nil {
		return false
	}
	es.mu.Lock()
	defer es.mu.Unlock()
	for _, e := range es.registered[code] {
		if e.listener == listener {
			LogWarn("listener already registered for event code %d", code)
			return false
		}
	}
	es.registered[code] = append(es.registered[code], &registeredEvent{
		listener: listener,
		callback: onEvent,
	})
	return true
}

/**
 * Unregister the listener from the provided code.
 * @returns true if a registration was removed; otherwise false.
 */
func (es *EventSystem) Unregister(code EventCode, listener interface{}) bool {
	es.mu.Lock()
	defer es.mu.Unlock()
	events := es.registered[code]
	for i, e := range events {
		if e.listener == listener {
			es.registered[code] = append(events[:i], events[i+1:]...)
			return true
		}
	}
	return false
}

/**
 * Fires an event to listeners of its code. If a handler returns true the event is
 * considered handled and is not passed on to any more listeners.
 * @returns true if handled, otherwise false.
 */
func (es *EventSystem) Fire(ctx EventContext) bool {
	es.mu.RLock()
	events := append([]*registeredEvent(nil), es.registered[ctx.Type]...)
	es.mu.RUnlock()
	for _, e := range events {
		if e.callback(ctx, e.listener) {
			return true
		}
	}
	return false
}

// Shutdown drops every registration.
func (es *EventSystem) Shutdown() {
	es.mu.Lock()
	es.registered = make(map[EventCode][]*registeredEvent)
	es.mu.Unlock()
}
