package core

type Button uint16

const (
	BUTTON_LEFT Button = iota
	BUTTON_RIGHT
	BUTTON_MIDDLE
	BUTTON_MAX_BUTTONS
)

// Key code definitions. Values follow the virtual-key table so that
// letters and digits match their ASCII codes.
type KeyCode uint16

const (
	KEY_UNKNOWN KeyCode = 0x00
	KEY_ENTER   KeyCode = 0x0D
	KEY_ESCAPE  KeyCode = 0x1B
	KEY_SPACE   KeyCode = 0x20
	KEY_LEFT    KeyCode = 0x25
	KEY_UP      KeyCode = 0x26
	KEY_RIGHT   KeyCode = 0x27
	KEY_DOWN    KeyCode = 0x28
	KEY_0       KeyCode = 0x30
	KEY_1       KeyCode = 0x31
	KEY_2       KeyCode = 0x32
	KEY_3       KeyCode = 0x33
	KEY_4       KeyCode = 0x34
	KEY_5       KeyCode = 0x35
	KEY_6       KeyCode = 0x36
	KEY_7       KeyCode = 0x37
	KEY_8       KeyCode = 0x38
	KEY_9       KeyCode = 0x39
	KEY_A       KeyCode = 0x41
	KEY_B       KeyCode = 0x42
	KEY_C       KeyCode = 0x43
	KEY_D       KeyCode = 0x44
	KEY_E       KeyCode = 0x45
	KEY_F       KeyCode = 0x46
	KEY_G       KeyCode = 0x47
	KEY_H       KeyCode = 0x48
	KEY_I       KeyCode = 0x49
	KEY_J       KeyCode = 0x4A
	KEY_K       KeyCode = 0x4B
	KEY_L       KeyCode = 0x4C
	KEY_M       KeyCode = 0x4D
	KEY_N       KeyCode = 0x4E
	KEY_O       KeyCode = 0x4F
	KEY_P       KeyCode = 0x50
	KEY_Q       KeyCode = 0x51
	KEY_R       KeyCode = 0x52
	KEY_S       KeyCode = 0x53
	KEY_T       KeyCode = 0x54
	KEY_U       KeyCode = 0x55
	KEY_V       KeyCode = 0x56
	KEY_W       KeyCode = 0x57
	KEY_X       KeyCode = 0x58
	KEY_Y       KeyCode = 0x59
	KEY_Z       KeyCode = 0x5A
	KEY_LSHIFT  KeyCode = 0xA0
	KEY_RSHIFT  KeyCode = 0xA1

	KEYS_MAX_KEYS KeyCode = 0x100
)

// IsDigit reports whether key is one of KEY_0..KEY_9 and returns its value.
func (k KeyCode) IsDigit() (int, bool) {
	if k >= KEY_0 && k <= KEY_9 {
		return int(k - KEY_0), true
	}
	return 0, false
}

// Mouse state structure
type MouseState struct {
	X       float64
	Y       float64
	Buttons [BUTTON_MAX_BUTTONS]bool
}

// Keyboard state structure
type KeyboardState struct {
	Keys [KEYS_MAX_KEYS]bool
}

// InputState holds current and previous keyboard and mouse state and
// turns state changes into events.
type InputState struct {
	KeyboardCurrent  KeyboardState
	KeyboardPrevious KeyboardState
	MouseCurrent     MouseState
	MousePrevious    MouseState

	events *EventSystem
}

func NewInputState(events *EventSystem) *InputState {
	return &InputState{events: events}
}

// Update rolls the current state into the previous one. Called once per frame.
func (is *InputState) Update() {
	is.KeyboardPrevious = is.KeyboardCurrent
	is.MousePrevious = is.MouseCurrent
}

// keyboard input
func (is *InputState) IsKeyDown(key KeyCode) bool {
	return key < KEYS_MAX_KEYS && is.KeyboardCurrent.Keys[key]
}

func (is *InputState) IsKeyUp(key KeyCode) bool {
	return !is.IsKeyDown(key)
}

func (is *InputState) WasKeyDown(key KeyCode) bool {
	return key < KEYS_MAX_KEYS && is.KeyboardPrevious.Keys[key]
}

// ShiftDown reports whether either shift key is held.
func (is *InputState) ShiftDown() bool {
	return is.IsKeyDown(KEY_LSHIFT) || is.IsKeyDown(KEY_RSHIFT)
}

func (is *InputState) ProcessKey(key KeyCode, pressed bool) {
	if key >= KEYS_MAX_KEYS {
		return
	}
	// Only handle this if the state actually changed.
	if is.KeyboardCurrent.Keys[key] == pressed {
		return
	}
	is.KeyboardCurrent.Keys[key] = pressed

	code := EVENT_CODE_KEY_RELEASED
	if pressed {
		code = EVENT_CODE_KEY_PRESSED
	}
	is.fire(EventContext{
		Type: code,
		Data: &KeyEvent{KeyCode: key, Shift: is.ShiftDown()},
	})
}

// mouse input
func (is *InputState) IsButtonDown(button Button) bool {
	return button < BUTTON_MAX_BUTTONS && is.MouseCurrent.Buttons[button]
}

func (is *InputState) MousePosition() (float64, float64) {
	return is.MouseCurrent.X, is.MouseCurrent.Y
}

func (is *InputState) PreviousMousePosition() (float64, float64) {
	return is.MousePrevious.X, is.MousePrevious.Y
}

func (is *InputState) ProcessButton(button Button, pressed bool) {
	if button >= BUTTON_MAX_BUTTONS || is.MouseCurrent.Buttons[button] == pressed {
		return
	}
	is.MouseCurrent.Buttons[button] = pressed

	code := EVENT_CODE_BUTTON_RELEASED
	if pressed {
		code = EVENT_CODE_BUTTON_PRESSED
	}
	is.fire(EventContext{
		Type: code,
		Data: &MouseEvent{
			Button: button,
			PosX:   is.MouseCurrent.X,
			PosY:   is.MouseCurrent.Y,
			Shift:  is.ShiftDown(),
		},
	})
}

func (is *InputState) ProcessMouseMove(x, y float64) {
	if is.MouseCurrent.X == x && is.MouseCurrent.Y == y {
		return
	}
	is.MouseCurrent.X = x
	is.MouseCurrent.Y = y
	is.fire(EventContext{
		Type: EVENT_CODE_MOUSE_MOVED,
		Data: &MouseEvent{PosX: x, PosY: y, Shift: is.ShiftDown()},
	})
}

func (is *InputState) fire(ctx EventContext) {
	if is.events != nil {
		is.events.Fire(ctx)
	}
}
