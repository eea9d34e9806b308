package platform

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/spaghettifunk/shady/engine/core"
	"github.com/stretchr/testify/assert"
)

func TestTranslateKey(t *testing.T) {
	cases := map[glfw.Key]core.KeyCode{
		glfw.Key0:          core.KEY_0,
		glfw.Key7:          core.KEY_7,
		glfw.KeyA:          core.KEY_A,
		glfw.KeyQ:          core.KEY_Q,
		glfw.KeyZ:          core.KEY_Z,
		glfw.KeyEscape:     core.KEY_ESCAPE,
		glfw.KeyUp:         core.KEY_UP,
		glfw.KeyLeftShift:  core.KEY_LSHIFT,
		glfw.KeyRightShift: core.KEY_RSHIFT,
		glfw.KeyF1:         core.KEY_UNKNOWN,
		glfw.KeyUnknown:    core.KEY_UNKNOWN,
	}
	for key, expected := range cases {
		assert.Equal(t, expected, TranslateKey(key), "glfw key %d", key)
	}
}

func TestTranslateButton(t *testing.T) {
	b, ok := TranslateButton(glfw.MouseButtonLeft)
	assert.True(t, ok)
	assert.Equal(t, core.BUTTON_LEFT, b)

	b, ok = TranslateButton(glfw.MouseButtonMiddle)
	assert.True(t, ok)
	assert.Equal(t, core.BUTTON_MIDDLE, b)

	_, ok = TranslateButton(glfw.MouseButton4)
	assert.False(t, ok)
}

func TestPlatformWithoutWindow(t *testing.T) {
	p := New(core.NewInputState(nil), core.NewEventSystem())
	assert.True(t, p.ShouldClose())
	assert.Equal(t, "no window", p.String())
	p.SetShouldClose()
}
