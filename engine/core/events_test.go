package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type listener struct {
	name  string
	calls int
}

func TestEventRegisterAndFire(t *testing.T) {
	es := NewEventSystem()
	a := &listener{name: "a"}
	b := &listener{name: "b"}
	count := func(ctx EventContext, l interface{}) bool {
		l.(*listener).calls++
		return false
	}

	require.True(t, es.Register(EVENT_CODE_RESIZED, a, count))
	require.True(t, es.Register(EVENT_CODE_RESIZED, b, count))
	assert.False(t, es.Register(EVENT_CODE_RESIZED, a, count), "duplicate listener")

	assert.False(t, es.Fire(EventContext{Type: EVENT_CODE_RESIZED}))
	assert.Equal(t, 1, a.calls)
	assert.Equal(t, 1, b.calls)

	// nobody listens for quit
	assert.False(t, es.Fire(EventContext{Type: EVENT_CODE_APPLICATION_QUIT}))
}

func TestEventRegisterRejectsInvalid(t *testing.T) {
	es := NewEventSystem()
	noop := func(EventContext, interface{}) bool { return false }
	assert.False(t, es.Register(0, nil, noop))
	assert.False(t, es.Register(MAX_EVENT_CODE, nil, noop))
	assert.False(t, es.Register(EVENT_CODE_KEY_PRESSED, nil, nil))
}

func TestEventHandledStopsPropagation(t *testing.T) {
	es := NewEventSystem()
	first := &listener{}
	second := &listener{}
	es.Register(EVENT_CODE_KEY_PRESSED, first, func(ctx EventContext, l interface{}) bool {
		l.(*listener).calls++
		return true
	})
	es.Register(EVENT_CODE_KEY_PRESSED, second, func(ctx EventContext, l interface{}) bool {
		l.(*listener).calls++
		return true
	})

	assert.True(t, es.Fire(EventContext{Type: EVENT_CODE_KEY_PRESSED}))
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 0, second.calls)

	require.True(t, es.Unregister(EVENT_CODE_KEY_PRESSED, first))
	assert.False(t, es.Unregister(EVENT_CODE_KEY_PRESSED, first))
	assert.True(t, es.Fire(EventContext{Type: EVENT_CODE_KEY_PRESSED}))
	assert.Equal(t, 1, second.calls)
}

func TestEventShutdown(t *testing.T) {
	es := NewEventSystem()
	l := &listener{}
	es.Register(EVENT_CODE_MOUSE_MOVED, l, func(ctx EventContext, l interface{}) bool {
		l.(*listener).calls++
		return true
	})
	es.Shutdown()
	assert.False(t, es.Fire(EventContext{Type: EVENT_CODE_MOUSE_MOVED}))
	assert.Equal(t, 0, l.calls)
}
