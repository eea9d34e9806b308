package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	var m Metrics
	reported := false
	for i := 0; i < 61; i++ {
		if m.Update(20 * time.Millisecond) {
			reported = true
		}
	}
	assert.True(t, reported)
	assert.Equal(t, 51.0, m.FPS())
	assert.InDelta(t, 20.0, m.FrameTime(), 1e-9)
}

func TestClock(t *testing.T) {
	c := NewClock()
	c.Update()
	assert.Zero(t, c.Elapsed())

	c.Start()
	time.Sleep(time.Millisecond)
	c.Update()
	assert.Greater(t, c.Elapsed(), time.Duration(0))

	c.Stop()
	elapsed := c.Elapsed()
	c.Update()
	assert.Equal(t, elapsed, c.Elapsed())
}
