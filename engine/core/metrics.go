package core

import "time"

const AVG_COUNT = 30

// Metrics keeps a rolling frame time average and a frames-per-second count.
type Metrics struct {
	frameAVGCounter    int
	msTimes            [AVG_COUNT]float64
	msAvg              float64
	frames             int
	accumulatedFrameMS float64
	fps                float64
}

// Update records one frame. It reports true whenever a new FPS value is available.
func (m *Metrics) Update(frameElapsed time.Duration) bool {
	frameMS := float64(frameElapsed) / float64(time.Millisecond)
	m.msTimes[m.frameAVGCounter] = frameMS
	if m.frameAVGCounter == AVG_COUNT-1 {
		m.msAvg = 0
		for _, t := range m.msTimes {
			m.msAvg += t
		}
		m.msAvg /= AVG_COUNT
	}
	m.frameAVGCounter = (m.frameAVGCounter + 1) % AVG_COUNT

	m.frames++
	m.accumulatedFrameMS += frameMS
	if m.accumulatedFrameMS > 1000 {
		m.fps = float64(m.frames)
		m.accumulatedFrameMS -= 1000
		m.frames = 0
		return true
	}
	return false
}

func (m *Metrics) FPS() float64 {
	return m.fps
}

func (m *Metrics) FrameTime() float64 {
	return m.msAvg
}
