package systems

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJobSystemInvalid(t *testing.T) {
	_, err := NewJobSystem(0, 1)
	assert.ErrorIs(t, err, ErrNoWorkers)
	_, err = NewJobSystem(2, -1)
	assert.ErrorIs(t, err, ErrNegativeChannelSize)
}

func TestJobSystemRunsEveryJob(t *testing.T) {
	js, err := NewJobSystem(3, 2)
	require.NoError(t, err)
	defer js.Shutdown()

	var mu sync.Mutex
	results := map[int]bool{}
	for i := 0; i < 10; i++ {
		i := i
		require.NoError(t, js.Submit(JobTask{
			Name: "square",
			Run:  func() (interface{}, error) { return i * i, nil },
			OnComplete: func(result interface{}) {
				mu.Lock()
				results[result.(int)] = true
				mu.Unlock()
			},
		}))
	}
	js.Wait()

	assert.Len(t, results, 10)
	assert.True(t, results[81])
}

func TestJobSystemFailure(t *testing.T) {
	js, err := NewJobSystem(1, 0)
	require.NoError(t, err)
	defer js.Shutdown()

	boom := errors.New("boom")
	var failed atomic.Bool
	var completed atomic.Bool
	require.NoError(t, js.Submit(JobTask{
		Name:       "fail",
		Run:        func() (interface{}, error) { return nil, boom },
		OnComplete: func(interface{}) { completed.Store(true) },
		OnFailure: func(err error) {
			failed.Store(errors.Is(err, boom))
		},
	}))
	js.Wait()

	assert.True(t, failed.Load())
	assert.False(t, completed.Load())
}

func TestJobSystemSubmitRejected(t *testing.T) {
	js, err := NewJobSystem(1, 1)
	require.NoError(t, err)

	assert.Error(t, js.Submit(JobTask{Name: "empty"}))

	require.NoError(t, js.Shutdown())
	require.NoError(t, js.Shutdown())
	assert.Error(t, js.Submit(JobTask{Name: "late", Run: func() (interface{}, error) { return nil, nil }}))
}
