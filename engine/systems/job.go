package systems

import (
	"fmt"
	"sync"

	"github.com/spaghettifunk/shady/engine/core"
)

/**
 * @brief A unit of work for the job system. Run executes on a worker
 * goroutine, and so do OnComplete and OnFailure: anything they share with
 * the main goroutine must be read only after Wait returns.
 */
type JobTask struct {
	Name       string
	Run        func() (interface{}, error)
	OnComplete func(result interface{})
	OnFailure  func(err error)
}

type JobSystem struct {
	numWorkers int
	jobQueue   chan JobTask
	wg         sync.WaitGroup
	pending    sync.WaitGroup
	closed     bool
}

var ErrNoWorkers = fmt.Errorf("attempting to create worker pool with less than 1 worker")
var ErrNegativeChannelSize = fmt.Errorf("attempting to create worker pool with a negative channel size")

func NewJobSystem(numWorkers int, channelSize int) (*JobSystem, error) {
	if numWorkers <= 0 {
		return nil, ErrNoWorkers
	}
	if channelSize < 0 {
		return nil, ErrNegativeChannelSize
	}

	js := &JobSystem{
		numWorkers: numWorkers,
		jobQueue:   make(chan JobTask, channelSize),
	}
	js.start()
	return js, nil
}

func (js *JobSystem) start() {
	for i := 0; i < js.numWorkers; i++ {
		js.wg.Add(1)
		go func() {
			defer js.wg.Done()
			for job := range js.jobQueue {
				js.run(job)
			}
		}()
	}
}

func (js *JobSystem) run(job JobTask) {
	defer js.pending.Done()
	result, err := job.Run()
	if err != nil {
		core.LogDebug("job '%s' failed: %v", job.Name, err)
		if job.OnFailure != nil {
			job.OnFailure(err)
		}
		return
	}
	if job.OnComplete != nil {
		job.OnComplete(result)
	}
}

/**
 * @brief Submits the provided job to be queued for execution. Blocks
 * while the queue is full.
 */
func (js *JobSystem) Submit(jt JobTask) error {
	if js.closed {
		return fmt.Errorf("job '%s' submitted after shutdown", jt.Name)
	}
	if jt.Run == nil {
		return fmt.Errorf("job '%s' has nothing to run", jt.Name)
	}
	js.pending.Add(1)
	js.jobQueue <- jt
	return nil
}

// Wait blocks until every submitted job has finished.
func (js *JobSystem) Wait() {
	js.pending.Wait()
}

/**
 * @brief Shuts the job system down once the queued jobs are done.
 */
func (js *JobSystem) Shutdown() error {
	if js.closed {
		return nil
	}
	js.closed = true
	close(js.jobQueue)
	js.wg.Wait()
	return nil
}
