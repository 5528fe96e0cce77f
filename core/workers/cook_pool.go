// ABOUTME: Bounded worker pool that runs background recipe cooks
// ABOUTME: Jobs queue up to QueueSize and are executed by MaxWorkers goroutines

package workers

import (
	"context"
	"sync"
	"time"
)

// Job is one unit of background work. Run receives the job's own context.
type Job struct {
	Context context.Context
	Run     func(ctx context.Context)
}

// Pool manages the background goroutines used for asynchronous cooking
type Pool struct {
	jobQueue      chan *Job
	maxWorkers    int
	queueSize     int
	submitTimeout time.Duration
	wg            sync.WaitGroup
	ctx           context.Context
	cancel        context.CancelFunc
	mu            sync.RWMutex
	running       bool
}

// WorkerConfig holds configuration for the pool
type WorkerConfig struct {
	MaxWorkers    int
	QueueSize     int
	SubmitTimeout time.Duration
}

// DefaultWorkerConfig returns the default worker configuration
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		MaxWorkers:    10,
		QueueSize:     100,
		SubmitTimeout: 5 * time.Second,
	}
}

// NewPool creates a pool. Zero values in config fall back to the defaults.
func NewPool(config WorkerConfig) *Pool {
	defaults := DefaultWorkerConfig()
	if config.MaxWorkers <= 0 {
		config.MaxWorkers = defaults.MaxWorkers
	}
	if config.QueueSize <= 0 {
		config.QueueSize = defaults.QueueSize
	}
	if config.SubmitTimeout <= 0 {
		config.SubmitTimeout = defaults.SubmitTimeout
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Pool{
		jobQueue:      make(chan *Job, config.QueueSize),
		maxWorkers:    config.MaxWorkers,
		queueSize:     config.QueueSize,
		submitTimeout: config.SubmitTimeout,
		ctx:           ctx,
		cancel:        cancel,
	}
}

// Start launches the workers. Starting a running pool is a no-op.
func (p *Pool) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		return nil
	}
	if p.ctx.Err() != nil {
		return ErrPoolStopped
	}

	for i := 0; i < p.maxWorkers; i++ {
		p.wg.Add(1)
		go p.run()
	}

	p.running = true
	return nil
}

// Stop signals the workers and waits for them to exit. Jobs still queued are
// abandoned. A stopped pool cannot be restarted.
func (p *Pool) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return nil
	}

	p.cancel()
	close(p.jobQueue)
	p.wg.Wait()

	p.running = false
	return nil
}

// Running reports whether the pool accepts jobs.
func (p *Pool) Running() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.running
}

// Submit queues a job, waiting up to the submit timeout for room.
func (p *Pool) Submit(job *Job) error {
	if job == nil || job.Run == nil {
		return ErrInvalidJob
	}
	if job.Context == nil {
		job.Context = context.Background()
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if !p.running {
		return ErrWorkerNotRunning
	}

	timer := time.NewTimer(p.submitTimeout)
	defer timer.Stop()

	select {
	case p.jobQueue <- job:
		return nil
	case <-job.Context.Done():
		return job.Context.Err()
	case <-timer.C:
		return ErrQueueFull
	}
}

// QueueDepth returns the number of jobs waiting for a worker.
func (p *Pool) QueueDepth() int {
	return len(p.jobQueue)
}

func (p *Pool) run() {
	defer p.wg.Done()

	for {
		select {
		case job, ok := <-p.jobQueue:
			if !ok {
				return
			}
			if job.Context.Err() != nil {
				continue
			}
			job.Run(job.Context)
		case <-p.ctx.Done():
			return
		}
	}
}

// Error definitions
var (
	ErrWorkerNotRunning = &WorkerError{Message: "worker pool is not running"}
	ErrQueueFull        = &WorkerError{Message: "job queue is full"}
	ErrPoolStopped      = &WorkerError{Message: "worker pool has been stopped"}
	ErrInvalidJob       = &WorkerError{Message: "job has nothing to run"}
)

// WorkerError represents a worker-specific error
type WorkerError struct {
	Message string
}

func (e *WorkerError) Error() string {
	return e.Message
}
