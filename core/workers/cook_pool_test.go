package workers

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestPool_RunsSubmittedJobs(t *testing.T) {
	pool := NewPool(WorkerConfig{MaxWorkers: 3, QueueSize: 10})
	if err := pool.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer pool.Stop()

	var count int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		err := pool.Submit(&Job{Run: func(ctx context.Context) {
			defer wg.Done()
			atomic.AddInt32(&count, 1)
		}})
		if err != nil {
			t.Fatalf("Submit() error = %v", err)
		}
	}
	wg.Wait()

	if got := atomic.LoadInt32(&count); got != 20 {
		t.Errorf("jobs run = %d, want 20", got)
	}
}

func TestPool_SubmitBeforeStart(t *testing.T) {
	pool := NewPool(DefaultWorkerConfig())

	err := pool.Submit(&Job{Run: func(context.Context) {}})
	if err != ErrWorkerNotRunning {
		t.Errorf("Submit() error = %v, want %v", err, ErrWorkerNotRunning)
	}
}

func TestPool_InvalidJob(t *testing.T) {
	pool := NewPool(DefaultWorkerConfig())
	if err := pool.Submit(nil); err != ErrInvalidJob {
		t.Errorf("Submit(nil) error = %v, want %v", err, ErrInvalidJob)
	}
	if err := pool.Submit(&Job{}); err != ErrInvalidJob {
		t.Errorf("Submit(empty) error = %v, want %v", err, ErrInvalidJob)
	}
}

func TestPool_QueueFull(t *testing.T) {
	pool := NewPool(WorkerConfig{MaxWorkers: 1, QueueSize: 1, SubmitTimeout: 20 * time.Millisecond})
	if err := pool.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	release := make(chan struct{})
	started := make(chan struct{})
	block := func(context.Context) {
		select {
		case started <- struct{}{}:
		default:
		}
		<-release
	}

	if err := pool.Submit(&Job{Run: block}); err != nil {
		t.Fatalf("first Submit() error = %v", err)
	}
	<-started
	if err := pool.Submit(&Job{Run: block}); err != nil {
		t.Fatalf("second Submit() error = %v", err)
	}
	if err := pool.Submit(&Job{Run: block}); err != ErrQueueFull {
		t.Errorf("third Submit() error = %v, want %v", err, ErrQueueFull)
	}

	close(release)
	pool.Stop()
}

func TestPool_SkipsCancelledJobs(t *testing.T) {
	pool := NewPool(WorkerConfig{MaxWorkers: 1, QueueSize: 5})
	if err := pool.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer pool.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var ran int32
	if err := pool.Submit(&Job{Context: ctx, Run: func(context.Context) { atomic.StoreInt32(&ran, 1) }}); err != nil && err != context.Canceled {
		t.Fatalf("Submit() error = %v", err)
	}

	done := make(chan struct{})
	if err := pool.Submit(&Job{Run: func(context.Context) { close(done) }}); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	<-done

	if atomic.LoadInt32(&ran) != 0 {
		t.Error("cancelled job should not run")
	}
}

func TestPool_StopIsIdempotent(t *testing.T) {
	pool := NewPool(DefaultWorkerConfig())
	if err := pool.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if !pool.Running() {
		t.Error("Running() = false after Start")
	}
	if err := pool.Stop(); err != nil {
		t.Errorf("Stop() error = %v", err)
	}
	if err := pool.Stop(); err != nil {
		t.Errorf("second Stop() error = %v", err)
	}
	if pool.Running() {
		t.Error("Running() = true after Stop")
	}
	if err := pool.Start(); err != ErrPoolStopped {
		t.Errorf("restart error = %v, want %v", err, ErrPoolStopped)
	}
}
