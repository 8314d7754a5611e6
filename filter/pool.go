package filter

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

// ErrPoolStopped is returned when work is submitted to a stopped pool
var ErrPoolStopped = errors.New("worker pool is stopped")

// workerPool implements WorkerPool with bounded concurrency
type workerPool struct {
	work     chan func()
	mu       sync.RWMutex
	stopOnce sync.Once
	stopped  atomic.Bool
	wg       sync.WaitGroup
}

// NewWorkerPool creates a new worker pool with the specified number of workers
func NewWorkerPool(workers int) WorkerPool {
	if workers <= 0 {
		workers = 1
	}

	p := &workerPool{work: make(chan func(), workers*2)}
	for range workers {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

func (p *workerPool) worker() {
	defer p.wg.Done()

	for work := range p.work {
		if work != nil {
			work()
		}
	}
}

// Submit queues work, blocking while the queue is full until ctx is done
func (p *workerPool) Submit(ctx context.Context, work func()) error {
	// the read lock keeps Stop from closing the channel mid-send
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.stopped.Load() {
		return ErrPoolStopped
	}
	select {
	case p.work <- work:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop closes the queue and waits for running work to finish
func (p *workerPool) Stop(ctx context.Context) error {
	var err error

	p.stopOnce.Do(func() {
		p.mu.Lock()
		p.stopped.Store(true)
		close(p.work)
		p.mu.Unlock()

		done := make(chan struct{})
		go func() {
			p.wg.Wait()
			close(done)
		}()

		select {
		case <-done:
		case <-ctx.Done():
			err = ctx.Err()
		}
	})

	return err
}
