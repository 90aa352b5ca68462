// Package workerpool runs tasks on a fixed number of goroutines.
//
// The gateway uses it to prefetch product details into the cache without
// opening one connection per product:
//
//	pool := workerpool.New(4)
//	for _, p := range products {
////	    _ = pool.SubmitCtx(ctx, func() { refresh(p.ID) })
//	}
//	pool.Shutdown() // waits for queued tasks
//
// Submit never blocks and returns ErrPoolFull under backpressure; SubmitWait
// and SubmitCtx block until a slot frees up.
package workerpool

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

// ErrPoolFull is returned by Submit when the task queue is at capacity.
var ErrPoolFull = errors.New("workerpool: pool is full")

// ErrPoolClosed is returned after Shutdown has been called.
var ErrPoolClosed = errors.New("workerpool: pool is closed")

// Pool is a bounded goroutine pool.
type Pool struct {
	tasks    chan func()
	wg       sync.WaitGroup
	once     sync.Once
	closeCh  chan struct{}
	panics   atomic.Int64
	finished atomic.Int64
}

// New starts size workers. The queue holds 2×size pending tasks.
func New(size int) *Pool {
	if size <= 0 {
		size = 1
	}

	p := &Pool{
		tasks:   make(chan func(), size*2),
		closeCh: make(chan struct{}),
	}

	for i := 0; i < size; i++ {
		p.wg.Add(1)
		go p.worker()
	}

	return p
}

// Submit enqueues task without blocking.
func (p *Pool) Submit(task func()) error {
	select {
	case <-p.closeCh:
		return ErrPoolClosed
	default:
	}

	select {
	case p.tasks <- task:
		return nil
	default:
		return ErrPoolFull
	}
}

// SubmitWait blocks until the task is queued or the pool is closed.
func (p *Pool) SubmitWait(task func()) error {
	return p.SubmitCtx(context.Background(), task)
}

// SubmitCtx blocks until the task is queued, the pool is closed or ctx is
// done.
func (p *Pool) SubmitCtx(ctx context.Context, task func()) error {
	select {
	case <-p.closeCh:
		return ErrPoolClosed
	default:
	}

	select {
	case <-p.closeCh:
		return ErrPoolClosed
	case <-ctx.Done():
		return ctx.Err()
	case p.tasks <- task:
		return nil
	}
}

// Shutdown stops accepting tasks and waits for queued ones to finish.
// Safe to call more than once. Must not race with Submit calls.
func (p *Pool) Shutdown() {
	p.once.Do(func() {
		close(p.closeCh)
		close(p.tasks)
		p.wg.Wait()
	})
}

// Completed returns how many tasks have finished, including panicked ones.
func (p *Pool) Completed() int64 { return p.finished.Load() }

// Panics returns how many tasks panicked.
func (p *Pool) Panics() int64 { return p.panics.Load() }

func (p *Pool) worker() {
	defer p.wg.Done()
	for task := range p.tasks {
		p.run(task)
	}
}

// run executes task and keeps the worker alive if it panics.
func (p *Pool) run(task func()) {
	defer func() {
		if recover() != nil {
			p.panics.Add(1)
		}
		p.finished.Add(1)
	}()
	task()
}
