// Package schedule runs named background tasks at fixed intervals.
//
// Usage:
//
//	s := schedule.New()
//	s.Every(time.Minute).Name("cache.warm").WithoutOverlapping().Run(warm)
//	s.Every(time.Minute).Name("ratelimit.sweep").Run(sweep)
//	s.Start(ctx) // returns immediately; tasks stop when ctx is done
//	defer s.Wait()
package schedule

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/coconina/storefront/pkg/logger"
)

// Task is the function signature for a scheduled task.
type Task func(ctx context.Context)

type entry struct {
	id        string
	interval  time.Duration
	immediate bool
	noOverlap bool
	task      Task
	running   atomic.Bool
	runs      atomic.Int64
}

// Scheduler owns a set of entries.
type Scheduler struct {
	mu      sync.Mutex
	entries []*entry
	wg      sync.WaitGroup
	started bool
}

// New returns an empty scheduler.
func New() *Scheduler {
	return &Scheduler{}
}

// Builder configures one entry before Run registers it.
type Builder struct {
	s *Scheduler
	e *entry
}

// Every starts a builder for a task repeated every d.
func (s *Scheduler) Every(d time.Duration) *Builder {
	return &Builder{s: s, e: &entry{interval: d}}
}

// Name gives the entry an identifier for logging.
func (b *Builder) Name(id string) *Builder {
	b.e.id = id
	return b
}

// WithoutOverlapping skips a tick while the previous run is still going.
func (b *Builder) WithoutOverlapping() *Builder {
	b.e.noOverlap = true
	return b
}

// Immediately also runs the task once right after Start.
func (b *Builder) Immediately() *Builder {
	b.e.immediate = true
	return b
}

// Run registers the task. Entries added after Start are ignored.
func (b *Builder) Run(fn Task) {
	b.e.task = fn

	b.s.mu.Lock()
	defer b.s.mu.Unlock()
	if b.e.id == "" {
		b.e.id = fmt.Sprintf("task-%d", len(b.s.entries)+1)
	}
	b.s.entries = append(b.s.entries, b.e)
}

// Start launches one goroutine per entry. Entries with a non-positive
// interval are skipped.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true

	for _, e := range s.entries {
		if e.interval <= 0 {
			logger.Warn("schedule: skipping entry without interval", "id", e.id)
			continue
		}
		s.wg.Add(1)
		go s.loop(ctx, e)
	}
	logger.Info("schedule: started", "entries", len(s.entries))
}

// Wait blocks until every loop has returned and in-flight runs finished.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}

// List describes the registered entries, e.g. for CLI display.
func (s *Scheduler) List() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, fmt.Sprintf("%s  [every %s]", e.id, e.interval))
	}
	return out
}

// Runs reports how many times the entry id has run.
func (s *Scheduler) Runs(id string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.entries {
		if e.id == id {
			return e.runs.Load()
		}
	}
	return 0
}

func (s *Scheduler) loop(ctx context.Context, e *entry) {
	defer s.wg.Done()

	var inflight sync.WaitGroup
	defer inflight.Wait()

	if e.immediate {
		s.dispatch(ctx, e, &inflight)
	}

	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.dispatch(ctx, e, &inflight)
		}
	}
}

func (s *Scheduler) dispatch(ctx context.Context, e *entry, inflight *sync.WaitGroup) {
	if e.noOverlap && !e.running.CompareAndSwap(false, true) {
		logger.Debug("schedule: previous run still going, skipping", "id", e.id)
		return
	}

	inflight.Add(1)
	go func() {
		defer inflight.Done()
		defer func() {
			if e.noOverlap {
				e.running.Store(false)
			}
			if r := recover(); r != nil {
				logger.Error("schedule: task panicked", "id", e.id, "error", fmt.Sprint(r))
			}
		}()
		e.runs.Add(1)
		e.task(ctx)
	}()
}
