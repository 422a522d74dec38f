// Package tasks provides the background-execution facility for
// fire-and-forget work, primarily cache writes decoupled from the response
// lifecycle. Task failures are swallowed and logged, never surfaced to the
// submitting request.
package tasks

import (
	"context"
	"sync"

	"github.com/okian/broodsheet/pkg/logger"
	"github.com/okian/broodsheet/pkg/metrics"
)

// Default runner configuration constants.
const (
	defaultQueueSize = 1024
	defaultWorkers   = 4
)

// Task is a unit of background work. The context passed in is the runner's,
// not the submitting request's, so a client disconnect cannot abort it.
type Task func(ctx context.Context) error

// Runner drains a bounded queue of tasks with a small worker pool.
type Runner struct {
	queueSize int
	workers   int
	logger    logger.Logger

	mu      sync.Mutex
	queue   chan Task
	started bool
	closed  bool
	wg      sync.WaitGroup
}

// Option applies a configuration option to the Runner.
type Option func(*Runner)

// WithQueueSize bounds the pending-task queue.
func WithQueueSize(size int) Option {
	return func(r *Runner) {
		if size > 0 {
			r.queueSize = size
		}
	}
}

// WithWorkers sets the number of draining goroutines.
func WithWorkers(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithLogger sets a custom logger for the runner.
func WithLogger(l logger.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// New creates a Runner with configuration options.
func New(opts ...Option) *Runner {
	r := &Runner{
		queueSize: defaultQueueSize,
		workers:   defaultWorkers,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = logger.Get().Named("tasks")
	}
	r.queue = make(chan Task, r.queueSize)
	return r
}

// Start launches the worker goroutines. Idempotent.
func (r *Runner) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.started {
		return
	}
	r.started = true

	for i := 0; i < r.workers; i++ {
		r.wg.Add(1)
		go r.run(ctx)
	}
}

// run drains the queue until it is closed.
func (r *Runner) run(ctx context.Context) {
	defer r.wg.Done()
	for task := range r.queue {
		r.execute(ctx, task)
		metrics.UpdateTaskQueueDepth(len(r.queue))
	}
}

// execute runs one task, containing panics and logging failures.
func (r *Runner) execute(ctx context.Context, task Task) {
	defer func() {
		if rec := recover(); rec != nil {
			metrics.RecordTaskError()
			r.logger.Error(ctx, "background task panicked", logger.Any("panic", rec))
		}
	}()
	if err := task(ctx); err != nil {
		metrics.RecordTaskError()
		r.logger.Error(ctx, "background task failed", logger.Error(err))
	}
}

// Submit hands a task to the runner without blocking. Returns false when the
// queue is full or the runner is stopped; the task is dropped in that case.
func (r *Runner) Submit(task Task) bool {
	// The lock orders submissions against Stop's close of the queue.
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		metrics.RecordTaskDropped()
		return false
	}

	select {
	case r.queue <- task:
		metrics.UpdateTaskQueueDepth(len(r.queue))
		return true
	default:
		metrics.RecordTaskDropped()
		return false
	}
}

// Stop closes the queue and waits for in-flight tasks to finish.
func (r *Runner) Stop() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	close(r.queue)
	r.mu.Unlock()

	r.wg.Wait()
}
