package removal

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"iconforge/logging"
)

// DefaultWorkers is the fixed width of the removal pool. Inference is
// memory-bound, so the pool stays narrow regardless of GOMAXPROCS.
const DefaultWorkers = 2

// RemoveFunc executes a single removal request. It matches
// (*Remover).Remove and exists so tests can substitute the work.
type RemoveFunc func(ctx context.Context, req Request) (Result, error)

type poolJob struct {
	ctx    context.Context
	req    Request
	result chan poolResult
}

type poolResult struct {
	res Result
	err error
}

// Pool serializes removal work through a fixed number of workers.
// Submit enforces the request timeout at the submission site, covering
// both queue wait and execution. A submission that times out is
// abandoned: the worker finishes (or fails) on its own and its result
// is discarded.
type Pool struct {
	jobs    chan poolJob
	remove  RemoveFunc
	logger  *logging.Logger
	wg      sync.WaitGroup
	closeMu sync.RWMutex
	closed  bool
}

// NewPool starts workers goroutines executing remove. workers < 1
// selects DefaultWorkers.
func NewPool(workers int, remove RemoveFunc, logger *logging.Logger) *Pool {
	if workers < 1 {
		workers = DefaultWorkers
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	p := &Pool{
		jobs:   make(chan poolJob),
		remove: remove,
		logger: logger.Named("pool"),
	}
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker()
	}
	p.logger.Info("removal pool started", zap.Int("workers", workers))
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for job := range p.jobs {
		res, err := p.remove(job.ctx, job.req)
		// result is buffered and written exactly once, so this never
		// blocks even when the submitter has already timed out.
		job.result <- poolResult{res: res, err: err}
	}
}

// Submit queues req and waits for its result. The deadline is
// req.Timeout (DefaultTimeout when zero) measured from the call,
// so time spent waiting for a free worker counts against it.
func (p *Pool) Submit(ctx context.Context, req Request) (Result, error) {
	timeout := req.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	// Buffered so a worker can always hand off even after abandonment.
	job := poolJob{ctx: ctx, req: req, result: make(chan poolResult, 1)}

	// The read lock spans the enqueue so Close cannot close the jobs
	// channel while a send is in flight.
	p.closeMu.RLock()
	if p.closed {
		p.closeMu.RUnlock()
		return Result{}, ErrPoolClosed
	}
	select {
	case p.jobs <- job:
		p.closeMu.RUnlock()
	case <-timer.C:
		p.closeMu.RUnlock()
		return Result{}, ErrTimeout
	case <-ctx.Done():
		p.closeMu.RUnlock()
		return Result{}, ctx.Err()
	}

	select {
	case r := <-job.result:
		return r.res, r.err
	case <-timer.C:
		p.logger.Warn("removal timed out", zap.String("source", req.SourcePath))
		return Result{}, ErrTimeout
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

// Close stops accepting work and waits for in-flight jobs to finish.
// Close is idempotent.
func (p *Pool) Close() {
	p.closeMu.Lock()
	if p.closed {
		p.closeMu.Unlock()
		return
	}
	p.closed = true
	close(p.jobs)
	p.closeMu.Unlock()

	p.wg.Wait()
	p.logger.Info("removal pool stopped")
}
