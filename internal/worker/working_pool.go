package worker

import (
	"context"
	"log/slog"
	"sync"
)

// WorkingPool runs submitted jobs on a fixed set of worker goroutines.
type WorkingPool struct {
	NumWorkers int
	jobChan    chan Job
	mu         sync.RWMutex
	closed     bool
}

func NewWorkingPool(numWorkers, queueSize int) *WorkingPool {
	return &WorkingPool{
		NumWorkers: numWorkers,
		jobChan:    make(chan Job, queueSize),
	}
}

// SubmitJob enqueues a job. Jobs submitted after shutdown, or while the
// queue is full, are dropped; scheduled sweeps rerun on the next tick.
func (p *WorkingPool) SubmitJob(job Job) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		slog.Warn("job submitted after pool shutdown, dropping")
		return
	}
	select {
	case p.jobChan <- job:
	default:
		slog.Warn("job queue full, dropping job")
	}
}

// Start launches the workers and blocks until ctx is cancelled and every
// worker has drained out.
func (p *WorkingPool) Start(ctx context.Context, managerWg *sync.WaitGroup) {
	defer managerWg.Done()

	var workerWg sync.WaitGroup
	for i := range p.NumWorkers {
		workerWg.Add(1)
		go p.worker(ctx, &workerWg, i+1)
	}

	<-ctx.Done()

	slog.Info("worker pool shutdown signaled, closing job channel")
	p.mu.Lock()
	p.closed = true
	close(p.jobChan)
	p.mu.Unlock()
	workerWg.Wait()
	slog.Info("all workers stopped")
}

func (p *WorkingPool) worker(ctx context.Context, wg *sync.WaitGroup, id int) {
	defer wg.Done()

	for {
		select {
		case job, ok := <-p.jobChan:
			if !ok {
				return
			}
			p.safeExecution(ctx, job, id)
		case <-ctx.Done():
			return
		}
	}
}

func (p *WorkingPool) safeExecution(ctx context.Context, job Job, workerID int) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("panic recovered in background job", "worker", workerID, "panic", r)
		}
	}()

	if err := job(ctx); err != nil {
		slog.Error("background job failed", "worker", workerID, "error", err)
	}
}
