package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// JobScheduler submits its registered jobs to the pool on a fixed interval.
type JobScheduler struct {
	Name   string
	Ticker *time.Ticker
	Jobs   []ScheduledJob
	Pool   *WorkingPool
	mu     sync.RWMutex
}

func NewJobScheduler(name string, interval time.Duration, pool *WorkingPool) *JobScheduler {
	return &JobScheduler{
		Name:   name,
		Ticker: time.NewTicker(interval),
		Jobs:   make([]ScheduledJob, 0),
		Pool:   pool,
	}
}

func (s *JobScheduler) AddJob(job ScheduledJob) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Jobs = append(s.Jobs, job)
}

// Start drives the schedule until ctx is cancelled. Each tick fans the
// registered jobs out to the pool; a slow job never blocks the ticker.
func (s *JobScheduler) Start(ctx context.Context, managerWg *sync.WaitGroup) {
	defer managerWg.Done()
	defer s.Ticker.Stop()

	slog.Info("scheduler started", "scheduler", s.Name, "jobs", len(s.Jobs))

	for {
		select {
		case <-s.Ticker.C:
			s.dispatch()
		case <-ctx.Done():
			slog.Info("scheduler stopped", "scheduler", s.Name)
			return
		}
	}
}

func (s *JobScheduler) dispatch() {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, job := range s.Jobs {
		job := job
		s.Pool.SubmitJob(func(ctx context.Context) error {
			slog.Info("running scheduled job", "scheduler", s.Name, "job", job.Name)
			return job.Run(ctx)
		})
	}
}
