package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startPool(t *testing.T, pool *WorkingPool) (context.CancelFunc, *sync.WaitGroup) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(1)
	go pool.Start(ctx, &wg)
	return cancel, &wg
}

func TestWorkingPool_ExecutesSubmittedJobs(t *testing.T) {
	pool := NewWorkingPool(2, 8)
	cancel, wg := startPool(t, pool)
	defer func() {
		cancel()
		wg.Wait()
	}()

	done := make(chan struct{})
	pool.SubmitJob(func(ctx context.Context) error {
		close(done)
		return nil
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("job was not executed")
	}
}

func TestWorkingPool_SubmitAfterShutdownIsDropped(t *testing.T) {
	pool := NewWorkingPool(2, 8)
	cancel, wg := startPool(t, pool)

	cancel()
	wg.Wait()

	var ran atomic.Bool
	assert.NotPanics(t, func() {
		pool.SubmitJob(func(ctx context.Context) error {
			ran.Store(true)
			return nil
		})
	})
	assert.False(t, ran.Load())
}

func TestWorkingPool_RecoversFromPanickingJob(t *testing.T) {
	pool := NewWorkingPool(1, 8)
	cancel, wg := startPool(t, pool)
	defer func() {
		cancel()
		wg.Wait()
	}()

	done := make(chan struct{})
	pool.SubmitJob(func(ctx context.Context) error {
		panic("boom")
	})
	pool.SubmitJob(func(ctx context.Context) error {
		close(done)
		return nil
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not survive the panic")
	}
}

func TestJobScheduler_DispatchesRegisteredJobs(t *testing.T) {
	pool := NewWorkingPool(2, 8)
	poolCancel, poolWg := startPool(t, pool)

	scheduler := NewJobScheduler("test", 10*time.Millisecond, pool)
	var runs atomic.Int32
	scheduler.AddJob(ScheduledJob{
		Name: "counter",
		Run: func(ctx context.Context) error {
			runs.Add(1)
			return nil
		},
	})

	schedCtx, schedCancel := context.WithCancel(context.Background())
	var schedWg sync.WaitGroup
	schedWg.Add(1)
	go scheduler.Start(schedCtx, &schedWg)

	require.Eventually(t, func() bool {
		return runs.Load() >= 1
	}, 2*time.Second, 10*time.Millisecond)

	schedCancel()
	schedWg.Wait()
	poolCancel()
	poolWg.Wait()
}

func TestJobScheduler_TickAfterPoolShutdownDoesNotPanic(t *testing.T) {
	pool := NewWorkingPool(1, 1)
	poolCancel, poolWg := startPool(t, pool)

	scheduler := NewJobScheduler("test", time.Hour, pool)
	scheduler.AddJob(ScheduledJob{
		Name: "noop",
		Run:  func(ctx context.Context) error { return nil },
	})

	poolCancel()
	poolWg.Wait()

	assert.NotPanics(t, scheduler.dispatch)
}
