package worker

import "context"

// Job is a unit of background work executed by the pool.
type Job func(ctx context.Context) error

// ScheduledJob is a named job run on a fixed interval, e.g. the quote
// expiration sweep or the payment reminder pass.
type ScheduledJob struct {
	Name string
	Run  Job
}
