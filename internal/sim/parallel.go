package sim

import (
	"context"
	"sync"
)

// Job is one named scene in a batch. Build is called on the job's own
// goroutine so each run owns its particle system.
type Job struct {
	Name   string
	Build  func() (*Runner, error)
	Config Config
}

type BatchResult struct {
	Name   string
	Result *Result
	Err    error
}

// RunBatch runs every job concurrently and returns results in job order.
func RunBatch(ctx context.Context, jobs []Job) []BatchResult {
	results := make([]BatchResult, len(jobs))

	var wg sync.WaitGroup
	for i, job := range jobs {
		wg.Add(1)
		go func(idx int, job Job) {
			defer wg.Done()
			results[idx].Name = job.Name

			r, err := job.Build()
			if err != nil {
				results[idx].Err = err
				return
			}
			results[idx].Result, results[idx].Err = r.Run(ctx, job.Config)
		}(i, job)
	}

	wg.Wait()
	return results
}
