package concurrency

import (
	"context"
	"fmt"

	"golang.org/x/sync/semaphore"
)

type GoRoutineRunner[T any] struct {
	jobs              []Job[T]
	maxConcurrentJobs int
}

// Job receives its own index and the run context
type Job[T any] func(ctx context.Context, index int) (T, error)

const defaultMaxConcurrentJobs = 16

func NewGoRoutineRunner[T any]() *GoRoutineRunner[T] {
	return &GoRoutineRunner[T]{
		jobs:              make([]Job[T], 0),
		maxConcurrentJobs: defaultMaxConcurrentJobs,
	}
}

// SetMaxConcurrentJobs limits parallelism, 0 keeps the default and a negative
// value removes the limit
func (r *GoRoutineRunner[T]) SetMaxConcurrentJobs(maxConcurrentJobs int) *GoRoutineRunner[T] {
	if maxConcurrentJobs == 0 {
		maxConcurrentJobs = defaultMaxConcurrentJobs
	}
	r.maxConcurrentJobs = maxConcurrentJobs
	return r
}

func (r *GoRoutineRunner[T]) AddJob(jobs ...Job[T]) *GoRoutineRunner[T] {
	r.jobs = append(r.jobs, jobs...)
	return r
}

// Run executes all jobs and waits for them. results[i] and errs[i] belong to
// the i-th job. The returned error is only set when the context ends before
// every job could be scheduled.
func (r *GoRoutineRunner[T]) Run(ctx context.Context) (results []T, errs []error, err error) {
	if len(r.jobs) == 0 {
		return nil, nil, fmt.Errorf("no jobs to run")
	}

	results = make([]T, len(r.jobs))
	errs = make([]error, len(r.jobs))

	maxConcurrentJobs := r.maxConcurrentJobs
	if maxConcurrentJobs <= 0 || maxConcurrentJobs > len(r.jobs) {
		maxConcurrentJobs = len(r.jobs)
	}

	sem := semaphore.NewWeighted(int64(maxConcurrentJobs))

	for jobIndex, job := range r.jobs {
		if err := sem.Acquire(ctx, 1); err != nil {
			// wait for the jobs already started before handing back the slices
			_ = sem.Acquire(context.Background(), int64(maxConcurrentJobs))
			return nil, nil, err
		}

		go func(resultIndex int, job Job[T]) {
			defer sem.Release(1)
			results[resultIndex], errs[resultIndex] = job(ctx, resultIndex)
		}(jobIndex, job)
	}

	// all slots back means all jobs are done
	if err := sem.Acquire(context.Background(), int64(maxConcurrentJobs)); err != nil {
		return nil, nil, err
	}
	return results, errs, nil
}

// FirstError returns the first non nil error of a Run
func FirstError(errs []error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
