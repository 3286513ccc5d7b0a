package cron

import "context"

// Job is one schedulable unit of work. Name keys the distributed lock and
// the job's metrics, so it must be stable across releases.
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

// Registry holds the worker's jobs in registration order. The rollup runs
// before any job that reads its output, so order matters.
type Registry struct {
	jobs []Job
}

// NewRegistry builds a registry from the given jobs, dropping nil entries so
// conditionally-wired jobs can be passed straight through.
func NewRegistry(jobs ...Job) *Registry {
	r := &Registry{}
	for _, job := range jobs {
		r.Register(job)
	}
	return r
}

// Register appends a job; nil jobs are ignored.
func (r *Registry) Register(job Job) {
	if job == nil {
		return
	}
	r.jobs = append(r.jobs, job)
}

// Jobs returns a copy so callers cannot reorder the schedule.
func (r *Registry) Jobs() []Job {
	out := make([]Job, len(r.jobs))
	copy(out, r.jobs)
	return out
}
