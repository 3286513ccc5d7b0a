package cron

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

type stubJob struct {
	name string
	runs int
	err  error
}

func (j *stubJob) Name() string { return j.name }

func (j *stubJob) Run(ctx context.Context) error {
	j.runs++
	return j.err
}

func TestRegistryPreservesRegistrationOrder(t *testing.T) {
	first := &stubJob{name: "first"}
	second := &stubJob{name: "second"}

	registry := NewRegistry(first)
	registry.Register(second)

	jobs := registry.Jobs()
	require.Len(t, jobs, 2)
	require.Equal(t, "first", jobs[0].Name())
	require.Equal(t, "second", jobs[1].Name())
}

func TestRegistryIgnoresNilJobs(t *testing.T) {
	registry := NewRegistry(nil, &stubJob{name: "only"})
	registry.Register(nil)
	require.Len(t, registry.Jobs(), 1)
}

func TestRegistryJobsReturnsCopy(t *testing.T) {
	registry := NewRegistry(&stubJob{name: "keep"})
	jobs := registry.Jobs()
	jobs[0] = &stubJob{name: "swapped"}
	require.Equal(t, "keep", registry.Jobs()[0].Name())
}
