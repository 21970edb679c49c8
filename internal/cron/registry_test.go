package cron

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

type stubJob struct {
	name string
}

func (s *stubJob) Name() string              { return s.name }
func (s *stubJob) Run(context.Context) error { return nil }

func TestRegistryKeepsRegistrationOrder(t *testing.T) {
	registry := NewRegistry()
	sweep := &stubJob{name: "filter-session-sweep"}
	other := &stubJob{name: "noop"}
	require.NoError(t, registry.Register(sweep))
	require.NoError(t, registry.Register(other))

	jobs := registry.Jobs()
	require.Len(t, jobs, 2)
	require.Same(t, sweep, jobs[0])
	require.Equal(t, []string{"filter-session-sweep", "noop"}, registry.Names())

	jobs[0] = nil
	require.NotNil(t, registry.Jobs()[0], "internal slice leaked")
}

func TestRegistryRejectsDuplicateNames(t *testing.T) {
	registry := NewRegistry(&stubJob{name: "filter-session-sweep"}, &stubJob{name: "filter-session-sweep"}, nil)
	require.Len(t, registry.Jobs(), 1)

	err := registry.Register(&stubJob{name: "filter-session-sweep"})
	require.Error(t, err)
	require.Error(t, registry.Register(nil))
}
