package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubJob struct {
	name string
	err  error
	runs int
}

func (j *stubJob) Name() string        { return j.name }
func (j *stubJob) Description() string { return "stub job" }
func (j *stubJob) Run(context.Context) error {
	j.runs++
	return j.err
}

type panicJob struct{}

func (panicJob) Name() string              { return "panic" }
func (panicJob) Description() string       { return "always panics" }
func (panicJob) Run(context.Context) error { panic("boom") }

func TestScheduler_RegisterDuplicate(t *testing.T) {
	s := NewScheduler(DefaultSchedulerConfig())

	require.NoError(t, s.Register(&stubJob{name: "flush"}, NewIntervalSchedule(time.Minute)))
	err := s.Register(&stubJob{name: "flush"}, NewIntervalSchedule(time.Minute))
	assert.Error(t, err)
}

func TestScheduler_RunNow(t *testing.T) {
	s := NewScheduler(DefaultSchedulerConfig())
	job := &stubJob{name: "flush"}
	require.NoError(t, s.Register(job, NewIntervalSchedule(time.Hour)))

	result, err := s.RunNow(context.Background(), "flush")
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 1, job.runs)

	_, err = s.RunNow(context.Background(), "unknown")
	assert.Error(t, err)
}

func TestScheduler_RunNowFailure(t *testing.T) {
	s := NewScheduler(DefaultSchedulerConfig())
	job := &stubJob{name: "flush", err: errors.New("storage down")}
	require.NoError(t, s.Register(job, NewIntervalSchedule(time.Hour)))

	result, err := s.RunNow(context.Background(), "flush")
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Error(t, result.Error)

	infos := s.ListJobs()
	require.Len(t, infos, 1)
	assert.Equal(t, int64(1), infos[0].FailCount)
}

func TestScheduler_PanicRecovery(t *testing.T) {
	s := NewScheduler(DefaultSchedulerConfig())
	require.NoError(t, s.Register(panicJob{}, NewIntervalSchedule(time.Hour)))

	result, err := s.RunNow(context.Background(), "panic")
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.Error.Error(), "panicked")
}

func TestScheduler_StartStop(t *testing.T) {
	s := NewScheduler(DefaultSchedulerConfig())
	require.NoError(t, s.Register(&stubJob{name: "flush"}, NewIntervalSchedule(time.Hour)))

	require.NoError(t, s.Start(context.Background()))
	assert.True(t, s.IsRunning())
	assert.Error(t, s.Start(context.Background()))

	require.NoError(t, s.Stop())
	assert.False(t, s.IsRunning())
	assert.NoError(t, s.Stop())
}

func TestIntervalSchedule(t *testing.T) {
	sched := NewIntervalSchedule(10 * time.Minute)
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

	assert.Equal(t, now.Add(10*time.Minute), sched.Next(now))
	assert.Equal(t, "@every 10m0s", sched.String())
}

func TestDailySchedule(t *testing.T) {
	sched := NewDailySchedule(2, 30)

	before := time.Date(2026, 3, 2, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 2, 2, 30, 0, 0, time.UTC), sched.Next(before))

	after := time.Date(2026, 3, 2, 3, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 3, 2, 30, 0, 0, time.UTC), sched.Next(after))
}
