package ingest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeCron struct {
	specs     []string
	callbacks []func()
}

func (c *fakeCron) Cron(spec string, callback func()) error {
	c.specs = append(c.specs, spec)
	c.callbacks = append(c.callbacks, callback)
	return nil
}

func TestSchedulerRegister(t *testing.T) {
	env := setupRunner(t)
	cron := &fakeCron{}
	sched := NewScheduler(cron, env.tel)

	ran := 0
	runner := env.newRun(sourceFunc(func(ctx context.Context, sink Sink) error {
		ran++
		return nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, sched.Register(ctx, runner, 10*time.Second))
	require.Equal(t, []string{"@every 1m0s"}, cron.specs)
	require.Error(t, sched.Register(ctx, runner, time.Hour))

	cron.callbacks[0]()
	require.Equal(t, 1, ran)

	cancel()
	cron.callbacks[0]()
	require.Equal(t, 1, ran)

	require.False(t, sched.IsScraping("UWaterloo"))
	require.False(t, sched.IsScraping("UCalgary"))
}

func TestSchedulerRunAll(t *testing.T) {
	env := setupRunner(t)
	sched := NewScheduler(&fakeCron{}, env.tel)

	runner := env.newRun(sourceFunc(func(ctx context.Context, sink Sink) error {
		return errors.New("portal down")
	}))
	require.NoError(t, sched.Register(context.Background(), runner, time.Hour))

	errs := sched.RunAll(context.Background())
	require.Len(t, errs, 1)
	require.ErrorContains(t, errs["UWaterloo"], "portal down")
}
