package ingest

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"schedulestorm-backend/internal/catalog"
	"schedulestorm-backend/internal/components/telemetry"
	"schedulestorm-backend/lib/testutil"

	"github.com/stretchr/testify/require"
)

type sourceFunc func(ctx context.Context, sink Sink) error

func (f sourceFunc) Scrape(ctx context.Context, sink Sink) error {
	return f(ctx, sink)
}

type recordingAlerter struct {
	mu     sync.Mutex
	causes map[string]error
}

func (a *recordingAlerter) Alert(ctx context.Context, uni string, cause error) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.causes == nil {
		a.causes = map[string]error{}
	}
	a.causes[uni] = cause
	return nil
}

func section(id, section, typ, notes string) catalog.ClassSection {
	return catalog.ClassSection{
		ID:        id,
		Term:      "1179",
		Subject:   "CS",
		Coursenum: "135",
		Section:   section,
		Type:      typ,
		Status:    catalog.StatusOpen,
		Teachers:  []string{"Byron Weber Becker"},
		Rooms:     []string{"MC 4020"},
		Times:     []string{"MWF 10:30AM - 11:20AM"},
		Location:  "Main Campus",
		Group:     "1",
		Notes:     notes,
	}
}

type runnerEnv struct {
	store   catalog.Store
	tel     telemetry.API
	alerter *recordingAlerter
	newRun  func(src Source) *Runner
}

func setupRunner(t *testing.T) runnerEnv {
	res, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name: "ingest",
	})
	t.Cleanup(cleanup)

	env := runnerEnv{
		store:   catalog.NewStore(res.DB, res.Clock, res.Tel),
		tel:     res.Tel,
		alerter: &recordingAlerter{},
	}
	env.newRun = func(src Source) *Runner {
		return NewRunner(RunnerOptions{
			Uni:     "UWaterloo",
			Source:  src,
			Store:   env.store,
			Clock:   res.Clock,
			Tel:     res.Tel,
			Alerter: env.alerter,
		})
	}
	return env
}

func TestRunGroupsAndPrunes(t *testing.T) {
	ctx := context.Background()
	env := setupRunner(t)

	full := []catalog.ClassSection{
		section("1", "001", "LEC", "Lecture 001 take tutorial 101 and lab 201"),
		section("2", "101", "TUT", ""),
		section("3", "201", "LAB", ""),
	}
	sections := full
	runner := env.newRun(sourceFunc(func(ctx context.Context, sink Sink) error {
		err := sink.SetActiveTerms(ctx, []catalog.Term{{ID: "1179", Name: "Fall 2017"}})
		if err != nil {
			return err
		}
		err = sink.UpsertCourseSections(ctx, sections)
		if err != nil {
			return err
		}
		return sink.CompleteTerm(ctx, "1179")
	}))

	stats, err := runner.Run(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, stats.Written)
	require.Equal(t, 0, stats.Pruned)
	require.Equal(t, []string{"1179"}, stats.Terms)
	require.NotEmpty(t, stats.Cycle)

	stored, err := env.store.ListSections(ctx, "UWaterloo", "1179")
	require.NoError(t, err)
	groups := map[string]string{}
	for _, s := range stored {
		groups[s.ID] = s.Group
	}
	require.Equal(t, map[string]string{"1": "1,2", "2": "1", "3": "2"}, groups)

	sections = full[:2]
	stats, err = runner.Run(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, stats.Pruned)

	stored, err = env.store.ListSections(ctx, "UWaterloo", "1179")
	require.NoError(t, err)
	require.Len(t, stored, 2)
	require.Empty(t, env.alerter.causes)
}

func TestRunFailureKeepsLastSnapshot(t *testing.T) {
	ctx := context.Background()
	env := setupRunner(t)

	fail := false
	runner := env.newRun(sourceFunc(func(ctx context.Context, sink Sink) error {
		if fail {
			err := sink.UpsertCourseSections(ctx, []catalog.ClassSection{
				section("1", "001", "LEC", ""),
			})
			if err != nil {
				return err
			}
			return errors.New("class listing unavailable")
		}
		err := sink.UpsertCourseSections(ctx, []catalog.ClassSection{
			section("1", "001", "LEC", ""),
			section("2", "002", "LEC", ""),
		})
		if err != nil {
			return err
		}
		return sink.CompleteTerm(ctx, "1179")
	}))

	_, err := runner.Run(ctx)
	require.NoError(t, err)

	fail = true
	_, err = runner.Run(ctx)
	require.ErrorContains(t, err, "class listing unavailable")
	require.False(t, runner.IsScraping())

	stored, err := env.store.ListSections(ctx, "UWaterloo", "1179")
	require.NoError(t, err)
	require.Len(t, stored, 2)
	require.Contains(t, env.alerter.causes, "UWaterloo")
}

func TestRunRecoversPanic(t *testing.T) {
	env := setupRunner(t)
	runner := env.newRun(sourceFunc(func(ctx context.Context, sink Sink) error {
		var subjects map[string]string
		subjects["CS"] = "Computer Science"
		return nil
	}))

	_, err := runner.Run(context.Background())
	require.ErrorContains(t, err, "panicked")
	require.False(t, runner.IsScraping())
	require.Contains(t, env.alerter.causes, "UWaterloo")
}

func TestRunCountsRejected(t *testing.T) {
	env := setupRunner(t)
	runner := env.newRun(sourceFunc(func(ctx context.Context, sink Sink) error {
		broken := section("2", "002", "LEC", "")
		broken.Location = ""
		err := sink.UpsertSection(ctx, broken)
		require.ErrorIs(t, err, catalog.ErrMissingRequiredField)

		return sink.UpsertCourseSections(ctx, []catalog.ClassSection{
			section("1", "001", "LEC", ""),
			broken,
		})
	}))

	stats, err := runner.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, stats.Written)
	require.Equal(t, 2, stats.Rejected)
}

func TestRunDoesNotOverlap(t *testing.T) {
	env := setupRunner(t)

	started := make(chan struct{})
	release := make(chan struct{})
	runner := env.newRun(sourceFunc(func(ctx context.Context, sink Sink) error {
		close(started)
		<-release
		return nil
	}))

	done := make(chan error)
	go func() {
		_, err := runner.Run(context.Background())
		done <- err
	}()

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("cycle never started")
	}
	require.True(t, runner.IsScraping())

	_, err := runner.Run(context.Background())
	require.ErrorContains(t, err, "already running")

	close(release)
	require.NoError(t, <-done)
	require.False(t, runner.IsScraping())
}
