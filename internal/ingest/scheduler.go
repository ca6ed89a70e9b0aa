package ingest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"schedulestorm-backend/internal/components/assert"
	"schedulestorm-backend/internal/components/chrono"
	"schedulestorm-backend/internal/components/telemetry"
)

const MinInterval = time.Minute

// Scheduler owns one cron job per university. It also answers which
// universities are currently being scraped.
type Scheduler struct {
	cron chrono.CronAPI
	tel  telemetry.API

	mu      sync.RWMutex
	runners map[string]*Runner
}

func NewScheduler(cron chrono.CronAPI, tel telemetry.API) *Scheduler {
	assert.NotNil(cron)
	assert.NotNil(tel)
	return &Scheduler{
		cron:    cron,
		tel:     tel,
		runners: make(map[string]*Runner),
	}
}

// Register schedules runner every interval, intervals shorter than
// MinInterval are raised to it. The job keeps using ctx for every cycle
// so cancelling it aborts the running cycle and the ones after.
func (s *Scheduler) Register(ctx context.Context, runner *Runner, interval time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.runners[runner.Uni()]; exists {
		return fmt.Errorf("%s is already scheduled", runner.Uni())
	}
	if interval < MinInterval {
		interval = MinInterval
	}

	err := s.cron.Cron(chrono.Every(interval), func() {
		if ctx.Err() != nil {
			return
		}
		// failures are reported by the runner itself
		runner.Run(ctx)
	})
	if err != nil {
		return err
	}
	s.runners[runner.Uni()] = runner
	s.tel.ReportDebug(fmt.Sprintf("scheduled %s every %s", runner.Uni(), interval))
	return nil
}

// Runner returns the runner registered for uni.
func (s *Scheduler) Runner(uni string) (*Runner, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	runner, ok := s.runners[uni]
	return runner, ok
}

// RunAll runs one cycle of every registered university right away, one
// goroutine per university, and waits for all of them.
func (s *Scheduler) RunAll(ctx context.Context) map[string]error {
	s.mu.RLock()
	runners := make([]*Runner, 0, len(s.runners))
	for _, r := range s.runners {
		runners = append(runners, r)
	}
	s.mu.RUnlock()

	var (
		mu   sync.Mutex
		wg   sync.WaitGroup
		errs = make(map[string]error)
	)
	for _, r := range runners {
		wg.Add(1)
		go func(r *Runner) {
			defer wg.Done()
			_, err := r.Run(ctx)
			if err != nil {
				mu.Lock()
				errs[r.Uni()] = err
				mu.Unlock()
			}
		}(r)
	}
	wg.Wait()
	return errs
}

// IsScraping implements aggregate.ScrapeStatus.
func (s *Scheduler) IsScraping(uni string) bool {
	runner, ok := s.Runner(uni)
	if !ok {
		return false
	}
	return runner.IsScraping()
}
