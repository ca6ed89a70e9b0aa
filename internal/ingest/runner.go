package ingest

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"schedulestorm-backend/internal/catalog"
	"schedulestorm-backend/internal/components/assert"
	"schedulestorm-backend/internal/components/chrono"
	"schedulestorm-backend/internal/components/telemetry"

	"github.com/mazen160/go-random"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
)

var (
	tracer = otel.Tracer("internal/ingest")
	meter  = otel.Meter("internal/ingest")
)

var (
	cycleCounter, _ = meter.Int64Counter(
		"scrape_cycles",
		metric.WithDescription("Scrape cycles started."),
	)
	failureCounter, _ = meter.Int64Counter(
		"scrape_failures",
		metric.WithDescription("Scrape cycles that returned an error or panicked."),
	)
	durationHistogram, _ = meter.Float64Histogram(
		"scrape_duration_seconds",
		metric.WithUnit("s"),
	)
)

const (
	report_runner_cycle = "runner.cycle"
	report_runner_alert = "runner.alert"
)

// CycleStats summarizes one scrape cycle.
type CycleStats struct {
	Cycle    string
	Written  int
	Rejected int
	Pruned   int
	// Terms completed (and pruned) during the cycle, in completion order.
	Terms    []string
	Duration time.Duration
}

type cycleStats struct {
	mu sync.Mutex
	CycleStats
}

func (s *cycleStats) add(written, rejected int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Written += written
	s.Rejected += rejected
}

func (s *cycleStats) complete(term string, pruned int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Pruned += pruned
	s.Terms = append(s.Terms, term)
}

func (s *cycleStats) snapshot() CycleStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.CycleStats
	out.Terms = append([]string(nil), s.Terms...)
	return out
}

// Alerter is notified of failed scrape cycles.
type Alerter interface {
	Alert(ctx context.Context, uni string, cause error) error
}

// Runner runs the scrape cycles of a single university.
type Runner struct {
	uni      string
	source   Source
	store    catalog.Store
	clock    chrono.TimeAPI
	tel      telemetry.API
	alerter  Alerter
	scraping atomic.Bool
}

type RunnerOptions struct {
	Uni    string
	Source Source
	Store  catalog.Store
	Clock  chrono.TimeAPI
	Tel    telemetry.API
	// Alerter is optional.
	Alerter Alerter
}

func NewRunner(opts RunnerOptions) *Runner {
	assert.NotEmptyStr(opts.Uni)
	assert.NotNil(opts.Source)
	assert.NotNil(opts.Clock)
	assert.NotNil(opts.Tel)

	return &Runner{
		uni:     opts.Uni,
		source:  opts.Source,
		store:   opts.Store,
		clock:   opts.Clock,
		tel:     telemetry.NewScopedAPI(opts.Uni, opts.Tel),
		alerter: opts.Alerter,
	}
}

func (r *Runner) Uni() string {
	return r.uni
}

// IsScraping reports whether a cycle is currently in progress.
func (r *Runner) IsScraping() bool {
	return r.scraping.Load()
}

func newCycleID() string {
	id, err := random.String(12)
	if err != nil {
		// the id only has to differ from the previous cycle's
		return fmt.Sprintf("c%d", time.Now().UnixNano())
	}
	return id
}

// Run performs one scrape cycle. A failing or panicking source only fails
// its own cycle, the error is reported and returned so callers may decide
// whether to retry sooner.
func (r *Runner) Run(ctx context.Context) (stats CycleStats, err error) {
	if !r.scraping.CompareAndSwap(false, true) {
		return CycleStats{}, fmt.Errorf("%s: a scrape cycle is already running", r.uni)
	}
	defer r.scraping.Store(false)

	ctx, span := tracer.Start(ctx, "Run")
	defer span.End()

	state := &cycleStats{}
	state.Cycle = newCycleID()
	span.SetAttributes(
		attribute.String("uni", r.uni),
		attribute.String("cycle", state.Cycle),
	)

	attrs := metric.WithAttributes(attribute.String("uni", r.uni))
	cycleCounter.Add(ctx, 1, attrs)
	start := r.clock.Now()

	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("%s: scrape panicked: %v", r.uni, recovered)
		}

		stats = state.snapshot()
		stats.Duration = r.clock.Now().Sub(start)
		durationHistogram.Record(ctx, stats.Duration.Seconds(), attrs)

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "scrape cycle failed")
			failureCounter.Add(ctx, 1, attrs)
			r.tel.ReportBroken(report_runner_cycle, err, stats.Cycle)
			r.alert(ctx, err)
			return
		}

		r.tel.ReportDebug(
			fmt.Sprintf("scrape cycle %s finished", stats.Cycle),
			stats.Written,
			stats.Rejected,
			stats.Pruned,
			stats.Duration.String(),
		)
		r.tel.ReportCount(report_runner_cycle, int64(stats.Written))
	}()

	sink := newStoreSink(r.uni, state.Cycle, r.store, r.tel, state)
	err = r.source.Scrape(ctx, sink)
	return
}

func (r *Runner) alert(ctx context.Context, cause error) {
	if r.alerter == nil {
		return
	}
	if err := r.alerter.Alert(ctx, r.uni, cause); err != nil {
		r.tel.ReportBroken(report_runner_alert, err)
	}
}
