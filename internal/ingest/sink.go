package ingest

import (
	"context"
	"errors"

	"schedulestorm-backend/internal/catalog"
	"schedulestorm-backend/internal/components/telemetry"
	"schedulestorm-backend/internal/grouping"
)

const (
	report_sink_prune  = "sink.complete-term"
	report_sink_reject = "sink.reject"
)

// Source scrapes one university and pushes what it finds into the sink.
// Returning an error fails the whole cycle, sections of terms already
// completed stay written.
type Source interface {
	Scrape(ctx context.Context, sink Sink) error
}

// Sink is what a source may do to the catalog of the university it scrapes.
//
// Single record upserts return a *catalog.ValidationError for malformed
// records, sources usually report it and carry on. Batch upserts skip
// malformed records on their own and only fail on storage errors.
type Sink interface {
	UpsertTerm(ctx context.Context, term catalog.Term) error
	// SetActiveTerms makes the given terms the only enabled ones.
	SetActiveTerms(ctx context.Context, terms []catalog.Term) error
	GetTerms(ctx context.Context) ([]catalog.Term, error)

	UpsertSubject(ctx context.Context, subject catalog.Subject) error
	UpsertSubjects(ctx context.Context, subjects []catalog.Subject) error
	GetSubject(ctx context.Context, subject string) (catalog.Subject, error)
	GetSubjectByName(ctx context.Context, name string) (catalog.Subject, error)

	UpsertCourseDescription(ctx context.Context, desc catalog.CourseDescription) error
	UpsertCourseDescriptions(ctx context.Context, descs []catalog.CourseDescription) error
	GetCourseDescription(ctx context.Context, subject, coursenum string) (catalog.CourseDescription, error)

	UpsertSection(ctx context.Context, section catalog.ClassSection) error
	// UpsertCourseSections writes the sections of one or more courses after
	// linking them through the group notes they carry.
	UpsertCourseSections(ctx context.Context, sections []catalog.ClassSection) error
	// CompleteTerm tells the sink every section of the term has been written
	// this cycle, sections not seen are removed.
	CompleteTerm(ctx context.Context, term string) error
}

type storeSink struct {
	uni       string
	cycle     string
	store     catalog.Store
	lifecycle catalog.Lifecycle
	tel       telemetry.API
	stats     *cycleStats
}

func newStoreSink(uni, cycle string, store catalog.Store, tel telemetry.API, stats *cycleStats) storeSink {
	store = store.WithCycle(cycle)
	return storeSink{
		uni:       uni,
		cycle:     cycle,
		store:     store,
		lifecycle: catalog.NewLifecycle(store),
		tel:       tel,
		stats:     stats,
	}
}

func (s storeSink) count(res catalog.BatchResult) {
	s.stats.add(res.Written, len(res.Rejected))
}

func (s storeSink) single(err error) error {
	if err == nil {
		s.stats.add(1, 0)
		return nil
	}
	var verr *catalog.ValidationError
	if errors.As(err, &verr) {
		s.stats.add(0, 1)
		s.tel.ReportWarning(report_sink_reject, err)
	}
	return err
}

func (s storeSink) UpsertTerm(ctx context.Context, term catalog.Term) error {
	return s.single(s.store.UpsertTerm(ctx, s.uni, term))
}

func (s storeSink) SetActiveTerms(ctx context.Context, terms []catalog.Term) error {
	return s.lifecycle.SetActiveTerms(ctx, s.uni, terms)
}

func (s storeSink) GetTerms(ctx context.Context) ([]catalog.Term, error) {
	return s.store.ListTerms(ctx, s.uni)
}

func (s storeSink) UpsertSubject(ctx context.Context, subject catalog.Subject) error {
	return s.single(s.store.UpsertSubject(ctx, s.uni, subject))
}

func (s storeSink) UpsertSubjects(ctx context.Context, subjects []catalog.Subject) error {
	res, err := s.store.UpsertSubjects(ctx, s.uni, subjects)
	s.count(res)
	return err
}

func (s storeSink) GetSubject(ctx context.Context, subject string) (catalog.Subject, error) {
	return s.store.GetSubject(ctx, s.uni, subject)
}

func (s storeSink) GetSubjectByName(ctx context.Context, name string) (catalog.Subject, error) {
	return s.store.GetSubjectByName(ctx, s.uni, name)
}

func (s storeSink) UpsertCourseDescription(ctx context.Context, desc catalog.CourseDescription) error {
	return s.single(s.store.UpsertCourseDescription(ctx, s.uni, desc))
}

func (s storeSink) UpsertCourseDescriptions(ctx context.Context, descs []catalog.CourseDescription) error {
	res, err := s.store.UpsertCourseDescriptions(ctx, s.uni, descs)
	s.count(res)
	return err
}

func (s storeSink) GetCourseDescription(ctx context.Context, subject, coursenum string) (catalog.CourseDescription, error) {
	return s.store.GetCourseDescription(ctx, s.uni, subject, coursenum)
}

func (s storeSink) UpsertSection(ctx context.Context, section catalog.ClassSection) error {
	return s.single(s.store.UpsertSection(ctx, s.uni, section))
}

func (s storeSink) UpsertCourseSections(ctx context.Context, sections []catalog.ClassSection) error {
	res, err := s.store.UpsertSections(ctx, s.uni, grouping.Assign(sections))
	s.count(res)
	return err
}

func (s storeSink) CompleteTerm(ctx context.Context, term string) error {
	n, err := s.store.PruneSections(ctx, s.uni, term, s.cycle)
	if err != nil {
		s.tel.ReportBroken(report_sink_prune, err, s.uni, term)
		return err
	}
	s.stats.complete(term, int(n))
	return nil
}
