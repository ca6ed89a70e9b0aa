package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"schedulestorm-backend/internal/components/assert"
	"schedulestorm-backend/internal/components/chrono"
	"schedulestorm-backend/internal/components/db"
	"schedulestorm-backend/internal/components/telemetry"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("internal/catalog")

const (
	report_store_reject = "store.reject"
	report_store_batch  = "store.batch"
)

// Store is the canonical, university scoped catalog. Every write is a keyed
// upsert that merges into what is already stored, optional fields left empty
// never overwrite stored values.
type Store struct {
	qry    *db.Queries
	makeTx db.MakeTx
	clock  chrono.TimeAPI
	tel    telemetry.API
	cycle  string
}

func NewStore(database *sql.DB, clock chrono.TimeAPI, tel telemetry.API) Store {
	assert.NotNil(database)
	assert.NotNil(clock)
	assert.NotNil(tel)

	return Store{
		qry:    db.New(database),
		makeTx: db.NewMakeTx(database),
		clock:  clock,
		tel:    tel,
	}
}

// WithCycle returns a copy of the store that stamps every section it writes
// with the given scrape cycle id, see PruneSections.
func (s Store) WithCycle(cycle string) Store {
	s.cycle = cycle
	return s
}

func (s Store) now() int64 {
	return s.clock.Now().UnixMilli()
}

// BatchResult is the outcome of a batch upsert, records in Rejected failed
// validation and were skipped.
type BatchResult struct {
	Written  int
	Rejected []error
}

func runBatch[T any](
	ctx context.Context,
	s Store,
	name string,
	records []T,
	write func(context.Context, *db.Queries, T) error,
) (BatchResult, error) {
	ctx, span := tracer.Start(ctx, name)
	defer span.End()
	span.SetAttributes(attribute.Int("records", len(records)))

	var result BatchResult

	txqry, discard, commit, err := s.makeTx(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return result, err
	}
	defer discard()

	for _, record := range records {
		err := write(ctx, txqry, record)
		var verr *ValidationError
		if errors.As(err, &verr) {
			s.tel.ReportWarning(report_store_reject, verr)
			result.Rejected = append(result.Rejected, verr)
			continue
		}
		if err != nil {
			s.tel.ReportBroken(report_store_batch, fmt.Errorf("%s: %w", name, err))
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return BatchResult{}, err
		}
		result.Written++
	}

	err = commit()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return BatchResult{}, err
	}
	span.SetAttributes(attribute.Int("rejected", len(result.Rejected)))
	return result, nil
}

func (s Store) upsertTerm(ctx context.Context, qry *db.Queries, uni string, term Term) error {
	err := check("term", term.ID, term)
	if err != nil {
		return err
	}
	return qry.UpsertTerm(ctx, db.UpsertTermParams{
		Uni:          uni,
		ID:           term.ID,
		Name:         term.Name,
		Enabled:      term.Enabled,
		LastModified: s.now(),
	})
}

func (s Store) UpsertTerm(ctx context.Context, uni string, term Term) error {
	return s.upsertTerm(ctx, s.qry, uni, term)
}

func (s Store) UpsertTerms(ctx context.Context, uni string, terms []Term) (BatchResult, error) {
	return runBatch(ctx, s, "UpsertTerms", terms, func(ctx context.Context, qry *db.Queries, t Term) error {
		return s.upsertTerm(ctx, qry, uni, t)
	})
}

func (s Store) upsertSubject(ctx context.Context, qry *db.Queries, uni string, subject Subject) error {
	err := check("subject", subject.Subject, subject)
	if err != nil {
		return err
	}
	extra, err := encodeExtra(subject.Extra)
	if err != nil {
		return err
	}
	return qry.UpsertSubject(ctx, db.UpsertSubjectParams{
		Uni:          uni,
		Subject:      subject.Subject,
		Name:         subject.Name,
		Faculty:      subject.Faculty,
		Extra:        extra,
		LastModified: s.now(),
	})
}

func (s Store) UpsertSubject(ctx context.Context, uni string, subject Subject) error {
	return s.upsertSubject(ctx, s.qry, uni, subject)
}

func (s Store) UpsertSubjects(ctx context.Context, uni string, subjects []Subject) (BatchResult, error) {
	return runBatch(ctx, s, "UpsertSubjects", subjects, func(ctx context.Context, qry *db.Queries, subj Subject) error {
		return s.upsertSubject(ctx, qry, uni, subj)
	})
}

func (s Store) upsertCourseDescription(ctx context.Context, qry *db.Queries, uni string, desc CourseDescription) error {
	err := check("course description", desc.Subject+" "+desc.Coursenum, desc)
	if err != nil {
		return err
	}
	extra, err := encodeExtra(desc.Extra)
	if err != nil {
		return err
	}
	return qry.UpsertCourseDescription(ctx, db.UpsertCourseDescriptionParams{
		Uni:          uni,
		Subject:      desc.Subject,
		Coursenum:    desc.Coursenum,
		Name:         desc.Name,
		Description:  desc.Desc,
		Units:        desc.Units,
		Prereq:       desc.Prereq,
		Coreq:        desc.Coreq,
		Antireq:      desc.Antireq,
		Notes:        desc.Notes,
		Extra:        extra,
		LastModified: s.now(),
	})
}

func (s Store) UpsertCourseDescription(ctx context.Context, uni string, desc CourseDescription) error {
	return s.upsertCourseDescription(ctx, s.qry, uni, desc)
}

func (s Store) UpsertCourseDescriptions(ctx context.Context, uni string, descs []CourseDescription) (BatchResult, error) {
	return runBatch(ctx, s, "UpsertCourseDescriptions", descs, func(ctx context.Context, qry *db.Queries, d CourseDescription) error {
		return s.upsertCourseDescription(ctx, qry, uni, d)
	})
}

func (s Store) upsertSection(ctx context.Context, qry *db.Queries, uni string, section ClassSection) error {
	err := check("class section", section.Term+"/"+section.ID, section)
	if err != nil {
		return err
	}

	params := db.UpsertClassSectionParams{
		Uni:          uni,
		Term:         section.Term,
		ID:           section.ID,
		Subject:      section.Subject,
		Coursenum:    section.Coursenum,
		Section:      section.Section,
		Type:         section.Type,
		Status:       section.Status,
		Location:     section.Location,
		Grp:          section.Group,
		Notes:        section.Notes,
		Cycle:        s.cycle,
		LastModified: s.now(),
	}
	params.Teachers, err = encodeList(section.Teachers)
	if err != nil {
		return err
	}
	params.Rooms, err = encodeList(section.Rooms)
	if err != nil {
		return err
	}
	params.Times, err = encodeList(section.Times)
	if err != nil {
		return err
	}
	params.Extra, err = encodeExtra(section.Extra)
	if err != nil {
		return err
	}
	return qry.UpsertClassSection(ctx, params)
}

func (s Store) UpsertSection(ctx context.Context, uni string, section ClassSection) error {
	return s.upsertSection(ctx, s.qry, uni, section)
}

func (s Store) UpsertSections(ctx context.Context, uni string, sections []ClassSection) (BatchResult, error) {
	return runBatch(ctx, s, "UpsertSections", sections, func(ctx context.Context, qry *db.Queries, c ClassSection) error {
		return s.upsertSection(ctx, qry, uni, c)
	})
}

func (s Store) upsertRating(ctx context.Context, qry *db.Queries, uni string, rating Rating) error {
	err := check("rating", rating.ID, rating)
	if err != nil {
		return err
	}
	return qry.UpsertRating(ctx, db.UpsertRatingParams{
		Uni:          uni,
		ID:           rating.ID,
		Firstname:    rating.FirstName,
		Middlename:   rating.MiddleName,
		Lastname:     rating.LastName,
		Rating:       rating.Rating,
		Difficulty:   rating.Difficulty,
		Numratings:   int64(rating.NumRatings),
		Department:   rating.Department,
		LastModified: s.now(),
	})
}

func (s Store) UpsertRating(ctx context.Context, uni string, rating Rating) error {
	return s.upsertRating(ctx, s.qry, uni, rating)
}

func (s Store) UpsertRatings(ctx context.Context, uni string, ratings []Rating) (BatchResult, error) {
	return runBatch(ctx, s, "UpsertRatings", ratings, func(ctx context.Context, qry *db.Queries, r Rating) error {
		return s.upsertRating(ctx, qry, uni, r)
	})
}

func notFound(err error, format string, args ...any) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrNotFound)
	}
	return err
}

func (s Store) GetTerm(ctx context.Context, uni, id string) (Term, error) {
	row, err := s.qry.GetTerm(ctx, db.GetTermParams{Uni: uni, ID: id})
	if err != nil {
		return Term{}, notFound(err, "term %s/%s", uni, id)
	}
	return termFromRow(row), nil
}

func (s Store) GetSubject(ctx context.Context, uni, subject string) (Subject, error) {
	row, err := s.qry.GetSubject(ctx, db.GetSubjectParams{Uni: uni, Subject: subject})
	if err != nil {
		return Subject{}, notFound(err, "subject %s/%s", uni, subject)
	}
	return subjectFromRow(row), nil
}

// GetSubjectByName finds a subject by its display name, sources that only
// publish names (course calendars for example) use it to recover the code.
func (s Store) GetSubjectByName(ctx context.Context, uni, name string) (Subject, error) {
	row, err := s.qry.GetSubjectByName(ctx, db.GetSubjectByNameParams{Uni: uni, Name: name})
	if err != nil {
		return Subject{}, notFound(err, "subject named %q in %s", name, uni)
	}
	return subjectFromRow(row), nil
}

func (s Store) GetCourseDescription(ctx context.Context, uni, subject, coursenum string) (CourseDescription, error) {
	row, err := s.qry.GetCourseDescription(ctx, db.GetCourseDescriptionParams{
		Uni:       uni,
		Subject:   subject,
		Coursenum: coursenum,
	})
	if err != nil {
		return CourseDescription{}, notFound(err, "course description %s/%s %s", uni, subject, coursenum)
	}
	return descriptionFromRow(row), nil
}

// ListTerms returns every known term of a university, enabled or not.
func (s Store) ListTerms(ctx context.Context, uni string) ([]Term, error) {
	rows, err := s.qry.ListTerms(ctx, uni)
	if err != nil {
		return nil, err
	}
	out := make([]Term, len(rows))
	for i, r := range rows {
		out[i] = termFromRow(r)
	}
	return out, nil
}

func (s Store) ListEnabledTerms(ctx context.Context, uni string) ([]Term, error) {
	rows, err := s.qry.ListEnabledTerms(ctx, uni)
	if err != nil {
		return nil, err
	}
	out := make([]Term, len(rows))
	for i, r := range rows {
		out[i] = termFromRow(r)
	}
	return out, nil
}

func (s Store) ListSubjects(ctx context.Context, uni string) ([]Subject, error) {
	rows, err := s.qry.ListSubjects(ctx, uni)
	if err != nil {
		return nil, err
	}
	out := make([]Subject, len(rows))
	for i, r := range rows {
		out[i] = subjectFromRow(r)
	}
	return out, nil
}

// ListSections returns the sections of a term ordered by subject, course number and id.
func (s Store) ListSections(ctx context.Context, uni, term string) ([]ClassSection, error) {
	rows, err := s.qry.ListClassSections(ctx, db.ListClassSectionsParams{Uni: uni, Term: term})
	if err != nil {
		return nil, err
	}
	out := make([]ClassSection, len(rows))
	for i, r := range rows {
		out[i] = sectionFromRow(r)
	}
	return out, nil
}

// ListLocations returns the distinct campus locations of the sections in the
// university's enabled terms.
func (s Store) ListLocations(ctx context.Context, uni string) ([]string, error) {
	locations, err := s.qry.ListLocations(ctx, uni)
	if err != nil {
		return nil, err
	}
	if locations == nil {
		locations = []string{}
	}
	return locations, nil
}

func (s Store) ListRatings(ctx context.Context, uni string) ([]Rating, error) {
	rows, err := s.qry.ListRatings(ctx, uni)
	if err != nil {
		return nil, err
	}
	out := make([]Rating, len(rows))
	for i, r := range rows {
		out[i] = ratingFromRow(r)
	}
	return out, nil
}

// DisableTerms marks every term of a university as disabled.
func (s Store) DisableTerms(ctx context.Context, uni string) error {
	return s.qry.DisableTerms(ctx, uni)
}

// PruneSections deletes the sections of a term that were not written by the
// given scrape cycle and returns how many were removed.
func (s Store) PruneSections(ctx context.Context, uni, term, cycle string) (int64, error) {
	ctx, span := tracer.Start(ctx, "PruneSections")
	defer span.End()

	n, err := s.qry.PruneClassSections(ctx, db.PruneClassSectionsParams{
		Uni:   uni,
		Term:  term,
		Cycle: cycle,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return 0, err
	}
	span.SetAttributes(attribute.Int64("pruned", n))
	return n, nil
}
