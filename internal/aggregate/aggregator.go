// Package aggregate assembles the read model of the catalog: one document per
// university term joining sections, course descriptions, subjects and
// instructor ratings.
package aggregate

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"schedulestorm-backend/internal/catalog"
	"schedulestorm-backend/internal/components/assert"
	"schedulestorm-backend/internal/components/telemetry"
	"schedulestorm-backend/internal/identity"
	"schedulestorm-backend/lib/textutil"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("internal/aggregate")

const (
	report_aggregator_catalog      = "aggregator.get-catalog"
	report_aggregator_universities = "aggregator.list-universities"
)

var (
	ErrUnknownUniversity = errors.New("unknown university")
	ErrUnknownTerm       = errors.New("unknown term")
)

// University is the static description of a configured university.
type University struct {
	ID              string
	Name            string
	RatingsSourceID string
}

// ScrapeStatus reports whether a university is in the middle of a scrape cycle.
type ScrapeStatus interface {
	IsScraping(uni string) bool
}

type Aggregator struct {
	store     catalog.Store
	lifecycle catalog.Lifecycle
	unis      map[string]University
	order     []string
	status    ScrapeStatus
	tel       telemetry.API
}

func NewAggregator(store catalog.Store, unis []University, status ScrapeStatus, tel telemetry.API) Aggregator {
	assert.NotNil(status)
	assert.NotNil(tel)

	a := Aggregator{
		store:     store,
		lifecycle: catalog.NewLifecycle(store),
		unis:      map[string]University{},
		status:    status,
		tel:       tel,
	}
	for _, u := range unis {
		assert.NotEmptyStr(u.ID)
		a.unis[u.ID] = u
		a.order = append(a.order, u.ID)
	}
	sort.Strings(a.order)
	return a
}

func (a Aggregator) university(uni string) (University, error) {
	u, ok := a.unis[uni]
	if !ok {
		return University{}, fmt.Errorf("%w: %s", ErrUnknownUniversity, uni)
	}
	return u, nil
}

// GetCatalog builds the catalog of one enabled term.
func (a Aggregator) GetCatalog(ctx context.Context, uni, term string) (Catalog, error) {
	ctx, span := tracer.Start(ctx, "GetCatalog")
	defer span.End()
	span.SetAttributes(attribute.String("uni", uni), attribute.String("term", term))

	out, err := a.getCatalog(ctx, uni, term)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if !errors.Is(err, ErrUnknownUniversity) && !errors.Is(err, ErrUnknownTerm) {
			a.tel.ReportBroken(report_aggregator_catalog, err, uni, term)
		}
		return Catalog{}, err
	}
	return out, nil
}

func (a Aggregator) getCatalog(ctx context.Context, uni, term string) (Catalog, error) {
	_, err := a.university(uni)
	if err != nil {
		return Catalog{}, err
	}
	t, err := a.store.GetTerm(ctx, uni, term)
	if errors.Is(err, catalog.ErrNotFound) || (err == nil && !t.Enabled) {
		return Catalog{}, fmt.Errorf("%w: %s/%s", ErrUnknownTerm, uni, term)
	}
	if err != nil {
		return Catalog{}, err
	}

	sections, err := a.store.ListSections(ctx, uni, term)
	if err != nil {
		return Catalog{}, err
	}
	subjects, err := a.store.ListSubjects(ctx, uni)
	if err != nil {
		return Catalog{}, err
	}
	ratings, err := a.store.ListRatings(ctx, uni)
	if err != nil {
		return Catalog{}, err
	}

	out := Catalog{
		BySubject: map[string]SubjectCourses{},
		Subjects:  map[string]string{},
	}

	var teachers []string
	for _, s := range sections {
		courses, ok := out.BySubject[s.Subject]
		if !ok {
			courses = SubjectCourses{}
			out.BySubject[s.Subject] = courses
		}
		course, ok := courses[s.Coursenum]
		if !ok {
			course = &Course{}
			desc, err := a.store.GetCourseDescription(ctx, uni, s.Subject, s.Coursenum)
			if err == nil {
				course.Description = Description{Value: &desc}
			} else if !errors.Is(err, catalog.ErrNotFound) {
				return Catalog{}, err
			}
			courses[s.Coursenum] = course
		}
		course.Classes = append(course.Classes, s)

		for _, teacher := range s.Teachers {
			if !textutil.IsPlaceholder(teacher) {
				teachers = append(teachers, teacher)
			}
		}
	}
	out.Ratings = identity.Match(teachers, ratings)

	faculties := map[string]string{}
	for _, subj := range subjects {
		if subj.Name != "" {
			out.Subjects[subj.Subject] = subj.Name
		}
		if subj.Faculty != "" {
			faculties[subj.Subject] = subj.Faculty
		}
	}
	if len(faculties) > 0 {
		out.ByFaculty = map[string]map[string]SubjectCourses{}
		for subject, courses := range out.BySubject {
			faculty, ok := faculties[subject]
			if !ok {
				faculty = OtherFaculty
			}
			if out.ByFaculty[faculty] == nil {
				out.ByFaculty[faculty] = map[string]SubjectCourses{}
			}
			out.ByFaculty[faculty][subject] = courses
		}
	}
	return out, nil
}

// ListTerms returns the enabled terms of a university as id -> name.
func (a Aggregator) ListTerms(ctx context.Context, uni string) (map[string]string, error) {
	_, err := a.university(uni)
	if err != nil {
		return nil, err
	}
	return a.lifecycle.ListActiveTerms(ctx, uni)
}

func (a Aggregator) ListLocations(ctx context.Context, uni string) ([]string, error) {
	_, err := a.university(uni)
	if err != nil {
		return nil, err
	}
	return a.store.ListLocations(ctx, uni)
}

// ListUniversities summarizes every configured university.
func (a Aggregator) ListUniversities(ctx context.Context) (map[string]UniversityInfo, error) {
	ctx, span := tracer.Start(ctx, "ListUniversities")
	defer span.End()

	out := make(map[string]UniversityInfo, len(a.order))
	for _, id := range a.order {
		u := a.unis[id]
		terms, err := a.lifecycle.ListActiveTerms(ctx, id)
		if err != nil {
			a.tel.ReportBroken(report_aggregator_universities, err, id)
			return nil, err
		}
		locations, err := a.store.ListLocations(ctx, id)
		if err != nil {
			a.tel.ReportBroken(report_aggregator_universities, err, id)
			return nil, err
		}
		out[id] = UniversityInfo{
			Terms:     terms,
			Locations: locations,
			Name:      u.Name,
			Rmp:       u.RatingsSourceID,
			Scraping:  a.status.IsScraping(id),
		}
	}
	return out, nil
}
