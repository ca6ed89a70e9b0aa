// Package campusapi scrapes universities exposing their calendar and class
// schedule through a JSON open data api.
package campusapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"schedulestorm-backend/internal/catalog"
	"schedulestorm-backend/internal/components/telemetry"
	"schedulestorm-backend/internal/ingest"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("internal/sources/campusapi")

const (
	report_source_instructors = "source.instructors"
	report_source_schedule    = "source.schedule"
)

const unknownInstructor = "TBA"

type Source struct {
	client  client
	workers int
	tel     telemetry.API
}

func New(config Config, tel telemetry.API) (Source, error) {
	tel = telemetry.NewScopedAPI("campusapi", tel)
	c, err := newClient(config, tel)
	if err != nil {
		return Source{}, err
	}
	workers := config.Workers
	if workers <= 0 {
		workers = 4
	}
	return Source{
		client:  c,
		workers: workers,
		tel:     tel,
	}, nil
}

func (s Source) Scrape(ctx context.Context, sink ingest.Sink) error {
	ctx, span := tracer.Start(ctx, "Scrape")
	defer span.End()

	fail := func(err error) error {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	terms, err := s.client.terms(ctx)
	if err != nil {
		return fail(fmt.Errorf("fetch terms: %w", err))
	}
	var active []catalog.Term
	for _, t := range terms {
		if t.Active {
			active = append(active, catalog.Term{ID: t.ID, Name: t.Name})
		}
	}
	err = sink.SetActiveTerms(ctx, active)
	if err != nil {
		return fail(err)
	}

	err = s.scrapeSubjects(ctx, sink)
	if err != nil {
		return fail(fmt.Errorf("subjects: %w", err))
	}
	err = s.scrapeCourses(ctx, sink)
	if err != nil {
		return fail(fmt.Errorf("courses: %w", err))
	}

	names := map[string]string{}
	var errs []error
	for _, term := range active {
		err := s.scrapeTerm(ctx, sink, term.ID, names)
		if err != nil {
			if ctx.Err() != nil {
				return fail(err)
			}
			s.tel.ReportWarning(report_source_schedule, err, term.ID)
			errs = append(errs, fmt.Errorf("term %s: %w", term.ID, err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fail(err)
	}
	return nil
}

// scrapeSubjects attaches the full name of its faculty (group) to every
// subject.
func (s Source) scrapeSubjects(ctx context.Context, sink ingest.Sink) error {
	groups, err := s.client.groups(ctx)
	if err != nil {
		return err
	}
	faculties := make(map[string]string, len(groups))
	for _, g := range groups {
		faculties[g.Code] = g.FullName
	}

	apiSubjects, err := s.client.subjects(ctx)
	if err != nil {
		return err
	}
	subjects := make([]catalog.Subject, 0, len(apiSubjects))
	for _, subj := range apiSubjects {
		subjects = append(subjects, catalog.Subject{
			Subject: subj.Subject,
			Name:    subj.Name,
			Faculty: faculties[subj.Group],
		})
	}
	return sink.UpsertSubjects(ctx, subjects)
}

func formatUnits(units float64) string {
	if units == 0 {
		return ""
	}
	return strconv.FormatFloat(units, 'f', -1, 64)
}

func (s Source) scrapeCourses(ctx context.Context, sink ingest.Sink) error {
	courses, err := s.client.courses(ctx)
	if err != nil {
		return err
	}
	descs := make([]catalog.CourseDescription, 0, len(courses))
	for _, c := range courses {
		descs = append(descs, catalog.CourseDescription{
			Subject:   c.Subject,
			Coursenum: c.CatalogNumber,
			Name:      c.Title,
			Desc:      c.Description,
			Units:     formatUnits(c.Units),
			Prereq:    c.Prerequisites,
			Coreq:     c.Corequisites,
			Antireq:   c.Antirequisites,
			Notes:     c.Notes,
		})
	}
	return sink.UpsertCourseDescriptions(ctx, descs)
}

// resolveInstructors fills names with the display name of every instructor
// id in classes that is not already known.
func (s Source) resolveInstructors(ctx context.Context, classes []apiClass, names map[string]string) error {
	var missing []string
	for _, c := range classes {
		for _, m := range c.Meetings {
			for _, id := range m.InstructorIDs {
				if _, ok := names[id]; !ok {
					missing = append(missing, id)
				}
			}
		}
	}
	if len(missing) == 0 {
		return nil
	}

	resolved, err := ingest.ResolveAll(ctx, missing, s.workers, func(ctx context.Context, id string) (string, error) {
		instructor, err := s.client.instructor(ctx, id)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(instructor.FirstName + " " + instructor.LastName), nil
	})
	for id, name := range resolved {
		names[id] = name
	}
	if err != nil {
		if ctx.Err() != nil {
			return err
		}
		// unresolved instructors are listed as TBA
		s.tel.ReportWarning(report_source_instructors, err)
	}
	return nil
}

func (s Source) scrapeTerm(ctx context.Context, sink ingest.Sink, term string, names map[string]string) error {
	ctx, span := tracer.Start(ctx, "scrapeTerm")
	defer span.End()
	span.SetAttributes(attribute.String("term", term))

	classes, err := s.client.schedule(ctx, term)
	if err != nil {
		return err
	}
	err = s.resolveInstructors(ctx, classes, names)
	if err != nil {
		return err
	}

	sections := make([]catalog.ClassSection, 0, len(classes))
	for _, c := range classes {
		sections = append(sections, toSection(term, c, names))
	}
	// keep the sections of a course next to each other
	sort.SliceStable(sections, func(i, j int) bool {
		if sections[i].Subject != sections[j].Subject {
			return sections[i].Subject < sections[j].Subject
		}
		return sections[i].Coursenum < sections[j].Coursenum
	})
	span.SetAttributes(attribute.Int("sections", len(sections)))

	err = sink.UpsertCourseSections(ctx, sections)
	if err != nil {
		return err
	}
	return sink.CompleteTerm(ctx, term)
}

func status(c apiClass) string {
	if c.EnrollmentCapacity > 0 && c.EnrollmentTotal >= c.EnrollmentCapacity {
		if c.WaitingTotal > 0 {
			return catalog.StatusWaitList
		}
		return catalog.StatusClosed
	}
	return catalog.StatusOpen
}

// clock renders a 24 hour "HH:MM" as "hh:mmAM".
func clock(hhmm string) string {
	hour, minute, ok := strings.Cut(hhmm, ":")
	if !ok {
		return hhmm
	}
	h, err := strconv.Atoi(hour)
	if err != nil || h < 0 || h > 23 {
		return hhmm
	}
	suffix := "AM"
	if h >= 12 {
		suffix = "PM"
	}
	if h > 12 {
		h -= 12
	}
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%02d:%s%s", h, minute, suffix)
}

func toSection(term string, c apiClass, names map[string]string) catalog.ClassSection {
	typ, number, _ := strings.Cut(strings.TrimSpace(c.Section), " ")

	section := catalog.ClassSection{
		ID:        strconv.Itoa(c.ClassNumber),
		Term:      term,
		Subject:   c.Subject,
		Coursenum: c.CatalogNumber,
		Section:   number,
		Type:      typ,
		Status:    status(c),
		Location:  c.Campus,
		Group:     "1",
		Notes:     c.Note,
		Extra: map[string]string{
			"capacity": strconv.Itoa(c.EnrollmentCapacity),
			"enrolled": strconv.Itoa(c.EnrollmentTotal),
		},
	}
	if section.Location == "" {
		section.Location = "N/A"
	}

	seen := map[string]bool{}
	for _, m := range c.Meetings {
		when := "TBA"
		if m.StartTime != "" && m.EndTime != "" {
			when = strings.TrimSpace(fmt.Sprintf("%s %s - %s", m.Weekdays, clock(m.StartTime), clock(m.EndTime)))
		}
		section.Times = append(section.Times, when)

		room := strings.TrimSpace(m.Building + " " + m.Room)
		if room == "" {
			room = "TBA"
		}
		section.Rooms = append(section.Rooms, room)

		for _, id := range m.InstructorIDs {
			name, ok := names[id]
			if !ok || name == "" {
				name = unknownInstructor
			}
			if !seen[name] {
				seen[name] = true
				section.Teachers = append(section.Teachers, name)
			}
		}
	}
	if len(section.Times) == 0 {
		section.Times = []string{"TBA"}
		section.Rooms = []string{"TBA"}
	}
	if len(section.Teachers) == 0 {
		section.Teachers = []string{unknownInstructor}
	}
	return section
}
