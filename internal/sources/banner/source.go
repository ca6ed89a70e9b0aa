// Package banner scrapes universities that publish their class schedule
// through Ellucian Banner's self service pages (bwckschd).
package banner

import (
	"context"
	"errors"
	"fmt"

	"schedulestorm-backend/internal/catalog"
	"schedulestorm-backend/internal/components/telemetry"
	"schedulestorm-backend/internal/ingest"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("internal/sources/banner")

const (
	report_source_terms        = "source.terms"
	report_source_classes      = "source.classes"
	report_source_descriptions = "source.descriptions"
)

type Source struct {
	client client
	config Config
	tel    telemetry.API
}

func New(config Config, tel telemetry.API) (Source, error) {
	tel = telemetry.NewScopedAPI("banner", tel)
	c, err := newClient(config, tel)
	if err != nil {
		return Source{}, err
	}
	return Source{
		client: c,
		config: config,
		tel:    tel,
	}, nil
}

// Scrape walks every offered term and subject. A term is only completed
// once the classes of all its subjects were fetched.
func (s Source) Scrape(ctx context.Context, sink ingest.Sink) error {
	ctx, span := tracer.Start(ctx, "Scrape")
	defer span.End()

	fail := func(err error) error {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	doc, err := s.client.getTermsPage(ctx)
	if err != nil {
		return fail(fmt.Errorf("fetch terms: %w", err))
	}
	terms, err := parseTerms(doc)
	if err != nil {
		s.tel.ReportBroken(report_source_terms, err)
		return fail(err)
	}
	span.SetAttributes(attribute.Int("terms", len(terms)))
	err = sink.SetActiveTerms(ctx, terms)
	if err != nil {
		return fail(err)
	}

	var errs []error
	for _, term := range terms {
		err := s.scrapeTerm(ctx, sink, term.ID)
		if err != nil {
			if ctx.Err() != nil {
				return fail(err)
			}
			errs = append(errs, fmt.Errorf("term %s: %w", term.ID, err))
		}
	}

	if s.config.DescriptionsUrl != "" {
		err := s.scrapeDescriptions(ctx, sink)
		if err != nil {
			errs = append(errs, fmt.Errorf("descriptions: %w", err))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return fail(err)
	}
	return nil
}

func (s Source) scrapeTerm(ctx context.Context, sink ingest.Sink, term string) error {
	ctx, span := tracer.Start(ctx, "scrapeTerm")
	defer span.End()
	span.SetAttributes(attribute.String("term", term))

	doc, err := s.client.getSubjectsPage(ctx, term)
	if err != nil {
		return err
	}
	subjects, err := parseSubjects(doc)
	if err != nil {
		return err
	}
	err = sink.UpsertSubjects(ctx, subjects)
	if err != nil {
		return err
	}

	for _, subject := range subjects {
		doc, err := s.client.getClassesPage(ctx, term, subject.Subject)
		if err != nil {
			return fmt.Errorf("classes of %s: %w", subject.Subject, err)
		}
		found := parseClasses(doc, term)
		if len(found.skipped) > 0 {
			s.tel.ReportWarning(report_source_classes, describeSkipped(found.skipped), term, subject.Subject)
		}

		err = sink.UpsertCourseSections(ctx, found.sections)
		if err != nil {
			return err
		}
		err = sink.UpsertCourseDescriptions(ctx, found.names)
		if err != nil {
			return err
		}
	}

	return sink.CompleteTerm(ctx, term)
}

func (s Source) scrapeDescriptions(ctx context.Context, sink ingest.Sink) error {
	ctx, span := tracer.Start(ctx, "scrapeDescriptions")
	defer span.End()

	doc, err := s.client.getDescriptions(ctx, s.config.DescriptionsUrl)
	if err != nil {
		s.tel.ReportBroken(report_source_descriptions, err)
		return err
	}

	subjectCodes := map[string]string{}
	resolve := func(name string) (string, bool) {
		if code, ok := subjectCodes[name]; ok {
			return code, code != ""
		}
		subject, err := sink.GetSubjectByName(ctx, name)
		if err != nil {
			if !errors.Is(err, catalog.ErrNotFound) {
				s.tel.ReportBroken(report_source_descriptions, err, name)
			}
			// unknown subjects are remembered as such
			subjectCodes[name] = ""
			return "", false
		}
		subjectCodes[name] = subject.Subject
		return subject.Subject, true
	}

	descs := parseDescriptions(doc, resolve)
	span.SetAttributes(attribute.Int("descriptions", len(descs)))
	return sink.UpsertCourseDescriptions(ctx, descs)
}
