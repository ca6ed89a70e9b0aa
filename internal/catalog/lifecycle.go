package catalog

import (
	"context"
	"errors"
)

const report_lifecycle_set_active = "lifecycle.set-active-terms"

// Lifecycle keeps the enabled flag of a university's terms equal to the set
// of terms its source currently publishes.
type Lifecycle struct {
	store Store
}

func NewLifecycle(store Store) Lifecycle {
	return Lifecycle{store: store}
}

// SetActiveTerms disables every term of the university and then upserts each
// given term as enabled. The two phases are not atomic, a reader in between may
// briefly see no enabled terms.
//
// Terms that fail validation are reported and skipped.
func (l Lifecycle) SetActiveTerms(ctx context.Context, uni string, terms []Term) error {
	ctx, span := tracer.Start(ctx, "SetActiveTerms")
	defer span.End()

	err := l.store.DisableTerms(ctx, uni)
	if err != nil {
		return err
	}

	for _, t := range terms {
		t.Enabled = true
		err := l.store.UpsertTerm(ctx, uni, t)
		if errors.Is(err, ErrMissingRequiredField) {
			l.store.tel.ReportWarning(report_lifecycle_set_active, err)
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// ListActiveTerms returns the enabled terms of a university as id -> name.
func (l Lifecycle) ListActiveTerms(ctx context.Context, uni string) (map[string]string, error) {
	terms, err := l.store.ListEnabledTerms(ctx, uni)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(terms))
	for _, t := range terms {
		out[t.ID] = t.Name
	}
	return out, nil
}
