package main

import (
	"context"
	"fmt"
	"log/slog"

	"schedulestorm-backend/internal/catalog"
	"schedulestorm-backend/internal/components/chrono"
	"schedulestorm-backend/internal/components/telemetry"
	"schedulestorm-backend/internal/ingest"
	"schedulestorm-backend/internal/settings"
)

// InitScrapers registers a scrape job for every enabled university that
// has scraping turned on.
func InitScrapers(
	ctx context.Context,
	cfg settings.Config,
	store catalog.Store,
	clock chrono.TimeAPI,
	scheduler *ingest.Scheduler,
	tel telemetry.API,
) error {
	var alerter ingest.Alerter
	if a := ingest.NewEmailAlerter(cfg.Alerts, clock); a != nil {
		alerter = a
	}

	for _, id := range cfg.Enabled() {
		uni := cfg.Universities[id]
		if !uni.Scrape {
			slog.Info("scraping is disabled", "uni", id)
			continue
		}

		source, err := uni.NewSource(tel)
		if err != nil {
			return fmt.Errorf("%s: %w", id, err)
		}
		runner := ingest.NewRunner(ingest.RunnerOptions{
			Uni:     id,
			Source:  source,
			Store:   store,
			Clock:   clock,
			Tel:     tel,
			Alerter: alerter,
		})
		err = scheduler.Register(ctx, runner, uni.Interval())
		if err != nil {
			return fmt.Errorf("%s: %w", id, err)
		}
	}
	return nil
}
