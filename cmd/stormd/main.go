package main

import (
	"context"
	"flag"
	"time"

	"schedulestorm-backend/internal/aggregate"
	"schedulestorm-backend/internal/api"
	"schedulestorm-backend/internal/catalog"
	"schedulestorm-backend/internal/components/chrono"
	"schedulestorm-backend/internal/components/telemetry"
	"schedulestorm-backend/internal/ingest"
	"schedulestorm-backend/internal/settings"
	"schedulestorm-backend/lib/serviceutil"
)

func main() {
	verbose := flag.Bool("v", false, "Enable verbose logging/instrumentation.")
	initialScrape := flag.Bool("scrape", false, "Trigger scraping immediately on run.")
	flag.Parse()

	ctx := serviceutil.SignalContext()

	InitTelemetry(ctx, *verbose)

	cfg, err := settings.Read()
	if err != nil {
		serviceutil.Fatal("read config", err)
	}

	clock, err := chrono.NewStandardTime(cfg.Timezone)
	if err != nil {
		serviceutil.Fatal("load timezone", err)
	}
	database, err := cfg.Database.Open()
	if err != nil {
		serviceutil.Fatal("open database", err)
	}
	defer database.Close()

	tel := telemetry.SlogAPI{}
	store := catalog.NewStore(database, clock, tel)

	cron := chrono.NewStandardCron(tel, clock.Location())
	scheduler := ingest.NewScheduler(cron, tel)
	err = InitScrapers(ctx, cfg, store, clock, scheduler, tel)
	if err != nil {
		serviceutil.Fatal("init scrapers", err)
	}
	if *initialScrape {
		go scheduler.RunAll(ctx)
	}

	aggregator := aggregate.NewAggregator(store, cfg.ReadModel(), scheduler, tel)
	router := api.NewRouter(api.NewHandler(aggregator, tel), tel)

	err = serviceutil.StartHttpServer(ctx, cfg.Port, router)
	if err != nil {
		serviceutil.Fatal("serve http", err)
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	cron.Stop(stopCtx)
}
