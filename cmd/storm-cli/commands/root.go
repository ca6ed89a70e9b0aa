package commands

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"schedulestorm-backend/internal/aggregate"
	"schedulestorm-backend/internal/catalog"
	"schedulestorm-backend/internal/components/chrono"
	"schedulestorm-backend/internal/components/db"
	"schedulestorm-backend/internal/components/telemetry"
	"schedulestorm-backend/internal/settings"
	"schedulestorm-backend/lib/serviceutil"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "storm-cli",
	Short: "storm-cli inspects and maintains the course catalog outside of the server.",
}

var dbFile *string

func init() {
	dbFile = rootCmd.PersistentFlags().String("db", "", "Override the database file from config.json5.")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type env struct {
	cfg      settings.Config
	clock    chrono.TimeAPI
	database *sql.DB
	store    catalog.Store
	tel      telemetry.API
}

func (e env) aggregator() aggregate.Aggregator {
	return aggregate.NewAggregator(e.store, e.cfg.ReadModel(), idle{}, e.tel)
}

func (e env) university(uni string) settings.UniversityConfig {
	cfg, ok := e.cfg.Universities[uni]
	if !ok {
		serviceutil.Fatal("unknown university", fmt.Errorf("%q is not in config.json5", uni))
	}
	return cfg
}

// idle reports no scrape in progress, the cli does not see the server's scheduler.
type idle struct{}

func (idle) IsScraping(string) bool {
	return false
}

func setup() env {
	cfg, err := settings.Read()
	if err != nil {
		serviceutil.Fatal("failed to read config", err)
	}
	if *dbFile != "" {
		cfg.Database = db.Config{File: *dbFile}
	}

	clock, err := chrono.NewStandardTime(cfg.Timezone)
	if err != nil {
		serviceutil.Fatal("failed to load timezone", err)
	}
	database, err := cfg.Database.Open()
	if err != nil {
		serviceutil.Fatal("failed to open db", err)
	}

	tel := telemetry.SlogAPI{}
	return env{
		cfg:      cfg,
		clock:    clock,
		database: database,
		store:    catalog.NewStore(database, clock, tel),
		tel:      tel,
	}
}
