package testutil

import (
	"database/sql"
	"log/slog"
	"strings"
	"testing"
	"time"

	devenv "schedulestorm-backend/dev/env"
	"schedulestorm-backend/internal/components/chrono"
	"schedulestorm-backend/internal/components/db"
	"schedulestorm-backend/internal/components/telemetry"
	libtelemetry "schedulestorm-backend/lib/telemetry"

	_ "modernc.org/sqlite"
)

// Epoch is the time test clocks start at.
var Epoch = time.Date(2024, time.September, 3, 9, 0, 0, 0, time.UTC)

type ServiceParams struct {
	Name string
	// if unspecified, the catalog schema is used
	DbSchema string
	// if unspecified, it will use `:memory:`
	DbPath string
}

type ServiceResult struct {
	DB    *sql.DB
	Tel   telemetry.API
	Clock *chrono.FixedTime
}

// SetupService opens a fresh database with the schema applied, a telemetry
// api scoped to the test name and a clock fixed at Epoch.
func SetupService(t testing.TB, params ServiceParams) (ServiceResult, func()) {
	libtelemetry.InitSlog(testing.Verbose())

	dbpath := ":memory:"
	if params.DbPath != "" && params.DbPath != ":memory:" {
		var err error
		dbpath, err = devenv.ResolvePath(params.DbPath)
		if err != nil {
			t.Fatal(err)
		}
	}
	database, err := sql.Open("sqlite", dbpath)
	if err != nil {
		t.Fatal(err)
	}
	// every connection to `:memory:` is its own database
	database.SetMaxOpenConns(1)

	schema := params.DbSchema
	if schema == "" {
		schema = db.Schema
	}
	_, err = database.Exec(schema)
	if err != nil && !strings.Contains(err.Error(), "already exists") {
		t.Fatal(err)
	}

	return ServiceResult{
			DB:    database,
			Tel:   telemetry.NewScopedAPI(params.Name, telemetry.SlogAPI{Logger: slog.Default()}),
			Clock: &chrono.FixedTime{Time: Epoch},
		}, func() {
			database.Close()
		}
}
