package main

import (
	"context"
	"log/slog"

	"schedulestorm-backend/internal/sources/banner"
	"schedulestorm-backend/internal/sources/campusapi"
	"schedulestorm-backend/lib/restyutil"
	"schedulestorm-backend/lib/serviceutil"
	"schedulestorm-backend/lib/telemetry"
)

func InitTelemetry(ctx context.Context, verbose bool) {
	telemetry.InitSlog(verbose)

	if verbose {
		slog.DebugContext(ctx, "verbose logging enabled")
	}

	t, err := telemetry.SetupFromEnv(ctx, "stormd")
	if err != nil {
		slog.WarnContext(ctx, "telemetry.json5 not found, running without otlp exporters", "err", err)
		t, err = telemetry.Setup(ctx, "stormd", telemetry.Config{})
		if err != nil {
			serviceutil.Fatal("setup telemetry", err)
		}
	}
	go func() {
		<-ctx.Done()
		t.Shutdown(context.Background())
	}()
	telemetry.InstrumentPerfStats(ctx)

	if !verbose {
		return
	}

	bannerOutput, err := restyutil.NewFilesystemOutput("<dev_state>/resty/banner")
	if err != nil {
		serviceutil.Fatal("create resty output", err)
	}
	banner.SetDumpOutput(bannerOutput)
	campusOutput, err := restyutil.NewFilesystemOutput("<dev_state>/resty/campusapi")
	if err != nil {
		serviceutil.Fatal("create resty output", err)
	}
	campusapi.SetDumpOutput(campusOutput)
}
