package commands

import (
	"log/slog"

	"schedulestorm-backend/cmd/storm-cli/utils"
	"schedulestorm-backend/internal/ingest"
	"schedulestorm-backend/internal/sources/banner"
	"schedulestorm-backend/internal/sources/campusapi"
	"schedulestorm-backend/lib/restyutil"
	"schedulestorm-backend/lib/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var scrapeDump *string

func init() {
	scrapeDump = scrapeCmd.Flags().String("dump", "", "Write every http exchange to this directory.")
	rootCmd.AddCommand(scrapeCmd)
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape <uni> [--dump <path/to/dir>]",
	Short: "Runs one scrape cycle for a university and prints what it wrote.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		uni := args[0]

		e := setup()
		defer e.database.Close()

		if *scrapeDump != "" {
			output, err := restyutil.NewFilesystemOutput(*scrapeDump)
			if err != nil {
				serviceutil.Fatal("failed to create dump output", err)
			}
			banner.SetDumpOutput(output)
			campusapi.SetDumpOutput(output)
		}

		source, err := e.university(uni).NewSource(e.tel)
		if err != nil {
			serviceutil.Fatal("failed to create source", err)
		}
		runner := ingest.NewRunner(ingest.RunnerOptions{
			Uni:    uni,
			Source: source,
			Store:  e.store,
			Clock:  e.clock,
			Tel:    e.tel,
		})

		stats, err := runner.Run(cmd.Context())
		if err != nil {
			slog.Error("scrape failed", "uni", uni, "err", err.Error())
		}

		t := utils.NewTable()
		t.AppendHeader(table.Row{"Cycle", "Written", "Rejected", "Pruned", "Terms", "Seconds"})
		t.AppendRow(table.Row{stats.Cycle, stats.Written, stats.Rejected, stats.Pruned, len(stats.Terms), stats.Duration.Seconds()})
		t.Render()
	},
}
