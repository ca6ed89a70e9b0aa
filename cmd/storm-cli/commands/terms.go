package commands

import (
	"schedulestorm-backend/cmd/storm-cli/utils"
	"schedulestorm-backend/lib/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(termsCmd)
	rootCmd.AddCommand(locationsCmd)
}

var termsCmd = &cobra.Command{
	Use:   "terms <uni>",
	Short: "Lists every term stored for a university, enabled or not.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		e := setup()
		defer e.database.Close()

		terms, err := e.store.ListTerms(cmd.Context(), args[0])
		if err != nil {
			serviceutil.Fatal("failed to list terms", err)
		}

		t := utils.NewTable()
		t.AppendHeader(table.Row{"Id", "Name", "Enabled", "Last Modified"})
		for _, term := range terms {
			t.AppendRow(table.Row{term.ID, term.Name, term.Enabled, term.LastModified.Format("2006-01-02 15:04")})
		}
		t.Render()
	},
}

var locationsCmd = &cobra.Command{
	Use:   "locations <uni>",
	Short: "Lists the locations served to clients for a university.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		e := setup()
		defer e.database.Close()

		locations, err := e.aggregator().ListLocations(cmd.Context(), args[0])
		if err != nil {
			serviceutil.Fatal("failed to list locations", err)
		}

		t := utils.NewTable()
		t.AppendHeader(table.Row{"Location"})
		for _, l := range locations {
			t.AppendRow(table.Row{l})
		}
		t.Render()
	},
}
