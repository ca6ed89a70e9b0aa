package commands

import (
	"encoding/json"
	"os"
	"sort"

	"schedulestorm-backend/cmd/storm-cli/utils"
	"schedulestorm-backend/internal/aggregate"
	"schedulestorm-backend/lib/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var catalogJson *bool

func init() {
	catalogJson = catalogCmd.Flags().Bool("json", false, "Print the catalog payload the server would serve.")
	rootCmd.AddCommand(catalogCmd)
}

type courseRow struct {
	subject   string
	coursenum string
	course    *aggregate.Course
}

func courseRows(c aggregate.Catalog) []courseRow {
	var rows []courseRow
	for subject, courses := range c.BySubject {
		for coursenum, course := range courses {
			rows = append(rows, courseRow{subject, coursenum, course})
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].subject != rows[j].subject {
			return rows[i].subject < rows[j].subject
		}
		return rows[i].coursenum < rows[j].coursenum
	})
	return rows
}

var catalogCmd = &cobra.Command{
	Use:   "catalog <uni> <term> [--json]",
	Short: "Summarizes the catalog of a term the way clients receive it.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		e := setup()
		defer e.database.Close()

		c, err := e.aggregator().GetCatalog(cmd.Context(), args[0], args[1])
		if err != nil {
			serviceutil.Fatal("failed to build catalog", err)
		}

		if *catalogJson {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			err = enc.Encode(c)
			if err != nil {
				serviceutil.Fatal("failed to encode catalog", err)
			}
			return
		}

		t := utils.NewTable()
		t.AppendHeader(table.Row{"Subject", "Course", "Name", "Sections"})
		sections := 0
		for _, row := range courseRows(c) {
			name := ""
			if row.course.Description.Value != nil {
				name = row.course.Description.Value.Name
			}
			t.AppendRow(table.Row{row.subject, row.coursenum, name, len(row.course.Classes)})
			sections += len(row.course.Classes)
		}
		t.AppendFooter(table.Row{"", "", "Matched teachers", len(c.Ratings)})
		t.AppendFooter(table.Row{"", "", "Total", sections})
		t.Render()
	},
}
