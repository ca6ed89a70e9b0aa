package commands

import (
	"fmt"

	"schedulestorm-backend/cmd/storm-cli/utils"
	"schedulestorm-backend/internal/identity"
	"schedulestorm-backend/lib/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var matchThreshold *float64

func init() {
	matchThreshold = matchCmd.Flags().Float64("threshold", 0.85, "Minimum similarity for a suggestion to be shown.")
	rootCmd.AddCommand(matchCmd)
}

var matchCmd = &cobra.Command{
	Use:   "match <uni> <term> [--threshold 0.85]",
	Short: "Shows how the teachers of a term resolve against the ratings corpus.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		uni, term := args[0], args[1]

		e := setup()
		defer e.database.Close()

		sections, err := e.store.ListSections(cmd.Context(), uni, term)
		if err != nil {
			serviceutil.Fatal("failed to list sections", err)
		}
		corpus, err := e.store.ListRatings(cmd.Context(), uni)
		if err != nil {
			serviceutil.Fatal("failed to list ratings", err)
		}

		var teachers []string
		for _, s := range sections {
			teachers = append(teachers, s.Teachers...)
		}

		matched := utils.NewTable()
		matched.AppendHeader(table.Row{"Teacher", "Tier", "Rating Id", "Corpus Name"})
		results := identity.MatchDetailed(teachers, corpus)
		for _, res := range results {
			matched.AppendRow(table.Row{res.Teacher, res.Tier, res.Rating.ID, res.Rating.FullName()})
		}
		matched.Render()

		unmatched := identity.Unmatched(teachers, corpus)
		fmt.Printf("%d matched, %d unmatched\n", len(results), len(unmatched))
		if len(unmatched) == 0 {
			return
		}

		suggestions := utils.NewTable()
		suggestions.AppendHeader(table.Row{"Teacher", "Suggestion", "Rating Id", "Score"})
		for _, s := range identity.Suggest(unmatched, corpus, *matchThreshold) {
			suggestions.AppendRow(table.Row{s.Teacher, s.Candidate.FullName(), s.Candidate.ID, fmt.Sprintf("%.3f", s.Score)})
		}
		suggestions.Render()
	},
}
