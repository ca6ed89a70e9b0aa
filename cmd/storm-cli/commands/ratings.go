package commands

import (
	"encoding/json"
	"log/slog"
	"os"

	"schedulestorm-backend/internal/catalog"
	"schedulestorm-backend/lib/serviceutil"

	"github.com/spf13/cobra"
)

func init() {
	ratingsCmd.AddCommand(ratingsImportCmd)
	rootCmd.AddCommand(ratingsCmd)
}

var ratingsCmd = &cobra.Command{
	Use:   "ratings",
	Short: "Maintains the instructor ratings corpus of a university.",
}

var ratingsImportCmd = &cobra.Command{
	Use:   "import <uni> <path/to/ratings.json>",
	Short: "Imports a JSON array of ratings, replacing entries with the same id.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		uni := args[0]

		raw, err := os.ReadFile(args[1])
		if err != nil {
			serviceutil.Fatal("failed to read ratings", err)
		}
		var ratings []catalog.Rating
		err = json.Unmarshal(raw, &ratings)
		if err != nil {
			serviceutil.Fatal("failed to decode ratings", err)
		}

		e := setup()
		defer e.database.Close()
		e.university(uni)

		res, err := e.store.UpsertRatings(cmd.Context(), uni, ratings)
		if err != nil {
			serviceutil.Fatal("failed to import ratings", err)
		}
		for _, reject := range res.Rejected {
			slog.Warn("rejected rating", "err", reject.Error())
		}
		slog.Info("imported ratings", "uni", uni, "written", res.Written, "rejected", len(res.Rejected))
	},
}
