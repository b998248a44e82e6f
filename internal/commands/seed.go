package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/lanes/internal/dateparse"
	"github.com/balkashynov/lanes/internal/db"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Replace the user's activity data with a year of demo data",
	Long: `Wipe the user's completed-day records and generate a year of demo
activity: weekday-weighted random completion days with sample tasks.
Useful for trying out the heatmap; destructive for real data.`,
	Run: withStore(func(store *db.Store, cmd *cobra.Command, args []string) error {
		asOfStr, _ := cmd.Flags().GetString("as-of")

		asOf, err := dateparse.Relative(asOfStr, time.Now())
		if err != nil {
			return err
		}

		created, err := store.SeedActivity(flagUser, asOf)
		if err != nil {
			return err
		}

		fmt.Printf("Seeded %d days of demo activity for user %s.\n", created, flagUser)
		return nil
	}),
}

func init() {
	seedCmd.Flags().String("as-of", "today", "end of the seeded year (today, yesterday, N days ago, YYYY-MM-DD)")
}
