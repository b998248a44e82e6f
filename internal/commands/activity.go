package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/lanes/internal/db"
)

var activityCmd = &cobra.Command{
	Use:   "activity [dates...]",
	Short: "Show completion activity",
	Long: `Without arguments, prints the trailing year's per-day completion counts.
With one or more YYYY-MM-DD dates, lists the tasks completed on those
days; --any-year matches the month and day across all years.`,
	Run: withStore(func(store *db.Store, cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			activity, err := store.YearActivity(flagUser, time.Time{})
			if err != nil {
				return err
			}
			if len(activity) == 0 {
				fmt.Println("No completions in the last year.")
				return nil
			}
			for _, day := range activity {
				pomos := ""
				if day.Pomodoros > 0 {
					pomos = fmt.Sprintf("  (%d pomodoros)", day.Pomodoros)
				}
				fmt.Printf("%s  %3d completed%s\n", day.Date, day.Count, pomos)
			}
			return nil
		}

		anyYear, _ := cmd.Flags().GetBool("any-year")

		var err error
		var completed = make([]string, 0)
		if anyYear {
			found, ferr := store.CompletedOnMonthDays(flagUser, args)
			err = ferr
			for _, t := range found {
				completed = append(completed, fmt.Sprintf("%s  %s", t.CompletedAt.Format("2006-01-02 15:04"), t.Content))
			}
		} else {
			found, ferr := store.CompletedOnDates(flagUser, args)
			err = ferr
			for _, t := range found {
				completed = append(completed, fmt.Sprintf("%s  %s", t.CompletedAt.Format("2006-01-02 15:04"), t.Content))
			}
		}
		if err != nil {
			return err
		}

		if len(completed) == 0 {
			fmt.Println("Nothing completed on those dates.")
			return nil
		}
		for _, line := range completed {
			fmt.Println(line)
		}
		return nil
	}),
}

func init() {
	activityCmd.Flags().Bool("any-year", false, "match month and day across all years")
}
