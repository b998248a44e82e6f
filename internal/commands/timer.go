package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/lanes/internal/db"
	"github.com/balkashynov/lanes/internal/models"
	"github.com/balkashynov/lanes/internal/tui"
)

var timerCmd = &cobra.Command{
	Use:   "timer [task-id]",
	Short: "Run a pomodoro countdown, optionally bound to a task",
	Long: `Run a pomodoro countdown. A WORK session bound to a task credits the
task with one pomodoro when the countdown finishes (or when completed
early with 'c'). Abandoning the timer leaves the session uncompleted.`,
	Args: cobra.MaximumNArgs(1),
	Run: withStore(func(store *db.Store, cmd *cobra.Command, args []string) error {
		isBreak, _ := cmd.Flags().GetBool("break")
		minutes, _ := cmd.Flags().GetInt("minutes")

		sessionType := models.SessionWork
		if isBreak {
			sessionType = models.SessionBreak
		}

		var taskID *string
		if len(args) == 1 {
			task, err := resolveTask(store, flagUser, args[0])
			if err != nil {
				return err
			}
			taskID = &task.ID
		}

		if minutes <= 0 {
			if isBreak {
				minutes = 5
			} else {
				minutes = 25
			}
		}

		return tui.RunTimer(store, flagUser, sessionType, taskID, time.Duration(minutes)*time.Minute)
	}),
}

func init() {
	timerCmd.Flags().BoolP("break", "b", false, "run a BREAK session instead of WORK")
	timerCmd.Flags().IntP("minutes", "m", 0, "countdown length in minutes (default 25 work, 5 break)")
}
