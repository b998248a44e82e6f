package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/lanes/internal/db"
	"github.com/balkashynov/lanes/internal/models"
)

// resolveTask matches an id or unique id prefix against the user's tasks so
// the CLI can use the short ids 'lanes ls' prints.
func resolveTask(store *db.Store, userID, ref string) (*models.Task, error) {
	active, err := store.ListActive(userID)
	if err != nil {
		return nil, err
	}
	completed, err := store.RecentCompleted(userID, 0)
	if err != nil {
		return nil, err
	}

	var match *models.Task
	for _, task := range append(active, completed...) {
		if task.ID == ref {
			t := task
			return &t, nil
		}
		if strings.HasPrefix(task.ID, ref) {
			if match != nil {
				return nil, fmt.Errorf("task id %q is ambiguous", ref)
			}
			t := task
			match = &t
		}
	}
	if match == nil {
		return nil, db.ErrNotFound
	}
	return match, nil
}

var doneCmd = &cobra.Command{
	Use:   "done [task-id]",
	Short: "Complete a task",
	Args:  cobra.ExactArgs(1),
	Run: withStore(func(store *db.Store, cmd *cobra.Command, args []string) error {
		task, err := resolveTask(store, flagUser, args[0])
		if err != nil {
			return err
		}

		completed := models.StatusCompleted
		task, err = store.UpdateTask(flagUser, task.ID, db.UpdateTaskRequest{Status: &completed})
		if err != nil {
			return err
		}

		fmt.Printf("Completed: %s\n", task.Content)
		if task.CompletedAt != nil {
			fmt.Printf("Completed at: %s\n", task.CompletedAt.Format("15:04:05"))
		}
		return nil
	}),
}

var reopenCmd = &cobra.Command{
	Use:   "reopen [task-id]",
	Short: "Move a completed task back into a lane",
	Args:  cobra.ExactArgs(1),
	Run: withStore(func(store *db.Store, cmd *cobra.Command, args []string) error {
		lane, _ := cmd.Flags().GetString("lane")

		task, err := resolveTask(store, flagUser, args[0])
		if err != nil {
			return err
		}

		status := strings.ToUpper(lane)
		task, err = store.UpdateTask(flagUser, task.ID, db.UpdateTaskRequest{Status: &status})
		if err != nil {
			return err
		}

		fmt.Printf("Reopened into %s: %s\n", task.Status, task.Content)
		return nil
	}),
}

var rmCmd = &cobra.Command{
	Use:   "rm [task-id]",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	Run: withStore(func(store *db.Store, cmd *cobra.Command, args []string) error {
		task, err := resolveTask(store, flagUser, args[0])
		if err != nil {
			return err
		}

		if err := store.DeleteTask(flagUser, task.ID); err != nil {
			return err
		}

		fmt.Printf("Deleted: %s\n", task.Content)
		return nil
	}),
}

func init() {
	reopenCmd.Flags().StringP("lane", "l", models.StatusSoon, "lane to reopen into: soon|now|hold")
}
