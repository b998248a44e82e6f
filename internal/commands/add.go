package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/lanes/internal/db"
	"github.com/balkashynov/lanes/internal/models"
)

var addCmd = &cobra.Command{
	Use:   "add [task content]",
	Short: "Add a new task to a lane",
	Long: `Add a new task to one of the three lanes.

Examples:
  lanes add "buy milk"
  lanes add "call mom" --lane now --important`,
	Args: cobra.MinimumNArgs(1),
	Run: withStore(func(store *db.Store, cmd *cobra.Command, args []string) error {
		lane, _ := cmd.Flags().GetString("lane")
		important, _ := cmd.Flags().GetBool("important")

		task, err := store.CreateTask(flagUser, db.CreateTaskRequest{
			Content:     strings.Join(args, " "),
			Status:      strings.ToUpper(lane),
			IsImportant: important,
		})
		if err != nil {
			return err
		}

		marker := ""
		if task.IsImportant {
			marker = " (!)"
		}
		fmt.Printf("Added to %s at position %d: %s%s\n", task.Status, task.Position, task.Content, marker)
		return nil
	}),
}

func init() {
	addCmd.Flags().StringP("lane", "l", models.StatusSoon, "lane: soon|now|hold")
	addCmd.Flags().BoolP("important", "i", false, "mark the task important")
}
