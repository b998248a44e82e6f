package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/lanes/internal/db"
	"github.com/balkashynov/lanes/internal/models"
)

var listCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List active tasks lane by lane",
	Run: withStore(func(store *db.Store, cmd *cobra.Command, args []string) error {
		tasks, err := store.ListActive(flagUser)
		if err != nil {
			return err
		}

		if len(tasks) == 0 {
			fmt.Println("No tasks. Use 'lanes add \"task content\"' to create your first task.")
			return nil
		}

		for _, status := range models.ActiveStatuses {
			var lane []models.Task
			for _, task := range tasks {
				if task.Status == status {
					lane = append(lane, task)
				}
			}

			fmt.Printf("%s (%d)\n", status, len(lane))
			fmt.Println(strings.Repeat("-", 60))
			for _, task := range lane {
				marker := " "
				if task.IsImportant {
					marker = "!"
				}

				content := task.Content
				if len(content) > 44 {
					content = content[:41] + "..."
				}

				pomos := ""
				if task.TotalPomodoros > 0 {
					pomos = fmt.Sprintf(" [%d pomo]", task.TotalPomodoros)
				}

				fmt.Printf(" %s %-44s %s%s\n", marker, content, task.ID[:8], pomos)
			}
			if len(lane) == 0 {
				fmt.Println("  (empty)")
			}
			fmt.Println()
		}

		return nil
	}),
}
