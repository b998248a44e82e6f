package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var helpCmd = &cobra.Command{
	Use:   "help",
	Short: "Show comprehensive help for lanes",
	Long:  `Display detailed help for all lanes commands and flags.`,
	Run: func(cmd *cobra.Command, args []string) {
		showCustomHelp()
	},
}

func showCustomHelp() {
	fmt.Print(`
██╗      █████╗ ███╗   ██╗███████╗███████╗
██║     ██╔══██╗████╗  ██║██╔════╝██╔════╝
██║     ███████║██╔██╗ ██║█████╗  ███████╗
██║     ██╔══██║██║╚██╗██║██╔══╝  ╚════██║
███████╗██║  ██║██║ ╚████║███████╗███████║
╚══════╝╚═╝  ╚═╝╚═╝  ╚═══╝╚══════╝╚══════╝

lanes - task lanes, pomodoro sessions, activity heatmap

COMMANDS:

  add <content>           Add a task to a lane
    -l, --lane            Lane: soon|now|hold (default soon)
    -i, --important       Mark the task important

  ls                      List active tasks lane by lane
  board                   Interactive three-lane board
    Quick actions:
      ↑/↓ ←/→       Navigate tasks and lanes
      m             Move task to the next lane
      d             Complete task
      i             Toggle important
      r             Reload
      esc/q         Quit

  done <id>               Complete a task
  reopen <id>             Move a completed task back into a lane
    -l, --lane            Lane to reopen into (default soon)
  rm <id>                 Delete a task

  timer [task-id]         Pomodoro countdown, optionally bound to a task
    -b, --break           BREAK session instead of WORK
    -m, --minutes         Countdown length (default 25 work, 5 break)

  activity [dates...]     Year heatmap counts, or tasks completed on dates
    --any-year            Match month/day across all years

  serve                   Run the HTTP API server
    -a, --addr            Listen address (default :8080)

  seed                    Replace activity data with a year of demo data
    --as-of               End of the seeded year

  version                 Show version information
  help                    Show this help

GLOBAL FLAGS:
  --db                    Database path (default ~/.lanes/lanes.db)
  -u, --user              User id the command acts as (default "local")
  --tz                    IANA timezone for day bucketing (default UTC)
  --log-level             trace|debug|info|warn|error

`)
}
