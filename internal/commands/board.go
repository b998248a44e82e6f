package commands

import (
	"github.com/spf13/cobra"

	"github.com/balkashynov/lanes/internal/db"
	"github.com/balkashynov/lanes/internal/tui"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Open the interactive three-lane board",
	Run: withStore(func(store *db.Store, cmd *cobra.Command, args []string) error {
		return tui.RunBoard(store, flagUser)
	}),
}
