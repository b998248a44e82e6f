package commands

import (
	"github.com/spf13/cobra"

	"github.com/balkashynov/lanes/internal/db"
	"github.com/balkashynov/lanes/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the lanes HTTP API server",
	Long: `Run the JSON API that the web client talks to. Authentication is
expected to happen in front of this server; requests carry the caller's
identity in the X-User-ID header.`,
	Run: withStore(func(store *db.Store, cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")

		srv := server.NewServer(store, newLogger())
		return srv.Run(addr)
	}),
}

func init() {
	serveCmd.Flags().StringP("addr", "a", ":8080", "listen address")
}
