package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/balkashynov/lanes/internal/db"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	flagDB       string
	flagUser     string
	flagTimezone string
	flagLogLevel string
)

var rootCmd = &cobra.Command{
	Use:   "lanes",
	Short: "A task board with pomodoro focus sessions and an activity heatmap",
	Long: `lanes keeps your tasks in three lanes (soon, now, hold), ties pomodoro
focus sessions to them and tracks a year-long heatmap of completed days.
Run it as an API server with 'lanes serve' or use it from the terminal.`,
}

// newLogger builds the zerolog logger shared by every command.
func newLogger() zerolog.Logger {
	level, err := zerolog.ParseLevel(flagLogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "2006-01-02 15:04:05"}).
		Level(level).
		With().Timestamp().Logger()
}

// openStore opens the database with the global flags applied.
func openStore() (*db.Store, error) {
	loc := time.UTC
	if flagTimezone != "" {
		parsed, err := time.LoadLocation(flagTimezone)
		if err != nil {
			return nil, fmt.Errorf("unknown timezone %q: %w", flagTimezone, err)
		}
		loc = parsed
	}

	return db.Open(db.Options{
		Path:     flagDB,
		Location: loc,
		Logger:   newLogger(),
	})
}

// withStore wraps a command function so the store is opened first and closed
// after.
func withStore(fn func(store *db.Store, cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		store, err := openStore()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()

		if err := fn(store, cmd, args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "sqlite database path (default ~/.lanes/lanes.db)")
	rootCmd.PersistentFlags().StringVarP(&flagUser, "user", "u", "local", "user id the command acts as")
	rootCmd.PersistentFlags().StringVar(&flagTimezone, "tz", "", "IANA timezone for day bucketing (default UTC)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "log level: trace|debug|info|warn|error")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(reopenCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(timerCmd)
	rootCmd.AddCommand(activityCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(helpCmd)
	rootCmd.AddCommand(versionCmd)
}
