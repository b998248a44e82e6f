package db

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/balkashynov/lanes/internal/models"
)

// Store wraps the database connection and carries the two pieces of ambient
// state the services need: the timezone used for calendar-day bucketing and
// the clock (injectable so tests control "now").
type Store struct {
	db  *gorm.DB
	log zerolog.Logger
	loc *time.Location
	now func() time.Time
}

// Options configures a Store. Zero values fall back to the default database
// path, UTC bucketing and a disabled logger.
type Options struct {
	// Path is the sqlite database file, or ":memory:" for tests.
	Path string
	// Location is the timezone used to bucket completions into calendar
	// days. All call sites use this one location so day boundaries stay
	// consistent; defaults to UTC.
	Location *time.Location
	Logger   zerolog.Logger
}

// Open sets up the database connection and runs migrations.
func Open(opts Options) (*Store, error) {
	path := opts.Path
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("failed to get database path: %w", err)
		}
	}

	// Ensure the directory exists
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create lanes directory: %w", err)
		}
	}

	// Open database connection
	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // Quiet by default
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}

	s := &Store{
		db:  gdb,
		log: opts.Logger,
		loc: loc,
		now: time.Now,
	}

	// Run auto-migrations
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return s, nil
}

// DefaultPath returns the path to the sqlite database file.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".lanes", "lanes.db"), nil
}

// migrate creates/updates the database schema
func (s *Store) migrate() error {
	return s.db.AutoMigrate(
		&models.Task{},
		&models.CompletedDay{},
		&models.PomodoroSession{},
	)
}

// Close closes the database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// storeErr logs a persistence failure with enough context to diagnose and
// returns it wrapped as a StoreError.
func (s *Store) storeErr(op, userID, entityID string, err error) error {
	s.log.Error().
		Err(err).
		Str("op", op).
		Str("user_id", userID).
		Str("entity_id", entityID).
		Msg("store operation failed")
	return &StoreError{Op: op, Err: err}
}

// dayOf truncates t to its calendar day in the store's location, normalized
// to midnight UTC for storage so equality checks are exact.
func (s *Store) dayOf(t time.Time) time.Time {
	y, m, d := t.In(s.loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
