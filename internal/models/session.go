package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Pomodoro session types. Only WORK sessions count toward a task's
// TotalPomodoros.
const (
	SessionWork  = "WORK"
	SessionBreak = "BREAK"
)

// PomodoroSession represents one timed pomodoro interval. A session is
// active while CompletedAt is nil and completed once it is set.
type PomodoroSession struct {
	ID        string    `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	UserID      string     `gorm:"not null;index" json:"user_id"`
	Type        string     `gorm:"not null" json:"type"`
	TaskID      *string    `gorm:"index" json:"task_id"`
	CompletedAt *time.Time `json:"completed_at"`
	// Counted guards the TotalPomodoros increment: a session credits a task
	// at most once, no matter how completion and assignment interleave.
	Counted bool `gorm:"not null;default:false" json:"-"`
}

// BeforeCreate assigns a fresh id unless the caller supplied one.
func (s *PomodoroSession) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// Completed reports whether the session has finished.
func (s *PomodoroSession) Completed() bool {
	return s.CompletedAt != nil
}

// IsValidSessionType reports whether t is WORK or BREAK.
func IsValidSessionType(t string) bool {
	return t == SessionWork || t == SessionBreak
}
