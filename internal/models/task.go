package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Task statuses. SOON, NOW and HOLD are the three active lanes.
// COMPLETED is re-enterable: moving a task back to a lane clears CompletedAt.
const (
	StatusSoon      = "SOON"
	StatusNow       = "NOW"
	StatusHold      = "HOLD"
	StatusCompleted = "COMPLETED"
)

// ActiveStatuses lists the lanes in display order.
var ActiveStatuses = []string{StatusSoon, StatusNow, StatusHold}

// Task represents a single todo item owned by one user
type Task struct {
	ID        string    `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID      string `gorm:"not null;index:idx_tasks_user_status,priority:1" json:"user_id"`
	Content     string `gorm:"not null" json:"content"`
	Status      string `gorm:"not null;default:SOON;index:idx_tasks_user_status,priority:2" json:"status"`
	IsImportant bool   `gorm:"not null;default:false" json:"is_important"`
	// Position orders tasks within a (user, status) lane. New tasks append
	// to the end; reordering a lane rewrites positions from the caller side.
	Position       int        `gorm:"not null;default:0" json:"position"`
	CompletedAt    *time.Time `json:"completed_at"`
	TotalPomodoros int        `gorm:"not null;default:0" json:"total_pomodoros"`

	// Relationships
	Sessions []PomodoroSession `gorm:"foreignKey:TaskID" json:"-"`
}

// BeforeCreate assigns a fresh id unless the caller supplied one.
func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// IsValidStatus reports whether s is one of the four task statuses.
func IsValidStatus(s string) bool {
	return s == StatusCompleted || IsActiveStatus(s)
}

// IsActiveStatus reports whether s is one of the three lanes.
func IsActiveStatus(s string) bool {
	return s == StatusSoon || s == StatusNow || s == StatusHold
}
