package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DayFormat is the wire format for calendar dates (YYYY-MM-DD).
const DayFormat = "2006-01-02"

// CompletedDay marks a calendar date on which a user completed at least one
// task. Date is stored at midnight UTC of the bucketed day; the unique
// (user_id, date) index makes concurrent create attempts harmless.
//
// The heatmap's authoritative counts are derived from Task.CompletedAt, not
// from this table; CompletedDay exists so day-level records (notes, manual
// toggles) have somewhere to live.
type CompletedDay struct {
	ID        string    `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	UserID string    `gorm:"not null;uniqueIndex:idx_days_user_date" json:"user_id"`
	Date   time.Time `gorm:"not null;uniqueIndex:idx_days_user_date" json:"date"`
	Note   string    `json:"note"`
}

// BeforeCreate assigns a fresh id unless the caller supplied one.
func (d *CompletedDay) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}

// DayString formats the record's date in wire format.
func (d *CompletedDay) DayString() string {
	return d.Date.Format(DayFormat)
}
