package db

import (
	"errors"
	"math/rand"
	"time"

	"gorm.io/gorm"

	"github.com/balkashynov/lanes/internal/dateparse"
	"github.com/balkashynov/lanes/internal/models"
)

// DayCount is one heatmap cell backed by a CompletedDay record.
type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
	Note  string `json:"note,omitempty"`
}

// ensureCompletedDay lazily creates the CompletedDay record for the calendar
// day containing at. Existing records are left alone; a create that loses a
// race to a concurrent completion is tolerated because the unique
// (user_id, date) index makes the duplicate attempt a harmless no-op.
func (s *Store) ensureCompletedDay(userID string, at time.Time) error {
	day := s.dayOf(at)

	var existing models.CompletedDay
	err := s.db.Where("user_id = ? AND date = ?", userID, day).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return s.storeErr("ensure completed day", userID, day.Format(models.DayFormat), err)
	}

	record := models.CompletedDay{UserID: userID, Date: day}
	if err := s.db.Create(&record).Error; err != nil {
		// Re-check: a concurrent request may have created the row between
		// our read and write.
		var again models.CompletedDay
		if recheck := s.db.Where("user_id = ? AND date = ?", userID, day).First(&again).Error; recheck == nil {
			return nil
		}
		return s.storeErr("ensure completed day", userID, day.Format(models.DayFormat), err)
	}
	return nil
}

// ToggleDay marks date as completed if it has no record yet, or removes the
// record if it does. Returns true when the day was added.
func (s *Store) ToggleDay(userID, date string) (bool, error) {
	day, err := dateparse.Day(date)
	if err != nil {
		return false, errDate(date)
	}

	var existing models.CompletedDay
	findErr := s.db.Where("user_id = ? AND date = ?", userID, day).First(&existing).Error
	switch {
	case findErr == nil:
		if err := s.db.Delete(&existing).Error; err != nil {
			return false, s.storeErr("toggle day", userID, date, err)
		}
		return false, nil
	case errors.Is(findErr, gorm.ErrRecordNotFound):
		record := models.CompletedDay{UserID: userID, Date: day}
		if err := s.db.Create(&record).Error; err != nil {
			return false, s.storeErr("toggle day", userID, date, err)
		}
		return true, nil
	default:
		return false, s.storeErr("toggle day", userID, date, findErr)
	}
}

// UpdateDayNote sets the note on an existing CompletedDay.
func (s *Store) UpdateDayNote(userID, date, note string) (*models.CompletedDay, error) {
	day, err := dateparse.Day(date)
	if err != nil {
		return nil, errDate(date)
	}

	var existing models.CompletedDay
	findErr := s.db.Where("user_id = ? AND date = ?", userID, day).First(&existing).Error
	if errors.Is(findErr, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if findErr != nil {
		return nil, s.storeErr("update day note", userID, date, findErr)
	}

	if err := s.db.Model(&existing).Update("note", note).Error; err != nil {
		return nil, s.storeErr("update day note", userID, date, err)
	}
	existing.Note = note
	return &existing, nil
}

// YearDays returns the user's CompletedDay records for the trailing year.
// Counts come from Task records, not from the day rows themselves, because
// the same day may be crossed by many independent completion events.
func (s *Store) YearDays(userID string, asOf time.Time) ([]DayCount, error) {
	if asOf.IsZero() {
		asOf = s.now()
	}
	since := s.dayOf(asOf.AddDate(-1, 0, 0))

	var days []models.CompletedDay
	err := s.db.
		Where("user_id = ? AND date >= ?", userID, since).
		Order("date ASC").
		Find(&days).Error
	if err != nil {
		return nil, s.storeErr("list days", userID, "", err)
	}

	activity, err := s.YearActivity(userID, asOf)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int, len(activity))
	for _, a := range activity {
		counts[a.Date] = a.Count
	}

	out := make([]DayCount, 0, len(days))
	for _, d := range days {
		key := d.DayString()
		out = append(out, DayCount{Date: key, Count: counts[key], Note: d.Note})
	}
	return out, nil
}

// SeedActivity wipes the user's CompletedDays and generates a year of demo
// data: weekday-weighted random completion days, each with one to five
// completed tasks. Returns the number of days created.
func (s *Store) SeedActivity(userID string, asOf time.Time) (int, error) {
	if asOf.IsZero() {
		asOf = s.now()
	}

	if err := s.db.Where("user_id = ?", userID).Delete(&models.CompletedDay{}).Error; err != nil {
		return 0, s.storeErr("seed activity", userID, "", err)
	}

	created := 0
	start := s.dayOf(asOf.AddDate(-1, 0, 0))
	end := s.dayOf(asOf)

	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if rand.Float64() >= seedProbability(day) {
			continue
		}

		record := models.CompletedDay{UserID: userID, Date: day}
		if err := s.db.Create(&record).Error; err != nil {
			return created, s.storeErr("seed activity", userID, record.DayString(), err)
		}

		// Completion timestamps land mid-day so they bucket into this
		// calendar day in any reasonable timezone.
		completedAt := day.Add(12 * time.Hour)
		taskCount := rand.Intn(5) + 1
		for i := 0; i < taskCount; i++ {
			task := models.Task{
				UserID:      userID,
				Content:     "Sample task for " + record.DayString(),
				Status:      models.StatusCompleted,
				IsImportant: rand.Float64() > 0.7,
				Position:    i,
				CompletedAt: &completedAt,
			}
			if err := s.db.Create(&task).Error; err != nil {
				return created, s.storeErr("seed activity", userID, record.DayString(), err)
			}
		}
		created++
	}

	return created, nil
}

// seedProbability shapes the demo heatmap: busier weekdays, streaky months,
// quiet months.
func seedProbability(day time.Time) float64 {
	weekday := day.Weekday()
	weekend := weekday == time.Saturday || weekday == time.Sunday

	switch day.Month() {
	case time.February, time.June, time.October:
		if weekend {
			return 0.6
		}
		return 0.9
	case time.April, time.August, time.December:
		if weekend {
			return 0.2
		}
		return 0.4
	default:
		if weekend {
			return 0.3
		}
		return 0.7
	}
}
