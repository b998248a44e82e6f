package db

import (
	"sort"
	"time"

	"github.com/balkashynov/lanes/internal/dateparse"
	"github.com/balkashynov/lanes/internal/models"
)

// DayActivity is one non-empty heatmap cell: the tasks completed on a
// calendar day and the completed WORK sessions attached to those tasks.
type DayActivity struct {
	Date      string `json:"date"`
	Count     int    `json:"count"`
	Pomodoros int    `json:"pomodoros"`
}

// YearActivity buckets the user's completions from the trailing year of asOf
// by calendar day in the store's location. Days with zero completions are
// omitted; the presentation layer fills in the empty cells.
func (s *Store) YearActivity(userID string, asOf time.Time) ([]DayActivity, error) {
	if asOf.IsZero() {
		asOf = s.now()
	}
	since := asOf.AddDate(-1, 0, 0)

	var tasks []models.Task
	err := s.db.
		Where("user_id = ? AND status = ? AND completed_at IS NOT NULL AND completed_at >= ? AND completed_at <= ?",
			userID, models.StatusCompleted, since, asOf).
		Find(&tasks).Error
	if err != nil {
		return nil, s.storeErr("year activity", userID, "", err)
	}

	counts := make(map[string]int)
	dayByTask := make(map[string]string, len(tasks))
	taskIDs := make([]string, 0, len(tasks))
	for _, t := range tasks {
		key := t.CompletedAt.In(s.loc).Format(models.DayFormat)
		counts[key]++
		dayByTask[t.ID] = key
		taskIDs = append(taskIDs, t.ID)
	}

	pomodoros := make(map[string]int)
	if len(taskIDs) > 0 {
		var sessions []models.PomodoroSession
		err := s.db.
			Where("user_id = ? AND type = ? AND completed_at IS NOT NULL AND task_id IN ?",
				userID, models.SessionWork, taskIDs).
			Find(&sessions).Error
		if err != nil {
			return nil, s.storeErr("year activity", userID, "", err)
		}
		for _, session := range sessions {
			if session.TaskID == nil {
				continue
			}
			pomodoros[dayByTask[*session.TaskID]]++
		}
	}

	out := make([]DayActivity, 0, len(counts))
	for date, count := range counts {
		out = append(out, DayActivity{Date: date, Count: count, Pomodoros: pomodoros[date]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

// CompletedOnDates returns completed tasks whose completion fell on any of
// the given YYYY-MM-DD dates, exact year included, flattened into one
// sequence sorted by completion time descending.
//
// All date strings are validated before any store read; after that a failed
// read for one date only drops that date's contribution.
func (s *Store) CompletedOnDates(userID string, dates []string) ([]models.Task, error) {
	days := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		day, err := dateparse.Day(d)
		if err != nil {
			return nil, errDate(d)
		}
		days = append(days, day)
	}

	var all []models.Task
	for i, day := range days {
		y, m, d := day.Date()
		start := time.Date(y, m, d, 0, 0, 0, 0, s.loc)
		end := start.AddDate(0, 0, 1)

		var tasks []models.Task
		err := s.db.
			Where("user_id = ? AND status = ? AND completed_at >= ? AND completed_at < ?",
				userID, models.StatusCompleted, start, end).
			Find(&tasks).Error
		if err != nil {
			// One bad date must not sink the whole batch.
			s.log.Warn().Err(err).
				Str("user_id", userID).
				Str("date", dates[i]).
				Msg("skipping date in completed-on query")
			continue
		}
		all = append(all, tasks...)
	}

	sortByCompletedDesc(all)
	return all, nil
}

// CompletedOnMonthDays is the year-agnostic variant of CompletedOnDates: a
// task completed on March 1st of any year matches the date "03-01" (or any
// "YYYY-03-01"). Kept as its own explicitly-named capability so exact-date
// callers never get cross-year surprises.
func (s *Store) CompletedOnMonthDays(userID string, dates []string) ([]models.Task, error) {
	type monthDay struct {
		month time.Month
		day   int
	}
	wanted := make([]monthDay, 0, len(dates))
	for _, d := range dates {
		m, day, err := dateparse.MonthDay(d)
		if err != nil {
			return nil, errDate(d)
		}
		wanted = append(wanted, monthDay{month: m, day: day})
	}

	var completed []models.Task
	err := s.db.
		Where("user_id = ? AND status = ? AND completed_at IS NOT NULL",
			userID, models.StatusCompleted).
		Find(&completed).Error
	if err != nil {
		return nil, s.storeErr("completed on month days", userID, "", err)
	}

	var all []models.Task
	for _, task := range completed {
		local := task.CompletedAt.In(s.loc)
		for _, w := range wanted {
			if local.Month() == w.month && local.Day() == w.day {
				all = append(all, task)
				break
			}
		}
	}

	sortByCompletedDesc(all)
	return all, nil
}

func sortByCompletedDesc(tasks []models.Task) {
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].CompletedAt.After(*tasks[j].CompletedAt)
	})
}
