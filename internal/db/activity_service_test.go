package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/lanes/internal/models"
)

func completeAt(t *testing.T, s *Store, userID, content string, at time.Time) *models.Task {
	t.Helper()
	setClock(s, at)
	task := mustCreate(t, s, userID, content, models.StatusSoon)
	return mustComplete(t, s, userID, task.ID)
}

func TestYearActivityCounts(t *testing.T) {
	s := newTestStore(t)

	completeAt(t, s, "u1", "a", time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))
	completeAt(t, s, "u1", "b", time.Date(2024, 3, 1, 17, 0, 0, 0, time.UTC))
	completeAt(t, s, "u1", "c", time.Date(2024, 3, 2, 8, 0, 0, 0, time.UTC))

	activity, err := s.YearActivity("u1", time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	require.Len(t, activity, 2)
	assert.Equal(t, DayActivity{Date: "2024-03-01", Count: 2}, activity[0])
	assert.Equal(t, DayActivity{Date: "2024-03-02", Count: 1}, activity[1])
}

func TestYearActivityWindow(t *testing.T) {
	s := newTestStore(t)

	asOf := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	completeAt(t, s, "u1", "old", asOf.AddDate(-1, -1, 0))
	completeAt(t, s, "u1", "recent", asOf.AddDate(0, -1, 0))

	activity, err := s.YearActivity("u1", asOf)
	require.NoError(t, err)
	require.Len(t, activity, 1)
	assert.Equal(t, "2024-02-01", activity[0].Date)
}

func TestYearActivityExcludesReopened(t *testing.T) {
	s := newTestStore(t)

	at := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	task := completeAt(t, s, "u1", "x", at)

	soon := models.StatusSoon
	_, err := s.UpdateTask("u1", task.ID, UpdateTaskRequest{Status: &soon})
	require.NoError(t, err)

	activity, err := s.YearActivity("u1", at.Add(time.Hour))
	require.NoError(t, err)
	assert.Empty(t, activity)
}

func TestYearActivityPomodoros(t *testing.T) {
	s := newTestStore(t)
	at := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	task := completeAt(t, s, "u1", "focus", at)

	// Two completed WORK sessions count, a BREAK and an abandoned WORK don't.
	for i := 0; i < 2; i++ {
		session, err := s.StartSession("u1", models.SessionWork, &task.ID)
		require.NoError(t, err)
		_, err = s.CompleteSession("u1", session.ID)
		require.NoError(t, err)
	}
	breakSession, err := s.StartSession("u1", models.SessionBreak, &task.ID)
	require.NoError(t, err)
	_, err = s.CompleteSession("u1", breakSession.ID)
	require.NoError(t, err)
	_, err = s.StartSession("u1", models.SessionWork, &task.ID)
	require.NoError(t, err)

	activity, err := s.YearActivity("u1", at.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, activity, 1)
	assert.Equal(t, 1, activity[0].Count)
	assert.Equal(t, 2, activity[0].Pomodoros)
}

func TestYearActivityBucketsInStoreLocation(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	s, err := Open(Options{Path: ":memory:", Location: loc})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	// 03:00 UTC on March 2nd is still March 1st at UTC-5.
	completeAt(t, s, "u1", "late night", time.Date(2024, 3, 2, 3, 0, 0, 0, time.UTC))

	activity, err := s.YearActivity("u1", time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, activity, 1)
	assert.Equal(t, "2024-03-01", activity[0].Date)
}

func TestCompletedOnDates(t *testing.T) {
	s := newTestStore(t)

	a := completeAt(t, s, "u1", "first", time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))
	b := completeAt(t, s, "u1", "second", time.Date(2024, 3, 1, 17, 0, 0, 0, time.UTC))
	c := completeAt(t, s, "u1", "other day", time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC))
	completeAt(t, s, "u1", "unrequested", time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC))
	// A different year on the same month/day must not match.
	completeAt(t, s, "u1", "last year", time.Date(2023, 3, 1, 9, 0, 0, 0, time.UTC))

	tasks, err := s.CompletedOnDates("u1", []string{"2024-03-01", "2024-03-05"})
	require.NoError(t, err)
	require.Len(t, tasks, 3)

	// One combined sequence, completed_at descending across all dates.
	assert.Equal(t, c.ID, tasks[0].ID)
	assert.Equal(t, b.ID, tasks[1].ID)
	assert.Equal(t, a.ID, tasks[2].ID)
}

func TestCompletedOnDatesValidation(t *testing.T) {
	s := newTestStore(t)

	_, err := s.CompletedOnDates("u1", []string{"2024-03-01", "not-a-date"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Reason, "not-a-date")
}

func TestCompletedOnMonthDays(t *testing.T) {
	s := newTestStore(t)

	this := completeAt(t, s, "u1", "this year", time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))
	last := completeAt(t, s, "u1", "last year", time.Date(2023, 3, 1, 9, 0, 0, 0, time.UTC))
	completeAt(t, s, "u1", "different day", time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC))

	tasks, err := s.CompletedOnMonthDays("u1", []string{"2024-03-01"})
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, this.ID, tasks[0].ID)
	assert.Equal(t, last.ID, tasks[1].ID)

	// Year-less form matches the same way.
	tasks, err = s.CompletedOnMonthDays("u1", []string{"03-01"})
	require.NoError(t, err)
	assert.Len(t, tasks, 2)
}

func TestActivityOwnership(t *testing.T) {
	s := newTestStore(t)
	at := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	completeAt(t, s, "u1", "mine", at)
	completeAt(t, s, "u2", "theirs", at)

	activity, err := s.YearActivity("u1", at.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, activity, 1)
	assert.Equal(t, 1, activity[0].Count)

	tasks, err := s.CompletedOnDates("u1", []string{"2024-03-01"})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "mine", tasks[0].Content)
}
