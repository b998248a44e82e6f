package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/lanes/internal/db"
	"github.com/balkashynov/lanes/internal/models"
)

func newTestStore(t *testing.T) *db.Store {
	t.Helper()
	s, err := db.Open(db.Options{Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func seedTask(t *testing.T, s *db.Store, userID, content, status string) *models.Task {
	t.Helper()
	task, err := s.CreateTask(userID, db.CreateTaskRequest{Content: content, Status: status})
	require.NoError(t, err)
	return task
}

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// ============================================================
// Board model
// ============================================================

func TestBoardGroupsTasksByLane(t *testing.T) {
	s := newTestStore(t)
	seedTask(t, s, "u1", "plan trip", models.StatusSoon)
	seedTask(t, s, "u1", "write report", models.StatusNow)
	seedTask(t, s, "u1", "waiting on reply", models.StatusHold)
	seedTask(t, s, "u1", "second now", models.StatusNow)

	m := NewBoardModel(s, "u1")
	require.NoError(t, m.err)

	assert.Len(t, m.lanes[0], 1)
	assert.Len(t, m.lanes[1], 2)
	assert.Len(t, m.lanes[2], 1)
	assert.Equal(t, "plan trip", m.lanes[0][0].Content)
}

func TestBoardIgnoresOtherUsers(t *testing.T) {
	s := newTestStore(t)
	seedTask(t, s, "u1", "mine", models.StatusNow)
	seedTask(t, s, "u2", "theirs", models.StatusNow)

	m := NewBoardModel(s, "u1")
	require.NoError(t, m.err)

	require.Len(t, m.lanes[1], 1)
	assert.Equal(t, "mine", m.lanes[1][0].Content)
}

func TestBoardNavigation(t *testing.T) {
	s := newTestStore(t)
	seedTask(t, s, "u1", "a", models.StatusSoon)
	seedTask(t, s, "u1", "b", models.StatusSoon)
	seedTask(t, s, "u1", "c", models.StatusNow)

	var m tea.Model = NewBoardModel(s, "u1")

	m, _ = m.Update(keyPress('j'))
	board := m.(BoardModel)
	assert.Equal(t, 1, board.cursor)

	// Bottom of the lane, down is a no-op
	m, _ = m.Update(keyPress('j'))
	board = m.(BoardModel)
	assert.Equal(t, 1, board.cursor)

	// Switching lanes clamps the cursor to the shorter lane
	m, _ = m.Update(keyPress('l'))
	board = m.(BoardModel)
	assert.Equal(t, 1, board.lane)
	assert.Equal(t, 0, board.cursor)

	m, _ = m.Update(keyPress('h'))
	board = m.(BoardModel)
	assert.Equal(t, 0, board.lane)
}

func TestBoardMoveAdvancesLane(t *testing.T) {
	s := newTestStore(t)
	task := seedTask(t, s, "u1", "ship it", models.StatusSoon)

	var m tea.Model = NewBoardModel(s, "u1")
	m, _ = m.Update(keyPress('m'))

	board := m.(BoardModel)
	require.NoError(t, board.err)
	assert.Empty(t, board.lanes[0])
	require.Len(t, board.lanes[1], 1)

	moved, err := s.Task("u1", task.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusNow, moved.Status)
}

func TestBoardCompleteRemovesTask(t *testing.T) {
	s := newTestStore(t)
	task := seedTask(t, s, "u1", "ship it", models.StatusSoon)

	var m tea.Model = NewBoardModel(s, "u1")
	m, _ = m.Update(keyPress('d'))

	board := m.(BoardModel)
	require.NoError(t, board.err)
	assert.Empty(t, board.lanes[0])

	done, err := s.Task("u1", task.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, done.Status)
	assert.NotNil(t, done.CompletedAt)
}

func TestBoardToggleImportant(t *testing.T) {
	s := newTestStore(t)
	seedTask(t, s, "u1", "ship it", models.StatusSoon)

	var m tea.Model = NewBoardModel(s, "u1")
	m, _ = m.Update(keyPress('i'))

	board := m.(BoardModel)
	require.NoError(t, board.err)
	assert.True(t, board.lanes[0][0].IsImportant)

	m, _ = m.Update(keyPress('i'))
	board = m.(BoardModel)
	assert.False(t, board.lanes[0][0].IsImportant)
}

func TestBoardKeysOnEmptyLane(t *testing.T) {
	s := newTestStore(t)

	var m tea.Model = NewBoardModel(s, "u1")
	m, _ = m.Update(keyPress('m'))
	m, _ = m.Update(keyPress('d'))

	board := m.(BoardModel)
	assert.NoError(t, board.err)
}

func TestBoardQuit(t *testing.T) {
	s := newTestStore(t)
	m := NewBoardModel(s, "u1")

	_, cmd := m.Update(keyPress('q'))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestBoardViewRendersLanes(t *testing.T) {
	s := newTestStore(t)
	seedTask(t, s, "u1", "ship it", models.StatusNow)

	var m tea.Model = NewBoardModel(s, "u1")
	m, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	view := m.View()
	assert.Contains(t, view, "SOON")
	assert.Contains(t, view, "NOW (1)")
	assert.Contains(t, view, "HOLD")
	assert.Contains(t, view, "ship it")
}

func TestBoardViewBeforeSizing(t *testing.T) {
	s := newTestStore(t)
	m := NewBoardModel(s, "u1")
	assert.Equal(t, "Loading...", m.View())
}

// ============================================================
// Timer model
// ============================================================

func TestTimerCountdown(t *testing.T) {
	session := &models.PomodoroSession{ID: "s1", Type: models.SessionWork}

	var m tea.Model = NewTimerModel(session, nil, 2*time.Second)
	m, cmd := m.Update(countdownTickMsg{})
	timer := m.(TimerModel)
	assert.Equal(t, time.Second, timer.remaining)
	assert.False(t, timer.completing)
	require.NotNil(t, cmd)

	m, cmd = m.Update(countdownTickMsg{})
	timer = m.(TimerModel)
	assert.Equal(t, time.Duration(0), timer.remaining)
	assert.True(t, timer.completing)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestTimerCompleteEarly(t *testing.T) {
	session := &models.PomodoroSession{ID: "s1", Type: models.SessionWork}

	m, cmd := NewTimerModel(session, nil, 25*time.Minute).Update(keyPress('c'))
	timer := m.(TimerModel)
	assert.True(t, timer.completing)
	assert.False(t, timer.abandoning)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestTimerAbandon(t *testing.T) {
	session := &models.PomodoroSession{ID: "s1", Type: models.SessionWork}

	m, cmd := NewTimerModel(session, nil, 25*time.Minute).Update(tea.KeyMsg{Type: tea.KeyEsc})
	timer := m.(TimerModel)
	assert.True(t, timer.abandoning)
	assert.False(t, timer.completing)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestTimerViewShowsTask(t *testing.T) {
	session := &models.PomodoroSession{ID: "s1", Type: models.SessionWork}
	task := &models.Task{ID: "t1", Content: "write the report", TotalPomodoros: 3}

	var m tea.Model = NewTimerModel(session, task, 25*time.Minute)
	m, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	view := m.View()
	assert.Contains(t, view, "FOCUS")
	assert.Contains(t, view, "write the report")
	assert.Contains(t, view, "3 pomodoros so far")
}

func TestTimerViewBreakSession(t *testing.T) {
	session := &models.PomodoroSession{ID: "s1", Type: models.SessionBreak}

	var m tea.Model = NewTimerModel(session, nil, 5*time.Minute)
	m, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.Contains(t, m.View(), "BREAK")
}

func TestRenderBigClock(t *testing.T) {
	clock := renderBigClock(25*time.Minute, ColorAccentBright)
	lines := 1
	for _, r := range clock {
		if r == '\n' {
			lines++
		}
	}
	assert.Equal(t, 5, lines)
	assert.NotEmpty(t, clock)
}

// ============================================================
// Key bindings
// ============================================================

func TestBoardKeyMapHelp(t *testing.T) {
	assert.NotEmpty(t, boardKeys.ShortHelp())
	for i, group := range boardKeys.FullHelp() {
		assert.NotEmpty(t, group, "full help group %d", i)
	}
}
