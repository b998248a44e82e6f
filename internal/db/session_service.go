package db

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/balkashynov/lanes/internal/models"
)

// StartSession creates a new active pomodoro session. A task id is only
// meaningful for WORK sessions but is accepted either way; a BREAK session
// with a task simply never credits it.
func (s *Store) StartSession(userID, sessionType string, taskID *string) (*models.PomodoroSession, error) {
	if !models.IsValidSessionType(sessionType) {
		return nil, &ValidationError{Field: "type", Reason: fmt.Sprintf("unknown session type %q", sessionType)}
	}

	session := models.PomodoroSession{
		UserID: userID,
		Type:   sessionType,
		TaskID: taskID,
	}
	if err := s.db.Create(&session).Error; err != nil {
		return nil, s.storeErr("start session", userID, "", err)
	}

	return &session, nil
}

// getSession is the ownership-scoped session lookup; foreign-owned sessions
// read as missing.
func (s *Store) getSession(userID, id string) (*models.PomodoroSession, error) {
	var session models.PomodoroSession
	err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, s.storeErr("get session", userID, id, err)
	}
	return &session, nil
}

// CompleteSession finishes an active session. Completing a WORK session that
// has a task credits that task with one pomodoro. Completing an
// already-completed session is a no-op; it returns the session unchanged and
// never credits twice.
func (s *Store) CompleteSession(userID, sessionID string) (*models.PomodoroSession, error) {
	session, err := s.getSession(userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Completed() {
		return session, nil
	}

	now := s.now()
	err = s.db.Model(&models.PomodoroSession{}).
		Where("id = ? AND user_id = ?", sessionID, userID).
		Update("completed_at", now).Error
	if err != nil {
		return nil, s.storeErr("complete session", userID, sessionID, err)
	}
	session.CompletedAt = &now

	if session.Type == models.SessionWork && session.TaskID != nil {
		credited, err := s.creditPomodoro(userID, sessionID, *session.TaskID)
		if err != nil {
			return nil, err
		}
		if credited {
			session.Counted = true
		}
	}

	return session, nil
}

// AssignTask points a session at a task, covering the "I finished a
// pomodoro, then decided which task it was for" flow: assigning a task to an
// already-completed WORK session credits the task as if it had been attached
// from the start. A session credits at most one task ever, so re-assigning a
// credited session to any task, same or different, changes only the
// reference and never the counters.
func (s *Store) AssignTask(userID, sessionID, taskID string) (*models.PomodoroSession, error) {
	session, err := s.getSession(userID, sessionID)
	if err != nil {
		return nil, err
	}
	if _, err := s.getTask(userID, taskID); err != nil {
		return nil, err
	}

	err = s.db.Model(&models.PomodoroSession{}).
		Where("id = ? AND user_id = ?", sessionID, userID).
		Update("task_id", taskID).Error
	if err != nil {
		return nil, s.storeErr("assign task", userID, sessionID, err)
	}
	session.TaskID = &taskID

	if session.Completed() && session.Type == models.SessionWork {
		credited, err := s.creditPomodoro(userID, sessionID, taskID)
		if err != nil {
			return nil, err
		}
		if credited {
			session.Counted = true
		}
	}

	return session, nil
}

// creditPomodoro atomically flips the session's counted guard and increments
// the task's pomodoro counter. The guarded UPDATE makes the credit
// exactly-once: whichever caller flips counted first does the increment, any
// later attempt affects zero rows and leaves the counters alone.
func (s *Store) creditPomodoro(userID, sessionID, taskID string) (bool, error) {
	credited := false
	err := s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.PomodoroSession{}).
			Where("id = ? AND user_id = ? AND counted = ?", sessionID, userID, false).
			Update("counted", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Already credited.
			return nil
		}

		inc := tx.Model(&models.Task{}).
			Where("id = ? AND user_id = ?", taskID, userID).
			UpdateColumn("total_pomodoros", gorm.Expr("total_pomodoros + ?", 1))
		if inc.Error != nil {
			return inc.Error
		}
		credited = true
		return nil
	})
	if err != nil {
		return false, s.storeErr("credit pomodoro", userID, sessionID, err)
	}
	return credited, nil
}
