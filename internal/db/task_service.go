package db

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/balkashynov/lanes/internal/models"
)

const recentCompletedCap = 100

// CreateTaskRequest holds the data needed to create a new task
type CreateTaskRequest struct {
	Content     string
	Status      string
	IsImportant bool
	// Position appends to the end of the lane when nil.
	Position *int
}

// UpdateTaskRequest holds a partial task update; nil fields are untouched.
type UpdateTaskRequest struct {
	Content     *string
	Status      *string
	IsImportant *bool
	Position    *int
}

// getTask is the single ownership-scoped lookup primitive: a task owned by a
// different user is reported as missing.
func (s *Store) getTask(userID, id string) (*models.Task, error) {
	var task models.Task
	err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&task).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, s.storeErr("get task", userID, id, err)
	}
	return &task, nil
}

// Task fetches a single task the user owns.
func (s *Store) Task(userID, id string) (*models.Task, error) {
	return s.getTask(userID, id)
}

// ListActive returns the user's tasks in all three lanes, ordered by
// position within each lane. Ties break by creation order so the board
// stays stable.
func (s *Store) ListActive(userID string) ([]models.Task, error) {
	var tasks []models.Task
	err := s.db.
		Where("user_id = ? AND status <> ?", userID, models.StatusCompleted).
		Order("position ASC, created_at ASC, id ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, s.storeErr("list tasks", userID, "", err)
	}
	return tasks, nil
}

// CreateTask creates a new task in one of the three lanes. When no position
// is given the task appends to the end of its lane.
func (s *Store) CreateTask(userID string, req CreateTaskRequest) (*models.Task, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, errContent("must not be empty")
	}
	if !models.IsActiveStatus(req.Status) {
		return nil, errStatus(req.Status)
	}

	position := 0
	if req.Position != nil {
		position = *req.Position
	} else {
		var last models.Task
		err := s.db.
			Where("user_id = ? AND status = ?", userID, req.Status).
			Order("position DESC").
			First(&last).Error
		switch {
		case err == nil:
			position = last.Position + 1
		case errors.Is(err, gorm.ErrRecordNotFound):
			position = 0
		default:
			return nil, s.storeErr("create task", userID, "", err)
		}
	}

	task := models.Task{
		UserID:      userID,
		Content:     content,
		Status:      req.Status,
		IsImportant: req.IsImportant,
		Position:    position,
	}
	if err := s.db.Create(&task).Error; err != nil {
		return nil, s.storeErr("create task", userID, "", err)
	}

	return &task, nil
}

// UpdateTask applies a partial update to a task the user owns.
//
// Moving into COMPLETED stamps CompletedAt and ensures a CompletedDay exists
// for today; moving back out clears CompletedAt (the CompletedDay stays even
// if it ends up empty). Re-applying COMPLETED to an already-completed task
// leaves CompletedAt untouched. Position updates never shift siblings; a
// drag-and-drop caller rewrites the whole lane instead.
func (s *Store) UpdateTask(userID, id string, req UpdateTaskRequest) (*models.Task, error) {
	// Validate everything up front so a bad request never partially writes.
	if req.Content != nil && strings.TrimSpace(*req.Content) == "" {
		return nil, errContent("must not be empty")
	}
	if req.Status != nil && !models.IsValidStatus(*req.Status) {
		return nil, errStatus(*req.Status)
	}

	task, err := s.getTask(userID, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}

	if req.Content != nil {
		updates["content"] = strings.TrimSpace(*req.Content)
	}
	if req.IsImportant != nil {
		updates["is_important"] = *req.IsImportant
	}
	if req.Position != nil {
		updates["position"] = *req.Position
	}
	if req.Status != nil {
		updates["status"] = *req.Status

		switch {
		case *req.Status == models.StatusCompleted && task.Status != models.StatusCompleted:
			now := s.now()
			updates["completed_at"] = now
			if err := s.ensureCompletedDay(userID, now); err != nil {
				return nil, err
			}
		case *req.Status != models.StatusCompleted && task.Status == models.StatusCompleted:
			// Reopening removes the task from the completion record.
			updates["completed_at"] = nil
		}
	}

	if len(updates) == 0 {
		return task, nil
	}

	err = s.db.Model(&models.Task{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(updates).Error
	if err != nil {
		return nil, s.storeErr("update task", userID, id, err)
	}

	return s.getTask(userID, id)
}

// DeleteTask removes a task. Sessions that referenced it keep their dangling
// task id; they are historical records, not live state.
func (s *Store) DeleteTask(userID, id string) error {
	res := s.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Task{})
	if res.Error != nil {
		return s.storeErr("delete task", userID, id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// RecentCompleted returns the user's most recently completed tasks, newest
// first, capped at 100.
func (s *Store) RecentCompleted(userID string, limit int) ([]models.Task, error) {
	if limit <= 0 || limit > recentCompletedCap {
		limit = recentCompletedCap
	}
	var tasks []models.Task
	err := s.db.
		Where("user_id = ? AND status = ? AND completed_at IS NOT NULL", userID, models.StatusCompleted).
		Order("completed_at DESC").
		Limit(limit).
		Find(&tasks).Error
	if err != nil {
		return nil, s.storeErr("list completed tasks", userID, "", err)
	}
	return tasks, nil
}
