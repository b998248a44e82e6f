package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/balkashynov/lanes/internal/db"
)

// API handlers. Each one parses input, calls the service and maps the error
// taxonomy onto status codes; no business rules live here.

func (s *Server) renderError(c *gin.Context, err error) {
	var verr *db.ValidationError
	switch {
	case errors.Is(err, db.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
	default:
		s.log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func (s *Server) handleListTasks(c *gin.Context) {
	tasks, err := s.svc.ListActive(currentUser(c))
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

type createTaskBody struct {
	Content     string `json:"content"`
	Status      string `json:"status"`
	IsImportant bool   `json:"is_important"`
	Position    *int   `json:"position"`
}

func (s *Server) handleCreateTask(c *gin.Context) {
	var body createTaskBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request body"})
		return
	}

	task, err := s.svc.CreateTask(currentUser(c), db.CreateTaskRequest{
		Content:     body.Content,
		Status:      body.Status,
		IsImportant: body.IsImportant,
		Position:    body.Position,
	})
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

type updateTaskBody struct {
	Content     *string `json:"content"`
	Status      *string `json:"status"`
	IsImportant *bool   `json:"is_important"`
	Position    *int    `json:"position"`
}

func (s *Server) handleUpdateTask(c *gin.Context) {
	var body updateTaskBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request body"})
		return
	}

	task, err := s.svc.UpdateTask(currentUser(c), c.Param("id"), db.UpdateTaskRequest{
		Content:     body.Content,
		Status:      body.Status,
		IsImportant: body.IsImportant,
		Position:    body.Position,
	})
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (s *Server) handleDeleteTask(c *gin.Context) {
	if err := s.svc.DeleteTask(currentUser(c), c.Param("id")); err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) handleRecentCompleted(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	tasks, err := s.svc.RecentCompleted(currentUser(c), limit)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (s *Server) handleYearActivity(c *gin.Context) {
	activity, err := s.svc.YearActivity(currentUser(c), time.Time{})
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, activity)
}

type completedOnDatesBody struct {
	Dates   []string `json:"dates"`
	AnyYear bool     `json:"any_year"`
}

func (s *Server) handleCompletedOnDates(c *gin.Context) {
	var body completedOnDatesBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request body"})
		return
	}

	var err error
	var tasks interface{}
	if body.AnyYear {
		tasks, err = s.svc.CompletedOnMonthDays(currentUser(c), body.Dates)
	} else {
		tasks, err = s.svc.CompletedOnDates(currentUser(c), body.Dates)
	}
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (s *Server) handleYearDays(c *gin.Context) {
	days, err := s.svc.YearDays(currentUser(c), time.Time{})
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, days)
}

type toggleDayBody struct {
	Date string `json:"date"`
}

func (s *Server) handleToggleDay(c *gin.Context) {
	var body toggleDayBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request body"})
		return
	}

	added, err := s.svc.ToggleDay(currentUser(c), body.Date)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"added": added})
}

type dayNoteBody struct {
	Date string `json:"date"`
	Note string `json:"note"`
}

func (s *Server) handleDayNote(c *gin.Context) {
	var body dayNoteBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request body"})
		return
	}

	day, err := s.svc.UpdateDayNote(currentUser(c), body.Date, body.Note)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, day)
}

type startSessionBody struct {
	Type   string  `json:"type"`
	TaskID *string `json:"task_id"`
}

func (s *Server) handleStartSession(c *gin.Context) {
	var body startSessionBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request body"})
		return
	}

	session, err := s.svc.StartSession(currentUser(c), body.Type, body.TaskID)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

func (s *Server) handleCompleteSession(c *gin.Context) {
	session, err := s.svc.CompleteSession(currentUser(c), c.Param("id"))
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

type assignTaskBody struct {
	TaskID string `json:"task_id"`
}

func (s *Server) handleAssignTask(c *gin.Context) {
	var body assignTaskBody
	if err := c.ShouldBindJSON(&body); err != nil || body.TaskID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request body"})
		return
	}

	session, err := s.svc.AssignTask(currentUser(c), c.Param("id"), body.TaskID)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}
