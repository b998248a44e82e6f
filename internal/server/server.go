package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/balkashynov/lanes/internal/db"
	"github.com/balkashynov/lanes/internal/models"
)

// Service is the slice of the store the HTTP layer needs. *db.Store
// implements it; tests substitute a mock.
type Service interface {
	ListActive(userID string) ([]models.Task, error)
	CreateTask(userID string, req db.CreateTaskRequest) (*models.Task, error)
	UpdateTask(userID, id string, req db.UpdateTaskRequest) (*models.Task, error)
	DeleteTask(userID, id string) error
	RecentCompleted(userID string, limit int) ([]models.Task, error)

	YearActivity(userID string, asOf time.Time) ([]db.DayActivity, error)
	CompletedOnDates(userID string, dates []string) ([]models.Task, error)
	CompletedOnMonthDays(userID string, dates []string) ([]models.Task, error)

	YearDays(userID string, asOf time.Time) ([]db.DayCount, error)
	ToggleDay(userID, date string) (bool, error)
	UpdateDayNote(userID, date, note string) (*models.CompletedDay, error)

	StartSession(userID, sessionType string, taskID *string) (*models.PomodoroSession, error)
	CompleteSession(userID, sessionID string) (*models.PomodoroSession, error)
	AssignTask(userID, sessionID, taskID string) (*models.PomodoroSession, error)
}

// Server is the lanes HTTP API server
type Server struct {
	svc    Service
	log    zerolog.Logger
	router *gin.Engine
}

// NewServer creates a new API server over svc.
func NewServer(svc Service, log zerolog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		svc:    svc,
		log:    log,
		router: router,
	}

	router.GET("/healthz", s.handleHealth)

	api := router.Group("/api/v1")
	api.Use(s.requireUser)
	{
		api.GET("/tasks", s.handleListTasks)
		api.POST("/tasks", s.handleCreateTask)
		api.PATCH("/tasks/:id", s.handleUpdateTask)
		api.DELETE("/tasks/:id", s.handleDeleteTask)
		api.GET("/tasks/completed", s.handleRecentCompleted)

		api.GET("/activity/year", s.handleYearActivity)
		api.POST("/activity/dates", s.handleCompletedOnDates)

		api.GET("/days", s.handleYearDays)
		api.POST("/days/toggle", s.handleToggleDay)
		api.PATCH("/days/note", s.handleDayNote)

		api.POST("/sessions", s.handleStartSession)
		api.POST("/sessions/:id/complete", s.handleCompleteSession)
		api.POST("/sessions/:id/task", s.handleAssignTask)
	}

	return s
}

// Run starts the server on addr.
func (s *Server) Run(addr string) error {
	s.log.Info().Str("addr", addr).Msg("starting lanes API server")
	return s.router.Run(addr)
}

// Handler exposes the underlying router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

const userHeader = "X-User-ID"

// requireUser pulls the caller's identity off the request. Authentication
// itself lives in front of this server (reverse proxy / session layer); by
// the time a request lands here the header is trusted.
func (s *Server) requireUser(c *gin.Context) {
	userID := c.GetHeader(userHeader)
	if userID == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing user identity"})
		return
	}
	c.Set("userID", userID)
	c.Next()
}

func currentUser(c *gin.Context) string {
	return c.GetString("userID")
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
