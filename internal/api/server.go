// Package api exposes the processing pipeline and stored records over
// HTTP.
package api

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/minseo-dev/daylog/internal/datetime"
	"github.com/minseo-dev/daylog/internal/engine"
	"github.com/minseo-dev/daylog/internal/store"
)

// Server wires the engine and store into a gin router.
type Server struct {
	engine *engine.Engine
	store  store.Store
	router *gin.Engine
}

// NewServer builds the HTTP surface over the given engine and store.
func NewServer(e *engine.Engine, st store.Store) *Server {
	s := &Server{engine: e, store: st}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), requestID(), cors())

	r.POST("/process_work_input", s.processWorkInput)

	r.GET("/calendar/events", s.listEvents)
	r.POST("/calendar/events", s.createEvent)
	r.PUT("/calendar/events/:id", s.updateEvent)
	r.DELETE("/calendar/events/:id", s.deleteEvent)

	r.GET("/obsidian/notes", s.listNotes)

	r.GET("/gantt/tasks", s.listTasks)
	r.PUT("/gantt/tasks/:id/status", s.updateTaskStatus)

	r.GET("/contacts", s.listContacts)
	r.GET("/contacts/search", s.searchContacts)

	r.GET("/worklogs", s.listWorkLogs)
	r.GET("/stats", s.stats)
	r.GET("/health", s.health)

	s.router = r
	return s
}

// Router returns the handler for serving or testing.
func (s *Server) Router() http.Handler {
	return s.router
}

// Run starts the HTTP server on addr.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "*")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

type workInput struct {
	Text   string `json:"text" binding:"required"`
	UserID string `json:"user_id"`
}

func (s *Server) processWorkInput(c *gin.Context) {
	var in workInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if in.UserID == "" {
		in.UserID = "default"
	}

	out, err := s.engine.Process(c.Request.Context(), in.Text, in.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, out)
}

type eventInput struct {
	Summary     string    `json:"summary" binding:"required"`
	Description string    `json:"description"`
	Start       time.Time `json:"start" binding:"required"`
	End         time.Time `json:"end" binding:"required"`
	UserID      string    `json:"user_id"`
}

func (s *Server) listEvents(c *gin.Context) {
	events, err := s.store.ListEvents(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	// ?date= takes the same expressions the analyzer emits (내일, 1월 15일,
	// 2024-01-15) and narrows the list to that day.
	if raw := c.Query("date"); raw != "" {
		events = eventsOnDay(events, datetime.ParseDate(raw, time.Now()))
	}
	if events == nil {
		events = []*store.CalendarEvent{}
	}
	c.JSON(http.StatusOK, events)
}

func eventsOnDay(events []*store.CalendarEvent, day time.Time) []*store.CalendarEvent {
	filtered := []*store.CalendarEvent{}
	y, m, d := day.Date()
	for _, ev := range events {
		ey, em, ed := ev.Start.Date()
		if ey == y && em == m && ed == d {
			filtered = append(filtered, ev)
		}
	}
	return filtered
}

func (s *Server) createEvent(c *gin.Context) {
	var in eventInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ev := &store.CalendarEvent{
		Summary:     in.Summary,
		Description: in.Description,
		Start:       in.Start,
		End:         in.End,
		UserID:      in.UserID,
	}
	if _, err := s.store.AddEvent(c.Request.Context(), ev); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, ev)
}

func (s *Server) updateEvent(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in eventInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ev := &store.CalendarEvent{
		ID:          id,
		Summary:     in.Summary,
		Description: in.Description,
		Start:       in.Start,
		End:         in.End,
		UserID:      in.UserID,
	}
	if err := s.store.UpdateEvent(c.Request.Context(), ev); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "일정을 찾을 수 없습니다"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, ev)
}

func (s *Server) deleteEvent(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := s.store.DeleteEvent(c.Request.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "일정을 찾을 수 없습니다"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "일정이 삭제되었습니다"})
}

func (s *Server) listNotes(c *gin.Context) {
	notes, err := s.store.ListNotes(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if notes == nil {
		notes = []*store.Note{}
	}
	c.JSON(http.StatusOK, notes)
}

func (s *Server) listTasks(c *gin.Context) {
	tasks, err := s.store.ListTasks(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if tasks == nil {
		tasks = []*store.Task{}
	}
	c.JSON(http.StatusOK, tasks)
}

type statusInput struct {
	Status string `json:"status" binding:"required"`
}

func (s *Server) updateTaskStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in statusInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !store.ValidStatus(in.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status: " + in.Status})
		return
	}
	if err := s.store.UpdateTaskStatus(c.Request.Context(), id, in.Status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	task, err := s.store.GetTask(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, task)
}

func (s *Server) listContacts(c *gin.Context) {
	contacts, err := s.store.ListContacts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if contacts == nil {
		contacts = []*store.Contact{}
	}
	c.JSON(http.StatusOK, contacts)
}

func (s *Server) searchContacts(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter is required"})
		return
	}
	contacts, err := s.store.SearchContacts(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if contacts == nil {
		contacts = []*store.Contact{}
	}
	c.JSON(http.StatusOK, contacts)
}

func (s *Server) listWorkLogs(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit: " + raw})
			return
		}
		limit = n
	}
	logs, err := s.store.ListWorkLogs(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if logs == nil {
		logs = []*store.WorkLog{}
	}
	c.JSON(http.StatusOK, logs)
}

func (s *Server) stats(c *gin.Context) {
	st, err := s.store.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, st)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"server":    "daylog",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id: " + c.Param("id")})
		return 0, false
	}
	return id, true
}
