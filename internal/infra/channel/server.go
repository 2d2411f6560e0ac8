package channel

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mkondo/taskping/internal/domain"
	"github.com/mkondo/taskping/internal/usecase"
	"github.com/mkondo/taskping/pkg/messages"
)

// Operations bundles the use cases the channel dispatches to.
type Operations struct {
	Add      *usecase.AddTask
	List     *usecase.ListTasks
	Next     *usecase.NextTask
	Complete *usecase.CompleteTask
	Snooze   *usecase.SnoozeTask
	Delete   *usecase.DeleteTask
}

// Server is the inbound command channel: the chat transport posts user
// messages here and receives the reply text to deliver back.
type Server struct {
	ops         Operations
	transcriber domain.Transcriber
	catalog     *messages.Catalog
	loc         *time.Location
	secret      []byte
}

type commandRequest struct {
	Text     string `json:"text"`
	AudioRef string `json:"audioRef"`
}

type commandResponse struct {
	Reply string `json:"reply"`
}

// NewServer creates a channel server. transcriber may be nil when no
// transcription service is configured.
func NewServer(ops Operations, transcriber domain.Transcriber, catalog *messages.Catalog, loc *time.Location, secret []byte) *Server {
	return &Server{
		ops:         ops,
		transcriber: transcriber,
		catalog:     catalog,
		loc:         loc,
		secret:      secret,
	}
}

// Router builds the gin engine.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), LoggingMiddleware(zap.L()))

	v1 := r.Group("/v1")
	v1.Use(AuthMiddleware(s.secret))
	{
		v1.POST("/commands", s.handleCommand)
	}
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return r
}

// Run serves until the context is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) handleCommand(c *gin.Context) {
	var req commandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	text := req.Text
	if text == "" && req.AudioRef != "" {
		transcript, err := s.transcribe(c.Request.Context(), req.AudioRef)
		if err != nil {
			// Transcription problems are a user-visible try-again, never
			// an engine failure.
			c.JSON(http.StatusOK, commandResponse{Reply: s.catalog.NothingUnderstood()})
			return
		}
		text = transcript
	}

	cmd, err := domain.ParseCommand(text)
	if err != nil {
		c.JSON(http.StatusOK, commandResponse{Reply: s.catalog.NothingUnderstood()})
		return
	}

	reply, err := s.dispatch(c.Request.Context(), owner(c), cmd)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, commandResponse{Reply: reply})
	case errors.Is(err, domain.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
	case errors.Is(err, domain.ErrNoDueDate):
		c.JSON(http.StatusConflict, gin.H{"error": "task has no due date to snooze"})
	case errors.Is(err, domain.ErrNothingExtracted):
		c.JSON(http.StatusOK, commandResponse{Reply: s.catalog.NothingUnderstood()})
	default:
		zap.L().Error("command failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func (s *Server) transcribe(ctx context.Context, audioRef string) (string, error) {
	if s.transcriber == nil {
		return "", domain.ErrTranscribeFailed
	}
	return s.transcriber.Transcribe(ctx, audioRef)
}

func (s *Server) dispatch(ctx context.Context, ownerID string, cmd domain.Command) (string, error) {
	switch cmd.Kind {
	case domain.CommandAdd:
		out, err := s.ops.Add.Execute(ctx, usecase.AddTaskInput{OwnerID: ownerID, Text: cmd.Text})
		if err != nil {
			return "", err
		}
		var lines []string
		for _, t := range out.Tasks {
			lines = append(lines, s.catalog.TaskAdded(t.ID, t.Title))
		}
		return strings.Join(lines, "\n"), nil

	case domain.CommandNext:
		out, err := s.ops.Next.Execute(ctx, usecase.NextTaskInput{OwnerID: ownerID})
		if err != nil {
			return "", err
		}
		if out.Task == nil {
			return s.catalog.NoOpenTasks(), nil
		}
		return s.formatTask(out.Task), nil

	case domain.CommandToday, domain.CommandList:
		in := usecase.ListTasksInput{OwnerID: ownerID, Status: domain.StatusOpen}
		if cmd.Kind == domain.CommandToday {
			in.TodayOnly = true
		}
		out, err := s.ops.List.Execute(ctx, in)
		if err != nil {
			return "", err
		}
		if len(out.Tasks) == 0 {
			return s.catalog.NoOpenTasks(), nil
		}
		var lines []string
		for _, t := range out.Tasks {
			lines = append(lines, s.formatTask(t))
		}
		return strings.Join(lines, "\n"), nil

	case domain.CommandDone:
		out, err := s.ops.Complete.Execute(ctx, usecase.CompleteTaskInput{OwnerID: ownerID, TaskID: cmd.ID})
		if err != nil {
			return "", err
		}
		return s.catalog.TaskDone(out.Task.ID, out.Task.Title), nil

	case domain.CommandSnooze:
		out, err := s.ops.Snooze.Execute(ctx, usecase.SnoozeTaskInput{OwnerID: ownerID, TaskID: cmd.ID, DeltaHours: cmd.Hours})
		if err != nil {
			return "", err
		}
		return s.catalog.TaskSnoozed(out.Task.ID, out.Task.DueAt.In(s.loc).Format("Mon 15:04")), nil

	case domain.CommandDelete:
		if _, err := s.ops.Delete.Execute(ctx, usecase.DeleteTaskInput{OwnerID: ownerID, TaskID: cmd.ID}); err != nil {
			return "", err
		}
		return s.catalog.TaskDeleted(cmd.ID), nil

	default:
		return "", fmt.Errorf("%w: unknown command", domain.ErrBadCommand)
	}
}

func (s *Server) formatTask(t *domain.Task) string {
	line := fmt.Sprintf("#%d %s", t.ID, t.Title)
	if t.Category != "" {
		line += " [" + t.Category + "]"
	}
	if t.Priority == domain.PriorityHigh {
		line += " (!)"
	}
	if t.DueAt != nil {
		line += " - due " + t.DueAt.In(s.loc).Format("Mon Jan 2 15:04")
	}
	return line
}
