package api

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/taskdeck/internal/api/middleware"
	"github.com/phrazzld/taskdeck/internal/api/shared"
	"github.com/phrazzld/taskdeck/internal/config"
	"github.com/phrazzld/taskdeck/internal/platform/logger"
	"github.com/phrazzld/taskdeck/internal/service"
	"github.com/phrazzld/taskdeck/internal/telemetry"
	"github.com/phrazzld/taskdeck/internal/web"
)

// Flash messages shown after task failures.
const (
	FlashCreateTaskFailed = "Failed to create task"
	FlashUpdateTaskFailed = "Failed to update task"
)

// SlowDashboardMessage is reported after a simulated slow dashboard load.
const SlowDashboardMessage = "Slow dashboard load detected"

// TaskHandler serves the dashboard and task mutations.
type TaskHandler struct {
	pageWriter
	tasks           service.TaskService
	slowProbability float64
	slowDelay       time.Duration
	random          func() float64
	sleep           func(ctx context.Context, d time.Duration) error
}

// TaskHandlerOption customizes a TaskHandler.
type TaskHandlerOption func(*TaskHandler)

// WithRandom replaces the source deciding whether a dashboard load is slow.
// It must return values in [0, 1).
func WithRandom(random func() float64) TaskHandlerOption {
	return func(h *TaskHandler) { h.random = random }
}

// WithSleep replaces how the slow path waits.
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) TaskHandlerOption {
	return func(h *TaskHandler) { h.sleep = sleep }
}

// NewTaskHandler creates a new TaskHandler with the given dependencies.
func NewTaskHandler(
	tasks service.TaskService,
	renderer web.Renderer,
	sink telemetry.Sink,
	dashboard config.DashboardConfig,
	opts ...TaskHandlerOption,
) *TaskHandler {
	if sink == nil {
		sink = telemetry.Nop{}
	}
	h := &TaskHandler{
		pageWriter:      pageWriter{renderer: renderer, telemetry: sink},
		tasks:           tasks,
		slowProbability: dashboard.SlowProbability,
		slowDelay:       time.Duration(dashboard.SlowDelayMillis) * time.Millisecond,
		random:          rand.Float64,
		sleep:           sleepContext,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Dashboard handles GET /dashboard.
func (h *TaskHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.CurrentUser(r)

	if h.random() < h.slowProbability {
		if err := h.sleep(ctx, h.slowDelay); err != nil {
			logger.FromContext(ctx).Debug("dashboard request cancelled during slow load", "error", err)
			return
		}
		h.telemetry.Message(ctx, SlowDashboardMessage, telemetry.LevelWarning,
			map[string]any{"delay_ms": h.slowDelay.Milliseconds(), "user_id": user.ID})
	}

	spanCtx, finish := telemetry.StartSpan(ctx, "task_loading")
	tasks, err := h.tasks.ListByOwner(spanCtx, user.ID)
	finish()
	if err != nil {
		h.telemetry.Exception(ctx, fmt.Errorf("load dashboard tasks: %w", err))
		shared.RespondWithText(w, r, http.StatusInternalServerError, "Failed to load tasks")
		return
	}

	h.render(w, r, web.PageDashboard, "Dashboard", web.Page{Tasks: tasks})
}

// Create handles POST /task/create.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r)

	if err := r.ParseForm(); err != nil {
		h.fail(w, r, fmt.Errorf("parse task form: %w", err), FlashCreateTaskFailed, "/dashboard")
		return
	}

	form := bindTaskForm(r)
	if err := shared.ValidateRequest(&form); err != nil {
		h.fail(w, r, fmt.Errorf("%w: %w", service.ErrInvalidTitle, err), FlashCreateTaskFailed, "/dashboard")
		return
	}

	if _, err := h.tasks.Create(r.Context(), user.ID, form.Title); err != nil {
		h.fail(w, r, err, FlashCreateTaskFailed, "/dashboard")
		return
	}

	shared.SeeOther(w, r, "/dashboard")
}

// Toggle handles POST /task/{id}/toggle.
func (h *TaskHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r)

	param := chi.URLParam(r, "id")
	taskID, err := strconv.ParseInt(param, 10, 64)
	if err != nil {
		h.fail(w, r, fmt.Errorf("%w: task id %q", service.ErrTaskNotFound, param), FlashUpdateTaskFailed, "/dashboard")
		return
	}

	if _, err := h.tasks.Toggle(r.Context(), taskID, user.ID); err != nil {
		h.fail(w, r, err, FlashUpdateTaskFailed, "/dashboard")
		return
	}

	shared.SeeOther(w, r, "/dashboard")
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
