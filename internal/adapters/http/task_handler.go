// Package http holds the echo handlers for the planner API
package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/spartan/planner/internal/application/services"
	"github.com/spartan/planner/internal/application/views"
	"github.com/spartan/planner/internal/domain/entities"
	"github.com/spartan/planner/internal/infrastructure/logger"
	"github.com/spartan/planner/internal/ports"
)

// TaskHandler handles task-related requests
type TaskHandler struct {
	taskService *services.TaskService
	confirm     *views.DeleteConfirm
	logger      *logger.Logger
}

// NewTaskHandler creates a new task handler. The confirm tracker is shared
// with the event handler so arming a deletion on one record kind disarms
// any pending confirmation on the other.
func NewTaskHandler(taskService *services.TaskService, confirm *views.DeleteConfirm, logger *logger.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		confirm:     confirm,
		logger:      logger,
	}
}

// ListTasks returns the task list, optionally filtered and sorted by query
// parameters. Status filters use display labels ("Completed"), sort modes
// are "priority" or "due_date".
func (h *TaskHandler) ListTasks(c echo.Context) error {
	tasks, err := h.taskService.List(c.Request().Context())
	if err != nil {
		return err
	}

	if filter := c.QueryParam("status"); filter != "" {
		tasks = views.FilterByStatus(tasks, filter)
	}
	if mode := c.QueryParam("sort"); mode != "" {
		tasks = views.SortTasks(tasks, mode)
	}

	return c.JSON(http.StatusOK, TaskListResponse{Tasks: tasks, Total: len(tasks)})
}

// GetTask returns one task by id
func (h *TaskHandler) GetTask(c echo.Context) error {
	task, err := h.taskService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}

// CreateTask stores a new task from the form payload
func (h *TaskHandler) CreateTask(c echo.Context) error {
	var req ports.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.taskService.Create(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("Create task failed", "error", err)
		return err
	}
	return c.JSON(http.StatusCreated, task)
}

// UpdateTask applies a partial update
func (h *TaskHandler) UpdateTask(c echo.Context) error {
	var req ports.UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	task, err := h.taskService.Update(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		h.logger.Error("Update task failed", "error", err, "id", c.Param("id"))
		return err
	}
	return c.JSON(http.StatusOK, task)
}

// DeleteTask removes a task after two-step confirmation: the first call
// arms the deletion and answers 202, the second call on the same task
// performs it. A call naming a different task re-arms onto that task.
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	id := c.Param("id")
	if !h.confirm.Click(views.ConfirmKey("task", id)) {
		return c.JSON(http.StatusAccepted, ConfirmResponse{Message: "Confirmation required", Armed: id})
	}

	if err := h.taskService.Delete(c.Request().Context(), id); err != nil {
		h.logger.Error("Delete task failed", "error", err, "id", id)
		return err
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Task deleted"})
}

// ToggleTask flips a task between completed and not started and returns the
// reconciled task list
func (h *TaskHandler) ToggleTask(c echo.Context) error {
	tasks, err := h.taskService.ToggleStatus(c.Request().Context(), c.Param("id"))
	if err != nil {
		if tasks != nil {
			// the write failed but the authoritative list was re-read;
			// return it so the caller can roll back its optimistic state
			h.logger.Error("Toggle task failed", "error", err, "id", c.Param("id"))
			return c.JSON(http.StatusBadGateway, TaskListResponse{Tasks: tasks, Total: len(tasks)})
		}
		return err
	}
	return c.JSON(http.StatusOK, TaskListResponse{Tasks: tasks, Total: len(tasks)})
}

// GetStats returns the aggregate task counters
func (h *TaskHandler) GetStats(c echo.Context) error {
	stats, err := h.taskService.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// Shared response types

type MessageResponse struct {
	Message string `json:"message"`
}

type ConfirmResponse struct {
	Message string `json:"message"`
	Armed   string `json:"armed"`
}

type TaskListResponse struct {
	Tasks []entities.Task `json:"tasks"`
	Total int             `json:"total"`
}
