package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/spartan/planner/internal/application/services"
	"github.com/spartan/planner/internal/application/views"
	"github.com/spartan/planner/internal/domain/entities"
	"github.com/spartan/planner/internal/infrastructure/logger"
)

// DashboardHandler serves the dashboard task list with relative due labels
type DashboardHandler struct {
	taskService *services.TaskService
	logger      *logger.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(taskService *services.TaskService, logger *logger.Logger) *DashboardHandler {
	return &DashboardHandler{
		taskService: taskService,
		logger:      logger,
	}
}

// DashboardTask is a task annotated for the dashboard list
type DashboardTask struct {
	entities.Task
	DueLabel string `json:"due_label"`
}

// DashboardResponse is the dashboard payload: annotated tasks plus the
// stats row shown above the list
type DashboardResponse struct {
	Tasks []DashboardTask    `json:"tasks"`
	Stats entities.TaskStats `json:"stats"`
}

// GetDashboard returns the filtered, sorted task list with relative due
// labels and the aggregate counters. Accepts the same status and sort query
// parameters as the task list.
func (h *DashboardHandler) GetDashboard(c echo.Context) error {
	ctx := c.Request().Context()

	tasks, err := h.taskService.List(ctx)
	if err != nil {
		return err
	}
	stats, err := h.taskService.Stats(ctx)
	if err != nil {
		return err
	}

	if filter := c.QueryParam("status"); filter != "" {
		tasks = views.FilterByStatus(tasks, filter)
	}
	mode := c.QueryParam("sort")
	if mode == "" {
		mode = views.SortByDueDate
	}
	tasks = views.SortTasks(tasks, mode)

	now := time.Now()
	annotated := make([]DashboardTask, 0, len(tasks))
	for i := range tasks {
		annotated = append(annotated, DashboardTask{
			Task:     tasks[i],
			DueLabel: views.DueLabel(&tasks[i], now),
		})
	}

	return c.JSON(http.StatusOK, DashboardResponse{Tasks: annotated, Stats: stats})
}
