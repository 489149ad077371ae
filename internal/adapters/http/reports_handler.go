package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/spartan/planner/internal/application/services"
	"github.com/spartan/planner/internal/application/views"
	"github.com/spartan/planner/internal/domain/entities"
	"github.com/spartan/planner/internal/infrastructure/logger"
)

// ReportsHandler serves the analytics breakdowns
type ReportsHandler struct {
	taskService *services.TaskService
	logger      *logger.Logger
}

// NewReportsHandler creates a new reports handler
func NewReportsHandler(taskService *services.TaskService, logger *logger.Logger) *ReportsHandler {
	return &ReportsHandler{
		taskService: taskService,
		logger:      logger,
	}
}

// ReportsResponse bundles the stats and every breakdown in one payload so
// the reports page needs a single fetch
type ReportsResponse struct {
	Stats      entities.TaskStats `json:"stats"`
	Categories []views.Slice      `json:"categories"`
	Priorities []views.Slice      `json:"priorities"`
	Statuses   []views.Slice      `json:"statuses"`
}

// GetReports returns the task stats plus category, priority and status
// breakdowns over the full task list
func (h *ReportsHandler) GetReports(c echo.Context) error {
	ctx := c.Request().Context()

	tasks, err := h.taskService.List(ctx)
	if err != nil {
		return err
	}
	stats, err := h.taskService.Stats(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, ReportsResponse{
		Stats:      stats,
		Categories: views.CategoryBreakdown(tasks),
		Priorities: views.PriorityBreakdown(tasks),
		Statuses:   views.StatusBreakdown(tasks),
	})
}
