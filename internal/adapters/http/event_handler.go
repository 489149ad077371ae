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

// EventHandler handles calendar event requests
type EventHandler struct {
	eventService *services.EventService
	confirm      *views.DeleteConfirm
	logger       *logger.Logger
}

// NewEventHandler creates a new event handler. The confirm tracker is the
// one shared with the task handler.
func NewEventHandler(eventService *services.EventService, confirm *views.DeleteConfirm, logger *logger.Logger) *EventHandler {
	return &EventHandler{
		eventService: eventService,
		confirm:      confirm,
		logger:       logger,
	}
}

// ListEvents returns all events ordered by start date
func (h *EventHandler) ListEvents(c echo.Context) error {
	events, err := h.eventService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, EventListResponse{Events: events, Total: len(events)})
}

// GetEvent returns one event by id
func (h *EventHandler) GetEvent(c echo.Context) error {
	event, err := h.eventService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, event)
}

// CreateEvent stores a new event from the form payload
func (h *EventHandler) CreateEvent(c echo.Context) error {
	var req ports.CreateEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	event, err := h.eventService.Create(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("Create event failed", "error", err)
		return err
	}
	return c.JSON(http.StatusCreated, event)
}

// UpdateEvent applies a partial update
func (h *EventHandler) UpdateEvent(c echo.Context) error {
	var req ports.UpdateEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	event, err := h.eventService.Update(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		h.logger.Error("Update event failed", "error", err, "id", c.Param("id"))
		return err
	}
	return c.JSON(http.StatusOK, event)
}

// DeleteEvent removes an event with the same two-step confirmation as
// task deletion. The confirmation keys are namespaced per record kind, so
// an armed task never confirms an event with the same id.
func (h *EventHandler) DeleteEvent(c echo.Context) error {
	id := c.Param("id")
	if !h.confirm.Click(views.ConfirmKey("event", id)) {
		return c.JSON(http.StatusAccepted, ConfirmResponse{Message: "Confirmation required", Armed: id})
	}

	if err := h.eventService.Delete(c.Request().Context(), id); err != nil {
		h.logger.Error("Delete event failed", "error", err, "id", id)
		return err
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Event deleted"})
}

type EventListResponse struct {
	Events []entities.Event `json:"events"`
	Total  int              `json:"total"`
}
