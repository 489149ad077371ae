package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/spartan/planner/internal/application/services"
	"github.com/spartan/planner/internal/application/views"
	"github.com/spartan/planner/internal/domain/entities"
	"github.com/spartan/planner/internal/domain/schedule"
	"github.com/spartan/planner/internal/infrastructure/logger"
)

// CalendarHandler composes tasks, events and the class schedule into week
// and month views
type CalendarHandler struct {
	taskService  *services.TaskService
	eventService *services.EventService
	logger       *logger.Logger
}

// NewCalendarHandler creates a new calendar handler
func NewCalendarHandler(taskService *services.TaskService, eventService *services.EventService, logger *logger.Logger) *CalendarHandler {
	return &CalendarHandler{
		taskService:  taskService,
		eventService: eventService,
		logger:       logger,
	}
}

// CalendarDay is one rendered day cell with everything visible on it
type CalendarDay struct {
	Date       string                  `json:"date"`
	Weekday    string                  `json:"weekday"`
	OtherMonth bool                    `json:"other_month,omitempty"`
	Classes    []entities.ClassSession `json:"classes"`
	Tasks      []entities.Task         `json:"tasks"`
	Events     []entities.Event        `json:"events"`
}

// CalendarResponse is a rendered week or month plus navigation anchors
type CalendarResponse struct {
	Anchor string        `json:"anchor"`
	Prev   string        `json:"prev"`
	Next   string        `json:"next"`
	Days   []CalendarDay `json:"days"`
}

// GetWeek returns the week containing the anchor date, Sunday through
// Saturday. The anchor query parameter defaults to today.
func (h *CalendarHandler) GetWeek(c echo.Context) error {
	anchor, err := parseAnchor(c.QueryParam("anchor"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid anchor date")
	}

	tasks, events, err := h.fetch(c)
	if err != nil {
		return err
	}

	days := views.WeekDays(anchor)
	return c.JSON(http.StatusOK, CalendarResponse{
		Anchor: anchor.Format("2006-01-02"),
		Prev:   views.PrevWeek(anchor).Format("2006-01-02"),
		Next:   views.NextWeek(anchor).Format("2006-01-02"),
		Days:   h.renderDays(days, tasks, events),
	})
}

// GetMonth returns the month containing the anchor date as full weeks
func (h *CalendarHandler) GetMonth(c echo.Context) error {
	anchor, err := parseAnchor(c.QueryParam("anchor"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid anchor date")
	}

	tasks, events, err := h.fetch(c)
	if err != nil {
		return err
	}

	days := views.MonthGrid(anchor)
	return c.JSON(http.StatusOK, CalendarResponse{
		Anchor: anchor.Format("2006-01-02"),
		Prev:   views.PrevMonth(anchor).Format("2006-01-02"),
		Next:   views.NextMonth(anchor).Format("2006-01-02"),
		Days:   h.renderDays(days, tasks, events),
	})
}

// ListClasses returns the static class schedule and the selectable courses
func (h *CalendarHandler) ListClasses(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"sessions": schedule.Sessions(),
		"courses":  schedule.Courses(),
	})
}

func (h *CalendarHandler) fetch(c echo.Context) ([]entities.Task, []entities.Event, error) {
	ctx := c.Request().Context()
	tasks, err := h.taskService.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	events, err := h.eventService.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	return tasks, events, nil
}

func (h *CalendarHandler) renderDays(days []views.Day, tasks []entities.Task, events []entities.Event) []CalendarDay {
	sessions := schedule.Sessions()
	out := make([]CalendarDay, 0, len(days))
	for _, day := range days {
		out = append(out, CalendarDay{
			Date:       day.Date.Format("2006-01-02"),
			Weekday:    day.Date.Weekday().String(),
			OtherMonth: day.OtherMonth,
			Classes:    views.ClassesForDay(sessions, day.Date),
			Tasks:      views.TasksForDay(tasks, day.Date),
			Events:     views.EventsForDay(events, day.Date),
		})
	}
	return out
}

func parseAnchor(raw string) (time.Time, error) {
	if raw == "" {
		return views.Today(time.Now().UTC()), nil
	}
	return time.Parse("2006-01-02", raw)
}
