package ports

import (
	"context"

	"github.com/spartan/planner/internal/domain/entities"
)

// TaskRepository defines the interface for task data operations.
//
// List and Stats degrade on transport failure: List returns an empty slice
// and Stats an all-zero object so the views always render. Both still fail
// hard with entities.ErrStoreUninitialized when no store client exists.
// Write operations always propagate failures.
type TaskRepository interface {
	List(ctx context.Context) ([]entities.Task, error)
	ListByStatus(ctx context.Context, status entities.Status) ([]entities.Task, error)
	Get(ctx context.Context, id string) (*entities.Task, error)
	Create(ctx context.Context, req CreateTaskRequest) (string, error)
	Update(ctx context.Context, id string, req UpdateTaskRequest) error
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (entities.TaskStats, error)
}

// EventRepository defines the interface for calendar event data operations.
// The same degradation rules as TaskRepository apply to List.
type EventRepository interface {
	List(ctx context.Context) ([]entities.Event, error)
	Get(ctx context.Context, id string) (*entities.Event, error)
	Create(ctx context.Context, req CreateEventRequest) (string, error)
	Update(ctx context.Context, id string, req UpdateEventRequest) error
	Delete(ctx context.Context, id string) error
}

// UserRepository defines the interface for the demo account lookup
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	Create(ctx context.Context, user *entities.User) error
}

// CreateTaskRequest is the task form submission surface. DueDate is a
// date-only string (2006-01-02); Priority and Status carry display labels.
type CreateTaskRequest struct {
	Title      string   `json:"title" validate:"required"`
	Category   string   `json:"category"`
	Priority   string   `json:"priority"`
	DueDate    string   `json:"due_date"`
	Notes      string   `json:"notes"`
	Status     string   `json:"status"`
	CourseName string   `json:"course_name"`
	Tags       []string `json:"tags"`
}

// UpdateTaskRequest carries a partial task update; only non-nil fields are
// written through
type UpdateTaskRequest struct {
	Title      *string   `json:"title"`
	Category   *string   `json:"category"`
	Priority   *string   `json:"priority"`
	DueDate    *string   `json:"due_date"`
	Notes      *string   `json:"notes"`
	Status     *string   `json:"status"`
	CourseName *string   `json:"course_name"`
	Tags       *[]string `json:"tags"`
}

// CreateEventRequest is the event form submission surface. Dates are
// date-only strings, times are optional HH:MM strings ignored for all-day
// events.
type CreateEventRequest struct {
	Title       string `json:"title" validate:"required"`
	Type        string `json:"type"`
	StartDate   string `json:"start_date" validate:"required"`
	StartTime   string `json:"start_time"`
	EndDate     string `json:"end_date"`
	EndTime     string `json:"end_time"`
	IsAllDay    bool   `json:"is_all_day"`
	Location    string `json:"location"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

// UpdateEventRequest carries a partial event update
type UpdateEventRequest struct {
	Title       *string `json:"title"`
	Type        *string `json:"type"`
	StartDate   *string `json:"start_date"`
	StartTime   *string `json:"start_time"`
	EndDate     *string `json:"end_date"`
	EndTime     *string `json:"end_time"`
	IsAllDay    *bool   `json:"is_all_day"`
	Location    *string `json:"location"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
}

// LoginRequest is the demo login form
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the issued session token
type LoginResponse struct {
	Token       string         `json:"token"`
	User        *entities.User `json:"user"`
	ExpiresIn   int64          `json:"expires_in"`
	DisplayName string         `json:"display_name"`
}
