package entities

import (
	"encoding/json"
	"strings"
	"time"
)

// Priority is the stored priority code (0/1/2). Display labels are derived
// through the fixed bidirectional mapping; unrecognized codes read as Medium.
type Priority int

const (
	PriorityLow    Priority = 0
	PriorityMedium Priority = 1
	PriorityHigh   Priority = 2
)

// Label returns the display label for the priority
func (p Priority) Label() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	default:
		return "Medium"
	}
}

// Rank orders priorities for display sorting: High(3) > Medium(2) > Low(1)
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 2
	}
}

// IsValid reports whether p is one of the three known codes
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// PriorityFromCode maps a stored integer code to a Priority.
// Unrecognized codes default to Medium.
func PriorityFromCode(code int) Priority {
	p := Priority(code)
	if !p.IsValid() {
		return PriorityMedium
	}
	return p
}

// PriorityFromLabel maps a display label to a Priority.
// Unrecognized labels default to Medium.
func PriorityFromLabel(label string) Priority {
	switch label {
	case "Low":
		return PriorityLow
	case "Medium":
		return PriorityMedium
	case "High":
		return PriorityHigh
	default:
		return PriorityMedium
	}
}

// MarshalJSON emits the display label
func (p Priority) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Label())
}

// UnmarshalJSON accepts a display label
func (p *Priority) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err != nil {
		return err
	}
	*p = PriorityFromLabel(label)
	return nil
}

// Status is the stored task status code. Display labels are derived through
// the fixed bidirectional mapping; unrecognized codes read as Not Started.
type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

// Label returns the display label for the status
func (s Status) Label() string {
	switch s {
	case StatusOpen:
		return "Not Started"
	case StatusInProgress:
		return "In Progress"
	case StatusDone:
		return "Completed"
	default:
		return "Not Started"
	}
}

// IsValid reports whether s is one of the three known codes
func (s Status) IsValid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusDone:
		return true
	default:
		return false
	}
}

// StatusFromCode maps a stored status code to a Status.
// Unrecognized codes default to open ("Not Started").
func StatusFromCode(code string) Status {
	s := Status(code)
	if !s.IsValid() {
		return StatusOpen
	}
	return s
}

// StatusFromLabel maps a display label to a Status.
// Unrecognized labels default to open.
func StatusFromLabel(label string) Status {
	switch label {
	case "Not Started":
		return StatusOpen
	case "In Progress":
		return StatusInProgress
	case "Completed":
		return StatusDone
	default:
		return StatusOpen
	}
}

// MarshalJSON emits the display label
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Label())
}

// UnmarshalJSON accepts a display label
func (s *Status) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err != nil {
		return err
	}
	*s = StatusFromLabel(label)
	return nil
}

// EventType classifies calendar events
type EventType string

const (
	EventTypeEvent   EventType = "event"
	EventTypeMeeting EventType = "meeting"
	EventTypeHoliday EventType = "holiday"
)

// IsValid reports whether t is a known event type
func (t EventType) IsValid() bool {
	switch t {
	case EventTypeEvent, EventTypeMeeting, EventTypeHoliday:
		return true
	default:
		return false
	}
}

// DefaultColor returns the display color used when an event carries no
// explicit color override
func (t EventType) DefaultColor() string {
	switch t {
	case EventTypeMeeting:
		return "#4facfe"
	case EventTypeHoliday:
		return "#30d158"
	default:
		return "#667eea"
	}
}

// EventTypeFromString maps a raw stored value to an EventType, defaulting to
// the plain event type
func EventTypeFromString(raw string) EventType {
	t := EventType(strings.ToLower(raw))
	if !t.IsValid() {
		return EventTypeEvent
	}
	return t
}

// Task categories
const CategoryOther = "Other"

// Categories lists the selectable task categories
var Categories = []string{"Homework", "Exam", "Project", "Club", "Personal", "Other"}

// Task is the view representation of a stored task document
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	CategoryID  string     `json:"category_id"`
	Priority    Priority   `json:"priority"`
	Status      Status     `json:"status"`
	DueAt       *time.Time `json:"due_at"`
	CourseID    string     `json:"course_id"`
	CourseName  string     `json:"course_name"`
	Tags        []string   `json:"tags"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// DueOrEpoch returns the due date, or the zero time when absent, so that
// tasks without a due date sort as earliest
func (t *Task) DueOrEpoch() time.Time {
	if t.DueAt == nil {
		return time.Time{}
	}
	return *t.DueAt
}

// IsOverdue reports whether the task is past due and not completed.
// Tasks without a due date are never overdue.
func (t *Task) IsOverdue(now time.Time) bool {
	if t.DueAt == nil {
		return false
	}
	return t.DueAt.Before(now) && t.Status != StatusDone
}

// IsUpcoming reports whether the task is due within [now, now+window] and
// not completed. Tasks without a due date are never upcoming.
func (t *Task) IsUpcoming(now time.Time, window time.Duration) bool {
	if t.DueAt == nil || t.Status == StatusDone {
		return false
	}
	due := *t.DueAt
	return !due.Before(now) && !due.After(now.Add(window))
}

// Event is the view representation of a stored event document
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Type        EventType `json:"type"`
	Color       string    `json:"color"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	IsAllDay    bool      `json:"is_all_day"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// End returns the event end, falling back to the start when no end was stored
func (e *Event) End() time.Time {
	if e.EndDate.IsZero() {
		return e.StartDate
	}
	return e.EndDate
}

// ClassSession is one recurring slot in the static class schedule.
// Sessions are a read-only fixture, never persisted.
type ClassSession struct {
	ID         int    `json:"id"`
	Course     string `json:"course"`
	Title      string `json:"title"`
	Day        string `json:"day"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	Location   string `json:"location"`
	Instructor string `json:"instructor"`
	Color      string `json:"color"`
}

// TaskStats aggregates task counts for the reports view
type TaskStats struct {
	TotalTasks       int `json:"total_tasks"`
	CompletedTasks   int `json:"completed_tasks"`
	InProgressTasks  int `json:"in_progress_tasks"`
	NotStartedTasks  int `json:"not_started_tasks"`
	UpcomingThisWeek int `json:"upcoming_this_week"`
	Overdue          int `json:"overdue"`
}

// User is the demo account the session is bound to
type User struct {
	ID           string    `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	DisplayName  string    `json:"display_name" db:"display_name"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
