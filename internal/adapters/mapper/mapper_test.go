package mapper

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spartan/planner/internal/domain/entities"
	"github.com/spartan/planner/internal/ports"
)

func TestTimestampUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want time.Time
	}{
		{
			name: "rfc3339 string",
			raw:  `"2026-03-15T10:30:00Z"`,
			want: time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC),
		},
		{
			name: "date only string",
			raw:  `"2026-03-15"`,
			want: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "epoch seconds",
			raw:  `1773916200`,
			want: time.Unix(1773916200, 0).UTC(),
		},
		{
			name: "seconds nanos object",
			raw:  `{"seconds": 1773916200, "nanos": 500000000}`,
			want: time.Unix(1773916200, 500000000).UTC(),
		},
		{
			name: "unrecognized string yields zero",
			raw:  `"not a date"`,
			want: time.Time{},
		},
		{
			name: "null yields zero",
			raw:  `null`,
			want: time.Time{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &ts))
			assert.True(t, tt.want.Equal(ts.Time), "got %v want %v", ts.Time, tt.want)
		})
	}
}

func TestTimestampMarshalRoundTrip(t *testing.T) {
	original := NewTimestamp(time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC))
	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded Timestamp
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, original.Equal(decoded.Time))
}

func TestParseDateTime(t *testing.T) {
	got, err := ParseDateTime("2026-03-15", "14:30")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC), got)

	got, err = ParseDateTime("2026-03-15", "")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), got)

	_, err = ParseDateTime("15/03/2026", "")
	assert.Error(t, err)
}

func TestTaskToView(t *testing.T) {
	created := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	doc := ports.Document{
		ID: "task-1",
		Body: json.RawMessage(`{
			"title": "Finish lab report",
			"description": "sections 3 and 4",
			"priority": 2,
			"status": "in_progress",
			"dueAt": "2026-03-15T00:00:00Z",
			"categoryId": "homework",
			"categoryName": "Homework",
			"courseName": "CS 122 - Adv Python Prog",
			"tags": ["lab"]
		}`),
		CreatedAt: created,
		UpdatedAt: created,
	}

	task, err := TaskToView(doc)
	require.NoError(t, err)

	assert.Equal(t, "task-1", task.ID)
	assert.Equal(t, "Finish lab report", task.Title)
	assert.Equal(t, entities.PriorityHigh, task.Priority)
	assert.Equal(t, entities.StatusInProgress, task.Status)
	assert.Equal(t, "Homework", task.Category)
	require.NotNil(t, task.DueAt)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), task.DueAt.UTC())
	assert.Equal(t, created, task.CreatedAt)
}

func TestTaskToViewDefaults(t *testing.T) {
	doc := ports.Document{
		ID:   "task-2",
		Body: json.RawMessage(`{"title": "Mystery", "priority": 9, "status": "archived"}`),
	}

	task, err := TaskToView(doc)
	require.NoError(t, err)

	assert.Equal(t, entities.PriorityMedium, task.Priority, "unknown code falls back to medium")
	assert.Equal(t, entities.StatusOpen, task.Status, "unknown code falls back to open")
	assert.Equal(t, entities.CategoryOther, task.Category)
	assert.Nil(t, task.DueAt)
	assert.NotNil(t, task.Tags)
	assert.Empty(t, task.Tags)
}

func TestTaskToViewMalformedBody(t *testing.T) {
	_, err := TaskToView(ports.Document{ID: "bad", Body: json.RawMessage(`{not json`)})
	assert.Error(t, err)
}

func TestTaskToStorage(t *testing.T) {
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	doc := TaskToStorage(ports.CreateTaskRequest{
		Title:    "Study for midterm",
		Category: "Exam",
		Priority: "High",
		Status:   "Not Started",
		DueDate:  "2026-02-20",
		Notes:    "chapters 4-7",
	}, now)

	assert.Equal(t, "Study for midterm", doc.Title)
	assert.Equal(t, 2, doc.Priority)
	assert.Equal(t, "open", doc.Status)
	assert.Equal(t, "exam", doc.CategoryID)
	assert.Equal(t, "Exam", doc.CategoryName)
	assert.Equal(t, "Exam", doc.CourseName, "course falls back to category")
	require.NotNil(t, doc.DueAt)
	assert.Equal(t, time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC), doc.DueAt.Time)
	assert.NotNil(t, doc.Tags)
}

func TestTaskToStorageNoDueDate(t *testing.T) {
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	doc := TaskToStorage(ports.CreateTaskRequest{Title: "Untimed"}, now)

	require.NotNil(t, doc.DueAt)
	assert.True(t, now.Equal(doc.DueAt.Time), "missing due date is stamped with now")
	assert.Equal(t, entities.CategoryOther, doc.CategoryName)
	assert.Equal(t, "other", doc.CategoryID)
	assert.Equal(t, 1, doc.Priority, "missing priority defaults to medium")
}

func TestTaskRoundTripRestoresCodes(t *testing.T) {
	doc := ports.Document{
		ID:   "task-rt",
		Body: json.RawMessage(`{"title": "Round trip", "priority": 2, "status": "done", "categoryName": "Exam"}`),
	}

	task, err := TaskToView(doc)
	require.NoError(t, err)

	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	stored := TaskToStorage(ports.CreateTaskRequest{
		Title:    task.Title,
		Category: task.Category,
		Priority: task.Priority.Label(),
		Status:   task.Status.Label(),
	}, now)

	assert.Equal(t, 2, stored.Priority)
	assert.Equal(t, "done", stored.Status)
	assert.Equal(t, "Exam", stored.CategoryName)
}

func TestTaskPatch(t *testing.T) {
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	title := "Renamed"
	status := "Completed"

	patch := TaskPatch(ports.UpdateTaskRequest{Title: &title, Status: &status}, now)

	assert.Equal(t, "Renamed", patch["title"])
	assert.Equal(t, "done", patch["status"])
	assert.Contains(t, patch, "updatedAt")
	assert.NotContains(t, patch, "priority", "unset fields stay out of the patch")
	assert.NotContains(t, patch, "description")
}

func TestEventToView(t *testing.T) {
	doc := ports.Document{
		ID: "event-1",
		Body: json.RawMessage(`{
			"title": "Career fair",
			"type": "meeting",
			"startDate": "2026-04-02T14:00:00Z",
			"endDate": "2026-04-02T16:00:00Z",
			"location": "Student Union"
		}`),
	}

	event, err := EventToView(doc)
	require.NoError(t, err)

	assert.Equal(t, entities.EventTypeMeeting, event.Type)
	assert.Equal(t, "#4facfe", event.Color, "missing color falls back to type default")
	assert.Equal(t, time.Date(2026, 4, 2, 14, 0, 0, 0, time.UTC), event.StartDate.UTC())
	assert.Equal(t, time.Date(2026, 4, 2, 16, 0, 0, 0, time.UTC), event.EndDate.UTC())
}

func TestEventToStorage(t *testing.T) {
	doc, err := EventToStorage(ports.CreateEventRequest{
		Title:     "Study group",
		Type:      "event",
		StartDate: "2026-04-02",
		StartTime: "14:00",
		EndTime:   "16:00",
	})
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 4, 2, 14, 0, 0, 0, time.UTC), doc.StartDate.Time)
	assert.Equal(t, time.Date(2026, 4, 2, 16, 0, 0, 0, time.UTC), doc.EndDate.Time, "end time combines with the start date")
	assert.Equal(t, "#667eea", doc.Color)
}

func TestEventToStorageAllDayIgnoresTimes(t *testing.T) {
	doc, err := EventToStorage(ports.CreateEventRequest{
		Title:     "Spring break",
		Type:      "holiday",
		StartDate: "2026-03-23",
		StartTime: "09:00",
		EndDate:   "2026-03-27",
		EndTime:   "17:00",
		IsAllDay:  true,
	})
	require.NoError(t, err)

	assert.True(t, doc.IsAllDay)
	assert.Equal(t, time.Date(2026, 3, 23, 0, 0, 0, 0, time.UTC), doc.StartDate.Time)
	assert.Equal(t, time.Date(2026, 3, 27, 0, 0, 0, 0, time.UTC), doc.EndDate.Time)
	assert.Equal(t, "#30d158", doc.Color)
}

func TestEventToStorageBadStartDate(t *testing.T) {
	_, err := EventToStorage(ports.CreateEventRequest{Title: "Broken", StartDate: "soon"})
	var ve *entities.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "start_date", ve.Field)
}

func TestEventPatchTypeRefreshesColor(t *testing.T) {
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	eventType := "holiday"

	patch := EventPatch(ports.UpdateEventRequest{Type: &eventType}, now)

	assert.Equal(t, "holiday", patch["type"])
	assert.Equal(t, "#30d158", patch["color"], "type change without explicit color takes the new default")
}
