package mapper

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/spartan/planner/internal/domain/entities"
	"github.com/spartan/planner/internal/ports"
)

// TaskDocument is the stored wire shape of a task. Priority and status are
// persisted as codes, never as display labels.
type TaskDocument struct {
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Priority     int        `json:"priority"`
	Status       string     `json:"status"`
	DueAt        *Timestamp `json:"dueAt,omitempty"`
	CourseID     string     `json:"courseId"`
	CourseName   string     `json:"courseName"`
	CategoryID   string     `json:"categoryId"`
	CategoryName string     `json:"categoryName"`
	Tags         []string   `json:"tags"`
	CreatedAt    *Timestamp `json:"createdAt,omitempty"`
	UpdatedAt    *Timestamp `json:"updatedAt,omitempty"`
}

// TaskToView decodes a stored document into the display model. Unknown
// priority codes and status codes fall back to their defaults rather than
// failing; only a malformed document body is an error.
func TaskToView(doc ports.Document) (entities.Task, error) {
	var td TaskDocument
	if err := json.Unmarshal(doc.Body, &td); err != nil {
		return entities.Task{}, err
	}

	task := entities.Task{
		ID:          doc.ID,
		Title:       td.Title,
		Description: td.Description,
		Priority:    entities.PriorityFromCode(td.Priority),
		Status:      entities.StatusFromCode(td.Status),
		Category:    categoryLabel(td),
		CategoryID:  td.CategoryID,
		CourseID:    td.CourseID,
		CourseName:  td.CourseName,
		Tags:        td.Tags,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}
	if td.Tags == nil {
		task.Tags = []string{}
	}
	if td.DueAt != nil && !td.DueAt.IsZero() {
		due := td.DueAt.Time
		task.DueAt = &due
	}
	return task, nil
}

// TaskToStorage maps a creation form into the stored shape. Labels are
// folded to codes and a missing due date is stamped with now so the task
// still sorts chronologically.
func TaskToStorage(req ports.CreateTaskRequest, now time.Time) TaskDocument {
	due := now.UTC()
	if req.DueDate != "" {
		if parsed, err := ParseDateTime(req.DueDate, ""); err == nil {
			due = parsed
		}
	}

	category := req.Category
	if category == "" {
		category = entities.CategoryOther
	}
	courseName := req.CourseName
	if courseName == "" {
		courseName = category
	}
	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	return TaskDocument{
		Title:        req.Title,
		Description:  req.Notes,
		Priority:     int(entities.PriorityFromLabel(req.Priority)),
		Status:       string(entities.StatusFromLabel(req.Status)),
		DueAt:        NewTimestamp(due),
		CourseID:     "",
		CourseName:   courseName,
		CategoryID:   strings.ToLower(category),
		CategoryName: category,
		Tags:         tags,
	}
}

// TaskPatch maps a partial update into the merge payload written to the
// store. Only fields the caller set are included; updatedAt is always
// bumped.
func TaskPatch(req ports.UpdateTaskRequest, now time.Time) map[string]interface{} {
	patch := map[string]interface{}{
		"updatedAt": now.UTC().Format(time.RFC3339Nano),
	}
	if req.Title != nil {
		patch["title"] = *req.Title
	}
	if req.Notes != nil {
		patch["description"] = *req.Notes
	}
	if req.Priority != nil {
		patch["priority"] = int(entities.PriorityFromLabel(*req.Priority))
	}
	if req.Status != nil {
		patch["status"] = string(entities.StatusFromLabel(*req.Status))
	}
	if req.DueDate != nil {
		if parsed, err := ParseDateTime(*req.DueDate, ""); err == nil {
			patch["dueAt"] = parsed.Format(time.RFC3339Nano)
		}
	}
	if req.Category != nil {
		category := *req.Category
		if category == "" {
			category = entities.CategoryOther
		}
		patch["categoryId"] = strings.ToLower(category)
		patch["categoryName"] = category
	}
	if req.CourseName != nil {
		patch["courseName"] = *req.CourseName
	}
	if req.Tags != nil {
		patch["tags"] = *req.Tags
	}
	return patch
}

func categoryLabel(td TaskDocument) string {
	if td.CategoryName != "" {
		return td.CategoryName
	}
	if td.CategoryID != "" {
		return td.CategoryID
	}
	return entities.CategoryOther
}
