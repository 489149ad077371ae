package mapper

import (
	"encoding/json"
	"time"

	"github.com/spartan/planner/internal/domain/entities"
	"github.com/spartan/planner/internal/ports"
)

// EventDocument is the stored wire shape of a calendar event
type EventDocument struct {
	Title       string     `json:"title"`
	Type        string     `json:"type"`
	Color       string     `json:"color"`
	Location    string     `json:"location"`
	Description string     `json:"description"`
	StartDate   *Timestamp `json:"startDate,omitempty"`
	EndDate     *Timestamp `json:"endDate,omitempty"`
	IsAllDay    bool       `json:"isAllDay"`
	CreatedAt   *Timestamp `json:"createdAt,omitempty"`
	UpdatedAt   *Timestamp `json:"updatedAt,omitempty"`
}

// EventToView decodes a stored document into the display model. A missing
// color falls back to the default for the event type.
func EventToView(doc ports.Document) (entities.Event, error) {
	var ed EventDocument
	if err := json.Unmarshal(doc.Body, &ed); err != nil {
		return entities.Event{}, err
	}

	eventType := entities.EventTypeFromString(ed.Type)
	color := ed.Color
	if color == "" {
		color = eventType.DefaultColor()
	}

	event := entities.Event{
		ID:          doc.ID,
		Title:       ed.Title,
		Type:        eventType,
		Color:       color,
		Location:    ed.Location,
		Description: ed.Description,
		IsAllDay:    ed.IsAllDay,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}
	if ed.StartDate != nil {
		event.StartDate = ed.StartDate.Time
	}
	if ed.EndDate != nil && !ed.EndDate.IsZero() {
		event.EndDate = ed.EndDate.Time
	}
	return event, nil
}

// EventToStorage maps a creation form into the stored shape. Date and time
// inputs are combined into single points in time; the end falls back to the
// start and the color to the type default. Time-of-day inputs are ignored
// for all-day events.
func EventToStorage(req ports.CreateEventRequest) (EventDocument, error) {
	startTime, endTime := req.StartTime, req.EndTime
	if req.IsAllDay {
		startTime, endTime = "", ""
	}

	start, err := ParseDateTime(req.StartDate, startTime)
	if err != nil {
		return EventDocument{}, entities.NewValidationError("start_date", "must be a valid date")
	}

	end := start
	if req.EndDate != "" {
		end, err = ParseDateTime(req.EndDate, endTime)
		if err != nil {
			return EventDocument{}, entities.NewValidationError("end_date", "must be a valid date")
		}
	} else if endTime != "" {
		end, err = ParseDateTime(req.StartDate, endTime)
		if err != nil {
			return EventDocument{}, entities.NewValidationError("end_time", "must be a valid time")
		}
	}

	eventType := entities.EventTypeFromString(req.Type)
	color := req.Color
	if color == "" {
		color = eventType.DefaultColor()
	}

	return EventDocument{
		Title:       req.Title,
		Type:        string(eventType),
		Color:       color,
		Location:    req.Location,
		Description: req.Description,
		StartDate:   NewTimestamp(start),
		EndDate:     NewTimestamp(end),
		IsAllDay:    req.IsAllDay,
	}, nil
}

// EventPatch maps a partial update into the merge payload. Date fields are
// only written when they parse; updatedAt is always bumped.
func EventPatch(req ports.UpdateEventRequest, now time.Time) map[string]interface{} {
	patch := map[string]interface{}{
		"updatedAt": now.UTC().Format(time.RFC3339Nano),
	}
	if req.Title != nil {
		patch["title"] = *req.Title
	}
	if req.Type != nil {
		eventType := entities.EventTypeFromString(*req.Type)
		patch["type"] = string(eventType)
		if req.Color == nil {
			patch["color"] = eventType.DefaultColor()
		}
	}
	if req.Color != nil && *req.Color != "" {
		patch["color"] = *req.Color
	}
	if req.Location != nil {
		patch["location"] = *req.Location
	}
	if req.Description != nil {
		patch["description"] = *req.Description
	}
	if req.IsAllDay != nil {
		patch["isAllDay"] = *req.IsAllDay
	}
	if req.StartDate != nil {
		clock := ""
		if req.StartTime != nil {
			clock = *req.StartTime
		}
		if req.IsAllDay != nil && *req.IsAllDay {
			clock = ""
		}
		if parsed, err := ParseDateTime(*req.StartDate, clock); err == nil {
			patch["startDate"] = parsed.Format(time.RFC3339Nano)
		}
	}
	if req.EndDate != nil {
		clock := ""
		if req.EndTime != nil {
			clock = *req.EndTime
		}
		if req.IsAllDay != nil && *req.IsAllDay {
			clock = ""
		}
		if parsed, err := ParseDateTime(*req.EndDate, clock); err == nil {
			patch["endDate"] = parsed.Format(time.RFC3339Nano)
		}
	}
	return patch
}

// MarshalBody encodes a storage document for the store write path
func MarshalBody(v interface{}) (json.RawMessage, error) {
	return json.Marshal(v)
}

// MarshalPatch encodes a merge payload for the store update path
func MarshalPatch(patch map[string]interface{}) (json.RawMessage, error) {
	return json.Marshal(patch)
}
