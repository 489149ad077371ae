package ports

import (
	"context"
	"encoding/json"
	"time"
)

// Document is one record in the document store. CreatedAt and UpdatedAt are
// server-assigned: the store stamps them on create and bumps UpdatedAt on
// every partial update.
type Document struct {
	ID        string
	Body      json.RawMessage
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DocumentStore is the consumed document database capability. Records are
// addressed by collection path (e.g. users/{userID}/tasks) and id. Ids are
// assigned by the store on create.
type DocumentStore interface {
	// List returns all documents under path ordered ascending by the named
	// body field. Documents missing the field sort first.
	List(ctx context.Context, path, orderBy string) ([]Document, error)

	// ListWhere returns documents under path whose body field equals value,
	// ordered ascending by orderBy.
	ListWhere(ctx context.Context, path, field, value, orderBy string) ([]Document, error)

	// Get fetches a single document; entities.ErrNotFound when absent.
	Get(ctx context.Context, path, id string) (*Document, error)

	// Create stores body under a fresh id and returns the stored document
	// with its server-assigned id and timestamps.
	Create(ctx context.Context, path string, body json.RawMessage) (*Document, error)

	// Update merges patch into the document body and bumps the update
	// timestamp; entities.ErrNotFound when absent.
	Update(ctx context.Context, path, id string, patch json.RawMessage) error

	// Delete removes the document. Deleting an absent id is not an error.
	Delete(ctx context.Context, path, id string) error
}
