// Package docstore implements the document store over Postgres. Documents
// live in a single JSONB table addressed by collection path and id, which
// keeps the schemaless shape of the stored task and event bodies.
package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/spartan/planner/internal/domain/entities"
	"github.com/spartan/planner/internal/infrastructure/database"
	"github.com/spartan/planner/internal/infrastructure/logger"
	"github.com/spartan/planner/internal/ports"
)

type documentRow struct {
	ID        string          `db:"id"`
	Body      json.RawMessage `db:"body"`
	CreatedAt sql.NullTime    `db:"created_at"`
	UpdatedAt sql.NullTime    `db:"updated_at"`
}

// Client is the Postgres-backed ports.DocumentStore
type Client struct {
	db     *database.DB
	logger *logger.Logger
}

// NewClient creates a document store client
func NewClient(db *database.DB, log *logger.Logger) *Client {
	return &Client{db: db, logger: log.WithComponent("docstore")}
}

// List returns all documents under path ordered ascending by the named body
// field. Rows missing the field sort first, matching chronological order for
// RFC3339 date fields where an absent date means "no due date".
func (c *Client) List(ctx context.Context, path, orderBy string) ([]ports.Document, error) {
	query := `
		SELECT id, body, created_at, updated_at
		FROM documents
		WHERE path = $1
		ORDER BY body->>$2 ASC NULLS FIRST, id ASC`

	var rows []documentRow
	if err := c.db.DB.SelectContext(ctx, &rows, query, path, orderBy); err != nil {
		return nil, entities.NewStoreError("list", err)
	}
	return toDocuments(rows), nil
}

// ListWhere returns documents under path whose body field equals value
func (c *Client) ListWhere(ctx context.Context, path, field, value, orderBy string) ([]ports.Document, error) {
	query := `
		SELECT id, body, created_at, updated_at
		FROM documents
		WHERE path = $1 AND body->>$2 = $3
		ORDER BY body->>$4 ASC NULLS FIRST, id ASC`

	var rows []documentRow
	if err := c.db.DB.SelectContext(ctx, &rows, query, path, field, value, orderBy); err != nil {
		return nil, entities.NewStoreError("list", err)
	}
	return toDocuments(rows), nil
}

// Get fetches one document by path and id
func (c *Client) Get(ctx context.Context, path, id string) (*ports.Document, error) {
	query := `
		SELECT id, body, created_at, updated_at
		FROM documents
		WHERE path = $1 AND id = $2`

	var row documentRow
	if err := c.db.DB.GetContext(ctx, &row, query, path, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrNotFound
		}
		return nil, entities.NewStoreError("get", err)
	}
	doc := toDocument(row)
	return &doc, nil
}

// Create stores body under a fresh id and returns the stored document with
// its server-assigned id and timestamps
func (c *Client) Create(ctx context.Context, path string, body json.RawMessage) (*ports.Document, error) {
	query := `
		INSERT INTO documents (path, id, body, created_at, updated_at)
		VALUES ($1, $2, $3, now(), now())
		RETURNING id, body, created_at, updated_at`

	id := uuid.New().String()
	var row documentRow
	if err := c.db.DB.GetContext(ctx, &row, query, path, id, body); err != nil {
		return nil, entities.NewStoreError("create", err)
	}

	c.logger.WithFields("path", path, "id", row.ID).Debug("document created")
	doc := toDocument(row)
	return &doc, nil
}

// Update merges patch into the document body and bumps the update timestamp
func (c *Client) Update(ctx context.Context, path, id string, patch json.RawMessage) error {
	query := `
		UPDATE documents
		SET body = body || $3::jsonb, updated_at = now()
		WHERE path = $1 AND id = $2`

	result, err := c.db.DB.ExecContext(ctx, query, path, id, patch)
	if err != nil {
		return entities.NewStoreError("update", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return entities.NewStoreError("update", err)
	}
	if affected == 0 {
		return entities.ErrNotFound
	}
	return nil
}

// Delete removes the document. Deleting an absent id is not an error.
func (c *Client) Delete(ctx context.Context, path, id string) error {
	query := `DELETE FROM documents WHERE path = $1 AND id = $2`
	if _, err := c.db.DB.ExecContext(ctx, query, path, id); err != nil {
		return entities.NewStoreError("delete", err)
	}
	return nil
}

func toDocuments(rows []documentRow) []ports.Document {
	docs := make([]ports.Document, 0, len(rows))
	for _, row := range rows {
		docs = append(docs, toDocument(row))
	}
	return docs
}

func toDocument(row documentRow) ports.Document {
	doc := ports.Document{ID: row.ID, Body: row.Body}
	if row.CreatedAt.Valid {
		doc.CreatedAt = row.CreatedAt.Time
	}
	if row.UpdatedAt.Valid {
		doc.UpdatedAt = row.UpdatedAt.Time
	}
	return doc
}

// CollectionPath builds the per-user collection path for a record kind
func CollectionPath(userID, kind string) string {
	return fmt.Sprintf("users/%s/%s", userID, kind)
}
