package repository

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/spartan/planner/internal/adapters/mapper"
	"github.com/spartan/planner/internal/domain/entities"
	"github.com/spartan/planner/internal/infrastructure/logger"
	"github.com/spartan/planner/internal/ports"
)

// eventRepository reads and writes event documents for one user's collection
type eventRepository struct {
	store  ports.DocumentStore
	path   string
	logger *logger.Logger
	now    func() time.Time
}

// NewEventRepository creates an event repository bound to the given
// collection path. A nil store makes every operation fail with
// entities.ErrStoreUninitialized.
func NewEventRepository(store ports.DocumentStore, path string, log *logger.Logger) ports.EventRepository {
	return &eventRepository{
		store:  store,
		path:   path,
		logger: log.WithComponent("event_repository"),
		now:    time.Now,
	}
}

// List returns all events ordered by start date ascending. Transport
// failures degrade to an empty list.
func (r *eventRepository) List(ctx context.Context) ([]entities.Event, error) {
	if r.store == nil {
		return nil, entities.ErrStoreUninitialized
	}

	docs, err := r.store.List(ctx, r.path, "startDate")
	if err != nil {
		if entities.IsStoreError(err) {
			r.logger.WithError(err).Warn("event list degraded to empty")
			return []entities.Event{}, nil
		}
		return nil, err
	}

	events := make([]entities.Event, 0, len(docs))
	for _, doc := range docs {
		event, err := mapper.EventToView(doc)
		if err != nil {
			r.logger.WithError(err).WithFields("id", doc.ID).Warn("skipping malformed event document")
			continue
		}
		events = append(events, event)
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].StartDate.Before(events[j].StartDate)
	})
	return events, nil
}

// Get fetches one event by id
func (r *eventRepository) Get(ctx context.Context, id string) (*entities.Event, error) {
	if r.store == nil {
		return nil, entities.ErrStoreUninitialized
	}

	doc, err := r.store.Get(ctx, r.path, id)
	if err != nil {
		return nil, err
	}
	event, err := mapper.EventToView(*doc)
	if err != nil {
		return nil, entities.NewStoreError("decode", err)
	}
	return &event, nil
}

// Create validates and stores a new event, returning its assigned id
func (r *eventRepository) Create(ctx context.Context, req ports.CreateEventRequest) (string, error) {
	if r.store == nil {
		return "", entities.ErrStoreUninitialized
	}
	if strings.TrimSpace(req.Title) == "" {
		return "", entities.NewValidationError("title", "is required")
	}
	if req.StartDate == "" {
		return "", entities.NewValidationError("start_date", "is required")
	}

	doc, err := mapper.EventToStorage(req)
	if err != nil {
		return "", err
	}
	body, err := mapper.MarshalBody(doc)
	if err != nil {
		return "", entities.NewStoreError("encode", err)
	}

	created, err := r.store.Create(ctx, r.path, body)
	if err != nil {
		return "", err
	}
	r.logger.WithFields("id", created.ID).Info("event created")
	return created.ID, nil
}

// Update writes a partial event update
func (r *eventRepository) Update(ctx context.Context, id string, req ports.UpdateEventRequest) error {
	if r.store == nil {
		return entities.ErrStoreUninitialized
	}
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return entities.NewValidationError("title", "is required")
	}

	patch, err := mapper.MarshalPatch(mapper.EventPatch(req, r.now()))
	if err != nil {
		return entities.NewStoreError("encode", err)
	}
	return r.store.Update(ctx, r.path, id, patch)
}

// Delete removes an event
func (r *eventRepository) Delete(ctx context.Context, id string) error {
	if r.store == nil {
		return entities.ErrStoreUninitialized
	}
	if err := r.store.Delete(ctx, r.path, id); err != nil {
		return err
	}
	r.logger.WithFields("id", id).Info("event deleted")
	return nil
}
