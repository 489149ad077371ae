package services

import (
	"context"
	"sync"

	"github.com/spartan/planner/internal/domain/entities"
	"github.com/spartan/planner/internal/infrastructure/logger"
	"github.com/spartan/planner/internal/ports"
)

// EventService coordinates calendar event operations with the same
// per-target mutation guard as TaskService
type EventService struct {
	repo   ports.EventRepository
	logger *logger.Logger

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewEventService creates an event service
func NewEventService(repo ports.EventRepository, log *logger.Logger) *EventService {
	return &EventService{
		repo:     repo,
		logger:   log.WithComponent("event_service"),
		inFlight: make(map[string]struct{}),
	}
}

// List returns all events
func (s *EventService) List(ctx context.Context) ([]entities.Event, error) {
	return s.repo.List(ctx)
}

// Get returns one event
func (s *EventService) Get(ctx context.Context, id string) (*entities.Event, error) {
	return s.repo.Get(ctx, id)
}

// Create stores a new event and returns it
func (s *EventService) Create(ctx context.Context, req ports.CreateEventRequest) (*entities.Event, error) {
	id, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

// Update applies a partial update and returns the stored result
func (s *EventService) Update(ctx context.Context, id string, req ports.UpdateEventRequest) (*entities.Event, error) {
	if err := s.acquire(id); err != nil {
		return nil, err
	}
	defer s.release(id)

	if err := s.repo.Update(ctx, id, req); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

// Delete removes an event
func (s *EventService) Delete(ctx context.Context, id string) error {
	if err := s.acquire(id); err != nil {
		return err
	}
	defer s.release(id)

	return s.repo.Delete(ctx, id)
}

func (s *EventService) acquire(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[id]; busy {
		return entities.ErrOperationInFlight
	}
	s.inFlight[id] = struct{}{}
	return nil
}

func (s *EventService) release(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, id)
}
