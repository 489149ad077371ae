package services

import (
	"context"
	"sync"

	"github.com/spartan/planner/internal/domain/entities"
	"github.com/spartan/planner/internal/infrastructure/logger"
	"github.com/spartan/planner/internal/ports"
)

// TaskService coordinates task operations. Mutations on a given target are
// guarded so a retried call cannot race an unresolved one, and status
// toggles follow an optimistic flow: answer from a locally flipped copy,
// then reconcile against a fresh read.
type TaskService struct {
	repo   ports.TaskRepository
	logger *logger.Logger

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewTaskService creates a task service
func NewTaskService(repo ports.TaskRepository, log *logger.Logger) *TaskService {
	return &TaskService{
		repo:     repo,
		logger:   log.WithComponent("task_service"),
		inFlight: make(map[string]struct{}),
	}
}

// List returns all tasks
func (s *TaskService) List(ctx context.Context) ([]entities.Task, error) {
	return s.repo.List(ctx)
}

// ListByStatus returns tasks with the given status
func (s *TaskService) ListByStatus(ctx context.Context, status entities.Status) ([]entities.Task, error) {
	return s.repo.ListByStatus(ctx, status)
}

// Get returns one task
func (s *TaskService) Get(ctx context.Context, id string) (*entities.Task, error) {
	return s.repo.Get(ctx, id)
}

// Create stores a new task and returns it
func (s *TaskService) Create(ctx context.Context, req ports.CreateTaskRequest) (*entities.Task, error) {
	id, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

// Update applies a partial update and returns the stored result
func (s *TaskService) Update(ctx context.Context, id string, req ports.UpdateTaskRequest) (*entities.Task, error) {
	if err := s.acquire(id); err != nil {
		return nil, err
	}
	defer s.release(id)

	if err := s.repo.Update(ctx, id, req); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

// Delete removes a task
func (s *TaskService) Delete(ctx context.Context, id string) error {
	if err := s.acquire(id); err != nil {
		return err
	}
	defer s.release(id)

	return s.repo.Delete(ctx, id)
}

// ToggleStatus flips a task between completed and not started. The write is
// optimistic: whether it lands or fails, the method re-reads the list and
// returns the authoritative state, so a failed write surfaces as the list
// rolling back alongside the error.
func (s *TaskService) ToggleStatus(ctx context.Context, id string) ([]entities.Task, error) {
	if err := s.acquire(id); err != nil {
		return nil, err
	}
	defer s.release(id)

	task, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	next := entities.StatusDone
	if task.Status == entities.StatusDone {
		next = entities.StatusOpen
	}
	label := next.Label()
	writeErr := s.repo.Update(ctx, id, ports.UpdateTaskRequest{Status: &label})
	if writeErr != nil {
		s.logger.WithError(writeErr).WithFields("id", id).Warn("status toggle write failed, reconciling")
	}

	tasks, listErr := s.repo.List(ctx)
	if listErr != nil {
		return nil, listErr
	}
	return tasks, writeErr
}

// Stats returns the aggregate task counters
func (s *TaskService) Stats(ctx context.Context) (entities.TaskStats, error) {
	return s.repo.Stats(ctx)
}

func (s *TaskService) acquire(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[id]; busy {
		return entities.ErrOperationInFlight
	}
	s.inFlight[id] = struct{}{}
	return nil
}

func (s *TaskService) release(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, id)
}
