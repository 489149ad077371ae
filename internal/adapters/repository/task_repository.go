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

const upcomingWindow = 7 * 24 * time.Hour

// taskRepository reads and writes task documents for one user's collection
type taskRepository struct {
	store  ports.DocumentStore
	path   string
	logger *logger.Logger
	now    func() time.Time
}

// NewTaskRepository creates a task repository bound to the given collection
// path. A nil store is allowed; every operation then fails with
// entities.ErrStoreUninitialized.
func NewTaskRepository(store ports.DocumentStore, path string, log *logger.Logger) ports.TaskRepository {
	return &taskRepository{
		store:  store,
		path:   path,
		logger: log.WithComponent("task_repository"),
		now:    time.Now,
	}
}

// List returns all tasks ordered by due date ascending with no-due tasks
// first. Transport failures degrade to an empty list so dependent views
// still render; a missing store client does not.
func (r *taskRepository) List(ctx context.Context) ([]entities.Task, error) {
	if r.store == nil {
		return nil, entities.ErrStoreUninitialized
	}

	docs, err := r.store.List(ctx, r.path, "dueAt")
	if err != nil {
		if entities.IsStoreError(err) {
			r.logger.WithError(err).Warn("task list degraded to empty")
			return []entities.Task{}, nil
		}
		return nil, err
	}
	return r.toTasks(docs), nil
}

// ListByStatus returns tasks matching the given status code, with the same
// ordering and degradation as List
func (r *taskRepository) ListByStatus(ctx context.Context, status entities.Status) ([]entities.Task, error) {
	if r.store == nil {
		return nil, entities.ErrStoreUninitialized
	}

	docs, err := r.store.ListWhere(ctx, r.path, "status", string(status), "dueAt")
	if err != nil {
		if entities.IsStoreError(err) {
			r.logger.WithError(err).Warn("task list degraded to empty")
			return []entities.Task{}, nil
		}
		return nil, err
	}
	return r.toTasks(docs), nil
}

// Get fetches one task by id
func (r *taskRepository) Get(ctx context.Context, id string) (*entities.Task, error) {
	if r.store == nil {
		return nil, entities.ErrStoreUninitialized
	}

	doc, err := r.store.Get(ctx, r.path, id)
	if err != nil {
		return nil, err
	}
	task, err := mapper.TaskToView(*doc)
	if err != nil {
		return nil, entities.NewStoreError("decode", err)
	}
	return &task, nil
}

// Create validates and stores a new task, returning its assigned id
func (r *taskRepository) Create(ctx context.Context, req ports.CreateTaskRequest) (string, error) {
	if r.store == nil {
		return "", entities.ErrStoreUninitialized
	}
	if strings.TrimSpace(req.Title) == "" {
		return "", entities.NewValidationError("title", "is required")
	}

	body, err := mapper.MarshalBody(mapper.TaskToStorage(req, r.now()))
	if err != nil {
		return "", entities.NewStoreError("encode", err)
	}

	doc, err := r.store.Create(ctx, r.path, body)
	if err != nil {
		return "", err
	}
	r.logger.WithFields("id", doc.ID).Info("task created")
	return doc.ID, nil
}

// Update writes a partial task update
func (r *taskRepository) Update(ctx context.Context, id string, req ports.UpdateTaskRequest) error {
	if r.store == nil {
		return entities.ErrStoreUninitialized
	}
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return entities.NewValidationError("title", "is required")
	}

	patch, err := mapper.MarshalPatch(mapper.TaskPatch(req, r.now()))
	if err != nil {
		return entities.NewStoreError("encode", err)
	}
	return r.store.Update(ctx, r.path, id, patch)
}

// Delete removes a task
func (r *taskRepository) Delete(ctx context.Context, id string) error {
	if r.store == nil {
		return entities.ErrStoreUninitialized
	}
	if err := r.store.Delete(ctx, r.path, id); err != nil {
		return err
	}
	r.logger.WithFields("id", id).Info("task deleted")
	return nil
}

// Stats aggregates counts over the full task list. It inherits List's
// degradation, so a transport failure yields all-zero stats.
func (r *taskRepository) Stats(ctx context.Context) (entities.TaskStats, error) {
	tasks, err := r.List(ctx)
	if err != nil {
		return entities.TaskStats{}, err
	}

	now := r.now()
	stats := entities.TaskStats{TotalTasks: len(tasks)}
	for i := range tasks {
		task := &tasks[i]
		switch task.Status {
		case entities.StatusDone:
			stats.CompletedTasks++
		case entities.StatusInProgress:
			stats.InProgressTasks++
		default:
			stats.NotStartedTasks++
		}
		if task.IsUpcoming(now, upcomingWindow) {
			stats.UpcomingThisWeek++
		}
		if task.IsOverdue(now) {
			stats.Overdue++
		}
	}
	return stats, nil
}

// toTasks decodes documents, skipping any with malformed bodies, and
// re-sorts client side so ordering holds even when a store does not honor
// the requested order.
func (r *taskRepository) toTasks(docs []ports.Document) []entities.Task {
	tasks := make([]entities.Task, 0, len(docs))
	for _, doc := range docs {
		task, err := mapper.TaskToView(doc)
		if err != nil {
			r.logger.WithError(err).WithFields("id", doc.ID).Warn("skipping malformed task document")
			continue
		}
		tasks = append(tasks, task)
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].DueOrEpoch().Before(tasks[j].DueOrEpoch())
	})
	return tasks
}
