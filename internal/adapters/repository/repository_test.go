package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spartan/planner/internal/domain/entities"
	"github.com/spartan/planner/internal/infrastructure/logger"
	"github.com/spartan/planner/internal/ports"
)

// fakeStore is an in-memory ports.DocumentStore used to exercise the
// repositories without a database
type fakeStore struct {
	docs    map[string][]ports.Document
	nextID  int
	failAll bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{docs: map[string][]ports.Document{}}
}

func (s *fakeStore) List(_ context.Context, path, orderBy string) ([]ports.Document, error) {
	if s.failAll {
		return nil, entities.NewStoreError("list", errors.New("connection refused"))
	}
	out := append([]ports.Document(nil), s.docs[path]...)
	sort.SliceStable(out, func(i, j int) bool {
		return fieldString(out[i], orderBy) < fieldString(out[j], orderBy)
	})
	return out, nil
}

func (s *fakeStore) ListWhere(ctx context.Context, path, field, value, orderBy string) ([]ports.Document, error) {
	all, err := s.List(ctx, path, orderBy)
	if err != nil {
		return nil, err
	}
	out := make([]ports.Document, 0, len(all))
	for _, doc := range all {
		if fieldString(doc, field) == value {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (s *fakeStore) Get(_ context.Context, path, id string) (*ports.Document, error) {
	if s.failAll {
		return nil, entities.NewStoreError("get", errors.New("connection refused"))
	}
	for _, doc := range s.docs[path] {
		if doc.ID == id {
			copied := doc
			return &copied, nil
		}
	}
	return nil, entities.ErrNotFound
}

func (s *fakeStore) Create(_ context.Context, path string, body json.RawMessage) (*ports.Document, error) {
	if s.failAll {
		return nil, entities.NewStoreError("create", errors.New("connection refused"))
	}
	s.nextID++
	now := time.Now().UTC()
	doc := ports.Document{
		ID:        fmt.Sprintf("doc-%d", s.nextID),
		Body:      body,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.docs[path] = append(s.docs[path], doc)
	return &doc, nil
}

func (s *fakeStore) Update(_ context.Context, path, id string, patch json.RawMessage) error {
	if s.failAll {
		return entities.NewStoreError("update", errors.New("connection refused"))
	}
	for i, doc := range s.docs[path] {
		if doc.ID != id {
			continue
		}
		var merged map[string]interface{}
		if err := json.Unmarshal(doc.Body, &merged); err != nil {
			return err
		}
		var changes map[string]interface{}
		if err := json.Unmarshal(patch, &changes); err != nil {
			return err
		}
		for k, v := range changes {
			merged[k] = v
		}
		body, err := json.Marshal(merged)
		if err != nil {
			return err
		}
		s.docs[path][i].Body = body
		s.docs[path][i].UpdatedAt = time.Now().UTC()
		return nil
	}
	return entities.ErrNotFound
}

func (s *fakeStore) Delete(_ context.Context, path, id string) error {
	if s.failAll {
		return entities.NewStoreError("delete", errors.New("connection refused"))
	}
	docs := s.docs[path]
	for i, doc := range docs {
		if doc.ID == id {
			s.docs[path] = append(docs[:i], docs[i+1:]...)
			return nil
		}
	}
	return nil
}

func fieldString(doc ports.Document, field string) string {
	var body map[string]interface{}
	if err := json.Unmarshal(doc.Body, &body); err != nil {
		return ""
	}
	if v, ok := body[field].(string); ok {
		return v
	}
	return ""
}

const testPath = "users/test-user/tasks"

func newTaskRepo(store ports.DocumentStore) *taskRepository {
	return &taskRepository{
		store:  store,
		path:   testPath,
		logger: logger.NewNop(),
		now:    func() time.Time { return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC) },
	}
}

func newEventRepo(store ports.DocumentStore) *eventRepository {
	return &eventRepository{
		store:  store,
		path:   "users/test-user/events",
		logger: logger.NewNop(),
		now:    func() time.Time { return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC) },
	}
}

func TestTaskRepositoryNilStore(t *testing.T) {
	repo := newTaskRepo(nil)
	ctx := context.Background()

	_, err := repo.List(ctx)
	assert.ErrorIs(t, err, entities.ErrStoreUninitialized)

	_, err = repo.Create(ctx, ports.CreateTaskRequest{Title: "x"})
	assert.ErrorIs(t, err, entities.ErrStoreUninitialized)

	err = repo.Delete(ctx, "doc-1")
	assert.ErrorIs(t, err, entities.ErrStoreUninitialized)

	_, err = repo.Stats(ctx)
	assert.ErrorIs(t, err, entities.ErrStoreUninitialized, "stats never degrade without a store client")
}

func TestTaskRepositoryListDegradesOnTransportFailure(t *testing.T) {
	store := newFakeStore()
	store.failAll = true
	repo := newTaskRepo(store)

	tasks, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tasks)

	stats, err := repo.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entities.TaskStats{}, stats)
}

func TestTaskRepositoryWriteFailurePropagates(t *testing.T) {
	store := newFakeStore()
	store.failAll = true
	repo := newTaskRepo(store)

	_, err := repo.Create(context.Background(), ports.CreateTaskRequest{Title: "x"})
	assert.True(t, entities.IsStoreError(err), "writes do not degrade")
}

func TestTaskRepositoryCreateValidation(t *testing.T) {
	repo := newTaskRepo(newFakeStore())

	_, err := repo.Create(context.Background(), ports.CreateTaskRequest{Title: "   "})
	var ve *entities.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "title", ve.Field)
}

func TestTaskRepositoryCreateAndGet(t *testing.T) {
	repo := newTaskRepo(newFakeStore())
	ctx := context.Background()

	id, err := repo.Create(ctx, ports.CreateTaskRequest{
		Title:    "Write essay",
		Category: "Homework",
		Priority: "High",
		DueDate:  "2026-03-20",
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	task, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Write essay", task.Title)
	assert.Equal(t, entities.PriorityHigh, task.Priority)
	assert.Equal(t, entities.StatusOpen, task.Status)
	assert.Equal(t, "Homework", task.Category)
}

func TestTaskRepositoryGetNotFound(t *testing.T) {
	repo := newTaskRepo(newFakeStore())
	_, err := repo.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, entities.ErrNotFound)
}

func TestTaskRepositoryListOrdering(t *testing.T) {
	repo := newTaskRepo(newFakeStore())
	ctx := context.Background()

	_, err := repo.Create(ctx, ports.CreateTaskRequest{Title: "later", DueDate: "2026-03-25"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, ports.CreateTaskRequest{Title: "sooner", DueDate: "2026-03-12"})
	require.NoError(t, err)

	tasks, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "sooner", tasks[0].Title)
	assert.Equal(t, "later", tasks[1].Title)
}

func TestTaskRepositoryUpdateStatus(t *testing.T) {
	repo := newTaskRepo(newFakeStore())
	ctx := context.Background()

	id, err := repo.Create(ctx, ports.CreateTaskRequest{Title: "toggle me"})
	require.NoError(t, err)

	status := "Completed"
	require.NoError(t, repo.Update(ctx, id, ports.UpdateTaskRequest{Status: &status}))

	task, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, entities.StatusDone, task.Status)
}

func TestTaskRepositoryUpdateMissing(t *testing.T) {
	repo := newTaskRepo(newFakeStore())
	status := "Completed"
	err := repo.Update(context.Background(), "missing", ports.UpdateTaskRequest{Status: &status})
	assert.ErrorIs(t, err, entities.ErrNotFound)
}

func TestTaskRepositoryDeleteAbsentIsNoError(t *testing.T) {
	repo := newTaskRepo(newFakeStore())
	assert.NoError(t, repo.Delete(context.Background(), "missing"))
}

func TestTaskRepositoryStats(t *testing.T) {
	repo := newTaskRepo(newFakeStore())
	ctx := context.Background()

	// now is fixed at 2026-03-10 12:00 UTC
	fixtures := []ports.CreateTaskRequest{
		{Title: "overdue", DueDate: "2026-03-09", Status: "In Progress"},
		{Title: "due soon", DueDate: "2026-03-13", Status: "Not Started"},
		{Title: "due later this week", DueDate: "2026-03-16", Status: "Not Started"},
		{Title: "far out", DueDate: "2026-03-25", Status: "Not Started"},
		{Title: "finished late", DueDate: "2026-03-01", Status: "Completed"},
	}
	for _, req := range fixtures {
		_, err := repo.Create(ctx, req)
		require.NoError(t, err)
	}

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)

	assert.Equal(t, 5, stats.TotalTasks)
	assert.Equal(t, 1, stats.CompletedTasks)
	assert.Equal(t, 1, stats.InProgressTasks)
	assert.Equal(t, 3, stats.NotStartedTasks)
	assert.Equal(t, 2, stats.UpcomingThisWeek, "only open tasks due within seven days count")
	assert.Equal(t, 1, stats.Overdue, "completed tasks are never overdue")
}

func TestTaskRepositorySkipsMalformedDocuments(t *testing.T) {
	store := newFakeStore()
	store.docs[testPath] = []ports.Document{
		{ID: "bad", Body: json.RawMessage(`{broken`)},
		{ID: "good", Body: json.RawMessage(`{"title": "ok", "status": "open", "priority": 1}`)},
	}
	repo := newTaskRepo(store)

	tasks, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "ok", tasks[0].Title)
}

func TestEventRepositoryCreateValidation(t *testing.T) {
	repo := newEventRepo(newFakeStore())
	ctx := context.Background()

	_, err := repo.Create(ctx, ports.CreateEventRequest{StartDate: "2026-04-01"})
	var ve *entities.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "title", ve.Field)

	_, err = repo.Create(ctx, ports.CreateEventRequest{Title: "No date"})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "start_date", ve.Field)
}

func TestEventRepositoryRoundTrip(t *testing.T) {
	repo := newEventRepo(newFakeStore())
	ctx := context.Background()

	id, err := repo.Create(ctx, ports.CreateEventRequest{
		Title:     "Club meeting",
		Type:      "meeting",
		StartDate: "2026-04-01",
		StartTime: "18:00",
		EndTime:   "19:30",
		Location:  "Room 12",
	})
	require.NoError(t, err)

	event, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, entities.EventTypeMeeting, event.Type)
	assert.Equal(t, "#4facfe", event.Color)
	assert.Equal(t, time.Date(2026, 4, 1, 18, 0, 0, 0, time.UTC), event.StartDate.UTC())
	assert.Equal(t, time.Date(2026, 4, 1, 19, 30, 0, 0, time.UTC), event.EndDate.UTC())
}

func TestEventRepositoryListDegrades(t *testing.T) {
	store := newFakeStore()
	store.failAll = true
	repo := newEventRepo(store)

	events, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, events)
}
