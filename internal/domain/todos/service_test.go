package todos

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"
)

type fakeTodosRepo struct {
	todos map[int64]*Todo
	seq   int64
}

func newFakeTodosRepo() *fakeTodosRepo {
	return &fakeTodosRepo{todos: make(map[int64]*Todo)}
}

func (r *fakeTodosRepo) ListTodos(ctx context.Context, filter ListFilter) ([]Todo, error) {
	items := make([]Todo, 0)
	for _, todo := range r.todos {
		if filter.Completed != nil && todo.Completed != *filter.Completed {
			continue
		}
		if filter.DueBefore != nil {
			if todo.DueDate == nil || todo.DueDate.After(*filter.DueBefore) {
				continue
			}
		}
		items = append(items, *todo)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (r *fakeTodosRepo) GetTodoByID(ctx context.Context, id int64) (*Todo, error) {
	todo, ok := r.todos[id]
	if !ok {
		return nil, ErrTodoNotFound
	}
	copied := *todo
	return &copied, nil
}

func (r *fakeTodosRepo) CreateTodo(ctx context.Context, todo *Todo) error {
	r.seq++
	todo.ID = r.seq
	todo.CreatedAt = time.Now().UTC()
	todo.UpdatedAt = todo.CreatedAt
	stored := *todo
	r.todos[todo.ID] = &stored
	return nil
}

func (r *fakeTodosRepo) UpdateTodo(ctx context.Context, todo *Todo) error {
	if _, ok := r.todos[todo.ID]; !ok {
		return ErrTodoNotFound
	}
	stored := *todo
	r.todos[todo.ID] = &stored
	return nil
}

func (r *fakeTodosRepo) DeleteTodo(ctx context.Context, id int64) (bool, error) {
	if _, ok := r.todos[id]; !ok {
		return false, nil
	}
	delete(r.todos, id)
	return true, nil
}

func TestCreateTodoDefaultsCategory(t *testing.T) {
	repo := newFakeTodosRepo()
	svc := NewService(repo)

	todo, err := svc.CreateTodo(context.Background(), CreateTodoInput{Title: "  Order boxes  "})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if todo.Title != "Order boxes" {
		t.Fatalf("expected trimmed title, got %q", todo.Title)
	}
	if todo.Category != "Unassigned" {
		t.Fatalf("expected fallback category, got %q", todo.Category)
	}
	if todo.ID != 1 {
		t.Fatalf("expected id 1, got %d", todo.ID)
	}
}

func TestCreateTodoTitleRequired(t *testing.T) {
	svc := NewService(newFakeTodosRepo())

	_, err := svc.CreateTodo(context.Background(), CreateTodoInput{Title: "   "})
	if !errors.Is(err, ErrTitleRequired) {
		t.Fatalf("expected ErrTitleRequired, got %v", err)
	}
}

func TestCreateTodoNegativeEstimate(t *testing.T) {
	svc := NewService(newFakeTodosRepo())

	amount := -5.0
	_, err := svc.CreateTodo(context.Background(), CreateTodoInput{Title: "Couch", EstimatedAmount: &amount})
	if !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestCreateTodoRunsHooks(t *testing.T) {
	repo := newFakeTodosRepo()
	svc := NewService(repo)

	var hookUserID int64
	var hookTodoID int64
	svc.OnCreated(func(ctx context.Context, userID int64, todo Todo) {
		hookUserID = userID
		hookTodoID = todo.ID
	})

	todo, err := svc.CreateTodo(context.Background(), CreateTodoInput{UserID: 7, Title: "Book movers"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if hookUserID != 7 {
		t.Fatalf("expected hook user id 7, got %d", hookUserID)
	}
	if hookTodoID != todo.ID {
		t.Fatalf("expected hook todo id %d, got %d", todo.ID, hookTodoID)
	}
}

func TestUpdateTodoPartialMerge(t *testing.T) {
	repo := newFakeTodosRepo()
	svc := NewService(repo)

	due := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	created, err := svc.CreateTodo(context.Background(), CreateTodoInput{
		Title:       "Transfer utilities",
		Description: "call the provider",
		Category:    "Utilities",
		DueDate:     &due,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	completed := true
	updated, err := svc.UpdateTodo(context.Background(), UpdateTodoInput{
		ID:        created.ID,
		Completed: &completed,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.Completed {
		t.Fatalf("expected completed")
	}
	if updated.Title != "Transfer utilities" || updated.Category != "Utilities" {
		t.Fatalf("untouched fields changed: %+v", updated)
	}
	if updated.DueDate == nil || !updated.DueDate.Equal(due) {
		t.Fatalf("due date changed: %v", updated.DueDate)
	}
}

func TestUpdateTodoClearsDueDate(t *testing.T) {
	repo := newFakeTodosRepo()
	svc := NewService(repo)

	due := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	created, err := svc.CreateTodo(context.Background(), CreateTodoInput{Title: "Paint", DueDate: &due})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.UpdateTodo(context.Background(), UpdateTodoInput{
		ID:      created.ID,
		DueDate: OptionalNullableTime{Set: true, Value: nil},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.DueDate != nil {
		t.Fatalf("expected due date cleared, got %v", updated.DueDate)
	}
}

func TestUpdateTodoNotFound(t *testing.T) {
	svc := NewService(newFakeTodosRepo())

	title := "Anything"
	_, err := svc.UpdateTodo(context.Background(), UpdateTodoInput{ID: 42, Title: &title})
	if !errors.Is(err, ErrTodoNotFound) {
		t.Fatalf("expected ErrTodoNotFound, got %v", err)
	}
}

func TestDeleteTodoIdempotent(t *testing.T) {
	repo := newFakeTodosRepo()
	svc := NewService(repo)

	created, err := svc.CreateTodo(context.Background(), CreateTodoInput{Title: "Drop keys"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.DeleteTodo(context.Background(), created.ID); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := svc.DeleteTodo(context.Background(), created.ID); err != nil {
		t.Fatalf("second delete should be a no-op, got %v", err)
	}
	if err := svc.DeleteTodo(context.Background(), 999); err != nil {
		t.Fatalf("deleting unknown id should be a no-op, got %v", err)
	}
}
