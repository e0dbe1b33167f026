package inmemory

import (
	"context"
	"time"

	"movein-app-go/internal/domain/todos"
)

type TodosRepository struct {
	store *Store
}

var _ todos.Repository = (*TodosRepository)(nil)

func (r *TodosRepository) ListTodos(ctx context.Context, filter todos.ListFilter) ([]todos.Todo, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.listTodosLocked(filter), nil
}

func (r *TodosRepository) GetTodoByID(ctx context.Context, id int64) (*todos.Todo, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.getTodoLocked(id)
}

func (r *TodosRepository) CreateTodo(ctx context.Context, todo *todos.Todo) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.createTodoLocked(todo)
}

func (r *TodosRepository) UpdateTodo(ctx context.Context, todo *todos.Todo) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.updateTodoLocked(todo)
}

func (r *TodosRepository) DeleteTodo(ctx context.Context, id int64) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	_, ok := r.store.todos[id]
	delete(r.store.todos, id)
	return ok, nil
}

func (s *Store) listTodosLocked(filter todos.ListFilter) []todos.Todo {
	items := make([]todos.Todo, 0, len(s.todos))
	for _, id := range sortedIDs(s.todos) {
		todo := s.todos[id]
		if filter.ProjectID != nil && !sameScope(todo.ProjectID, filter.ProjectID) {
			continue
		}
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
	return items
}

func (s *Store) getTodoLocked(id int64) (*todos.Todo, error) {
	todo, ok := s.todos[id]
	if !ok {
		return nil, todos.ErrTodoNotFound
	}
	copied := *todo
	return &copied, nil
}

func (s *Store) createTodoLocked(todo *todos.Todo) error {
	s.todoSeq++
	todo.ID = s.todoSeq
	if todo.CreatedAt.IsZero() {
		todo.CreatedAt = time.Now().UTC()
		todo.UpdatedAt = todo.CreatedAt
	}
	stored := *todo
	s.todos[todo.ID] = &stored
	return nil
}

func (s *Store) updateTodoLocked(todo *todos.Todo) error {
	if _, ok := s.todos[todo.ID]; !ok {
		return todos.ErrTodoNotFound
	}
	stored := *todo
	s.todos[todo.ID] = &stored
	return nil
}
