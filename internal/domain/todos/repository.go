package todos

import "context"

type Repository interface {
	ListTodos(ctx context.Context, filter ListFilter) ([]Todo, error)
	GetTodoByID(ctx context.Context, id int64) (*Todo, error)
	CreateTodo(ctx context.Context, todo *Todo) error
	UpdateTodo(ctx context.Context, todo *Todo) error
	DeleteTodo(ctx context.Context, id int64) (bool, error)
}
