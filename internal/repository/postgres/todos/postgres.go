package todos

import (
	"context"
	"errors"

	todosdomain "movein-app-go/internal/domain/todos"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var _ todosdomain.Repository = (*PostgresRepository)(nil)

func (r *PostgresRepository) ListTodos(ctx context.Context, filter todosdomain.ListFilter) ([]todosdomain.Todo, error) {
	query := r.db.WithContext(ctx).Model(&todosdomain.Todo{})
	if filter.ProjectID != nil {
		query = query.Where("project_id = ?", *filter.ProjectID)
	}
	if filter.Completed != nil {
		query = query.Where("completed = ?", *filter.Completed)
	}
	if filter.DueBefore != nil {
		query = query.Where("due_date IS NOT NULL AND due_date <= ?", *filter.DueBefore)
	}

	var items []todosdomain.Todo
	if err := query.Order("id").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) GetTodoByID(ctx context.Context, id int64) (*todosdomain.Todo, error) {
	var todo todosdomain.Todo
	if err := r.db.WithContext(ctx).First(&todo, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, todosdomain.ErrTodoNotFound
		}
		return nil, err
	}
	return &todo, nil
}

func (r *PostgresRepository) CreateTodo(ctx context.Context, todo *todosdomain.Todo) error {
	return r.db.WithContext(ctx).Create(todo).Error
}

func (r *PostgresRepository) UpdateTodo(ctx context.Context, todo *todosdomain.Todo) error {
	result := r.db.WithContext(ctx).
		Model(&todosdomain.Todo{}).
		Where("id = ?", todo.ID).
		Updates(map[string]interface{}{
			"title":                  todo.Title,
			"description":            todo.Description,
			"category":               todo.Category,
			"completed":              todo.Completed,
			"due_date":               todo.DueDate,
			"priority":               todo.Priority,
			"has_associated_expense": todo.HasAssociatedExpense,
			"estimated_amount":       todo.EstimatedAmount,
			"updated_at":             todo.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return todosdomain.ErrTodoNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteTodo(ctx context.Context, id int64) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&todosdomain.Todo{}, id)
	return result.RowsAffected > 0, result.Error
}
