package categories

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	ListCategories(ctx context.Context, projectID *int64) ([]Category, error)
	GetCategoryByID(ctx context.Context, id int64) (*Category, error)
	CreateCategory(ctx context.Context, category *Category) error
	DeleteCategory(ctx context.Context, id int64) (bool, error)
	// Reassign rewrites the denormalized category field on every todo or
	// expense in scope whose name matches oldName case-insensitively, and
	// reports how many records changed.
	ReassignTodoCategory(ctx context.Context, projectID *int64, oldName, newName string) (int64, error)
	ReassignExpenseCategory(ctx context.Context, projectID *int64, oldName, newName string) (int64, error)
}
