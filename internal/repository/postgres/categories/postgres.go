package categories

import (
	"context"
	"errors"

	categoriesdomain "movein-app-go/internal/domain/categories"
	expensesdomain "movein-app-go/internal/domain/expenses"
	todosdomain "movein-app-go/internal/domain/todos"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var _ categoriesdomain.Repository = (*PostgresRepository)(nil)

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(categoriesdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) ListCategories(ctx context.Context, projectID *int64) ([]categoriesdomain.Category, error) {
	query := r.db.WithContext(ctx).Model(&categoriesdomain.Category{})
	query = scopeFilter(query, projectID)

	var items []categoriesdomain.Category
	if err := query.Order("id").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) GetCategoryByID(ctx context.Context, id int64) (*categoriesdomain.Category, error) {
	var category categoriesdomain.Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, categoriesdomain.ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *PostgresRepository) CreateCategory(ctx context.Context, category *categoriesdomain.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *PostgresRepository) DeleteCategory(ctx context.Context, id int64) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&categoriesdomain.Category{}, id)
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) ReassignTodoCategory(ctx context.Context, projectID *int64, oldName, newName string) (int64, error) {
	query := r.db.WithContext(ctx).
		Model(&todosdomain.Todo{}).
		Where("LOWER(category) = LOWER(?)", oldName).
		Where("category <> ?", newName)
	query = scopeFilter(query, projectID)

	result := query.Update("category", newName)
	return result.RowsAffected, result.Error
}

func (r *PostgresRepository) ReassignExpenseCategory(ctx context.Context, projectID *int64, oldName, newName string) (int64, error) {
	query := r.db.WithContext(ctx).
		Model(&expensesdomain.Expense{}).
		Where("LOWER(category) = LOWER(?)", oldName).
		Where("category <> ?", newName)
	query = scopeFilter(query, projectID)

	result := query.Update("category", newName)
	return result.RowsAffected, result.Error
}

func scopeFilter(query *gorm.DB, projectID *int64) *gorm.DB {
	if projectID == nil {
		return query.Where("project_id IS NULL")
	}
	return query.Where("project_id = ?", *projectID)
}
