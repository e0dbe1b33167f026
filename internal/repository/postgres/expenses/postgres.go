package expenses

import (
	"context"
	"errors"

	expensesdomain "movein-app-go/internal/domain/expenses"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var _ expensesdomain.Repository = (*PostgresRepository)(nil)

func (r *PostgresRepository) ListExpenses(ctx context.Context, filter expensesdomain.ListFilter) ([]expensesdomain.Expense, error) {
	query := r.db.WithContext(ctx).Model(&expensesdomain.Expense{})
	if filter.ProjectID != nil {
		query = query.Where("project_id = ?", *filter.ProjectID)
	}
	if filter.IsBudget != nil {
		query = query.Where("is_budget = ?", *filter.IsBudget)
	}
	if filter.TodoID != nil {
		query = query.Where("todo_id = ?", *filter.TodoID)
	}

	var items []expensesdomain.Expense
	if err := query.Order("id").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) GetExpenseByID(ctx context.Context, id int64) (*expensesdomain.Expense, error) {
	var expense expensesdomain.Expense
	if err := r.db.WithContext(ctx).First(&expense, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, expensesdomain.ErrExpenseNotFound
		}
		return nil, err
	}
	return &expense, nil
}

func (r *PostgresRepository) CreateExpense(ctx context.Context, expense *expensesdomain.Expense) error {
	return r.db.WithContext(ctx).Create(expense).Error
}

func (r *PostgresRepository) UpdateExpense(ctx context.Context, expense *expensesdomain.Expense) error {
	result := r.db.WithContext(ctx).
		Model(&expensesdomain.Expense{}).
		Where("id = ?", expense.ID).
		Updates(map[string]interface{}{
			"description":  expense.Description,
			"amount":       expense.Amount,
			"category":     expense.Category,
			"date":         expense.Date,
			"is_budget":    expense.IsBudget,
			"completed_at": expense.CompletedAt,
			"updated_at":   expense.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return expensesdomain.ErrExpenseNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteExpense(ctx context.Context, id int64) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&expensesdomain.Expense{}, id)
	return result.RowsAffected > 0, result.Error
}
