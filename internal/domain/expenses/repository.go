package expenses

import "context"

type Repository interface {
	ListExpenses(ctx context.Context, filter ListFilter) ([]Expense, error)
	GetExpenseByID(ctx context.Context, id int64) (*Expense, error)
	CreateExpense(ctx context.Context, expense *Expense) error
	UpdateExpense(ctx context.Context, expense *Expense) error
	DeleteExpense(ctx context.Context, id int64) (bool, error)
}
