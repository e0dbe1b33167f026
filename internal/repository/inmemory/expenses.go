package inmemory

import (
	"context"
	"time"

	"movein-app-go/internal/domain/expenses"
)

type ExpensesRepository struct {
	store *Store
}

var _ expenses.Repository = (*ExpensesRepository)(nil)

func (r *ExpensesRepository) ListExpenses(ctx context.Context, filter expenses.ListFilter) ([]expenses.Expense, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	items := make([]expenses.Expense, 0, len(r.store.expenses))
	for _, id := range sortedIDs(r.store.expenses) {
		expense := r.store.expenses[id]
		if filter.ProjectID != nil && !sameScope(expense.ProjectID, filter.ProjectID) {
			continue
		}
		if filter.IsBudget != nil && expense.IsBudget != *filter.IsBudget {
			continue
		}
		if filter.TodoID != nil {
			if expense.TodoID == nil || *expense.TodoID != *filter.TodoID {
				continue
			}
		}
		items = append(items, *expense)
	}
	return items, nil
}

func (r *ExpensesRepository) GetExpenseByID(ctx context.Context, id int64) (*expenses.Expense, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	expense, ok := r.store.expenses[id]
	if !ok {
		return nil, expenses.ErrExpenseNotFound
	}
	copied := *expense
	return &copied, nil
}

func (r *ExpensesRepository) CreateExpense(ctx context.Context, expense *expenses.Expense) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.expenseSeq++
	expense.ID = r.store.expenseSeq
	if expense.CreatedAt.IsZero() {
		expense.CreatedAt = time.Now().UTC()
		expense.UpdatedAt = expense.CreatedAt
	}
	stored := *expense
	r.store.expenses[expense.ID] = &stored
	return nil
}

func (r *ExpensesRepository) UpdateExpense(ctx context.Context, expense *expenses.Expense) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.expenses[expense.ID]; !ok {
		return expenses.ErrExpenseNotFound
	}
	stored := *expense
	r.store.expenses[expense.ID] = &stored
	return nil
}

func (r *ExpensesRepository) DeleteExpense(ctx context.Context, id int64) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	_, ok := r.store.expenses[id]
	delete(r.store.expenses, id)
	return ok, nil
}
