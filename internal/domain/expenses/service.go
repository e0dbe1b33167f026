package expenses

import (
	"context"
	"strings"
	"time"

	"movein-app-go/internal/domain/categories"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListExpenses(ctx context.Context, filter ListFilter) ([]Expense, error) {
	return s.repo.ListExpenses(ctx, filter)
}

func (s *Service) GetExpense(ctx context.Context, id int64) (*Expense, error) {
	return s.repo.GetExpenseByID(ctx, id)
}

func (s *Service) CreateExpense(ctx context.Context, input CreateExpenseInput) (*Expense, error) {
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, ErrDescriptionRequired
	}
	if input.Amount < 0 {
		return nil, ErrInvalidAmount
	}

	category := strings.TrimSpace(input.Category)
	if category == "" {
		category = categories.FallbackExpenseCategory
	}
	date := input.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}

	expense := Expense{
		Description: description,
		Amount:      input.Amount,
		Category:    category,
		Date:        date,
		TodoID:      input.TodoID,
		IsBudget:    input.IsBudget,
		ProjectID:   input.ProjectID,
	}

	if err := s.repo.CreateExpense(ctx, &expense); err != nil {
		return nil, err
	}

	return &expense, nil
}

// CreateBudgetForTodo derives the planned expense linked to a todo created
// with an associated estimate.
func (s *Service) CreateBudgetForTodo(ctx context.Context, source BudgetSource) (*Expense, error) {
	category := source.Category
	if category == "" || strings.EqualFold(category, categories.FallbackTodoCategory) {
		category = categories.FallbackExpenseCategory
	}

	var date time.Time
	if source.DueDate != nil {
		date = *source.DueDate
	}

	todoID := source.TodoID
	return s.CreateExpense(ctx, CreateExpenseInput{
		Description: source.Title,
		Amount:      source.Amount,
		Category:    category,
		Date:        date,
		TodoID:      &todoID,
		IsBudget:    true,
		ProjectID:   source.ProjectID,
	})
}

// UpdateExpense merges the provided fields over the stored record. When the
// update transitions a budget item to paid, CompletedAt is stamped; the
// reverse transition clears it.
func (s *Service) UpdateExpense(ctx context.Context, input UpdateExpenseInput) (*Expense, error) {
	expense, err := s.repo.GetExpenseByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Description != nil {
		trimmed := strings.TrimSpace(*input.Description)
		if trimmed == "" {
			return nil, ErrDescriptionRequired
		}
		expense.Description = trimmed
	}
	if input.Amount != nil {
		if *input.Amount < 0 {
			return nil, ErrInvalidAmount
		}
		expense.Amount = *input.Amount
	}
	if input.Category != nil {
		category := strings.TrimSpace(*input.Category)
		if category == "" {
			category = categories.FallbackExpenseCategory
		}
		expense.Category = category
	}
	if input.Date != nil {
		expense.Date = *input.Date
	}
	if input.IsBudget != nil && *input.IsBudget != expense.IsBudget {
		expense.IsBudget = *input.IsBudget
		if expense.IsBudget {
			expense.CompletedAt = nil
		} else {
			now := time.Now().UTC()
			expense.CompletedAt = &now
		}
	}
	expense.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateExpense(ctx, expense); err != nil {
		return nil, err
	}

	return expense, nil
}

// DeleteExpense is idempotent: deleting an id that does not exist is not an
// error.
func (s *Service) DeleteExpense(ctx context.Context, id int64) error {
	_, err := s.repo.DeleteExpense(ctx, id)
	return err
}
