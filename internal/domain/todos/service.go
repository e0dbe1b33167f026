package todos

import (
	"context"
	"strings"
	"time"

	"movein-app-go/internal/domain/categories"
)

// CreatedHook runs after a todo has been stored. Hooks are best effort:
// they carry no error return and must not unwind the creation.
type CreatedHook func(ctx context.Context, userID int64, todo Todo)

type Service struct {
	repo         Repository
	createdHooks []CreatedHook
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// OnCreated registers a post-commit hook. Not safe to call once the service
// is handling requests; register everything during wiring.
func (s *Service) OnCreated(hook CreatedHook) {
	s.createdHooks = append(s.createdHooks, hook)
}

func (s *Service) ListTodos(ctx context.Context, filter ListFilter) ([]Todo, error) {
	return s.repo.ListTodos(ctx, filter)
}

func (s *Service) GetTodo(ctx context.Context, id int64) (*Todo, error) {
	return s.repo.GetTodoByID(ctx, id)
}

func (s *Service) CreateTodo(ctx context.Context, input CreateTodoInput) (*Todo, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if input.EstimatedAmount != nil && *input.EstimatedAmount < 0 {
		return nil, ErrInvalidAmount
	}

	category := strings.TrimSpace(input.Category)
	if category == "" {
		category = categories.FallbackTodoCategory
	}

	todo := Todo{
		Title:                title,
		Description:          strings.TrimSpace(input.Description),
		Category:             category,
		DueDate:              input.DueDate,
		Priority:             input.Priority,
		HasAssociatedExpense: input.HasAssociatedExpense,
		EstimatedAmount:      input.EstimatedAmount,
		ProjectID:            input.ProjectID,
	}

	if err := s.repo.CreateTodo(ctx, &todo); err != nil {
		return nil, err
	}

	for _, hook := range s.createdHooks {
		hook(ctx, input.UserID, todo)
	}

	return &todo, nil
}

// UpdateTodo merges the provided fields over the stored record; absent
// fields are untouched.
func (s *Service) UpdateTodo(ctx context.Context, input UpdateTodoInput) (*Todo, error) {
	todo, err := s.repo.GetTodoByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		trimmed := strings.TrimSpace(*input.Title)
		if trimmed == "" {
			return nil, ErrTitleRequired
		}
		todo.Title = trimmed
	}
	if input.Description != nil {
		todo.Description = strings.TrimSpace(*input.Description)
	}
	if input.Category != nil {
		category := strings.TrimSpace(*input.Category)
		if category == "" {
			category = categories.FallbackTodoCategory
		}
		todo.Category = category
	}
	if input.Completed != nil {
		todo.Completed = *input.Completed
	}
	if input.DueDate.Set {
		todo.DueDate = input.DueDate.Value
	}
	if input.Priority != nil {
		todo.Priority = *input.Priority
	}
	if input.EstimatedAmount != nil {
		if *input.EstimatedAmount < 0 {
			return nil, ErrInvalidAmount
		}
		todo.EstimatedAmount = input.EstimatedAmount
	}
	todo.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateTodo(ctx, todo); err != nil {
		return nil, err
	}

	return todo, nil
}

// DeleteTodo is idempotent: deleting an id that does not exist is not an
// error.
func (s *Service) DeleteTodo(ctx context.Context, id int64) error {
	_, err := s.repo.DeleteTodo(ctx, id)
	return err
}
