package categories

import (
	"context"
	"strings"
)

// Service is the only component allowed to mutate the denormalized category
// name stored on todos and expenses. Deleting a category reassigns every
// referent to the matching fallback before the record goes away.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListCategories(ctx context.Context, projectID *int64) ([]Category, error) {
	return s.repo.ListCategories(ctx, projectID)
}

func (s *Service) GetCategory(ctx context.Context, id int64) (*Category, error) {
	return s.repo.GetCategoryByID(ctx, id)
}

// ListCategoryNames merges the static default lists with the custom set in
// scope into one flat selectable list, defaults first.
func (s *Service) ListCategoryNames(ctx context.Context, projectID *int64) ([]string, error) {
	custom, err := s.repo.ListCategories(ctx, projectID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	names := make([]string, 0, len(DefaultTodoCategories)+len(DefaultExpenseCategories)+len(custom))
	appendName := func(name string) {
		key := strings.ToLower(name)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		names = append(names, name)
	}

	for _, name := range DefaultTodoCategories {
		appendName(name)
	}
	for _, name := range DefaultExpenseCategories {
		appendName(name)
	}
	for _, category := range custom {
		appendName(category.Name)
	}

	return names, nil
}

func (s *Service) CreateCategory(ctx context.Context, input CreateCategoryInput) (*Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	if isDefaultName(name) {
		return nil, ErrCategoryExists
	}

	existing, err := s.repo.ListCategories(ctx, input.ProjectID)
	if err != nil {
		return nil, err
	}
	for _, category := range existing {
		if strings.EqualFold(category.Name, name) {
			return nil, ErrCategoryExists
		}
	}

	category := Category{
		Name:      name,
		ProjectID: input.ProjectID,
	}
	if err := s.repo.CreateCategory(ctx, &category); err != nil {
		return nil, err
	}

	return &category, nil
}

// DeleteCategory is two-phase: rewrite every referencing todo and expense to
// the fallback name, then remove the record. Both phases run inside one
// repository transaction so a reader never observes a half-reassigned state.
func (s *Service) DeleteCategory(ctx context.Context, id int64) error {
	category, err := s.repo.GetCategoryByID(ctx, id)
	if err != nil {
		return err
	}

	if isProtectedName(category.Name) {
		return ErrCategoryProtected
	}

	return s.repo.Transaction(ctx, func(tx Repository) error {
		if _, err := tx.ReassignTodoCategory(ctx, category.ProjectID, category.Name, FallbackTodoCategory); err != nil {
			return err
		}
		if _, err := tx.ReassignExpenseCategory(ctx, category.ProjectID, category.Name, FallbackExpenseCategory); err != nil {
			return err
		}
		deleted, err := tx.DeleteCategory(ctx, id)
		if err != nil {
			return err
		}
		if !deleted {
			return ErrCategoryNotFound
		}
		return nil
	})
}

// Reassign bulk-rewrites referents without touching the category record.
// Idempotent: rewriting to a name the records already carry changes nothing.
func (s *Service) Reassign(ctx context.Context, input ReassignInput) (todosMoved, expensesMoved int64, err error) {
	oldName := strings.TrimSpace(input.OldName)
	newName := strings.TrimSpace(input.NewName)
	if oldName == "" || newName == "" {
		return 0, 0, ErrNameRequired
	}

	err = s.repo.Transaction(ctx, func(tx Repository) error {
		todosMoved, err = tx.ReassignTodoCategory(ctx, input.ProjectID, oldName, newName)
		if err != nil {
			return err
		}
		expensesMoved, err = tx.ReassignExpenseCategory(ctx, input.ProjectID, oldName, newName)
		return err
	})
	if err != nil {
		return 0, 0, err
	}

	return todosMoved, expensesMoved, nil
}

func isDefaultName(name string) bool {
	for _, candidate := range DefaultTodoCategories {
		if strings.EqualFold(candidate, name) {
			return true
		}
	}
	for _, candidate := range DefaultExpenseCategories {
		if strings.EqualFold(candidate, name) {
			return true
		}
	}
	return false
}

func isProtectedName(name string) bool {
	return strings.EqualFold(name, FallbackTodoCategory) || strings.EqualFold(name, FallbackExpenseCategory)
}
