package inmemory

import (
	"context"
	"strings"
	"time"

	"movein-app-go/internal/domain/categories"
)

type CategoriesRepository struct {
	store *Store
}

var (
	_ categories.Repository = (*CategoriesRepository)(nil)
	_ categories.Repository = (*categoriesTx)(nil)
)

// Transaction holds the store lock for the whole body and rolls the
// affected maps back when fn fails, so the two-phase category delete is
// all-or-nothing.
func (r *CategoriesRepository) Transaction(ctx context.Context, fn func(categories.Repository) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	snap := r.store.snapshotLocked()
	if err := fn(&categoriesTx{store: r.store}); err != nil {
		r.store.restoreLocked(snap)
		return err
	}
	return nil
}

func (r *CategoriesRepository) ListCategories(ctx context.Context, projectID *int64) ([]categories.Category, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.listCategoriesLocked(projectID), nil
}

func (r *CategoriesRepository) GetCategoryByID(ctx context.Context, id int64) (*categories.Category, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.getCategoryLocked(id)
}

func (r *CategoriesRepository) CreateCategory(ctx context.Context, category *categories.Category) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.createCategoryLocked(category)
}

func (r *CategoriesRepository) DeleteCategory(ctx context.Context, id int64) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.deleteCategoryLocked(id), nil
}

func (r *CategoriesRepository) ReassignTodoCategory(ctx context.Context, projectID *int64, oldName, newName string) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.reassignTodoCategoryLocked(projectID, oldName, newName), nil
}

func (r *CategoriesRepository) ReassignExpenseCategory(ctx context.Context, projectID *int64, oldName, newName string) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.reassignExpenseCategoryLocked(projectID, oldName, newName), nil
}

// categoriesTx runs inside an already-held lock.
type categoriesTx struct {
	store *Store
}

func (t *categoriesTx) Transaction(ctx context.Context, fn func(categories.Repository) error) error {
	return fn(t)
}

func (t *categoriesTx) ListCategories(ctx context.Context, projectID *int64) ([]categories.Category, error) {
	return t.store.listCategoriesLocked(projectID), nil
}

func (t *categoriesTx) GetCategoryByID(ctx context.Context, id int64) (*categories.Category, error) {
	return t.store.getCategoryLocked(id)
}

func (t *categoriesTx) CreateCategory(ctx context.Context, category *categories.Category) error {
	return t.store.createCategoryLocked(category)
}

func (t *categoriesTx) DeleteCategory(ctx context.Context, id int64) (bool, error) {
	return t.store.deleteCategoryLocked(id), nil
}

func (t *categoriesTx) ReassignTodoCategory(ctx context.Context, projectID *int64, oldName, newName string) (int64, error) {
	return t.store.reassignTodoCategoryLocked(projectID, oldName, newName), nil
}

func (t *categoriesTx) ReassignExpenseCategory(ctx context.Context, projectID *int64, oldName, newName string) (int64, error) {
	return t.store.reassignExpenseCategoryLocked(projectID, oldName, newName), nil
}

func (s *Store) listCategoriesLocked(projectID *int64) []categories.Category {
	items := make([]categories.Category, 0, len(s.categories))
	for _, id := range sortedIDs(s.categories) {
		category := s.categories[id]
		if !sameScope(category.ProjectID, projectID) {
			continue
		}
		items = append(items, *category)
	}
	return items
}

func (s *Store) getCategoryLocked(id int64) (*categories.Category, error) {
	category, ok := s.categories[id]
	if !ok {
		return nil, categories.ErrCategoryNotFound
	}
	copied := *category
	return &copied, nil
}

func (s *Store) createCategoryLocked(category *categories.Category) error {
	s.categorySeq++
	category.ID = s.categorySeq
	if category.CreatedAt.IsZero() {
		category.CreatedAt = time.Now().UTC()
	}
	stored := *category
	s.categories[category.ID] = &stored
	return nil
}

func (s *Store) deleteCategoryLocked(id int64) bool {
	_, ok := s.categories[id]
	delete(s.categories, id)
	return ok
}

func (s *Store) reassignTodoCategoryLocked(projectID *int64, oldName, newName string) int64 {
	var moved int64
	for _, todo := range s.todos {
		if !sameScope(todo.ProjectID, projectID) {
			continue
		}
		if strings.EqualFold(todo.Category, oldName) && todo.Category != newName {
			todo.Category = newName
			moved++
		}
	}
	return moved
}

func (s *Store) reassignExpenseCategoryLocked(projectID *int64, oldName, newName string) int64 {
	var moved int64
	for _, expense := range s.expenses {
		if !sameScope(expense.ProjectID, projectID) {
			continue
		}
		if strings.EqualFold(expense.Category, oldName) && expense.Category != newName {
			expense.Category = newName
			moved++
		}
	}
	return moved
}
