package categories

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
)

// fakeCategoriesRepo keeps plain category-name slices standing in for the
// denormalized fields on todos and expenses.
type fakeCategoriesRepo struct {
	categories        map[int64]*Category
	seq               int64
	todoCategories    []string
	expenseCategories []string
	failDelete        bool
}

func newFakeCategoriesRepo() *fakeCategoriesRepo {
	return &fakeCategoriesRepo{categories: make(map[int64]*Category)}
}

func (r *fakeCategoriesRepo) Transaction(ctx context.Context, fn func(Repository) error) error {
	return fn(r)
}

func (r *fakeCategoriesRepo) ListCategories(ctx context.Context, projectID *int64) ([]Category, error) {
	items := make([]Category, 0)
	for _, category := range r.categories {
		items = append(items, *category)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (r *fakeCategoriesRepo) GetCategoryByID(ctx context.Context, id int64) (*Category, error) {
	category, ok := r.categories[id]
	if !ok {
		return nil, ErrCategoryNotFound
	}
	copied := *category
	return &copied, nil
}

func (r *fakeCategoriesRepo) CreateCategory(ctx context.Context, category *Category) error {
	r.seq++
	category.ID = r.seq
	stored := *category
	r.categories[category.ID] = &stored
	return nil
}

func (r *fakeCategoriesRepo) DeleteCategory(ctx context.Context, id int64) (bool, error) {
	if r.failDelete {
		return false, errors.New("boom")
	}
	if _, ok := r.categories[id]; !ok {
		return false, nil
	}
	delete(r.categories, id)
	return true, nil
}

func (r *fakeCategoriesRepo) ReassignTodoCategory(ctx context.Context, projectID *int64, oldName, newName string) (int64, error) {
	return reassign(r.todoCategories, oldName, newName), nil
}

func (r *fakeCategoriesRepo) ReassignExpenseCategory(ctx context.Context, projectID *int64, oldName, newName string) (int64, error) {
	return reassign(r.expenseCategories, oldName, newName), nil
}

func reassign(names []string, oldName, newName string) int64 {
	var moved int64
	for i, name := range names {
		if strings.EqualFold(name, oldName) && name != newName {
			names[i] = newName
			moved++
		}
	}
	return moved
}

func TestCreateCategorySuccess(t *testing.T) {
	repo := newFakeCategoriesRepo()
	svc := NewService(repo)

	category, err := svc.CreateCategory(context.Background(), CreateCategoryInput{Name: "  Garden  "})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if category.Name != "Garden" {
		t.Fatalf("expected trimmed name, got %q", category.Name)
	}
	if category.ID != 1 {
		t.Fatalf("expected id 1, got %d", category.ID)
	}
}

func TestCreateCategoryEmptyName(t *testing.T) {
	svc := NewService(newFakeCategoriesRepo())

	_, err := svc.CreateCategory(context.Background(), CreateCategoryInput{Name: "   "})
	if !errors.Is(err, ErrNameRequired) {
		t.Fatalf("expected ErrNameRequired, got %v", err)
	}
}

func TestCreateCategoryDuplicateOfDefault(t *testing.T) {
	svc := NewService(newFakeCategoriesRepo())

	// Case must not matter, against either default list.
	for _, name := range []string{"packing", "PACKING", "movers", "Other", "unassigned"} {
		_, err := svc.CreateCategory(context.Background(), CreateCategoryInput{Name: name})
		if !errors.Is(err, ErrCategoryExists) {
			t.Fatalf("expected ErrCategoryExists for %q, got %v", name, err)
		}
	}
}

func TestCreateCategoryDuplicateOfCustom(t *testing.T) {
	repo := newFakeCategoriesRepo()
	svc := NewService(repo)

	if _, err := svc.CreateCategory(context.Background(), CreateCategoryInput{Name: "Garden"}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := svc.CreateCategory(context.Background(), CreateCategoryInput{Name: "gArDeN"})
	if !errors.Is(err, ErrCategoryExists) {
		t.Fatalf("expected ErrCategoryExists, got %v", err)
	}
}

func TestListCategoryNamesMergesDefaults(t *testing.T) {
	repo := newFakeCategoriesRepo()
	svc := NewService(repo)

	if _, err := svc.CreateCategory(context.Background(), CreateCategoryInput{Name: "Garden"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	names, err := svc.ListCategoryNames(context.Background(), nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	seen := make(map[string]int)
	for _, name := range names {
		seen[strings.ToLower(name)]++
	}
	for _, expected := range []string{"unassigned", "other", "garden", "packing"} {
		if seen[expected] != 1 {
			t.Fatalf("expected %q exactly once, got %d (names: %v)", expected, seen[expected], names)
		}
	}
	// "Furniture" appears in both default lists; the merge must dedup it.
	if seen["furniture"] != 1 {
		t.Fatalf("expected furniture deduped, got %d", seen["furniture"])
	}
}

func TestDeleteCategoryReassignsReferents(t *testing.T) {
	repo := newFakeCategoriesRepo()
	svc := NewService(repo)

	category, err := svc.CreateCategory(context.Background(), CreateCategoryInput{Name: "Garden"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	repo.todoCategories = []string{"Garden", "garden", "Packing"}
	repo.expenseCategories = []string{"Garden", "Movers"}

	if err := svc.DeleteCategory(context.Background(), category.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if repo.todoCategories[0] != "Unassigned" || repo.todoCategories[1] != "Unassigned" {
		t.Fatalf("todos not reassigned: %v", repo.todoCategories)
	}
	if repo.todoCategories[2] != "Packing" {
		t.Fatalf("unrelated todo touched: %v", repo.todoCategories)
	}
	if repo.expenseCategories[0] != "Other" {
		t.Fatalf("expenses not reassigned: %v", repo.expenseCategories)
	}
	if _, err := svc.GetCategory(context.Background(), category.ID); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected category removed, got %v", err)
	}
}

func TestDeleteCategoryProtected(t *testing.T) {
	repo := newFakeCategoriesRepo()
	svc := NewService(repo)

	// A protected name can only end up stored through seeding; plant one
	// directly to exercise the guard.
	repo.seq++
	repo.categories[repo.seq] = &Category{ID: repo.seq, Name: "Unassigned"}

	err := svc.DeleteCategory(context.Background(), repo.seq)
	if !errors.Is(err, ErrCategoryProtected) {
		t.Fatalf("expected ErrCategoryProtected, got %v", err)
	}
	if _, ok := repo.categories[repo.seq]; !ok {
		t.Fatalf("protected category must survive")
	}
}

func TestDeleteCategoryNotFound(t *testing.T) {
	svc := NewService(newFakeCategoriesRepo())

	err := svc.DeleteCategory(context.Background(), 99)
	if !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestReassignCounts(t *testing.T) {
	repo := newFakeCategoriesRepo()
	svc := NewService(repo)

	repo.todoCategories = []string{"Garden", "garden", "Packing"}
	repo.expenseCategories = []string{"Garden"}

	todosMoved, expensesMoved, err := svc.Reassign(context.Background(), ReassignInput{
		OldName: "garden",
		NewName: "Cleaning",
	})
	if err != nil {
		t.Fatalf("reassign: %v", err)
	}
	if todosMoved != 2 || expensesMoved != 1 {
		t.Fatalf("expected 2/1 moved, got %d/%d", todosMoved, expensesMoved)
	}

	// Repeating the rewrite changes nothing.
	todosMoved, expensesMoved, err = svc.Reassign(context.Background(), ReassignInput{
		OldName: "garden",
		NewName: "Cleaning",
	})
	if err != nil {
		t.Fatalf("second reassign: %v", err)
	}
	if todosMoved != 0 || expensesMoved != 0 {
		t.Fatalf("expected idempotent rewrite, got %d/%d", todosMoved, expensesMoved)
	}
}

func TestReassignRequiresNames(t *testing.T) {
	svc := NewService(newFakeCategoriesRepo())

	if _, _, err := svc.Reassign(context.Background(), ReassignInput{OldName: "", NewName: "x"}); !errors.Is(err, ErrNameRequired) {
		t.Fatalf("expected ErrNameRequired, got %v", err)
	}
	if _, _, err := svc.Reassign(context.Background(), ReassignInput{OldName: "x", NewName: "  "}); !errors.Is(err, ErrNameRequired) {
		t.Fatalf("expected ErrNameRequired, got %v", err)
	}
}
