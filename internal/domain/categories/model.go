package categories

import "time"

type Category struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Name      string    `gorm:"not null"`
	ProjectID *int64    `gorm:"index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// Fallback names receive the referents of a deleted category and can never
// be deleted themselves.
const (
	FallbackTodoCategory    = "Unassigned"
	FallbackExpenseCategory = "Other"
)

// Default categories are static lists merged with the custom set at read
// time. Todos and expenses reference categories by name, so defaults never
// become stored records.
var (
	DefaultTodoCategories = []string{
		FallbackTodoCategory,
		"Packing",
		"Utilities",
		"Furniture",
		"Cleaning",
		"Paperwork",
	}

	DefaultExpenseCategories = []string{
		FallbackExpenseCategory,
		"Movers",
		"Deposit",
		"Furniture",
		"Renovation",
		"Supplies",
	}
)

type CreateCategoryInput struct {
	Name      string
	ProjectID *int64
}

type ReassignInput struct {
	OldName   string
	NewName   string
	ProjectID *int64
}
