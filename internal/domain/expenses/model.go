package expenses

import "time"

// Expense is either a realized expense or a planned/budgeted one; IsBudget
// true means planned and unpaid. Paying a budget item sets CompletedAt.
type Expense struct {
	ID          int64   `gorm:"primaryKey;autoIncrement"`
	Description string  `gorm:"not null"`
	Amount      float64 `gorm:"not null"`
	Category    string  `gorm:"not null"`
	Date        time.Time
	TodoID      *int64 `gorm:"index"`
	IsBudget    bool   `gorm:"not null;default:false"`
	CompletedAt *time.Time
	ProjectID   *int64    `gorm:"index"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

type ListFilter struct {
	ProjectID *int64
	IsBudget  *bool
	TodoID    *int64
}

type CreateExpenseInput struct {
	Description string
	Amount      float64
	Category    string
	Date        time.Time
	TodoID      *int64
	IsBudget    bool
	ProjectID   *int64
}

type UpdateExpenseInput struct {
	ID          int64
	Description *string
	Amount      *float64
	Category    *string
	Date        *time.Time
	IsBudget    *bool
}

// BudgetSource is the todo shape needed to derive a linked budget expense.
type BudgetSource struct {
	TodoID    int64
	Title     string
	Category  string
	Amount    float64
	DueDate   *time.Time
	ProjectID *int64
}
