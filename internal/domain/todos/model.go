package todos

import "time"

type Todo struct {
	ID                   int64   `gorm:"primaryKey;autoIncrement"`
	Title                string  `gorm:"not null"`
	Description          string
	Category             string `gorm:"not null"`
	Completed            bool   `gorm:"not null;default:false"`
	DueDate              *time.Time
	Priority             bool `gorm:"not null;default:false"`
	HasAssociatedExpense bool `gorm:"not null;default:false"`
	EstimatedAmount      *float64
	ProjectID            *int64    `gorm:"index"`
	CreatedAt            time.Time `gorm:"autoCreateTime"`
	UpdatedAt            time.Time `gorm:"autoUpdateTime"`
}

type ListFilter struct {
	ProjectID *int64
	Completed *bool
	DueBefore *time.Time
}

type CreateTodoInput struct {
	// UserID is the session user issuing the create; it is handed to
	// after-create hooks (calendar sync) and not stored on the todo.
	UserID               int64
	Title                string
	Description          string
	Category             string
	DueDate              *time.Time
	Priority             bool
	HasAssociatedExpense bool
	EstimatedAmount      *float64
	ProjectID            *int64
}

type UpdateTodoInput struct {
	ID              int64
	Title           *string
	Description     *string
	Category        *string
	Completed       *bool
	DueDate         OptionalNullableTime
	Priority        *bool
	EstimatedAmount *float64
}

// OptionalNullableTime distinguishes "field absent" from "field set to null"
// in partial updates.
type OptionalNullableTime struct {
	Set   bool
	Value *time.Time
}
