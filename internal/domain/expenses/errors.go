package expenses

import "errors"

var (
	ErrExpenseNotFound     = errors.New("expense not found")
	ErrDescriptionRequired = errors.New("description is required")
	ErrInvalidAmount       = errors.New("amount must be non-negative")
)
