package todos

import "errors"

var (
	ErrTodoNotFound  = errors.New("todo not found")
	ErrTitleRequired = errors.New("title is required")
	ErrInvalidAmount = errors.New("estimated amount must be non-negative")
)
