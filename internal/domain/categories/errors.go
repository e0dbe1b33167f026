package categories

import "errors"

var (
	ErrCategoryNotFound  = errors.New("category not found")
	ErrCategoryExists    = errors.New("category name already exists")
	ErrCategoryProtected = errors.New("category is protected")
	ErrNameRequired      = errors.New("category name is required")
)
