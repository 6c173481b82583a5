package category

import "errors"

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryExists   = errors.New("category name already exists")
	ErrCategoryInUse    = errors.New("category still has meals")
	ErrNameRequired     = errors.New("category name cannot be empty")
)
