package meal

import "errors"

var (
	ErrMealNotFound     = errors.New("meal not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrForbidden        = errors.New("meal belongs to another provider")
	ErrInvalidPrice     = errors.New("price must be greater than 0")
	ErrNameRequired     = errors.New("meal name is required")
)
