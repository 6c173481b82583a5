package review

import "errors"

var (
	ErrReviewNotFound    = errors.New("review not found")
	ErrOrderNotFound     = errors.New("order not found")
	ErrOrderNotDelivered = errors.New("order is not delivered")
	ErrMealNotInOrder    = errors.New("meal is not part of the order")
	ErrAlreadyReviewed   = errors.New("meal already reviewed for this order")
	ErrInvalidRating     = errors.New("rating must be between 1 and 5")
	ErrForbidden         = errors.New("forbidden")
)
