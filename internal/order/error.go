package order

import "errors"

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrForbidden          = errors.New("access denied")
	ErrMissingFields      = errors.New("missing required fields")
	ErrInvalidQuantity    = errors.New("quantity must be between 1 and 100")
	ErrTotalTooLarge      = errors.New("order total is too large")
	ErrInvalidPayment     = errors.New("invalid payment method")
	ErrMealsUnavailable   = errors.New("some meals are not available")
	ErrMixedProviders     = errors.New("all items must be from the same provider")
	ErrInvalidStatus      = errors.New("invalid order status")
	ErrCustomerCancelOnly = errors.New("customers can only cancel pending orders")
	ErrNotCancellable     = errors.New("only pending or confirmed orders can be cancelled")
	ErrInvalidTransition  = errors.New("order status can no longer be changed")
	ErrInvalidDate        = errors.New("invalid date, expected YYYY-MM-DD")
)
