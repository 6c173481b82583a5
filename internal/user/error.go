package user

import "errors"

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrEmailExists            = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid email or password")
	ErrAccountSuspended       = errors.New("account suspended")
	ErrInvalidRole            = errors.New("invalid role")
	ErrInvalidStatus          = errors.New("invalid status")
	ErrRestaurantNameRequired = errors.New("restaurant name is required for providers")
	ErrCannotChangeOwnStatus  = errors.New("cannot change own status")
)
