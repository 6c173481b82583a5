package provider

import "errors"

var (
	ErrProviderNotFound       = errors.New("provider not found")
	ErrRestaurantNameRequired = errors.New("restaurant name cannot be empty")
)
