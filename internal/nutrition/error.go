package nutrition

import "errors"

var (
	ErrEmptyQuery     = errors.New("empty nutrition query")
	ErrNotConfigured  = errors.New("usda api key not configured")
	ErrInvalidAPIKey  = errors.New("usda rejected the api key")
	ErrUpstream       = errors.New("usda returned an error")
	ErrUpstreamFailed = errors.New("usda request failed")
	ErrNoResults      = errors.New("no nutrition data found")
)
