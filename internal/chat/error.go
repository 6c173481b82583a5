package chat

import "errors"

var (
	ErrEmptyMessage   = errors.New("empty message")
	ErrNotConfigured  = errors.New("anthropic api key not configured")
	ErrInvalidAPIKey  = errors.New("anthropic rejected the api key")
	ErrUpstream       = errors.New("anthropic returned an error")
	ErrUpstreamFailed = errors.New("anthropic request failed")
)
