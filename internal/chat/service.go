package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"foodhub-be/internal/cache"
	"foodhub-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	Chat(ctx context.Context, message string, history []Message) (string, error)
}

type service struct {
	repo     Repository
	client   Completer
	cache    cache.Cache
	cacheTTL time.Duration
}

// NewService builds the chat service. A nil cache disables snapshot caching.
func NewService(repo Repository, client Completer, c cache.Cache, ttl time.Duration) Service {
	if c == nil {
		c = cache.NewNoop()
	}
	return &service{repo: repo, client: client, cache: c, cacheTTL: ttl}
}

func (s *service) Chat(ctx context.Context, message string, history []Message) (string, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Chat"),
	)

	message = strings.TrimSpace(message)
	if message == "" {
		return "", ErrEmptyMessage
	}
	if !s.client.Configured() {
		return "", ErrNotConfigured
	}

	catalogue, err := s.catalogue(ctx)
	if err != nil {
		log.Error("failed to load catalogue", zap.Error(err))
		return "", fmt.Errorf("%w: %w", ErrUpstreamFailed, err)
	}

	reply, err := s.client.Complete(ctx, BuildSystemPrompt(catalogue), BuildMessages(history, message))
	if err != nil {
		return "", err
	}

	log.Info("chat reply generated", zap.Int("history", len(history)))
	return reply, nil
}

// catalogue reads the snapshot through the cache. Cache errors fall
// through to the database.
func (s *service) catalogue(ctx context.Context) (*Catalogue, error) {
	log := logger.FromCtx(ctx)

	var cached Catalogue
	hit, err := s.cache.GetJSON(ctx, cache.KeyChatCatalogue, &cached)
	if err != nil {
		log.Warn("catalogue cache read failed", zap.Error(err))
	}
	if hit {
		return &cached, nil
	}

	c, err := s.repo.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetJSON(ctx, cache.KeyChatCatalogue, c, s.cacheTTL); err != nil {
		log.Warn("catalogue cache write failed", zap.Error(err))
	}
	return c, nil
}
