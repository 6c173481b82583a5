package provider

import (
	"context"
	"strings"

	"foodhub-be/internal/cache"
	"foodhub-be/internal/logger"
	"foodhub-be/internal/meal"
	"foodhub-be/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultPageLimit = 12
	detailMealLimit  = utils.MaxPageLimit
)

type Service interface {
	ListProviders(ctx context.Context, filter ListFilter) ([]*Provider, int64, error)
	GetProvider(ctx context.Context, userID uuid.UUID) (*Provider, error)
	GetOwnProfile(ctx context.Context, userID uuid.UUID) (*Provider, error)
	UpdateOwnProfile(ctx context.Context, p UpdateProfileParams) (*Profile, error)
}

type service struct {
	repo  Repository
	meals meal.Repository
	cache cache.Cache
}

func NewService(repo Repository, meals meal.Repository, c cache.Cache) Service {
	if c == nil {
		c = cache.NewNoop()
	}
	return &service{repo: repo, meals: meals, cache: c}
}

func (s *service) ListProviders(ctx context.Context, filter ListFilter) ([]*Provider, int64, error) {
	providers, total, err := s.repo.List(ctx, filter)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to list providers", zap.Error(err))
		return nil, 0, err
	}
	return providers, total, nil
}

// GetProvider returns the public profile with the provider's available meals.
func (s *service) GetProvider(ctx context.Context, userID uuid.UUID) (*Provider, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "GetProvider"),
		zap.String("provider_id", userID.String()),
	)

	p, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	meals, _, err := s.meals.List(ctx, meal.ListFilter{
		ProviderID:    &userID,
		AvailableOnly: true,
		Page:          utils.NewPage(1, detailMealLimit, detailMealLimit),
	})
	if err != nil {
		log.Error("failed to load provider meals", zap.Error(err))
		return nil, err
	}

	p.Meals = meals
	return p, nil
}

func (s *service) GetOwnProfile(ctx context.Context, userID uuid.UUID) (*Provider, error) {
	return s.repo.GetByUserID(ctx, userID)
}

func (s *service) UpdateOwnProfile(ctx context.Context, p UpdateProfileParams) (*Profile, error) {
	if p.RestaurantName != nil {
		trimmed := strings.TrimSpace(*p.RestaurantName)
		if trimmed == "" {
			return nil, ErrRestaurantNameRequired
		}
		p.RestaurantName = &trimmed
	}

	profile, err := s.repo.UpdateProfile(ctx, p)
	if err != nil {
		return nil, err
	}

	cache.Invalidate(ctx, s.cache, cache.KeyChatCatalogue)
	return profile, nil
}
