package meal

import (
	"context"
	"strings"

	"foodhub-be/internal/cache"
	"foodhub-be/internal/logger"
	"foodhub-be/internal/review"
	"foodhub-be/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultPageLimit  = 12
	detailReviewLimit = 5
)

type Service interface {
	ListMeals(ctx context.Context, filter ListFilter) ([]*Meal, int64, error)
	GetMeal(ctx context.Context, id uuid.UUID) (*Detail, error)
	ListProviderMeals(ctx context.Context, providerID uuid.UUID, page utils.Page) ([]*Meal, int64, error)
	CreateMeal(ctx context.Context, p CreateParams) (*Meal, error)
	UpdateMeal(ctx context.Context, p UpdateParams) (*Meal, error)
	// DeleteMeal reports whether the row was removed. Meals with order
	// history are only marked unavailable.
	DeleteMeal(ctx context.Context, providerID, id uuid.UUID) (bool, error)
}

type service struct {
	repo    Repository
	reviews review.Repository
	cache   cache.Cache
}

func NewService(repo Repository, reviews review.Repository, c cache.Cache) Service {
	if c == nil {
		c = cache.NewNoop()
	}
	return &service{repo: repo, reviews: reviews, cache: c}
}

func (s *service) ListMeals(ctx context.Context, filter ListFilter) ([]*Meal, int64, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "ListMeals"),
	)

	filter.AvailableOnly = true
	meals, total, err := s.repo.List(ctx, filter)
	if err != nil {
		log.Error("failed to list meals", zap.Error(err))
		return nil, 0, err
	}

	log.Debug("ListMeals success", zap.Int("count", len(meals)), zap.Int64("total", total))
	return meals, total, nil
}

func (s *service) GetMeal(ctx context.Context, id uuid.UUID) (*Detail, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "GetMeal"),
		zap.String("meal_id", id.String()),
	)

	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	summary, err := s.reviews.Summary(ctx, id)
	if err != nil {
		log.Error("failed to load review summary", zap.Error(err))
		return nil, err
	}

	latest, _, err := s.reviews.ListByMeal(ctx, id, utils.NewPage(1, detailReviewLimit, detailReviewLimit))
	if err != nil {
		log.Error("failed to load latest reviews", zap.Error(err))
		return nil, err
	}

	return &Detail{Meal: m, Summary: summary, Reviews: latest}, nil
}

func (s *service) ListProviderMeals(ctx context.Context, providerID uuid.UUID, page utils.Page) ([]*Meal, int64, error) {
	return s.repo.List(ctx, ListFilter{ProviderID: &providerID, Page: page})
}

func (s *service) CreateMeal(ctx context.Context, p CreateParams) (*Meal, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateMeal"),
		zap.String("provider_id", p.ProviderID.String()),
	)

	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return nil, ErrNameRequired
	}
	if p.Price <= 0 {
		return nil, ErrInvalidPrice
	}

	ok, err := s.repo.CategoryExists(ctx, p.CategoryID)
	if err != nil {
		log.Error("failed to check category", zap.Error(err))
		return nil, err
	}
	if !ok {
		return nil, ErrCategoryNotFound
	}

	m, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, err
	}

	cache.Invalidate(ctx, s.cache, cache.KeyChatCatalogue)
	log.Info("CreateMeal success", zap.String("meal_id", m.ID.String()))
	return m, nil
}

func (s *service) UpdateMeal(ctx context.Context, p UpdateParams) (*Meal, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateMeal"),
		zap.String("meal_id", p.ID.String()),
	)

	existing, err := s.repo.GetByID(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	if existing.ProviderID != p.ProviderID {
		log.Warn("provider tried to update a foreign meal", zap.String("provider_id", p.ProviderID.String()))
		return nil, ErrForbidden
	}

	if p.Name != nil {
		trimmed := strings.TrimSpace(*p.Name)
		if trimmed == "" {
			return nil, ErrNameRequired
		}
		p.Name = &trimmed
	}
	if p.Price != nil && *p.Price <= 0 {
		return nil, ErrInvalidPrice
	}
	if p.CategoryID != nil {
		ok, err := s.repo.CategoryExists(ctx, *p.CategoryID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrCategoryNotFound
		}
	}

	m, err := s.repo.Update(ctx, p)
	if err != nil {
		return nil, err
	}

	cache.Invalidate(ctx, s.cache, cache.KeyChatCatalogue)
	return m, nil
}

func (s *service) DeleteMeal(ctx context.Context, providerID, id uuid.UUID) (bool, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "DeleteMeal"),
		zap.String("meal_id", id.String()),
	)

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if existing.ProviderID != providerID {
		return false, ErrForbidden
	}

	referenced, err := s.repo.HasOrders(ctx, id)
	if err != nil {
		log.Error("failed to check order references", zap.Error(err))
		return false, err
	}

	defer cache.Invalidate(ctx, s.cache, cache.KeyChatCatalogue)

	if referenced {
		if err := s.repo.SetAvailability(ctx, id, false); err != nil {
			return false, err
		}
		log.Info("meal has orders, marked unavailable")
		return false, nil
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return false, err
	}
	log.Info("meal deleted")
	return true, nil
}
