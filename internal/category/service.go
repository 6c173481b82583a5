package category

import (
	"context"
	"strings"

	"foodhub-be/internal/cache"
	"foodhub-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	GetCategories(ctx context.Context) ([]*Category, error)
	GetCategory(ctx context.Context, id uuid.UUID) (*Category, error)
	AddCategory(ctx context.Context, p CreateParams) (*Category, error)
	UpdateCategory(ctx context.Context, p UpdateParams) (*Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo  Repository
	cache cache.Cache
}

// NewService creates a new category service. The cache is only used to
// drop the chat catalogue snapshot after writes.
func NewService(repo Repository, c cache.Cache) Service {
	if c == nil {
		c = cache.NewNoop()
	}
	return &service{repo: repo, cache: c}
}

func (s *service) GetCategories(ctx context.Context) ([]*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "GetCategories"),
	)

	categories, err := s.repo.GetCategories(ctx)
	if err != nil {
		log.Error("failed to get categories", zap.Error(err))
		return nil, err
	}

	log.Debug("GetCategories success", zap.Int("count", len(categories)))
	return categories, nil
}

func (s *service) GetCategory(ctx context.Context, id uuid.UUID) (*Category, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) AddCategory(ctx context.Context, p CreateParams) (*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddCategory"),
		zap.String("name", p.Name),
	)

	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return nil, ErrNameRequired
	}

	c, err := s.repo.AddCategory(ctx, p)
	if err != nil {
		log.Error("failed to add category", zap.Error(err))
		return nil, err
	}

	cache.Invalidate(ctx, s.cache, cache.KeyChatCatalogue)
	log.Info("AddCategory success", zap.String("category_id", c.ID.String()))
	return c, nil
}

func (s *service) UpdateCategory(ctx context.Context, p UpdateParams) (*Category, error) {
	if p.Name != nil {
		trimmed := strings.TrimSpace(*p.Name)
		if trimmed == "" {
			return nil, ErrNameRequired
		}
		p.Name = &trimmed
	}

	c, err := s.repo.UpdateCategory(ctx, p)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to update category",
			zap.String("category_id", p.ID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	cache.Invalidate(ctx, s.cache, cache.KeyChatCatalogue)
	return c, nil
}

func (s *service) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "DeleteCategory"),
		zap.String("category_id", id.String()),
	)

	n, err := s.repo.CountMeals(ctx, id)
	if err != nil {
		log.Error("failed to count meals", zap.Error(err))
		return err
	}
	if n > 0 {
		log.Info("category still has meals", zap.Int("meal_count", n))
		return ErrCategoryInUse
	}

	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		return err
	}

	cache.Invalidate(ctx, s.cache, cache.KeyChatCatalogue)
	log.Info("DeleteCategory success")
	return nil
}
