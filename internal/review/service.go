package review

import (
	"context"

	"foodhub-be/internal/logger"
	"foodhub-be/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultPageLimit = 10
	statusDelivered  = "DELIVERED"
	roleAdmin        = "ADMIN"
)

type Service interface {
	CreateReview(ctx context.Context, customerID uuid.UUID, in CreateInput) (*Review, error)
	ListMealReviews(ctx context.Context, mealID uuid.UUID, page utils.Page) (*MealReviews, error)
	ListMyReviews(ctx context.Context, customerID uuid.UUID, page utils.Page) ([]*Review, int64, error)
	DeleteReview(ctx context.Context, actorID uuid.UUID, actorRole string, reviewID uuid.UUID) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateReview(ctx context.Context, customerID uuid.UUID, in CreateInput) (*Review, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateReview"),
		zap.String("order_id", in.OrderID.String()),
		zap.String("meal_id", in.MealID.String()),
	)

	if in.Rating < 1 || in.Rating > 5 {
		return nil, ErrInvalidRating
	}

	owner, status, err := s.repo.GetOrderStatus(ctx, in.OrderID)
	if err != nil {
		return nil, err
	}
	// Someone else's order is reported as missing.
	if owner != customerID {
		log.Warn("review attempt on foreign order")
		return nil, ErrOrderNotFound
	}
	if status != statusDelivered {
		return nil, ErrOrderNotDelivered
	}

	ok, err := s.repo.OrderContainsMeal(ctx, in.OrderID, in.MealID)
	if err != nil {
		log.Error("failed to check order items", zap.Error(err))
		return nil, err
	}
	if !ok {
		return nil, ErrMealNotInOrder
	}

	rv, err := s.repo.Create(ctx, &Review{
		CustomerID: customerID,
		MealID:     in.MealID,
		OrderID:    in.OrderID,
		Rating:     in.Rating,
		Comment:    in.Comment,
	})
	if err != nil {
		return nil, err
	}

	log.Info("review created", zap.String("review_id", rv.ID.String()))
	return rv, nil
}

func (s *service) ListMealReviews(ctx context.Context, mealID uuid.UUID, page utils.Page) (*MealReviews, error) {
	reviews, total, err := s.repo.ListByMeal(ctx, mealID, page)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to list meal reviews", zap.Error(err))
		return nil, err
	}

	summary, err := s.repo.Summary(ctx, mealID)
	if err != nil {
		return nil, err
	}

	return &MealReviews{
		Reviews:       reviews,
		AverageRating: summary.AverageRating,
		Total:         total,
	}, nil
}

func (s *service) ListMyReviews(ctx context.Context, customerID uuid.UUID, page utils.Page) ([]*Review, int64, error) {
	return s.repo.ListByCustomer(ctx, customerID, page)
}

func (s *service) DeleteReview(ctx context.Context, actorID uuid.UUID, actorRole string, reviewID uuid.UUID) error {
	rv, err := s.repo.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}

	if rv.CustomerID != actorID && actorRole != roleAdmin {
		return ErrForbidden
	}

	if err := s.repo.Delete(ctx, reviewID); err != nil {
		return err
	}

	logger.FromCtx(ctx).Info("review deleted",
		zap.String("review_id", reviewID.String()),
		zap.String("actor_id", actorID.String()),
	)
	return nil
}
