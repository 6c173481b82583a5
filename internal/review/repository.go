package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"

	"foodhub-be/internal/logger"
	"foodhub-be/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	GetOrderStatus(ctx context.Context, orderID uuid.UUID) (customerID uuid.UUID, status string, err error)
	OrderContainsMeal(ctx context.Context, orderID, mealID uuid.UUID) (bool, error)
	Create(ctx context.Context, r *Review) (*Review, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Review, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListByMeal(ctx context.Context, mealID uuid.UUID, page utils.Page) ([]*Review, int64, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID, page utils.Page) ([]*Review, int64, error)
	Summary(ctx context.Context, mealID uuid.UUID) (Summary, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetOrderStatus(ctx context.Context, orderID uuid.UUID) (uuid.UUID, string, error) {
	var customerID uuid.UUID
	var status string

	err := r.db.QueryRowContext(ctx,
		`SELECT customer_id, status FROM orders WHERE id = $1`, orderID,
	).Scan(&customerID, &status)
	if errors.Is(err, sql.ErrNoRows) {
		return uuid.Nil, "", ErrOrderNotFound
	}
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("get order status: %w", err)
	}
	return customerID, status, nil
}

func (r *repository) OrderContainsMeal(ctx context.Context, orderID, mealID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM order_items WHERE order_id = $1 AND meal_id = $2)`,
		orderID, mealID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check order meal: %w", err)
	}
	return exists, nil
}

func (r *repository) Create(ctx context.Context, rv *Review) (*Review, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.String("order_id", rv.OrderID.String()),
		zap.String("meal_id", rv.MealID.String()),
	)

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO reviews (customer_id, meal_id, order_id, rating, comment)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, rv.CustomerID, rv.MealID, rv.OrderID, rv.Rating, rv.Comment,
	).Scan(&rv.ID, &rv.CreatedAt)
	if err != nil {
		if utils.IsUniqueViolation(err) {
			return nil, ErrAlreadyReviewed
		}
		log.Error("failed to insert review", zap.Error(err))
		return nil, fmt.Errorf("insert review: %w", err)
	}

	return rv, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Review, error) {
	var rv Review
	err := r.db.QueryRowContext(ctx, `
		SELECT id, customer_id, meal_id, order_id, rating, comment, created_at
		FROM reviews
		WHERE id = $1
	`, id).Scan(&rv.ID, &rv.CustomerID, &rv.MealID, &rv.OrderID, &rv.Rating, &rv.Comment, &rv.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReviewNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get review: %w", err)
	}
	return &rv, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrReviewNotFound
	}
	return nil
}

func (r *repository) ListByMeal(ctx context.Context, mealID uuid.UUID, page utils.Page) ([]*Review, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM reviews WHERE meal_id = $1`, mealID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count meal reviews: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT rv.id, rv.customer_id, rv.meal_id, rv.order_id, rv.rating, rv.comment, rv.created_at, u.name
		FROM reviews rv
		JOIN users u ON u.id = rv.customer_id
		WHERE rv.meal_id = $1
		ORDER BY rv.created_at DESC
		LIMIT $2 OFFSET $3
	`, mealID, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list meal reviews: %w", err)
	}
	defer rows.Close()

	reviews := make([]*Review, 0, page.Limit)
	for rows.Next() {
		var rv Review
		if err := rows.Scan(
			&rv.ID, &rv.CustomerID, &rv.MealID, &rv.OrderID,
			&rv.Rating, &rv.Comment, &rv.CreatedAt, &rv.CustomerName,
		); err != nil {
			return nil, 0, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, &rv)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return reviews, total, nil
}

func (r *repository) ListByCustomer(ctx context.Context, customerID uuid.UUID, page utils.Page) ([]*Review, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM reviews WHERE customer_id = $1`, customerID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count customer reviews: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT rv.id, rv.customer_id, rv.meal_id, rv.order_id, rv.rating, rv.comment, rv.created_at, m.name
		FROM reviews rv
		JOIN meals m ON m.id = rv.meal_id
		WHERE rv.customer_id = $1
		ORDER BY rv.created_at DESC
		LIMIT $2 OFFSET $3
	`, customerID, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list customer reviews: %w", err)
	}
	defer rows.Close()

	reviews := make([]*Review, 0, page.Limit)
	for rows.Next() {
		var rv Review
		if err := rows.Scan(
			&rv.ID, &rv.CustomerID, &rv.MealID, &rv.OrderID,
			&rv.Rating, &rv.Comment, &rv.CreatedAt, &rv.MealName,
		); err != nil {
			return nil, 0, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, &rv)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return reviews, total, nil
}

func (r *repository) Summary(ctx context.Context, mealID uuid.UUID) (Summary, error) {
	var avg sql.NullFloat64
	var count int

	err := r.db.QueryRowContext(ctx,
		`SELECT AVG(rating)::float8, COUNT(*) FROM reviews WHERE meal_id = $1`, mealID,
	).Scan(&avg, &count)
	if err != nil {
		return Summary{}, fmt.Errorf("review summary: %w", err)
	}

	return Summary{
		AverageRating: math.Round(avg.Float64*10) / 10,
		ReviewCount:   count,
	}, nil
}
