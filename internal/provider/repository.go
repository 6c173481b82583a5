package provider

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"foodhub-be/internal/logger"
	"foodhub-be/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]*Provider, int64, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*Provider, error)
	UpdateProfile(ctx context.Context, p UpdateProfileParams) (*Profile, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const providerSelect = `
	SELECT
		pp.user_id, pp.restaurant_name, pp.description, pp.cuisine_type,
		pp.address, pp.image_url, pp.created_at, pp.updated_at,
		u.name, u.phone,
		(SELECT COUNT(*) FROM meals m WHERE m.provider_id = pp.user_id AND m.is_available) AS meal_count
	FROM provider_profiles pp
	JOIN users u ON u.id = pp.user_id
`

func scanProvider(scan func(dest ...any) error) (*Provider, error) {
	var p Provider
	err := scan(
		&p.UserID, &p.RestaurantName, &p.Description, &p.CuisineType,
		&p.Address, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt,
		&p.OwnerName, &p.Phone, &p.MealCount,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]*Provider, int64, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "List"),
		zap.String("search", filter.Search),
	)

	where := []string{"u.status = 'ACTIVE'"}
	args := []interface{}{}

	if s := strings.TrimSpace(filter.Search); s != "" {
		where = append(where, fmt.Sprintf("(pp.restaurant_name ILIKE $%d OR pp.cuisine_type ILIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, utils.ContainsPattern(s))
	}
	whereSQL := " WHERE " + strings.Join(where, " AND ")

	var total int64
	countQuery := "SELECT COUNT(*) FROM provider_profiles pp JOIN users u ON u.id = pp.user_id" + whereSQL
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		log.Error("failed to count providers", zap.Error(err))
		return nil, 0, fmt.Errorf("count providers: %w", err)
	}

	query := providerSelect + whereSQL +
		" ORDER BY pp.restaurant_name ASC" +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, filter.Page.Limit, filter.Page.Offset())

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query providers", zap.Error(err))
		return nil, 0, fmt.Errorf("list providers: %w", err)
	}
	defer rows.Close()

	providers := make([]*Provider, 0, filter.Page.Limit)
	for rows.Next() {
		p, err := scanProvider(rows.Scan)
		if err != nil {
			return nil, 0, fmt.Errorf("scan provider: %w", err)
		}
		providers = append(providers, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return providers, total, nil
}

func (r *repository) GetByUserID(ctx context.Context, userID uuid.UUID) (*Provider, error) {
	p, err := scanProvider(r.db.QueryRowContext(ctx, providerSelect+" WHERE pp.user_id = $1", userID).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProviderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get provider: %w", err)
	}
	return p, nil
}

func (r *repository) UpdateProfile(ctx context.Context, p UpdateProfileParams) (*Profile, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "UpdateProfile"),
		zap.String("user_id", p.UserID.String()),
	)

	// Using COALESCE to keep existing values if input is nil
	query := `
		UPDATE provider_profiles
		SET restaurant_name = COALESCE($2, restaurant_name),
			description = COALESCE($3, description),
			cuisine_type = COALESCE($4, cuisine_type),
			address = COALESCE($5, address),
			image_url = COALESCE($6, image_url),
			updated_at = NOW()
		WHERE user_id = $1
		RETURNING user_id, restaurant_name, description, cuisine_type, address, image_url, created_at, updated_at
	`

	var out Profile
	err := r.db.QueryRowContext(ctx, query,
		p.UserID, p.RestaurantName, p.Description, p.CuisineType, p.Address, p.ImageURL,
	).Scan(
		&out.UserID, &out.RestaurantName, &out.Description, &out.CuisineType,
		&out.Address, &out.ImageURL, &out.CreatedAt, &out.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProviderNotFound
	}
	if err != nil {
		log.Error("failed to update provider profile", zap.Error(err))
		return nil, fmt.Errorf("update provider profile: %w", err)
	}

	log.Info("provider profile updated")
	return &out, nil
}
