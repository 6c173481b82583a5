package chat

import (
	"context"
	"database/sql"
	"fmt"

	"foodhub-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

const (
	snapshotMealLimit     = 50
	snapshotProviderLimit = 20
)

type Repository interface {
	Snapshot(ctx context.Context) (*Catalogue, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Snapshot(ctx context.Context) (*Catalogue, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Snapshot"),
	)

	c := &Catalogue{
		Meals:      []CatalogueMeal{},
		Categories: []string{},
		Providers:  []CatalogueProvider{},
	}

	if err := r.loadMeals(ctx, c); err != nil {
		log.Error("failed to load meals", zap.Error(err))
		return nil, err
	}
	if err := r.loadCategories(ctx, c); err != nil {
		log.Error("failed to load categories", zap.Error(err))
		return nil, err
	}
	if err := r.loadProviders(ctx, c); err != nil {
		log.Error("failed to load providers", zap.Error(err))
		return nil, err
	}

	log.Debug("catalogue snapshot loaded",
		zap.Int("meals", len(c.Meals)),
		zap.Int("categories", len(c.Categories)),
		zap.Int("providers", len(c.Providers)),
	)
	return c, nil
}

func (r *repository) loadMeals(ctx context.Context, c *Catalogue) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT m.name, m.description, m.price, m.dietary_info, m.prep_time,
			c.name, pp.restaurant_name
		FROM meals m
		LEFT JOIN categories c ON c.id = m.category_id
		LEFT JOIN provider_profiles pp ON pp.user_id = m.provider_id
		WHERE m.is_available = TRUE
		ORDER BY m.created_at DESC
		LIMIT $1
	`, snapshotMealLimit)
	if err != nil {
		return fmt.Errorf("query meals: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m CatalogueMeal
		if err := rows.Scan(
			&m.Name, &m.Description, &m.Price, pq.Array(&m.DietaryInfo), &m.PrepTime,
			&m.CategoryName, &m.RestaurantName,
		); err != nil {
			return fmt.Errorf("scan meal: %w", err)
		}
		c.Meals = append(c.Meals, m)
	}
	return rows.Err()
}

func (r *repository) loadCategories(ctx context.Context, c *Catalogue) error {
	rows, err := r.db.QueryContext(ctx, `SELECT name FROM categories ORDER BY name`)
	if err != nil {
		return fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return fmt.Errorf("scan category: %w", err)
		}
		c.Categories = append(c.Categories, name)
	}
	return rows.Err()
}

func (r *repository) loadProviders(ctx context.Context, c *Catalogue) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT restaurant_name, cuisine_type, description
		FROM provider_profiles
		ORDER BY restaurant_name
		LIMIT $1
	`, snapshotProviderLimit)
	if err != nil {
		return fmt.Errorf("query providers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p CatalogueProvider
		if err := rows.Scan(&p.RestaurantName, &p.CuisineType, &p.Description); err != nil {
			return fmt.Errorf("scan provider: %w", err)
		}
		c.Providers = append(c.Providers, p)
	}
	return rows.Err()
}
