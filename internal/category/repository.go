package category

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"foodhub-be/internal/logger"
	"foodhub-be/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	GetCategories(ctx context.Context) ([]*Category, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Category, error)
	AddCategory(ctx context.Context, p CreateParams) (*Category, error)
	UpdateCategory(ctx context.Context, p UpdateParams) (*Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
	CountMeals(ctx context.Context, id uuid.UUID) (int, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const categorySelect = `
	SELECT
		c.id,
		c.name,
		c.description,
		c.image_url,
		c.created_at,
		c.updated_at,
		COUNT(m.id) FILTER (WHERE m.is_available) AS meal_count
	FROM categories c
	LEFT JOIN meals m ON m.category_id = c.id
`

func scanCategory(scan func(dest ...any) error) (*Category, error) {
	var c Category
	if err := scan(&c.ID, &c.Name, &c.Description, &c.ImageURL, &c.CreatedAt, &c.UpdatedAt, &c.MealCount); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) GetCategories(ctx context.Context) ([]*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetCategories"),
	)

	query := categorySelect + " GROUP BY c.id ORDER BY c.name ASC"

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("DB query failed GetCategories", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	categories := []*Category{}
	for rows.Next() {
		c, err := scanCategory(rows.Scan)
		if err != nil {
			log.Error("Row scan failed", zap.Error(err))
			return nil, err
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		log.Error("Rows iteration failed", zap.Error(err))
		return nil, err
	}

	return categories, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Category, error) {
	query := categorySelect + " WHERE c.id = $1 GROUP BY c.id"

	c, err := scanCategory(r.db.QueryRowContext(ctx, query, id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

func (r *repository) AddCategory(ctx context.Context, p CreateParams) (*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("category_name", p.Name),
	)
	log.Info("AddCategory started")

	query := `
		INSERT INTO categories (name, description, image_url)
		VALUES ($1, $2, $3)
		RETURNING id, name, description, image_url, created_at, updated_at
	`

	var c Category
	err := r.db.QueryRowContext(ctx, query, p.Name, p.Description, p.ImageURL).
		Scan(&c.ID, &c.Name, &c.Description, &c.ImageURL, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if utils.IsUniqueViolation(err) {
			return nil, ErrCategoryExists
		}
		log.Error("AddCategory DB query failed", zap.Error(err))
		return nil, fmt.Errorf("add category failed: %w", err)
	}

	log.Info("AddCategory success", zap.String("category_id", c.ID.String()))
	return &c, nil
}

func (r *repository) UpdateCategory(ctx context.Context, p UpdateParams) (*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "UpdateCategory"),
		zap.String("category_id", p.ID.String()),
	)

	query := `
		UPDATE categories
		SET name = COALESCE($2, name),
			description = COALESCE($3, description),
			image_url = COALESCE($4, image_url),
			updated_at = NOW()
		WHERE id = $1
		RETURNING id
	`

	var id uuid.UUID
	err := r.db.QueryRowContext(ctx, query, p.ID, p.Name, p.Description, p.ImageURL).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		if utils.IsUniqueViolation(err) {
			return nil, ErrCategoryExists
		}
		log.Error("UpdateCategory DB query failed", zap.Error(err))
		return nil, fmt.Errorf("update category failed: %w", err)
	}

	return r.GetByID(ctx, id)
}

func (r *repository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		if utils.IsForeignKeyViolation(err) {
			return ErrCategoryInUse
		}
		return fmt.Errorf("delete category failed: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

// CountMeals counts every meal in the category, available or not.
func (r *repository) CountMeals(ctx context.Context, id uuid.UUID) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM meals WHERE category_id = $1`, id,
	).Scan(&n); err != nil {
		return 0, fmt.Errorf("count category meals: %w", err)
	}
	return n, nil
}
