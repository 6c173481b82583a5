package meal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"foodhub-be/internal/logger"
	"foodhub-be/internal/utils"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]*Meal, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Meal, error)
	Create(ctx context.Context, p CreateParams) (*Meal, error)
	Update(ctx context.Context, p UpdateParams) (*Meal, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SetAvailability(ctx context.Context, id uuid.UUID, available bool) error
	HasOrders(ctx context.Context, id uuid.UUID) (bool, error)
	CategoryExists(ctx context.Context, id uuid.UUID) (bool, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const mealColumns = `
	m.id, m.provider_id, m.category_id, m.name, m.description, m.price,
	m.image_url, m.dietary_info, m.prep_time, m.is_available,
	m.created_at, m.updated_at, c.name, pp.restaurant_name`

const mealJoins = `
	FROM meals m
	LEFT JOIN categories c ON c.id = m.category_id
	LEFT JOIN provider_profiles pp ON pp.user_id = m.provider_id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMeal(row rowScanner) (*Meal, error) {
	var m Meal
	err := row.Scan(
		&m.ID, &m.ProviderID, &m.CategoryID, &m.Name, &m.Description, &m.Price,
		&m.ImageURL, pq.Array(&m.DietaryInfo), &m.PrepTime, &m.IsAvailable,
		&m.CreatedAt, &m.UpdatedAt, &m.CategoryName, &m.RestaurantName,
	)
	if err != nil {
		return nil, err
	}
	if m.DietaryInfo == nil {
		m.DietaryInfo = []string{}
	}
	return &m, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]*Meal, int64, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "List"),
		zap.Int("page", filter.Page.Page),
		zap.Int("limit", filter.Page.Limit),
	)

	where := []string{}
	args := []interface{}{}

	if filter.AvailableOnly {
		where = append(where, "m.is_available = TRUE")
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		where = append(where, fmt.Sprintf("(m.name ILIKE $%d OR m.description ILIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, utils.ContainsPattern(s))
	}
	if filter.CategoryID != nil {
		where = append(where, fmt.Sprintf("m.category_id = $%d", len(args)+1))
		args = append(args, *filter.CategoryID)
	}
	if filter.ProviderID != nil {
		where = append(where, fmt.Sprintf("m.provider_id = $%d", len(args)+1))
		args = append(args, *filter.ProviderID)
	}
	if d := strings.TrimSpace(filter.Dietary); d != "" {
		where = append(where, fmt.Sprintf("$%d = ANY(m.dietary_info)", len(args)+1))
		args = append(args, d)
	}
	if filter.MinPrice != nil {
		where = append(where, fmt.Sprintf("m.price >= $%d", len(args)+1))
		args = append(args, *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		where = append(where, fmt.Sprintf("m.price <= $%d", len(args)+1))
		args = append(args, *filter.MaxPrice)
	}

	whereSQL := ""
	if len(where) > 0 {
		whereSQL = " WHERE " + strings.Join(where, " AND ")
	}

	// ---------- COUNT ----------
	var total int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM meals m"+whereSQL, args...).Scan(&total); err != nil {
		log.Error("failed to count meals", zap.Error(err))
		return nil, 0, fmt.Errorf("count meals: %w", err)
	}

	// ---------- DATA ----------
	query := "SELECT" + mealColumns + mealJoins + whereSQL +
		" ORDER BY m.created_at DESC" +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, filter.Page.Limit, filter.Page.Offset())

	log.Debug("executing list meals query", zap.String("query", query), zap.Any("args", args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query meals", zap.Error(err))
		return nil, 0, fmt.Errorf("list meals: %w", err)
	}
	defer rows.Close()

	meals := make([]*Meal, 0, filter.Page.Limit)
	for rows.Next() {
		m, err := scanMeal(rows)
		if err != nil {
			log.Error("failed to scan meal", zap.Error(err))
			return nil, 0, fmt.Errorf("scan meal: %w", err)
		}
		meals = append(meals, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return meals, total, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Meal, error) {
	m, err := scanMeal(r.db.QueryRowContext(ctx, "SELECT"+mealColumns+mealJoins+" WHERE m.id = $1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMealNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get meal: %w", err)
	}
	return m, nil
}

func (r *repository) Create(ctx context.Context, p CreateParams) (*Meal, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.String("provider_id", p.ProviderID.String()),
	)

	available := true
	if p.IsAvailable != nil {
		available = *p.IsAvailable
	}
	dietary := p.DietaryInfo
	if dietary == nil {
		dietary = []string{}
	}

	categoryID := p.CategoryID
	m := &Meal{
		ProviderID:  p.ProviderID,
		CategoryID:  &categoryID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		ImageURL:    p.ImageURL,
		DietaryInfo: dietary,
		PrepTime:    p.PrepTime,
		IsAvailable: available,
	}

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO meals (provider_id, category_id, name, description, price, image_url, dietary_info, prep_time, is_available)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`, p.ProviderID, p.CategoryID, p.Name, p.Description, p.Price, p.ImageURL, pq.Array(dietary), p.PrepTime, available,
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		log.Error("failed to insert meal", zap.Error(err))
		return nil, fmt.Errorf("insert meal: %w", err)
	}

	log.Info("meal created", zap.String("meal_id", m.ID.String()))
	return m, nil
}

func (r *repository) Update(ctx context.Context, p UpdateParams) (*Meal, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Update"),
		zap.String("meal_id", p.ID.String()),
	)

	var dietary interface{}
	if p.DietaryInfo != nil {
		dietary = pq.Array(p.DietaryInfo)
	}

	// COALESCE keeps the stored value for every nil field.
	var id uuid.UUID
	err := r.db.QueryRowContext(ctx, `
		UPDATE meals
		SET category_id = COALESCE($2, category_id),
			name = COALESCE($3, name),
			description = COALESCE($4, description),
			price = COALESCE($5, price),
			image_url = COALESCE($6, image_url),
			dietary_info = COALESCE($7, dietary_info),
			prep_time = COALESCE($8, prep_time),
			is_available = COALESCE($9, is_available),
			updated_at = NOW()
		WHERE id = $1
		RETURNING id
	`, p.ID, p.CategoryID, p.Name, p.Description, p.Price, p.ImageURL, dietary, p.PrepTime, p.IsAvailable,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMealNotFound
	}
	if err != nil {
		log.Error("failed to update meal", zap.Error(err))
		return nil, fmt.Errorf("update meal: %w", err)
	}

	return r.GetByID(ctx, id)
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM meals WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete meal: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrMealNotFound
	}
	return nil
}

func (r *repository) SetAvailability(ctx context.Context, id uuid.UUID, available bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE meals SET is_available = $2, updated_at = NOW() WHERE id = $1`, id, available)
	if err != nil {
		return fmt.Errorf("set meal availability: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrMealNotFound
	}
	return nil
}

func (r *repository) HasOrders(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM order_items WHERE meal_id = $1)`, id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check meal orders: %w", err)
	}
	return exists, nil
}

func (r *repository) CategoryExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM categories WHERE id = $1)`, id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check category: %w", err)
	}
	return exists, nil
}
