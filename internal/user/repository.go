package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"foodhub-be/internal/logger"
	"foodhub-be/internal/provider"
	"foodhub-be/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	// Create inserts the user and, when profile is non-nil, its provider
	// profile in the same transaction.
	Create(ctx context.Context, u *User, profile *provider.Profile) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	List(ctx context.Context, filter ListFilter) ([]*User, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (*User, error)
	GetStatus(ctx context.Context, id uuid.UUID) (Status, error)
	UpdateProfile(ctx context.Context, p UpdateProfileParams) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const userColumns = `u.id, u.name, u.email, u.password_hash, u.role, u.status, u.phone, u.address, u.created_at, u.updated_at`

func scanUser(scan func(dest ...any) error, extra ...any) (*User, error) {
	var u User
	dest := []any{
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.Status,
		&u.Phone, &u.Address, &u.CreatedAt, &u.UpdatedAt,
	}
	if err := scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) Create(ctx context.Context, u *User, profile *provider.Profile) (*User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.String("email", u.Email),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO users (name, email, password_hash, role, phone, address)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, status, created_at, updated_at
	`, u.Name, u.Email, u.PasswordHash, u.Role, u.Phone, u.Address,
	).Scan(&u.ID, &u.Status, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if utils.IsUniqueViolation(err) {
			return nil, ErrEmailExists
		}
		log.Error("db: failed to insert user", zap.Error(err))
		return nil, fmt.Errorf("insert user: %w", err)
	}

	if profile != nil {
		profile.UserID = u.ID
		err = tx.QueryRowContext(ctx, `
			INSERT INTO provider_profiles (user_id, restaurant_name, description, cuisine_type, address)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING created_at, updated_at
		`, profile.UserID, profile.RestaurantName, profile.Description, profile.CuisineType, profile.Address,
		).Scan(&profile.CreatedAt, &profile.UpdatedAt)
		if err != nil {
			log.Error("db: failed to insert provider profile", zap.Error(err))
			return nil, fmt.Errorf("insert provider profile: %w", err)
		}
		u.ProviderProfile = profile
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit user: %w", err)
	}

	log.Info("user created", zap.String("user_id", u.ID.String()))
	return u, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users u WHERE u.email = $1", email,
	).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return u, nil
}

// FindByID also loads the provider profile when the user has one.
func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var (
		restaurant  *string
		description *string
		cuisine     *string
		address     *string
		imageURL    *string
		createdAt   *time.Time
		updatedAt   *time.Time
	)

	u, err := scanUser(r.db.QueryRowContext(ctx, `
		SELECT `+userColumns+`,
			pp.restaurant_name, pp.description, pp.cuisine_type, pp.address,
			pp.image_url, pp.created_at, pp.updated_at
		FROM users u
		LEFT JOIN provider_profiles pp ON pp.user_id = u.id
		WHERE u.id = $1
	`, id).Scan, &restaurant, &description, &cuisine, &address, &imageURL, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user by id: %w", err)
	}

	if restaurant != nil {
		u.ProviderProfile = &provider.Profile{
			UserID:         u.ID,
			RestaurantName: *restaurant,
			Description:    description,
			CuisineType:    cuisine,
			Address:        address,
			ImageURL:       imageURL,
		}
		if createdAt != nil {
			u.ProviderProfile.CreatedAt = *createdAt
		}
		if updatedAt != nil {
			u.ProviderProfile.UpdatedAt = *updatedAt
		}
	}

	return u, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]*User, int64, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "List"),
	)

	where := []string{}
	args := []interface{}{}

	if filter.Role != "" {
		where = append(where, fmt.Sprintf("u.role = $%d", len(args)+1))
		args = append(args, filter.Role)
	}

	whereSQL := ""
	if len(where) > 0 {
		whereSQL = " WHERE " + strings.Join(where, " AND ")
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users u"+whereSQL, args...).Scan(&total); err != nil {
		log.Error("failed to count users", zap.Error(err))
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	query := "SELECT " + userColumns + " FROM users u" + whereSQL +
		" ORDER BY u.created_at DESC" +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, filter.Page.Limit, filter.Page.Offset())

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query users", zap.Error(err))
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]*User, 0, filter.Page.Limit)
	for rows.Next() {
		u, err := scanUser(rows.Scan)
		if err != nil {
			return nil, 0, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (*User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, `
		UPDATE users u
		SET status = $2, updated_at = NOW()
		WHERE u.id = $1
		RETURNING `+userColumns,
		id, status,
	).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update user status: %w", err)
	}
	return u, nil
}

func (r *repository) GetStatus(ctx context.Context, id uuid.UUID) (Status, error) {
	var status Status
	err := r.db.QueryRowContext(ctx, `SELECT status FROM users WHERE id = $1`, id).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrUserNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get user status: %w", err)
	}
	return status, nil
}
