package user

import (
	"context"

	"foodhub-be/internal/logger"

	"go.uber.org/zap"
)

// UpdateProfile updates the account's contact fields.
func (r *repository) UpdateProfile(ctx context.Context, p UpdateProfileParams) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "UpdateProfile"),
		zap.String("user_id", p.UserID.String()),
	)

	// Using COALESCE to keep existing values if input is nil
	query := `
		UPDATE users
		SET name = COALESCE($2, name),
			phone = COALESCE($3, phone),
			address = COALESCE($4, address),
			updated_at = NOW()
		WHERE id = $1
	`

	res, err := r.db.ExecContext(ctx, query, p.UserID, p.Name, p.Phone, p.Address)
	if err != nil {
		log.Error("failed to update profile", zap.Error(err))
		return err
	}

	if n, _ := res.RowsAffected(); n == 0 {
		log.Info("profile not found")
		return ErrUserNotFound
	}

	log.Info("profile updated successfully")
	return nil
}
