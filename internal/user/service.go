package user

import (
	"context"
	"errors"
	"strings"

	"foodhub-be/internal/auth"
	"foodhub-be/internal/logger"
	"foodhub-be/internal/provider"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const DefaultPageLimit = 20

type TokenIssuer interface {
	Generate(userID uuid.UUID, email, role string) (string, error)
}

type Service interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Me(ctx context.Context, id uuid.UUID) (*User, error)
	UpdateProfile(ctx context.Context, p UpdateProfileParams) (*User, error)
	ListUsers(ctx context.Context, filter ListFilter) ([]*User, int64, error)
	UpdateUserStatus(ctx context.Context, actorID, targetID uuid.UUID, status Status) (*User, error)
	IsActive(ctx context.Context, id uuid.UUID) (bool, error)
	// EnsureAdmin creates the admin account unless the email is taken.
	EnsureAdmin(ctx context.Context, name, email, password string) (*User, bool, error)
}

type service struct {
	repo   Repository
	tokens TokenIssuer
}

func NewService(repo Repository, tokens TokenIssuer) Service {
	return &service{repo: repo, tokens: tokens}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *service) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	email := normalizeEmail(in.Email)
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Register"),
		zap.String("email", email),
	)

	role := in.Role
	if role == "" {
		role = RoleCustomer
	}
	if role != RoleCustomer && role != RoleProvider {
		log.Warn("rejected registration role", zap.String("role", string(role)))
		return nil, ErrInvalidRole
	}

	var profile *provider.Profile
	if role == RoleProvider {
		name := strings.TrimSpace(in.RestaurantName)
		if name == "" {
			return nil, ErrRestaurantNameRequired
		}
		profile = &provider.Profile{
			RestaurantName: name,
			Description:    in.Description,
			CuisineType:    in.CuisineType,
			Address:        in.Address,
		}
	}

	hashed, err := auth.HashPassword(in.Password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return nil, err
	}

	u, err := s.repo.Create(ctx, &User{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: hashed,
		Role:         role,
		Phone:        in.Phone,
		Address:      in.Address,
	}, profile)
	if err != nil {
		if !errors.Is(err, ErrEmailExists) {
			log.Error("failed to create user", zap.Error(err))
		}
		return nil, err
	}

	token, err := s.tokens.Generate(u.ID, u.Email, string(u.Role))
	if err != nil {
		log.Error("failed to generate jwt", zap.String("user_id", u.ID.String()), zap.Error(err))
		return nil, err
	}

	log.Info("register service completed", zap.String("user_id", u.ID.String()))
	return &AuthResult{User: u, Token: token}, nil
}

func (s *service) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = normalizeEmail(email)
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Login"),
	)

	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			log.Info("email not found")
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPasswordHash(password, u.PasswordHash) {
		log.Info("password not match", zap.String("user_id", u.ID.String()))
		return nil, ErrInvalidCredentials
	}

	if u.Status == StatusSuspended {
		log.Warn("suspended user tried to log in", zap.String("user_id", u.ID.String()))
		return nil, ErrAccountSuspended
	}

	token, err := s.tokens.Generate(u.ID, u.Email, string(u.Role))
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: u, Token: token}, nil
}

func (s *service) Me(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) UpdateProfile(ctx context.Context, p UpdateProfileParams) (*User, error) {
	if p.Name != nil {
		trimmed := strings.TrimSpace(*p.Name)
		if trimmed == "" {
			p.Name = nil
		} else {
			p.Name = &trimmed
		}
	}

	if err := s.repo.UpdateProfile(ctx, p); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, p.UserID)
}

func (s *service) ListUsers(ctx context.Context, filter ListFilter) ([]*User, int64, error) {
	if filter.Role != "" && !filter.Role.Valid() {
		return nil, 0, ErrInvalidRole
	}
	return s.repo.List(ctx, filter)
}

func (s *service) UpdateUserStatus(ctx context.Context, actorID, targetID uuid.UUID, status Status) (*User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateUserStatus"),
		zap.String("target_id", targetID.String()),
		zap.String("status", string(status)),
	)

	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	if actorID == targetID {
		return nil, ErrCannotChangeOwnStatus
	}

	u, err := s.repo.UpdateStatus(ctx, targetID, status)
	if err != nil {
		return nil, err
	}

	log.Info("user status updated", zap.String("actor_id", actorID.String()))
	return u, nil
}

func (s *service) IsActive(ctx context.Context, id uuid.UUID) (bool, error) {
	status, err := s.repo.GetStatus(ctx, id)
	if errors.Is(err, ErrUserNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return status == StatusActive, nil
}

func (s *service) EnsureAdmin(ctx context.Context, name, email, password string) (*User, bool, error) {
	email = normalizeEmail(email)

	existing, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, false, err
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, false, err
	}

	u, err := s.repo.Create(ctx, &User{
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
		Role:         RoleAdmin,
	}, nil)
	if err != nil {
		return nil, false, err
	}

	logger.FromCtx(ctx).Info("admin account created", zap.String("user_id", u.ID.String()))
	return u, true, nil
}
