package middleware

import (
	"context"
	"net/http"

	"foodhub-be/internal/auth"
	"foodhub-be/internal/logger"
	"foodhub-be/internal/transport"
	"foodhub-be/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

// AccountChecker reports whether a user may still use the API.
type AccountChecker interface {
	IsActive(ctx context.Context, userID uuid.UUID) (bool, error)
}

type Authenticator struct {
	tokens   TokenParser
	accounts AccountChecker
}

// NewAuthenticator builds the auth middlewares. accounts may be nil, in which
// case the token alone is trusted.
func NewAuthenticator(tokens TokenParser, accounts AccountChecker) *Authenticator {
	return &Authenticator{tokens: tokens, accounts: accounts}
}

// Optional attaches the user to the context when a valid token is present
// and passes every request through.
func (a *Authenticator) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := auth.ExtractAccessToken(r)
		if tokenStr == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := a.tokens.Parse(tokenStr)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx := utils.SetUserContext(r.Context(), claims.UserID, claims.Email, claims.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Authenticate rejects requests without a valid token or with a suspended
// account.
func (a *Authenticator) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())

		tokenStr := auth.ExtractAccessToken(r)
		if tokenStr == "" {
			transport.Error(w, http.StatusUnauthorized, "Authentication required")
			return
		}

		claims, err := a.tokens.Parse(tokenStr)
		if err != nil {
			log.Debug("token rejected", zap.Error(err))
			transport.Error(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		if a.accounts != nil {
			active, err := a.accounts.IsActive(r.Context(), claims.UserID)
			if err != nil {
				log.Error("failed to check account status",
					zap.String("user_id", claims.UserID.String()),
					zap.Error(err),
				)
				transport.Error(w, http.StatusInternalServerError, "Authentication failed")
				return
			}
			if !active {
				transport.Error(w, http.StatusForbidden, "Account is suspended or no longer exists")
				return
			}
		}

		ctx := utils.SetUserContext(r.Context(), claims.UserID, claims.Email, claims.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole must run after Authenticate.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := utils.GetUserRoleFromContext(r.Context())
			if _, ok := allowed[role]; !ok {
				transport.Error(w, http.StatusForbidden, "Access denied")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
