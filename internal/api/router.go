package api

import (
	"net/http"
	"time"

	"foodhub-be/internal/category"
	"foodhub-be/internal/chat"
	"foodhub-be/internal/logger"
	"foodhub-be/internal/meal"
	"foodhub-be/internal/metrics"
	"foodhub-be/internal/middleware"
	"foodhub-be/internal/nutrition"
	"foodhub-be/internal/order"
	"foodhub-be/internal/provider"
	"foodhub-be/internal/review"
	"foodhub-be/internal/transport"
	"foodhub-be/internal/user"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

const (
	roleCustomer = string(user.RoleCustomer)
	roleProvider = string(user.RoleProvider)
	roleAdmin    = string(user.RoleAdmin)
)

type Services struct {
	Users      user.Service
	Providers  provider.Service
	Categories category.Service
	Meals      meal.Service
	Orders     order.Service
	Reviews    review.Service
	Chat       chat.Service
	Nutrition  nutrition.Service
}

type Config struct {
	Services Services
	Tokens   middleware.TokenParser
	// Accounts re-checks the account status on authenticated requests.
	Accounts middleware.AccountChecker
	// Limiter is optional.
	Limiter *middleware.RateLimiter
	// Metrics is optional.
	Metrics        *metrics.Metrics
	AllowedOrigins []string
	SecureCookies  bool
	TokenTTL       time.Duration
}

// NewRouter wires every HTTP route of the API.
func NewRouter(cfg Config) http.Handler {
	authn := middleware.NewAuthenticator(cfg.Tokens, cfg.Accounts)

	authH := NewAuthHandler(cfg.Services.Users, cfg.SecureCookies, cfg.TokenTTL)
	adminH := NewAdminHandler(cfg.Services.Users, cfg.Services.Orders)
	mealH := NewMealHandler(cfg.Services.Meals)
	providerH := NewProviderHandler(cfg.Services.Providers)
	categoryH := NewCategoryHandler(cfg.Services.Categories)
	orderH := NewOrderHandler(cfg.Services.Orders)
	reviewH := NewReviewHandler(cfg.Services.Reviews)
	assistantH := NewAssistantHandler(cfg.Services.Chat, cfg.Services.Nutrition)

	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(logger.RequestIDMiddleware)
	r.Use(authn.Optional)
	r.Use(middleware.LoggingMiddleware)
	r.Use(chimw.Recoverer)
	r.Use(cfg.Metrics.Middleware)
	r.Use(middleware.CORS(cfg.AllowedOrigins...))
	if cfg.Limiter != nil {
		r.Use(cfg.Limiter.Middleware)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		transport.Error(w, http.StatusNotFound, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		transport.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Get("/", banner)
	r.Get("/api/health", health)
	r.Method(http.MethodGet, "/metrics", cfg.Metrics.Handler())

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", authH.Register)
		r.Post("/login", authH.Login)
		r.Post("/logout", authH.Logout)

		r.Group(func(r chi.Router) {
			r.Use(authn.Authenticate)
			r.Get("/me", authH.Me)
			r.Put("/profile", authH.UpdateProfile)
		})
	})

	r.Route("/api/meals", func(r chi.Router) {
		r.Get("/", mealH.List)
		r.Get("/{id}", mealH.Get)
	})

	r.Route("/api/providers", func(r chi.Router) {
		r.Get("/", providerH.List)
		r.Get("/{id}", providerH.Get)
	})

	r.Route("/api/provider", func(r chi.Router) {
		r.Use(authn.Authenticate)
		r.Use(middleware.RequireRole(roleProvider))
		r.Get("/profile", providerH.GetOwnProfile)
		r.Put("/profile", providerH.UpdateOwnProfile)
		r.Get("/meals", mealH.ListOwn)
		r.Post("/meals", mealH.Create)
		r.Put("/meals/{id}", mealH.Update)
		r.Delete("/meals/{id}", mealH.Delete)
	})

	r.Route("/api/categories", func(r chi.Router) {
		r.Get("/", categoryH.List)
		r.Get("/{id}", categoryH.Get)

		r.Group(func(r chi.Router) {
			r.Use(authn.Authenticate)
			r.Use(middleware.RequireRole(roleAdmin))
			r.Post("/", categoryH.Create)
			r.Put("/{id}", categoryH.Update)
			r.Delete("/{id}", categoryH.Delete)
		})
	})

	r.Route("/api/orders", func(r chi.Router) {
		r.Use(authn.Authenticate)

		r.With(middleware.RequireRole(roleCustomer)).Post("/", orderH.Create)
		r.With(middleware.RequireRole(roleCustomer)).Get("/my-orders", orderH.MyOrders)
		r.With(middleware.RequireRole(roleProvider, roleAdmin)).Get("/provider/orders", orderH.ProviderOrders)
		r.With(middleware.RequireRole(roleProvider, roleAdmin)).Get("/provider/statistics", orderH.Statistics)
		r.Get("/{id}", orderH.Get)
		r.Patch("/{id}/status", orderH.UpdateStatus)
		r.With(middleware.RequireRole(roleCustomer)).Patch("/{id}/cancel", orderH.Cancel)
	})

	r.Route("/api/reviews", func(r chi.Router) {
		r.Get("/meal/{mealId}", reviewH.ListForMeal)

		r.Group(func(r chi.Router) {
			r.Use(authn.Authenticate)
			r.With(middleware.RequireRole(roleCustomer)).Post("/", reviewH.Create)
			r.With(middleware.RequireRole(roleCustomer)).Get("/my-reviews", reviewH.Mine)
			r.Delete("/{id}", reviewH.Delete)
		})
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(authn.Authenticate)
		r.Use(middleware.RequireRole(roleAdmin))
		r.Get("/users", adminH.ListUsers)
		r.Patch("/users/{id}/status", adminH.UpdateUserStatus)
		r.Get("/orders", adminH.ListOrders)
	})

	r.Get("/api/nutrition", assistantH.Nutrition)
	r.Post("/api/chat", assistantH.Chat)

	return r
}

var endpoints = map[string]string{
	"auth":       "/api/auth",
	"meals":      "/api/meals",
	"providers":  "/api/providers",
	"provider":   "/api/provider",
	"categories": "/api/categories",
	"orders":     "/api/orders",
	"reviews":    "/api/reviews",
	"admin":      "/api/admin",
	"nutrition":  "/api/nutrition",
	"chat":       "/api/chat",
	"health":     "/api/health",
}

func banner(w http.ResponseWriter, _ *http.Request) {
	transport.JSON(w, http.StatusOK, map[string]any{
		"name":      "FoodHub API",
		"status":    "ok",
		"version":   "1.0.0",
		"endpoints": endpoints,
	})
}

func health(w http.ResponseWriter, _ *http.Request) {
	transport.JSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
