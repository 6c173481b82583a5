package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"foodhub-be/internal/api"
	"foodhub-be/internal/auth"
	"foodhub-be/internal/cache"
	"foodhub-be/internal/category"
	"foodhub-be/internal/chat"
	"foodhub-be/internal/config"
	"foodhub-be/internal/db"
	"foodhub-be/internal/logger"
	"foodhub-be/internal/meal"
	"foodhub-be/internal/metrics"
	"foodhub-be/internal/middleware"
	"foodhub-be/internal/nutrition"
	"foodhub-be/internal/order"
	"foodhub-be/internal/provider"
	"foodhub-be/internal/review"
	"foodhub-be/internal/user"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var (
	initDBFunc      = db.InitDB
	startServerFunc = startServer
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger.Init(cfg.AppEnv, cfg.LogLevel)
	defer logger.Sync()

	database := initDBFunc(cfg)
	defer database.Close()

	store := connectCache(cfg)

	limiter := middleware.NewRateLimiter(cfg.InternalServiceKey)
	defer limiter.Stop()

	handler := newServer(cfg, database, store, limiter)

	addr := ":" + cfg.AppPort
	logger.L().Info("FoodHub API listening",
		zap.String("addr", addr),
		zap.String("env", cfg.AppEnv),
	)
	return startServerFunc(addr, handler)
}

// connectCache returns the Redis-backed catalogue cache, or a no-op cache
// when Redis is not configured or unreachable.
func connectCache(cfg *config.Config) cache.Cache {
	if cfg.RedisAddr == "" {
		return cache.NewNoop()
	}

	client, err := cache.Connect(context.Background(), cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		logger.L().Warn("catalogue cache disabled", zap.Error(err))
		return cache.NewNoop()
	}

	logger.L().Info("catalogue cache connected", zap.String("addr", cfg.RedisAddr))
	return cache.NewRedis(client)
}

func newMetrics() *metrics.Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return metrics.New(reg)
}

func newServer(cfg *config.Config, database *sql.DB, store cache.Cache, limiter *middleware.RateLimiter) http.Handler {
	m := newMetrics()
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)

	reviewRepo := review.NewRepository(database)
	mealRepo := meal.NewRepository(database)

	userSvc := user.NewService(user.NewRepository(database), tokens)
	categorySvc := category.NewService(category.NewRepository(database), store)
	mealSvc := meal.NewService(mealRepo, reviewRepo, store)
	providerSvc := provider.NewService(provider.NewRepository(database), mealRepo, store)
	orderSvc := order.NewService(order.NewRepository(database), m)
	reviewSvc := review.NewService(reviewRepo)

	chatClient := chat.NewAnthropicClient(cfg.AnthropicAPIKey, cfg.AnthropicBaseURL, cfg.AnthropicModel, m)
	chatSvc := chat.NewService(chat.NewRepository(database), chatClient, store, cfg.CatalogueCacheTTL)
	nutritionSvc := nutrition.NewService(nutrition.NewUSDAClient(cfg.USDAAPIKey, cfg.USDABaseURL, m))

	return api.NewRouter(api.Config{
		Services: api.Services{
			Users:      userSvc,
			Providers:  providerSvc,
			Categories: categorySvc,
			Meals:      mealSvc,
			Orders:     orderSvc,
			Reviews:    reviewSvc,
			Chat:       chatSvc,
			Nutrition:  nutritionSvc,
		},
		Tokens:         tokens,
		Accounts:       userSvc,
		Limiter:        limiter,
		Metrics:        m,
		AllowedOrigins: []string{cfg.FrontendURL, "http://localhost:3000"},
		SecureCookies:  cfg.IsProduction(),
		TokenTTL:       cfg.JWTTTL,
	})
}

// startServer blocks until the server fails or SIGINT/SIGTERM is received,
// then drains in-flight requests.
func startServer(addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		// chat requests wait on the upstream model
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.L().Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
