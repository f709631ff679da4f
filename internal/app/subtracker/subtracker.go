// Package subtracker собирает основное HTTP-приложение: хранилище,
// миграции, кеш, сервисы и сервер с маршрутами.
package subtracker

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/unsubapp/subtracker/internal/cache"
	"github.com/unsubapp/subtracker/internal/config"
	"github.com/unsubapp/subtracker/internal/gemini"
	"github.com/unsubapp/subtracker/internal/lib/jwt"
	"github.com/unsubapp/subtracker/internal/migrations"
	aiservice "github.com/unsubapp/subtracker/internal/services/ai"
	authservice "github.com/unsubapp/subtracker/internal/services/auth"
	categoryservice "github.com/unsubapp/subtracker/internal/services/category"
	subservice "github.com/unsubapp/subtracker/internal/services/subscription"
	userservice "github.com/unsubapp/subtracker/internal/services/user"
	"github.com/unsubapp/subtracker/internal/storage/repository"
)

// App инкапсулирует HTTP-сервер и его зависимости.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
}

// New создаёт приложение: подключает PostgreSQL, накатывает миграции,
// инициализирует Redis и собирает сервисы с маршрутами.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewJWTMaker(cfg.AccessSecretKey, cfg.RefreshSecretKey, cfg.AccessTokenTTL)
	geminiClient := gemini.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiBaseURL)

	authService := authservice.NewAuthService(db, jwtMaker)
	userService := userservice.NewUserService(db)
	subscriptionService := subservice.NewSubscriptionService(db, cacheRedis, logger)
	aiService := aiservice.NewAIService(geminiClient, logger)
	categoryService := categoryservice.NewCategoryService()

	router := chi.NewRouter()
	RegisterRoutes(router, logger, jwtMaker, authService, userService, subscriptionService, aiService, categoryService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его при отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.db.DB.Close()
		return err
	}
}
