// Package subtracker предоставляет маршруты для основного приложения.
package subtracker

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/unsubapp/subtracker/internal/http/handlers/ai/cancelhelp"
	"github.com/unsubapp/subtracker/internal/http/handlers/auth/login"
	"github.com/unsubapp/subtracker/internal/http/handlers/auth/refresh"
	"github.com/unsubapp/subtracker/internal/http/handlers/auth/register"
	categorylist "github.com/unsubapp/subtracker/internal/http/handlers/category/list"
	"github.com/unsubapp/subtracker/internal/http/handlers/health"
	"github.com/unsubapp/subtracker/internal/http/handlers/subscription/create"
	"github.com/unsubapp/subtracker/internal/http/handlers/subscription/list"
	"github.com/unsubapp/subtracker/internal/http/handlers/subscription/read"
	"github.com/unsubapp/subtracker/internal/http/handlers/subscription/remove"
	"github.com/unsubapp/subtracker/internal/http/handlers/subscription/update"
	"github.com/unsubapp/subtracker/internal/http/handlers/user/fcmtoken"
	"github.com/unsubapp/subtracker/internal/http/handlers/user/me"
	"github.com/unsubapp/subtracker/internal/http/middlewarectx"
	"github.com/unsubapp/subtracker/internal/lib/jwt"
	aiservice "github.com/unsubapp/subtracker/internal/services/ai"
	authservice "github.com/unsubapp/subtracker/internal/services/auth"
	categoryservice "github.com/unsubapp/subtracker/internal/services/category"
	subservice "github.com/unsubapp/subtracker/internal/services/subscription"
	userservice "github.com/unsubapp/subtracker/internal/services/user"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(
	r chi.Router,
	logger *slog.Logger,
	jwtMaker jwt.Maker,
	authService *authservice.AuthService,
	userService *userservice.UserService,
	subscriptionService *subservice.SubscriptionService,
	aiService *aiservice.AIService,
	categoryService *categoryservice.CategoryService,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/auth/register", register.New(logger, authService).ServeHTTP)
		r.Post("/auth/login", login.New(logger, authService).ServeHTTP)
		r.Post("/auth/refresh", refresh.New(logger, authService).ServeHTTP)
		r.Get("/health", health.New(logger).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(jwtMaker, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Post("/subscriptions", create.New(logger, subscriptionService).ServeHTTP)
			r.Get("/subscriptions", list.New(logger, subscriptionService).ServeHTTP)
			r.Get("/subscriptions/{id}", read.New(logger, subscriptionService).ServeHTTP)
			r.Put("/subscriptions/{id}", update.New(logger, subscriptionService).ServeHTTP)
			r.Delete("/subscriptions/{id}", remove.New(logger, subscriptionService).ServeHTTP)
			r.Get("/users/me", me.New(logger, userService).ServeHTTP)
			r.Patch("/users/me/fcm-token", fcmtoken.New(logger, userService).ServeHTTP)
			r.Post("/ai/cancel-help", cancelhelp.New(logger, aiService).ServeHTTP)
			r.Get("/categories", categorylist.New(logger, categoryService).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
