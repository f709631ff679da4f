// Package refresh реализует HTTP-обработчик ротации refresh-токена.
package refresh

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/unsubapp/subtracker/internal/http/response"
	"github.com/unsubapp/subtracker/internal/lib/sl"
	"github.com/unsubapp/subtracker/internal/models"
	authservice "github.com/unsubapp/subtracker/internal/services/auth"
)

// Request — входные данные для обновления токенов
type Request struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// Service описывает интерфейс сервиса авторизации для ротации токенов.
type Service interface {
	Refresh(ctx context.Context, refreshToken string) (*models.User, *authservice.TokenPair, error)
}

// Handler управляет HTTP-запросами на обновление пары токенов.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Обновить пару токенов
// @Description Проверяет refresh-токен и возвращает новую пару токенов.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Действующий refresh-токен"
// @Success 200 {object} response.Response "Токены обновлены"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 403 {object} response.ErrorResponse "Refresh-токен невалиден или просрочен"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /auth/refresh [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.refresh"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(http.StatusBadRequest, "invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(http.StatusUnprocessableEntity, err.(validator.ValidationErrors)))
		return
	}

	user, tokens, err := h.service.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, authservice.ErrInvalidRefreshToken) {
			log.Error("refresh token rejected")
			render.Status(r, http.StatusForbidden)
			render.JSON(w, r, response.Error(http.StatusForbidden, "invalid or expired refresh token"))
			return
		}
		log.Error("token refresh failed", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error(http.StatusInternalServerError, "failed to refresh tokens"))
		return
	}

	log.Info("tokens refreshed", slog.Int("user_id", user.ID))
	render.JSON(w, r, response.OK(http.StatusOK, "Tokens refreshed", map[string]any{
		"user":         user.Profile(),
		"accessToken":  tokens.AccessToken,
		"refreshToken": tokens.RefreshToken,
	}))
}
