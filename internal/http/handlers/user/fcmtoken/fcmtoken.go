// Package fcmtoken реализует HTTP-обработчик регистрации push-токена устройства.
package fcmtoken

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/unsubapp/subtracker/internal/http/middlewarectx"
	"github.com/unsubapp/subtracker/internal/http/response"
	"github.com/unsubapp/subtracker/internal/lib/sl"
	userservice "github.com/unsubapp/subtracker/internal/services/user"
)

// Request — входные данные с push-токеном устройства
type Request struct {
	FCMToken string `json:"fcmToken" validate:"required"`
}

// Service описывает интерфейс бизнес-логики обновления push-токена.
type Service interface {
	UpdateFCMToken(ctx context.Context, userID int, fcmToken string) error
}

// Handler управляет HTTP-запросами на обновление push-токена.
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
// @Summary Обновить FCM-токен устройства
// @Description Сохраняет push-токен устройства текущего пользователя для напоминаний.
// @Tags Users
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param request body Request true "Push-токен устройства"
// @Success 200 {object} response.Response "Токен сохранён"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /users/me/fcm-token [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.fcmtoken"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
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

	userID, ok := middlewarectx.UserIDFromContext(r.Context())
	if !ok {
		log.Error("user id not found in context")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error(http.StatusUnauthorized, "unauthorized"))
		return
	}

	if err := h.service.UpdateFCMToken(r.Context(), userID, req.FCMToken); err != nil {
		if errors.Is(err, userservice.ErrNotFound) {
			log.Error("user not found", slog.Int("user_id", userID))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error(http.StatusNotFound, "user not found"))
			return
		}
		log.Error("failed to update fcm token", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error(http.StatusInternalServerError, "could not update fcm token"))
		return
	}

	log.Info("fcm token updated", slog.Int("user_id", userID))
	render.JSON(w, r, response.OK(http.StatusOK, "FCM token updated", nil))
}
