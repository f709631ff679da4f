// Package read реализует HTTP-обработчик чтения одной подписки по id.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/unsubapp/subtracker/internal/http/middlewarectx"
	"github.com/unsubapp/subtracker/internal/http/response"
	"github.com/unsubapp/subtracker/internal/lib/sl"
	"github.com/unsubapp/subtracker/internal/models"
	subservice "github.com/unsubapp/subtracker/internal/services/subscription"
)

// Service описывает интерфейс бизнес-логики чтения подписки.
type Service interface {
	GetOwned(ctx context.Context, userID, id int) (*models.Subscription, error)
}

// Handler управляет HTTP-запросами на чтение подписки.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить подписку по ID
// @Description Возвращает подписку текущего пользователя. Чужая подписка недоступна.
// @Tags Subscriptions
// @Security BearerAuth
// @Produce  json
// @Param id path int true "ID подписки"
// @Success 200 {object} response.Response "Подписка найдена"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Подписка принадлежит другому пользователю"
// @Failure 404 {object} response.ErrorResponse "Подписка не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /subscriptions/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.read"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("invalid subscription id", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(http.StatusBadRequest, "invalid subscription id"))
		return
	}

	userID, ok := middlewarectx.UserIDFromContext(r.Context())
	if !ok {
		log.Error("user id not found in context")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error(http.StatusUnauthorized, "unauthorized"))
		return
	}

	sub, err := h.service.GetOwned(r.Context(), userID, id)
	if err != nil {
		switch {
		case errors.Is(err, subservice.ErrNotFound):
			log.Error("subscription not found", slog.Int("id", id))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error(http.StatusNotFound, "subscription not found"))
		case errors.Is(err, subservice.ErrForbidden):
			log.Error("subscription belongs to another user", slog.Int("id", id))
			render.Status(r, http.StatusForbidden)
			render.JSON(w, r, response.Error(http.StatusForbidden, "access to this subscription is denied"))
		default:
			log.Error("failed to read subscription", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error(http.StatusInternalServerError, "could not read subscription"))
		}
		return
	}

	render.JSON(w, r, response.OK(http.StatusOK, "Subscription loaded", sub))
}
