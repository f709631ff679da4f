// Package cancelhelp реализует HTTP-обработчик генерации инструкции
// по отмене подписки через языковую модель.
package cancelhelp

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/unsubapp/subtracker/internal/http/response"
	"github.com/unsubapp/subtracker/internal/lib/sl"
)

// Request — входные данные для генерации инструкции
type Request struct {
	SubscriptionName string `json:"subscriptionName" validate:"required,max=100"`
	Platform         string `json:"platform" validate:"omitempty,max=50"`
	Locale           string `json:"locale" validate:"omitempty,max=10"`
}

// Service описывает интерфейс генерации инструкции по отмене.
type Service interface {
	CancelHelp(ctx context.Context, subscriptionName, platform, locale string) (string, error)
}

// Handler управляет HTTP-запросами на генерацию инструкций.
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
// @Summary Инструкция по отмене подписки
// @Description Генерирует пошаговую инструкцию по отмене названного сервиса.
// @Tags AI
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param request body Request true "Название сервиса, платформа и язык"
// @Success 200 {object} response.Response "Инструкция сгенерирована"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Сбой генерации"
// @Router /ai/cancel-help [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.ai.cancelhelp"
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

	instructions, err := h.service.CancelHelp(r.Context(), req.SubscriptionName, req.Platform, req.Locale)
	if err != nil {
		log.Error("cancel help generation failed", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error(http.StatusInternalServerError, "AI cancel help generation failed"))
		return
	}

	log.Info("cancel instructions generated", slog.String("subscription", req.SubscriptionName))
	render.JSON(w, r, response.OK(http.StatusOK, "AI cancel instructions generated", map[string]any{
		"instructions": instructions,
	}))
}
