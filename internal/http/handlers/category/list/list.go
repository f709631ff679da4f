// Package list реализует HTTP-обработчик справочника категорий подписок.
package list

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/unsubapp/subtracker/internal/http/response"
	"github.com/unsubapp/subtracker/internal/models"
)

// Service описывает интерфейс справочника категорий.
type Service interface {
	List() []models.Category
}

// Handler управляет HTTP-запросами на получение справочника категорий.
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
// @Summary Справочник категорий
// @Description Возвращает статичный список категорий подписок.
// @Tags Categories
// @Security BearerAuth
// @Produce  json
// @Success 200 {object} response.Response "Список категорий"
// @Router /categories [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, response.OK(http.StatusOK, "Categories loaded", h.service.List()))
}
