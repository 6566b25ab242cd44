// Package settings реализует HTTP-обработчики пользовательских настроек.
package settings

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/focuszen/internal/http/middlewarectx"
	"github.com/magabrotheeeer/focuszen/internal/http/request"
	"github.com/magabrotheeeer/focuszen/internal/http/response"
	"github.com/magabrotheeeer/focuszen/internal/lib/sl"
	"github.com/magabrotheeeer/focuszen/internal/models"
)

// Service описывает чтение и сохранение настроек.
type Service interface {
	Get(ctx context.Context, accountID string) (*models.UserSettings, error)
	Save(ctx context.Context, accountID string, in models.UserSettings) (*models.UserSettings, error)
}

// Handler обслуживает /user/settings.
type Handler struct {
	log      *slog.Logger        // Логгер для записи операций и ошибок
	service  Service             // Бизнес-логика настроек
	validate *validator.Validate // Валидатор входящих данных
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service, validate: validator.New()}
}

// Get godoc
// @Summary Настройки пользователя
// @Description При первом обращении создает настройки по умолчанию.
// @Tags Settings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=models.UserSettings}
// @Failure 500 {object} response.ErrorResponse
// @Router /user/settings [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	log := h.log.With(
		slog.String("op", "handlers.settings.Get"),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
	account, ok := middlewarectx.RequireAccount(w, r, log)
	if !ok {
		return
	}

	res, err := h.service.Get(r.Context(), account.ID)
	if err != nil {
		log.Error("failed to get settings", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not load settings"))
		return
	}
	render.JSON(w, r, response.StatusOKWithData(res))
}

// Save godoc
// @Summary Сохранить настройки
// @Tags Settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.UserSettings true "Настройки"
// @Success 200 {object} response.Response{data=models.UserSettings}
// @Failure 400 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Router /user/settings [post]
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	log := h.log.With(
		slog.String("op", "handlers.settings.Save"),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
	account, ok := middlewarectx.RequireAccount(w, r, log)
	if !ok {
		return
	}
	var req models.UserSettings
	if !request.DecodeJSON(w, r, log, h.validate, &req) {
		return
	}

	res, err := h.service.Save(r.Context(), account.ID, req)
	if err != nil {
		log.Error("failed to save settings", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not save settings"))
		return
	}
	log.Info("settings saved", slog.String("account_id", account.ID))
	render.JSON(w, r, response.StatusOKWithData(res))
}
