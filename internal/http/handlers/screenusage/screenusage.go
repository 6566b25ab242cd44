// Package screenusage реализует обработчики журнала отвлечений во время сессий.
package screenusage

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"
	"github.com/google/uuid"

	"github.com/magabrotheeeer/focuszen/internal/http/middlewarectx"
	"github.com/magabrotheeeer/focuszen/internal/http/request"
	"github.com/magabrotheeeer/focuszen/internal/http/response"
	"github.com/magabrotheeeer/focuszen/internal/lib/sl"
	"github.com/magabrotheeeer/focuszen/internal/models"
)

// Service описывает запись и статистику использования экрана.
type Service interface {
	Record(ctx context.Context, accountID string, in models.ScreenUsageLog) (*models.ScreenUsageLog, error)
	Stats(ctx context.Context, accountID string, sessionID *string) (*models.ScreenUsageStats, error)
}

// Handler обслуживает /screen-usage.
type Handler struct {
	log      *slog.Logger        // Логгер для записи операций и ошибок
	service  Service             // Учёт отвлечений
	validate *validator.Validate // Валидатор входящих данных
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service, validate: validator.New()}
}

// Record godoc
// @Summary Записать использование экрана
// @Tags ScreenUsage
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.ScreenUsageLog true "Отвлечения и время"
// @Success 201 {object} response.Response{data=models.ScreenUsageLog}
// @Failure 422 {object} response.ErrorResponse
// @Router /screen-usage [post]
func (h *Handler) Record(w http.ResponseWriter, r *http.Request) {
	log := h.log.With(
		slog.String("op", "handlers.screenusage.Record"),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
	account, ok := middlewarectx.RequireAccount(w, r, log)
	if !ok {
		return
	}
	var req models.ScreenUsageLog
	if !request.DecodeJSON(w, r, log, h.validate, &req) {
		return
	}

	res, err := h.service.Record(r.Context(), account.ID, req)
	if err != nil {
		log.Error("failed to record screen usage", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not record screen usage"))
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(res))
}

// Stats godoc
// @Summary Статистика отвлечений
// @Description Сумма по последним записям и доля времени фокуса.
// @Tags ScreenUsage
// @Produce json
// @Security BearerAuth
// @Param session_id query string false "Только записи этой сессии"
// @Success 200 {object} response.Response{data=models.ScreenUsageStats}
// @Failure 400 {object} response.ErrorResponse
// @Router /screen-usage/stats [get]
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	log := h.log.With(
		slog.String("op", "handlers.screenusage.Stats"),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
	account, ok := middlewarectx.RequireAccount(w, r, log)
	if !ok {
		return
	}

	var sessionID *string
	if raw := r.URL.Query().Get("session_id"); raw != "" {
		if _, err := uuid.Parse(raw); err != nil {
			log.Info("invalid session_id", slog.String("session_id", raw))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("session_id must be a uuid"))
			return
		}
		sessionID = &raw
	}

	res, err := h.service.Stats(r.Context(), account.ID, sessionID)
	if err != nil {
		log.Error("failed to load screen usage stats", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not load stats"))
		return
	}
	render.JSON(w, r, response.StatusOKWithData(res))
}
