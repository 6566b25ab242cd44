// Package session реализует HTTP-обработчики сессий таймера: создание,
// частичное обновление, списки и сводку аналитики за период.
//
// Завершение сессии фокуса через Update засчитывается в серию, опыт,
// время задачи и челленджи на стороне сервиса.
package session

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/focuszen/internal/http/middlewarectx"
	"github.com/magabrotheeeer/focuszen/internal/http/request"
	"github.com/magabrotheeeer/focuszen/internal/http/response"
	"github.com/magabrotheeeer/focuszen/internal/lib/sl"
	"github.com/magabrotheeeer/focuszen/internal/models"
	sessionsvc "github.com/magabrotheeeer/focuszen/internal/services/session"
	"github.com/magabrotheeeer/focuszen/internal/storage"
)

const dateLayout = "2006-01-02"

// Service описывает бизнес-логику сессий.
type Service interface {
	Create(ctx context.Context, accountID string, in models.DummySession) (*models.TimerSession, error)
	Update(ctx context.Context, accountID, id string, upd models.SessionUpdate) (*models.TimerSession, error)
	List(ctx context.Context, accountID string, limit int) ([]*models.TimerSession, error)
	Range(ctx context.Context, accountID string, start, end time.Time) ([]*models.TimerSession, error)
	Summary(ctx context.Context, accountID, period string) (*models.AnalyticsSummary, error)
}

// Handler обслуживает запросы к сессиям таймера.
type Handler struct {
	log      *slog.Logger        // Логгер для записи операций и ошибок
	service  Service             // Бизнес-логика сессий
	validate *validator.Validate // Валидатор входящих данных
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

func (h *Handler) logger(r *http.Request, op string) *slog.Logger {
	return h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
}

// Create godoc
// @Summary Создать сессию
// @Tags Timer
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.DummySession true "Тип и длительность сессии"
// @Success 201 {object} response.Response{data=models.TimerSession}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse "Задача не найдена"
// @Failure 422 {object} response.ErrorResponse
// @Router /timer/sessions [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.session.Create")
	account, ok := middlewarectx.RequireAccount(w, r, log)
	if !ok {
		return
	}
	var req models.DummySession
	if !request.DecodeJSON(w, r, log, h.validate, &req) {
		return
	}

	ts, err := h.service.Create(r.Context(), account.ID, req)
	if err != nil {
		h.fail(w, r, log, err, "could not create session")
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(ts))
}

// Update godoc
// @Summary Обновить сессию
// @Description Частичное обновление. При переходе в завершенное состояние начисляются опыт и серия.
// @Tags Timer
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID сессии"
// @Param request body models.SessionUpdate true "Изменяемые поля"
// @Success 200 {object} response.Response{data=models.TimerSession}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse "Сессия уже завершена"
// @Failure 422 {object} response.ErrorResponse
// @Router /timer/sessions/{id} [patch]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.session.Update")
	account, ok := middlewarectx.RequireAccount(w, r, log)
	if !ok {
		return
	}
	var req models.SessionUpdate
	if !request.DecodeJSON(w, r, log, h.validate, &req) {
		return
	}

	ts, err := h.service.Update(r.Context(), account.ID, chi.URLParam(r, "id"), req)
	if err != nil {
		h.fail(w, r, log, err, "could not update session")
		return
	}
	render.JSON(w, r, response.StatusOKWithData(ts))
}

// List godoc
// @Summary Последние сессии
// @Tags Timer
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Количество, по умолчанию 10"
// @Success 200 {object} response.Response{data=[]models.TimerSession}
// @Failure 400 {object} response.ErrorResponse
// @Router /timer/sessions [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.session.List")
	account, ok := middlewarectx.RequireAccount(w, r, log)
	if !ok {
		return
	}
	limit, ok := request.Limit(w, r, log)
	if !ok {
		return
	}

	res, err := h.service.List(r.Context(), account.ID, limit)
	if err != nil {
		h.fail(w, r, log, err, "could not list sessions")
		return
	}
	render.JSON(w, r, response.StatusOKWithData(res))
}

// Range godoc
// @Summary Сессии за интервал дат
// @Tags Timer
// @Produce json
// @Security BearerAuth
// @Param start_date query string true "Первый день, YYYY-MM-DD"
// @Param end_date query string true "Последний день включительно, YYYY-MM-DD"
// @Success 200 {object} response.Response{data=[]models.TimerSession}
// @Failure 400 {object} response.ErrorResponse
// @Router /timer/sessions/range [get]
func (h *Handler) Range(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.session.Range")
	account, ok := middlewarectx.RequireAccount(w, r, log)
	if !ok {
		return
	}

	q := r.URL.Query()
	rawStart, rawEnd := q.Get("start_date"), q.Get("end_date")
	if rawStart == "" || rawEnd == "" {
		log.Info("missing range parameters")
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("start_date and end_date are required"))
		return
	}
	start, err1 := parseDate(rawStart)
	end, err2 := parseDate(rawEnd)
	if err := errors.Join(err1, err2); err != nil {
		log.Info("invalid range parameters", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("dates must be YYYY-MM-DD"))
		return
	}

	res, err := h.service.Range(r.Context(), account.ID, start, end)
	if err != nil {
		h.fail(w, r, log, err, "could not list sessions")
		return
	}
	render.JSON(w, r, response.StatusOKWithData(res))
}

// Summary godoc
// @Summary Сводка по завершенным сессиям
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Param period query string false "7d, 30d или 90d"
// @Success 200 {object} response.Response{data=models.AnalyticsSummary}
// @Failure 400 {object} response.ErrorResponse
// @Router /analytics/summary [get]
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.session.Summary")
	account, ok := middlewarectx.RequireAccount(w, r, log)
	if !ok {
		return
	}

	res, err := h.service.Summary(r.Context(), account.ID, r.URL.Query().Get("period"))
	if err != nil {
		h.fail(w, r, log, err, "could not build summary")
		return
	}
	render.JSON(w, r, response.StatusOKWithData(res))
}

// parseDate принимает день или полную метку RFC 3339.
func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location()), nil
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error, msg string) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		log.Info("not found", sl.Err(err))
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("not found"))
	case errors.Is(err, sessionsvc.ErrInvalidPeriod):
		log.Info("invalid period", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(sessionsvc.ErrInvalidPeriod.Error()))
	case errors.Is(err, sessionsvc.ErrAlreadyCompleted):
		log.Info("session already completed", sl.Err(err))
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, response.Error(sessionsvc.ErrAlreadyCompleted.Error()))
	case errors.Is(err, sessionsvc.ErrInvalidRange):
		log.Info("invalid range", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(sessionsvc.ErrInvalidRange.Error()))
	default:
		log.Error(msg, sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error(msg))
	}
}
