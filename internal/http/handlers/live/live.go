// Package live реализует HTTP-обработчики серверного таймера обратного отсчета.
// Отсчет идет в timer.Manager, клиент только управляет им и опрашивает состояние.
package live

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/focuszen/internal/http/middlewarectx"
	"github.com/magabrotheeeer/focuszen/internal/http/request"
	"github.com/magabrotheeeer/focuszen/internal/http/response"
	"github.com/magabrotheeeer/focuszen/internal/lib/sl"
	"github.com/magabrotheeeer/focuszen/internal/timer"
)

// Timers управляет живыми таймерами аккаунтов.
type Timers interface {
	Start(accountID, sessionType string, duration int) (timer.Snapshot, error)
	Pause(accountID string) (timer.Snapshot, error)
	Resume(accountID string) (timer.Snapshot, error)
	Reset(accountID string) (timer.Snapshot, error)
	Switch(accountID, sessionType string, duration int) (timer.Snapshot, error)
	Get(accountID string) (timer.Snapshot, error)
}

// StartRequest параметры запуска отсчета.
type StartRequest struct {
	Type     string `json:"type" validate:"required,oneof=focus break long_break"`
	Duration int    `json:"duration" validate:"required,gt=0,lte=14400"`
}

// Handler обслуживает запросы к живому таймеру.
type Handler struct {
	log      *slog.Logger        // Логгер для записи операций и ошибок
	timers   Timers              // Таймеры активных сессий
	validate *validator.Validate // Валидатор входящих данных
}

// New создает Handler.
func New(log *slog.Logger, timers Timers) *Handler {
	return &Handler{log: log, timers: timers, validate: validator.New()}
}

// Start godoc
// @Summary Запустить отсчет
// @Tags Timer
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body StartRequest true "Тип сессии и длительность в секундах"
// @Success 200 {object} response.Response{data=timer.Snapshot}
// @Failure 409 {object} response.ErrorResponse "Отсчет уже идет"
// @Failure 422 {object} response.ErrorResponse
// @Router /timer/live/start [post]
func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.live.Start")
	account, ok := middlewarectx.RequireAccount(w, r, log)
	if !ok {
		return
	}
	var req StartRequest
	if !request.DecodeJSON(w, r, log, h.validate, &req) {
		return
	}
	s, err := h.timers.Start(account.ID, req.Type, req.Duration)
	h.reply(w, r, log, s, err)
}

// Pause godoc
// @Summary Поставить отсчет на паузу
// @Tags Timer
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=timer.Snapshot}
// @Failure 404 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /timer/live/pause [post]
func (h *Handler) Pause(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.live.Pause")
	account, ok := middlewarectx.RequireAccount(w, r, log)
	if !ok {
		return
	}
	s, err := h.timers.Pause(account.ID)
	h.reply(w, r, log, s, err)
}

// Resume godoc
// @Summary Продолжить отсчет
// @Tags Timer
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=timer.Snapshot}
// @Failure 404 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /timer/live/resume [post]
func (h *Handler) Resume(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.live.Resume")
	account, ok := middlewarectx.RequireAccount(w, r, log)
	if !ok {
		return
	}
	s, err := h.timers.Resume(account.ID)
	h.reply(w, r, log, s, err)
}

// Reset godoc
// @Summary Сбросить отсчет
// @Tags Timer
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=timer.Snapshot}
// @Failure 404 {object} response.ErrorResponse
// @Router /timer/live/reset [post]
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.live.Reset")
	account, ok := middlewarectx.RequireAccount(w, r, log)
	if !ok {
		return
	}
	s, err := h.timers.Reset(account.ID)
	h.reply(w, r, log, s, err)
}

// Switch godoc
// @Summary Сменить тип сессии
// @Description Останавливает текущий отсчет и готовит таймер нового типа в состоянии idle.
// @Tags Timer
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body StartRequest true "Тип сессии и длительность в секундах"
// @Success 200 {object} response.Response{data=timer.Snapshot}
// @Failure 422 {object} response.ErrorResponse
// @Router /timer/live/switch [post]
func (h *Handler) Switch(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.live.Switch")
	account, ok := middlewarectx.RequireAccount(w, r, log)
	if !ok {
		return
	}
	var req StartRequest
	if !request.DecodeJSON(w, r, log, h.validate, &req) {
		return
	}
	s, err := h.timers.Switch(account.ID, req.Type, req.Duration)
	h.reply(w, r, log, s, err)
}

// Get godoc
// @Summary Состояние отсчета
// @Tags Timer
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=timer.Snapshot}
// @Failure 404 {object} response.ErrorResponse
// @Router /timer/live [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.live.Get")
	account, ok := middlewarectx.RequireAccount(w, r, log)
	if !ok {
		return
	}
	s, err := h.timers.Get(account.ID)
	h.reply(w, r, log, s, err)
}

func (h *Handler) logger(r *http.Request, op string) *slog.Logger {
	return h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
}

func (h *Handler) reply(w http.ResponseWriter, r *http.Request, log *slog.Logger, s timer.Snapshot, err error) {
	switch {
	case err == nil:
		render.JSON(w, r, response.StatusOKWithData(s))
	case errors.Is(err, timer.ErrNoTimer):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error(err.Error()))
	case errors.Is(err, timer.ErrTimerActive), errors.Is(err, timer.ErrInvalidTransition):
		log.Info("timer state conflict", sl.Err(err))
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, response.Error(err.Error()))
	default:
		log.Error("timer operation failed", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(err.Error()))
	}
}
