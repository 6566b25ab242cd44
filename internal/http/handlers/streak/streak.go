// Package streak реализует HTTP-обработчики ежедневной серии:
// историю дней, текущую и лучшую серию и запись итогов дня.
package streak

import (
	"context"
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
	"github.com/magabrotheeeer/focuszen/internal/models"
	streaksvc "github.com/magabrotheeeer/focuszen/internal/services/streak"
)

// Service описывает бизнес-логику серии.
type Service interface {
	List(ctx context.Context, accountID string, limit int) ([]*models.DailyStreak, error)
	Summary(ctx context.Context, accountID string) (*models.StreakSummary, error)
	Record(ctx context.Context, accountID string, in models.DummyStreak) (*models.DailyStreak, error)
}

// Handler обслуживает запросы к серии.
type Handler struct {
	log      *slog.Logger        // Логгер для записи операций и ошибок
	service  Service             // Бизнес-логика серий
	validate *validator.Validate // Валидатор входящих данных
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service, validate: validator.New()}
}

func (h *Handler) logger(r *http.Request, op string) *slog.Logger {
	return h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
}

// List godoc
// @Summary История дней
// @Tags Streaks
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Количество дней, по умолчанию 30"
// @Success 200 {object} response.Response{data=[]models.DailyStreak}
// @Failure 400 {object} response.ErrorResponse
// @Router /user/streaks [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.streak.List")
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
		log.Error("failed to list streaks", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list streaks"))
		return
	}
	render.JSON(w, r, response.StatusOKWithData(res))
}

// Current godoc
// @Summary Текущая и лучшая серия
// @Tags Streaks
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=models.StreakSummary}
// @Router /user/streak/current [get]
func (h *Handler) Current(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.streak.Current")
	account, ok := middlewarectx.RequireAccount(w, r, log)
	if !ok {
		return
	}

	res, err := h.service.Summary(r.Context(), account.ID)
	if err != nil {
		log.Error("failed to compute streak", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not compute streak"))
		return
	}
	render.JSON(w, r, response.StatusOKWithData(res))
}

// Record godoc
// @Summary Записать итоги дня
// @Description goal_met вычисляется по дневной цели из настроек.
// @Tags Streaks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.DummyStreak true "Итоги дня"
// @Success 200 {object} response.Response{data=models.DailyStreak}
// @Failure 400 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Router /user/streak [post]
func (h *Handler) Record(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.streak.Record")
	account, ok := middlewarectx.RequireAccount(w, r, log)
	if !ok {
		return
	}
	var req models.DummyStreak
	if !request.DecodeJSON(w, r, log, h.validate, &req) {
		return
	}

	res, err := h.service.Record(r.Context(), account.ID, req)
	if errors.Is(err, streaksvc.ErrPastDay) {
		log.Info("streak record for another day refused", slog.String("date", req.Date))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("only today's record can be changed"))
		return
	}
	if err != nil {
		log.Error("failed to record streak", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not record streak"))
		return
	}
	render.JSON(w, r, response.StatusOKWithData(res))
}
