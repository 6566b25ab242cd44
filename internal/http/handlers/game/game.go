// Package game реализует обработчики игрового профиля: опыт, уровень и достижения.
package game

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

// Service описывает игровую логику.
type Service interface {
	Profile(ctx context.Context, accountID string) (*models.GameProfile, error)
	AwardXP(ctx context.Context, accountID string, xp int) (*models.GameData, error)
}

// Handler обслуживает /game.
type Handler struct {
	log      *slog.Logger        // Логгер для записи операций и ошибок
	service  Service             // Бизнес-логика мини-игр
	validate *validator.Validate // Валидатор входящих данных
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service, validate: validator.New()}
}

// Profile godoc
// @Summary Игровой профиль
// @Tags Game
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=models.GameProfile}
// @Failure 403 {object} response.ErrorResponse
// @Router /game/profile [get]
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	log := h.log.With(
		slog.String("op", "handlers.game.Profile"),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
	account, ok := middlewarectx.RequireAccount(w, r, log)
	if !ok {
		return
	}

	res, err := h.service.Profile(r.Context(), account.ID)
	if err != nil {
		log.Error("failed to load game profile", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not load game profile"))
		return
	}
	render.JSON(w, r, response.StatusOKWithData(res))
}

// AwardXP godoc
// @Summary Начислить опыт
// @Tags Game
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.DummyXP true "Количество опыта"
// @Success 200 {object} response.Response{data=models.GameData}
// @Failure 422 {object} response.ErrorResponse
// @Router /game/xp [post]
func (h *Handler) AwardXP(w http.ResponseWriter, r *http.Request) {
	log := h.log.With(
		slog.String("op", "handlers.game.AwardXP"),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
	account, ok := middlewarectx.RequireAccount(w, r, log)
	if !ok {
		return
	}
	var req models.DummyXP
	if !request.DecodeJSON(w, r, log, h.validate, &req) {
		return
	}

	res, err := h.service.AwardXP(r.Context(), account.ID, req.XP)
	if err != nil {
		log.Error("failed to award xp", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not award xp"))
		return
	}
	render.JSON(w, r, response.StatusOKWithData(res))
}
