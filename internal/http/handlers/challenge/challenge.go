// Package challenge реализует обработчики общих челленджей сообщества.
package challenge

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/magabrotheeeer/focuszen/internal/http/middlewarectx"
	"github.com/magabrotheeeer/focuszen/internal/http/response"
	"github.com/magabrotheeeer/focuszen/internal/lib/sl"
	"github.com/magabrotheeeer/focuszen/internal/models"
	"github.com/magabrotheeeer/focuszen/internal/storage"
)

// Service описывает бизнес-логику челленджей.
type Service interface {
	List(ctx context.Context) ([]*models.Challenge, error)
	Progress(ctx context.Context, accountID string) ([]*models.ChallengeWithProgress, error)
	Join(ctx context.Context, accountID, challengeID string) (*models.ChallengeProgress, error)
}

// Handler обслуживает /challenges.
type Handler struct {
	log     *slog.Logger // Логгер для записи операций и ошибок
	service Service      // Бизнес-логика челленджей
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

func (h *Handler) logger(r *http.Request, op string) *slog.Logger {
	return h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
}

// List godoc
// @Summary Активные челленджи
// @Tags Challenges
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=[]models.Challenge}
// @Router /challenges [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.challenge.List")

	res, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list challenges", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list challenges"))
		return
	}
	render.JSON(w, r, response.StatusOKWithData(res))
}

// Progress godoc
// @Summary Прогресс в челленджах
// @Tags Challenges
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=[]models.ChallengeWithProgress}
// @Router /challenges/progress [get]
func (h *Handler) Progress(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.challenge.Progress")
	account, ok := middlewarectx.RequireAccount(w, r, log)
	if !ok {
		return
	}

	res, err := h.service.Progress(r.Context(), account.ID)
	if err != nil {
		log.Error("failed to load challenge progress", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not load progress"))
		return
	}
	render.JSON(w, r, response.StatusOKWithData(res))
}

// Join godoc
// @Summary Вступить в челлендж
// @Description Повторное вступление возвращает текущий прогресс.
// @Tags Challenges
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID челленджа"
// @Success 200 {object} response.Response{data=models.ChallengeProgress}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse "Челлендж не найден или не активен"
// @Router /challenges/{id}/join [post]
func (h *Handler) Join(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.challenge.Join")
	account, ok := middlewarectx.RequireAccount(w, r, log)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		log.Info("invalid challenge id", slog.String("id", id))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid challenge id"))
		return
	}

	res, err := h.service.Join(r.Context(), account.ID, id)
	if errors.Is(err, storage.ErrNotFound) {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("challenge not found"))
		return
	}
	if err != nil {
		log.Error("failed to join challenge", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not join challenge"))
		return
	}
	render.JSON(w, r, response.StatusOKWithData(res))
}
