// Package account реализует HTTP-обработчики текущего аккаунта:
// профиль пользователя и статус доступа к премиум-функциям.
package account

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/focuszen/internal/access"
	"github.com/magabrotheeeer/focuszen/internal/http/middlewarectx"
	"github.com/magabrotheeeer/focuszen/internal/http/response"
	"github.com/magabrotheeeer/focuszen/internal/models"
)

// Service считает статус доступа аккаунта.
type Service interface {
	PremiumStatus(a *models.Account) access.Status
}

// Handler обслуживает запросы об аккаунте.
type Handler struct {
	log     *slog.Logger // Логгер для записи операций и ошибок
	service Service      // Бизнес-логика аккаунта
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// User godoc
// @Summary Текущий пользователь
// @Description Возвращает аккаунт, созданный при первом входе по токену провайдера.
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=models.Account}
// @Failure 401 {object} response.ErrorResponse
// @Router /auth/user [get]
func (h *Handler) User(w http.ResponseWriter, r *http.Request) {
	log := h.log.With(
		slog.String("op", "handlers.account.User"),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
	account, ok := middlewarectx.RequireAccount(w, r, log)
	if !ok {
		return
	}
	render.JSON(w, r, response.StatusOKWithData(account))
}

// PremiumStatus godoc
// @Summary Статус премиум-доступа
// @Description Подписка, оставшиеся дни пробного периода и возраст аккаунта.
// @Tags Billing
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=access.Status}
// @Failure 401 {object} response.ErrorResponse
// @Router /premium/status [get]
func (h *Handler) PremiumStatus(w http.ResponseWriter, r *http.Request) {
	log := h.log.With(
		slog.String("op", "handlers.account.PremiumStatus"),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
	account, ok := middlewarectx.RequireAccount(w, r, log)
	if !ok {
		return
	}
	render.JSON(w, r, response.StatusOKWithData(h.service.PremiumStatus(account)))
}
