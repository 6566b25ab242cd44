// Package billing реализует HTTP-обработчики подписки Stripe:
// оформление подписки и прием вебхуков, переключающих премиум-доступ.
package billing

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/focuszen/internal/http/middlewarectx"
	"github.com/magabrotheeeer/focuszen/internal/http/response"
	"github.com/magabrotheeeer/focuszen/internal/lib/sl"
	"github.com/magabrotheeeer/focuszen/internal/models"
	billingsvc "github.com/magabrotheeeer/focuszen/internal/services/billing"
)

const maxWebhookBody = 65536

// Service описывает бизнес-логику подписки.
type Service interface {
	CreateSubscription(ctx context.Context, accountID string) (*models.SubscriptionIntent, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
}

// Handler обслуживает /billing.
type Handler struct {
	log     *slog.Logger // Логгер для записи операций и ошибок
	service Service      // Бизнес-логика подписки
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// Subscribe godoc
// @Summary Оформить подписку
// @Description Создает клиента и подписку Stripe, возвращает client secret для подтверждения оплаты.
// @Tags Billing
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=models.SubscriptionIntent}
// @Failure 400 {object} response.ErrorResponse "У аккаунта нет email"
// @Failure 503 {object} response.ErrorResponse "Оплата не настроена"
// @Router /billing/subscription [post]
func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	log := h.log.With(
		slog.String("op", "handlers.billing.Subscribe"),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
	account, ok := middlewarectx.RequireAccount(w, r, log)
	if !ok {
		return
	}

	intent, err := h.service.CreateSubscription(r.Context(), account.ID)
	switch {
	case err == nil:
		log.Info("subscription created",
			slog.String("account_id", account.ID),
			slog.String("subscription_id", intent.SubscriptionID),
			slog.String("status", intent.Status),
		)
		render.JSON(w, r, response.StatusOKWithData(intent))
	case errors.Is(err, billingsvc.ErrNotConfigured):
		log.Warn("billing not configured")
		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, response.Error(billingsvc.ErrNotConfigured.Error()))
	case errors.Is(err, billingsvc.ErrNoEmail):
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(billingsvc.ErrNoEmail.Error()))
	default:
		log.Error("failed to create subscription", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create subscription"))
	}
}

// Webhook godoc
// @Summary Вебхук Stripe
// @Description Проверяет подпись Stripe-Signature и обновляет премиум-статус аккаунта.
// @Tags Billing
// @Accept json
// @Produce json
// @Param Stripe-Signature header string true "Подпись Stripe"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Неверная подпись"
// @Failure 500 {object} response.ErrorResponse
// @Router /billing/webhook [post]
func (h *Handler) Webhook(w http.ResponseWriter, r *http.Request) {
	log := h.log.With(
		slog.String("op", "handlers.billing.Webhook"),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBody))
	if err != nil {
		log.Error("failed to read webhook body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	err = h.service.HandleWebhook(r.Context(), payload, r.Header.Get("Stripe-Signature"))
	switch {
	case err == nil:
		render.JSON(w, r, response.Response{Status: response.StatusOK})
	case errors.Is(err, billingsvc.ErrInvalidSignature):
		log.Warn("rejected webhook", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(billingsvc.ErrInvalidSignature.Error()))
	default:
		log.Error("failed to process webhook", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not process webhook"))
	}
}
