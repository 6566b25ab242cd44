// Package quote реализует публичный обработчик случайной мотивирующей цитаты.
package quote

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/focuszen/internal/http/response"
	"github.com/magabrotheeeer/focuszen/internal/lib/sl"
	"github.com/magabrotheeeer/focuszen/internal/models"
	quotesvc "github.com/magabrotheeeer/focuszen/internal/services/quote"
)

// Service выбирает случайную активную цитату.
type Service interface {
	Random(ctx context.Context) (*models.MotivationalQuote, error)
}

// Handler обслуживает /quotes/random.
type Handler struct {
	log     *slog.Logger // Логгер для записи операций и ошибок
	service Service      // Источник цитат
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Случайная цитата
// @Tags Quotes
// @Produce json
// @Success 200 {object} response.Response{data=models.MotivationalQuote}
// @Failure 404 {object} response.ErrorResponse "Нет активных цитат"
// @Router /quotes/random [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.quote.Random"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	q, err := h.service.Random(r.Context())
	if errors.Is(err, quotesvc.ErrNoQuotes) {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error(quotesvc.ErrNoQuotes.Error()))
		return
	}
	if err != nil {
		log.Error("failed to pick quote", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not load quote"))
		return
	}
	render.JSON(w, r, response.StatusOKWithData(q))
}
