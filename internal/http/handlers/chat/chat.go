// Package chat реализует обработчики ИИ-коуча: отправку сообщения и историю диалога.
package chat

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
	chatsvc "github.com/magabrotheeeer/focuszen/internal/services/chat"
)

// Service описывает диалог с коучем.
type Service interface {
	Send(ctx context.Context, accountID string, in models.DummyChat) (*models.ChatReply, error)
	History(ctx context.Context, accountID string) ([]*models.ChatMessage, error)
}

// Handler обслуживает /ai.
type Handler struct {
	log      *slog.Logger        // Логгер для записи операций и ошибок
	service  Service             // Ассистент чата
	validate *validator.Validate // Валидатор входящих данных
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service, validate: validator.New()}
}

// Send godoc
// @Summary Сообщение коучу
// @Description Если модель недоступна, возвращается заготовленный ответ для контекста.
// @Tags AI
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.DummyChat true "Сообщение"
// @Success 200 {object} response.Response{data=models.ChatReply}
// @Failure 400 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Failure 429 {object} response.ErrorResponse
// @Router /ai/chat [post]
func (h *Handler) Send(w http.ResponseWriter, r *http.Request) {
	log := h.log.With(
		slog.String("op", "handlers.chat.Send"),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
	account, ok := middlewarectx.RequireAccount(w, r, log)
	if !ok {
		return
	}
	var req models.DummyChat
	if !request.DecodeJSON(w, r, log, h.validate, &req) {
		return
	}

	reply, err := h.service.Send(r.Context(), account.ID, req)
	if errors.Is(err, chatsvc.ErrEmptyMessage) {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(chatsvc.ErrEmptyMessage.Error()))
		return
	}
	if err != nil {
		log.Error("failed to send chat message", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not process message"))
		return
	}
	render.JSON(w, r, response.StatusOKWithData(reply))
}

// History godoc
// @Summary История диалога
// @Tags AI
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=[]models.ChatMessage}
// @Router /ai/history [get]
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	log := h.log.With(
		slog.String("op", "handlers.chat.History"),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
	account, ok := middlewarectx.RequireAccount(w, r, log)
	if !ok {
		return
	}

	res, err := h.service.History(r.Context(), account.ID)
	if err != nil {
		log.Error("failed to load chat history", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not load history"))
		return
	}
	render.JSON(w, r, response.StatusOKWithData(res))
}
