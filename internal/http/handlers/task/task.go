// Package task реализует CRUD-обработчики задач, к которым привязываются сессии фокуса.
package task

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/focuszen/internal/http/middlewarectx"
	"github.com/magabrotheeeer/focuszen/internal/http/request"
	"github.com/magabrotheeeer/focuszen/internal/http/response"
	"github.com/magabrotheeeer/focuszen/internal/lib/sl"
	"github.com/magabrotheeeer/focuszen/internal/models"
	"github.com/magabrotheeeer/focuszen/internal/storage"
)

// Service описывает бизнес-логику задач.
type Service interface {
	Create(ctx context.Context, accountID string, in models.DummyTask) (*models.Task, error)
	Get(ctx context.Context, accountID, id string) (*models.Task, error)
	List(ctx context.Context, accountID string) ([]*models.Task, error)
	Update(ctx context.Context, accountID, id string, upd models.TaskUpdate) (*models.Task, error)
	Delete(ctx context.Context, accountID, id string) error
}

// Handler обслуживает /tasks.
type Handler struct {
	log      *slog.Logger        // Логгер для записи операций и ошибок
	service  Service             // Бизнес-логика задач
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

// Create godoc
// @Summary Создать задачу
// @Tags Tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.DummyTask true "Задача"
// @Success 201 {object} response.Response{data=models.Task}
// @Failure 403 {object} response.ErrorResponse "Нужна подписка"
// @Failure 422 {object} response.ErrorResponse
// @Router /tasks [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.task.Create")
	account, ok := middlewarectx.RequireAccount(w, r, log)
	if !ok {
		return
	}
	var req models.DummyTask
	if !request.DecodeJSON(w, r, log, h.validate, &req) {
		return
	}

	t, err := h.service.Create(r.Context(), account.ID, req)
	if err != nil {
		h.fail(w, r, log, err, "could not create task")
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(t))
}

// List godoc
// @Summary Задачи пользователя
// @Tags Tasks
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=[]models.Task}
// @Failure 403 {object} response.ErrorResponse
// @Router /tasks [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.task.List")
	account, ok := middlewarectx.RequireAccount(w, r, log)
	if !ok {
		return
	}

	res, err := h.service.List(r.Context(), account.ID)
	if err != nil {
		h.fail(w, r, log, err, "could not list tasks")
		return
	}
	render.JSON(w, r, response.StatusOKWithData(res))
}

// Get godoc
// @Summary Задача по ID
// @Tags Tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID задачи"
// @Success 200 {object} response.Response{data=models.Task}
// @Failure 404 {object} response.ErrorResponse
// @Router /tasks/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.task.Get")
	account, ok := middlewarectx.RequireAccount(w, r, log)
	if !ok {
		return
	}

	t, err := h.service.Get(r.Context(), account.ID, chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, log, err, "could not read task")
		return
	}
	render.JSON(w, r, response.StatusOKWithData(t))
}

// Update godoc
// @Summary Обновить задачу
// @Tags Tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID задачи"
// @Param request body models.TaskUpdate true "Изменяемые поля"
// @Success 200 {object} response.Response{data=models.Task}
// @Failure 404 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Router /tasks/{id} [patch]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.task.Update")
	account, ok := middlewarectx.RequireAccount(w, r, log)
	if !ok {
		return
	}
	var req models.TaskUpdate
	if !request.DecodeJSON(w, r, log, h.validate, &req) {
		return
	}

	t, err := h.service.Update(r.Context(), account.ID, chi.URLParam(r, "id"), req)
	if err != nil {
		h.fail(w, r, log, err, "could not update task")
		return
	}
	render.JSON(w, r, response.StatusOKWithData(t))
}

// Delete godoc
// @Summary Удалить задачу
// @Tags Tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID задачи"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Router /tasks/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.task.Delete")
	account, ok := middlewarectx.RequireAccount(w, r, log)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.service.Delete(r.Context(), account.ID, id); err != nil {
		h.fail(w, r, log, err, "could not delete task")
		return
	}
	log.Info("task deleted", slog.String("task_id", id))
	render.JSON(w, r, response.Response{Status: response.StatusOK})
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error, msg string) {
	if errors.Is(err, storage.ErrNotFound) {
		log.Info("task not found", sl.Err(err))
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("task not found"))
		return
	}
	log.Error(msg, sl.Err(err))
	render.Status(r, http.StatusInternalServerError)
	render.JSON(w, r, response.Error(msg))
}
