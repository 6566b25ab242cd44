// Package task управляет списком дел пользователя.
package task

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/focuszen/internal/models"
)

// Repository методы хранилища задач.
type Repository interface {
	CreateTask(ctx context.Context, accountID string, in models.DummyTask) (*models.Task, error)
	GetTask(ctx context.Context, accountID, id string) (*models.Task, error)
	ListTasks(ctx context.Context, accountID string) ([]*models.Task, error)
	UpdateTask(ctx context.Context, accountID, id string, upd models.TaskUpdate) (*models.Task, error)
	DeleteTask(ctx context.Context, accountID, id string) error
}

// Service сервис задач.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создает Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Create создает задачу.
func (s *Service) Create(ctx context.Context, accountID string, in models.DummyTask) (*models.Task, error) {
	if in.Tags == nil {
		in.Tags = []string{}
	}
	t, err := s.repo.CreateTask(ctx, accountID, in)
	if err != nil {
		return nil, fmt.Errorf("task.Create: %w", err)
	}
	s.log.Info("created task", slog.String("account_id", accountID), slog.String("task_id", t.ID))
	return t, nil
}

// Get возвращает задачу аккаунта.
func (s *Service) Get(ctx context.Context, accountID, id string) (*models.Task, error) {
	t, err := s.repo.GetTask(ctx, accountID, id)
	if err != nil {
		return nil, fmt.Errorf("task.Get: %w", err)
	}
	return t, nil
}

// List возвращает все задачи аккаунта.
func (s *Service) List(ctx context.Context, accountID string) ([]*models.Task, error) {
	res, err := s.repo.ListTasks(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("task.List: %w", err)
	}
	return res, nil
}

// Update применяет частичное обновление задачи.
func (s *Service) Update(ctx context.Context, accountID, id string, upd models.TaskUpdate) (*models.Task, error) {
	t, err := s.repo.UpdateTask(ctx, accountID, id, upd)
	if err != nil {
		return nil, fmt.Errorf("task.Update: %w", err)
	}
	return t, nil
}

// Delete удаляет задачу.
func (s *Service) Delete(ctx context.Context, accountID, id string) error {
	if err := s.repo.DeleteTask(ctx, accountID, id); err != nil {
		return fmt.Errorf("task.Delete: %w", err)
	}
	s.log.Info("deleted task", slog.String("account_id", accountID), slog.String("task_id", id))
	return nil
}
