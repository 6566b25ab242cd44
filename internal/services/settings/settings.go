// Package settings хранит пользовательские настройки таймера и дневную цель.
package settings

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/focuszen/internal/models"
	"github.com/magabrotheeeer/focuszen/internal/storage"
)

// Repository методы хранилища настроек.
type Repository interface {
	GetSettings(ctx context.Context, accountID string) (*models.UserSettings, error)
	UpsertSettings(ctx context.Context, in models.UserSettings) (*models.UserSettings, error)
}

// Service сервис настроек.
type Service struct {
	repo        Repository
	defaultGoal int
	log         *slog.Logger
}

// New создает Service. defaultGoal используется, пока пользователь не задал свою цель.
func New(repo Repository, defaultGoal int, log *slog.Logger) *Service {
	return &Service{repo: repo, defaultGoal: defaultGoal, log: log}
}

// Get возвращает настройки аккаунта. Если их еще нет, сохраняет и возвращает значения по умолчанию.
func (s *Service) Get(ctx context.Context, accountID string) (*models.UserSettings, error) {
	const op = "settings.Get"
	us, err := s.repo.GetSettings(ctx, accountID)
	if err == nil {
		return us, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Debug("creating default settings", slog.String("op", op), slog.String("account_id", accountID))
	us, err = s.repo.UpsertSettings(ctx, models.DefaultSettings(accountID, s.defaultGoal))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return us, nil
}

// Save сохраняет настройки аккаунта целиком.
func (s *Service) Save(ctx context.Context, accountID string, in models.UserSettings) (*models.UserSettings, error) {
	const op = "settings.Save"
	in.AccountID = accountID
	if in.DailyGoal == 0 {
		in.DailyGoal = s.defaultGoal
	}
	if in.Theme == "" {
		in.Theme = "light"
	}
	if in.ReminderTime == "" {
		in.ReminderTime = "09:00"
	}
	us, err := s.repo.UpsertSettings(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return us, nil
}

// DailyGoal возвращает дневную цель аккаунта в сессиях.
func (s *Service) DailyGoal(ctx context.Context, accountID string) (int, error) {
	us, err := s.repo.GetSettings(ctx, accountID)
	if errors.Is(err, storage.ErrNotFound) {
		return s.defaultGoal, nil
	}
	if err != nil {
		return 0, fmt.Errorf("settings.DailyGoal: %w", err)
	}
	if us.DailyGoal <= 0 {
		return s.defaultGoal, nil
	}
	return us.DailyGoal, nil
}
