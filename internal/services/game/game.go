// Package game отдает игровой профиль и начисляет опыт.
package game

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/focuszen/internal/models"
)

// Repository методы хранилища игровых данных.
type Repository interface {
	GetOrCreateGameData(ctx context.Context, accountID string) (*models.GameData, error)
	AddXP(ctx context.Context, accountID string, xp int) (*models.GameData, error)
	ListAchievements(ctx context.Context) ([]*models.Achievement, error)
}

// Service сервис игровых данных.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создает Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Profile возвращает опыт, уровень и каталог достижений.
func (s *Service) Profile(ctx context.Context, accountID string) (*models.GameProfile, error) {
	const op = "game.Profile"
	gd, err := s.repo.GetOrCreateGameData(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	achievements, err := s.repo.ListAchievements(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &models.GameProfile{GameData: gd, Achievements: achievements}, nil
}

// AwardXP начисляет опыт и возвращает пересчитанные игровые данные.
func (s *Service) AwardXP(ctx context.Context, accountID string, xp int) (*models.GameData, error) {
	const op = "game.AwardXP"
	gd, err := s.repo.AddXP(ctx, accountID, xp)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("xp awarded",
		slog.String("account_id", accountID),
		slog.Int("xp", xp),
		slog.Int("level", gd.CurrentLevel),
	)
	return gd, nil
}
