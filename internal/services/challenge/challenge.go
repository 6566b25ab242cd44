// Package challenge отдает челленджи сообщества и записывает участие в них.
package challenge

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/focuszen/internal/models"
)

// Repository методы хранилища челленджей.
type Repository interface {
	ListActiveChallenges(ctx context.Context, now time.Time) ([]*models.Challenge, error)
	JoinChallenge(ctx context.Context, accountID, challengeID string, now time.Time) (*models.ChallengeProgress, error)
	ListChallengeProgress(ctx context.Context, accountID string) ([]*models.ChallengeWithProgress, error)
}

// Service сервис челленджей.
type Service struct {
	repo Repository
	log  *slog.Logger
	now  func() time.Time
}

// New создает Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log, now: time.Now}
}

// List возвращает челленджи, идущие сейчас.
func (s *Service) List(ctx context.Context) ([]*models.Challenge, error) {
	res, err := s.repo.ListActiveChallenges(ctx, s.now())
	if err != nil {
		return nil, fmt.Errorf("challenge.List: %w", err)
	}
	return res, nil
}

// Progress возвращает челленджи, в которых участвует аккаунт, с прогрессом.
func (s *Service) Progress(ctx context.Context, accountID string) ([]*models.ChallengeWithProgress, error) {
	res, err := s.repo.ListChallengeProgress(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("challenge.Progress: %w", err)
	}
	return res, nil
}

// Join записывает аккаунт в челлендж. Повторное вступление возвращает текущий прогресс.
func (s *Service) Join(ctx context.Context, accountID, challengeID string) (*models.ChallengeProgress, error) {
	p, err := s.repo.JoinChallenge(ctx, accountID, challengeID, s.now())
	if err != nil {
		return nil, fmt.Errorf("challenge.Join: %w", err)
	}
	s.log.Info("joined challenge", slog.String("account_id", accountID), slog.String("challenge_id", challengeID))
	return p, nil
}
