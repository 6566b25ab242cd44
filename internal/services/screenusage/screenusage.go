// Package screenusage учитывает отвлечения во время сессий и считает долю времени в фокусе.
package screenusage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/focuszen/internal/models"
)

// StatsWindow количество последних записей, по которым считается статистика.
const StatsWindow = 10

// Repository методы хранилища учета экрана.
type Repository interface {
	CreateScreenUsage(ctx context.Context, l models.ScreenUsageLog) (*models.ScreenUsageLog, error)
	ListScreenUsage(ctx context.Context, accountID string, sessionID *string, limit int) ([]*models.ScreenUsageLog, error)
}

// Service сервис учета экрана.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создает Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Record сохраняет запись учета для аккаунта.
func (s *Service) Record(ctx context.Context, accountID string, in models.ScreenUsageLog) (*models.ScreenUsageLog, error) {
	in.AccountID = accountID
	l, err := s.repo.CreateScreenUsage(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("screenusage.Record: %w", err)
	}
	return l, nil
}

// Stats агрегирует последние StatsWindow записей. Если sessionID задан,
// учитываются только записи этой сессии.
func (s *Service) Stats(ctx context.Context, accountID string, sessionID *string) (*models.ScreenUsageStats, error) {
	logs, err := s.repo.ListScreenUsage(ctx, accountID, sessionID, StatsWindow)
	if err != nil {
		return nil, fmt.Errorf("screenusage.Stats: %w", err)
	}
	return Aggregate(logs), nil
}

// Aggregate суммирует записи. FocusRatio равен 0, если время не учитывалось.
func Aggregate(logs []*models.ScreenUsageLog) *models.ScreenUsageStats {
	st := &models.ScreenUsageStats{Logs: logs}
	if st.Logs == nil {
		st.Logs = []*models.ScreenUsageLog{}
	}
	for _, l := range logs {
		st.TotalDistractions += l.DistractionCount
		st.TotalFocusTime += l.FocusTime
		st.TotalAwayTime += l.AwayTime
	}
	if total := st.TotalFocusTime + st.TotalAwayTime; total > 0 {
		st.FocusRatio = float64(st.TotalFocusTime) / float64(total)
	}
	return st
}
