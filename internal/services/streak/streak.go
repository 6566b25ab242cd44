// Package streak ведет ежедневные записи серий и считает текущую и максимальную серии.
package streak

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/focuszen/internal/models"
	"github.com/magabrotheeeer/focuszen/internal/streak"
)

// ErrPastDay запись за прошедший или будущий день менять нельзя.
var ErrPastDay = errors.New("only today's streak record can be changed")

// DefaultLimit количество записей, возвращаемых без явного limit.
const DefaultLimit = 30

// Repository методы хранилища серий.
type Repository interface {
	ListStreaks(ctx context.Context, accountID string, limit int) ([]*models.DailyStreak, error)
	ListGoalMetStreaks(ctx context.Context, accountID string) ([]*models.DailyStreak, error)
	UpsertStreak(ctx context.Context, in models.DailyStreak) (*models.DailyStreak, error)
}

// GoalProvider возвращает дневную цель аккаунта.
type GoalProvider interface {
	DailyGoal(ctx context.Context, accountID string) (int, error)
}

// Service сервис серий.
type Service struct {
	repo  Repository
	goals GoalProvider
	loc   *time.Location
	log   *slog.Logger
	now   func() time.Time
}

// New создает Service. Календарные дни считаются в часовом поясе loc.
func New(repo Repository, goals GoalProvider, loc *time.Location, log *slog.Logger) *Service {
	return &Service{repo: repo, goals: goals, loc: loc, log: log, now: time.Now}
}

// List возвращает последние записи серий, по умолчанию DefaultLimit.
func (s *Service) List(ctx context.Context, accountID string, limit int) ([]*models.DailyStreak, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	res, err := s.repo.ListStreaks(ctx, accountID, limit)
	if err != nil {
		return nil, fmt.Errorf("streak.List: %w", err)
	}
	return res, nil
}

// Summary возвращает текущую серию, оканчивающуюся сегодня, и самую длинную серию.
func (s *Service) Summary(ctx context.Context, accountID string) (*models.StreakSummary, error) {
	const op = "streak.Summary"
	records, err := s.repo.ListGoalMetStreaks(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	values := make([]models.DailyStreak, 0, len(records))
	for _, r := range records {
		values = append(values, *r)
	}
	today := streak.DateKey(s.now(), s.loc)
	return &models.StreakSummary{
		CurrentStreak: streak.Current(values, today),
		LongestStreak: streak.Longest(values),
	}, nil
}

// Record сохраняет запись за сегодняшний день. Признак выполнения цели вычисляется из дневной цели аккаунта.
// Записи за другие дни зафиксированы, для них возвращается ErrPastDay.
func (s *Service) Record(ctx context.Context, accountID string, in models.DummyStreak) (*models.DailyStreak, error) {
	const op = "streak.Record"
	if today := streak.DateKey(s.now(), s.loc); in.Date != today {
		return nil, fmt.Errorf("%s: date %s, today %s: %w", op, in.Date, today, ErrPastDay)
	}
	goal, err := s.goals.DailyGoal(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ds, err := s.repo.UpsertStreak(ctx, models.DailyStreak{
		AccountID:         accountID,
		Date:              in.Date,
		SessionsCompleted: in.SessionsCompleted,
		FocusTimeMinutes:  in.FocusTimeMinutes,
		GoalMet:           streak.GoalMet(in.SessionsCompleted, goal),
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("streak recorded",
		slog.String("account_id", accountID),
		slog.String("date", ds.Date),
		slog.Bool("goal_met", ds.GoalMet),
	)
	return ds, nil
}
