// Package session ведет сессии таймера и применяет побочные эффекты завершения фокуса:
// запись серии за день, начисление опыта, учет времени задачи и прогресс челленджей.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/focuszen/internal/access"
	"github.com/magabrotheeeer/focuszen/internal/lib/sl"
	"github.com/magabrotheeeer/focuszen/internal/models"
	"github.com/magabrotheeeer/focuszen/internal/storage"
	"github.com/magabrotheeeer/focuszen/internal/streak"
)

// DefaultLimit количество сессий, возвращаемых без явного limit.
const DefaultLimit = 10

// ErrInvalidPeriod неизвестный период аналитики.
var ErrInvalidPeriod = errors.New("period must be one of 7d, 30d, 90d")

// ErrInvalidRange конец интервала раньше начала.
var ErrInvalidRange = errors.New("end_date is before start_date")

// ErrAlreadyCompleted завершенную сессию нельзя вернуть в незавершенное состояние
// или завершить повторно.
var ErrAlreadyCompleted = errors.New("session is already completed")

var periods = map[string]int{"7d": 7, "30d": 30, "90d": 90}

// Repository методы хранилища сессий и задач.
type Repository interface {
	CreateSession(ctx context.Context, accountID string, in models.DummySession) (*models.TimerSession, error)
	GetSession(ctx context.Context, accountID, id string) (*models.TimerSession, error)
	UpdateSession(ctx context.Context, accountID, id string, upd models.SessionUpdate) (*models.TimerSession, error)
	CompleteSession(ctx context.Context, accountID, id string, upd models.SessionUpdate) (*models.TimerSession, error)
	ListSessions(ctx context.Context, accountID string, limit int) ([]*models.TimerSession, error)
	ListSessionsInRange(ctx context.Context, accountID string, start, end time.Time) ([]*models.TimerSession, error)
	AnalyticsSummary(ctx context.Context, accountID string, since time.Time) (*models.AnalyticsSummary, error)
	GetTask(ctx context.Context, accountID, id string) (*models.Task, error)
	AddTaskFocus(ctx context.Context, accountID, id string, seconds int) error
}

// Progress методы хранилища, которые двигает завершенная сессия фокуса.
type Progress interface {
	IncrementStreak(ctx context.Context, accountID, date string, focusMinutes, dailyGoal int) (*models.DailyStreak, error)
	AddXP(ctx context.Context, accountID string, xp int) (*models.GameData, error)
	BumpChallenges(ctx context.Context, accountID string, now time.Time) (int, error)
}

// GoalProvider возвращает дневную цель аккаунта.
type GoalProvider interface {
	DailyGoal(ctx context.Context, accountID string) (int, error)
}

// AccountProvider возвращает аккаунт для проверки премиум-доступа.
type AccountProvider interface {
	GetAccount(ctx context.Context, accountID string) (*models.Account, error)
}

// Service сервис сессий таймера.
type Service struct {
	repo     Repository
	progress Progress
	goals    GoalProvider
	accounts AccountProvider
	loc      *time.Location
	log      *slog.Logger
	now      func() time.Time
}

// New создает Service. День серии определяется в часовом поясе loc.
func New(repo Repository, progress Progress, goals GoalProvider, accounts AccountProvider, loc *time.Location, log *slog.Logger) *Service {
	return &Service{repo: repo, progress: progress, goals: goals, accounts: accounts, loc: loc, log: log, now: time.Now}
}

// Create сохраняет новую сессию. Привязанная задача должна принадлежать аккаунту.
func (s *Service) Create(ctx context.Context, accountID string, in models.DummySession) (*models.TimerSession, error) {
	const op = "session.Create"
	if in.TaskID != nil {
		if _, err := s.repo.GetTask(ctx, accountID, *in.TaskID); err != nil {
			return nil, fmt.Errorf("%s: task %s: %w", op, *in.TaskID, err)
		}
	}
	ts, err := s.repo.CreateSession(ctx, accountID, in)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("created timer session",
		slog.String("account_id", accountID),
		slog.String("session_id", ts.ID),
		slog.String("type", ts.Type),
	)
	return ts, nil
}

// Update применяет частичное обновление. При первом переходе в завершенное состояние
// сессия фокуса засчитывается в серию, а при премиум-доступе еще в опыт, задачу и челленджи.
// Завершение атомарно: из двух одновременных запросов засчитывается один.
func (s *Service) Update(ctx context.Context, accountID, id string, upd models.SessionUpdate) (*models.TimerSession, error) {
	const op = "session.Update"
	prev, err := s.repo.GetSession(ctx, accountID, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if upd.IsCompleted == nil || !*upd.IsCompleted || prev.IsCompleted {
		if prev.IsCompleted && upd.IsCompleted != nil && !*upd.IsCompleted {
			return nil, fmt.Errorf("%s: %w", op, ErrAlreadyCompleted)
		}
		upd.IsCompleted = nil
		upd.XPEarned = nil
		ts, err := s.repo.UpdateSession(ctx, accountID, id, upd)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return ts, nil
	}

	now := s.now()
	if upd.CompletedAt == nil {
		upd.CompletedAt = &now
	}
	done := prev.Duration
	if upd.CompletedDuration != nil {
		done = *upd.CompletedDuration
	} else {
		upd.CompletedDuration = &done
	}

	var minutes int
	premium := false
	if prev.Type == models.SessionFocus {
		minutes = done / 60
		premium = s.hasPremium(ctx, accountID, now)
		xp := 0
		if premium {
			xp = minutes
		}
		upd.XPEarned = &xp
	}

	ts, err := s.repo.CompleteSession(ctx, accountID, id, upd)
	if errors.Is(err, storage.ErrNotFound) {
		// сессию успел завершить параллельный запрос
		if _, gerr := s.repo.GetSession(ctx, accountID, id); gerr == nil {
			return nil, fmt.Errorf("%s: %w", op, ErrAlreadyCompleted)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if ts.Type == models.SessionFocus {
		s.completeFocus(ctx, ts, minutes, premium, now)
	}
	return ts, nil
}

// hasPremium при ошибке чтения аккаунта премиум-эффекты не применяются.
func (s *Service) hasPremium(ctx context.Context, accountID string, now time.Time) bool {
	account, err := s.accounts.GetAccount(ctx, accountID)
	if err != nil {
		s.log.Error("failed to load account for access check",
			slog.String("account_id", accountID), sl.Err(err))
		return false
	}
	return access.Check(*account, now) == nil
}

// completeFocus ошибки побочных эффектов логируются, сама сессия уже сохранена.
// Опыт, задачи и челленджи доступны только с премиум-доступом, серия ведется всегда.
func (s *Service) completeFocus(ctx context.Context, ts *models.TimerSession, minutes int, premium bool, now time.Time) {
	log := s.log.With(
		slog.String("op", "session.completeFocus"),
		slog.String("account_id", ts.AccountID),
		slog.String("session_id", ts.ID),
	)

	goal, err := s.goals.DailyGoal(ctx, ts.AccountID)
	if err != nil {
		log.Error("failed to load daily goal", sl.Err(err))
	} else {
		day := streak.DateKey(now, s.loc)
		ds, err := s.progress.IncrementStreak(ctx, ts.AccountID, day, minutes, goal)
		if err != nil {
			log.Error("failed to record streak", slog.String("date", day), sl.Err(err))
		} else {
			log.Info("streak updated", slog.String("date", ds.Date), slog.Bool("goal_met", ds.GoalMet))
		}
	}

	if !premium {
		log.Info("premium side effects skipped", sl.Err(access.ErrPremiumRequired))
		return
	}

	reward, err := s.progress.BumpChallenges(ctx, ts.AccountID, now)
	if err != nil {
		log.Error("failed to bump challenges", sl.Err(err))
	}
	if xp := minutes + reward; xp > 0 {
		if _, err := s.progress.AddXP(ctx, ts.AccountID, xp); err != nil {
			log.Error("failed to award xp", slog.Int("xp", xp), sl.Err(err))
		}
	}

	if ts.TaskID != nil {
		if err := s.repo.AddTaskFocus(ctx, ts.AccountID, *ts.TaskID, ts.CompletedDuration); err != nil {
			log.Error("failed to add task focus time", slog.String("task_id", *ts.TaskID), sl.Err(err))
		}
	}
}

// List возвращает последние сессии аккаунта, по умолчанию DefaultLimit.
func (s *Service) List(ctx context.Context, accountID string, limit int) ([]*models.TimerSession, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	res, err := s.repo.ListSessions(ctx, accountID, limit)
	if err != nil {
		return nil, fmt.Errorf("session.List: %w", err)
	}
	return res, nil
}

// Range возвращает сессии, начатые между календарными днями start и end включительно.
func (s *Service) Range(ctx context.Context, accountID string, start, end time.Time) ([]*models.TimerSession, error) {
	const op = "session.Range"
	if end.Before(start) {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidRange)
	}
	res, err := s.repo.ListSessionsInRange(ctx, accountID, start, end.AddDate(0, 0, 1).Add(-time.Nanosecond))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// Summary суммирует завершенные сессии за период 7d, 30d или 90d.
func (s *Service) Summary(ctx context.Context, accountID, period string) (*models.AnalyticsSummary, error) {
	const op = "session.Summary"
	if period == "" {
		period = "7d"
	}
	days, ok := periods[period]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidPeriod)
	}
	res, err := s.repo.AnalyticsSummary(ctx, accountID, s.now().AddDate(0, 0, -days))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}
