// Package scheduler периодически ищет аккаунты, которым пора напомнить
// об окончании пробного периода или о дневной цели, и публикует уведомления в RabbitMQ.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/focuszen/internal/access"
	"github.com/magabrotheeeer/focuszen/internal/cache"
	"github.com/magabrotheeeer/focuszen/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/focuszen/internal/lib/sl"
	"github.com/magabrotheeeer/focuszen/internal/models"
	"github.com/magabrotheeeer/focuszen/internal/streak"
)

// noticeTTL время, в течение которого повторное уведомление того же вида не отправляется.
const noticeTTL = 24 * time.Hour

// Repository методы хранилища, по которым ищутся адресаты.
type Repository interface {
	ListTrialAccounts(ctx context.Context, since time.Time) ([]*models.Account, error)
	ListReminderCandidates(ctx context.Context, today string) ([]models.ReminderNotice, error)
	ListGoalMetStreaks(ctx context.Context, accountID string) ([]*models.DailyStreak, error)
}

// Publisher отправляет сообщение в обменник уведомлений.
type Publisher interface {
	Publish(routingKey string, message any) error
}

// Claimer отмечает уведомление отправленным.
type Claimer interface {
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)
}

// SchedulerService планировщик уведомлений.
type SchedulerService struct {
	repo      Repository
	publisher Publisher
	claimer   Claimer
	loc       *time.Location
	log       *slog.Logger
	now       func() time.Time
}

// NewSchedulerService создает новый экземпляр SchedulerService.
func NewSchedulerService(repo Repository, publisher Publisher, claimer Claimer, loc *time.Location, log *slog.Logger) *SchedulerService {
	return &SchedulerService{
		repo:      repo,
		publisher: publisher,
		claimer:   claimer,
		loc:       loc,
		log:       log,
		now:       time.Now,
	}
}

// Run выполняет проход сразу и затем каждые interval, пока не отменен ctx.
func (s *SchedulerService) Run(ctx context.Context, interval time.Duration) {
	s.RunOnce(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("scheduler stopped")
			return
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce один проход по обоим видам уведомлений.
func (s *SchedulerService) RunOnce(ctx context.Context) {
	now := s.now()
	s.notifyTrialEnding(ctx, now)
	s.notifyDailyGoal(ctx, now)
}

func (s *SchedulerService) notifyTrialEnding(ctx context.Context, now time.Time) {
	s.log.Info("looking for trials ending within a day")
	accounts, err := s.repo.ListTrialAccounts(ctx, now.Add(-access.TrialWindow))
	if err != nil {
		s.log.Error("failed to find trial accounts", sl.Err(err))
		return
	}

	today := streak.DateKey(now, s.loc)
	sent := 0
	for _, a := range accounts {
		st := access.Evaluate(*a, now)
		if st.IsPremium || st.TrialDaysRemaining != 1 || a.Email == nil {
			continue
		}
		notice := models.TrialNotice{
			AccountID:     a.ID,
			Email:         *a.Email,
			Name:          a.DisplayName(),
			DaysRemaining: st.TrialDaysRemaining,
		}
		if s.publish(ctx, rabbitmq.RoutingKeyTrial, a.ID, today, notice) {
			sent++
		}
	}
	s.log.Info("trial notices published", slog.Int("count", sent))
}

func (s *SchedulerService) notifyDailyGoal(ctx context.Context, now time.Time) {
	s.log.Info("looking for accounts behind their daily goal")
	today := streak.DateKey(now, s.loc)
	candidates, err := s.repo.ListReminderCandidates(ctx, today)
	if err != nil {
		s.log.Error("failed to find reminder candidates", sl.Err(err))
		return
	}

	yesterday := streak.DateKey(now.AddDate(0, 0, -1), s.loc)
	sent := 0
	for _, notice := range candidates {
		notice.CurrentStreak = s.streakAtRisk(ctx, notice.AccountID, yesterday)
		if s.publish(ctx, rabbitmq.RoutingKeyReminder, notice.AccountID, today, notice) {
			sent++
		}
	}
	s.log.Info("reminders published", slog.Int("count", sent))
}

// streakAtRisk серия, оканчивающаяся вчера, которую пользователь потеряет без сессий сегодня.
func (s *SchedulerService) streakAtRisk(ctx context.Context, accountID, yesterday string) int {
	records, err := s.repo.ListGoalMetStreaks(ctx, accountID)
	if err != nil {
		s.log.Warn("failed to load streaks", slog.String("account_id", accountID), sl.Err(err))
		return 0
	}
	values := make([]models.DailyStreak, 0, len(records))
	for _, r := range records {
		// сегодняшняя запись без выполненной цели в выборку не попадает
		if r.Date > yesterday {
			continue
		}
		values = append(values, *r)
	}
	return streak.Current(values, yesterday)
}

func (s *SchedulerService) publish(ctx context.Context, kind, accountID, day string, message any) bool {
	log := s.log.With(slog.String("kind", kind), slog.String("account_id", accountID))
	key := cache.NoticeKey(kind, accountID, day)
	fresh, err := s.claimer.Claim(ctx, key, noticeTTL)
	if err != nil {
		log.Warn("failed to claim notice, sending anyway", sl.Err(err))
	} else if !fresh {
		return false
	}

	if err := s.publisher.Publish(kind, message); err != nil {
		log.Error("failed to publish message", sl.Err(fmt.Errorf("scheduler.publish: %w", err)))
		return false
	}
	return true
}
