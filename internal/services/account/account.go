// Package account связывает пользователя провайдера идентификации с аккаунтом focuszen
// и отвечает на вопрос о доступе к премиум-функциям.
package account

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/focuszen/internal/access"
	"github.com/magabrotheeeer/focuszen/internal/cache"
	"github.com/magabrotheeeer/focuszen/internal/lib/sl"
	"github.com/magabrotheeeer/focuszen/internal/models"
)

// cacheTTL время жизни карточки аккаунта в кеше.
const cacheTTL = 5 * time.Minute

// Repository методы хранилища аккаунтов.
type Repository interface {
	UpsertAccount(ctx context.Context, id models.Identity) (*models.Account, error)
	GetAccount(ctx context.Context, accountID string) (*models.Account, error)
}

// Cache описывает методы для кеширования данных.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// Service сервис аккаунтов.
type Service struct {
	repo  Repository
	cache Cache
	log   *slog.Logger
	now   func() time.Time
}

// New создает Service.
func New(repo Repository, cache Cache, log *slog.Logger) *Service {
	return &Service{repo: repo, cache: cache, log: log, now: time.Now}
}

// Resolve возвращает аккаунт пользователя токена, создавая его при первом входе.
func (s *Service) Resolve(ctx context.Context, id models.Identity) (*models.Account, error) {
	const op = "account.Resolve"
	key := cache.AccountKey(id.Subject)

	var cached models.Account
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.log.Warn("failed to read account from cache", slog.String("op", op), sl.Err(err))
	}
	if found {
		return &cached, nil
	}

	a, err := s.repo.UpsertAccount(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.cache.Set(ctx, key, a, cacheTTL); err != nil {
		s.log.Warn("failed to cache account", slog.String("op", op), slog.String("key", key), sl.Err(err))
	}
	return a, nil
}

// Get возвращает аккаунт из хранилища, минуя кеш.
func (s *Service) Get(ctx context.Context, accountID string) (*models.Account, error) {
	return s.repo.GetAccount(ctx, accountID)
}

// Forget удаляет карточку аккаунта из кеша после изменения премиум-статуса.
func (s *Service) Forget(ctx context.Context, accountID string) {
	if err := s.cache.Invalidate(ctx, cache.AccountKey(accountID)); err != nil {
		s.log.Warn("failed to invalidate account cache", slog.String("account_id", accountID), sl.Err(err))
	}
}

// PremiumStatus оценивает доступ аккаунта к премиум-функциям на текущий момент.
func (s *Service) PremiumStatus(a *models.Account) access.Status {
	return access.Evaluate(*a, s.now())
}
