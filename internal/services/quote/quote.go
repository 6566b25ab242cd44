// Package quote выдает случайную мотивационную цитату.
package quote

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/magabrotheeeer/focuszen/internal/cache"
	"github.com/magabrotheeeer/focuszen/internal/lib/sl"
	"github.com/magabrotheeeer/focuszen/internal/models"
)

// ErrNoQuotes в каталоге нет активных цитат.
var ErrNoQuotes = errors.New("no active quotes")

const cacheTTL = time.Minute

// Repository методы хранилища цитат.
type Repository interface {
	ListActiveQuotes(ctx context.Context) ([]*models.MotivationalQuote, error)
}

// Cache описывает методы для кеширования данных.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

// Service сервис цитат.
type Service struct {
	repo  Repository
	cache Cache
	log   *slog.Logger
	pick  func(n int) int
}

// New создает Service.
func New(repo Repository, cache Cache, log *slog.Logger) *Service {
	return &Service{repo: repo, cache: cache, log: log, pick: rand.IntN}
}

// Random возвращает случайную активную цитату. Список активных цитат кешируется на минуту.
func (s *Service) Random(ctx context.Context) (*models.MotivationalQuote, error) {
	const op = "quote.Random"
	quotes, err := s.active(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(quotes) == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrNoQuotes)
	}
	return quotes[s.pick(len(quotes))], nil
}

func (s *Service) active(ctx context.Context) ([]*models.MotivationalQuote, error) {
	var quotes []*models.MotivationalQuote
	found, err := s.cache.Get(ctx, cache.QuotesKey, &quotes)
	if err != nil {
		s.log.Warn("failed to read quotes from cache", sl.Err(err))
	}
	if found {
		return quotes, nil
	}

	quotes, err = s.repo.ListActiveQuotes(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, cache.QuotesKey, quotes, cacheTTL); err != nil {
		s.log.Warn("failed to cache quotes", sl.Err(err))
	}
	return quotes, nil
}
