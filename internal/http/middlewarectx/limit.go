package middlewarectx

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/render"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/focuszen/internal/http/response"
)

// Limiter хранит отдельный token bucket для каждого аккаунта.
type Limiter struct {
	rps   rate.Limit
	burst int

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewLimiter создает Limiter с rps запросами в секунду и запасом burst.
func NewLimiter(rps float64, burst int) *Limiter {
	return &Limiter{rps: rate.Limit(rps), burst: burst, limiters: make(map[string]*rate.Limiter)}
}

func (l *Limiter) get(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	lim, ok := l.limiters[key]
	if !ok {
		lim = rate.NewLimiter(l.rps, l.burst)
		l.limiters[key] = lim
	}
	return lim
}

// RateLimitMiddleware ограничивает частоту запросов одного аккаунта.
// Анонимные запросы делят общий лимит.
func RateLimitMiddleware(l *Limiter, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := ""
			if account, ok := AccountFrom(r.Context()); ok {
				key = account.ID
			}
			if !l.get(key).Allow() {
				log.Warn("too many requests", slog.String("account_id", key))
				render.Status(r, http.StatusTooManyRequests)
				render.JSON(w, r, response.Error("too many requests"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
