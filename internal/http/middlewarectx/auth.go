// Package middlewarectx содержит HTTP middleware: проверку токена провайдера идентификации,
// проверку доступа к премиум-функциям, ограничение частоты запросов и метрики.
//
// AuthMiddleware проверяет токен в заголовке Authorization, находит или создает
// аккаунт пользователя и кладет его в контекст запроса.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/focuszen/internal/http/response"
	"github.com/magabrotheeeer/focuszen/internal/lib/sl"
	"github.com/magabrotheeeer/focuszen/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// AccountKey ключ аккаунта в контексте.
const AccountKey Key = "account"

// Verifier проверяет токен и возвращает личность пользователя.
type Verifier interface {
	Verify(tokenStr string) (models.Identity, error)
}

// AccountResolver находит аккаунт пользователя, создавая его при первом входе.
type AccountResolver interface {
	Resolve(ctx context.Context, id models.Identity) (*models.Account, error)
}

// WithAccount кладет аккаунт в контекст.
func WithAccount(ctx context.Context, a *models.Account) context.Context {
	return context.WithValue(ctx, AccountKey, a)
}

// AccountFrom достает аккаунт из контекста.
func AccountFrom(ctx context.Context) (*models.Account, bool) {
	a, ok := ctx.Value(AccountKey).(*models.Account)
	return a, ok && a != nil
}

// AuthMiddleware возвращает HTTP middleware, который проверяет токен в заголовке Authorization.
//
// Если токен валиден, добавляет аккаунт в контекст запроса,
// иначе возвращает ошибку с HTTP статусом 401 Unauthorized.
func AuthMiddleware(verifier Verifier, accounts AccountResolver, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.AuthMiddleware"
			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				log.Warn("missing or invalid authorization header")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("missing or invalid authorization header"))
				return
			}

			id, err := verifier.Verify(strings.TrimPrefix(authHeader, "Bearer "))
			if err != nil {
				log.Warn("invalid or expired token", sl.Err(err))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid or expired token"))
				return
			}

			account, err := accounts.Resolve(r.Context(), id)
			if err != nil {
				log.Error("failed to resolve account", slog.String("subject", id.Subject), sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("could not load account"))
				return
			}
			next.ServeHTTP(w, r.WithContext(WithAccount(r.Context(), account)))
		})
	}
}

// RequireAccount достает аккаунт для обработчика. Если аккаунта нет,
// сам отвечает 401 и возвращает false.
func RequireAccount(w http.ResponseWriter, r *http.Request, log *slog.Logger) (*models.Account, bool) {
	account, ok := AccountFrom(r.Context())
	if !ok {
		log.Error("account not found in context")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return nil, false
	}
	return account, true
}
