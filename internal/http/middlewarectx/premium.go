package middlewarectx

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/focuszen/internal/access"
	"github.com/magabrotheeeer/focuszen/internal/http/response"
)

// PremiumMiddleware пропускает запрос, если у аккаунта есть подписка или идет пробный период.
// Иначе отвечает 403 с кодом PREMIUM_REQUIRED. now задает текущее время.
func PremiumMiddleware(log *slog.Logger, now func() time.Time) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			account, ok := AccountFrom(r.Context())
			if !ok {
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("unauthorized"))
				return
			}

			if err := access.Check(*account, now()); err != nil {
				premiumDenied.Inc()
				log.Info("premium access denied",
					slog.String("request_id", middleware.GetReqID(r.Context())),
					slog.String("account_id", account.ID),
					slog.String("path", r.URL.Path),
				)
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.PremiumRequired())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
