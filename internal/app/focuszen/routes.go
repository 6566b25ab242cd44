package focuszen

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/focuszen/internal/config"
	_ "github.com/magabrotheeeer/focuszen/internal/docs" // регистрация swagger-документа
	accounthandler "github.com/magabrotheeeer/focuszen/internal/http/handlers/account"
	billinghandler "github.com/magabrotheeeer/focuszen/internal/http/handlers/billing"
	challengehandler "github.com/magabrotheeeer/focuszen/internal/http/handlers/challenge"
	chathandler "github.com/magabrotheeeer/focuszen/internal/http/handlers/chat"
	gamehandler "github.com/magabrotheeeer/focuszen/internal/http/handlers/game"
	"github.com/magabrotheeeer/focuszen/internal/http/handlers/health"
	"github.com/magabrotheeeer/focuszen/internal/http/handlers/live"
	quotehandler "github.com/magabrotheeeer/focuszen/internal/http/handlers/quote"
	screenusagehandler "github.com/magabrotheeeer/focuszen/internal/http/handlers/screenusage"
	sessionhandler "github.com/magabrotheeeer/focuszen/internal/http/handlers/session"
	settingshandler "github.com/magabrotheeeer/focuszen/internal/http/handlers/settings"
	streakhandler "github.com/magabrotheeeer/focuszen/internal/http/handlers/streak"
	taskhandler "github.com/magabrotheeeer/focuszen/internal/http/handlers/task"
	"github.com/magabrotheeeer/focuszen/internal/http/middlewarectx"
)

// Deps зависимости маршрутов.
type Deps struct {
	Services  Services
	Verifier  middlewarectx.Verifier
	Timers    live.Timers
	DB        health.Pinger
	RateLimit config.RateLimit
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, d Deps) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
		middlewarectx.MetricsMiddleware,
	)

	svc := d.Services
	accounts := accounthandler.New(logger, svc.Accounts)
	sessions := sessionhandler.New(logger, svc.Sessions)
	timers := live.New(logger, d.Timers)
	userSettings := settingshandler.New(logger, svc.Settings)
	streaks := streakhandler.New(logger, svc.Streaks)
	billing := billinghandler.New(logger, svc.Billing)
	tasks := taskhandler.New(logger, svc.Tasks)
	game := gamehandler.New(logger, svc.Game)
	chat := chathandler.New(logger, svc.Chat)
	screenUsage := screenusagehandler.New(logger, svc.ScreenUsage)
	challenges := challengehandler.New(logger, svc.Challenges)
	limiter := middlewarectx.NewLimiter(d.RateLimit.RPS, d.RateLimit.Burst)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Get("/health", health.New(logger, d.DB).ServeHTTP)
		r.Get("/quotes/random", quotehandler.New(logger, svc.Quotes).ServeHTTP)
		// Вебхук Stripe проверяется подписью, а не токеном
		r.Post("/billing/webhook", billing.Webhook)

		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.AuthMiddleware(d.Verifier, svc.Accounts, logger))

			r.Get("/auth/user", accounts.User)
			r.Get("/premium/status", accounts.PremiumStatus)
			r.Post("/billing/subscription", billing.Subscribe)

			r.Route("/timer", func(r chi.Router) {
				r.Post("/sessions", sessions.Create)
				r.Get("/sessions", sessions.List)
				r.Get("/sessions/range", sessions.Range)
				r.Patch("/sessions/{id}", sessions.Update)

				r.Get("/live", timers.Get)
				r.Post("/live/start", timers.Start)
				r.Post("/live/pause", timers.Pause)
				r.Post("/live/resume", timers.Resume)
				r.Post("/live/reset", timers.Reset)
				r.Post("/live/switch", timers.Switch)
			})

			r.Get("/user/settings", userSettings.Get)
			r.Post("/user/settings", userSettings.Save)
			r.Get("/user/streaks", streaks.List)
			r.Get("/user/streak/current", streaks.Current)
			r.Post("/user/streak", streaks.Record)
			r.Get("/analytics/summary", sessions.Summary)

			// Премиум-функции: после пробного периода нужна подписка
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.PremiumMiddleware(logger, time.Now))

				r.Get("/tasks", tasks.List)
				r.Post("/tasks", tasks.Create)
				r.Get("/tasks/{id}", tasks.Get)
				r.Patch("/tasks/{id}", tasks.Update)
				r.Delete("/tasks/{id}", tasks.Delete)

				r.Get("/game/profile", game.Profile)
				r.Post("/game/xp", game.AwardXP)

				r.With(middlewarectx.RateLimitMiddleware(limiter, logger)).Post("/ai/chat", chat.Send)
				r.Get("/ai/history", chat.History)

				r.Post("/screen-usage", screenUsage.Record)
				r.Get("/screen-usage/stats", screenUsage.Stats)

				r.Get("/challenges", challenges.List)
				r.Get("/challenges/progress", challenges.Progress)
				r.Post("/challenges/{id}/join", challenges.Join)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
