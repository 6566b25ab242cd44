// Package focuszen собирает HTTP-приложение: хранилище, кеш, сервисы,
// живые таймеры и маршруты, и управляет их жизненным циклом.
package focuszen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/focuszen/internal/cache"
	"github.com/magabrotheeeer/focuszen/internal/config"
	"github.com/magabrotheeeer/focuszen/internal/lib/jwt"
	"github.com/magabrotheeeer/focuszen/internal/lib/sl"
	"github.com/magabrotheeeer/focuszen/internal/migrations"
	"github.com/magabrotheeeer/focuszen/internal/services/account"
	"github.com/magabrotheeeer/focuszen/internal/services/billing"
	"github.com/magabrotheeeer/focuszen/internal/services/challenge"
	"github.com/magabrotheeeer/focuszen/internal/services/chat"
	"github.com/magabrotheeeer/focuszen/internal/services/game"
	"github.com/magabrotheeeer/focuszen/internal/services/quote"
	"github.com/magabrotheeeer/focuszen/internal/services/screenusage"
	"github.com/magabrotheeeer/focuszen/internal/services/session"
	"github.com/magabrotheeeer/focuszen/internal/services/settings"
	"github.com/magabrotheeeer/focuszen/internal/services/streak"
	"github.com/magabrotheeeer/focuszen/internal/services/task"
	"github.com/magabrotheeeer/focuszen/internal/storage/repository"
	"github.com/magabrotheeeer/focuszen/internal/timer"

	openai "github.com/sashabaranov/go-openai"
)

const shutdownTimeout = 15 * time.Second

// App HTTP-приложение focuszen.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
	timers *timer.Manager
}

// Services набор сервисов, которые обслуживают маршруты.
type Services struct {
	Accounts    *account.Service
	Sessions    *session.Service
	Settings    *settings.Service
	Streaks     *streak.Service
	Quotes      *quote.Service
	Billing     *billing.Service
	Tasks       *task.Service
	Game        *game.Service
	Chat        *chat.Service
	ScreenUsage *screenusage.Service
	Challenges  *challenge.Service
}

// New подключает хранилище и кеш, применяет миграции и собирает сервисы.
// ctx ограничивает жизнь живых таймеров.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		_ = db.Close()
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	verifier, err := newVerifier(cfg.Auth)
	if err != nil {
		_ = db.Close()
		_ = cacheRedis.Close()
		return nil, err
	}

	loc := cfg.Streak.Location()
	accounts := account.New(db, cacheRedis, logger)
	settingsService := settings.New(db, cfg.DailyGoal, logger)
	sessions := session.New(db, db, settingsService, db, loc, logger)

	var gateway billing.Gateway
	if cfg.StripeSecretKey != "" {
		gateway = billing.NewStripeGateway(cfg.StripeSecretKey)
	} else {
		logger.Warn("stripe secret key is not set, billing disabled")
	}

	var completer chat.Completer
	if cfg.OpenAIKey != "" {
		completer = openai.NewClient(cfg.OpenAIKey)
	} else {
		logger.Warn("openai api key is not set, coach uses canned replies")
	}

	svc := Services{
		Accounts:    accounts,
		Sessions:    sessions,
		Settings:    settingsService,
		Streaks:     streak.New(db, settingsService, loc, logger),
		Quotes:      quote.New(db, cacheRedis, logger),
		Billing:     billing.New(gateway, db, accounts, cfg.StripePriceID, cfg.StripeWebhookSecret, logger),
		Tasks:       task.New(db, logger),
		Game:        game.New(db, logger),
		Chat:        chat.New(db, completer, cfg.OpenAIModel, logger),
		ScreenUsage: screenusage.New(db, logger),
		Challenges:  challenge.New(db, logger),
	}

	timers := timer.NewManager(ctx, logger, nil, newSessionRecorder(sessions, logger))

	router := chi.NewRouter()
	RegisterRoutes(router, logger, Deps{
		Services:  svc,
		Verifier:  verifier,
		Timers:    timers,
		DB:        db.DB,
		RateLimit: cfg.RateLimit,
	})

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
		timers: timers,
	}, nil
}

func newVerifier(cfg config.Auth) (jwt.Verifier, error) {
	if cfg.JWKSURL != "" {
		return jwt.NewJWKSVerifier(cfg.JWKSURL, cfg.Issuer, cfg.Audience)
	}
	if cfg.JWTSecretKey == "" {
		return nil, fmt.Errorf("app.newVerifier: either auth.jwks_url or auth.jwt_secret_key must be set")
	}
	return jwt.NewHMACVerifier(cfg.JWTSecretKey, cfg.Issuer, cfg.Audience), nil
}

// Run запускает HTTP-сервер и при отмене ctx останавливает его и освобождает ресурсы.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	var err error
	select {
	case err = <-errCh:
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err = a.server.Shutdown(timeoutCtx)
	}

	a.timers.Close()
	if cerr := a.cache.Close(); cerr != nil {
		a.logger.Error("failed to close redis", sl.Err(cerr))
	}
	if cerr := a.db.Close(); cerr != nil {
		a.logger.Error("failed to close database", sl.Err(cerr))
	}
	return err
}
