package focuszen

import (
	"context"
	"log/slog"

	"github.com/magabrotheeeer/focuszen/internal/lib/sl"
	"github.com/magabrotheeeer/focuszen/internal/models"
	"github.com/magabrotheeeer/focuszen/internal/timer"
)

// SessionStore создает и завершает сессии таймера.
type SessionStore interface {
	Create(ctx context.Context, accountID string, in models.DummySession) (*models.TimerSession, error)
	Update(ctx context.Context, accountID, id string, upd models.SessionUpdate) (*models.TimerSession, error)
}

// sessionRecorder сохраняет отсчет живого таймера как завершенную сессию,
// чтобы он попал в серию, опыт и челленджи.
type sessionRecorder struct {
	sessions SessionStore
	log      *slog.Logger
}

func newSessionRecorder(sessions SessionStore, log *slog.Logger) *sessionRecorder {
	return &sessionRecorder{sessions: sessions, log: log}
}

// TimerCompleted реализует timer.Listener.
func (r *sessionRecorder) TimerCompleted(ctx context.Context, accountID string, s timer.Snapshot) {
	const op = "focuszen.TimerCompleted"
	log := r.log.With(slog.String("op", op), slog.String("account_id", accountID))

	ts, err := r.sessions.Create(ctx, accountID, models.DummySession{Type: s.SessionType, Duration: s.Duration})
	if err != nil {
		log.Error("failed to store live session", sl.Err(err))
		return
	}
	done, duration := true, s.Duration
	if _, err := r.sessions.Update(ctx, accountID, ts.ID, models.SessionUpdate{
		IsCompleted:       &done,
		CompletedDuration: &duration,
	}); err != nil {
		log.Error("failed to complete live session", slog.String("session_id", ts.ID), sl.Err(err))
		return
	}
	log.Info("live session recorded", slog.String("session_id", ts.ID), slog.String("type", s.SessionType))
}
