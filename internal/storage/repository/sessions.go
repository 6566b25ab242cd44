package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/magabrotheeeer/focuszen/internal/models"
)

const sessionColumns = `id, account_id, task_id, type, duration, completed_duration, is_completed,
	pause_count, distraction_count, xp_earned, started_at, completed_at, ambient_sound, created_at`

func scanSession(row rowScanner) (*models.TimerSession, error) {
	var ts models.TimerSession
	var taskID, sound sql.NullString
	var completedAt sql.NullTime
	if err := row.Scan(&ts.ID, &ts.AccountID, &taskID, &ts.Type, &ts.Duration, &ts.CompletedDuration,
		&ts.IsCompleted, &ts.PauseCount, &ts.DistractionCount, &ts.XPEarned, &ts.StartedAt,
		&completedAt, &sound, &ts.CreatedAt); err != nil {
		return nil, err
	}
	ts.TaskID = nullString(taskID)
	ts.AmbientSound = nullString(sound)
	ts.CompletedAt = nullTime(completedAt)
	return &ts, nil
}

func (s *Storage) querySessions(ctx context.Context, op, query string, args ...any) ([]*models.TimerSession, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	result := make([]*models.TimerSession, 0)
	for rows.Next() {
		ts, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, ts)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CreateSession сохраняет начатую сессию таймера.
func (s *Storage) CreateSession(ctx context.Context, accountID string, in models.DummySession) (*models.TimerSession, error) {
	const op = "storage.CreateSession"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO timer_sessions (account_id, task_id, type, duration, ambient_sound)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING ` + sessionColumns
	row := s.DB.QueryRowContext(ctx, query, accountID, in.TaskID, in.Type, in.Duration, in.AmbientSound)
	ts, err := scanSession(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ts, nil
}

// GetSession возвращает сессию аккаунта.
func (s *Storage) GetSession(ctx context.Context, accountID, id string) (*models.TimerSession, error) {
	const op = "storage.GetSession"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	row := s.DB.QueryRowContext(ctx, `SELECT `+sessionColumns+`
			  FROM timer_sessions WHERE id = $1 AND account_id = $2`, id, accountID)
	ts, err := scanSession(row)
	if err != nil {
		return nil, notFound(op, err)
	}
	return ts, nil
}

// UpdateSession применяет частичное обновление. nil-поля не меняются.
// Флаг завершения и опыт здесь не меняются, для этого есть CompleteSession.
func (s *Storage) UpdateSession(ctx context.Context, accountID, id string, upd models.SessionUpdate) (*models.TimerSession, error) {
	const op = "storage.UpdateSession"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE timer_sessions SET
			      completed_duration = COALESCE($3, completed_duration),
			      pause_count = COALESCE($4, pause_count),
			      distraction_count = COALESCE($5, distraction_count),
			      completed_at = COALESCE($6, completed_at)
			  WHERE id = $1 AND account_id = $2
			  RETURNING ` + sessionColumns
	row := s.DB.QueryRowContext(ctx, query, id, accountID, upd.CompletedDuration,
		upd.PauseCount, upd.DistractionCount, upd.CompletedAt)
	ts, err := scanSession(row)
	if err != nil {
		return nil, notFound(op, err)
	}
	return ts, nil
}

// CompleteSession помечает сессию завершенной, только если она еще не завершена.
// Если сессии нет или она уже завершена, возвращает storage.ErrNotFound.
func (s *Storage) CompleteSession(ctx context.Context, accountID, id string, upd models.SessionUpdate) (*models.TimerSession, error) {
	const op = "storage.CompleteSession"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE timer_sessions SET
			      is_completed = TRUE,
			      completed_duration = COALESCE($3, completed_duration),
			      pause_count = COALESCE($4, pause_count),
			      distraction_count = COALESCE($5, distraction_count),
			      completed_at = COALESCE($6, completed_at, NOW()),
			      xp_earned = COALESCE($7, xp_earned)
			  WHERE id = $1 AND account_id = $2 AND NOT is_completed
			  RETURNING ` + sessionColumns
	row := s.DB.QueryRowContext(ctx, query, id, accountID, upd.CompletedDuration,
		upd.PauseCount, upd.DistractionCount, upd.CompletedAt, upd.XPEarned)
	ts, err := scanSession(row)
	if err != nil {
		return nil, notFound(op, err)
	}
	return ts, nil
}

// ListSessions возвращает последние limit сессий аккаунта.
func (s *Storage) ListSessions(ctx context.Context, accountID string, limit int) ([]*models.TimerSession, error) {
	const op = "storage.ListSessions"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	return s.querySessions(ctx, op, `SELECT `+sessionColumns+`
			  FROM timer_sessions
			  WHERE account_id = $1
			  ORDER BY started_at DESC
			  LIMIT $2`, accountID, limit)
}

// ListSessionsInRange возвращает сессии, начатые в интервале [start, end].
func (s *Storage) ListSessionsInRange(ctx context.Context, accountID string, start, end time.Time) ([]*models.TimerSession, error) {
	const op = "storage.ListSessionsInRange"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	return s.querySessions(ctx, op, `SELECT `+sessionColumns+`
			  FROM timer_sessions
			  WHERE account_id = $1 AND started_at BETWEEN $2 AND $3
			  ORDER BY started_at DESC`, accountID, start, end)
}

// AnalyticsSummary суммирует завершенные сессии, начатые после since.
func (s *Storage) AnalyticsSummary(ctx context.Context, accountID string, since time.Time) (*models.AnalyticsSummary, error) {
	const op = "storage.AnalyticsSummary"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT
			      COALESCE(SUM(completed_duration) FILTER (WHERE type = 'focus'), 0),
			      COALESCE(SUM(completed_duration) FILTER (WHERE type <> 'focus'), 0),
			      COUNT(*) FILTER (WHERE type = 'focus'),
			      COUNT(*) FILTER (WHERE type <> 'focus')
			  FROM timer_sessions
			  WHERE account_id = $1 AND is_completed AND started_at >= $2`
	var sum models.AnalyticsSummary
	if err := s.DB.QueryRowContext(ctx, query, accountID, since).Scan(
		&sum.TotalFocusTime, &sum.TotalBreakTime, &sum.CompletedSessions, &sum.CompletedBreaks); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &sum, nil
}
