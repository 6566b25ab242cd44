package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/focuszen/internal/models"
)

const streakColumns = `id, account_id, to_char(date, 'YYYY-MM-DD'), sessions_completed,
	focus_time_minutes, goal_met, created_at`

func scanStreak(row rowScanner) (*models.DailyStreak, error) {
	var ds models.DailyStreak
	if err := row.Scan(&ds.ID, &ds.AccountID, &ds.Date, &ds.SessionsCompleted,
		&ds.FocusTimeMinutes, &ds.GoalMet, &ds.CreatedAt); err != nil {
		return nil, err
	}
	return &ds, nil
}

func (s *Storage) queryStreaks(ctx context.Context, op, query string, args ...any) ([]*models.DailyStreak, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	result := make([]*models.DailyStreak, 0)
	for rows.Next() {
		ds, err := scanStreak(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, ds)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListStreaks возвращает последние limit записей серий, новые первыми.
func (s *Storage) ListStreaks(ctx context.Context, accountID string, limit int) ([]*models.DailyStreak, error) {
	const op = "storage.ListStreaks"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	return s.queryStreaks(ctx, op, `SELECT `+streakColumns+`
			  FROM daily_streaks
			  WHERE account_id = $1
			  ORDER BY date DESC
			  LIMIT $2`, accountID, limit)
}

// ListGoalMetStreaks возвращает все дни с выполненной целью, новые первыми.
func (s *Storage) ListGoalMetStreaks(ctx context.Context, accountID string) ([]*models.DailyStreak, error) {
	const op = "storage.ListGoalMetStreaks"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	return s.queryStreaks(ctx, op, `SELECT `+streakColumns+`
			  FROM daily_streaks
			  WHERE account_id = $1 AND goal_met
			  ORDER BY date DESC`, accountID)
}

// UpsertStreak записывает итоги дня. Запись на (аккаунт, день) всегда одна.
func (s *Storage) UpsertStreak(ctx context.Context, in models.DailyStreak) (*models.DailyStreak, error) {
	const op = "storage.UpsertStreak"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO daily_streaks (account_id, date, sessions_completed, focus_time_minutes, goal_met)
			  VALUES ($1, $2::date, $3, $4, $5)
			  ON CONFLICT (account_id, date) DO UPDATE SET
			      sessions_completed = EXCLUDED.sessions_completed,
			      focus_time_minutes = EXCLUDED.focus_time_minutes,
			      goal_met = EXCLUDED.goal_met
			  RETURNING ` + streakColumns
	row := s.DB.QueryRowContext(ctx, query, in.AccountID, in.Date, in.SessionsCompleted,
		in.FocusTimeMinutes, in.GoalMet)
	ds, err := scanStreak(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ds, nil
}

// IncrementStreak атомарно добавляет одну завершенную сессию к дню date
// и пересчитывает goal_met по dailyGoal.
func (s *Storage) IncrementStreak(ctx context.Context, accountID, date string, focusMinutes, dailyGoal int) (*models.DailyStreak, error) {
	const op = "storage.IncrementStreak"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO daily_streaks (account_id, date, sessions_completed, focus_time_minutes, goal_met)
			  VALUES ($1, $2::date, 1, $3, 1 >= $4)
			  ON CONFLICT (account_id, date) DO UPDATE SET
			      sessions_completed = daily_streaks.sessions_completed + 1,
			      focus_time_minutes = daily_streaks.focus_time_minutes + EXCLUDED.focus_time_minutes,
			      goal_met = daily_streaks.sessions_completed + 1 >= $4
			  RETURNING ` + streakColumns
	row := s.DB.QueryRowContext(ctx, query, accountID, date, focusMinutes, dailyGoal)
	ds, err := scanStreak(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ds, nil
}
