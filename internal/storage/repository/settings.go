package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/focuszen/internal/models"
)

const settingsColumns = `account_id, theme, haptic_feedback, daily_reminders, reminder_time, sound_volume,
	default_session_duration, default_break_duration, sessions_until_long_break, long_break_duration,
	daily_goal, updated_at`

func scanSettings(row rowScanner) (*models.UserSettings, error) {
	var us models.UserSettings
	if err := row.Scan(&us.AccountID, &us.Theme, &us.HapticFeedback, &us.DailyReminders, &us.ReminderTime,
		&us.SoundVolume, &us.DefaultSessionDuration, &us.DefaultBreakDuration, &us.SessionsUntilLongBreak,
		&us.LongBreakDuration, &us.DailyGoal, &us.UpdatedAt); err != nil {
		return nil, err
	}
	return &us, nil
}

// GetSettings возвращает настройки аккаунта.
func (s *Storage) GetSettings(ctx context.Context, accountID string) (*models.UserSettings, error) {
	const op = "storage.GetSettings"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	row := s.DB.QueryRowContext(ctx, `SELECT `+settingsColumns+` FROM user_settings WHERE account_id = $1`, accountID)
	us, err := scanSettings(row)
	if err != nil {
		return nil, notFound(op, err)
	}
	return us, nil
}

// UpsertSettings создает или полностью заменяет настройки аккаунта.
func (s *Storage) UpsertSettings(ctx context.Context, in models.UserSettings) (*models.UserSettings, error) {
	const op = "storage.UpsertSettings"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO user_settings (account_id, theme, haptic_feedback, daily_reminders, reminder_time,
			      sound_volume, default_session_duration, default_break_duration,
			      sessions_until_long_break, long_break_duration, daily_goal)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			  ON CONFLICT (account_id) DO UPDATE SET
			      theme = EXCLUDED.theme,
			      haptic_feedback = EXCLUDED.haptic_feedback,
			      daily_reminders = EXCLUDED.daily_reminders,
			      reminder_time = EXCLUDED.reminder_time,
			      sound_volume = EXCLUDED.sound_volume,
			      default_session_duration = EXCLUDED.default_session_duration,
			      default_break_duration = EXCLUDED.default_break_duration,
			      sessions_until_long_break = EXCLUDED.sessions_until_long_break,
			      long_break_duration = EXCLUDED.long_break_duration,
			      daily_goal = EXCLUDED.daily_goal,
			      updated_at = NOW()
			  RETURNING ` + settingsColumns
	row := s.DB.QueryRowContext(ctx, query, in.AccountID, in.Theme, in.HapticFeedback, in.DailyReminders,
		in.ReminderTime, in.SoundVolume, in.DefaultSessionDuration, in.DefaultBreakDuration,
		in.SessionsUntilLongBreak, in.LongBreakDuration, in.DailyGoal)
	us, err := scanSettings(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return us, nil
}
