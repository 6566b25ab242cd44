package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/magabrotheeeer/focuszen/internal/models"
	"github.com/magabrotheeeer/focuszen/internal/storage"
)

// SaveChatMessage сохраняет сообщение AI-чата.
func (s *Storage) SaveChatMessage(ctx context.Context, m models.ChatMessage) (*models.ChatMessage, error) {
	const op = "storage.SaveChatMessage"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO chat_messages (account_id, session_id, message, is_user_message, ai_response, context)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id, created_at`
	if err := s.DB.QueryRowContext(ctx, query, m.AccountID, m.SessionID, m.Message, m.IsUserMessage,
		m.AIResponse, m.Context).Scan(&m.ID, &m.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &m, nil
}

// ListChatMessages возвращает последние limit сообщений аккаунта.
func (s *Storage) ListChatMessages(ctx context.Context, accountID string, limit int) ([]*models.ChatMessage, error) {
	const op = "storage.ListChatMessages"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	rows, err := s.DB.QueryContext(ctx, `SELECT id, account_id, session_id, message, is_user_message,
			      ai_response, context, created_at
			  FROM chat_messages
			  WHERE account_id = $1 AND ($2::uuid IS NULL OR session_id = $2::uuid)
			  ORDER BY created_at DESC
			  LIMIT $3`, accountID, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	result := make([]*models.ChatMessage, 0)
	for rows.Next() {
		var m models.ChatMessage
		var sessionID, aiResponse sql.NullString
		if err := rows.Scan(&m.ID, &m.AccountID, &sessionID, &m.Message, &m.IsUserMessage,
			&aiResponse, &m.Context, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		m.SessionID = nullString(sessionID)
		m.AIResponse = nullString(aiResponse)
		result = append(result, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CreateScreenUsage сохраняет запись об отвлечениях.
func (s *Storage) CreateScreenUsage(ctx context.Context, l models.ScreenUsageLog) (*models.ScreenUsageLog, error) {
	const op = "storage.CreateScreenUsage"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO screen_usage_logs (account_id, session_id, distraction_count, focus_time, away_time)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id, created_at`
	if err := s.DB.QueryRowContext(ctx, query, l.AccountID, l.SessionID, l.DistractionCount,
		l.FocusTime, l.AwayTime).Scan(&l.ID, &l.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &l, nil
}

// ListScreenUsage возвращает последние limit записей об отвлечениях.
// При sessionID != nil только записи этой сессии.
func (s *Storage) ListScreenUsage(ctx context.Context, accountID string, sessionID *string, limit int) ([]*models.ScreenUsageLog, error) {
	const op = "storage.ListScreenUsage"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	rows, err := s.DB.QueryContext(ctx, `SELECT id, account_id, session_id, distraction_count, focus_time,
			      away_time, created_at
			  FROM screen_usage_logs
			  WHERE account_id = $1 AND ($2::uuid IS NULL OR session_id = $2::uuid)
			  ORDER BY created_at DESC
			  LIMIT $3`, accountID, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	result := make([]*models.ScreenUsageLog, 0)
	for rows.Next() {
		var l models.ScreenUsageLog
		var sessionID sql.NullString
		if err := rows.Scan(&l.ID, &l.AccountID, &sessionID, &l.DistractionCount, &l.FocusTime,
			&l.AwayTime, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		l.SessionID = nullString(sessionID)
		result = append(result, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

const challengeColumns = `c.id, c.title, c.description, c.target_sessions, c.start_date, c.end_date, c.xp_reward`

// ListActiveChallenges возвращает челленджи, идущие в момент now.
func (s *Storage) ListActiveChallenges(ctx context.Context, now time.Time) ([]*models.Challenge, error) {
	const op = "storage.ListActiveChallenges"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	rows, err := s.DB.QueryContext(ctx, `SELECT `+challengeColumns+`
			  FROM challenges c
			  WHERE c.is_active AND $1 BETWEEN c.start_date AND c.end_date
			  ORDER BY c.end_date`, now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	result := make([]*models.Challenge, 0)
	for rows.Next() {
		var c models.Challenge
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.TargetSessions,
			&c.StartDate, &c.EndDate, &c.XPReward); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// JoinChallenge добавляет аккаунт в активный челлендж. Повторное вступление
// возвращает уже существующий прогресс.
func (s *Storage) JoinChallenge(ctx context.Context, accountID, challengeID string, now time.Time) (*models.ChallengeProgress, error) {
	const op = "storage.JoinChallenge"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var active bool
	err := s.DB.QueryRowContext(ctx, `SELECT is_active AND $2 BETWEEN start_date AND end_date
			  FROM challenges WHERE id = $1`, challengeID, now).Scan(&active)
	if err != nil {
		return nil, notFound(op, err)
	}
	if !active {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	query := `INSERT INTO challenge_progress (account_id, challenge_id)
			  VALUES ($1, $2)
			  ON CONFLICT (account_id, challenge_id) DO UPDATE SET account_id = EXCLUDED.account_id
			  RETURNING account_id, challenge_id, current_sessions, is_completed, joined_at, completed_at`
	var p models.ChallengeProgress
	var completedAt sql.NullTime
	if err := s.DB.QueryRowContext(ctx, query, accountID, challengeID).Scan(&p.AccountID, &p.ChallengeID,
		&p.CurrentSessions, &p.IsCompleted, &p.JoinedAt, &completedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	p.CompletedAt = nullTime(completedAt)
	return &p, nil
}

// ListChallengeProgress возвращает челленджи, в которых участвует аккаунт.
func (s *Storage) ListChallengeProgress(ctx context.Context, accountID string) ([]*models.ChallengeWithProgress, error) {
	const op = "storage.ListChallengeProgress"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	rows, err := s.DB.QueryContext(ctx, `SELECT `+challengeColumns+`,
			      cp.account_id, cp.challenge_id, cp.current_sessions, cp.is_completed, cp.joined_at, cp.completed_at
			  FROM challenge_progress cp
			  JOIN challenges c ON c.id = cp.challenge_id
			  WHERE cp.account_id = $1
			  ORDER BY cp.joined_at DESC`, accountID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	result := make([]*models.ChallengeWithProgress, 0)
	for rows.Next() {
		var item models.ChallengeWithProgress
		var completedAt sql.NullTime
		c, p := &item.Challenge, &item.Progress
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.TargetSessions, &c.StartDate, &c.EndDate,
			&c.XPReward, &p.AccountID, &p.ChallengeID, &p.CurrentSessions, &p.IsCompleted,
			&p.JoinedAt, &completedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		p.CompletedAt = nullTime(completedAt)
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// BumpChallenges засчитывает одну сессию фокуса во все незавершенные активные челленджи
// аккаунта. Возвращает суммарную награду за челленджи, завершенные этой сессией.
func (s *Storage) BumpChallenges(ctx context.Context, accountID string, now time.Time) (int, error) {
	const op = "storage.BumpChallenges"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE challenge_progress cp SET
			      current_sessions = cp.current_sessions + 1,
			      is_completed = cp.current_sessions + 1 >= c.target_sessions,
			      completed_at = CASE WHEN cp.current_sessions + 1 >= c.target_sessions THEN $2 END
			  FROM challenges c
			  WHERE c.id = cp.challenge_id AND cp.account_id = $1 AND NOT cp.is_completed
			    AND c.is_active AND $2 BETWEEN c.start_date AND c.end_date
			  RETURNING cp.is_completed, c.xp_reward`
	rows, err := s.DB.QueryContext(ctx, query, accountID, now)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	reward := 0
	for rows.Next() {
		var completed bool
		var xp int
		if err := rows.Scan(&completed, &xp); err != nil {
			return 0, fmt.Errorf("%s: %w", op, err)
		}
		if completed {
			reward += xp
		}
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return reward, nil
}
