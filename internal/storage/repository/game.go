package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/focuszen/internal/models"
)

const gameColumns = `account_id, total_xp, current_level, xp_to_next_level, completed_achievements, updated_at`

func scanGame(row rowScanner) (*models.GameData, error) {
	var g models.GameData
	if err := row.Scan(&g.AccountID, &g.TotalXP, &g.CurrentLevel, &g.XPToNextLevel,
		typeMap.SQLScanner(&g.CompletedAchievements), &g.UpdatedAt); err != nil {
		return nil, err
	}
	if g.CompletedAchievements == nil {
		g.CompletedAchievements = []string{}
	}
	return &g, nil
}

// GetGameData возвращает игровые данные аккаунта.
func (s *Storage) GetGameData(ctx context.Context, accountID string) (*models.GameData, error) {
	const op = "storage.GetGameData"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	row := s.DB.QueryRowContext(ctx, `SELECT `+gameColumns+` FROM game_data WHERE account_id = $1`, accountID)
	g, err := scanGame(row)
	if err != nil {
		return nil, notFound(op, err)
	}
	return g, nil
}

// AddXP начисляет опыт в транзакции: строка блокируется, уровень пересчитывается
// через models.GameData.ApplyXP. Если записи нет, она создается.
func (s *Storage) AddXP(ctx context.Context, accountID string, xp int) (*models.GameData, error) {
	const op = "storage.AddXP"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `INSERT INTO game_data (account_id) VALUES ($1)
			  ON CONFLICT (account_id) DO NOTHING`, accountID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	g, err := scanGame(tx.QueryRowContext(ctx, `SELECT `+gameColumns+`
			  FROM game_data WHERE account_id = $1 FOR UPDATE`, accountID))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	g.ApplyXP(xp)

	g, err = scanGame(tx.QueryRowContext(ctx, `UPDATE game_data
			  SET total_xp = $2, current_level = $3, xp_to_next_level = $4, updated_at = NOW()
			  WHERE account_id = $1
			  RETURNING `+gameColumns, accountID, g.TotalXP, g.CurrentLevel, g.XPToNextLevel))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return g, nil
}

// GetOrCreateGameData возвращает игровые данные, создавая запись с нулевым опытом.
func (s *Storage) GetOrCreateGameData(ctx context.Context, accountID string) (*models.GameData, error) {
	const op = "storage.GetOrCreateGameData"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	row := s.DB.QueryRowContext(ctx, `INSERT INTO game_data (account_id) VALUES ($1)
			  ON CONFLICT (account_id) DO UPDATE SET account_id = EXCLUDED.account_id
			  RETURNING `+gameColumns, accountID)
	g, err := scanGame(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return g, nil
}

// ListAchievements возвращает активные достижения каталога.
func (s *Storage) ListAchievements(ctx context.Context) ([]*models.Achievement, error) {
	const op = "storage.ListAchievements"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	rows, err := s.DB.QueryContext(ctx, `SELECT id, title, description, xp_reward, icon, category, requirement
			  FROM achievements WHERE is_active ORDER BY category, requirement`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	result := make([]*models.Achievement, 0)
	for rows.Next() {
		var a models.Achievement
		if err := rows.Scan(&a.ID, &a.Title, &a.Description, &a.XPReward, &a.Icon, &a.Category, &a.Requirement); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
