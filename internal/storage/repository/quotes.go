package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/focuszen/internal/models"
)

// ListActiveQuotes возвращает все активные цитаты.
func (s *Storage) ListActiveQuotes(ctx context.Context) ([]*models.MotivationalQuote, error) {
	const op = "storage.ListActiveQuotes"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	rows, err := s.DB.QueryContext(ctx, `SELECT id, text, author, category
			  FROM motivational_quotes
			  WHERE is_active
			  ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var result []*models.MotivationalQuote
	for rows.Next() {
		var q models.MotivationalQuote
		if err := rows.Scan(&q.ID, &q.Text, &q.Author, &q.Category); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
