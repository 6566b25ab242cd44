package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/magabrotheeeer/focuszen/internal/models"
)

const taskColumns = `id, account_id, title, description, priority, category, tags, is_completed,
	total_focus_time, session_count, created_at, updated_at, completed_at`

func scanTask(row rowScanner) (*models.Task, error) {
	var t models.Task
	var description sql.NullString
	var completedAt sql.NullTime
	if err := row.Scan(&t.ID, &t.AccountID, &t.Title, &description, &t.Priority, &t.Category,
		typeMap.SQLScanner(&t.Tags), &t.IsCompleted, &t.TotalFocusTime, &t.SessionCount,
		&t.CreatedAt, &t.UpdatedAt, &completedAt); err != nil {
		return nil, err
	}
	t.Description = nullString(description)
	t.CompletedAt = nullTime(completedAt)
	if t.Tags == nil {
		t.Tags = []string{}
	}
	return &t, nil
}

func withDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// CreateTask создает задачу аккаунта.
func (s *Storage) CreateTask(ctx context.Context, accountID string, in models.DummyTask) (*models.Task, error) {
	const op = "storage.CreateTask"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}
	query := `INSERT INTO tasks (account_id, title, description, priority, category, tags)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING ` + taskColumns
	row := s.DB.QueryRowContext(ctx, query, accountID, in.Title, in.Description,
		withDefault(in.Priority, "medium"), withDefault(in.Category, "general"), tags)
	t, err := scanTask(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return t, nil
}

// GetTask возвращает задачу аккаунта.
func (s *Storage) GetTask(ctx context.Context, accountID, id string) (*models.Task, error) {
	const op = "storage.GetTask"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	row := s.DB.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1 AND account_id = $2`, id, accountID)
	t, err := scanTask(row)
	if err != nil {
		return nil, notFound(op, err)
	}
	return t, nil
}

// ListTasks возвращает задачи аккаунта, новые первыми.
func (s *Storage) ListTasks(ctx context.Context, accountID string) ([]*models.Task, error) {
	const op = "storage.ListTasks"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	rows, err := s.DB.QueryContext(ctx, `SELECT `+taskColumns+`
			  FROM tasks WHERE account_id = $1 ORDER BY created_at DESC`, accountID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	result := make([]*models.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateTask применяет частичное обновление задачи.
// При переводе в завершенную проставляется completed_at, при возврате сбрасывается.
func (s *Storage) UpdateTask(ctx context.Context, accountID, id string, upd models.TaskUpdate) (*models.Task, error) {
	const op = "storage.UpdateTask"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var tags any
	if upd.Tags != nil {
		tags = upd.Tags
	}
	query := `UPDATE tasks SET
			      title = COALESCE($3, title),
			      description = COALESCE($4, description),
			      priority = COALESCE($5, priority),
			      category = COALESCE($6, category),
			      tags = COALESCE($7::text[], tags),
			      is_completed = COALESCE($8, is_completed),
			      completed_at = CASE
			          WHEN $8::boolean IS TRUE AND NOT is_completed THEN NOW()
			          WHEN $8::boolean IS FALSE THEN NULL
			          ELSE completed_at
			      END,
			      updated_at = NOW()
			  WHERE id = $1 AND account_id = $2
			  RETURNING ` + taskColumns
	row := s.DB.QueryRowContext(ctx, query, id, accountID, upd.Title, upd.Description,
		upd.Priority, upd.Category, tags, upd.IsCompleted)
	t, err := scanTask(row)
	if err != nil {
		return nil, notFound(op, err)
	}
	return t, nil
}

// DeleteTask удаляет задачу аккаунта.
func (s *Storage) DeleteTask(ctx context.Context, accountID, id string) error {
	const op = "storage.DeleteTask"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	return s.execOne(ctx, op, `DELETE FROM tasks WHERE id = $1 AND account_id = $2`, id, accountID)
}

// AddTaskFocus добавляет завершенную сессию фокуса к счетчикам задачи.
func (s *Storage) AddTaskFocus(ctx context.Context, accountID, id string, seconds int) error {
	const op = "storage.AddTaskFocus"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	return s.execOne(ctx, op, `UPDATE tasks
			  SET total_focus_time = total_focus_time + $3, session_count = session_count + 1, updated_at = NOW()
			  WHERE id = $1 AND account_id = $2`, id, accountID, seconds)
}
