package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/magabrotheeeer/focuszen/internal/models"
	"github.com/magabrotheeeer/focuszen/internal/storage"
)

const accountColumns = `id, email, first_name, last_name, profile_image_url,
	stripe_customer_id, stripe_subscription_id, is_premium, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*models.Account, error) {
	var a models.Account
	var email, first, last, image, customer, subscription sql.NullString
	if err := row.Scan(&a.ID, &email, &first, &last, &image,
		&customer, &subscription, &a.IsPremium, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	a.Email = nullString(email)
	a.FirstName = nullString(first)
	a.LastName = nullString(last)
	a.ProfileImageURL = nullString(image)
	a.StripeCustomerID = nullString(customer)
	a.StripeSubscriptionID = nullString(subscription)
	return &a, nil
}

func emptyToNull(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// UpsertAccount создает аккаунт при первом входе или обновляет профиль из токена.
// created_at при обновлении не меняется.
func (s *Storage) UpsertAccount(ctx context.Context, id models.Identity) (*models.Account, error) {
	const op = "storage.UpsertAccount"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO accounts (id, email, first_name, last_name, profile_image_url)
			  VALUES ($1, $2, $3, $4, $5)
			  ON CONFLICT (id) DO UPDATE SET
			      email = COALESCE(EXCLUDED.email, accounts.email),
			      first_name = COALESCE(EXCLUDED.first_name, accounts.first_name),
			      last_name = COALESCE(EXCLUDED.last_name, accounts.last_name),
			      profile_image_url = COALESCE(EXCLUDED.profile_image_url, accounts.profile_image_url),
			      updated_at = NOW()
			  RETURNING ` + accountColumns
	row := s.DB.QueryRowContext(ctx, query, id.Subject, emptyToNull(id.Email),
		emptyToNull(id.FirstName), emptyToNull(id.LastName), emptyToNull(id.ProfileImageURL))
	a, err := scanAccount(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return a, nil
}

// GetAccount возвращает аккаунт по идентификатору.
func (s *Storage) GetAccount(ctx context.Context, accountID string) (*models.Account, error) {
	const op = "storage.GetAccount"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	row := s.DB.QueryRowContext(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, accountID)
	a, err := scanAccount(row)
	if err != nil {
		return nil, notFound(op, err)
	}
	return a, nil
}

// SetStripeCustomer сохраняет идентификатор клиента Stripe.
func (s *Storage) SetStripeCustomer(ctx context.Context, accountID, customerID string) error {
	const op = "storage.SetStripeCustomer"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	return s.execOne(ctx, op, `UPDATE accounts SET stripe_customer_id = $2, updated_at = NOW() WHERE id = $1`,
		accountID, customerID)
}

// SetSubscription сохраняет подписку Stripe и признак премиума аккаунта.
func (s *Storage) SetSubscription(ctx context.Context, accountID, subscriptionID string, premium bool) error {
	const op = "storage.SetSubscription"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	return s.execOne(ctx, op, `UPDATE accounts
			  SET stripe_subscription_id = $2, is_premium = $3, updated_at = NOW()
			  WHERE id = $1`, accountID, subscriptionID, premium)
}

// SetPremiumByCustomer обновляет премиум по клиенту Stripe и возвращает id аккаунта.
// Используется вебхуком.
func (s *Storage) SetPremiumByCustomer(ctx context.Context, customerID, subscriptionID string, premium bool) (string, error) {
	const op = "storage.SetPremiumByCustomer"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var accountID string
	err := s.DB.QueryRowContext(ctx, `UPDATE accounts
			  SET stripe_subscription_id = COALESCE(NULLIF($2, ''), stripe_subscription_id),
			      is_premium = $3, updated_at = NOW()
			  WHERE stripe_customer_id = $1
			  RETURNING id`, customerID, subscriptionID, premium).Scan(&accountID)
	if err != nil {
		return "", notFound(op, err)
	}
	return accountID, nil
}

// ListTrialAccounts возвращает аккаунты без премиума с email, созданные после since.
func (s *Storage) ListTrialAccounts(ctx context.Context, since time.Time) ([]*models.Account, error) {
	const op = "storage.ListTrialAccounts"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	rows, err := s.DB.QueryContext(ctx, `SELECT `+accountColumns+`
			  FROM accounts
			  WHERE NOT is_premium AND email IS NOT NULL AND created_at >= $1
			  ORDER BY created_at`, since)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var result []*models.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListReminderCandidates возвращает аккаунты с включенными напоминаниями,
// которые еще не выполнили дневную цель за день today.
func (s *Storage) ListReminderCandidates(ctx context.Context, today string) ([]models.ReminderNotice, error) {
	const op = "storage.ListReminderCandidates"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + prefixed("a", accountColumns) + `, us.daily_goal
			  FROM accounts a
			  JOIN user_settings us ON us.account_id = a.id
			  WHERE us.daily_reminders AND a.email IS NOT NULL
			    AND NOT EXISTS (
			        SELECT 1 FROM daily_streaks ds
			        WHERE ds.account_id = a.id AND ds.date = $1::date AND ds.goal_met
			    )`
	rows, err := s.DB.QueryContext(ctx, query, today)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var result []models.ReminderNotice
	for rows.Next() {
		var a models.Account
		var email, first, last, image, customer, subscription sql.NullString
		var goal int
		if err := rows.Scan(&a.ID, &email, &first, &last, &image,
			&customer, &subscription, &a.IsPremium, &a.CreatedAt, &a.UpdatedAt, &goal); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		a.Email = nullString(email)
		a.FirstName = nullString(first)
		a.LastName = nullString(last)
		result = append(result, models.ReminderNotice{
			AccountID: a.ID,
			Email:     email.String,
			Name:      a.DisplayName(),
			DailyGoal: goal,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

func (s *Storage) execOne(ctx context.Context, op, query string, args ...any) error {
	result, err := s.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	return nil
}
