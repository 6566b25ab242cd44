package access

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/focuszen/internal/models"
)

func TestEvaluate(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		account    models.Account
		wantAccess bool
		wantDays   int
		wantAge    int
	}{
		{
			name:       "created right now",
			account:    models.Account{ID: "u1", CreatedAt: now},
			wantAccess: true,
			wantDays:   7,
			wantAge:    0,
		},
		{
			name:       "one hour in keeps seven days",
			account:    models.Account{ID: "u1", CreatedAt: now.Add(-time.Hour)},
			wantAccess: true,
			wantDays:   7,
			wantAge:    0,
		},
		{
			name:       "exactly one day in",
			account:    models.Account{ID: "u1", CreatedAt: now.Add(-Day)},
			wantAccess: true,
			wantDays:   6,
			wantAge:    1,
		},
		{
			name:       "window boundary is inclusive",
			account:    models.Account{ID: "u1", CreatedAt: now.Add(-TrialWindow)},
			wantAccess: true,
			wantDays:   0,
			wantAge:    7,
		},
		{
			name:       "one second past the window",
			account:    models.Account{ID: "u1", CreatedAt: now.Add(-TrialWindow - time.Second)},
			wantAccess: false,
			wantDays:   0,
			wantAge:    7,
		},
		{
			name:       "eight days old",
			account:    models.Account{ID: "u1", CreatedAt: now.Add(-8 * Day)},
			wantAccess: false,
			wantDays:   0,
			wantAge:    8,
		},
		{
			name:       "last partial day rounds up",
			account:    models.Account{ID: "u1", CreatedAt: now.Add(-TrialWindow + time.Minute)},
			wantAccess: true,
			wantDays:   1,
			wantAge:    6,
		},
		{
			name:       "clock skew does not grant extra days",
			account:    models.Account{ID: "u1", CreatedAt: now.Add(time.Hour)},
			wantAccess: true,
			wantDays:   7,
			wantAge:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.account, now)
			assert.Equal(t, tt.wantAccess, got.HasAccess)
			assert.False(t, got.IsPremium)
			assert.Equal(t, tt.wantDays, got.TrialDaysRemaining)
			assert.Equal(t, tt.wantAge, got.AccountAgeDays)
		})
	}
}

func TestEvaluate_PremiumAlwaysHasAccess(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	for _, created := range []time.Time{
		now,
		now.Add(-TrialWindow),
		now.Add(-30 * Day),
		now.AddDate(-3, 0, 0),
	} {
		got := Evaluate(models.Account{ID: "p", IsPremium: true, CreatedAt: created}, now)
		assert.True(t, got.HasAccess)
		assert.True(t, got.IsPremium)
		assert.Zero(t, got.TrialDaysRemaining)
	}
}

func TestEvaluate_Idempotent(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	account := models.Account{ID: "u1", CreatedAt: now.Add(-3 * Day)}

	first := Evaluate(account, now)
	for range 5 {
		assert.Equal(t, first, Evaluate(account, now))
	}
}

func TestEvaluate_MissingCreatedAtPanics(t *testing.T) {
	assert.Panics(t, func() {
		Evaluate(models.Account{ID: "broken"}, time.Now())
	})
}

func TestCheck(t *testing.T) {
	now := time.Now()

	assert.NoError(t, Check(models.Account{CreatedAt: now}, now))
	assert.ErrorIs(t, Check(models.Account{CreatedAt: now.Add(-8 * Day)}, now), ErrPremiumRequired)
	assert.NoError(t, Check(models.Account{CreatedAt: now.Add(-8 * Day), IsPremium: true}, now))
}
