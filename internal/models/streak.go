package models

import "time"

// DailyStreak одна запись на аккаунт и календарный день.
// Date хранится строкой в формате YYYY-MM-DD.
type DailyStreak struct {
	ID                string    `json:"id"`
	AccountID         string    `json:"account_id"`
	Date              string    `json:"date"`
	SessionsCompleted int       `json:"sessions_completed"`
	FocusTimeMinutes  int       `json:"focus_time_minutes"`
	GoalMet           bool      `json:"goal_met"`
	CreatedAt         time.Time `json:"created_at"`
}

// DummyStreak используется для приема записи серии из JSON-запроса.
// GoalMet не принимается от клиента, он вычисляется из дневной цели.
type DummyStreak struct {
	Date              string `json:"date" validate:"required,datetime=2006-01-02"`
	SessionsCompleted int    `json:"sessions_completed" validate:"gte=0"`
	FocusTimeMinutes  int    `json:"focus_time_minutes" validate:"gte=0"`
}

// StreakSummary текущая и максимальная серии.
type StreakSummary struct {
	CurrentStreak int `json:"current_streak"`
	LongestStreak int `json:"longest_streak"`
}
