package models

import "time"

// UserSettings пользовательские настройки таймера и уведомлений.
type UserSettings struct {
	AccountID              string    `json:"account_id"`
	Theme                  string    `json:"theme" validate:"omitempty,oneof=light dark"`
	HapticFeedback         bool      `json:"haptic_feedback"`
	DailyReminders         bool      `json:"daily_reminders"`
	ReminderTime           string    `json:"reminder_time" validate:"omitempty,datetime=15:04"`
	SoundVolume            float64   `json:"sound_volume" validate:"gte=0,lte=1"`
	DefaultSessionDuration int       `json:"default_session_duration" validate:"gte=0"`
	DefaultBreakDuration   int       `json:"default_break_duration" validate:"gte=0"`
	SessionsUntilLongBreak int       `json:"sessions_until_long_break" validate:"gte=0"`
	LongBreakDuration      int       `json:"long_break_duration" validate:"gte=0"`
	DailyGoal              int       `json:"daily_goal" validate:"gte=0"`
	UpdatedAt              time.Time `json:"updated_at"`
}

// DefaultSettings настройки нового пользователя.
func DefaultSettings(accountID string, dailyGoal int) UserSettings {
	return UserSettings{
		AccountID:              accountID,
		Theme:                  "light",
		HapticFeedback:         true,
		DailyReminders:         true,
		ReminderTime:           "09:00",
		SoundVolume:            0.5,
		DefaultSessionDuration: 1500,
		DefaultBreakDuration:   300,
		SessionsUntilLongBreak: 4,
		LongBreakDuration:      900,
		DailyGoal:              dailyGoal,
	}
}
