package models

import "time"

// Типы сессий таймера
const (
	SessionFocus     = "focus"
	SessionBreak     = "break"
	SessionLongBreak = "long_break"
)

// TimerSession запись о запущенной сессии таймера.
type TimerSession struct {
	ID                string     `json:"id"`
	AccountID         string     `json:"account_id"`
	TaskID            *string    `json:"task_id,omitempty"`
	Type              string     `json:"type"`
	Duration          int        `json:"duration"`           // секунды
	CompletedDuration int        `json:"completed_duration"` // секунды
	IsCompleted       bool       `json:"is_completed"`
	PauseCount        int        `json:"pause_count"`
	DistractionCount  int        `json:"distraction_count"`
	XPEarned          int        `json:"xp_earned"`
	StartedAt         time.Time  `json:"started_at"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`
	AmbientSound      *string    `json:"ambient_sound,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

// DummySession используется для приема данных новой сессии из JSON-запроса.
type DummySession struct {
	Type         string  `json:"type" validate:"required,oneof=focus break long_break"`
	Duration     int     `json:"duration" validate:"required,gt=0"`
	TaskID       *string `json:"task_id,omitempty" validate:"omitempty,uuid"`
	AmbientSound *string `json:"ambient_sound,omitempty"`
}

// SessionUpdate частичное обновление сессии, nil-поля не меняются.
type SessionUpdate struct {
	CompletedDuration *int       `json:"completed_duration,omitempty" validate:"omitempty,gte=0"`
	IsCompleted       *bool      `json:"is_completed,omitempty"`
	PauseCount        *int       `json:"pause_count,omitempty" validate:"omitempty,gte=0"`
	DistractionCount  *int       `json:"distraction_count,omitempty" validate:"omitempty,gte=0"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`
	XPEarned          *int       `json:"-"`
}

// AnalyticsSummary агрегаты по завершенным сессиям за период.
type AnalyticsSummary struct {
	TotalFocusTime    int `json:"total_focus_time"`
	TotalBreakTime    int `json:"total_break_time"`
	CompletedSessions int `json:"completed_sessions"`
	CompletedBreaks   int `json:"completed_breaks"`
}
