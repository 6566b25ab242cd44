package models

import "time"

// Task элемент списка дел, к которому можно привязать сессии фокуса.
type Task struct {
	ID             string     `json:"id"`
	AccountID      string     `json:"account_id"`
	Title          string     `json:"title"`
	Description    *string    `json:"description,omitempty"`
	Priority       string     `json:"priority"`
	Category       string     `json:"category"`
	Tags           []string   `json:"tags"`
	IsCompleted    bool       `json:"is_completed"`
	TotalFocusTime int        `json:"total_focus_time"`
	SessionCount   int        `json:"session_count"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
}

// DummyTask используется для приема данных задачи из JSON-запроса.
type DummyTask struct {
	Title       string   `json:"title" validate:"required,max=200"`
	Description *string  `json:"description,omitempty"`
	Priority    string   `json:"priority" validate:"omitempty,oneof=low medium high"`
	Category    string   `json:"category" validate:"omitempty,max=64"`
	Tags        []string `json:"tags"`
}

// TaskUpdate частичное обновление задачи.
type TaskUpdate struct {
	Title       *string  `json:"title,omitempty" validate:"omitempty,max=200"`
	Description *string  `json:"description,omitempty"`
	Priority    *string  `json:"priority,omitempty" validate:"omitempty,oneof=low medium high"`
	Category    *string  `json:"category,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	IsCompleted *bool    `json:"is_completed,omitempty"`
}
