package models

import "time"

// Challenge общий челлендж сообщества.
type Challenge struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	TargetSessions int       `json:"target_sessions"`
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
	XPReward       int       `json:"xp_reward"`
}

// ChallengeProgress участие пользователя в челлендже.
type ChallengeProgress struct {
	AccountID       string     `json:"account_id"`
	ChallengeID     string     `json:"challenge_id"`
	CurrentSessions int        `json:"current_sessions"`
	IsCompleted     bool       `json:"is_completed"`
	JoinedAt        time.Time  `json:"joined_at"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
}

// ChallengeWithProgress челлендж вместе с прогрессом пользователя.
type ChallengeWithProgress struct {
	Challenge Challenge         `json:"challenge"`
	Progress  ChallengeProgress `json:"progress"`
}

// Контексты сообщений AI-коуча
const (
	ChatContextGeneral = "general"
	ChatContextPause   = "pause"
	ChatContextFail    = "fail"
)

// ChatMessage запись истории AI-чата.
type ChatMessage struct {
	ID            string    `json:"id"`
	AccountID     string    `json:"account_id"`
	SessionID     *string   `json:"session_id,omitempty"`
	Message       string    `json:"message"`
	IsUserMessage bool      `json:"is_user_message"`
	AIResponse    *string   `json:"ai_response,omitempty"`
	Context       string    `json:"context"`
	CreatedAt     time.Time `json:"created_at"`
}

// DummyChat запрос к AI-коучу.
type DummyChat struct {
	Message   string  `json:"message" validate:"required,max=2000"`
	Context   string  `json:"context" validate:"omitempty,oneof=general pause fail"`
	SessionID *string `json:"session_id,omitempty" validate:"omitempty,uuid"`
}

// ChatReply ответ AI-коуча.
type ChatReply struct {
	Response    string       `json:"response"`
	ChatMessage *ChatMessage `json:"chat_message"`
}

// ScreenUsageLog учет отвлечений во время сессии.
type ScreenUsageLog struct {
	ID               string    `json:"id"`
	AccountID        string    `json:"account_id"`
	SessionID        *string   `json:"session_id,omitempty" validate:"omitempty,uuid"`
	DistractionCount int       `json:"distraction_count" validate:"gte=0"`
	FocusTime        int       `json:"focus_time" validate:"gte=0"`
	AwayTime         int       `json:"away_time" validate:"gte=0"`
	CreatedAt        time.Time `json:"created_at"`
}

// ScreenUsageStats агрегаты по последним записям.
type ScreenUsageStats struct {
	Logs              []*ScreenUsageLog `json:"logs"`
	TotalDistractions int               `json:"total_distractions"`
	TotalFocusTime    int               `json:"total_focus_time"`
	TotalAwayTime     int               `json:"total_away_time"`
	FocusRatio        float64           `json:"focus_ratio"`
}

// MotivationalQuote мотивационная цитата.
type MotivationalQuote struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Author   string `json:"author"`
	Category string `json:"category"`
}
