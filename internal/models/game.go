package models

import "time"

// XPPerLevel количество опыта на один уровень.
const XPPerLevel = 100

// GameData опыт и уровень пользователя.
type GameData struct {
	AccountID             string    `json:"account_id"`
	TotalXP               int       `json:"total_xp"`
	CurrentLevel          int       `json:"current_level"`
	XPToNextLevel         int       `json:"xp_to_next_level"`
	CompletedAchievements []string  `json:"completed_achievements"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// Achievement достижение из каталога.
type Achievement struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	XPReward    int    `json:"xp_reward"`
	Icon        string `json:"icon"`
	Category    string `json:"category"`
	Requirement int    `json:"requirement"`
}

// GameProfile ответ эндпоинта профиля.
type GameProfile struct {
	GameData     *GameData      `json:"game_data"`
	Achievements []*Achievement `json:"achievements"`
}

// DummyXP запрос на начисление опыта.
type DummyXP struct {
	XP int `json:"xp" validate:"required,gt=0,lte=1000"`
}

// ApplyXP пересчитывает уровень после начисления опыта.
func (g *GameData) ApplyXP(xp int) {
	g.TotalXP += xp
	g.CurrentLevel = g.TotalXP/XPPerLevel + 1
	g.XPToNextLevel = g.CurrentLevel*XPPerLevel - g.TotalXP
}
