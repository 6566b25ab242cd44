// Package models содержит доменные структуры приложения: аккаунт, сессии таймера,
// серии, задачи, игровые данные и вспомогательные типы для приема JSON-запросов.
package models

import "time"

// Account представляет пользователя, созданного при первом входе через провайдера идентификации.
// CreatedAt неизменяем и служит точкой отсчета пробного периода.
type Account struct {
	ID                   string    `json:"id"`
	Email                *string   `json:"email,omitempty"`
	FirstName            *string   `json:"first_name,omitempty"`
	LastName             *string   `json:"last_name,omitempty"`
	ProfileImageURL      *string   `json:"profile_image_url,omitempty"`
	StripeCustomerID     *string   `json:"stripe_customer_id,omitempty"`
	StripeSubscriptionID *string   `json:"stripe_subscription_id,omitempty"`
	IsPremium            bool      `json:"is_premium"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// Identity данные, которые провайдер идентификации кладет в токен.
type Identity struct {
	Subject         string
	Email           string
	FirstName       string
	LastName        string
	ProfileImageURL string
}

// DisplayName возвращает имя для биллинга, при его отсутствии email.
func (a *Account) DisplayName() string {
	var name string
	if a.FirstName != nil {
		name = *a.FirstName
	}
	if a.LastName != nil {
		if name != "" {
			name += " "
		}
		name += *a.LastName
	}
	if name == "" && a.Email != nil {
		return *a.Email
	}
	return name
}

// TrialNotice сообщение для воркера рассылки о скором окончании пробного периода.
type TrialNotice struct {
	AccountID     string `json:"account_id"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	DaysRemaining int    `json:"days_remaining"`
}

// ReminderNotice сообщение с ежедневным напоминанием о цели.
type ReminderNotice struct {
	AccountID     string `json:"account_id"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	CurrentStreak int    `json:"current_streak"`
	DailyGoal     int    `json:"daily_goal"`
}

// SubscriptionIntent данные для подтверждения оплаты подписки на клиенте.
type SubscriptionIntent struct {
	SubscriptionID string `json:"subscription_id"`
	ClientSecret   string `json:"client_secret,omitempty"`
	Status         string `json:"status"`
}
