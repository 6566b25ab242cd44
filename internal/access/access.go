// Package access вычисляет право пользователя на премиум-функции:
// оплаченная подписка либо пробный период в семь дней с момента создания аккаунта.
//
// Evaluate не имеет побочных эффектов, текущее время передает вызывающий код.
package access

import (
	"errors"
	"math"
	"time"

	"github.com/magabrotheeeer/focuszen/internal/models"
)

// Day длительность суток, в которых считаются дни пробного периода.
const Day = 24 * time.Hour

// TrialWindow длительность пробного периода.
const TrialWindow = 7 * Day

// CodePremiumRequired маркер отказа, по которому клиент показывает предложение оформить подписку.
const CodePremiumRequired = "PREMIUM_REQUIRED"

// ErrPremiumRequired возвращается, когда пробный период истек, а подписки нет.
var ErrPremiumRequired = errors.New("premium feature access required, free trial has expired")

// Status результат проверки доступа.
type Status struct {
	HasAccess          bool `json:"has_access"`
	IsPremium          bool `json:"is_premium"`
	TrialDaysRemaining int  `json:"trial_days_remaining"`
	AccountAgeDays     int  `json:"account_age_days"`
}

// Evaluate решает, доступны ли аккаунту премиум-функции на момент now.
//
// Граница окна включительная: при elapsed == TrialWindow доступ еще есть.
// Нулевой CreatedAt означает ошибку программиста, функция паникует.
func Evaluate(account models.Account, now time.Time) Status {
	if account.CreatedAt.IsZero() {
		panic("access.Evaluate: account " + account.ID + " has no creation timestamp")
	}

	elapsed := now.Sub(account.CreatedAt)
	ageDays := 0
	if elapsed > 0 {
		ageDays = int(elapsed / Day)
	}

	if account.IsPremium {
		return Status{
			HasAccess:      true,
			IsPremium:      true,
			AccountAgeDays: ageDays,
		}
	}

	return Status{
		HasAccess:          elapsed <= TrialWindow,
		TrialDaysRemaining: daysRemaining(elapsed),
		AccountAgeDays:     ageDays,
	}
}

// Check возвращает ErrPremiumRequired, если доступа нет.
func Check(account models.Account, now time.Time) error {
	if !Evaluate(account, now).HasAccess {
		return ErrPremiumRequired
	}
	return nil
}

func daysRemaining(elapsed time.Duration) int {
	// часы сервера и БД могут расходиться, аккаунт "из будущего" считаем только что созданным
	if elapsed < 0 {
		elapsed = 0
	}
	left := TrialWindow - elapsed
	if left <= 0 {
		return 0
	}
	return int(math.Ceil(float64(left) / float64(Day)))
}
