// Package sender превращает уведомления из очередей в письма.
package sender

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/focuszen/internal/lib/sl"
	"github.com/magabrotheeeer/focuszen/internal/models"
)

// Mailer отправляет текстовое письмо.
type Mailer interface {
	Send(to []string, subject, body string) error
}

// SenderService обработчики сообщений очередей уведомлений.
type SenderService struct {
	mailer Mailer
	log    *slog.Logger
}

// NewSenderService создает новый экземпляр SenderService.
func NewSenderService(mailer Mailer, log *slog.Logger) *SenderService {
	return &SenderService{
		mailer: mailer,
		log:    log,
	}
}

// SendTrialEnding письмо о последнем дне пробного периода.
func (s *SenderService) SendTrialEnding(body []byte) error {
	var message models.TrialNotice
	if err := json.Unmarshal(body, &message); err != nil {
		s.log.Error("failed to unmarshal message body", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	subject := "Your FocusZen trial ends tomorrow"
	text := fmt.Sprintf("Hi %s,\r\n\r\n"+
		"Your free FocusZen trial ends in %d day. Tasks, the AI coach, screen usage insights "+
		"and community challenges stay available with a premium subscription.\r\n\r\n"+
		"You can subscribe any time from the app settings.",
		greeting(message.Name), message.DaysRemaining)

	return s.mailer.Send([]string{message.Email}, subject, text)
}

// SendDailyReminder напоминание о дневной цели.
func (s *SenderService) SendDailyReminder(body []byte) error {
	var message models.ReminderNotice
	if err := json.Unmarshal(body, &message); err != nil {
		s.log.Error("failed to unmarshal message body", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	subject := "Time for a focus session"
	text := fmt.Sprintf("Hi %s,\r\n\r\nYour daily goal is %d focus sessions.", greeting(message.Name), message.DailyGoal)
	if message.CurrentStreak > 0 {
		text += fmt.Sprintf(" Complete it today to keep your %d-day streak going.", message.CurrentStreak)
	}

	return s.mailer.Send([]string{message.Email}, subject, text)
}

func greeting(name string) string {
	if name == "" {
		return "there"
	}
	return name
}
