package smtp

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/focuszen/internal/lib/sl"
)

// Mailer собирает plain-text письмо и отправляет его через транспорт.
type Mailer struct {
	transport TransportInterface
	log       *slog.Logger
}

// NewMailer создает Mailer.
func NewMailer(transport TransportInterface, log *slog.Logger) *Mailer {
	return &Mailer{transport: transport, log: log}
}

// BuildMessage формирует заголовки и тело письма.
func BuildMessage(from string, to []string, subject, body string) string {
	return strings.Join([]string{
		"From: " + from,
		"To: " + strings.Join(to, ";"),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		body,
	}, "\r\n")
}

// Send отправляет письмо получателям to.
func (m *Mailer) Send(to []string, subject, body string) error {
	const op = "smtp.Send"
	log := m.log.With(slog.String("op", op))

	from := m.transport.GetSMTPUser()
	msg := BuildMessage(from, to, subject, body)

	client, err := m.transport.Connect()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Mail(from); err != nil {
		log.Error("failed to set MAIL FROM", slog.String("from", from), sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			log.Error("failed to set RCPT TO", slog.String("recipient", addr), sl.Err(err))
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	wc, err := client.Data()
	if err != nil {
		log.Error("failed to get Data writer", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	if _, err = wc.Write([]byte(msg)); err != nil {
		log.Error("failed to write email body", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	if err = wc.Close(); err != nil {
		log.Error("failed to close Data writer", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	if err = client.Quit(); err != nil {
		log.Error("failed to quit SMTP client", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("email sent successfully", slog.Any("to", to))
	return nil
}
