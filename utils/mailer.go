package utils

import (
	"fmt"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"

	"feedloop/config"
)

// Notifier delivers a single outbound message. Implementations are
// best-effort: callers must treat failures as log-only events.
type Notifier interface {
	Notify(to, subject, body string) error
}

// Mailer sends plain-text mail over SMTP using the configured server.
type Mailer struct{}

func NewMailer() *Mailer {
	return &Mailer{}
}

func (m *Mailer) Notify(to, subject, body string) error {
	if config.AppConfig.SMTPHost == "" || config.AppConfig.SMTPUsername == "" {
		return fmt.Errorf("smtp is not configured")
	}

	from := config.AppConfig.FromEmail
	if from == "" {
		from = config.AppConfig.SMTPUsername
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	d := gomail.NewDialer(
		config.AppConfig.SMTPHost,
		config.AppConfig.SMTPPort,
		config.AppConfig.SMTPUsername,
		config.AppConfig.SMTPPassword,
	)

	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("error sending email: %w", err)
	}

	return nil
}

// NotifyAsync delivers the message in the background. Delivery failures
// are logged and reported to Sentry, never returned to the caller.
func NotifyAsync(n Notifier, to, subject, body string) {
	go func() {
		if err := n.Notify(to, subject, body); err != nil {
			logrus.WithFields(logrus.Fields{
				"to":      to,
				"subject": subject,
			}).WithError(err).Warn("notification delivery failed")
			sentry.CaptureException(err)
		}
	}()
}
