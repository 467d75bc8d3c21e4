package mail

import (
	"context"

	"business-hub-backend/internal/config"
)

//go:generate mockgen -source=sender.go -destination=../mocks/mail_mocks.go -package=mocks

// Sender delivers a plain text message to a list of recipients
type Sender interface {
	Send(ctx context.Context, subject, body string, to []string) error
}

// NewSender returns an SMTP sender when mail credentials are configured and
// a logging sender otherwise
func NewSender(cfg *config.Config) Sender {
	if cfg.MailEnabled() {
		return NewSMTPSender(SMTPConfig{
			Host:     cfg.MailServer,
			Port:     cfg.MailPort,
			Username: cfg.MailAddress,
			Password: cfg.MailPassword,
			From:     cfg.MailAddress,
		})
	}
	return NewLogSender()
}
