package mail

import (
	"context"

	"business-hub-backend/internal/logger"
)

// LogSender writes messages to the log instead of delivering them
type LogSender struct{}

// NewLogSender creates a new logging sender
func NewLogSender() *LogSender {
	return &LogSender{}
}

// Send logs the message
func (s *LogSender) Send(ctx context.Context, subject, body string, to []string) error {
	logger.WithContext(ctx).WithFields(map[string]interface{}{
		"subject": subject,
		"to":      to,
		"body":    body,
	}).Info("Mail delivery disabled, logging message")
	return nil
}
