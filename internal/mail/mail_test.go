package mail

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"

	"business-hub-backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSMTPSenderSend(t *testing.T) {
	s := NewSMTPSender(SMTPConfig{Host: "smtp.example.com", Port: 587, Username: "noreply@example.com", Password: "pw", From: "noreply@example.com"})

	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg string
	s.sendMail = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, string(msg)
		return nil
	}

	err := s.Send(context.Background(), "Invitation link", "http://localhost/join?token=abc", []string{"bob@x.com"})
	require.NoError(t, err)

	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, "noreply@example.com", gotFrom)
	assert.Equal(t, []string{"bob@x.com"}, gotTo)
	assert.Contains(t, gotMsg, "Subject: Invitation link\r\n")
	assert.True(t, strings.HasSuffix(gotMsg, "\r\n\r\nhttp://localhost/join?token=abc"))
}

func TestSMTPSenderErrors(t *testing.T) {
	s := NewSMTPSender(SMTPConfig{Host: "smtp.example.com", Port: 587})
	s.sendMail = func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("connection refused")
	}

	assert.Error(t, s.Send(context.Background(), "s", "b", nil))

	err := s.Send(context.Background(), "s", "b", []string{"bob@x.com"})
	assert.ErrorContains(t, err, "connection refused")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.Send(ctx, "s", "b", []string{"bob@x.com"}), context.Canceled)
}

func TestNewSender(t *testing.T) {
	cfg := &config.Config{MailPort: 587}
	assert.IsType(t, &LogSender{}, NewSender(cfg))

	cfg.MailServer = "smtp.example.com"
	cfg.MailAddress = "noreply@example.com"
	assert.IsType(t, &SMTPSender{}, NewSender(cfg))
}

func TestLogSender(t *testing.T) {
	assert.NoError(t, NewLogSender().Send(context.Background(), "s", "b", []string{"a@example.com"}))
}
