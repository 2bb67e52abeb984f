package jobs

import (
	"fmt"
	"log/slog"
	"net/smtp"

	"github.com/jordan-wright/email"

	"github.com/fintrack-app/fintrack/config"
)

// Sender delivers alert emails via SMTP.
type Sender struct {
	cfg *config.Config
}

// NewSender creates an email sender from SMTP config.
func NewSender(cfg *config.Config) *Sender {
	return &Sender{cfg: cfg}
}

// Send delivers a plain-text email to the configured alert address.
func (s *Sender) Send(subject, body string) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{s.cfg.AlertEmail}
	e.Subject = subject
	e.Text = []byte(body)

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	var auth smtp.Auth
	if s.cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	}
	if err := e.Send(addr, auth); err != nil {
		return fmt.Errorf("sending email: %w", err)
	}
	slog.Info("email sent", "to", s.cfg.AlertEmail, "subject", subject)
	return nil
}
