package mailer

import (
	"fmt"
	"net/smtp"

	"github.com/kevinblo/fwords-backend/internal/config"
	"github.com/kevinblo/fwords-backend/pkg/logger"
)

// Mailer sends account emails over plain SMTP. Without an SMTP host
// configured it logs the activation link instead, which is enough for
// development setups.
type Mailer struct {
	cfg config.MailConfig
	log *logger.Logger
}

// New creates a mailer
func New(cfg config.MailConfig, log *logger.Logger) *Mailer {
	return &Mailer{cfg: cfg, log: log}
}

// SendActivation delivers the account activation link for the given token
func (m *Mailer) SendActivation(email, token string) error {
	link := fmt.Sprintf("%s/api/v1/auth/activate/%s", m.cfg.BaseURL, token)

	if m.cfg.SMTPHost == "" {
		m.log.Info("smtp not configured, activation link logged",
			"email", email, "link", link)
		return nil
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: Activate your account\r\n\r\n"+
		"Welcome! Follow this link to activate your account:\r\n%s\r\n",
		m.cfg.From, email, link)

	addr := m.cfg.SMTPHost + ":" + m.cfg.SMTPPort
	if err := smtp.SendMail(addr, nil, m.cfg.From, []string{email}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send activation email: %v", err)
	}
	return nil
}
