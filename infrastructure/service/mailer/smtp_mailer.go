package mailer

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/vobe/voicedesk/application/port/outbound"
	"github.com/vobe/voicedesk/infrastructure/service/logger"
)

// Config for SMTP delivery of password-reset mail.
type Config struct {
	Host          string
	Port          string
	User          string
	Password      string
	From          string
	ResetLinkBase string
}

type smtpMailer struct {
	cfg    Config
	logger logger.Logger
}

// NewMailSender returns an SMTP sender when a host is configured and a
// log-only sender otherwise, so development setups work without a relay.
func NewMailSender(cfg Config, log logger.Logger) outbound.MailSender {
	if cfg.Host == "" {
		log.Info(context.Background(), "SMTP host not configured, password reset mail will only be logged", nil)
		return &logMailer{cfg: cfg, logger: log}
	}
	return &smtpMailer{cfg: cfg, logger: log}
}

func (m *smtpMailer) SendPasswordReset(ctx context.Context, email, token string) error {
	body := fmt.Sprintf(
		"To: %s\r\nFrom: %s\r\nSubject: Password recovery\r\n\r\n"+
			"A password reset was requested for this address.\r\n"+
			"Open %s?token=%s to choose a new password.\r\n"+
			"The link expires; if you did not request it, ignore this mail.\r\n",
		email, m.cfg.From, m.cfg.ResetLinkBase, token,
	)

	addr := m.cfg.Host + ":" + m.cfg.Port
	var auth smtp.Auth
	if m.cfg.User != "" {
		auth = smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)
	}

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{email}, []byte(body)); err != nil {
		return fmt.Errorf("failed to send password reset mail: %w", err)
	}

	m.logger.Info(ctx, "password reset mail sent", map[string]interface{}{
		"email": email,
	})
	return nil
}

// logMailer writes the reset token to the log instead of sending mail.
type logMailer struct {
	cfg    Config
	logger logger.Logger
}

func (m *logMailer) SendPasswordReset(ctx context.Context, email, token string) error {
	m.logger.Info(ctx, "password reset requested (mail delivery disabled)", map[string]interface{}{
		"email":      email,
		"reset_link": fmt.Sprintf("%s?token=%s", m.cfg.ResetLinkBase, token),
	})
	return nil
}
