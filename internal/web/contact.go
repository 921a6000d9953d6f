package web

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"

	"github.com/vacmar/portfolio/internal/config"
)

// ErrMailNotConfigured is returned when SMTP credentials are missing.
var ErrMailNotConfigured = errors.New("SMTP credentials not configured")

// ContactMessage is one submission of the contact form.
type ContactMessage struct {
	Name    string `form:"fullName" binding:"required,max=200"`
	Email   string `form:"email" binding:"required,email,max=320"`
	Message string `form:"message" binding:"required,max=5000"`
}

// Mailer delivers contact messages.
type Mailer interface {
	Send(ctx context.Context, msg ContactMessage) error
}

// sendMailFunc matches smtp.SendMail.
type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPMailer relays contact messages through an SMTP server with plain auth.
type SMTPMailer struct {
	cfg      config.SMTP
	to       string
	log      *zap.Logger
	sendMail sendMailFunc
}

func NewSMTPMailer(cfg config.SMTP, to string, logger *zap.Logger) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, to: to, log: logger, sendMail: smtp.SendMail}
}

func (m *SMTPMailer) Send(ctx context.Context, msg ContactMessage) error {
	if !m.cfg.Configured() {
		return ErrMailNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host)
	addr := m.cfg.Host + ":" + m.cfg.Port
	if err := m.sendMail(addr, auth, m.cfg.User, []string{m.to}, m.compose(msg)); err != nil {
		m.log.Error("send contact email", zap.Error(err), zap.String("smtp", addr))
		return fmt.Errorf("send contact email: %w", err)
	}

	m.log.Info("contact email sent", zap.String("name", msg.Name), zap.String("email", msg.Email))
	return nil
}

func (m *SMTPMailer) compose(msg ContactMessage) []byte {
	subject := fmt.Sprintf("Portfolio Contact: %s", headerSafe(msg.Name))
	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Message:
%s

---
Sent from your portfolio contact form
`, msg.Name, msg.Email, msg.Message)

	return []byte("To: " + m.to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"From: " + m.cfg.User + "\r\n" +
		"Reply-To: " + headerSafe(msg.Email) + "\r\n" +
		"\r\n" +
		body + "\r\n")
}

// headerSafe drops line breaks so form input cannot inject mail headers.
func headerSafe(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}
