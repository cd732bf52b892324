package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
	"time"
)

// SMTPConfig carries the transport settings for outbound email.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	AppName  string
	// OTPTTL is rendered into the verification email so the stated expiry
	// matches the service's actual code lifetime.
	OTPTTL time.Duration
}

// SMTPMailer sends email over plain SMTP with optional AUTH PLAIN.
type SMTPMailer struct {
	cfg  SMTPConfig
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

var _ Mailer = (*SMTPMailer)(nil)

// NewSMTP creates a Mailer using the given transport settings.
func NewSMTP(cfg SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, send: smtp.SendMail}
}

// Configured reports whether a transport host is set.
func (m *SMTPMailer) Configured() bool {
	return m.cfg.Host != ""
}

func (m *SMTPMailer) SendOTP(ctx context.Context, to, name, code string) error {
	body, err := renderOTP(otpEmail{
		AppName:       m.cfg.AppName,
		Name:          name,
		Code:          code,
		ExpiryMinutes: int(m.cfg.OTPTTL.Minutes()),
		Year:          time.Now().Year(),
	})
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("%s - Login Verification Code", m.cfg.AppName)
	return m.deliver(to, subject, body)
}

func (m *SMTPMailer) SendWelcome(ctx context.Context, to, name, role, password string) error {
	body, err := renderWelcome(welcomeEmail{
		AppName: m.cfg.AppName,
		Name:    name,
		Role:    strings.ToUpper(role),
		// Credentials always name the account's own address; it is both
		// the credential and the delivery target.
		Email:    to,
		Password: password,
		Year:     time.Now().Year(),
	})
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("Welcome to %s", m.cfg.AppName)
	return m.deliver(to, subject, body)
}

func (m *SMTPMailer) deliver(to, subject, htmlBody string) error {
	if !m.Configured() {
		return fmt.Errorf("mail transport not configured")
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", m.cfg.From)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}
	if err := m.send(addr, auth, m.cfg.From, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("sending email to %s: %w", to, err)
	}
	return nil
}
