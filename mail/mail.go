// Package mail delivers the portal's transactional email: login codes and
// welcome messages for newly created accounts.
package mail

import (
	"context"
	"log/slog"
)

// Mailer is the outbound email collaborator. Implementations must not log
// the code or password values they are given.
type Mailer interface {
	// SendOTP delivers a login verification code to the account's email.
	SendOTP(ctx context.Context, to, name, code string) error
	// SendWelcome delivers the initial credentials for a new account. The
	// plaintext password is sent exactly once and cannot be recovered later.
	SendWelcome(ctx context.Context, to, name, role, password string) error
}

// LogMailer is the fallback when no SMTP transport is configured. It records
// that a delivery was attempted, without the secret content, so development
// servers stay usable.
type LogMailer struct {
	Logger *slog.Logger
}

var _ Mailer = (*LogMailer)(nil)

func (m *LogMailer) SendOTP(ctx context.Context, to, name, code string) error {
	m.Logger.Info("smtp not configured, suppressing verification code email", "to", to)
	return nil
}

func (m *LogMailer) SendWelcome(ctx context.Context, to, name, role, password string) error {
	m.Logger.Info("smtp not configured, suppressing welcome email", "to", to, "role", role)
	return nil
}
