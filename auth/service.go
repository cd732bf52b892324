// Package auth implements the login flow: password check, one-time passcode
// issuance and verification, and session token handling.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/docsgate/docsgate/directory"
	"github.com/docsgate/docsgate/internal/util"
	"github.com/docsgate/docsgate/mail"
	"github.com/docsgate/docsgate/storage"
)

// DefaultOTPTTL is the code lifetime when none is configured.
const DefaultOTPTTL = 5 * time.Minute

// Service drives the two-step login: RequestCode issues a passcode after a
// successful password check, VerifyCode exchanges the passcode for a session
// token.
type Service struct {
	users  *directory.Service
	otps   *storage.Collection[*OTP]
	mailer mail.Mailer
	codec  *TokenCodec
	otpTTL time.Duration
	logger *slog.Logger
	now    func() time.Time
}

// Option configures the Service.
type Option func(*Service)

// WithOTPTTL overrides the passcode lifetime.
func WithOTPTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.otpTTL = ttl
		}
	}
}

// WithClock overrides the time source. Used by tests to drive expiry.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates the credential service.
func NewService(users *directory.Service, otps *storage.Collection[*OTP], mailer mail.Mailer, codec *TokenCodec, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		users:  users,
		otps:   otps,
		mailer: mailer,
		codec:  codec,
		otpTTL: DefaultOTPTTL,
		logger: logger.With("component", "auth"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Codec returns the session token codec.
func (s *Service) Codec() *TokenCodec { return s.codec }

// RequestCode validates the password and, on success, issues a passcode and
// dispatches it to the account's email. Unknown accounts, deactivated
// accounts, and wrong passwords all fail with ErrInvalidCredentials.
func (s *Service) RequestCode(ctx context.Context, email, password string) error {
	email = util.NormalizeEmail(email)

	user, ok := s.users.FindByEmail(ctx, email)
	if !ok || !user.Active {
		s.logger.Info("login rejected", "email", email, "reason", "unknown or inactive account")
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Info("login rejected", "email", email, "reason", "password mismatch")
		return ErrInvalidCredentials
	}

	code, err := generateCode()
	if err != nil {
		return err
	}
	otp := &OTP{
		Email:     email,
		Code:      code,
		ExpiresAt: s.now().Add(s.otpTTL),
	}
	// Issuing supersedes everything previously stored for this email; codes
	// for other emails are kept until their own next issuance.
	_, err = s.otps.InsertPruned(ctx, otp, func(o *OTP) bool { return o.Email != email })
	if err != nil {
		return fmt.Errorf("storing verification code: %w", err)
	}

	if err := s.mailer.SendOTP(ctx, user.Email, user.Name, code); err != nil {
		// The stored code is unusable without delivery; the caller retries
		// and a fresh issuance supersedes it.
		s.logger.Error("dispatching verification code", "email", email, "error", err)
		return ErrMailDelivery
	}

	s.logger.Info("verification code issued", "email", email)
	return nil
}

// VerifyCode checks the submitted passcode and, on success, marks it used,
// records the login, and returns a session token with the account's public
// view. A code verifies at most once; after maxAttempts failures even the
// correct digits are rejected.
func (s *Service) VerifyCode(ctx context.Context, email, code string) (string, directory.PublicUser, error) {
	email = util.NormalizeEmail(email)

	user, ok := s.users.FindByEmail(ctx, email)
	if !ok {
		return "", directory.PublicUser{}, directory.ErrNotFound
	}
	// Deactivation takes effect immediately, including for codes issued
	// while the account was still active.
	if !user.Active {
		s.logger.Info("verification rejected", "email", email, "reason", "inactive account")
		return "", directory.PublicUser{}, ErrInvalidCredentials
	}

	otp, ok := s.currentOTP(ctx, email)
	if !ok {
		return "", directory.PublicUser{}, ErrCodeInvalid
	}
	now := s.now()
	if otp.Expired(now) {
		return "", directory.PublicUser{}, ErrCodeExpired
	}
	if otp.Attempts >= maxAttempts {
		s.logger.Info("verification locked out", "email", email)
		return "", directory.PublicUser{}, ErrCodeLockedOut
	}
	if otp.Code != code {
		if _, _, err := s.otps.Update(ctx, otp.ID, func(o *OTP) { o.Attempts++ }); err != nil {
			return "", directory.PublicUser{}, fmt.Errorf("recording failed attempt: %w", err)
		}
		return "", directory.PublicUser{}, ErrCodeInvalid
	}

	if _, _, err := s.otps.Update(ctx, otp.ID, func(o *OTP) { o.Used = true }); err != nil {
		return "", directory.PublicUser{}, fmt.Errorf("consuming verification code: %w", err)
	}
	if err := s.users.RecordLogin(ctx, user.ID, now); err != nil {
		s.logger.Error("recording last login", "email", email, "error", err)
	}

	token, err := s.codec.Mint(user)
	if err != nil {
		return "", directory.PublicUser{}, fmt.Errorf("minting session token: %w", err)
	}

	s.logger.Info("login verified", "email", email)
	return token, user.Public(), nil
}

// currentOTP returns the most recently issued unused code for the email.
// Expiry is checked by the caller so the failure can carry the
// expiry-specific message.
func (s *Service) currentOTP(ctx context.Context, email string) (*OTP, bool) {
	var newest *OTP
	for _, o := range s.otps.All(ctx) {
		if o.Email != email || o.Used {
			continue
		}
		if newest == nil || o.CreatedAt.After(newest.CreatedAt) {
			newest = o
		}
	}
	return newest, newest != nil
}
