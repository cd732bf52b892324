package auth

import "errors"

var (
	// ErrInvalidCredentials covers unknown accounts, deactivated accounts,
	// and password mismatches alike. The single message resists account
	// enumeration.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrCodeInvalid indicates a missing, superseded, or mismatched code.
	ErrCodeInvalid = errors.New("invalid or expired verification code")
	// ErrCodeExpired indicates the code's validity window has passed.
	ErrCodeExpired = errors.New("verification code has expired, request a new one")
	// ErrCodeLockedOut indicates the attempt cap was reached; the code is
	// dead even for the correct digits.
	ErrCodeLockedOut = errors.New("too many failed attempts, request a new verification code")
	// ErrMailDelivery indicates the code could not be dispatched. Safe to
	// retry the login request.
	ErrMailDelivery = errors.New("failed to send verification code")
	// ErrTokenInvalid indicates a malformed, tampered, or expired session
	// token.
	ErrTokenInvalid = errors.New("invalid session token")
)
