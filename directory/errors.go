package directory

import "errors"

var (
	// ErrUnauthorized indicates the caller's role does not permit the
	// attempted directory operation.
	ErrUnauthorized = errors.New("administrator role required")
	// ErrEmailTaken indicates an account already exists for the email.
	ErrEmailTaken = errors.New("user with this email already exists")
	// ErrNotFound indicates no account matches the given identifier.
	ErrNotFound = errors.New("user not found")
	// ErrInvalidRole indicates a role outside the recognized set.
	ErrInvalidRole = errors.New("invalid role")
)
