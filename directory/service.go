package directory

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/docsgate/docsgate/internal/util"
	"github.com/docsgate/docsgate/mail"
	"github.com/docsgate/docsgate/storage"
)

// UsersCollection is the storage collection name for directory entries.
const UsersCollection = "users"

const (
	bcryptCost        = 12
	generatedPassword = 16
)

// Service implements the directory operations. Admin-gated methods take the
// caller's resolved role and fail with ErrUnauthorized before any other
// validation.
type Service struct {
	users  *storage.Collection[*User]
	mailer mail.Mailer
	logger *slog.Logger
}

// NewService creates a directory Service over the given users collection.
func NewService(users *storage.Collection[*User], mailer mail.Mailer, logger *slog.Logger) *Service {
	return &Service{
		users:  users,
		mailer: mailer,
		logger: logger.With("component", "directory"),
	}
}

// FindByEmail returns the account for the case-normalized email.
func (s *Service) FindByEmail(ctx context.Context, email string) (*User, bool) {
	email = util.NormalizeEmail(email)
	return s.users.Find(ctx, func(u *User) bool { return u.Email == email })
}

// FindByID returns the account with the given id.
func (s *Service) FindByID(ctx context.Context, id string) (*User, bool) {
	return s.users.Get(ctx, id)
}

// RecordLogin stamps the account's last successful login time.
func (s *Service) RecordLogin(ctx context.Context, id string, at time.Time) error {
	_, ok, err := s.users.Update(ctx, id, func(u *User) {
		t := at.UTC()
		u.LastLogin = &t
	})
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// List returns every account in redacted form. Caller must be admin.
func (s *Service) List(ctx context.Context, callerRole Role) ([]PublicUser, error) {
	if callerRole != RoleAdmin {
		return nil, ErrUnauthorized
	}
	users := s.users.All(ctx)
	out := make([]PublicUser, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return out, nil
}

// Create adds a new account. When password is empty a random one is
// generated. The plaintext is emailed to the new account exactly once and is
// never stored or retrievable afterward. Caller must be admin.
func (s *Service) Create(ctx context.Context, callerRole Role, email, name string, role Role, password string) (PublicUser, error) {
	if callerRole != RoleAdmin {
		return PublicUser{}, ErrUnauthorized
	}
	if !role.Valid() {
		return PublicUser{}, ErrInvalidRole
	}
	email = util.NormalizeEmail(email)
	if _, exists := s.FindByEmail(ctx, email); exists {
		return PublicUser{}, ErrEmailTaken
	}

	if password == "" {
		generated, err := util.RandomPassword(generatedPassword)
		if err != nil {
			return PublicUser{}, fmt.Errorf("generating password: %w", err)
		}
		password = generated
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return PublicUser{}, fmt.Errorf("hashing password: %w", err)
	}

	user, err := s.users.Insert(ctx, &User{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		Role:         role,
		Active:       true,
	})
	if err != nil {
		return PublicUser{}, err
	}

	// Welcome delivery is best-effort: the account exists either way, and
	// an admin can reset by recreating the user.
	if err := s.mailer.SendWelcome(ctx, user.Email, user.Name, string(user.Role), password); err != nil {
		s.logger.Error("sending welcome email", "email", user.Email, "error", err)
	}

	return user.Public(), nil
}

// SetActive flips the account's active flag. Caller must be admin.
func (s *Service) SetActive(ctx context.Context, callerRole Role, id string, active bool) (PublicUser, error) {
	if callerRole != RoleAdmin {
		return PublicUser{}, ErrUnauthorized
	}
	user, ok, err := s.users.Update(ctx, id, func(u *User) {
		u.Active = active
	})
	if err != nil {
		return PublicUser{}, err
	}
	if !ok {
		return PublicUser{}, ErrNotFound
	}
	return user.Public(), nil
}

// Delete removes the account. Caller must be admin.
func (s *Service) Delete(ctx context.Context, callerRole Role, id string) error {
	if callerRole != RoleAdmin {
		return ErrUnauthorized
	}
	removed, err := s.users.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return ErrNotFound
	}
	return nil
}
