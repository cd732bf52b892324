package directory

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

type seedAccount struct {
	Email    string
	Name     string
	Password string
	Role     Role
}

// Demo accounts created when the directory is empty. The passwords are
// well-known development defaults; deactivate or replace these accounts
// before exposing a server.
var seedAccounts = []seedAccount{
	{Email: "admin@example.com", Name: "System Administrator", Password: "admin123", Role: RoleAdmin},
	{Email: "member@example.com", Name: "Team Member", Password: "member123", Role: RoleMember},
	{Email: "customer@example.com", Name: "Customer User", Password: "customer123", Role: RoleCustomer},
}

// Seed bootstraps the demo account set when the directory is empty. It is a
// no-op otherwise, so it is safe to run on every server start.
func (s *Service) Seed(ctx context.Context) ([]PublicUser, error) {
	if len(s.users.All(ctx)) > 0 {
		return nil, nil
	}

	created := make([]PublicUser, 0, len(seedAccounts))
	for _, acct := range seedAccounts {
		hash, err := bcrypt.GenerateFromPassword([]byte(acct.Password), bcryptCost)
		if err != nil {
			return created, fmt.Errorf("hashing seed password: %w", err)
		}
		user, err := s.users.Insert(ctx, &User{
			Email:        acct.Email,
			Name:         acct.Name,
			PasswordHash: string(hash),
			Role:         acct.Role,
			Active:       true,
		})
		if err != nil {
			return created, fmt.Errorf("seeding account %s: %w", acct.Email, err)
		}
		created = append(created, user.Public())
	}
	s.logger.Info("seeded default accounts", "count", len(created))
	return created, nil
}
