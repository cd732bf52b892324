package auth

import (
	"fmt"
	"time"

	"github.com/docsgate/docsgate/internal/util"
)

// OTPCollection is the storage collection name for one-time passcodes.
const OTPCollection = "one-time-passcodes"

// maxAttempts caps verification attempts per code. Once reached the code is
// dead regardless of correctness and a new one must be requested.
const maxAttempts = 3

// OTP is a short-lived login credential delivered over email. The JSON
// names match the on-disk collection layout.
type OTP struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expiresAt"`
	Attempts  int       `json:"attempts"`
	Used      bool      `json:"isUsed"`
	CreatedAt time.Time `json:"createdAt"`
}

func (o *OTP) EntityID() string { return o.ID }

func (o *OTP) StampNew(id string, createdAt time.Time) {
	o.ID = id
	o.CreatedAt = createdAt
}

// Expired reports whether the code's validity window has passed.
func (o *OTP) Expired(now time.Time) bool {
	return now.After(o.ExpiresAt)
}

// generateCode returns a uniform random 6-digit code in [100000, 999999].
func generateCode() (string, error) {
	n, err := util.RandomIntn(900000)
	if err != nil {
		return "", fmt.Errorf("generating verification code: %w", err)
	}
	return fmt.Sprintf("%06d", 100000+n), nil
}
