package auth

import (
	"time"

	"github.com/awnumar/memguard"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/docsgate/docsgate/directory"
)

// DefaultSessionTTL is the token lifetime when none is configured.
const DefaultSessionTTL = 7 * 24 * time.Hour

// Claims is the session token payload: a minimal identity claim plus the
// registered expiry fields. No session state is kept server-side.
type Claims struct {
	UserID string         `json:"uid"`
	Email  string         `json:"email"`
	Name   string         `json:"name"`
	Role   directory.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenCodec mints and verifies HS256 session tokens. The signing secret is
// held in a memguard enclave and only materialized for the duration of a
// sign or verify call.
type TokenCodec struct {
	secret *memguard.Enclave
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenCodec creates a codec with the given signing secret and token
// lifetime. A non-positive ttl falls back to DefaultSessionTTL.
func NewTokenCodec(secret []byte, ttl time.Duration) *TokenCodec {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &TokenCodec{
		secret: memguard.NewEnclave(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// TTL returns the configured token lifetime.
func (c *TokenCodec) TTL() time.Duration { return c.ttl }

// Mint produces a signed session token for the account.
func (c *TokenCodec) Mint(u *directory.User) (string, error) {
	now := c.now()
	claims := Claims{
		UserID: u.ID,
		Email:  u.Email,
		Name:   u.Name,
		Role:   u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	buf, err := c.secret.Open()
	if err != nil {
		return "", err
	}
	defer buf.Destroy()
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(buf.Bytes())
}

// Verify checks the token's signature and expiry and returns the embedded
// claims. This is the authoritative verification path; any malformed input
// yields ErrTokenInvalid rather than a panic.
func (c *TokenCodec) Verify(token string) (*Claims, error) {
	buf, err := c.secret.Open()
	if err != nil {
		return nil, err
	}
	defer buf.Destroy()
	key := append([]byte(nil), buf.Bytes()...)

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// DecodeUnverified is the lightweight verification path for execution
// contexts without access to the signing secret: it decodes the token
// structurally and checks expiry only. It accepts every token Verify
// accepts, but does not check the signature — Verify remains the
// authoritative path and must guard every security-sensitive branch.
func DecodeUnverified(token string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, ErrTokenInvalid
	}
	if claims.ExpiresAt == nil || time.Now().After(claims.ExpiresAt.Time) {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
