// Package token issues and verifies the signed session tokens that carry
// a logged-in account's public identity between requests.
package token

import (
	"errors"
	"fmt"
	"time"

	"motors/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

// SessionTTL is the fixed lifetime of a session token. It is a design
// constant, not user-controllable configuration.
const SessionTTL = time.Hour

var (
	// ErrInvalid is the single outcome callers see for any verification
	// failure. The tagged variants below all match it with errors.Is.
	ErrInvalid = errors.New("invalid session token")
	// ErrExpired indicates the token's expiration instant has passed.
	ErrExpired = fmt.Errorf("%w: expired", ErrInvalid)
	// ErrTampered indicates the signature did not verify.
	ErrTampered = fmt.Errorf("%w: signature mismatch", ErrInvalid)
	// ErrMalformed indicates the token could not be parsed at all.
	ErrMalformed = fmt.Errorf("%w: malformed", ErrInvalid)
)

type claims struct {
	AccountID int64  `json:"uid"`
	FirstName string `json:"fn"`
	LastName  string `json:"ln"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// Codec signs and verifies session tokens with a process-wide HS256
// secret. It is immutable after construction and safe for concurrent use.
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewCodec creates a Codec. The secret must be non-empty; a missing
// secret is a startup misconfiguration, not a per-request condition.
func NewCodec(secret string) (*Codec, error) {
	if secret == "" {
		return nil, errors.New("token: signing secret is required")
	}
	return &Codec{secret: []byte(secret), ttl: SessionTTL, now: time.Now}, nil
}

// TTL returns the fixed token lifetime.
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Issue serializes the identity into a signed token expiring at
// issue-time + TTL. The claims never include the password hash; the
// Identity type cannot carry one.
func (c *Codec) Issue(id domain.Identity) (string, error) {
	now := c.now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		AccountID: id.ID,
		FirstName: id.FirstName,
		LastName:  id.LastName,
		Email:     id.Email,
		Role:      string(id.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	})
	signed, err := t.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("token: sign: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and then the expiration of tokenString and
// returns the embedded identity. Failures are tagged (ErrTampered,
// ErrExpired, ErrMalformed) but every one of them matches ErrInvalid, and
// callers should not distinguish further than that.
func (c *Codec) Verify(tokenString string) (domain.Identity, error) {
	var cl claims
	t, err := jwt.ParseWithClaims(tokenString, &cl,
		func(t *jwt.Token) (any, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
	)
	switch {
	case err == nil && t.Valid:
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return domain.Identity{}, ErrTampered
	case errors.Is(err, jwt.ErrTokenExpired):
		return domain.Identity{}, ErrExpired
	default:
		return domain.Identity{}, ErrMalformed
	}

	return domain.Identity{
		ID:        cl.AccountID,
		FirstName: cl.FirstName,
		LastName:  cl.LastName,
		Email:     cl.Email,
		Role:      domain.ParseRole(cl.Role),
	}, nil
}
