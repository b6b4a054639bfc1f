package token

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"motors/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testIdentity() domain.Identity {
	return domain.Identity{
		ID:        7,
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "a@example.com",
		Role:      domain.RoleEmployee,
	}
}

func TestNewCodecRequiresSecret(t *testing.T) {
	_, err := NewCodec("")
	require.Error(t, err)
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	c, err := NewCodec("test-secret")
	require.NoError(t, err)

	id := testIdentity()
	s, err := c.Issue(id)
	require.NoError(t, err)

	got, err := c.Verify(s)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestVerifyRejectsExpired(t *testing.T) {
	c, err := NewCodec("test-secret")
	require.NoError(t, err)

	issued := time.Now()
	c.now = func() time.Time { return issued }
	s, err := c.Issue(testIdentity())
	require.NoError(t, err)

	c.now = func() time.Time { return issued.Add(SessionTTL + time.Minute) }
	_, err = c.Verify(s)
	require.ErrorIs(t, err, ErrExpired)
	require.ErrorIs(t, err, ErrInvalid)
}

func TestVerifyAcceptsJustBeforeExpiry(t *testing.T) {
	c, err := NewCodec("test-secret")
	require.NoError(t, err)

	issued := time.Now()
	c.now = func() time.Time { return issued }
	s, err := c.Issue(testIdentity())
	require.NoError(t, err)

	c.now = func() time.Time { return issued.Add(SessionTTL - time.Second) }
	got, err := c.Verify(s)
	require.NoError(t, err)
	assert.Equal(t, testIdentity(), got)
}

func TestVerifyRejectsTamperedSignature(t *testing.T) {
	c, err := NewCodec("test-secret")
	require.NoError(t, err)

	s, err := c.Issue(testIdentity())
	require.NoError(t, err)

	parts := strings.Split(s, ".")
	require.Len(t, parts, 3)
	sig, err := base64.RawURLEncoding.DecodeString(parts[2])
	require.NoError(t, err)

	// Flip every bit position in turn; each corruption must fail verification.
	for i := range sig {
		for bit := 0; bit < 8; bit++ {
			bad := make([]byte, len(sig))
			copy(bad, sig)
			bad[i] ^= 1 << bit
			tampered := parts[0] + "." + parts[1] + "." + base64.RawURLEncoding.EncodeToString(bad)
			_, err := c.Verify(tampered)
			assert.ErrorIs(t, err, ErrInvalid, "bit %d of byte %d", bit, i)
		}
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	a, err := NewCodec("secret-a")
	require.NoError(t, err)
	b, err := NewCodec("secret-b")
	require.NoError(t, err)

	s, err := a.Issue(testIdentity())
	require.NoError(t, err)

	_, err = b.Verify(s)
	require.ErrorIs(t, err, ErrTampered)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	c, err := NewCodec("test-secret")
	require.NoError(t, err)

	for _, s := range []string{"", "not-a-token", "a.b", "a.b.c.d"} {
		_, err := c.Verify(s)
		assert.ErrorIs(t, err, ErrMalformed, "input %q", s)
	}
}

func TestClaimsNeverCarryPasswordHash(t *testing.T) {
	c, err := NewCodec("test-secret")
	require.NoError(t, err)

	s, err := c.Issue(testIdentity())
	require.NoError(t, err)

	parts := strings.Split(s, ".")
	require.Len(t, parts, 3)
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)
	assert.NotContains(t, strings.ToLower(string(payload)), "password")
	assert.NotContains(t, strings.ToLower(string(payload)), "hash")
}

func TestUnknownRoleFailsClosed(t *testing.T) {
	got := domain.ParseRole("Superuser")
	assert.Equal(t, domain.RoleClient, got)
	assert.False(t, got.Elevated())
}
