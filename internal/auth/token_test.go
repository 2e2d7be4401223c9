package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshmart/supermarket-service/internal/domain"
)

const testSecret = "token-manager-test-secret-32-bytes!"

func TestIssueAndParseRoundTrip(t *testing.T) {
	tm := NewTokenManager(testSecret, 15*time.Minute)

	cases := []struct {
		subject string
		role    domain.Role
	}{
		{"alice", domain.RoleAdmin},
		{"bob", domain.RoleSeller},
		{"carol", domain.RoleCustomer},
	}

	for _, tc := range cases {
		token, exp, err := tm.Issue(tc.subject, tc.role)
		require.NoError(t, err)
		require.NotEmpty(t, token)
		assert.WithinDuration(t, time.Now().Add(15*time.Minute), exp, 5*time.Second)

		claims, err := tm.Parse(token)
		require.NoError(t, err)
		assert.Equal(t, tc.subject, claims.Subject)
		assert.Equal(t, string(tc.role), claims.Role)
		assert.False(t, claims.Expired(time.Now()))
	}
}

func TestParseRejectsForeignKey(t *testing.T) {
	issuer := NewTokenManager(testSecret, 15*time.Minute)
	verifier := NewTokenManager("another-secret-key-also-32-bytes!!!", 15*time.Minute)

	token, _, err := issuer.Issue("alice", domain.RoleCustomer)
	require.NoError(t, err)

	_, err = verifier.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestParseRejectsGarbage(t *testing.T) {
	tm := NewTokenManager(testSecret, 15*time.Minute)

	for _, raw := range []string{"", "not-a-token", "a.b", "a.b.c.d"} {
		_, err := tm.Parse(raw)
		assert.ErrorIs(t, err, ErrMalformed, "input %q", raw)
	}
}

func TestParseKeepsExpiredTokenDistinguishable(t *testing.T) {
	tm := NewTokenManager(testSecret, 15*time.Minute)

	issued := time.Now().Add(-time.Hour)
	claims := &Claims{
		Role: string(domain.RoleSeller),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "alice",
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(issued.Add(15 * time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	// Signature is valid, so parsing succeeds; expiry is the caller's check.
	parsed, err := tm.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", parsed.Subject)
	assert.True(t, parsed.Expired(time.Now()))
}

func TestExpiryComparisonIsStrict(t *testing.T) {
	exp := time.Now()
	claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
	}}

	boundary := claims.ExpiresAt.Time
	assert.False(t, claims.Expired(boundary))
	assert.True(t, claims.Expired(boundary.Add(time.Second)))
}

func TestClaimsWithoutExpiryAreExpired(t *testing.T) {
	claims := &Claims{}
	assert.True(t, claims.Expired(time.Now()))
}
