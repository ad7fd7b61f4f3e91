package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/booknest-api/internal/types"
)

func TestHashPassword(t *testing.T) {
	digest, err := HashPassword("p")
	require.NoError(t, err)

	assert.NotEqual(t, "p", digest)
	assert.True(t, strings.HasPrefix(digest, "$2a$"), "bcrypt digest, got %q", digest)
	assert.True(t, VerifyPassword("p", digest))
	assert.False(t, VerifyPassword("wrong", digest))
}

func TestHashPassword_Salted(t *testing.T) {
	a, err := HashPassword("same")
	require.NoError(t, err)
	b, err := HashPassword("same")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.True(t, VerifyPassword("same", a))
	assert.True(t, VerifyPassword("same", b))
}

func TestHashPassword_InvalidInput(t *testing.T) {
	_, err := HashPassword("")
	assert.ErrorIs(t, err, ErrEmptyPassword)

	_, err = HashPassword(strings.Repeat("x", 73))
	assert.ErrorIs(t, err, ErrPasswordTooLong)

	_, err = HashPassword(strings.Repeat("x", 72))
	assert.NoError(t, err)
}

func TestVerifyPassword_MalformedDigest(t *testing.T) {
	assert.False(t, VerifyPassword("p", ""))
	assert.False(t, VerifyPassword("p", "not-a-digest"))
	assert.False(t, VerifyPassword("p", "p"), "plaintext is never a valid digest")
}

var alice = types.Student{ID: 7, Name: "Alice", Email: "alice@example.com"}

func newService(t *testing.T, ttl time.Duration) *TokenService {
	t.Helper()
	s, err := NewTokenService("test-secret", ttl)
	require.NoError(t, err)
	return s
}

func TestNewTokenService_MissingSecret(t *testing.T) {
	_, err := NewTokenService("", time.Hour)
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestIssueAndVerify(t *testing.T) {
	s := newService(t, 2*time.Hour)

	token, err := s.Issue(alice)
	require.NoError(t, err)

	claims, err := s.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.ID)
	assert.Equal(t, "Alice", claims.Name)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "7", claims.Subject)
	assert.WithinDuration(t, claims.IssuedAt.Add(2*time.Hour), claims.ExpiresAt.Time, time.Second)
}

func TestVerify_Expired(t *testing.T) {
	s := newService(t, time.Hour)
	issuedAt := time.Now().Add(-2 * time.Hour)
	s.now = func() time.Time { return issuedAt }

	token, err := s.Issue(alice)
	require.NoError(t, err)

	s.now = time.Now
	_, err = s.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
	assert.NotErrorIs(t, err, ErrTokenInvalid)
}

func TestVerify_WrongSecret(t *testing.T) {
	token, err := newService(t, time.Hour).Issue(alice)
	require.NoError(t, err)

	other, err := NewTokenService("another-secret", time.Hour)
	require.NoError(t, err)

	_, err = other.Verify(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerify_ExpiredAndForged(t *testing.T) {
	forger, err := NewTokenService("another-secret", time.Hour)
	require.NoError(t, err)
	forger.now = func() time.Time { return time.Now().Add(-3 * time.Hour) }

	token, err := forger.Issue(alice)
	require.NoError(t, err)

	_, err = newService(t, time.Hour).Verify(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
	assert.NotErrorIs(t, err, ErrTokenExpired)
}

func TestVerify_Garbage(t *testing.T) {
	s := newService(t, time.Hour)

	for _, token := range []string{"", "abc", "a.b.c"} {
		_, err := s.Verify(token)
		assert.ErrorIs(t, err, ErrTokenInvalid, token)
	}
}

func TestVerify_RejectsOtherAlgorithms(t *testing.T) {
	claims := Claims{
		ID: alice.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = newService(t, time.Hour).Verify(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerify_RequiresExpiry(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{ID: 1}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = newService(t, time.Hour).Verify(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
