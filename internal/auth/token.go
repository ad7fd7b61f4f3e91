package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/aanand-mishra/booknest-api/internal/types"
)

var (
	// ErrMissingSecret is returned when no signing secret is configured.
	ErrMissingSecret = errors.New("token signing secret is not set")

	// ErrTokenInvalid covers bad signatures, wrong algorithms and garbage input.
	ErrTokenInvalid = errors.New("invalid token")

	// ErrTokenExpired is returned for a well-signed token past its expiry.
	ErrTokenExpired = errors.New("token expired")
)

// Claims is the identity carried inside a session token.
type Claims struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 session tokens.
// Tokens are not stored anywhere; they stay valid until they expire.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService creates a token service signing with secret.
func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// TTL returns the configured token lifetime.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue creates a signed token for student that expires after the TTL.
func (s *TokenService) Issue(student types.Student) (string, error) {
	now := s.now()
	claims := Claims{
		ID:    student.ID,
		Name:  student.Name,
		Email: student.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(student.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify parses token and returns its claims. Expiry is reported as
// ErrTokenExpired, every other failure as ErrTokenInvalid.
func (s *TokenService) Verify(token string) (*Claims, error) {
	var claims Claims
	_, err := s.parse(token, &claims,
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	switch {
	case err == nil:
		return &claims, nil
	case errors.Is(err, jwt.ErrTokenExpired):
		// Claims may be checked before the signature; only a genuine
		// token gets to be called expired.
		if _, err := s.parse(token, &Claims{}, jwt.WithoutClaimsValidation()); err != nil {
			return nil, errors.Join(ErrTokenInvalid, err)
		}
		return nil, ErrTokenExpired
	default:
		return nil, errors.Join(ErrTokenInvalid, err)
	}
}

func (s *TokenService) parse(token string, claims *Claims, opts ...jwt.ParserOption) (*jwt.Token, error) {
	opts = append(opts, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	return jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		opts...)
}
