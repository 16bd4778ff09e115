package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pkordes/actorvote/internal/domain"
)

// Values of the "role" claim.
const (
	RoleClaimUser  = "user"
	RoleClaimAdmin = "admin"
)

// Claims is the JWT payload carried by access tokens.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies access tokens with a shared HMAC secret.
type TokenService struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// NewTokenService returns a TokenService for the given secret and issuer.
func NewTokenService(secret []byte, issuer string) *TokenService {
	return &TokenService{secret: secret, issuer: issuer, now: time.Now}
}

// Issue mints a token for subject valid for ttl. Only Authenticated and
// Admin roles can be encoded; an anonymous token makes no sense.
func (s *TokenService) Issue(subject string, role Role, ttl time.Duration) (string, error) {
	if subject == "" {
		return "", errors.New("auth.TokenService.Issue: subject is required")
	}

	var roleClaim string
	switch role {
	case Admin:
		roleClaim = RoleClaimAdmin
	case Authenticated:
		roleClaim = RoleClaimUser
	default:
		return "", fmt.Errorf("auth.TokenService.Issue: cannot issue a token for role %s", role)
	}

	now := s.now()
	claims := Claims{
		Role: roleClaim,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth.TokenService.Issue: %w", err)
	}
	return signed, nil
}

// Verify checks the signature, issuer and expiry of raw and returns the
// identity it names. Every failure wraps domain.ErrUnauthenticated.
func (s *TokenService) Verify(raw string) (Identity, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Identity{}, fmt.Errorf("%w: token expired", domain.ErrUnauthenticated)
		}
		return Identity{}, fmt.Errorf("%w: invalid token", domain.ErrUnauthenticated)
	}

	if claims.Subject == "" {
		return Identity{}, fmt.Errorf("%w: missing subject", domain.ErrUnauthenticated)
	}

	id := Identity{Subject: claims.Subject, Role: Authenticated}
	if claims.Role == RoleClaimAdmin {
		id.Role = Admin
	}
	return id, nil
}
