package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"crewpay/internal/config"
)

// ErrInvalidToken is returned when the provider-issued token fails
// verification (bad signature, expired, wrong issuer or audience).
var ErrInvalidToken = errors.New("invalid or expired token")

// Principal is the authenticated identity derived from a verified credential.
type Principal struct {
	Email string
	Name  string
}

// Verifier validates a bearer credential and yields the principal it was
// issued to. Every protected request re-verifies; results are not cached.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Principal, error)
}

// Claims carries the provider's registered claims plus the identity fields
// this service consumes.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Name  string `json:"name"`
}

// TokenVerifier verifies HS256 tokens against the provider's shared secret.
type TokenVerifier struct {
	secret   []byte
	issuer   string
	audience string
}

func NewTokenVerifier(cfg *config.Config) *TokenVerifier {
	return &TokenVerifier{
		secret:   []byte(cfg.Auth.TokenSecret),
		issuer:   cfg.Auth.Issuer,
		audience: cfg.Auth.Audience,
	}
}

// Verify checks signature, expiry and, when configured, issuer and audience.
// The email claim is required; a token without one identifies nobody.
func (v *TokenVerifier) Verify(_ context.Context, tokenString string) (*Principal, error) {
	claims := &Claims{}

	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{"HS256"})}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}
	if v.audience != "" {
		opts = append(opts, jwt.WithAudience(v.audience))
	}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Email == "" {
		return nil, fmt.Errorf("%w: token carries no email claim", ErrInvalidToken)
	}

	return &Principal{Email: claims.Email, Name: claims.Name}, nil
}
