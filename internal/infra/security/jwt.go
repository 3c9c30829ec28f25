package security

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenExpired     = errors.New("access token expired")
	ErrTokenInvalid     = errors.New("access token invalid")
	ErrSigningKeyEmpty  = errors.New("jwt signing secret is empty")
	ErrTokenSubjectMiss = errors.New("access token missing subject")
)

// AccessTokenClaims is the payload carried by every issued access token.
type AccessTokenClaims struct {
	AccountID string `json:"id"`
	Email     string `json:"email"`
	jwt.RegisteredClaims
}

// TokenIssuer mints and parses HS256 access tokens.
type TokenIssuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret, issuer string, ttl time.Duration) (*TokenIssuer, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrSigningKeyEmpty
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("jwt ttl must be positive, got %s", ttl)
	}
	return &TokenIssuer{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// WithClock overrides the time source, for tests.
func (t *TokenIssuer) WithClock(now func() time.Time) *TokenIssuer {
	t.now = now
	return t
}

func (t *TokenIssuer) Issue(accountID, email string) (string, error) {
	now := t.now()
	claims := AccessTokenClaims{
		AccountID: accountID,
		Email:     email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.issuer,
			Subject:   accountID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return signed, nil
}

// Parse validates signature and lifetime. Expiry is reported distinctly
// from every other failure so callers can tell the account holder to
// log in again rather than treating the token as forged.
func (t *TokenIssuer) Parse(raw string) (*AccessTokenClaims, error) {
	claims := &AccessTokenClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", token.Method.Alg())
		}
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if claims.AccountID == "" {
		return nil, ErrTokenSubjectMiss
	}
	return claims, nil
}
