package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/studentregistry/registry-api/internal/core/domain"
)

const defaultTokenTTL = 24 * time.Hour

// TokenCodec issues and validates stateless HS256 bearer tokens. The signing
// key is process-wide and read-only after startup; there is no revocation
// list, expiry is the only invalidation.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenCodec(secret string, ttl time.Duration) *TokenCodec {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenCodec{secret: []byte(secret), ttl: ttl}
}

// Issue produces a signed token carrying the subject and role claim with a
// fixed expiry window.
func (c *TokenCodec) Issue(subject, role string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(c.ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// parse verifies the signature and structure only. Expired tokens still
// decode: the middleware needs the subject before deciding validity, and
// Validate is where expiry is enforced.
func (c *TokenCodec) parse(token string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	}, jwt.WithoutClaimsValidation())
	if err != nil {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}

// ParseSubject decodes the subject claim without requiring a prior session.
func (c *TokenCodec) ParseSubject(token string) (string, error) {
	claims, err := c.parse(token)
	if err != nil {
		return "", err
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", domain.ErrInvalidToken
	}
	return sub, nil
}

// ParseRole decodes the role claim. An absent role returns an empty string
// with no error; the middleware treats that as an anonymous request.
func (c *TokenCodec) ParseRole(token string) (string, error) {
	claims, err := c.parse(token)
	if err != nil {
		return "", err
	}
	role, _ := claims["role"].(string)
	return role, nil
}

// Validate reports whether the token verifies, is unexpired, and is bound to
// the expected subject.
func (c *TokenCodec) Validate(token, expectedSubject string) bool {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil || !tkn.Valid {
		return false
	}
	sub, _ := claims["sub"].(string)
	return sub != "" && sub == expectedSubject
}
