// Package token issues and verifies the signed bearer tokens that carry a
// user's identity and role claim between requests.
package token

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Lifetime is the fixed validity window of a session token. There is no
// refresh or grace period: a token is valid strictly before issuance+Lifetime
// and invalid from that instant on.
const Lifetime = 7 * 24 * time.Hour

// Identity is the claim set carried inside a session token.
type Identity struct {
	ID     int64  `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Avatar string `json:"avatar,omitempty"`
}

type sessionClaims struct {
	jwt.RegisteredClaims

	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Avatar string `json:"avatar,omitempty"`
}

// Codec signs and verifies session tokens using HMAC-SHA256. Claims are only
// trusted after the signature and expiry checks both pass.
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewCodec constructs a Codec. A non-positive ttl falls back to Lifetime.
func NewCodec(secret string, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = Lifetime
	}
	return &Codec{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// WithClock overrides the codec's time source. Used by tests to pin issuance
// and verification instants.
func (c *Codec) WithClock(now func() time.Time) *Codec {
	c.now = now
	return c
}

// TTL exposes the configured token lifetime.
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Issue creates a signed token for the given identity. Timestamps are whole
// seconds since epoch.
func (c *Codec) Issue(id Identity) (string, error) {
	issuedAt := c.now().Truncate(time.Second)
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatInt(id.ID, 10),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(c.ttl)),
		},
		Email:  id.Email,
		Name:   id.Name,
		Role:   id.Role,
		Avatar: id.Avatar,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Verify parses and validates a token, returning the embedded identity or nil.
// Malformed tokens, bad signatures, and expired tokens are indistinguishable
// to the caller: all yield nil.
func (c *Codec) Verify(raw string) *Identity {
	if raw == "" {
		return nil
	}
	var claims sessionClaims
	parsed, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil || !parsed.Valid {
		return nil
	}
	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil
	}
	return &Identity{
		ID:     userID,
		Email:  claims.Email,
		Name:   claims.Name,
		Role:   claims.Role,
		Avatar: claims.Avatar,
	}
}

// FromRequest extracts the bearer token from the Authorization header. A
// missing or malformed header yields an empty string, which Verify treats the
// same as an invalid token.
func FromRequest(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
