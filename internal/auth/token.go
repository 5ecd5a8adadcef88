package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenEntropy is the number of random bytes carried in each token's jti.
const tokenEntropy = 32

var errNoSecret = errors.New("secret not configured")

// Claims is the token payload. Subject holds the user id.
type Claims struct {
	jwt.RegisteredClaims
}

// Tokens mints and verifies HS256 bearer tokens. A zero TTL issues tokens
// without an expiry.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokens(secret string, ttl time.Duration) *Tokens {
	return &Tokens{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Generate returns a fresh signed token for userID.
func (t *Tokens) Generate(userID string) (string, error) {
	if len(t.secret) == 0 {
		return "", errNoSecret
	}

	raw := make([]byte, tokenEntropy)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("token entropy: %w", err)
	}

	now := t.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       hex.EncodeToString(raw),
			Subject:  userID,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if t.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(t.ttl))
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", err
	}
	return signed, nil
}

// Verify checks the signature (and expiry, when a TTL is configured) and
// returns the claims.
func (t *Tokens) Verify(tokenStr string) (*Claims, error) {
	if len(t.secret) == 0 {
		return nil, errNoSecret
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithTimeFunc(t.now),
	}
	if t.ttl > 0 {
		opts = append(opts, jwt.WithExpirationRequired())
	}

	var claims Claims
	_, err := jwt.NewParser(opts...).ParseWithClaims(tokenStr, &claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	})
	if err != nil {
		return nil, err
	}

	if claims.Subject == "" || claims.ID == "" {
		return nil, errors.New("token missing subject")
	}
	return &claims, nil
}
