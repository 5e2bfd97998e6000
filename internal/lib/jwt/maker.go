// Package jwt implements generation and parsing of JWT tokens with
// custom claim fields used by the MetrikaPRO API.
package jwt

import (
	"time"
)

// Maker describes the interface for generating and parsing JWT tokens.
type Maker interface {
	// GenerateToken creates a signed token carrying username, role and user UID.
	GenerateToken(username, role, userUID string) (string, error)
	// ParseToken verifies the signature and returns the embedded claims.
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl implements Maker using an HMAC secret key and a token TTL.
type MakerImpl struct {
	secretKey string
	tokenTTL  time.Duration
}

// NewJWTMaker creates a MakerImpl from a secret key and TTL.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}
