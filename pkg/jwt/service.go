package jwt

import (
	"time"
)

const defaultExpiry = 24 * time.Hour

// Service issues and validates tokens with a fixed secret and lifetime
type Service struct {
	secret []byte
	expiry time.Duration
}

// NewService creates a new token service
func NewService(secret string, expiry time.Duration) *Service {
	if expiry == 0 {
		expiry = defaultExpiry
	}
	return &Service{
		secret: []byte(secret),
		expiry: expiry,
	}
}

// GenerateToken issues a token for a user
func (s *Service) GenerateToken(userID uint, email string) (string, error) {
	return Generate(s.secret, userID, email, s.expiry)
}

// ValidateToken validates a token and returns the claims
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	return Validate(s.secret, tokenString)
}
