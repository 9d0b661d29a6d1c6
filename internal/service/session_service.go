package service

import (
	"time"

	"github.com/concho-nutrition/storefront/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionService issues and verifies the anonymous shopping session
// tokens that scope cart state. Tokens are signed JWTs carrying a
// generated session ID.
type SessionService struct {
	secret      []byte
	expireHours int
}

// NewSessionService creates a session service.
func NewSessionService(cfg *config.SessionConfig) *SessionService {
	secret := "storefront-dev-secret"
	expireHours := 24 * 30
	if cfg != nil {
		if cfg.Secret != "" {
			secret = cfg.Secret
		}
		if cfg.ExpireHours > 0 {
			expireHours = cfg.ExpireHours
		}
	}
	return &SessionService{
		secret:      []byte(secret),
		expireHours: expireHours,
	}
}

// SessionClaims are the JWT claims of a shopping session token.
type SessionClaims struct {
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}

// Issue creates a new session and returns its token and expiry.
func (s *SessionService) Issue() (string, string, time.Time, error) {
	sessionID := uuid.NewString()
	expiresAt := time.Now().Add(time.Duration(s.expireHours) * time.Hour)

	claims := SessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", "", time.Time{}, err
	}
	return sessionID, tokenString, expiresAt, nil
}

// Verify parses a session token and returns its session ID.
func (s *SessionService) Verify(tokenString string) (string, error) {
	if tokenString == "" {
		return "", ErrSessionInvalid
	}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return "", ErrSessionInvalid
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.SessionID == "" {
		return "", ErrSessionInvalid
	}
	return claims.SessionID, nil
}
