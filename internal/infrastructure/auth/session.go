package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/velora/storefront/internal/infrastructure/config"
)

// Common errors
var (
	ErrInvalidToken = errors.New("invalid session token")
	ErrExpiredToken = errors.New("session token has expired")
)

// SessionClaims are the signed claims in a session cookie. Sessions are
// anonymous; SessionID is the only identity until the customer signs in
// upstream.
type SessionClaims struct {
	jwt.RegisteredClaims
	SessionID string `json:"session_id"`
}

// SessionTokenService signs and verifies the anonymous session cookie
type SessionTokenService struct {
	secret     []byte
	expiration time.Duration
	issuer     string
}

// NewSessionTokenService creates a session token service
func NewSessionTokenService(cfg config.SessionConfig) *SessionTokenService {
	return &SessionTokenService{
		secret:     []byte(cfg.Secret),
		expiration: cfg.Expiration,
		issuer:     cfg.Issuer,
	}
}

// Issue creates a fresh session id and its signed token
func (s *SessionTokenService) Issue() (sessionID, token string, err error) {
	sessionID = uuid.NewString()
	token, err = s.IssueFor(sessionID)
	return sessionID, token, err
}

// IssueFor signs a token for an existing session id, used to roll the
// cookie expiry on active sessions.
func (s *SessionTokenService) IssueFor(sessionID string) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   sessionID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
			ID:        uuid.NewString(),
		},
		SessionID: sessionID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify parses and validates a session token, returning the session id
func (s *SessionTokenService) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpiredToken
		}
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.SessionID == "" {
		return "", ErrInvalidToken
	}
	return claims.SessionID, nil
}
