// Package session issues and validates signed session tokens for the HTTP
// API. Tokens are HS256 JWTs; the session record itself lives in the cache
// tier so a revoked or expired session dies server-side too.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token expired")
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrSessionRevoked   = errors.New("session revoked or expired server-side")
)

// SessionStore is the storage surface sessions need. Satisfied by the
// storage façade; all methods are fail-soft.
type SessionStore interface {
	SaveSession(ctx context.Context, sessionID string, v any) bool
	LoadSession(ctx context.Context, sessionID string, dest any) bool
	DeleteSession(ctx context.Context, sessionID string) bool
}

// Record is the server-side session document keyed by session ID.
type Record struct {
	SessionID string `json:"sessionId"`
	UserID    string `json:"userId"`
	Role      string `json:"role"`
	IssuedAt  int64  `json:"issuedAt"`
}

type Service interface {
	Issue(ctx context.Context, userID string, role Role) (string, error)
	Validate(ctx context.Context, tokenString string) (*Claims, error)
	Revoke(ctx context.Context, sessionID string) error
}

type service struct {
	secret []byte
	ttl    time.Duration
	store  SessionStore

	now func() time.Time
}

func NewService(secret string, ttl time.Duration, store SessionStore) Service {
	return &service{
		secret: []byte(secret),
		ttl:    ttl,
		store:  store,
		now:    time.Now,
	}
}

// Issue signs a new session token and persists the matching server-side
// record. A storage outage fails the issue: a token that cannot be revoked
// must never leave the building.
func (s *service) Issue(ctx context.Context, userID string, role Role) (string, error) {
	now := s.now()
	sessionID := uuid.NewString()

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Role: string(role),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	record := Record{
		SessionID: sessionID,
		UserID:    userID,
		Role:      string(role),
		IssuedAt:  now.UnixMilli(),
	}
	if !s.store.SaveSession(ctx, sessionID, record) {
		return "", errors.New("failed to persist session record")
	}

	return signedToken, nil
}

// Validate checks the token's signature and expiry, then confirms the
// session record still exists server-side.
func (s *service) Validate(ctx context.Context, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSignature
		}
		return s.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return nil, ErrInvalidSignature
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	var record Record
	if !s.store.LoadSession(ctx, claims.ID, &record) {
		return nil, ErrSessionRevoked
	}

	return claims, nil
}

// Revoke deletes the server-side record, invalidating every token bound to
// the session regardless of its remaining lifetime.
func (s *service) Revoke(ctx context.Context, sessionID string) error {
	if !s.store.DeleteSession(ctx, sessionID) {
		return errors.New("failed to delete session record")
	}
	return nil
}
