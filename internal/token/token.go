// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package token issues and verifies HS256-signed JWT bearer tokens.
// Revoked tokens are kept on a blacklist until they would have expired;
// the blacklist lives in Valkey when a client is configured and in
// process memory otherwise.
package token

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"inkpress/internal/blog"
)

// DefaultTTL is the lifetime of a token when none is configured.
const DefaultTTL = 24 * time.Hour

const blacklistPrefix = "jwt:blacklist:"

// Claims is the JWT payload. The subject carries the user id and the
// token id makes every issued token unique.
type Claims struct {
	jwt.RegisteredClaims
}

// Manager signs, verifies and revokes tokens.
type Manager struct {
	secret []byte
	ttl    time.Duration
	redis  *redis.Client
	now    func() time.Time

	mu      sync.Mutex
	revoked map[string]time.Time
}

// NewManager creates a manager signing with secret. A nil client keeps
// the blacklist in memory.
func NewManager(secret string, ttl time.Duration, client *redis.Client) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{
		secret:  []byte(secret),
		ttl:     ttl,
		redis:   client,
		now:     time.Now,
		revoked: make(map[string]time.Time),
	}
}

// TTL returns the lifetime given to new tokens.
func (m *Manager) TTL() time.Duration { return m.ttl }

// Issue signs a new token for userID.
func (m *Manager) Issue(_ context.Context, userID uuid.UUID) (string, error) {
	now := m.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// parse validates the signature and expiry of raw.
func (m *Manager) parse(raw string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !token.Valid {
		return nil, blog.ErrInvalidCredential
	}
	return claims, nil
}

// Verify returns the user id carried by raw. Malformed, expired,
// tampered and revoked tokens yield blog.ErrInvalidCredential; a
// blacklist lookup failure is returned as is.
func (m *Manager) Verify(ctx context.Context, raw string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, blog.ErrInvalidCredential
	}
	claims, err := m.parse(raw)
	if err != nil {
		return uuid.Nil, err
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, blog.ErrInvalidCredential
	}

	revoked, err := m.isRevoked(ctx, claims.ID)
	if err != nil {
		return uuid.Nil, err
	}
	if revoked {
		return uuid.Nil, blog.ErrInvalidCredential
	}
	return userID, nil
}

// Revoke blacklists raw until its expiry. Tokens that are already
// invalid need no entry and are ignored.
func (m *Manager) Revoke(ctx context.Context, raw string) error {
	claims, err := m.parse(raw)
	if err != nil {
		return nil
	}
	expiresAt := claims.ExpiresAt.Time
	ttl := expiresAt.Sub(m.now())
	if ttl <= 0 {
		return nil
	}

	if m.redis != nil {
		if err := m.redis.Set(ctx, blacklistPrefix+claims.ID, "revoked", ttl).Err(); err != nil {
			return fmt.Errorf("revoke token: %w", err)
		}
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.revoked[claims.ID] = expiresAt
	m.pruneLocked()
	return nil
}

func (m *Manager) isRevoked(ctx context.Context, id string) (bool, error) {
	if m.redis != nil {
		n, err := m.redis.Exists(ctx, blacklistPrefix+id).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return false, fmt.Errorf("check token blacklist: %w", err)
		}
		return n == 1, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.revoked[id]
	return ok, nil
}

// pruneLocked drops blacklist entries for tokens that have expired anyway.
func (m *Manager) pruneLocked() {
	now := m.now()
	for id, exp := range m.revoked {
		if !exp.After(now) {
			delete(m.revoked, id)
		}
	}
}
