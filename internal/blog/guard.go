// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package blog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"inkpress/internal/models"
)

// Guard resolves bearer credentials to caller identities.
type Guard struct {
	tokens TokenVerifier
	users  UserRepository
}

// NewGuard creates a Guard that verifies tokens with tokens and loads the
// resulting user from users.
func NewGuard(tokens TokenVerifier, users UserRepository) *Guard {
	return &Guard{tokens: tokens, users: users}
}

// ResolveCaller returns the identity a credential belongs to. An empty,
// invalid, or orphaned credential yields ErrUnauthenticated; a verifier
// or store failure yields ErrStoreUnavailable.
func (g *Guard) ResolveCaller(ctx context.Context, credential string) (*models.Identity, error) {
	if credential == "" {
		return nil, fmt.Errorf("%w: no credential", ErrUnauthenticated)
	}

	userID, err := g.tokens.Verify(ctx, credential)
	if errors.Is(err, ErrInvalidCredential) {
		return nil, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}
	if err != nil {
		return nil, storeErr("verify credential", err)
	}

	user, err := g.users.FindByID(ctx, userID)
	if err != nil {
		return nil, storeErr("load caller", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: credential user no longer exists", ErrUnauthenticated)
	}
	return user.Identity(), nil
}

// RequireCaller fails with ErrUnauthenticated when no caller was resolved.
func RequireCaller(caller *models.Identity) error {
	if caller == nil {
		return fmt.Errorf("%w: authentication required", ErrUnauthenticated)
	}
	return nil
}

// AssertOwner fails with ErrForbidden unless caller is the author. It must
// only be called after the resource is known to exist.
func AssertOwner(caller *models.Identity, authorID uuid.UUID) error {
	if err := RequireCaller(caller); err != nil {
		return err
	}
	if caller.ID != authorID {
		return fmt.Errorf("%w: only the author may modify this resource", ErrForbidden)
	}
	return nil
}
