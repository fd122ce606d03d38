// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package blog

import (
	"errors"
	"fmt"
)

// Error kinds returned by the service. Every error a Service method
// returns wraps exactly one of these; callers branch with errors.Is.
var (
	// ErrValidation reports malformed or missing input.
	ErrValidation = errors.New("validation error")
	// ErrUnauthenticated reports a missing or invalid caller credential.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden reports a valid caller that does not own the resource.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound reports a referenced entity that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrStoreUnavailable reports a persistence failure.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// ErrDuplicate is returned by repositories when a uniqueness constraint
// rejects a write. The service converts it to ErrValidation.
var ErrDuplicate = errors.New("duplicate")

// ErrInvalidCredential is returned by a TokenVerifier when the token is
// malformed, expired, revoked, or unknown. Any other verifier error is
// treated as an outage.
var ErrInvalidCredential = errors.New("invalid credential")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func notFound(what string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, what)
}

// storeErr wraps a repository failure so that it is never mistaken for a
// client error.
func storeErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStoreUnavailable, op, err)
}
