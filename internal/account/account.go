// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package account registers users, exchanges credentials for bearer
// tokens and manages the caller's own profile. Errors wrap the blog
// error kinds so the HTTP layer maps them the same way.
package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"inkpress/internal/blog"
	"inkpress/internal/models"
)

// UserRepository is the user storage the account service needs.
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	// Create returns blog.ErrDuplicate when the email or username is taken.
	Create(ctx context.Context, u *models.User) error
	UpdateAvatar(ctx context.Context, id uuid.UUID, avatar *string) error
}

// TokenIssuer mints and revokes bearer tokens.
type TokenIssuer interface {
	Issue(ctx context.Context, userID uuid.UUID) (string, error)
	Revoke(ctx context.Context, token string) error
}

// RegisterInput is the body of a registration request.
type RegisterInput struct {
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Avatar   *string `json:"avatar,omitempty"`
}

// LoginInput is the body of a login request.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfileInput is the body of a profile update. Only the avatar is
// editable; an empty string removes it.
type ProfileInput struct {
	Avatar *string `json:"avatar"`
}

// Session is what register and login hand back to the client.
type Session struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// Service implements the account operations.
type Service struct {
	users  UserRepository
	tokens TokenIssuer
	cost   int
	now    func() time.Time
}

// Option customises a Service.
type Option func(*Service)

// WithBcryptCost overrides bcrypt.DefaultCost.
func WithBcryptCost(cost int) Option {
	return func(s *Service) { s.cost = cost }
}

// NewService creates an account service.
func NewService(users UserRepository, tokens TokenIssuer, opts ...Option) *Service {
	s := &Service{
		users:  users,
		tokens: tokens,
		cost:   bcrypt.DefaultCost,
		now:    func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates a user and signs them in.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)
	if msg := validateRegistration(username, email, in.Password); msg != "" {
		return nil, fmt.Errorf("%w: %s", blog.ErrValidation, msg)
	}
	avatar, msg := normalizeAvatar(in.Avatar)
	if msg != "" {
		return nil, fmt.Errorf("%w: %s", blog.ErrValidation, msg)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Avatar:       avatar,
		CreatedAt:    s.now(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, blog.ErrDuplicate) {
			return nil, fmt.Errorf("%w: username or email is already registered", blog.ErrValidation)
		}
		return nil, fmt.Errorf("%w: create user: %w", blog.ErrStoreUnavailable, err)
	}

	return s.signIn(ctx, user)
}

// Login checks the credentials and issues a new token. Unknown emails
// and wrong passwords fail the same way.
func (s *Service) Login(ctx context.Context, in LoginInput) (*Session, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", blog.ErrValidation)
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%w: find user: %w", blog.ErrStoreUnavailable, err)
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		return nil, fmt.Errorf("%w: invalid email or password", blog.ErrUnauthenticated)
	}

	return s.signIn(ctx, user)
}

func (s *Service) signIn(ctx context.Context, user *models.User) (*Session, error) {
	token, err := s.tokens.Issue(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: issue token: %w", blog.ErrStoreUnavailable, err)
	}
	return &Session{User: user, Token: token}, nil
}

// Logout revokes token. The caller must already be authenticated.
func (s *Service) Logout(ctx context.Context, caller *models.Identity, token string) error {
	if err := blog.RequireCaller(caller); err != nil {
		return err
	}
	if err := s.tokens.Revoke(ctx, token); err != nil {
		return fmt.Errorf("%w: revoke token: %w", blog.ErrStoreUnavailable, err)
	}
	return nil
}

// Me returns the caller's full user record.
func (s *Service) Me(ctx context.Context, caller *models.Identity) (*models.User, error) {
	if err := blog.RequireCaller(caller); err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, caller.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: find user: %w", blog.ErrStoreUnavailable, err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user", blog.ErrNotFound)
	}
	return user, nil
}

// UpdateProfile applies in to the caller's record and returns the result.
func (s *Service) UpdateProfile(ctx context.Context, caller *models.Identity, in ProfileInput) (*models.User, error) {
	if err := blog.RequireCaller(caller); err != nil {
		return nil, err
	}
	if in.Avatar == nil {
		return s.Me(ctx, caller)
	}
	avatar, msg := normalizeAvatar(in.Avatar)
	if msg != "" {
		return nil, fmt.Errorf("%w: %s", blog.ErrValidation, msg)
	}

	user, err := s.Me(ctx, caller)
	if err != nil {
		return nil, err
	}
	if err := s.users.UpdateAvatar(ctx, user.ID, avatar); err != nil {
		return nil, fmt.Errorf("%w: update avatar: %w", blog.ErrStoreUnavailable, err)
	}
	user.Avatar = avatar
	return user, nil
}
