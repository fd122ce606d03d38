package handlers

import (
	"log/slog"
	"net/http"

	"inkpress/internal/account"
	"inkpress/internal/middleware"
)

// Auth groups all authentication-related HTTP handlers.
type Auth struct {
	accounts *account.Service
}

// NewAuth creates a new Auth handler group.
func NewAuth(accounts *account.Service) *Auth {
	return &Auth{accounts: accounts}
}

// Register handles POST /api/auth/register.
func (a *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var in account.RegisterInput
	if err := decodeJSON(w, r, &in); err != nil {
		respondError(w, r, err)
		return
	}

	sess, err := a.accounts.Register(r.Context(), in)
	if err != nil {
		respondError(w, r, err)
		return
	}

	slog.Info("user registered", "user_id", sess.User.ID, "username", sess.User.Username)
	respond(w, http.StatusCreated, sess)
}

// Login handles POST /api/auth/login.
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var in account.LoginInput
	if err := decodeJSON(w, r, &in); err != nil {
		respondError(w, r, err)
		return
	}

	sess, err := a.accounts.Login(r.Context(), in)
	if err != nil {
		respondError(w, r, err)
		return
	}

	slog.Info("user logged in", "user_id", sess.User.ID)
	respond(w, http.StatusOK, sess)
}

// Logout revokes the bearer token used for the request.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	caller := middleware.IdentityFromCtx(r.Context())
	if err := a.accounts.Logout(r.Context(), caller, middleware.TokenFromCtx(r.Context())); err != nil {
		respondError(w, r, err)
		return
	}
	respondMessage(w, "Logged out successfully")
}

// Me returns the authenticated user.
func (a *Auth) Me(w http.ResponseWriter, r *http.Request) {
	user, err := a.accounts.Me(r.Context(), middleware.IdentityFromCtx(r.Context()))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, user)
}

// UpdateMe handles PATCH /api/auth/me.
func (a *Auth) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var in account.ProfileInput
	if err := decodeJSON(w, r, &in); err != nil {
		respondError(w, r, err)
		return
	}

	user, err := a.accounts.UpdateProfile(r.Context(), middleware.IdentityFromCtx(r.Context()), in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, user)
}
