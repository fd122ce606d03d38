// Package router sets up all HTTP routes and middleware chains for the
// inkpress API. Read endpoints are public; writes sit behind RequireAuth.
package router

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"inkpress/internal/handlers"
	"inkpress/internal/middleware"
)

// Options configures the router.
type Options struct {
	// Resolver turns bearer tokens into callers.
	Resolver middleware.CallerResolver
	// AllowedOrigins lists the browser origins allowed by CORS.
	AllowedOrigins []string
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(opts Options, blog *handlers.Blog, auth *handlers.Auth) chi.Router {
	r := chi.NewRouter()

	// Global middleware applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.CORS(opts.AllowedOrigins))
	r.Use(middleware.Authenticate(opts.Resolver))

	r.NotFound(notFoundHandler)
	r.MethodNotAllowed(methodNotAllowedHandler)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler)

		// Public reads.
		r.Get("/posts", blog.ListPosts)
		r.Get("/posts/{id}", blog.GetPost)
		r.Get("/categories", blog.ListCategories)
		r.Get("/comments/post/{postId}", blog.ListComments)

		r.Post("/auth/register", auth.Register)
		r.Post("/auth/login", auth.Login)

		// Authenticated writes.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)

			r.Post("/posts", blog.CreatePost)
			r.Put("/posts/{id}", blog.UpdatePost)
			r.Delete("/posts/{id}", blog.DeletePost)

			r.Post("/categories", blog.CreateCategory)
			r.Post("/comments", blog.CreateComment)

			r.Post("/auth/logout", auth.Logout)
			r.Get("/auth/me", auth.Me)
			r.Patch("/auth/me", auth.UpdateMe)
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "error": "Route not found"})
}

func methodNotAllowedHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"success": false, "error": "Method not allowed"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
