// Package main is the entry point for the Inkpress blog API server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"inkpress/internal/account"
	"inkpress/internal/blog"
	"inkpress/internal/cache"
	"inkpress/internal/config"
	"inkpress/internal/database"
	"inkpress/internal/handlers"
	"inkpress/internal/router"
	"inkpress/internal/session"
	"inkpress/internal/store"
	"inkpress/internal/store/memstore"
	"inkpress/internal/token"
)

// repositories groups the persistence backends chosen by STORE_BACKEND.
type repositories struct {
	users      account.UserRepository
	categories blog.CategoryRepository
	posts      blog.PostRepository
	comments   blog.CommentRepository
}

// credentials is implemented by both the session store and the JWT manager.
type credentials interface {
	account.TokenIssuer
	blog.TokenVerifier
}

func main() {
	// Values from .env never override the real environment.
	if err := config.LoadEnvFile(".env"); err != nil {
		slog.Error("failed to read .env", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Structured logger: text in development, JSON everywhere else.
	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	if cfg.IsDev() {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	slog.SetDefault(slog.New(handler))

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"store", cfg.StoreBackend,
		"auth", cfg.AuthBackend,
	)

	repos, db, err := openRepositories(cfg)
	if err != nil {
		slog.Error("failed to open store", "backend", cfg.StoreBackend, "error", err)
		os.Exit(1)
	}
	if db != nil {
		defer db.Close()
	}

	// Valkey backs sessions, the JWT blacklist and the response cache.
	// Only the session backend cannot run without it.
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword, cfg.ValkeyDB)
	if err != nil {
		if cfg.AuthBackend == config.AuthSession {
			slog.Error("failed to connect to valkey", "error", err)
			os.Exit(1)
		}
		slog.Warn("valkey unavailable, response cache disabled and token revocation kept in memory", "error", err)
		valkeyClient = nil
	}
	if valkeyClient != nil {
		defer valkeyClient.Close()
	}

	creds := newCredentials(cfg, valkeyClient)

	var responseCache *cache.ResponseCache
	if valkeyClient != nil {
		responseCache = cache.NewResponseCache(valkeyClient, cfg.CacheTTL)
	}

	svc := blog.New(repos.posts, repos.categories, repos.comments, repos.users)
	guard := blog.NewGuard(creds, repos.users)
	accounts := account.NewService(repos.users, creds)

	r := router.New(
		router.Options{Resolver: guard, AllowedOrigins: cfg.AllowedOrigins},
		handlers.NewBlog(svc, responseCache),
		handlers.NewAuth(accounts),
	)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}

// openRepositories builds the configured store. For PostgreSQL it also
// runs migrations and, in development, seeds sample data. The returned
// *sql.DB is nil for the memory backend.
func openRepositories(cfg *config.Config) (repositories, *sql.DB, error) {
	if cfg.StoreBackend == config.StoreMemory {
		mem := memstore.New()
		slog.Warn("using in-memory store, data is lost on restart")
		return repositories{
			users:      mem.Users(),
			categories: mem.Categories(),
			posts:      mem.Posts(),
			comments:   mem.Comments(),
		}, nil, nil
	}

	db, err := database.Connect(cfg.DSN())
	if err != nil {
		return repositories{}, nil, err
	}
	if err := database.Migrate(db); err != nil {
		db.Close()
		return repositories{}, nil, err
	}
	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			db.Close()
			return repositories{}, nil, err
		}
	}

	return repositories{
		users:      store.NewUserStore(db),
		categories: store.NewCategoryStore(db),
		posts:      store.NewPostStore(db),
		comments:   store.NewCommentStore(db),
	}, db, nil
}

// newCredentials returns the token issuer/verifier for AUTH_BACKEND. The
// session backend requires a Valkey client; the JWT backend keeps its
// revocation list in memory when client is nil.
func newCredentials(cfg *config.Config, client *redis.Client) credentials {
	if cfg.AuthBackend == config.AuthJWT {
		return token.NewManager(cfg.JWTSecret, cfg.TokenTTL, client)
	}
	return session.NewStore(client, cfg.TokenTTL)
}
