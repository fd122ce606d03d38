// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler tests.
// The default environment runs on the in-memory store with JWT tokens;
// newPostgresEnv swaps in PostgreSQL and Valkey and is skipped when
// those services are unavailable.
package handlers

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"inkpress/internal/account"
	"inkpress/internal/blog"
	"inkpress/internal/cache"
	"inkpress/internal/database"
	"inkpress/internal/middleware"
	"inkpress/internal/session"
	"inkpress/internal/store"
	"inkpress/internal/store/memstore"
	"inkpress/internal/token"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testEnv holds a fully wired API for handler tests.
type testEnv struct {
	Blog    *Blog
	Auth    *Auth
	Service *blog.Service
	Handler http.Handler
}

// routes mounts the handlers the same way the router package does.
func routes(guard *blog.Guard, b *Blog, a *Auth) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Authenticate(guard))

	r.Get("/api/posts", b.ListPosts)
	r.Get("/api/posts/{id}", b.GetPost)
	r.Get("/api/categories", b.ListCategories)
	r.Get("/api/comments/post/{postId}", b.ListComments)
	r.Post("/api/auth/register", a.Register)
	r.Post("/api/auth/login", a.Login)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/api/posts", b.CreatePost)
		r.Put("/api/posts/{id}", b.UpdatePost)
		r.Delete("/api/posts/{id}", b.DeletePost)
		r.Post("/api/categories", b.CreateCategory)
		r.Post("/api/comments", b.CreateComment)
		r.Post("/api/auth/logout", a.Logout)
		r.Get("/api/auth/me", a.Me)
		r.Patch("/api/auth/me", a.UpdateMe)
	})
	return r
}

// newTestEnv creates an in-memory environment with no response cache.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := memstore.New()
	tokens := token.NewManager("handler-test-secret", time.Hour, nil)
	svc := blog.New(db.Posts(), db.Categories(), db.Comments(), db.Users())
	accounts := account.NewService(db.Users(), tokens, account.WithBcryptCost(bcrypt.MinCost))
	guard := blog.NewGuard(tokens, db.Users())

	b := NewBlog(svc, nil)
	a := NewAuth(accounts)
	return &testEnv{Blog: b, Auth: a, Service: svc, Handler: routes(guard, b, a)}
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "inkpress")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "inkpress")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testValkeyClient returns a Redis client for handler tests on DB 15.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		// Clean up test session and cache keys.
		for _, pattern := range []string{"session:*", "api:*"} {
			keys, _ := client.Keys(ctx, pattern).Result()
			if len(keys) > 0 {
				client.Del(ctx, keys...)
			}
		}
		client.Close()
	})

	return client
}

// newPostgresEnv wires the handlers to PostgreSQL, Valkey sessions and
// the Valkey response cache.
func newPostgresEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)
	vk := testValkeyClient(t)

	users := store.NewUserStore(db)
	svc := blog.New(store.NewPostStore(db), store.NewCategoryStore(db), store.NewCommentStore(db), users)
	sessions := session.NewStore(vk, time.Minute)
	accounts := account.NewService(users, sessions, account.WithBcryptCost(bcrypt.MinCost))
	guard := blog.NewGuard(sessions, users)

	b := NewBlog(svc, cache.NewResponseCache(vk, time.Minute))
	a := NewAuth(accounts)
	return &testEnv{Blog: b, Auth: a, Service: svc, Handler: routes(guard, b, a)}
}

// apiResponse is the decoded envelope with the data left raw.
type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

// do sends a request through the environment's router. body may be nil,
// a string sent verbatim, or a value encoded as JSON.
func (env *testEnv) do(t *testing.T, method, path, bearer string, body any) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()

	var reader io.Reader
	switch v := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(v)
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	env.Handler.ServeHTTP(rec, req)

	var resp apiResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("%s %s: decode response %q: %v", method, path, rec.Body.String(), err)
	}
	return rec, resp
}

// decodeData unmarshals the envelope data into dst.
func decodeData(t *testing.T, resp apiResponse, dst any) {
	t.Helper()
	if err := json.Unmarshal(resp.Data, dst); err != nil {
		t.Fatalf("decode data %s: %v", resp.Data, err)
	}
}

// registerUser creates an account and returns its token and id.
func (env *testEnv) registerUser(t *testing.T, username string) (string, string) {
	t.Helper()
	rec, resp := env.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "correct horse",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register %s: status %d: %s", username, rec.Code, rec.Body.String())
	}
	var sess struct {
		Token string `json:"token"`
		User  struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	decodeData(t, resp, &sess)
	return sess.Token, sess.User.ID
}

// createCategory creates a category as bearer and returns its id.
func (env *testEnv) createCategory(t *testing.T, bearer, name string) string {
	t.Helper()
	rec, resp := env.do(t, http.MethodPost, "/api/categories", bearer, map[string]string{"name": name})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create category %s: status %d: %s", name, rec.Code, rec.Body.String())
	}
	var cat struct {
		ID string `json:"id"`
	}
	decodeData(t, resp, &cat)
	return cat.ID
}

// createPost creates a post as bearer and returns its id.
func (env *testEnv) createPost(t *testing.T, bearer string, body map[string]any) string {
	t.Helper()
	rec, resp := env.do(t, http.MethodPost, "/api/posts", bearer, body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create post: status %d: %s", rec.Code, rec.Body.String())
	}
	var post struct {
		ID string `json:"id"`
	}
	decodeData(t, resp, &post)
	return post.ID
}
