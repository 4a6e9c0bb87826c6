package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/akinalp/kalem/database"
	"github.com/akinalp/kalem/handlers"
	"github.com/akinalp/kalem/middleware"
	"github.com/akinalp/kalem/models"
	"github.com/akinalp/kalem/pkg/ratelimit"
	"github.com/akinalp/kalem/repository"
	"github.com/akinalp/kalem/services"
	"github.com/stretchr/testify/require"
)

// newTestServer wires the full stack (SQLite + repos + services +
// handlers + auth middleware) onto an httptest server, mirroring the
// production route table.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	migrationsFS, err := fs.Sub(database.EmbeddedMigrations, "migrations")
	require.NoError(t, err)

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"), migrationsFS)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	userRepo := repository.NewSQLiteUserRepo(db.Conn)
	sessionRepo := repository.NewSQLiteSessionRepo(db.Conn)
	resetRepo := repository.NewSQLiteResetTokenRepo(db.Conn)
	postRepo := repository.NewSQLitePostRepo(db.Conn)
	commentRepo := repository.NewSQLiteCommentRepo(db.Conn)
	reactionRepo := repository.NewSQLiteReactionRepo(db.Conn)

	authService := services.NewAuthService(
		userRepo, sessionRepo, resetRepo, nil,
		"test-secret", 15*time.Minute, 7*24*time.Hour,
	)
	postService := services.NewPostService(db.Conn, postRepo)
	commentService := services.NewCommentService(db.Conn, commentRepo, postRepo)

	registry := map[models.TargetKind]services.ReactableFactory{
		models.TargetKindPost: func(q database.TxQuerier) repository.ReactableRepository {
			return repository.NewSQLitePostRepo(q)
		},
		models.TargetKindComment: func(q database.TxQuerier) repository.ReactableRepository {
			return repository.NewSQLiteCommentRepo(q)
		},
	}
	reactionService := services.NewReactionService(db.Conn, reactionRepo, registry)

	authHandler := handlers.NewAuthHandler(authService, ratelimit.NewLoginRateLimiter(5, 2*time.Minute))
	postHandler := handlers.NewPostHandler(postService)
	commentHandler := handlers.NewCommentHandler(commentService)
	reactionHandler := handlers.NewReactionHandler(reactionService)

	authMw := middleware.NewAuthMiddleware(authService, userRepo)
	auth := func(h http.HandlerFunc) http.Handler {
		return authMw.Require(http.HandlerFunc(h))
	}

	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/auth/refresh", authHandler.Refresh)
	mux.Handle("POST /api/auth/logout", auth(authHandler.Logout))
	mux.HandleFunc("POST /api/auth/forgot-password", authHandler.ForgotPassword)
	mux.HandleFunc("POST /api/auth/reset-password", authHandler.ResetPassword)

	mux.Handle("GET /api/users/me", auth(authHandler.Me))
	mux.Handle("POST /api/users/me/password", auth(authHandler.ChangePassword))

	mux.HandleFunc("GET /api/posts", postHandler.List)
	mux.HandleFunc("GET /api/posts/{id}", postHandler.Get)
	mux.Handle("POST /api/posts", auth(postHandler.Create))
	mux.Handle("PATCH /api/posts/{id}", auth(postHandler.Update))
	mux.Handle("DELETE /api/posts/{id}", auth(postHandler.Delete))

	mux.HandleFunc("GET /api/comments", commentHandler.List)
	mux.HandleFunc("GET /api/comments/{id}", commentHandler.Get)
	mux.Handle("POST /api/comments", auth(commentHandler.Create))
	mux.Handle("PATCH /api/comments/{id}", auth(commentHandler.Update))
	mux.Handle("DELETE /api/comments/{id}", auth(commentHandler.Delete))

	mux.Handle("POST /api/reactions", auth(reactionHandler.Toggle))
	mux.Handle("GET /api/reactions", auth(reactionHandler.List))
	mux.HandleFunc("PUT /api/reactions/{id}", reactionHandler.MethodNotAllowed)
	mux.HandleFunc("PATCH /api/reactions/{id}", reactionHandler.MethodNotAllowed)
	mux.HandleFunc("DELETE /api/reactions/{id}", reactionHandler.MethodNotAllowed)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// apiResponse mirrors the wire envelope for decoding in assertions.
type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// doJSON fires a request and decodes the envelope. token may be empty.
// A 204 returns a zero-value envelope.
func doJSON(t *testing.T, srv *httptest.Server, method, path, token string, body any) (int, apiResponse) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, srv.URL+path, reqBody)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var envelope apiResponse
	if resp.StatusCode != http.StatusNoContent {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	}
	return resp.StatusCode, envelope
}

// registerAndLogin creates a user over the API and returns its access token.
func registerAndLogin(t *testing.T, srv *httptest.Server, username string) string {
	t.Helper()

	status, envelope := doJSON(t, srv, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": username,
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, status)

	var tokens struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(envelope.Data, &tokens))
	require.NotEmpty(t, tokens.AccessToken)
	return tokens.AccessToken
}

// createPost creates a post over the API and returns its id.
func createPost(t *testing.T, srv *httptest.Server, token, title string) string {
	t.Helper()

	status, envelope := doJSON(t, srv, http.MethodPost, "/api/posts", token, map[string]string{
		"title":   title,
		"content": "body of " + title,
	})
	require.Equal(t, http.StatusCreated, status)

	var post struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(envelope.Data, &post))
	return post.ID
}
