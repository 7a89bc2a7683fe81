//go:build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/consejoapp/consejo-backend/internal/adapter/postgres"
	commentrepo "github.com/consejoapp/consejo-backend/internal/adapter/postgres/comment"
	decisionrepo "github.com/consejoapp/consejo-backend/internal/adapter/postgres/decision"
	"github.com/consejoapp/consejo-backend/internal/adapter/postgres/testhelper"
	tokenrepo "github.com/consejoapp/consejo-backend/internal/adapter/postgres/token"
	userrepo "github.com/consejoapp/consejo-backend/internal/adapter/postgres/user"
	voterepo "github.com/consejoapp/consejo-backend/internal/adapter/postgres/vote"
	jwtauth "github.com/consejoapp/consejo-backend/internal/auth"
	"github.com/consejoapp/consejo-backend/internal/config"
	authsvc "github.com/consejoapp/consejo-backend/internal/service/auth"
	commentsvc "github.com/consejoapp/consejo-backend/internal/service/comment"
	decisionsvc "github.com/consejoapp/consejo-backend/internal/service/decision"
	reputationsvc "github.com/consejoapp/consejo-backend/internal/service/reputation"
	votesvc "github.com/consejoapp/consejo-backend/internal/service/vote"
	"github.com/consejoapp/consejo-backend/internal/transport/middleware"
	"github.com/consejoapp/consejo-backend/internal/transport/rest"
)

// testServer wraps the full-stack HTTP server for E2E tests.
type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
}

// newTestServer wires repositories, services, and the REST transport over
// a shared test database, the same way the app does it in production.
func newTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	authCfg := config.AuthConfig{
		JWTSecret:        "e2e-secret-0123456789abcdef000000",
		JWTIssuer:        "consejo-e2e",
		AccessTokenTTL:   15 * time.Minute,
		RefreshTokenTTL:  time.Hour,
		PasswordHashCost: bcrypt.MinCost,
	}

	users := userrepo.New(pool)
	decisions := decisionrepo.New(pool)
	votes := voterepo.New(pool)
	comments := commentrepo.New(pool)
	tokens := tokenrepo.New(pool)
	txManager := postgres.NewTxManager(pool)

	jwtManager := jwtauth.NewJWTManager(authCfg.JWTSecret, authCfg.JWTIssuer, authCfg.AccessTokenTTL)

	reputation := reputationsvc.NewService(logger, users)
	authService := authsvc.NewService(logger, users, tokens, jwtManager, authCfg)
	decisionService := decisionsvc.NewService(logger, decisions, votes, reputation, txManager)
	voteService := votesvc.NewService(logger, votes, decisions, reputation, txManager)
	commentService := commentsvc.NewService(logger, comments, decisions, reputation, txManager)

	mux := rest.NewRouter(rest.Handlers{
		Auth:     rest.NewAuthHandler(authService, logger),
		Decision: rest.NewDecisionHandler(decisionService, logger),
		Vote:     rest.NewVoteHandler(voteService, decisionService, logger),
		Comment:  rest.NewCommentHandler(commentService, logger),
		Health:   rest.NewHealthHandler(pool, "e2e"),
	})

	handler := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID,
		middleware.Auth(authService),
	)(mux)

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return &testServer{
		URL:    server.URL,
		Client: server.Client(),
		Pool:   pool,
	}
}

// do sends a JSON request and decodes the JSON response body into a map.
// token may be empty for anonymous requests.
func (s *testServer) do(t *testing.T, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, s.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return resp.StatusCode, nil
	}

	var result map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return resp.StatusCode, result
}

// registerUser registers a fresh user and returns its access token and
// the user payload.
func registerUser(t *testing.T, s *testServer, email, username string) (string, map[string]any) {
	t.Helper()

	status, result := s.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"email":    email,
		"username": username,
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, status, "register %s: %v", email, result)

	token, ok := result["accessToken"].(string)
	require.True(t, ok, "expected accessToken in response")
	user, ok := result["user"].(map[string]any)
	require.True(t, ok, "expected user in response")
	return token, user
}

// createDecision posts a decision with the given options and returns its
// payload, including option IDs.
func createDecision(t *testing.T, s *testServer, token string, options ...string) map[string]any {
	t.Helper()

	status, result := s.do(t, http.MethodPost, "/api/v1/decisions", token, map[string]any{
		"title":     "Should we do it?",
		"context":   "Enough context to decide either way.",
		"type":      "career",
		"expiresAt": time.Now().Add(72 * time.Hour).Format(time.RFC3339),
		"options":   options,
	})
	require.Equal(t, http.StatusCreated, status, "create decision: %v", result)
	return result
}

// optionIDs extracts the option IDs from a decision payload in order.
func optionIDs(t *testing.T, d map[string]any) []string {
	t.Helper()

	raw, ok := d["options"].([]any)
	require.True(t, ok, "expected options array")
	ids := make([]string, len(raw))
	for n, o := range raw {
		opt, ok := o.(map[string]any)
		require.True(t, ok)
		ids[n], ok = opt["id"].(string)
		require.True(t, ok)
	}
	return ids
}
