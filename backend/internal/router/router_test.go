package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/padel-tracker/padel/backend/internal/handler"
	"github.com/padel-tracker/padel/backend/internal/service"
	"github.com/padel-tracker/padel/backend/internal/setup"
	"github.com/padel-tracker/padel/backend/internal/storage/fs"
	"github.com/padel-tracker/padel/shared/config"
	"github.com/padel-tracker/padel/shared/domain"
	internal_errors "github.com/padel-tracker/padel/shared/errors"
	mw "github.com/padel-tracker/padel/shared/middleware"
	rl "github.com/padel-tracker/padel/shared/middleware/ratelimiter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tokenAuth struct {
	service.AuthService
}

func (tokenAuth) Authenticate(ctx context.Context, rawToken string) (domain.User, error) {
	switch rawToken {
	case "admin":
		return domain.User{Id: uuid.New(), Email: "admin@example.com", Admin: true}, nil
	case "user":
		return domain.User{Id: uuid.New(), Email: "user@example.com"}, nil
	}
	return domain.User{}, internal_errors.ErrInvalidToken
}

type stubPlayers struct {
	service.PlayerService
}

func (stubPlayers) List(ctx context.Context) ([]domain.Player, error) { return nil, nil }
func (stubPlayers) Delete(ctx context.Context, id domain.PlayerId) error {
	return nil
}

type stubMatches struct {
	service.MatchService
}

func (stubMatches) List(ctx context.Context) ([]domain.Match, error) { return nil, nil }
func (stubMatches) Delete(ctx context.Context, id domain.MatchId) error {
	return nil
}

func newTestDeps(t *testing.T) *setup.Dependencies {
	t.Helper()
	media, err := fs.New(t.TempDir())
	require.NoError(t, err)

	cfg := &config.Config{Public: config.Public{JwtTTL: time.Hour, CorsAllowedOrigins: []string{"http://localhost:3000"}}}
	auth := tokenAuth{}
	limiter := rl.New(0.01, 2, time.Hour)
	t.Cleanup(limiter.Stop)

	return &setup.Dependencies{
		Config:         cfg,
		Media:          media,
		Handler:        handler.New(auth, stubPlayers{}, stubMatches{}, nil, nil, nil, cfg),
		AuthMiddleware: mw.NewAuth(auth, false),
		LoginLimiter:   limiter,
	}
}

func do(r http.Handler, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestRouterAccess(t *testing.T) {
	r := New(newTestDeps(t))
	id := uuid.NewString()

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		status int
	}{
		{"public player list", http.MethodGet, "/v1/players", "", http.StatusOK},
		{"public match list", http.MethodGet, "/v1/matches", "", http.StatusOK},
		{"create player needs auth", http.MethodPost, "/v1/players", "", http.StatusUnauthorized},
		{"create match needs auth", http.MethodPost, "/v1/matches", "", http.StatusUnauthorized},
		{"bad token", http.MethodPost, "/v1/matches", "forged", http.StatusUnauthorized},
		{"upload needs auth", http.MethodPost, "/v1/upload/player-image", "", http.StatusUnauthorized},
		{"me needs auth", http.MethodGet, "/v1/auth/me", "", http.StatusUnauthorized},
		{"me", http.MethodGet, "/v1/auth/me", "user", http.StatusOK},
		{"delete player forbidden for users", http.MethodDelete, "/v1/players/" + id, "user", http.StatusForbidden},
		{"delete player unauthenticated", http.MethodDelete, "/v1/players/" + id, "", http.StatusUnauthorized},
		{"delete player as admin", http.MethodDelete, "/v1/players/" + id, "admin", http.StatusOK},
		{"delete match forbidden for users", http.MethodDelete, "/v1/matches/" + id, "user", http.StatusForbidden},
		{"delete match as admin", http.MethodDelete, "/v1/matches/" + id, "admin", http.StatusOK},
		{"unknown route", http.MethodGet, "/v1/nothing", "", http.StatusNotFound},
		{"wrong method", http.MethodPatch, "/v1/players", "", http.StatusMethodNotAllowed},
		{"info", http.MethodGet, "/", "", http.StatusOK},
		{"health", http.MethodGet, "/health", "", http.StatusOK},
		{"metrics", http.MethodGet, "/metrics", "", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(r, tt.method, tt.path, tt.token)
			assert.Equal(t, tt.status, rr.Code, rr.Body.String())
		})
	}
}

func TestRouterLoginRateLimit(t *testing.T) {
	r := New(newTestDeps(t))

	// burst of 2, then limited; requests fail validation but still count
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/v1/auth/login", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/v1/auth/register", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, do(r, http.MethodPost, "/v1/auth/login", "").Code)

	// logout is not limited
	assert.Equal(t, http.StatusOK, do(r, http.MethodPost, "/v1/auth/logout", "").Code)
}

func TestRouterUploads(t *testing.T) {
	deps := newTestDeps(t)
	require.NoError(t, os.MkdirAll(filepath.Join(deps.Media.Root(), "players"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(deps.Media.Root(), "players", "player-1.png"), []byte("png"), 0644))
	r := New(deps)

	rr := do(r, http.MethodGet, "/uploads/players/player-1.png", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "png", rr.Body.String())

	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/uploads/players/", "").Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/uploads/players/missing.png", "").Code)
}

func TestRouterSecurityHeadersAndCORS(t *testing.T) {
	r := New(newTestDeps(t))

	req := httptest.NewRequest(http.MethodOptions, "/v1/players", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, "http://localhost:3000", rr.Header().Get("Access-Control-Allow-Origin"))

	rr = do(r, http.MethodGet, "/v1/players", "")
	assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
}
