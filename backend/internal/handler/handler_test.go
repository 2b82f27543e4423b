package handler

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/padel-tracker/padel/shared/config"
	"github.com/padel-tracker/padel/shared/domain"
	mw "github.com/padel-tracker/padel/shared/middleware"
)

// --- Mock for AuthService ---

type MockAuthService struct {
	MockRegister     func(ctx context.Context, data domain.RegistrationData) (domain.User, string, error)
	MockLogin        func(ctx context.Context, creds domain.Credentials) (domain.User, string, error)
	MockAuthenticate func(ctx context.Context, rawToken string) (domain.User, error)
}

func (m *MockAuthService) Register(ctx context.Context, data domain.RegistrationData) (domain.User, string, error) {
	if m.MockRegister != nil {
		return m.MockRegister(ctx, data)
	}
	return domain.User{}, "", nil
}

func (m *MockAuthService) Login(ctx context.Context, creds domain.Credentials) (domain.User, string, error) {
	if m.MockLogin != nil {
		return m.MockLogin(ctx, creds)
	}
	return domain.User{}, "", nil
}

func (m *MockAuthService) Authenticate(ctx context.Context, rawToken string) (domain.User, error) {
	if m.MockAuthenticate != nil {
		return m.MockAuthenticate(ctx, rawToken)
	}
	return domain.User{}, nil
}

// --- Mock for PlayerService ---

type MockPlayerService struct {
	MockCreate func(ctx context.Context, data domain.PlayerCreationData) (domain.Player, error)
	MockGet    func(ctx context.Context, id domain.PlayerId) (domain.Player, error)
	MockList   func(ctx context.Context) ([]domain.Player, error)
	MockUpdate func(ctx context.Context, id domain.PlayerId, data domain.PlayerUpdateData) (domain.Player, error)
	MockDelete func(ctx context.Context, id domain.PlayerId) error
}

func (m *MockPlayerService) Create(ctx context.Context, data domain.PlayerCreationData) (domain.Player, error) {
	if m.MockCreate != nil {
		return m.MockCreate(ctx, data)
	}
	return domain.Player{}, nil
}

func (m *MockPlayerService) Get(ctx context.Context, id domain.PlayerId) (domain.Player, error) {
	if m.MockGet != nil {
		return m.MockGet(ctx, id)
	}
	return domain.Player{}, nil
}

func (m *MockPlayerService) List(ctx context.Context) ([]domain.Player, error) {
	if m.MockList != nil {
		return m.MockList(ctx)
	}
	return nil, nil
}

func (m *MockPlayerService) Update(ctx context.Context, id domain.PlayerId, data domain.PlayerUpdateData) (domain.Player, error) {
	if m.MockUpdate != nil {
		return m.MockUpdate(ctx, id, data)
	}
	return domain.Player{}, nil
}

func (m *MockPlayerService) Delete(ctx context.Context, id domain.PlayerId) error {
	if m.MockDelete != nil {
		return m.MockDelete(ctx, id)
	}
	return nil
}

// --- Mock for MatchService ---

type MockMatchService struct {
	MockCreate   func(ctx context.Context, creator domain.UserId, data domain.MatchCreationData) (domain.Match, error)
	MockGet      func(ctx context.Context, id domain.MatchId) (domain.Match, error)
	MockList     func(ctx context.Context) ([]domain.Match, error)
	MockByPlayer func(ctx context.Context, playerId domain.PlayerId) ([]domain.Match, error)
	MockUpdate   func(ctx context.Context, id domain.MatchId, data domain.MatchUpdateData) (domain.Match, error)
	MockDelete   func(ctx context.Context, id domain.MatchId) error
}

func (m *MockMatchService) Create(ctx context.Context, creator domain.UserId, data domain.MatchCreationData) (domain.Match, error) {
	if m.MockCreate != nil {
		return m.MockCreate(ctx, creator, data)
	}
	return domain.Match{}, nil
}

func (m *MockMatchService) Get(ctx context.Context, id domain.MatchId) (domain.Match, error) {
	if m.MockGet != nil {
		return m.MockGet(ctx, id)
	}
	return domain.Match{}, nil
}

func (m *MockMatchService) List(ctx context.Context) ([]domain.Match, error) {
	if m.MockList != nil {
		return m.MockList(ctx)
	}
	return nil, nil
}

func (m *MockMatchService) ByPlayer(ctx context.Context, playerId domain.PlayerId) ([]domain.Match, error) {
	if m.MockByPlayer != nil {
		return m.MockByPlayer(ctx, playerId)
	}
	return nil, nil
}

func (m *MockMatchService) Update(ctx context.Context, id domain.MatchId, data domain.MatchUpdateData) (domain.Match, error) {
	if m.MockUpdate != nil {
		return m.MockUpdate(ctx, id, data)
	}
	return domain.Match{}, nil
}

func (m *MockMatchService) Delete(ctx context.Context, id domain.MatchId) error {
	if m.MockDelete != nil {
		return m.MockDelete(ctx, id)
	}
	return nil
}

// --- Mock for MediaService ---

type MockMediaService struct {
	MockSavePlayerImage func(file io.ReadSeeker, originalFilename string, size int64) (domain.StoredImage, error)
}

func (m *MockMediaService) SavePlayerImage(file io.ReadSeeker, originalFilename string, size int64) (domain.StoredImage, error) {
	if m.MockSavePlayerImage != nil {
		return m.MockSavePlayerImage(file, originalFilename, size)
	}
	return domain.StoredImage{}, nil
}

// --- Mock for HealthChecker ---

type MockHealthChecker struct {
	PingFunc func(ctx context.Context) error
}

func (m *MockHealthChecker) Ping(ctx context.Context) error {
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return nil // Default: healthy
}

type fakeRenderer struct{}

func (fakeRenderer) Render(notes string) string { return "<p>" + notes + "</p>" }

// --- Helpers ---

var testUser = domain.User{Id: uuid.MustParse("11111111-1111-1111-1111-111111111111"), Email: "user@example.com", Name: "User"}

func testConfig() *config.Config {
	return &config.Config{Public: config.Public{
		JwtTTL:                config.DefaultJwtTTL,
		MaxImageSize:          config.DefaultMaxImageSize,
		AllowedImageMimeTypes: config.DefaultImageMimeTypes,
	}}
}

// withUser puts user into the request context the way the auth middleware does
func withUser(user *domain.User) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if user != nil {
				r = r.WithContext(mw.WithUser(r.Context(), user))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func newTestRouter(h *Handler, user *domain.User) *chi.Mux {
	router := chi.NewRouter()
	router.Use(withUser(user))
	router.Post("/v1/auth/register", h.Register)
	router.Post("/v1/auth/login", h.Login)
	router.Post("/v1/auth/logout", h.Logout)
	router.Get("/v1/auth/me", h.Me)

	router.Get("/v1/players", h.GetPlayers)
	router.Post("/v1/players", h.CreatePlayer)
	router.Get("/v1/players/{id}", h.GetPlayer)
	router.Put("/v1/players/{id}", h.UpdatePlayer)
	router.Delete("/v1/players/{id}", h.DeletePlayer)

	router.Get("/v1/matches", h.GetMatches)
	router.Post("/v1/matches", h.CreateMatch)
	router.Get("/v1/matches/player/{playerId}", h.GetPlayerMatches)
	router.Get("/v1/matches/{id}", h.GetMatch)
	router.Put("/v1/matches/{id}", h.UpdateMatch)
	router.Delete("/v1/matches/{id}", h.DeleteMatch)

	router.Post("/v1/upload/player-image", h.UploadPlayerImage)
	return router
}

func createRequest(t *testing.T, method, url string, body []byte, cookies ...*http.Cookie) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, url, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}

func serve(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}
