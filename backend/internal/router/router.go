package router

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/padel-tracker/padel/backend/internal/handler"
	"github.com/padel-tracker/padel/backend/internal/setup"
	"github.com/padel-tracker/padel/shared/logger"
	mw "github.com/padel-tracker/padel/shared/middleware"
	"github.com/padel-tracker/padel/shared/middleware/metrics"
	"github.com/padel-tracker/padel/shared/utils"
)

// New creates and configures a chi router with all the routes.
// IMPORTANT! ratelimiters set with .Use limit requests for all endpoints combined in that group
func New(deps *setup.Dependencies) *chi.Mux {
	r := chi.NewRouter()
	cfg := deps.Config.Public

	r.Use(chimw.RequestID)
	r.Use(mw.Recovery(logger.Log))
	r.Use(mw.Logging(logger.Log))
	r.Use(metrics.Middleware)
	r.Use(mw.SecurityHeaders(cfg.SecureCookies, mw.APIContentSecurityPolicy))

	// setup CORS for browser clients
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CorsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	h := deps.Handler
	authMw := deps.AuthMiddleware

	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	r.Get("/", h.Info)
	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", metrics.Handler())
	r.Handle("/uploads/players/*", uploads(deps.Media.Root()))

	r.Route("/v1", func(v1 chi.Router) {
		v1.Route("/auth", func(auth chi.Router) {
			auth.Group(func(limited chi.Router) {
				limited.Use(mw.RateLimit(deps.LoginLimiter, mw.GetIP)) // login_rps by IP
				limited.Post("/register", h.Register)
				limited.Post("/login", h.Login)
			})
			auth.Post("/logout", h.Logout)
			auth.With(authMw.NeedAuth()).Get("/me", h.Me)
		})

		v1.Route("/players", func(players chi.Router) {
			players.Get("/", h.GetPlayers)
			players.Get("/{id}", h.GetPlayer)
			players.With(authMw.NeedAuth()).Post("/", h.CreatePlayer)
			players.With(authMw.NeedAuth()).Put("/{id}", h.UpdatePlayer)
			players.With(authMw.AdminOnly()).Delete("/{id}", h.DeletePlayer)
		})

		v1.Route("/matches", func(matches chi.Router) {
			matches.Get("/", h.GetMatches)
			matches.Get("/{id}", h.GetMatch)
			matches.Get("/player/{playerId}", h.GetPlayerMatches)
			matches.With(authMw.NeedAuth()).Post("/", h.CreateMatch)
			matches.With(authMw.NeedAuth()).Put("/{id}", h.UpdateMatch)
			matches.With(authMw.AdminOnly()).Delete("/{id}", h.DeleteMatch)
		})

		v1.With(authMw.NeedAuth()).Post("/upload/player-image", h.UploadPlayerImage)
	})

	return r
}

// uploads serves files under root/players without directory listings
func uploads(root string) http.Handler {
	files := http.StripPrefix(strings.TrimSuffix(handler.UploadsPrefix, "/"), http.FileServer(http.Dir(filepath.Clean(root))))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			utils.WriteError(w, http.StatusNotFound, "NOT_FOUND", "File not found")
			return
		}
		files.ServeHTTP(w, r)
	})
}
