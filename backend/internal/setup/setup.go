package setup

import (
	"context"
	"time"

	"github.com/padel-tracker/padel/backend/internal/handler"
	"github.com/padel-tracker/padel/backend/internal/markdown"
	"github.com/padel-tracker/padel/backend/internal/service"
	"github.com/padel-tracker/padel/backend/internal/storage/fs"
	"github.com/padel-tracker/padel/backend/internal/storage/pg"
	"github.com/padel-tracker/padel/backend/internal/utils"
	"github.com/padel-tracker/padel/shared/config"
	"github.com/padel-tracker/padel/shared/jwt"
	mw "github.com/padel-tracker/padel/shared/middleware"
	rl "github.com/padel-tracker/padel/shared/middleware/ratelimiter"
)

const loginBurst = 5

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Config         *config.Config
	Storage        *pg.Storage
	Media          *fs.Storage
	Handler        *handler.Handler
	AuthMiddleware *mw.Auth
	LoginLimiter   *rl.UserRateLimiter
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(ctx, cfg)
	if err != nil {
		return nil, err
	}

	media, err := fs.New(cfg.Public.UploadDir)
	if err != nil {
		storage.Cleanup()
		return nil, err
	}

	jwt := jwt.New(cfg.JwtKey(), cfg.JwtTTL())

	auth := service.NewAuth(storage, jwt)
	player := service.NewPlayer(storage, utils.NewPlayerValidator())
	match := service.NewMatch(storage, storage, utils.NewMatchValidator())
	mediaService := service.NewMedia(media, cfg.Public.MaxImageSize, cfg.Public.AllowedImageMimeTypes)

	h := handler.New(auth, player, match, mediaService, markdown.New(), storage, cfg)

	return &Dependencies{
		Config:         cfg,
		Storage:        storage,
		Media:          media,
		Handler:        h,
		AuthMiddleware: mw.NewAuth(auth, cfg.Public.SecureCookies),
		LoginLimiter:   rl.New(cfg.Public.LoginRPS, loginBurst, time.Hour),
	}, nil
}

// Close releases everything SetupDependencies acquired.
func (d *Dependencies) Close() error {
	if d.LoginLimiter != nil {
		d.LoginLimiter.Stop()
	}
	return d.Storage.Cleanup()
}
