package handler

import (
	"context"

	"github.com/padel-tracker/padel/backend/internal/service"
	"github.com/padel-tracker/padel/shared/config"
)

type HealthChecker interface {
	Ping(ctx context.Context) error
}

type NotesRenderer interface {
	Render(notes string) string
}

type Handler struct {
	auth   service.AuthService
	player service.PlayerService
	match  service.MatchService
	media  service.MediaService
	notes  NotesRenderer
	health HealthChecker
	cfg    *config.Config
}

func New(auth service.AuthService, player service.PlayerService, match service.MatchService, media service.MediaService, notes NotesRenderer, health HealthChecker, cfg *config.Config) *Handler {
	return &Handler{
		auth:   auth,
		player: player,
		match:  match,
		media:  media,
		notes:  notes,
		health: health,
		cfg:    cfg,
	}
}

func (h *Handler) renderNotes() func(string) string {
	if h.notes == nil {
		return nil
	}
	return h.notes.Render
}
