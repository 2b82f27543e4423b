package service

import (
	"context"
	"strings"

	"github.com/padel-tracker/padel/shared/domain"
	"github.com/padel-tracker/padel/shared/logger"
	"github.com/padel-tracker/padel/shared/middleware/metrics"
)

// to mock service in tests
type PlayerService interface {
	Create(ctx context.Context, data domain.PlayerCreationData) (domain.Player, error)
	Get(ctx context.Context, id domain.PlayerId) (domain.Player, error)
	List(ctx context.Context) ([]domain.Player, error)
	Update(ctx context.Context, id domain.PlayerId, data domain.PlayerUpdateData) (domain.Player, error)
	Delete(ctx context.Context, id domain.PlayerId) error
}

type Player struct {
	storage   PlayerStorage
	validator PlayerValidator
}

type PlayerStorage interface {
	CreatePlayer(ctx context.Context, data domain.PlayerCreationData) (domain.Player, error)
	Player(ctx context.Context, id domain.PlayerId) (domain.Player, error)
	Players(ctx context.Context) ([]domain.Player, error)
	PlayersByIds(ctx context.Context, ids []domain.PlayerId) ([]domain.Player, error)
	UpdatePlayer(ctx context.Context, id domain.PlayerId, data domain.PlayerUpdateData) (domain.Player, error)
	// DeletePlayer fails with Conflict while any match references the player
	DeletePlayer(ctx context.Context, id domain.PlayerId) error
}

type PlayerValidator interface {
	Name(field, value string) error
	Age(age int) error
}

func NewPlayer(storage PlayerStorage, validator PlayerValidator) PlayerService {
	return &Player{storage, validator}
}

func (p *Player) Create(ctx context.Context, data domain.PlayerCreationData) (domain.Player, error) {
	data.FirstName = strings.TrimSpace(data.FirstName)
	data.LastName = strings.TrimSpace(data.LastName)
	data.Nationality = strings.TrimSpace(data.Nationality)

	if err := p.validator.Name("first_name", data.FirstName); err != nil {
		return domain.Player{}, err
	}
	if err := p.validator.Name("last_name", data.LastName); err != nil {
		return domain.Player{}, err
	}
	if err := p.validator.Name("nationality", data.Nationality); err != nil {
		return domain.Player{}, err
	}
	if err := p.validator.Age(data.Age); err != nil {
		return domain.Player{}, err
	}
	data.ImageUrl = normalizeImageUrl(data.ImageUrl)

	player, err := p.storage.CreatePlayer(ctx, data)
	if err != nil {
		return domain.Player{}, err
	}
	metrics.EntityMutations.WithLabelValues("player", "create").Inc()
	logger.Log.Info("player created", "player_id", player.Id)
	return player, nil
}

func (p *Player) Get(ctx context.Context, id domain.PlayerId) (domain.Player, error) {
	return p.storage.Player(ctx, id)
}

func (p *Player) List(ctx context.Context) ([]domain.Player, error) {
	return p.storage.Players(ctx)
}

func (p *Player) Update(ctx context.Context, id domain.PlayerId, data domain.PlayerUpdateData) (domain.Player, error) {
	for _, f := range []struct {
		name  string
		value **string
	}{
		{"first_name", &data.FirstName},
		{"last_name", &data.LastName},
		{"nationality", &data.Nationality},
	} {
		if *f.value == nil {
			continue
		}
		trimmed := strings.TrimSpace(**f.value)
		if err := p.validator.Name(f.name, trimmed); err != nil {
			return domain.Player{}, err
		}
		*f.value = &trimmed
	}
	if data.Age != nil {
		if err := p.validator.Age(*data.Age); err != nil {
			return domain.Player{}, err
		}
	}
	if data.ImageUrl != nil {
		// "" clears the image
		trimmed := strings.TrimSpace(*data.ImageUrl)
		data.ImageUrl = &trimmed
	}

	if data.IsEmpty() {
		// nothing to change, still 404 for unknown ids
		return p.storage.Player(ctx, id)
	}

	player, err := p.storage.UpdatePlayer(ctx, id, data)
	if err != nil {
		return domain.Player{}, err
	}
	metrics.EntityMutations.WithLabelValues("player", "update").Inc()
	return player, nil
}

func (p *Player) Delete(ctx context.Context, id domain.PlayerId) error {
	if err := p.storage.DeletePlayer(ctx, id); err != nil {
		return err
	}
	metrics.EntityMutations.WithLabelValues("player", "delete").Inc()
	logger.Log.Info("player deleted", "player_id", id)
	return nil
}

// empty image url means "no image"
func normalizeImageUrl(url *string) *string {
	if url == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*url)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
