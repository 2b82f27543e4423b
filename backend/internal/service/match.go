package service

import (
	"context"
	"strings"
	"time"

	"github.com/padel-tracker/padel/backend/internal/utils"
	"github.com/padel-tracker/padel/shared/domain"
	"github.com/padel-tracker/padel/shared/logger"
	"github.com/padel-tracker/padel/shared/middleware/metrics"
)

// to mock service in tests
type MatchService interface {
	Create(ctx context.Context, creator domain.UserId, data domain.MatchCreationData) (domain.Match, error)
	Get(ctx context.Context, id domain.MatchId) (domain.Match, error)
	List(ctx context.Context) ([]domain.Match, error)
	ByPlayer(ctx context.Context, playerId domain.PlayerId) ([]domain.Match, error)
	Update(ctx context.Context, id domain.MatchId, data domain.MatchUpdateData) (domain.Match, error)
	Delete(ctx context.Context, id domain.MatchId) error
}

type Match struct {
	storage   MatchStorage
	players   utils.PlayerLookup
	validator MatchValidator
	now       func() time.Time
}

// Reads return matches with Team1, Team2 and Creator populated.
type MatchStorage interface {
	CreateMatch(ctx context.Context, match domain.Match) (domain.Match, error)
	Match(ctx context.Context, id domain.MatchId) (domain.Match, error)
	Matches(ctx context.Context) ([]domain.Match, error)
	MatchesByPlayer(ctx context.Context, playerId domain.PlayerId) ([]domain.Match, error)
	UpdateMatch(ctx context.Context, id domain.MatchId, data domain.MatchUpdateData) (domain.Match, error)
	DeleteMatch(ctx context.Context, id domain.MatchId) error
}

type MatchValidator interface {
	Teams(team1, team2 []domain.PlayerId) error
	ProposedTeams(team1, team2 *[]domain.PlayerId) error
	Sets(sets []domain.SetScore) error
	PlayersExist(ctx context.Context, refs []domain.PlayerId, lookup utils.PlayerLookup) error
}

func NewMatch(storage MatchStorage, players utils.PlayerLookup, validator MatchValidator) *Match {
	return &Match{storage: storage, players: players, validator: validator, now: time.Now}
}

// Create checks teams, then sets, then player existence, and reports the first failure.
func (m *Match) Create(ctx context.Context, creator domain.UserId, data domain.MatchCreationData) (domain.Match, error) {
	if err := m.validator.Teams(data.Team1Players, data.Team2Players); err != nil {
		return domain.Match{}, err
	}
	if err := m.validator.Sets(data.Sets); err != nil {
		return domain.Match{}, err
	}
	refs := append(append([]domain.PlayerId{}, data.Team1Players...), data.Team2Players...)
	if err := m.validator.PlayersExist(ctx, refs, m.players); err != nil {
		return domain.Match{}, err
	}

	date := m.now().UTC()
	if data.Date != nil {
		date = data.Date.UTC()
	}

	match, err := m.storage.CreateMatch(ctx, domain.Match{
		Date:         date,
		Team1Players: data.Team1Players,
		Team2Players: data.Team2Players,
		Sets:         data.Sets,
		Notes:        normalizeNotes(data.Notes),
		CreatedBy:    creator,
	})
	if err != nil {
		return domain.Match{}, err
	}

	metrics.EntityMutations.WithLabelValues("match", "create").Inc()
	logger.Log.Info("match created", "match_id", match.Id, "created_by", creator, "sets", len(match.Sets))
	return match, nil
}

func (m *Match) Get(ctx context.Context, id domain.MatchId) (domain.Match, error) {
	return m.storage.Match(ctx, id)
}

func (m *Match) List(ctx context.Context) ([]domain.Match, error) {
	return m.storage.Matches(ctx)
}

// ByPlayer fails with NotFound for an unknown player rather than returning an empty list.
func (m *Match) ByPlayer(ctx context.Context, playerId domain.PlayerId) ([]domain.Match, error) {
	found, err := m.players.PlayersByIds(ctx, []domain.PlayerId{playerId})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, errPlayerNotFound
	}
	return m.storage.MatchesByPlayer(ctx, playerId)
}

// Update reports NotFound for an unknown id before validating anything. Only
// supplied fields are validated, and a supplied team is checked as given,
// never merged with the stored one.
func (m *Match) Update(ctx context.Context, id domain.MatchId, data domain.MatchUpdateData) (domain.Match, error) {
	current, err := m.storage.Match(ctx, id)
	if err != nil {
		return domain.Match{}, err
	}

	if err := m.validator.ProposedTeams(data.Team1Players, data.Team2Players); err != nil {
		return domain.Match{}, err
	}
	if data.Sets != nil {
		if err := m.validator.Sets(*data.Sets); err != nil {
			return domain.Match{}, err
		}
	}
	if data.TouchesTeams() {
		var refs []domain.PlayerId
		if data.Team1Players != nil {
			refs = append(refs, *data.Team1Players...)
		}
		if data.Team2Players != nil {
			refs = append(refs, *data.Team2Players...)
		}
		if err := m.validator.PlayersExist(ctx, refs, m.players); err != nil {
			return domain.Match{}, err
		}
	}

	if data.Date != nil {
		utc := data.Date.UTC()
		data.Date = &utc
	}
	if data.Notes != nil {
		// "" clears the notes
		trimmed := strings.TrimSpace(*data.Notes)
		data.Notes = &trimmed
	}

	if data.IsEmpty() {
		return current, nil
	}

	match, err := m.storage.UpdateMatch(ctx, id, data)
	if err != nil {
		return domain.Match{}, err
	}
	metrics.EntityMutations.WithLabelValues("match", "update").Inc()
	return match, nil
}

func (m *Match) Delete(ctx context.Context, id domain.MatchId) error {
	if err := m.storage.DeleteMatch(ctx, id); err != nil {
		return err
	}
	metrics.EntityMutations.WithLabelValues("match", "delete").Inc()
	logger.Log.Info("match deleted", "match_id", id)
	return nil
}

func normalizeNotes(notes *string) *string {
	if notes == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*notes)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
