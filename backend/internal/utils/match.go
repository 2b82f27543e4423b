package utils

import (
	"context"
	"fmt"

	"github.com/padel-tracker/padel/shared/domain"
	internal_errors "github.com/padel-tracker/padel/shared/errors"
)

// PlayerLookup returns the players found among ids. Missing ids are skipped.
type PlayerLookup interface {
	PlayersByIds(ctx context.Context, ids []domain.PlayerId) ([]domain.Player, error)
}

type MatchValidator struct{}

func NewMatchValidator() *MatchValidator {
	return &MatchValidator{}
}

// Teams requires two pairs of four distinct players.
func (v *MatchValidator) Teams(team1, team2 []domain.PlayerId) error {
	return v.ProposedTeams(&team1, &team2)
}

// ProposedTeams checks only the supplied teams. Each must be a pair, and no
// player may appear twice across what was supplied. Nil teams are skipped.
func (v *MatchValidator) ProposedTeams(team1, team2 *[]domain.PlayerId) error {
	var refs []domain.PlayerId
	for _, team := range []*[]domain.PlayerId{team1, team2} {
		if team == nil {
			continue
		}
		if len(*team) != domain.PlayersPerTeam {
			return internal_errors.ErrInvalidTeamSize
		}
		refs = append(refs, *team...)
	}
	seen := make(map[domain.PlayerId]struct{}, len(refs))
	for _, id := range refs {
		if _, dup := seen[id]; dup {
			return internal_errors.ErrDuplicatePlayer
		}
		seen[id] = struct{}{}
	}
	return nil
}

func (v *MatchValidator) Sets(sets []domain.SetScore) error {
	if len(sets) < domain.MinSets || len(sets) > domain.MaxSets {
		return internal_errors.ErrInvalidSetCount
	}
	for i, s := range sets {
		if s.Team1Score < 0 || s.Team2Score < 0 {
			return internal_errors.NewValidationError(internal_errors.InvalidScore,
				fmt.Sprintf("Set %d has a negative score", i+1))
		}
	}
	return nil
}

// PlayersExist fails with UnknownPlayer when lookup finds fewer players than refs.
// refs must already be distinct, which Teams and ProposedTeams guarantee.
func (v *MatchValidator) PlayersExist(ctx context.Context, refs []domain.PlayerId, lookup PlayerLookup) error {
	found, err := lookup.PlayersByIds(ctx, refs)
	if err != nil {
		return err
	}
	if len(found) < len(refs) {
		return internal_errors.ErrUnknownPlayer
	}
	return nil
}
