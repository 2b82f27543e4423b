package pg

import (
	"context"
	"fmt"

	"github.com/padel-tracker/padel/shared/domain"
)

// populateMatches attaches player summaries and the creator summary to each
// match with one query per table. References to rows that no longer exist
// are left out.
func (s *Storage) populateMatches(ctx context.Context, q Querier, matches []*domain.Match) error {
	if len(matches) == 0 {
		return nil
	}

	playerSet := make(map[domain.PlayerId]struct{})
	userSet := make(map[domain.UserId]struct{})
	for _, m := range matches {
		for _, id := range m.AllPlayers() {
			playerSet[id] = struct{}{}
		}
		userSet[m.CreatedBy] = struct{}{}
	}

	playerIds := make([]domain.PlayerId, 0, len(playerSet))
	for id := range playerSet {
		playerIds = append(playerIds, id)
	}
	players, err := s.playersByIds(ctx, q, playerIds)
	if err != nil {
		return fmt.Errorf("failed to populate match players: %w", err)
	}
	byId := make(map[domain.PlayerId]domain.PlayerSummary, len(players))
	for _, p := range players {
		byId[p.Id] = p.Summary()
	}

	userIds := make([]domain.UserId, 0, len(userSet))
	for id := range userSet {
		userIds = append(userIds, id)
	}
	users, err := s.userSummaries(ctx, q, userIds)
	if err != nil {
		return fmt.Errorf("failed to populate match creators: %w", err)
	}

	for _, m := range matches {
		m.Team1 = summariesFor(m.Team1Players, byId)
		m.Team2 = summariesFor(m.Team2Players, byId)
		if u, ok := users[m.CreatedBy]; ok {
			creator := u
			m.Creator = &creator
		}
	}
	return nil
}

func summariesFor(ids []domain.PlayerId, byId map[domain.PlayerId]domain.PlayerSummary) []domain.PlayerSummary {
	out := make([]domain.PlayerSummary, 0, len(ids))
	for _, id := range ids {
		if p, ok := byId[id]; ok {
			out = append(out, p)
		}
	}
	return out
}
