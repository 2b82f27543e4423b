package pg

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/padel-tracker/padel/shared/domain"
	internal_errors "github.com/padel-tracker/padel/shared/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var matchCreator domain.User

func creator(t *testing.T) domain.User {
	t.Helper()
	if matchCreator.Id == uuid.Nil {
		matchCreator = createTestUser(t, "creator-"+uuid.NewString()+"@example.com")
	}
	return matchCreator
}

func createTestMatchAt(t *testing.T, date time.Time) domain.Match {
	t.Helper()
	p1, p2, p3, p4 := createTestPlayer(t, "P1"), createTestPlayer(t, "P2"), createTestPlayer(t, "P3"), createTestPlayer(t, "P4")
	notes := "good game"
	match, err := storage.CreateMatch(context.Background(), domain.Match{
		Date:         date,
		Team1Players: []domain.PlayerId{p1.Id, p2.Id},
		Team2Players: []domain.PlayerId{p3.Id, p4.Id},
		Sets:         []domain.SetScore{{Team1Score: 3, Team2Score: 1}, {Team1Score: 2, Team2Score: 3}, {Team1Score: 4, Team2Score: 2}},
		Notes:        &notes,
		CreatedBy:    creator(t).Id,
	})
	require.NoError(t, err)
	return match
}

func createTestMatch(t *testing.T) domain.Match {
	return createTestMatchAt(t, time.Now().UTC().Truncate(time.Second))
}

func TestCreateMatch(t *testing.T) {
	date := time.Date(2024, 6, 1, 18, 30, 0, 0, time.UTC)
	match := createTestMatchAt(t, date)

	assert.NotEqual(t, uuid.Nil, match.Id)
	assert.True(t, date.Equal(match.Date))
	assert.Len(t, match.Sets, 3)
	assert.Equal(t, domain.SetScore{Team1Score: 2, Team2Score: 3}, match.Sets[1])
	require.Len(t, match.Team1, 2)
	require.Len(t, match.Team2, 2)
	assert.Equal(t, "P1", match.Team1[0].FirstName)
	assert.Equal(t, "P4", match.Team2[1].FirstName)
	require.NotNil(t, match.Creator)
	assert.Equal(t, creator(t).Id, match.Creator.Id)
}

func TestCreateMatch_UnknownPlayer(t *testing.T) {
	p1, p2, p3 := createTestPlayer(t, "X1"), createTestPlayer(t, "X2"), createTestPlayer(t, "X3")
	_, err := storage.CreateMatch(context.Background(), domain.Match{
		Date:         time.Now().UTC(),
		Team1Players: []domain.PlayerId{p1.Id, p2.Id},
		Team2Players: []domain.PlayerId{p3.Id, uuid.New()},
		Sets:         []domain.SetScore{{Team1Score: 6, Team2Score: 0}},
		CreatedBy:    creator(t).Id,
	})
	assert.ErrorIs(t, err, internal_errors.ErrUnknownPlayer)
}

func TestGetMatch(t *testing.T) {
	ctx := context.Background()
	created := createTestMatch(t)

	got, err := storage.Match(ctx, created.Id)
	require.NoError(t, err)
	assert.Equal(t, created.Team1Players, got.Team1Players)
	assert.Equal(t, created.Sets, got.Sets)
	require.NotNil(t, got.Notes)
	assert.Equal(t, "good game", *got.Notes)
	assert.Len(t, got.Team1, 2)

	_, err = storage.Match(ctx, uuid.New())
	assert.True(t, internal_errors.IsNotFound(err))
}

func TestMatchesOrderAndByPlayer(t *testing.T) {
	ctx := context.Background()
	earlier := createTestMatchAt(t, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))
	later := createTestMatchAt(t, time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC))

	all, err := storage.Matches(ctx)
	require.NoError(t, err)
	pos := map[uuid.UUID]int{}
	for i, m := range all {
		pos[m.Id] = i
	}
	assert.Less(t, pos[later.Id], pos[earlier.Id], "most recent date first")

	byPlayer, err := storage.MatchesByPlayer(ctx, earlier.Team2Players[0])
	require.NoError(t, err)
	require.Len(t, byPlayer, 1)
	assert.Equal(t, earlier.Id, byPlayer[0].Id)
	assert.Len(t, byPlayer[0].Team2, 2)

	none, err := storage.MatchesByPlayer(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestUpdateMatch(t *testing.T) {
	ctx := context.Background()
	match := createTestMatch(t)

	t.Run("sets only", func(t *testing.T) {
		sets := []domain.SetScore{{Team1Score: 6, Team2Score: 4}}
		updated, err := storage.UpdateMatch(ctx, match.Id, domain.MatchUpdateData{Sets: &sets})
		require.NoError(t, err)
		assert.Equal(t, sets, updated.Sets)
		assert.Equal(t, match.Team1Players, updated.Team1Players)
		require.NotNil(t, updated.Notes)
	})

	t.Run("clear notes", func(t *testing.T) {
		empty := ""
		updated, err := storage.UpdateMatch(ctx, match.Id, domain.MatchUpdateData{Notes: &empty})
		require.NoError(t, err)
		assert.Nil(t, updated.Notes)
	})

	t.Run("swap teams", func(t *testing.T) {
		team1 := match.Team2Players
		team2 := match.Team1Players
		updated, err := storage.UpdateMatch(ctx, match.Id, domain.MatchUpdateData{Team1Players: &team1, Team2Players: &team2})
		require.NoError(t, err)
		assert.Equal(t, team1, updated.Team1Players)
		assert.Equal(t, "P3", updated.Team1[0].FirstName)
	})

	t.Run("missing", func(t *testing.T) {
		date := time.Now().UTC()
		_, err := storage.UpdateMatch(ctx, uuid.New(), domain.MatchUpdateData{Date: &date})
		assert.True(t, internal_errors.IsNotFound(err))
	})
}

func TestDeleteMatch(t *testing.T) {
	ctx := context.Background()
	match := createTestMatch(t)

	require.NoError(t, storage.DeleteMatch(ctx, match.Id))
	_, err := storage.Match(ctx, match.Id)
	assert.True(t, internal_errors.IsNotFound(err))
	assert.True(t, internal_errors.IsNotFound(storage.DeleteMatch(ctx, match.Id)))

	// players are free to go once the match is gone
	assert.NoError(t, storage.DeletePlayer(ctx, match.Team1Players[0]))
}

func TestCreateMatch_UnknownCreator(t *testing.T) {
	p1, p2, p3, p4 := createTestPlayer(t, "U1"), createTestPlayer(t, "U2"), createTestPlayer(t, "U3"), createTestPlayer(t, "U4")
	_, err := storage.CreateMatch(context.Background(), domain.Match{
		Date:         time.Now().UTC(),
		Team1Players: []domain.PlayerId{p1.Id, p2.Id},
		Team2Players: []domain.PlayerId{p3.Id, p4.Id},
		Sets:         []domain.SetScore{{Team1Score: 6, Team2Score: 0}},
		CreatedBy:    uuid.New(),
	})
	assert.ErrorIs(t, err, internal_errors.ErrUnknownSubject)
}
