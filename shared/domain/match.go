package domain

import "time"

const (
	PlayersPerTeam = 2
	MinSets        = 1
	MaxSets        = 5
)

type SetScore struct {
	Team1Score int `json:"team1Score"`
	Team2Score int `json:"team2Score"`
}

type Match struct {
	Id           MatchId
	Date         time.Time
	Team1Players []PlayerId
	Team2Players []PlayerId
	Sets         []SetScore
	Notes        *string
	CreatedBy    UserId
	CreatedAt    time.Time

	// Populated on reads. Players missing from storage are left out.
	Team1   []PlayerSummary
	Team2   []PlayerSummary
	Creator *UserSummary
}

// AllPlayers returns team1 followed by team2.
func (m Match) AllPlayers() []PlayerId {
	all := make([]PlayerId, 0, len(m.Team1Players)+len(m.Team2Players))
	all = append(all, m.Team1Players...)
	return append(all, m.Team2Players...)
}

// to iterate thru layers: handler -> service -> storage
type MatchCreationData struct {
	Date         *time.Time
	Team1Players []PlayerId
	Team2Players []PlayerId
	Sets         []SetScore
	Notes        *string
}

// nil fields are left untouched
type MatchUpdateData struct {
	Date         *time.Time
	Team1Players *[]PlayerId
	Team2Players *[]PlayerId
	Sets         *[]SetScore
	Notes        *string
}

func (d MatchUpdateData) TouchesTeams() bool {
	return d.Team1Players != nil || d.Team2Players != nil
}

func (d MatchUpdateData) IsEmpty() bool {
	return d.Date == nil && !d.TouchesTeams() && d.Sets == nil && d.Notes == nil
}
