package api

import (
	"time"

	"github.com/padel-tracker/padel/shared/domain"
)

// Request DTOs
// Team sizes and set counts are checked by the match validator so that
// callers get a specific error kind instead of a generic 400.

type SetScoreRequest struct {
	Team1Score *int `json:"team1_score" validate:"required"`
	Team2Score *int `json:"team2_score" validate:"required"`
}

type CreateMatchRequest struct {
	Date         *time.Time        `json:"date,omitempty"`
	Team1Players []domain.PlayerId `json:"team1_players" validate:"required"`
	Team2Players []domain.PlayerId `json:"team2_players" validate:"required"`
	Sets         []SetScoreRequest `json:"sets" validate:"required,dive"`
	Notes        *string           `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// UpdateMatchRequest only changes the supplied fields
type UpdateMatchRequest struct {
	Date         *time.Time         `json:"date,omitempty"`
	Team1Players *[]domain.PlayerId `json:"team1_players,omitempty"`
	Team2Players *[]domain.PlayerId `json:"team2_players,omitempty"`
	Sets         *[]SetScoreRequest `json:"sets,omitempty" validate:"omitempty,dive"`
	Notes        *string            `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

func ToSetScores(sets []SetScoreRequest) []domain.SetScore {
	out := make([]domain.SetScore, len(sets))
	for i, s := range sets {
		out[i] = domain.SetScore{Team1Score: *s.Team1Score, Team2Score: *s.Team2Score}
	}
	return out
}

// Response DTOs

type SetScoreResponse struct {
	Team1Score int `json:"team1_score"`
	Team2Score int `json:"team2_score"`
}

type UserSummaryResponse struct {
	Id    domain.UserId `json:"id"`
	Name  string        `json:"name"`
	Email string        `json:"email"`
}

type MatchResponse struct {
	Id           domain.MatchId          `json:"id"`
	Date         time.Time               `json:"date"`
	Team1Players []PlayerSummaryResponse `json:"team1_players"`
	Team2Players []PlayerSummaryResponse `json:"team2_players"`
	Sets         []SetScoreResponse      `json:"sets"`
	Notes        *string                 `json:"notes"`
	NotesHTML    string                  `json:"notes_html,omitempty"`
	CreatedBy    *UserSummaryResponse    `json:"created_by"`
	CreatedAt    time.Time               `json:"created_at"`
}

type MatchListResponse struct {
	Count   int             `json:"count"`
	Matches []MatchResponse `json:"matches"`
}

// NewMatchResponse converts a populated match. renderNotes may be nil.
func NewMatchResponse(m domain.Match, renderNotes func(string) string) MatchResponse {
	resp := MatchResponse{
		Id:           m.Id,
		Date:         m.Date,
		Team1Players: newPlayerSummaries(m.Team1),
		Team2Players: newPlayerSummaries(m.Team2),
		Sets:         make([]SetScoreResponse, len(m.Sets)),
		Notes:        m.Notes,
		CreatedAt:    m.CreatedAt,
	}
	for i, s := range m.Sets {
		resp.Sets[i] = SetScoreResponse{Team1Score: s.Team1Score, Team2Score: s.Team2Score}
	}
	if m.Creator != nil {
		resp.CreatedBy = &UserSummaryResponse{Id: m.Creator.Id, Name: m.Creator.Name, Email: m.Creator.Email}
	}
	if m.Notes != nil && renderNotes != nil {
		resp.NotesHTML = renderNotes(*m.Notes)
	}
	return resp
}

func NewMatchListResponse(matches []domain.Match, renderNotes func(string) string) MatchListResponse {
	resp := MatchListResponse{Count: len(matches), Matches: make([]MatchResponse, len(matches))}
	for i, m := range matches {
		resp.Matches[i] = NewMatchResponse(m, renderNotes)
	}
	return resp
}
