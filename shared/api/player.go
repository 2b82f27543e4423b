package api

import (
	"time"

	"github.com/padel-tracker/padel/shared/domain"
)

// Request DTOs

type CreatePlayerRequest struct {
	FirstName   string  `json:"first_name" validate:"required"`
	LastName    string  `json:"last_name" validate:"required"`
	Age         int     `json:"age" validate:"required,min=1,max=120"`
	Nationality string  `json:"nationality" validate:"required"`
	ImageUrl    *string `json:"image_url,omitempty"`
}

// UpdatePlayerRequest only changes the supplied fields
type UpdatePlayerRequest struct {
	FirstName   *string `json:"first_name,omitempty" validate:"omitempty,min=1"`
	LastName    *string `json:"last_name,omitempty" validate:"omitempty,min=1"`
	Age         *int    `json:"age,omitempty" validate:"omitempty,min=1,max=120"`
	Nationality *string `json:"nationality,omitempty" validate:"omitempty,min=1"`
	ImageUrl    *string `json:"image_url,omitempty"`
}

// Response DTOs

type PlayerResponse struct {
	Id          domain.PlayerId `json:"id"`
	FirstName   string          `json:"first_name"`
	LastName    string          `json:"last_name"`
	FullName    string          `json:"full_name"`
	Age         int             `json:"age"`
	Nationality string          `json:"nationality"`
	ImageUrl    *string         `json:"image_url"`
	CreatedAt   time.Time       `json:"created_at"`
}

type PlayerListResponse struct {
	Count   int              `json:"count"`
	Players []PlayerResponse `json:"players"`
}

type PlayerSummaryResponse struct {
	Id        domain.PlayerId `json:"id"`
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	FullName  string          `json:"full_name"`
	ImageUrl  *string         `json:"image_url"`
}

func NewPlayerResponse(p domain.Player) PlayerResponse {
	return PlayerResponse{
		Id:          p.Id,
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		FullName:    p.FullName(),
		Age:         p.Age,
		Nationality: p.Nationality,
		ImageUrl:    p.ImageUrl,
		CreatedAt:   p.CreatedAt,
	}
}

func NewPlayerListResponse(players []domain.Player) PlayerListResponse {
	resp := PlayerListResponse{Count: len(players), Players: make([]PlayerResponse, len(players))}
	for i, p := range players {
		resp.Players[i] = NewPlayerResponse(p)
	}
	return resp
}

func newPlayerSummaries(players []domain.PlayerSummary) []PlayerSummaryResponse {
	out := make([]PlayerSummaryResponse, len(players))
	for i, p := range players {
		out[i] = PlayerSummaryResponse{Id: p.Id, FirstName: p.FirstName, LastName: p.LastName, FullName: p.FullName(), ImageUrl: p.ImageUrl}
	}
	return out
}
