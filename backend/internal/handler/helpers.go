package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/padel-tracker/padel/shared/api"
	"github.com/padel-tracker/padel/shared/domain"
	"github.com/padel-tracker/padel/shared/errors"
)

// parseIdParam reads a uuid URL parameter and returns a 400 error when it is malformed
func parseIdParam(r *http.Request, paramName string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, paramName))
	if err != nil {
		return uuid.Nil, errors.BadRequest("invalid " + paramName + ": must be a uuid")
	}
	return id, nil
}

func toMatchUpdateData(body api.UpdateMatchRequest) domain.MatchUpdateData {
	data := domain.MatchUpdateData{
		Date:         body.Date,
		Team1Players: body.Team1Players,
		Team2Players: body.Team2Players,
		Notes:        body.Notes,
	}
	if body.Sets != nil {
		sets := api.ToSetScores(*body.Sets)
		data.Sets = &sets
	}
	return data
}
