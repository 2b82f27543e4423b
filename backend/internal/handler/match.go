package handler

import (
	"net/http"

	"github.com/padel-tracker/padel/shared/api"
	"github.com/padel-tracker/padel/shared/domain"
	mw "github.com/padel-tracker/padel/shared/middleware"
	"github.com/padel-tracker/padel/shared/utils"
)

func (h *Handler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	user, err := mw.RequireAuthenticated(r.Context())
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	var body api.CreateMatchRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	match, err := h.match.Create(r.Context(), user.Id, domain.MatchCreationData{
		Date:         body.Date,
		Team1Players: body.Team1Players,
		Team2Players: body.Team2Players,
		Sets:         api.ToSetScores(body.Sets),
		Notes:        body.Notes,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, api.NewMatchResponse(match, h.renderNotes()))
}

func (h *Handler) GetMatches(w http.ResponseWriter, r *http.Request) {
	matches, err := h.match.List(r.Context())
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.NewMatchListResponse(matches, h.renderNotes()))
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	id, err := parseIdParam(r, "id")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	match, err := h.match.Get(r.Context(), id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.NewMatchResponse(match, h.renderNotes()))
}

func (h *Handler) GetPlayerMatches(w http.ResponseWriter, r *http.Request) {
	playerId, err := parseIdParam(r, "playerId")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	matches, err := h.match.ByPlayer(r.Context(), playerId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.NewMatchListResponse(matches, h.renderNotes()))
}

func (h *Handler) UpdateMatch(w http.ResponseWriter, r *http.Request) {
	id, err := parseIdParam(r, "id")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	var body api.UpdateMatchRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	match, err := h.match.Update(r.Context(), id, toMatchUpdateData(body))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.NewMatchResponse(match, h.renderNotes()))
}

func (h *Handler) DeleteMatch(w http.ResponseWriter, r *http.Request) {
	id, err := parseIdParam(r, "id")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.match.Delete(r.Context(), id); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.MessageResponse{Message: "Match deleted"})
}
