package handler

import (
	"net/http"

	"github.com/padel-tracker/padel/shared/api"
	"github.com/padel-tracker/padel/shared/domain"
	"github.com/padel-tracker/padel/shared/utils"
)

func (h *Handler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	var body api.CreatePlayerRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	player, err := h.player.Create(r.Context(), domain.PlayerCreationData{
		FirstName:   body.FirstName,
		LastName:    body.LastName,
		Age:         body.Age,
		Nationality: body.Nationality,
		ImageUrl:    body.ImageUrl,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, api.NewPlayerResponse(player))
}

func (h *Handler) GetPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := h.player.List(r.Context())
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.NewPlayerListResponse(players))
}

func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	id, err := parseIdParam(r, "id")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	player, err := h.player.Get(r.Context(), id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.NewPlayerResponse(player))
}

func (h *Handler) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	id, err := parseIdParam(r, "id")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	var body api.UpdatePlayerRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	player, err := h.player.Update(r.Context(), id, domain.PlayerUpdateData{
		FirstName:   body.FirstName,
		LastName:    body.LastName,
		Age:         body.Age,
		Nationality: body.Nationality,
		ImageUrl:    body.ImageUrl,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.NewPlayerResponse(player))
}

func (h *Handler) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	id, err := parseIdParam(r, "id")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.player.Delete(r.Context(), id); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.MessageResponse{Message: "Player deleted"})
}
