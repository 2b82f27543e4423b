package handler

import (
	"net/http"

	"github.com/padel-tracker/padel/shared/api"
	"github.com/padel-tracker/padel/shared/domain"
	"github.com/padel-tracker/padel/shared/errors"
	mw "github.com/padel-tracker/padel/shared/middleware"
	"github.com/padel-tracker/padel/shared/utils"
)

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var body api.RegisterRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	user, token, err := h.auth.Register(r.Context(), domain.RegistrationData{
		Credentials: domain.Credentials{Email: body.Email, Password: body.Password},
		Name:        body.Name,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	h.setAuthCookie(w, token)
	utils.WriteJSON(w, http.StatusCreated, api.AuthResponse{UserResponse: api.NewUserResponse(user), AccessToken: token})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var body api.LoginRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	user, token, err := h.auth.Login(r.Context(), domain.Credentials{Email: body.Email, Password: body.Password})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	h.setAuthCookie(w, token)
	utils.WriteJSON(w, http.StatusOK, api.AuthResponse{UserResponse: api.NewUserResponse(user), AccessToken: token})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Path:     "/",
		Name:     mw.AccessTokenCookie,
		Value:    "",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cfg.Public.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	utils.WriteJSON(w, http.StatusOK, api.LogoutResponse{Message: "Logged out"})
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)
	if user == nil {
		utils.WriteErrorAndStatusCode(w, errors.ErrUnauthorized)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.NewUserResponse(*user))
}

func (h *Handler) setAuthCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Path:     "/",
		Name:     mw.AccessTokenCookie,
		Value:    token,
		MaxAge:   int(h.cfg.JwtTTL().Seconds()),
		HttpOnly: true,
		Secure:   h.cfg.Public.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}
