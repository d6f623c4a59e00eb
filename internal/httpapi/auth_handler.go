package httpapi

import (
	"net/http"
	"storefront-be/internal/auth"
	"storefront-be/internal/user"

	"github.com/go-chi/render"
)

type authResponse struct {
	Token string        `json:"token"`
	User  *user.Summary `json:"user"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var input user.RegisterInput
	if err := render.DecodeJSON(r.Body, &input); err != nil {
		respondError(w, r, user.ErrInvalidInput)
		return
	}

	token, u, err := h.users.Register(r.Context(), input)
	if err != nil {
		respondError(w, r, err)
		return
	}

	h.setTokenCookie(w, token)
	respondData(w, r, http.StatusCreated, "Registered successfully", authResponse{Token: token, User: u.Summary()})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var input user.LoginInput
	if err := render.DecodeJSON(r.Body, &input); err != nil {
		respondError(w, r, user.ErrInvalidCredentials)
		return
	}

	token, u, err := h.users.Login(r.Context(), input)
	if err != nil {
		respondError(w, r, err)
		return
	}

	h.setTokenCookie(w, token)
	respondData(w, r, http.StatusOK, "Logged in successfully", authResponse{Token: token, User: u.Summary()})
}

func (h *Handler) setTokenCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.AccessTokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.tokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}
