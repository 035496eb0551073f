package handler

import (
	"net/http"

	"github.com/anoodleReza/application-tracker/internal/auth"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type successResponse struct {
	Success bool `json:"success"`
}

type verifyResponse struct {
	IsValid bool           `json:"isValid"`
	User    *auth.Identity `json:"user,omitempty"`
}

// Register handles user registration
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	user, err := h.svc.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, registerResponse{ID: user.ID, Email: user.Email})
}

// Login handles user authentication and sets the session cookie
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	token, _, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	http.SetCookie(w, auth.NewSessionCookie(token, h.secureCookies))
	h.writeJSON(w, http.StatusOK, successResponse{Success: true})
}

// Logout clears the session cookie. The token itself stays valid until it expires.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, auth.ClearSessionCookie(h.secureCookies))
	h.writeJSON(w, http.StatusOK, successResponse{Success: true})
}

// Me returns the authenticated caller
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	id, err := h.identity(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, id)
}

// Verify reports whether the request carries a valid session.
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	id, err := h.resolver.Resolve(r)
	if err != nil {
		h.log.WithError(err).Debug("Session verification failed")
		h.writeJSON(w, http.StatusUnauthorized, verifyResponse{IsValid: false})
		return
	}
	h.writeJSON(w, http.StatusOK, verifyResponse{IsValid: true, User: &id})
}
