package handler

import (
	"net/http"

	"github.com/anoodleReza/application-tracker/internal/service"
	"github.com/gorilla/mux"
)

// CreateInterview schedules an interview on one of the caller's applications
func (h *Handler) CreateInterview(w http.ResponseWriter, r *http.Request) {
	id, err := h.identity(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var in service.InterviewInput
	if err := decodeJSON(w, r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}
	iv, err := h.svc.CreateInterview(r.Context(), id.UserID, in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, iv)
}

func (h *Handler) GetInterview(w http.ResponseWriter, r *http.Request) {
	id, err := h.identity(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	iv, err := h.svc.GetInterview(r.Context(), id.UserID, mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, iv)
}

func (h *Handler) UpdateInterview(w http.ResponseWriter, r *http.Request) {
	id, err := h.identity(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var in service.InterviewInput
	if err := decodeJSON(w, r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}
	iv, err := h.svc.UpdateInterview(r.Context(), id.UserID, mux.Vars(r)["id"], in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, iv)
}

func (h *Handler) DeleteInterview(w http.ResponseWriter, r *http.Request) {
	id, err := h.identity(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.svc.DeleteInterview(r.Context(), id.UserID, mux.Vars(r)["id"]); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
