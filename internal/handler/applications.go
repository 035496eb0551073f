package handler

import (
	"net/http"

	"github.com/anoodleReza/application-tracker/internal/export"
	"github.com/anoodleReza/application-tracker/internal/service"
	"github.com/gorilla/mux"
)

// ListApplications returns the caller's applications, newest first
func (h *Handler) ListApplications(w http.ResponseWriter, r *http.Request) {
	id, err := h.identity(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	apps, err := h.svc.ListApplications(r.Context(), id.UserID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, apps)
}

// CreateApplication handles application creation
func (h *Handler) CreateApplication(w http.ResponseWriter, r *http.Request) {
	id, err := h.identity(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var in service.ApplicationInput
	if err := decodeJSON(w, r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}
	app, err := h.svc.CreateApplication(r.Context(), id.UserID, in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, app)
}

func (h *Handler) GetApplication(w http.ResponseWriter, r *http.Request) {
	id, err := h.identity(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	app, err := h.svc.GetApplication(r.Context(), id.UserID, mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, app)
}

func (h *Handler) UpdateApplication(w http.ResponseWriter, r *http.Request) {
	id, err := h.identity(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var in service.ApplicationInput
	if err := decodeJSON(w, r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}
	app, err := h.svc.UpdateApplication(r.Context(), id.UserID, mux.Vars(r)["id"], in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, app)
}

// DeleteApplication removes an application together with its interviews
func (h *Handler) DeleteApplication(w http.ResponseWriter, r *http.Request) {
	id, err := h.identity(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.svc.DeleteApplication(r.Context(), id.UserID, mux.Vars(r)["id"]); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ExportApplications streams the caller's applications as an XML attachment
func (h *Handler) ExportApplications(w http.ResponseWriter, r *http.Request) {
	id, err := h.identity(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	apps, err := h.svc.ListApplications(r.Context(), id.UserID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	doc, err := export.ApplicationsXML(apps, h.clock.Now())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(doc); err != nil {
		h.log.WithError(err).Warn("Failed to write export")
	}
}
