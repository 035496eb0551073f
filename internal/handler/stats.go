package handler

import "net/http"

// DashboardStats returns the caller's dashboard aggregates
func (h *Handler) DashboardStats(w http.ResponseWriter, r *http.Request) {
	id, err := h.identity(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	stats, err := h.svc.Stats(r.Context(), id.UserID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, stats)
}
