package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/anoodleReza/application-tracker/internal/auth"
	apperrors "github.com/anoodleReza/application-tracker/internal/errors"
	"github.com/anoodleReza/application-tracker/internal/service"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
)

const maxBodyBytes = 1 << 20

// Handler serves the JSON API on top of the service layer.
type Handler struct {
	svc           *service.Service
	resolver      *auth.Resolver
	secureCookies bool
	log           *logrus.Logger
	clock         clockwork.Clock
}

// NewHandler creates a handler. secureCookies marks the session cookie Secure.
func NewHandler(svc *service.Service, resolver *auth.Resolver, secureCookies bool, log *logrus.Logger, clock clockwork.Clock) *Handler {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Handler{
		svc:           svc,
		resolver:      resolver,
		secureCookies: secureCookies,
		log:           log,
		clock:         clock,
	}
}

// Health reports that the process is serving.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	apperrors.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// identity returns the caller resolved by the auth middleware, resolving the
// cookie itself when the route was mounted without it.
func (h *Handler) identity(r *http.Request) (auth.Identity, error) {
	id, err := h.resolver.Resolve(r)
	if err != nil {
		if errors.Is(err, auth.ErrNotAuthenticated) {
			return auth.Identity{}, apperrors.UnauthorizedError("Not authenticated", err)
		}
		return auth.Identity{}, apperrors.UnauthorizedError("Invalid token", err)
	}
	return id, nil
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	apperrors.WriteJSON(w, status, v)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	apperrors.WriteError(w, r, h.log, err)
}

// decodeJSON reads a single JSON object from the request body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperrors.ValidationError("Request body is required")
		}
		return apperrors.ValidationError("Invalid request body")
	}
	return nil
}
