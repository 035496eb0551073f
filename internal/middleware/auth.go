package middleware

import (
	"errors"
	"net/http"

	"github.com/anoodleReza/application-tracker/internal/auth"
	apperrors "github.com/anoodleReza/application-tracker/internal/errors"
	"github.com/sirupsen/logrus"
)

// FailureRecorder counts rejected requests by failure kind.
type FailureRecorder interface {
	AuthFailure(kind string)
}

// AuthMiddleware resolves the caller from the session cookie and rejects the
// request with 401 before any handler runs. The resolved identity is stored in
// the request context.
func AuthMiddleware(resolver *auth.Resolver, recorder FailureRecorder, log logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := resolver.Resolve(r)
			if err != nil {
				kind, message := failureKind(err)
				if recorder != nil {
					recorder.AuthFailure(kind)
				}
				apperrors.WriteError(w, r, log, apperrors.UnauthorizedError(message, err))
				return
			}
			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), id)))
		})
	}
}

func failureKind(err error) (kind, message string) {
	if errors.Is(err, auth.ErrNotAuthenticated) {
		return "not_authenticated", "Not authenticated"
	}
	return "invalid_token", "Invalid token"
}
