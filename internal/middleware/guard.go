package middleware

import (
	"net/http"
	"strings"

	"github.com/anoodleReza/application-tracker/internal/auth"
)

// RouteGuard redirects clients without a session cookie away from protected
// page groups. It only checks that a token is present; handlers behind it
// still resolve the identity themselves.
func RouteGuard(protected []string, loginPath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !isProtected(r.URL.Path, protected) {
				next.ServeHTTP(w, r)
				return
			}
			if _, ok := auth.TokenFromRequest(r); !ok {
				http.Redirect(w, r, loginPath, http.StatusTemporaryRedirect)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// isProtected matches whole path segments, so /dashboard guards /dashboard
// and /dashboard/stats but not /dashboards.
func isProtected(path string, prefixes []string) bool {
	for _, prefix := range prefixes {
		prefix = strings.TrimSuffix(prefix, "/")
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}
