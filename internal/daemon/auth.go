package daemon

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"filesort/internal/logging"
)

// requireToken wraps next so that requests must present
// "Authorization: Bearer <token>". An empty token disables the check.
func (s *apiServer) requireToken(token string, next http.Handler) http.Handler {
	if token == "" {
		return next
	}
	want := []byte(token)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		presented, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(strings.TrimSpace(presented)), want) != 1 {
			s.logger.DebugContext(r.Context(), "request rejected",
				logging.String("path", r.URL.Path),
				logging.String(logging.FieldEventType, "auth_rejected"),
			)
			w.Header().Set("WWW-Authenticate", `Bearer realm="filesort"`)
			s.writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}
