package server

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// extractToken pulls the bearer token from the Authorization header, with
// a query-string fallback for browser navigation.
func extractToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return r.URL.Query().Get("token")
}

// authorized performs a constant-time comparison against the instance token.
func (s *Server) authorized(r *http.Request) bool {
	provided := extractToken(r)
	if provided == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(provided), []byte(s.token)) == 1
}
