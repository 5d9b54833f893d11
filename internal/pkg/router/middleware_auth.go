package router

import (
	"net/http"
	"strings"

	"github.com/shandysiswandi/turftime/internal/pkg/jwt"
)

// routeKey identifies an endpoint as "METHOD /route".
func routeKey(method, route string) string {
	return method + " " + route
}

// bearerToken extracts the token of an "Authorization: Bearer <token>" header.
func bearerToken(r *http.Request) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(r.Header.Get("Authorization")), " ")
	token = strings.TrimSpace(token)
	if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", false
	}
	return token, true
}

// middlewareAuthentication requires a valid bearer token on every route not
// listed in public and stores its claims in the request context.
func middlewareAuthentication(verifier jwt.JWT, public map[string]struct{}) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := public[routeKey(r.Method, matchedRoutePath(r))]; ok {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := bearerToken(r)
			if !ok {
				writeJSON(w, errorResponse{Message: "Authentication required", Reason: reasonUnauthenticated}, http.StatusUnauthorized)
				return
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				writeJSON(w, errorResponse{Message: "Invalid or expired token", Reason: reasonUnauthenticated}, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(jwt.SetAuth(r.Context(), claims)))
		})
	}
}
