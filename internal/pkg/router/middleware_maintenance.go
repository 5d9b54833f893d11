package router

import (
	"net/http"
	"strings"

	"github.com/shandysiswandi/turftime/internal/pkg/config"
)

const reasonMaintenance = "MAINTENANCE"

// middlewareMaintenance answers 503 for the routes listed in
// app.maintenance.endpoints. An entry is either a route ("/api/auth/login")
// or a method and route ("POST /api/auth/login").
func middlewareMaintenance(cfg config.Config) Middleware {
	blocked := make(map[string]struct{})
	if cfg != nil {
		for _, entry := range cfg.GetArray("app.maintenance.endpoints") {
			blocked[strings.Join(strings.Fields(entry), " ")] = struct{}{}
		}
	}

	return func(next http.Handler) http.Handler {
		if len(blocked) == 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route := matchedRoutePath(r)
			_, byRoute := blocked[route]
			_, byKey := blocked[routeKey(r.Method, route)]
			if byRoute || byKey {
				writeJSON(w, errorResponse{Message: "Service is under maintenance", Reason: reasonMaintenance}, http.StatusServiceUnavailable)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
