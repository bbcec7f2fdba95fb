package stats

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"front-desk/internal/middleware"
	"front-desk/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/stats", func(sr chi.Router) {
		// Conteos globales del día
		sr.Get("/", todayStatsHandler(svc))

		// Conteos de la oficina del caller (admin puede pedir otra)
		sr.Get("/office", officeStatsHandler(svc))
	})
}

// todayStatsHandler godoc
// @Summary Estadísticas del día
// @Description Total / pendientes / completadas de las visitas creadas hoy (día calendario local).
// @Tags stats
// @Produce json
// @Success 200 {object} Summary
// @Failure 401 {object} map[string]string
// @Router /stats [get]
func todayStatsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireIdentity(w, r); !ok {
			return
		}

		out, err := svc.Today(r.Context(), nil)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal", "internal error")
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// officeStatsHandler godoc
// @Summary Estadísticas del día por oficina
// @Description Igual que /stats pero filtrado por el destino actual. El destino sale de la identidad; un admin puede pedir otro con ?destination_id.
// @Tags stats
// @Produce json
// @Param destination_id query int false "Solo admin: destino a consultar"
// @Success 200 {object} Summary
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /stats/office [get]
func officeStatsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireIdentity(w, r)
		if !ok {
			return
		}

		destID := id.HomeDestinationID

		// Override solo para admin; staff queda clavado a su oficina.
		if raw := strings.TrimSpace(r.URL.Query().Get("destination_id")); raw != "" {
			if id.Role != auth.RoleAdmin {
				writeError(w, http.StatusForbidden, "forbidden", "forbidden")
				return
			}
			v, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || v < 1 {
				writeError(w, http.StatusBadRequest, "invalid_input", "destination_id must be a positive integer")
				return
			}
			destID = &v
		}

		if destID == nil {
			writeError(w, http.StatusForbidden, "forbidden", "caller has no home destination")
			return
		}

		out, err := svc.Today(r.Context(), destID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal", "internal error")
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func requireIdentity(w http.ResponseWriter, r *http.Request) (auth.Identity, bool) {
	id, ok := middleware.GetIdentity(r.Context())
	if !ok || strings.TrimSpace(id.UserID) == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing or invalid credentials")
		return auth.Identity{}, false
	}
	return id, true
}

func writeError(w http.ResponseWriter, status int, kind, msg string) {
	writeJSON(w, status, map[string]string{"kind": kind, "error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
