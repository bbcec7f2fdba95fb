package destinations

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	// Catálogo público, igual que en el resto de lecturas de referencia.
	r.Get("/destinations", listDestinationsHandler(svc))
}

type destinationResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// listDestinationsHandler godoc
// @Summary Listar destinos
// @Description Devuelve el catálogo de destinos (departamentos) ordenado por nombre.
// @Tags destinations
// @Produce json
// @Success 200 {array} destinationResponse
// @Router /destinations [get]
func listDestinationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]destinationResponse, 0, len(items))
		for _, d := range items {
			out = append(out, destinationResponse{
				ID:        d.ID,
				Name:      d.Name,
				CreatedAt: d.CreatedAt,
			})
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]any{"data": out})
	}
}
