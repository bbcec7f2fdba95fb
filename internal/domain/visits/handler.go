package visits

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"front-desk/internal/domain/destinations"
	"front-desk/internal/middleware"
	"front-desk/internal/platform/metrics"
	"front-desk/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, destSvc *destinations.Service, m *metrics.Metrics) {
	r.Route("/visits", func(vr chi.Router) {
		// Alta de visita (receptionist o admin)
		vr.Post("/", createVisitHandler(svc, destSvc, m))

		// Listado global con filtros + paginación
		vr.Get("/", listVisitsHandler(svc, destSvc))

		// Cola de la oficina del caller (destino sale del token, no del query)
		vr.Get("/office", listOfficeVisitsHandler(svc, destSvc))

		// Detalle con historial completo
		vr.Get("/{visitID}", getVisitHandler(svc, destSvc))

		// Recibir: completar o redirigir (staff en su oficina, o admin)
		vr.Patch("/{visitID}/receive", receiveVisitHandler(svc, m))
	})
}

type createVisitRequest struct {
	Name               string `json:"name"`
	Purpose            string `json:"purpose"`
	Telephone          string `json:"telephone"`
	InitialDestination *int64 `json:"initial_destination"` // opcional
}

type visitResponse struct {
	ID                   string    `json:"id"`
	Name                 string    `json:"name"`
	Purpose              string    `json:"purpose"`
	Telephone            string    `json:"telephone"`
	Status               Status    `json:"status"`
	CurrentDestinationID *int64    `json:"current_destination_id"`
	CurrentDestination   *string   `json:"current_destination,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

type historyEntryResponse struct {
	ID                string    `json:"id"`
	VisitID           string    `json:"visit_id"`
	FromDestinationID *int64    `json:"from_destination_id"`
	ToDestinationID   *int64    `json:"to_destination_id"`
	FromDestination   *string   `json:"from_destination,omitempty"`
	ToDestination     *string   `json:"to_destination,omitempty"`
	ReceivedBy        string    `json:"received_by"`
	Action            Action    `json:"action"` // derivada, nunca persistida
	Timestamp         time.Time `json:"timestamp"`
}

type visitWithHistoryResponse struct {
	visitResponse
	History []historyEntryResponse `json:"history"`
}

type receiveVisitRequest struct {
	ReceivedBy      string `json:"received_by"`
	NextDestination *int64 `json:"next_destination"` // nil => completar
}

type receiveVisitResponse struct {
	Status          Status `json:"status"`
	VisitID         string `json:"visit_id"`
	NextDestination *int64 `json:"next_destination,omitempty"`
}

type pagination struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}

// createVisitHandler godoc
// @Summary Registrar visita
// @Description Registra una visita nueva desde recepción, con destino inicial opcional. Requiere rol receptionist o admin.
// @Tags visits
// @Accept json
// @Produce json
// @Param request body createVisitRequest true "Datos de la visita"
// @Success 201 {object} visitResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /visits [post]
func createVisitHandler(svc *Service, destSvc *destinations.Service, m *metrics.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireIdentity(w, r)
		if !ok {
			return
		}
		if id.Role != auth.RoleReceptionist && id.Role != auth.RoleAdmin {
			writeError(w, http.StatusForbidden, "forbidden", "only receptionists can register visits")
			return
		}

		var req createVisitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_input", "invalid json")
			return
		}

		v, err := svc.Create(r.Context(), CreateInput{
			Name:                 req.Name,
			Purpose:              req.Purpose,
			Telephone:            req.Telephone,
			InitialDestinationID: req.InitialDestination,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		m.IncVisitCreated()
		writeJSON(w, http.StatusCreated, toVisitResponse(v, destName(r, destSvc, v.CurrentDestinationID)))
	}
}

// listVisitsHandler godoc
// @Summary Listar visitas
// @Description Listado global con filtro por nombre (substring, case-insensitive) y estado, paginado, ordenado por created_at desc.
// @Tags visits
// @Produce json
// @Param name query string false "Filtro por nombre"
// @Param status query string false "pending | completed"
// @Param limit query int false "Máx 200, default 50"
// @Param offset query int false "Default 0"
// @Success 200 {object} map[string]any
// @Router /visits [get]
func listVisitsHandler(svc *Service, destSvc *destinations.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireIdentity(w, r); !ok {
			return
		}

		f := listFilterFromQuery(r)
		rows, total, err := svc.List(r.Context(), f)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeVisitPage(w, r, destSvc, rows, total, f)
	}
}

// listOfficeVisitsHandler godoc
// @Summary Cola de la oficina
// @Description Visitas cuyo destino actual es la oficina del caller. El destino sale de la identidad del token.
// @Tags visits
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 403 {object} map[string]string
// @Router /visits/office [get]
func listOfficeVisitsHandler(svc *Service, destSvc *destinations.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireIdentity(w, r)
		if !ok {
			return
		}

		f := listFilterFromQuery(r)
		rows, total, err := svc.ListForDestination(r.Context(), id, f)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeVisitPage(w, r, destSvc, rows, total, f)
	}
}

// getVisitHandler godoc
// @Summary Detalle de visita con historial
// @Tags visits
// @Produce json
// @Param visitID path string true "ID de la visita"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Router /visits/{visitID} [get]
func getVisitHandler(svc *Service, destSvc *destinations.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireIdentity(w, r); !ok {
			return
		}

		v, history, err := svc.GetWithHistory(r.Context(), chi.URLParam(r, "visitID"))
		if err != nil {
			writeDomainError(w, err)
			return
		}

		names, _ := destSvc.NameIndex(r.Context())

		out := visitWithHistoryResponse{
			visitResponse: toVisitResponse(v, lookupName(names, v.CurrentDestinationID)),
			History:       make([]historyEntryResponse, 0, len(history)),
		}
		for _, h := range history {
			out.History = append(out.History, toHistoryResponse(h, names))
		}

		writeJSON(w, http.StatusOK, map[string]any{"data": out})
	}
}

// receiveVisitHandler godoc
// @Summary Recibir visita
// @Description Marca la visita como recibida: sin next_destination la completa, con next_destination la redirige. Requiere staff (su propia oficina) o admin.
// @Tags visits
// @Accept json
// @Produce json
// @Param visitID path string true "ID de la visita"
// @Param request body receiveVisitRequest true "Operador y destino siguiente opcional"
// @Success 200 {object} receiveVisitResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /visits/{visitID}/receive [patch]
func receiveVisitHandler(svc *Service, m *metrics.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireIdentity(w, r)
		if !ok {
			return
		}

		var req receiveVisitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_input", "invalid json")
			return
		}

		v, _, err := svc.Receive(r.Context(), id, chi.URLParam(r, "visitID"), ReceiveInput{
			ReceivedBy:        req.ReceivedBy,
			NextDestinationID: req.NextDestination,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		result := string(ActionCompleted)
		if req.NextDestination != nil {
			result = string(ActionRedirected)
		}
		m.IncTransition(result)

		writeJSON(w, http.StatusOK, receiveVisitResponse{
			Status:          v.Status,
			VisitID:         v.ID,
			NextDestination: req.NextDestination,
		})
	}
}

func listFilterFromQuery(r *http.Request) ListFilter {
	q := r.URL.Query()

	f := ListFilter{
		Name:   q.Get("name"),
		Status: Status(strings.TrimSpace(q.Get("status"))),
	}
	if v, err := strconv.Atoi(q.Get("limit")); err == nil {
		f.Limit = v
	}
	if v, err := strconv.Atoi(q.Get("offset")); err == nil {
		f.Offset = v
	}
	return f
}

func writeVisitPage(w http.ResponseWriter, r *http.Request, destSvc *destinations.Service, rows []Visit, total int, f ListFilter) {
	names, _ := destSvc.NameIndex(r.Context())

	out := make([]visitResponse, 0, len(rows))
	for _, v := range rows {
		out = append(out, toVisitResponse(v, lookupName(names, v.CurrentDestinationID)))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"data": out,
		"pagination": pagination{
			Limit:  f.Limit,
			Offset: f.Offset,
			Total:  total,
		},
	})
}

func requireIdentity(w http.ResponseWriter, r *http.Request) (auth.Identity, bool) {
	id, ok := middleware.GetIdentity(r.Context())
	if !ok || strings.TrimSpace(id.UserID) == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing or invalid credentials")
		return auth.Identity{}, false
	}
	return id, true
}

func toVisitResponse(v Visit, currentName *string) visitResponse {
	return visitResponse{
		ID:                   v.ID,
		Name:                 v.Name,
		Purpose:              v.Purpose,
		Telephone:            v.Telephone,
		Status:               v.Status,
		CurrentDestinationID: v.CurrentDestinationID,
		CurrentDestination:   currentName,
		CreatedAt:            v.CreatedAt,
		UpdatedAt:            v.UpdatedAt,
	}
}

func toHistoryResponse(h HistoryEntry, names map[int64]string) historyEntryResponse {
	return historyEntryResponse{
		ID:                h.ID,
		VisitID:           h.VisitID,
		FromDestinationID: h.FromDestinationID,
		ToDestinationID:   h.ToDestinationID,
		FromDestination:   lookupName(names, h.FromDestinationID),
		ToDestination:     lookupName(names, h.ToDestinationID),
		ReceivedBy:        h.ReceivedBy,
		Action:            h.Action(),
		Timestamp:         h.Timestamp,
	}
}

func destName(r *http.Request, destSvc *destinations.Service, id *int64) *string {
	if id == nil {
		return nil
	}
	d, err := destSvc.GetByID(r.Context(), *id)
	if err != nil {
		return nil
	}
	return &d.Name
}

func lookupName(names map[int64]string, id *int64) *string {
	if id == nil || names == nil {
		return nil
	}
	n, ok := names[*id]
	if !ok {
		return nil
	}
	return &n
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "invalid_input", "invalid input")
	case errors.Is(err, ErrInvalidReference):
		writeError(w, http.StatusBadRequest, "invalid_reference", "destination does not exist")
	case errors.Is(err, ErrInvalidState):
		writeError(w, http.StatusConflict, "invalid_state", "visit already completed")
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", "visit not found")
	case errors.Is(err, ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden", "forbidden")
	default:
		// Nunca exponemos detalles internos del storage.
		writeError(w, http.StatusInternalServerError, "internal", "internal error")
	}
}

func writeError(w http.ResponseWriter, status int, kind, msg string) {
	writeJSON(w, status, map[string]string{"kind": kind, "error": msg})
}

// writeJSON está duplicado a propósito en handlers de distintos módulos
// (visits/stats/destinations) para no crear helpers compartidos antes de
// tiempo.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
