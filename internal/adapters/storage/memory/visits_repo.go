package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"front-desk/internal/domain/stats"
	"front-desk/internal/domain/visits"
)

// VisitRepo guarda visitas e historial en memoria. Implementa
// visits.Repository y stats.Repository (los conteos leen el mismo mapa).
// El mutex único hace que cada Transition sea una sección crítica
// completa: dos receives concurrentes sobre la misma visita se
// serializan y el segundo ve el estado final del primero.
type VisitRepo struct {
	mu      sync.RWMutex
	byID    map[string]visits.Visit
	history map[string][]visits.HistoryEntry // visitID => entradas en orden de inserción
}

func NewVisitRepo() *VisitRepo {
	return &VisitRepo{
		byID:    make(map[string]visits.Visit),
		history: make(map[string][]visits.HistoryEntry),
	}
}

func (r *VisitRepo) Create(ctx context.Context, v visits.Visit, origin *visits.HistoryEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(v.ID) == "" {
		return errors.New("visit id required")
	}
	if _, exists := r.byID[v.ID]; exists {
		return errors.New("visit already exists")
	}

	r.byID[v.ID] = v
	if origin != nil {
		r.history[v.ID] = append(r.history[v.ID], *origin)
	}
	return nil
}

func (r *VisitRepo) List(ctx context.Context, f visits.ListFilter) ([]visits.Visit, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	name := strings.ToLower(strings.TrimSpace(f.Name))

	out := make([]visits.Visit, 0)
	for _, v := range r.byID {
		if name != "" && !strings.Contains(strings.ToLower(v.Name), name) {
			continue
		}
		if f.Status != "" && v.Status != f.Status {
			continue
		}
		if f.DestinationID != nil {
			if v.CurrentDestinationID == nil || *v.CurrentDestinationID != *f.DestinationID {
				continue
			}
		}
		out = append(out, v)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	total := len(out)

	// Paginación sobre el conjunto filtrado
	if f.Offset >= len(out) {
		return []visits.Visit{}, total, nil
	}
	out = out[f.Offset:]
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}

	return out, total, nil
}

func (r *VisitRepo) GetByID(ctx context.Context, id string) (visits.Visit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.byID[id]
	if !ok {
		return visits.Visit{}, visits.ErrNotFound
	}
	return v, nil
}

func (r *VisitRepo) HistoryByVisit(ctx context.Context, visitID string) ([]visits.HistoryEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	src := r.history[visitID]
	out := make([]visits.HistoryEntry, len(src))
	copy(out, src)

	// El orden de inserción ya es timestamp asc; el sort estable
	// solo cubre timestamps idénticos.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out, nil
}

func (r *VisitRepo) Transition(ctx context.Context, in visits.TransitionInput) (visits.Visit, visits.HistoryEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.byID[in.VisitID]
	if !ok {
		return visits.Visit{}, visits.HistoryEntry{}, visits.ErrNotFound
	}

	// Recheck bajo lock: el perdedor de una carrera ve el estado final.
	if v.Status == visits.StatusCompleted {
		return visits.Visit{}, visits.HistoryEntry{}, visits.ErrInvalidState
	}

	entry := visits.HistoryEntry{
		ID:                in.HistoryID,
		VisitID:           v.ID,
		FromDestinationID: v.CurrentDestinationID,
		ToDestinationID:   in.NextDestinationID,
		ReceivedBy:        in.ReceivedBy,
		Timestamp:         in.At,
	}

	if in.NextDestinationID != nil {
		v.CurrentDestinationID = in.NextDestinationID
		// status sigue pending
	} else {
		v.Status = visits.StatusCompleted
		// el destino actual no cambia al completar
	}
	v.UpdatedAt = in.At

	// Update + append juntos dentro del mismo lock: nunca queda uno sin
	// el otro.
	r.byID[v.ID] = v
	r.history[v.ID] = append(r.history[v.ID], entry)

	return v, entry, nil
}

// CountCreatedBetween implementa stats.Repository sobre el mismo mapa.
func (r *VisitRepo) CountCreatedBetween(ctx context.Context, from, to time.Time, destinationID *int64) (stats.Summary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out stats.Summary
	for _, v := range r.byID {
		if v.CreatedAt.Before(from) || v.CreatedAt.After(to) {
			continue
		}
		if destinationID != nil {
			if v.CurrentDestinationID == nil || *v.CurrentDestinationID != *destinationID {
				continue
			}
		}
		out.Total++
		switch v.Status {
		case visits.StatusPending:
			out.Pending++
		case visits.StatusCompleted:
			out.Completed++
		}
	}
	return out, nil
}
