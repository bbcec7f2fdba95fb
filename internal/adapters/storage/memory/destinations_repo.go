package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"front-desk/internal/domain/destinations"
)

type destinationRepo struct {
	mu   sync.RWMutex
	byID map[int64]destinations.Destination
}

// NewDestinationRepo crea el catálogo en memoria con el seed dado.
// El core nunca muta el catálogo, así que no hay operaciones de escritura.
func NewDestinationRepo(seed []destinations.Destination) destinations.Repository {
	byID := make(map[int64]destinations.Destination, len(seed))
	for _, d := range seed {
		byID[d.ID] = d
	}
	return &destinationRepo{byID: byID}
}

// DefaultSeed replica el catálogo inicial del despliegue:
// recepción + oficinas.
func DefaultSeed() []destinations.Destination {
	names := []string{"Reception", "Office A", "Office B", "Accounts", "HR"}
	out := make([]destinations.Destination, 0, len(names))
	for i, n := range names {
		out = append(out, destinations.Destination{
			ID:        int64(i + 1),
			Name:      n,
			CreatedAt: time.Now(),
		})
	}
	return out
}

func (r *destinationRepo) List(ctx context.Context) ([]destinations.Destination, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]destinations.Destination, 0, len(r.byID))
	for _, d := range r.byID {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *destinationRepo) GetByID(ctx context.Context, id int64) (destinations.Destination, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.byID[id]
	if !ok {
		return destinations.Destination{}, destinations.ErrNotFound
	}
	return d, nil
}

func (r *destinationRepo) Exists(ctx context.Context, id int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byID[id]
	return ok, nil
}
