package visits

import (
	"context"
	"time"
)

// ListFilter filtra y pagina el listado de visitas.
// DestinationID lo setea el service desde la identidad del caller
// (nunca desde input del cliente) para la cola de una oficina.
type ListFilter struct {
	Name          string
	Status        Status
	DestinationID *int64

	Limit  int
	Offset int
}

// TransitionInput es la transición ya validada que el repositorio debe
// aplicar de forma atómica: update de la visita + append al historial,
// ambos o ninguno.
//
// NextDestinationID nil => completar; no nil => redirigir.
// El repositorio relee el destino actual bajo lock/transacción para
// armar FromDestinationID, y rechaza con ErrInvalidState si la visita
// ya está completada (serializa receives concurrentes).
type TransitionInput struct {
	VisitID   string
	HistoryID string

	NextDestinationID *int64
	ReceivedBy        string

	At time.Time
}

type Repository interface {
	// Create inserta la visita y, si origin no es nil, su entrada de
	// historial de origen en la misma unidad atómica.
	Create(ctx context.Context, v Visit, origin *HistoryEntry) error

	// List devuelve (página, total filtrado sin paginar),
	// ordenado por created_at desc.
	List(ctx context.Context, f ListFilter) ([]Visit, int, error)

	GetByID(ctx context.Context, id string) (Visit, error)

	// HistoryByVisit devuelve el historial ordenado por timestamp asc.
	HistoryByVisit(ctx context.Context, visitID string) ([]HistoryEntry, error)

	Transition(ctx context.Context, in TransitionInput) (Visit, HistoryEntry, error)
}
