package visits

import "time"

// Visit representa un visitante o pieza de correo interno que se mueve
// por el edificio. Se crea en recepción y solo muta vía Receive.
type Visit struct {
	ID string

	Name      string
	Purpose   string
	Telephone string

	Status Status

	// CurrentDestinationID es nil cuando la visita quedó completada sin
	// destino posterior, o cuando se registró sin destino inicial
	// (es decir, sigue en recepción).
	CurrentDestinationID *int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HistoryEntry es un traspaso registrado: de qué destino salió la visita
// y a cuál llegó. Append-only; ordenado por Timestamp asc reconstruye
// el recorrido completo.
//
// FromDestinationID nil => salió de recepción.
// ToDestinationID nil   => recorrido terminado, sin destino posterior.
type HistoryEntry struct {
	ID      string
	VisitID string

	FromDestinationID *int64
	ToDestinationID   *int64

	// ReceivedBy es texto libre: el nombre de quien operó el traspaso.
	// No se valida contra ningún registro de usuarios.
	ReceivedBy string

	Timestamp time.Time
}

// Action deriva la etiqueta del traspaso. Nunca se persiste.
func (h HistoryEntry) Action() Action {
	switch {
	case h.ToDestinationID == nil:
		return ActionCompleted
	case h.FromDestinationID == nil:
		return ActionRegistered
	default:
		return ActionRedirected
	}
}
