package visits

// Status es el estado persistido de una visita. Solo dos valores:
// "redirigida" NO se persiste, es una etiqueta derivada del historial
// (ver HistoryEntry.Action).
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

func (s Status) Valid() bool {
	return s == StatusPending || s == StatusCompleted
}

// Action es la etiqueta derivada de una entrada del historial.
type Action string

const (
	// ActionRegistered: la visita salió de recepción hacia su primer destino.
	ActionRegistered Action = "registered"
	// ActionRedirected: un destino la recibió y la reenvió a otro.
	ActionRedirected Action = "redirected"
	// ActionCompleted: un destino la recibió y terminó el recorrido.
	ActionCompleted Action = "completed"
)
