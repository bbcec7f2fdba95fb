package destinations

import "time"

// Destination representa un departamento/oficina del edificio al que se
// puede dirigir una visita. El catálogo se siembra por administración;
// el core nunca lo muta.
type Destination struct {
	ID   int64
	Name string

	CreatedAt time.Time
}
