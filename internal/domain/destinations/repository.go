package destinations

import "context"

type Repository interface {
	// List devuelve el catálogo completo ordenado por nombre asc.
	List(ctx context.Context) ([]Destination, error)
	GetByID(ctx context.Context, id int64) (Destination, error)
	// Exists lo usan visits para validar referencias antes de mutar.
	Exists(ctx context.Context, id int64) (bool, error)
}
