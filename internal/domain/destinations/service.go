package destinations

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("destination not found")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]Destination, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id int64) (Destination, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Exists(ctx context.Context, id int64) (bool, error) {
	return s.repo.Exists(ctx, id)
}

// NameIndex devuelve id => nombre para enriquecer respuestas
// (visita actual, from/to del historial) sin N consultas.
func (s *Service) NameIndex(ctx context.Context) (map[int64]string, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	idx := make(map[int64]string, len(all))
	for _, d := range all {
		idx[d.ID] = d.Name
	}
	return idx, nil
}
