package stats

import (
	"context"
	"time"

	"github.com/jinzhu/now"
)

// Summary son los conteos del día en curso. Solo lectura, sin efectos.
type Summary struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Completed int `json:"completed"`
}

type Repository interface {
	// CountCreatedBetween cuenta visitas con created_at en [from, to],
	// opcionalmente filtradas por destino actual.
	CountCreatedBetween(ctx context.Context, from, to time.Time, destinationID *int64) (Summary, error)
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// Today cuenta las visitas creadas en el día calendario local en curso.
// destinationID nil => conteo global.
func (s *Service) Today(ctx context.Context, destinationID *int64) (Summary, error) {
	n := now.With(s.now())
	return s.repo.CountCreatedBetween(ctx, n.BeginningOfDay(), n.EndOfDay(), destinationID)
}
