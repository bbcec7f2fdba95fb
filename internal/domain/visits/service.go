package visits

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"front-desk/internal/domain/destinations"
	"front-desk/internal/ports/auth"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidReference = errors.New("invalid reference")
	ErrInvalidState     = errors.New("invalid state")
	ErrNotFound         = errors.New("visit not found")
	ErrForbidden        = errors.New("forbidden")
)

const (
	defaultLimit = 50
	maxLimit     = 200

	minNameLen      = 2
	minTelephoneLen = 5
	maxTelephoneLen = 32
)

type Service struct {
	repo  Repository
	dests destinations.Repository
	now   func() time.Time
}

func NewService(repo Repository, dests destinations.Repository) *Service {
	return &Service{
		repo:  repo,
		dests: dests,
		now:   time.Now,
	}
}

type CreateInput struct {
	Name      string
	Purpose   string
	Telephone string

	// InitialDestinationID opcional: si viene, la visita sale de
	// recepción hacia ese destino y se registra el primer traspaso.
	InitialDestinationID *int64
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Visit, error) {
	name := strings.TrimSpace(in.Name)
	purpose := strings.TrimSpace(in.Purpose)
	tel := strings.TrimSpace(in.Telephone)

	if len(name) < minNameLen || len(purpose) < minNameLen {
		return Visit{}, ErrInvalidInput
	}
	if !validTelephone(tel) {
		return Visit{}, ErrInvalidInput
	}

	// Validar referencia ANTES de insertar nada.
	if in.InitialDestinationID != nil {
		ok, err := s.dests.Exists(ctx, *in.InitialDestinationID)
		if err != nil {
			return Visit{}, fmt.Errorf("check destination: %w", err)
		}
		if !ok {
			return Visit{}, ErrInvalidReference
		}
	}

	now := s.now()
	v := Visit{
		ID:                   uuid.NewString(),
		Name:                 name,
		Purpose:              purpose,
		Telephone:            tel,
		Status:               StatusPending,
		CurrentDestinationID: in.InitialDestinationID,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	// Única entrada de historial en creación: "salió de recepción".
	var origin *HistoryEntry
	if in.InitialDestinationID != nil {
		origin = &HistoryEntry{
			ID:                uuid.NewString(),
			VisitID:           v.ID,
			FromDestinationID: nil,
			ToDestinationID:   in.InitialDestinationID,
			ReceivedBy:        "receptionist",
			Timestamp:         now,
		}
	}

	if err := s.repo.Create(ctx, v, origin); err != nil {
		return Visit{}, err
	}
	return v, nil
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]Visit, int, error) {
	f.DestinationID = nil // el listado global nunca filtra por destino
	return s.list(ctx, f)
}

// ListForDestination es la cola de la oficina del caller. El destino sale
// SIEMPRE de la identidad, nunca del request, para no filtrar visitas
// de otras oficinas.
func (s *Service) ListForDestination(ctx context.Context, id auth.Identity, f ListFilter) ([]Visit, int, error) {
	if id.Role != auth.RoleStaff && id.Role != auth.RoleAdmin {
		return nil, 0, ErrForbidden
	}
	if id.HomeDestinationID == nil {
		return nil, 0, ErrForbidden
	}
	f.DestinationID = id.HomeDestinationID
	return s.list(ctx, f)
}

func (s *Service) list(ctx context.Context, f ListFilter) ([]Visit, int, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, 0, ErrInvalidInput
	}
	if f.Limit <= 0 {
		f.Limit = defaultLimit
	}
	if f.Limit > maxLimit {
		f.Limit = maxLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	f.Name = strings.TrimSpace(f.Name)

	return s.repo.List(ctx, f)
}

func (s *Service) GetWithHistory(ctx context.Context, id string) (Visit, []HistoryEntry, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Visit{}, nil, ErrNotFound
	}

	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Visit{}, nil, err
	}

	history, err := s.repo.HistoryByVisit(ctx, id)
	if err != nil {
		return Visit{}, nil, err
	}
	return v, history, nil
}

type ReceiveInput struct {
	ReceivedBy string

	// NextDestinationID nil => completar; no nil => redirigir.
	NextDestinationID *int64
}

// Receive aplica la única transición del motor: Pending@D -> Completed o
// Pending@D -> Pending@D'. Toda validación y autorización ocurre antes de
// mutar; el update + append se aplican en una sola unidad atómica.
func (s *Service) Receive(ctx context.Context, id auth.Identity, visitID string, in ReceiveInput) (Visit, HistoryEntry, error) {
	receivedBy := strings.TrimSpace(in.ReceivedBy)
	if len(receivedBy) < minNameLen {
		return Visit{}, HistoryEntry{}, ErrInvalidInput
	}

	v, err := s.repo.GetByID(ctx, strings.TrimSpace(visitID))
	if err != nil {
		return Visit{}, HistoryEntry{}, err
	}

	if !CanReceive(id, v) {
		return Visit{}, HistoryEntry{}, ErrForbidden
	}
	if v.Status == StatusCompleted {
		return Visit{}, HistoryEntry{}, ErrInvalidState
	}

	if in.NextDestinationID != nil {
		ok, err := s.dests.Exists(ctx, *in.NextDestinationID)
		if err != nil {
			return Visit{}, HistoryEntry{}, fmt.Errorf("check destination: %w", err)
		}
		if !ok {
			return Visit{}, HistoryEntry{}, ErrInvalidReference
		}
	}

	// El repositorio relee el estado bajo lock: si otro Receive ganó la
	// carrera y completó la visita, esto devuelve ErrInvalidState.
	return s.repo.Transition(ctx, TransitionInput{
		VisitID:           v.ID,
		HistoryID:         uuid.NewString(),
		NextDestinationID: in.NextDestinationID,
		ReceivedBy:        receivedBy,
		At:                s.now(),
	})
}

// validTelephone: solo dígitos, largo 5..32.
func validTelephone(tel string) bool {
	if len(tel) < minTelephoneLen || len(tel) > maxTelephoneLen {
		return false
	}
	for _, r := range tel {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
