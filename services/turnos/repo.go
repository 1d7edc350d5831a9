package turnos

import (
	"errors"
	"sync"

	"turnobot/models"
)

// ErrNotFound is returned when no turno matches the requested id.
var ErrNotFound = errors.New("turno not found")

// Repository keeps confirmed turnos for listing and cancellation.
type Repository interface {
	Add(turno models.Turno)
	GetByID(id string) (*models.Turno, error)
	ListByPhone(phone string) []models.Turno
	Cancel(phone, id string) error
}

// MemoryRepository is a mutex-guarded in-memory Repository. Confirmed
// bookings are reconstructible from the payment external reference, so
// nothing here needs to survive a restart.
type MemoryRepository struct {
	mu     sync.RWMutex
	turnos map[string]models.Turno
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{turnos: make(map[string]models.Turno)}
}

func (r *MemoryRepository) Add(turno models.Turno) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.turnos[turno.ID] = turno
}

func (r *MemoryRepository) GetByID(id string) (*models.Turno, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	turno, ok := r.turnos[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &turno, nil
}

func (r *MemoryRepository) ListByPhone(phone string) []models.Turno {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.Turno
	for _, turno := range r.turnos {
		if turno.Telefono == phone {
			out = append(out, turno)
		}
	}
	return out
}

func (r *MemoryRepository) Cancel(phone, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	turno, ok := r.turnos[id]
	if !ok || turno.Telefono != phone {
		return ErrNotFound
	}
	delete(r.turnos, id)
	return nil
}
