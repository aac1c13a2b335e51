package memory

import (
	"context"
	"sync"

	"combatbible/gymdesk/internal/domain"
	"combatbible/gymdesk/internal/repository"
)

// memoryKlassRepository implements repository.KlassRepository
type memoryKlassRepository struct {
	mu      sync.RWMutex
	klasses []domain.Klass
}

// NewKlassRepository creates a roster holding copies of klasses.
func NewKlassRepository(klasses []domain.Klass) repository.KlassRepository {
	r := &memoryKlassRepository{}
	for _, k := range klasses {
		r.klasses = append(r.klasses, cloneKlass(k))
	}
	return r
}

func (r *memoryKlassRepository) List(ctx context.Context) ([]domain.Klass, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Klass, len(r.klasses))
	for i, k := range r.klasses {
		out[i] = cloneKlass(k)
	}
	return out, nil
}

func (r *memoryKlassRepository) GetByID(ctx context.Context, id string) (*domain.Klass, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i := r.index(id); i >= 0 {
		k := cloneKlass(r.klasses[i])
		return &k, nil
	}
	return nil, repository.ErrNotFound
}

func (r *memoryKlassRepository) Create(ctx context.Context, klass *domain.Klass) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.index(klass.ID) >= 0 {
		return repository.ErrDuplicateID
	}
	r.klasses = append(r.klasses, cloneKlass(*klass))
	return nil
}

func (r *memoryKlassRepository) Update(ctx context.Context, klass *domain.Klass) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.index(klass.ID)
	if i < 0 {
		return repository.ErrNotFound
	}
	r.klasses[i] = cloneKlass(*klass)
	return nil
}

func (r *memoryKlassRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.index(id)
	if i < 0 {
		return repository.ErrNotFound
	}
	r.klasses = append(r.klasses[:i], r.klasses[i+1:]...)
	return nil
}

// index must be called with mu held.
func (r *memoryKlassRepository) index(id string) int {
	for i, k := range r.klasses {
		if k.ID == id {
			return i
		}
	}
	return -1
}

func cloneKlass(k domain.Klass) domain.Klass {
	k.Days = append([]int(nil), k.Days...)
	k.CoachIDs = append([]string(nil), k.CoachIDs...)
	k.AssistantIDs = append([]string(nil), k.AssistantIDs...)
	return k
}
