// Package memory implements the repository ports in process memory. It is
// the default driver; the catalogue and roster are re-seeded on every start.
package memory

import (
	"context"
	"sync"

	"combatbible/gymdesk/internal/domain"
	"combatbible/gymdesk/internal/repository"
)

// memoryTechniqueRepository implements repository.TechniqueRepository
type memoryTechniqueRepository struct {
	mu    sync.RWMutex
	packs map[string]domain.TechniquePack
	order []string
}

// NewTechniqueRepository creates a catalogue holding copies of packs.
func NewTechniqueRepository(packs []domain.TechniquePack) repository.TechniqueRepository {
	r := &memoryTechniqueRepository{packs: make(map[string]domain.TechniquePack, len(packs))}
	for _, p := range packs {
		if _, ok := r.packs[p.ID]; !ok {
			r.order = append(r.order, p.ID)
		}
		r.packs[p.ID] = p.Clone()
	}
	return r
}

// List returns every pack in insertion order.
func (r *memoryTechniqueRepository) List(ctx context.Context) ([]domain.TechniquePack, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.TechniquePack, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.packs[id].Clone())
	}
	return out, nil
}

func (r *memoryTechniqueRepository) GetByID(ctx context.Context, id string) (*domain.TechniquePack, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.packs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := p.Clone()
	return &cp, nil
}

// Create inserts pack. Pack ids are unique across official and private packs.
func (r *memoryTechniqueRepository) Create(ctx context.Context, pack *domain.TechniquePack) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.packs[pack.ID]; ok {
		return repository.ErrDuplicateID
	}
	r.packs[pack.ID] = pack.Clone()
	r.order = append(r.order, pack.ID)
	return nil
}

func (r *memoryTechniqueRepository) Update(ctx context.Context, pack *domain.TechniquePack) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.packs[pack.ID]; !ok {
		return repository.ErrNotFound
	}
	r.packs[pack.ID] = pack.Clone()
	return nil
}

func (r *memoryTechniqueRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.packs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.packs, id)
	r.order = removeID(r.order, id)
	return nil
}

func removeID(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
