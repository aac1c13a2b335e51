package repository

import (
	"combatbible/gymdesk/internal/domain"
	"context"
)

// Error constants for repository layer
var (
	ErrNotFound    = RepositoryError("not found")
	ErrDuplicateID = RepositoryError("duplicate id")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// TechniqueRepository stores the technique catalogue, official and private packs alike.
type TechniqueRepository interface {
	List(ctx context.Context) ([]domain.TechniquePack, error)
	GetByID(ctx context.Context, id string) (*domain.TechniquePack, error)
	Create(ctx context.Context, pack *domain.TechniquePack) error
	Update(ctx context.Context, pack *domain.TechniquePack) error
	Delete(ctx context.Context, id string) error
}

// KlassRepository stores the class roster.
type KlassRepository interface {
	List(ctx context.Context) ([]domain.Klass, error)
	GetByID(ctx context.Context, id string) (*domain.Klass, error)
	Create(ctx context.Context, klass *domain.Klass) error
	Update(ctx context.Context, klass *domain.Klass) error
	Delete(ctx context.Context, id string) error
}
