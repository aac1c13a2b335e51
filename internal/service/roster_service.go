package service

import (
	"context"
	"errors"
	"log"
	"time"

	"combatbible/gymdesk/internal/domain"
	"combatbible/gymdesk/internal/repository"

	"github.com/google/uuid"
)

// RosterService manages the class roster and its schedule views.
type RosterService interface {
	List(ctx context.Context) ([]domain.Klass, error)
	Get(ctx context.Context, id string) (*domain.Klass, error)
	// ByWeekday returns the classes meeting on weekday, sorted by start time.
	ByWeekday(ctx context.Context, weekday time.Weekday) ([]domain.Klass, error)
	// OnDate additionally honours each class's validity range.
	OnDate(ctx context.Context, date string) ([]domain.Klass, error)
	Create(ctx context.Context, klass domain.Klass) (*domain.Klass, error)
	Delete(ctx context.Context, id string) error
	// TotalStudents sums StudentCount over the roster.
	TotalStudents(ctx context.Context) (int, error)
}

// rosterService implements the RosterService interface.
type rosterService struct {
	repo repository.KlassRepository
}

// NewRosterService creates a new instance of rosterService.
func NewRosterService(repo repository.KlassRepository) RosterService {
	return &rosterService{repo: repo}
}

func (s *rosterService) List(ctx context.Context) ([]domain.Klass, error) {
	return s.repo.List(ctx)
}

func (s *rosterService) Get(ctx context.Context, id string) (*domain.Klass, error) {
	k, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrKlassNotFound
	}
	return k, err
}

func (s *rosterService) ByWeekday(ctx context.Context, weekday time.Weekday) ([]domain.Klass, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := domain.FilterByWeekday(all, weekday)
	domain.SortByStartTime(out)
	return out, nil
}

func (s *rosterService) OnDate(ctx context.Context, date string) ([]domain.Klass, error) {
	day, err := domain.ParseDate(date)
	if err != nil {
		return nil, ErrInvalidDate
	}
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return domain.ScheduledOn(all, day), nil
}

// Create validates and stores a class. An empty id is generated.
func (s *rosterService) Create(ctx context.Context, klass domain.Klass) (*domain.Klass, error) {
	if klass.ID == "" {
		klass.ID = "k_" + uuid.NewString()[:8]
	}
	if err := klass.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, &klass); err != nil {
		return nil, err
	}
	log.Printf("INFO: Class %s (%s) added to the roster", klass.ID, klass.Name)
	return &klass, nil
}

func (s *rosterService) Delete(ctx context.Context, id string) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrKlassNotFound
	}
	return err
}

func (s *rosterService) TotalStudents(ctx context.Context) (int, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, k := range all {
		total += k.StudentCount
	}
	return total, nil
}
