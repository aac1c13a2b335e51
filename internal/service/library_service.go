package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"combatbible/gymdesk/internal/combo"
	"combatbible/gymdesk/internal/domain"
	"combatbible/gymdesk/internal/repository"
	"combatbible/gymdesk/internal/storage"

	"github.com/google/uuid"
)

// LibraryFilter narrows a catalogue listing. Zero values match everything.
type LibraryFilter struct {
	Origin   domain.Origin
	Category string
	Query    string // case-insensitive title substring
}

// VideoUpload is a presigned PUT target for a technique video.
type VideoUpload struct {
	UploadURL string    `json:"uploadUrl"`
	ObjectKey string    `json:"objectKey"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// LibraryService serves the technique catalogue. Readers get immutable
// snapshots; every edit publishes a new one.
type LibraryService interface {
	// Pack looks a pack up in the current snapshot.
	Pack(id string) (domain.TechniquePack, bool)
	Snapshot() *domain.Library
	List(filter LibraryFilter) []domain.TechniquePack
	Categories() []string
	GetPack(ctx context.Context, id string) (*domain.TechniquePack, error)

	CreatePrivatePack(ctx context.Context, pack domain.TechniquePack) (*domain.TechniquePack, error)
	UpdatePrivatePack(ctx context.Context, pack domain.TechniquePack) (*domain.TechniquePack, error)
	DeletePrivatePack(ctx context.Context, id string) error

	GenerateCombos(ctx context.Context, basePackIDs []string) ([]domain.Variation, error)
	SaveCombos(ctx context.Context, variations []domain.Variation) ([]domain.TechniquePack, error)

	ResolveVideo(ctx context.Context, ref string) (string, error)
	ResolvePack(ctx context.Context, pack domain.TechniquePack) domain.TechniquePack
	RequestVideoUpload(ctx context.Context, packID string, level domain.LevelKey, actionID, contentType string) (*VideoUpload, error)
}

// libraryService implements the LibraryService interface.
type libraryService struct {
	repo      repository.TechniqueRepository
	gymID     string
	generator combo.Generator
	files     storage.FileStorage // nil when video storage is disabled

	writeMu sync.Mutex
	current atomic.Pointer[domain.Library]
}

// NewLibraryService loads the catalogue from repo and publishes the first snapshot.
// files may be nil.
func NewLibraryService(ctx context.Context, repo repository.TechniqueRepository, gymID string, generator combo.Generator, files storage.FileStorage) (LibraryService, error) {
	packs, err := repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load technique catalogue: %w", err)
	}
	s := &libraryService{
		repo:      repo,
		gymID:     gymID,
		generator: generator,
		files:     files,
	}
	s.current.Store(domain.NewLibrary(packs))
	log.Printf("INFO: Technique library loaded with %d packs", len(packs))
	return s, nil
}

func (s *libraryService) Snapshot() *domain.Library {
	return s.current.Load()
}

func (s *libraryService) Pack(id string) (domain.TechniquePack, bool) {
	return s.Snapshot().Pack(id)
}

func (s *libraryService) List(filter LibraryFilter) []domain.TechniquePack {
	query := strings.ToLower(strings.TrimSpace(filter.Query))
	var out []domain.TechniquePack
	for _, p := range s.Snapshot().All() {
		if filter.Origin != "" && p.Origin != filter.Origin {
			continue
		}
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(p.Title), query) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (s *libraryService) Categories() []string {
	return s.Snapshot().Categories()
}

func (s *libraryService) GetPack(ctx context.Context, id string) (*domain.TechniquePack, error) {
	p, ok := s.Pack(id)
	if !ok {
		return nil, ErrPackNotFound
	}
	return &p, nil
}

// CreatePrivatePack stores a new pack owned by this gym. An empty id is generated.
func (s *libraryService) CreatePrivatePack(ctx context.Context, pack domain.TechniquePack) (*domain.TechniquePack, error) {
	if pack.ID == "" {
		pack.ID = "tp_" + uuid.NewString()
	}
	pack.Origin = domain.OriginPrivate
	pack.OwnerGymID = s.gymID
	pack.Editable = true
	if err := pack.Validate(); err != nil {
		return nil, err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := s.repo.Create(ctx, &pack); err != nil {
		return nil, err
	}
	s.publish(s.Snapshot().With(pack))
	return &pack, nil
}

// UpdatePrivatePack replaces a private pack. Official packs and packs of other
// gyms are rejected with ErrPackNotEditable.
func (s *libraryService) UpdatePrivatePack(ctx context.Context, pack domain.TechniquePack) (*domain.TechniquePack, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if _, err := s.editable(pack.ID); err != nil {
		return nil, err
	}
	pack.Origin = domain.OriginPrivate
	pack.OwnerGymID = s.gymID
	pack.Editable = true
	if err := pack.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, &pack); err != nil {
		return nil, err
	}
	s.publish(s.Snapshot().With(pack))
	return &pack, nil
}

// DeletePrivatePack removes a private pack and, best effort, its stored videos.
// Plans that still reference it show the unknown-pack title.
func (s *libraryService) DeletePrivatePack(ctx context.Context, id string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	pack, err := s.editable(id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(s.Snapshot().Without(id))

	if s.files != nil {
		for _, key := range objectKeys(pack) {
			if err := s.files.DeleteObject(ctx, key); err != nil {
				log.Printf("WARN: Failed to delete video %s of pack %s: %v", key, id, err)
			}
		}
	}
	return nil
}

func (s *libraryService) editable(id string) (domain.TechniquePack, error) {
	existing, ok := s.Pack(id)
	if !ok {
		return domain.TechniquePack{}, ErrPackNotFound
	}
	if !existing.EditableBy(s.gymID) {
		return domain.TechniquePack{}, ErrPackNotEditable
	}
	return existing, nil
}

func (s *libraryService) publish(lib *domain.Library) {
	s.current.Store(lib)
}

// GenerateCombos asks the generator for variations built on the titles of basePackIDs.
func (s *libraryService) GenerateCombos(ctx context.Context, basePackIDs []string) ([]domain.Variation, error) {
	ids := dedupe(basePackIDs)
	if len(ids) < combo.MinBaseTitles {
		return nil, ErrNotEnoughBasePacks
	}
	lib := s.Snapshot()
	titles := make([]string, 0, len(ids))
	for _, id := range ids {
		p, ok := lib.Pack(id)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrPackNotFound, id)
		}
		titles = append(titles, p.Title)
	}

	variations, err := s.generator.GenerateVariations(ctx, titles)
	if err != nil {
		log.Printf("ERROR: Combo generation for %v failed: %v", titles, err)
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	for i := range variations {
		variations[i] = variations[i].Normalize(i)
	}
	return variations, nil
}

// SaveCombos stores the chosen variations as new private packs.
func (s *libraryService) SaveCombos(ctx context.Context, variations []domain.Variation) ([]domain.TechniquePack, error) {
	saved := make([]domain.TechniquePack, 0, len(variations))
	for i, v := range variations {
		pack := v.Normalize(i).ToPack("combo_"+uuid.NewString(), s.gymID)
		created, err := s.CreatePrivatePack(ctx, pack)
		if err != nil {
			return saved, err
		}
		saved = append(saved, *created)
	}
	return saved, nil
}

// ResolveVideo turns a video reference into a playable URL. Absolute URLs are
// returned as is; object keys are presigned.
func (s *libraryService) ResolveVideo(ctx context.Context, ref string) (string, error) {
	if ref == "" || storage.IsExternalURL(ref) {
		return ref, nil
	}
	if s.files == nil {
		return "", ErrStorageUnavailable
	}
	return s.files.GeneratePresignedDownloadURL(ctx, ref, storage.DefaultPresignedURLExpiry)
}

// ResolvePack returns a copy of pack with every video reference resolved.
// References that cannot be resolved are cleared.
func (s *libraryService) ResolvePack(ctx context.Context, pack domain.TechniquePack) domain.TechniquePack {
	out := pack.Clone()
	resolve := func(ref string) string {
		url, err := s.ResolveVideo(ctx, ref)
		if err != nil {
			log.Printf("WARN: Cannot resolve video %q of pack %s: %v", ref, pack.ID, err)
			return ""
		}
		return url
	}
	for _, key := range domain.LevelKeys {
		lvl, _ := out.Level(key)
		lvl.VideoRef = resolve(lvl.VideoRef)
		for i := range lvl.Actions {
			lvl.Actions[i].VideoRef = resolve(lvl.Actions[i].VideoRef)
		}
	}
	return out
}

// RequestVideoUpload presigns an upload for a level video, or for a sub-action
// video when actionID is set, and points the reference at the new object key.
func (s *libraryService) RequestVideoUpload(ctx context.Context, packID string, level domain.LevelKey, actionID, contentType string) (*VideoUpload, error) {
	if s.files == nil {
		return nil, ErrStorageUnavailable
	}
	if !level.Valid() {
		return nil, fmt.Errorf("%w: unknown level %q", domain.ErrValidation, level)
	}
	if !storage.ValidVideoContentType(contentType) {
		return nil, fmt.Errorf("%w: unsupported content type %q", domain.ErrValidation, contentType)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	pack, err := s.editable(packID)
	if err != nil {
		return nil, err
	}
	key := storage.NewVideoKey(packID, string(level), actionID, contentType)
	if actionID != "" {
		action, ok := pack.Action(level, actionID)
		if !ok {
			return nil, ErrActionNotFound
		}
		action.VideoRef = key
	} else {
		lvl, _ := pack.Level(level)
		lvl.VideoRef = key
	}

	url, err := s.files.GeneratePresignedUploadURL(ctx, key, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, &pack); err != nil {
		return nil, err
	}
	s.publish(s.Snapshot().With(pack))

	return &VideoUpload{
		UploadURL: url,
		ObjectKey: key,
		ExpiresAt: time.Now().Add(storage.DefaultPresignedURLExpiry),
	}, nil
}

func objectKeys(pack domain.TechniquePack) []string {
	var keys []string
	add := func(ref string) {
		if ref != "" && !storage.IsExternalURL(ref) {
			keys = append(keys, ref)
		}
	}
	for _, key := range domain.LevelKeys {
		lvl, _ := pack.Level(key)
		add(lvl.VideoRef)
		for _, a := range lvl.Actions {
			add(a.VideoRef)
		}
	}
	return keys
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok || id == "" {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// IsNotFound reports whether err means a missing pack or class.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrPackNotFound) || errors.Is(err, ErrKlassNotFound) ||
		errors.Is(err, ErrActionNotFound) || errors.Is(err, repository.ErrNotFound)
}
