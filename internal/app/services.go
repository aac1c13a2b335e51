package app

import (
	"context"
	"fmt"

	"combatbible/gymdesk/internal/api"
	"combatbible/gymdesk/internal/combo"
	"combatbible/gymdesk/internal/config"
	"combatbible/gymdesk/internal/lesson"
	"combatbible/gymdesk/internal/service"
	"combatbible/gymdesk/internal/storage"
)

// NewGenerator returns the combo generator named by cfg.AI.Provider.
func NewGenerator(ctx context.Context, cfg config.AIConfig) (combo.Generator, error) {
	if cfg.Provider == config.ProviderGemini {
		return combo.NewGeminiGenerator(ctx, cfg.APIKey, cfg.Model, cfg.Variations)
	}
	return combo.StaticGenerator{Count: cfg.Variations}, nil
}

// NewFileStorage returns the S3 video store, or nil when it is disabled.
func NewFileStorage(ctx context.Context, cfg config.S3Config) (storage.FileStorage, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
	return storage.NewS3Storage(ctx, cfg)
}

// NewServices builds every service on top of repos.
func NewServices(ctx context.Context, cfg config.Config, repos *Repositories, gen combo.Generator, files storage.FileStorage) (api.Services, error) {
	lib, err := service.NewLibraryService(ctx, repos.Techniques, cfg.Catalog.GymID, gen, files)
	if err != nil {
		return api.Services{}, fmt.Errorf("library service: %w", err)
	}
	ws := lesson.NewWorkspace()
	roster := service.NewRosterService(repos.Klasses)
	return api.Services{
		Auth:       service.NewAuthService(cfg.Catalog.GymName, cfg.JWT.Secret, cfg.JWT.Expiration),
		Library:    lib,
		Roster:     roster,
		Lessons:    service.NewLessonService(roster, lib, ws),
		Compliance: service.NewComplianceService(roster, ws),
		Workspace:  ws,
	}, nil
}
