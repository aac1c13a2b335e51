// Package app wires configuration to concrete repositories and services.
package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"combatbible/gymdesk/internal/config"
	"combatbible/gymdesk/internal/repository"
	"combatbible/gymdesk/internal/repository/memory"
	"combatbible/gymdesk/internal/repository/mongo"
	"combatbible/gymdesk/internal/repository/seed"
)

// Repositories are the catalogue and roster stores selected by configuration.
type Repositories struct {
	Techniques repository.TechniqueRepository
	Klasses    repository.KlassRepository
	// Close releases the database connection, if any.
	Close func()
}

// OpenRepositories builds the repositories for cfg.Database.Driver. The seed
// data fills the memory stores, and empty Mongo collections.
func OpenRepositories(ctx context.Context, cfg config.Config) (*Repositories, error) {
	data, err := seed.Load(cfg.Catalog.SeedFile)
	if err != nil {
		return nil, fmt.Errorf("load seed data: %w", err)
	}

	if cfg.Database.Driver != config.DriverMongo {
		log.Printf("INFO: Using in-memory catalogue (%d packs, %d classes)", len(data.Packs), len(data.Klasses))
		return &Repositories{
			Techniques: memory.NewTechniqueRepository(data.Packs),
			Klasses:    memory.NewKlassRepository(data.Klasses),
			Close:      func() {},
		}, nil
	}

	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		return nil, fmt.Errorf("connect to MongoDB: %w", err)
	}
	appDB := dbClient.Database(cfg.Database.Name)
	log.Println("INFO: Database connection established.")

	seedCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	mongo.EnsureTechniqueIndexes(seedCtx, appDB)
	mongo.EnsureKlassIndexes(seedCtx, appDB)
	if err := mongo.SeedTechniques(seedCtx, appDB, data.Packs); err != nil {
		log.Printf("WARN: Failed to seed techniques: %v", err)
	}
	if err := mongo.SeedKlasses(seedCtx, appDB, data.Klasses); err != nil {
		log.Printf("WARN: Failed to seed classes: %v", err)
	}

	return &Repositories{
		Techniques: mongo.NewMongoTechniqueRepository(appDB),
		Klasses:    mongo.NewMongoKlassRepository(appDB),
		Close: func() {
			log.Println("INFO: Disconnecting MongoDB...")
			if err := mongo.DisconnectDB(dbClient); err != nil {
				log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
			}
		},
	}, nil
}
