package mongo_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"combatbible/gymdesk/internal/domain"
	"combatbible/gymdesk/internal/repository"
	"combatbible/gymdesk/internal/repository/mongo"
	"combatbible/gymdesk/internal/repository/seed"

	"github.com/google/uuid"
	driver "go.mongodb.org/mongo-driver/mongo"
)

// openTestDB connects to MONGO_URI and returns a throwaway database that is
// dropped when the test ends. Tests are skipped when MONGO_URI is unset.
func openTestDB(t *testing.T) *driver.Database {
	t.Helper()
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		t.Skip("MONGO_URI not set")
	}
	client, err := mongo.ConnectDB(uri)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	db := client.Database("gymdesk_test_" + uuid.NewString()[:8])
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = db.Drop(ctx)
		_ = mongo.DisconnectDB(client)
	})
	return db
}

func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestSeedTechniques_OnlyIntoEmptyCollection(t *testing.T) {
	db := openTestDB(t)
	ctx := testContext(t)
	mongo.EnsureTechniqueIndexes(ctx, db)

	if err := mongo.SeedTechniques(ctx, db, seed.Packs()); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	if err := mongo.SeedTechniques(ctx, db, []domain.TechniquePack{{ID: "late", Title: "Late", Origin: domain.OriginOfficial}}); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	repo := mongo.NewMongoTechniqueRepository(db)
	packs, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(packs) != len(seed.Packs()) {
		t.Fatalf("packs = %d, want %d; a populated collection must not be reseeded", len(packs), len(seed.Packs()))
	}
	if packs[0].Origin != domain.OriginOfficial {
		t.Errorf("first pack origin = %s, want official packs first", packs[0].Origin)
	}
	got, err := repo.GetByID(ctx, "tp1")
	if err != nil || len(got.Levels.L1.Actions) != 2 {
		t.Errorf("GetByID(tp1) = %+v, %v", got, err)
	}
}

func TestTechniqueRepository_Errors(t *testing.T) {
	db := openTestDB(t)
	ctx := testContext(t)
	repo := mongo.NewMongoTechniqueRepository(db)

	pack := domain.TechniquePack{ID: "tp_x", Title: "Clinch", Origin: domain.OriginPrivate, OwnerGymID: "gym_001", Editable: true}
	if err := repo.Create(ctx, &pack); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := repo.Create(ctx, &pack); !errors.Is(err, repository.ErrDuplicateID) {
		t.Errorf("duplicate Create() error = %v, want ErrDuplicateID", err)
	}

	missing := domain.TechniquePack{ID: "nope", Title: "Nope", Origin: domain.OriginOfficial}
	if err := repo.Update(ctx, &missing); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("Update(missing) error = %v, want ErrNotFound", err)
	}
	if _, err := repo.GetByID(ctx, "nope"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("GetByID(missing) error = %v, want ErrNotFound", err)
	}
	if err := repo.Delete(ctx, "tp_x"); err != nil {
		t.Errorf("Delete() error = %v", err)
	}
	if err := repo.Delete(ctx, "tp_x"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}
}

func TestKlassRepository(t *testing.T) {
	db := openTestDB(t)
	ctx := testContext(t)
	mongo.EnsureKlassIndexes(ctx, db)
	if err := mongo.SeedKlasses(ctx, db, seed.Klasses()); err != nil {
		t.Fatalf("SeedKlasses() error = %v", err)
	}
	repo := mongo.NewMongoKlassRepository(db)

	klasses, err := repo.List(ctx)
	if err != nil || len(klasses) != len(seed.Klasses()) {
		t.Fatalf("List() = %d, %v", len(klasses), err)
	}

	dup := seed.Klasses()[0]
	if err := repo.Create(ctx, &dup); !errors.Is(err, repository.ErrDuplicateID) {
		t.Errorf("duplicate Create() error = %v, want ErrDuplicateID", err)
	}

	k := klasses[0]
	k.StudentCount = 30
	if err := repo.Update(ctx, &k); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	got, err := repo.GetByID(ctx, k.ID)
	if err != nil || got.StudentCount != 30 {
		t.Errorf("GetByID() = %+v, %v", got, err)
	}
}
