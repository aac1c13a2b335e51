package mongo

import (
	"context"
	"errors"
	"log"

	"combatbible/gymdesk/internal/domain"
	"combatbible/gymdesk/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const techniqueCollectionName = "techniques"

// mongoTechniqueRepository implements repository.TechniqueRepository
type mongoTechniqueRepository struct {
	collection *mongo.Collection
}

// NewMongoTechniqueRepository creates a technique catalogue backed by MongoDB.
func NewMongoTechniqueRepository(db *mongo.Database) repository.TechniqueRepository {
	return &mongoTechniqueRepository{
		collection: db.Collection(techniqueCollectionName),
	}
}

// List returns the whole catalogue, official packs first.
func (r *mongoTechniqueRepository) List(ctx context.Context) ([]domain.TechniquePack, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "origin", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var packs []domain.TechniquePack
	if err = cursor.All(ctx, &packs); err != nil {
		return nil, err
	}
	return packs, nil
}

func (r *mongoTechniqueRepository) GetByID(ctx context.Context, id string) (*domain.TechniquePack, error) {
	var pack domain.TechniquePack
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&pack)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &pack, nil
}

func (r *mongoTechniqueRepository) Create(ctx context.Context, pack *domain.TechniquePack) error {
	_, err := r.collection.InsertOne(ctx, pack)
	if mongo.IsDuplicateKeyError(err) {
		return repository.ErrDuplicateID
	}
	return err
}

// Update replaces the stored pack document.
func (r *mongoTechniqueRepository) Update(ctx context.Context, pack *domain.TechniquePack) error {
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": pack.ID}, pack)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoTechniqueRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureTechniqueIndexes creates the indexes used for catalogue filters.
func EnsureTechniqueIndexes(ctx context.Context, db *mongo.Database) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "origin", Value: 1}, {Key: "ownerGymId", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "category", Value: 1}},
			Options: options.Index(),
		},
	}
	collection := db.Collection(techniqueCollectionName)
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}

// SeedTechniques loads packs into an empty techniques collection.
func SeedTechniques(ctx context.Context, db *mongo.Database, packs []domain.TechniquePack) error {
	docs := make([]interface{}, len(packs))
	for i := range packs {
		docs[i] = packs[i]
	}
	seeded, err := seedIfEmpty(ctx, db.Collection(techniqueCollectionName), docs)
	if err != nil {
		return err
	}
	if seeded {
		log.Printf("INFO: Seeded %d technique packs", len(packs))
	}
	return nil
}
