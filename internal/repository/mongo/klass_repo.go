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

const klassCollectionName = "classes"

// mongoKlassRepository implements repository.KlassRepository
type mongoKlassRepository struct {
	collection *mongo.Collection
}

// NewMongoKlassRepository creates a class roster backed by MongoDB.
func NewMongoKlassRepository(db *mongo.Database) repository.KlassRepository {
	return &mongoKlassRepository{
		collection: db.Collection(klassCollectionName),
	}
}

func (r *mongoKlassRepository) List(ctx context.Context) ([]domain.Klass, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "startTime", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var klasses []domain.Klass
	if err = cursor.All(ctx, &klasses); err != nil {
		return nil, err
	}
	return klasses, nil
}

func (r *mongoKlassRepository) GetByID(ctx context.Context, id string) (*domain.Klass, error) {
	var klass domain.Klass
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&klass)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &klass, nil
}

func (r *mongoKlassRepository) Create(ctx context.Context, klass *domain.Klass) error {
	_, err := r.collection.InsertOne(ctx, klass)
	if mongo.IsDuplicateKeyError(err) {
		return repository.ErrDuplicateID
	}
	return err
}

func (r *mongoKlassRepository) Update(ctx context.Context, klass *domain.Klass) error {
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": klass.ID}, klass)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoKlassRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureKlassIndexes creates the index used by the weekday schedule query.
func EnsureKlassIndexes(ctx context.Context, db *mongo.Database) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "days", Value: 1}, {Key: "startTime", Value: 1}},
			Options: options.Index(),
		},
	}
	collection := db.Collection(klassCollectionName)
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}

// SeedKlasses loads klasses into an empty classes collection.
func SeedKlasses(ctx context.Context, db *mongo.Database, klasses []domain.Klass) error {
	docs := make([]interface{}, len(klasses))
	for i := range klasses {
		docs[i] = klasses[i]
	}
	seeded, err := seedIfEmpty(ctx, db.Collection(klassCollectionName), docs)
	if err != nil {
		return err
	}
	if seeded {
		log.Printf("INFO: Seeded %d classes", len(klasses))
	}
	return nil
}
