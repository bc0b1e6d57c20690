package mongo

import (
	"concarne/health-app/internal/domain"
	"concarne/health-app/internal/repository"
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const weightCollectionName = "weights"

// mongoWeightRepository implements repository.WeightRepository
type mongoWeightRepository struct {
	collection *mongo.Collection
}

// NewMongoWeightRepository creates a new weight entry repository.
func NewMongoWeightRepository(db *mongo.Database) repository.WeightRepository {
	return &mongoWeightRepository{
		collection: db.Collection(weightCollectionName),
	}
}

// Create inserts a new weight entry.
func (r *mongoWeightRepository) Create(ctx context.Context, entry *domain.WeightEntry) (primitive.ObjectID, error) {
	if entry.UserID == primitive.NilObjectID || entry.WeightKg <= 0 || entry.Date.IsZero() {
		return primitive.NilObjectID, errors.New("weight entry requires userId, a positive weight, and a date")
	}
	entry.ID = primitive.NewObjectID()
	entry.Date = entry.Date.UTC()

	result, err := r.collection.InsertOne(ctx, entry)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted weight entry ID")
	}
	return insertedID, nil
}

// ListByUser returns all weight entries for a user, newest date first.
func (r *mongoWeightRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.WeightEntry, error) {
	var entries []domain.WeightEntry
	filter := bson.M{"userId": userID}
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// Delete removes a weight entry, ensuring ownership.
func (r *mongoWeightRepository) Delete(ctx context.Context, id, userID primitive.ObjectID) error {
	if id == primitive.NilObjectID || userID == primitive.NilObjectID {
		return errors.New("entry ID and user ID are required for deletion")
	}

	filter := bson.M{"_id": id, "userId": userID}
	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		// Entry not found OR not owned by this user.
		return repository.ErrNotFound
	}
	return nil
}

// EnsureWeightIndexes creates necessary indexes. Call during startup.
func EnsureWeightIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: -1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
