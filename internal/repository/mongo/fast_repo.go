package mongo

import (
	"concarne/health-app/internal/domain"
	"concarne/health-app/internal/repository"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const fastCollectionName = "fasts"

// mongoFastRepository implements repository.FastRepository
type mongoFastRepository struct {
	collection *mongo.Collection
}

// NewMongoFastRepository creates a new Fast repository.
func NewMongoFastRepository(db *mongo.Database) repository.FastRepository {
	return &mongoFastRepository{
		collection: db.Collection(fastCollectionName),
	}
}

// Create inserts a new fast record. StartTime/EndTime are left untouched;
// a freshly created fast is pending until explicitly started.
func (r *mongoFastRepository) Create(ctx context.Context, fast *domain.Fast) (primitive.ObjectID, error) {
	if fast.UserID == primitive.NilObjectID || fast.TargetHours <= 0 || fast.FastType == "" {
		return primitive.NilObjectID, errors.New("fast requires userId, a positive targetHours, and fastType")
	}
	fast.ID = primitive.NewObjectID()
	fast.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, fast)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted fast ID")
	}
	return insertedID, nil
}

// GetByIDAndUser retrieves a single fast scoped to its owner. A fast that
// exists but belongs to another user is reported as not found.
func (r *mongoFastRepository) GetByIDAndUser(ctx context.Context, id, userID primitive.ObjectID) (*domain.Fast, error) {
	var fast domain.Fast
	filter := bson.M{"_id": id, "userId": userID}
	err := r.collection.FindOne(ctx, filter).Decode(&fast)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &fast, nil
}

// FindOpenByUser returns all of the user's fasts with no end time, most
// recently started first. Pending fasts (no start time either) sort last.
// The secondary _id sort keeps the order stable when two fasts share a
// start time.
func (r *mongoFastRepository) FindOpenByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Fast, error) {
	var fasts []domain.Fast
	filter := bson.M{"userId": userID, "endTime": bson.M{"$exists": false}}
	findOptions := options.Find().SetSort(bson.D{{Key: "startTime", Value: -1}, {Key: "_id", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &fasts); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return fasts, nil
}

// ListByUser returns every fast the user owns, newest record first.
func (r *mongoFastRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Fast, error) {
	var fasts []domain.Fast
	filter := bson.M{"userId": userID}
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &fasts); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return fasts, nil
}

// SetStartTime writes the start timestamp of a fast scoped to its owner.
func (r *mongoFastRepository) SetStartTime(ctx context.Context, id, userID primitive.ObjectID, startTime time.Time) error {
	return r.setTimestamp(ctx, id, userID, "startTime", startTime)
}

// SetEndTime writes the end timestamp of a fast scoped to its owner.
func (r *mongoFastRepository) SetEndTime(ctx context.Context, id, userID primitive.ObjectID, endTime time.Time) error {
	return r.setTimestamp(ctx, id, userID, "endTime", endTime)
}

func (r *mongoFastRepository) setTimestamp(ctx context.Context, id, userID primitive.ObjectID, field string, value time.Time) error {
	if id == primitive.NilObjectID || userID == primitive.NilObjectID {
		return errors.New("fast ID and user ID are required for update")
	}

	// Filter ensures the fast exists AND belongs to the specified user.
	filter := bson.M{"_id": id, "userId": userID}
	updateDoc := bson.M{"$set": bson.M{field: value.UTC()}}

	result, err := r.collection.UpdateOne(ctx, filter, updateDoc)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		// Fast not found OR not owned by this user.
		return repository.ErrNotFound
	}
	return nil
}

// EnsureFastIndexes creates necessary indexes. Call during startup.
func EnsureFastIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// Resolver query: open fasts for a user ordered by start time.
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "startTime", Value: -1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
