package repository

import (
	"concarne/health-app/internal/domain"
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	SetHeight(ctx context.Context, id primitive.ObjectID, heightCm int) error
}

// FastRepository defines the interface for interacting with fast records.
// Every lookup and update is scoped by the owning user; a scoped update
// that matches no record reports ErrNotFound rather than silently
// affecting zero rows.
type FastRepository interface {
	Create(ctx context.Context, fast *domain.Fast) (primitive.ObjectID, error)
	GetByIDAndUser(ctx context.Context, id, userID primitive.ObjectID) (*domain.Fast, error)
	// FindOpenByUser returns the user's fasts with no end time, most
	// recently started first (ties broken by id, newest first).
	FindOpenByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Fast, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Fast, error)
	SetStartTime(ctx context.Context, id, userID primitive.ObjectID, startTime time.Time) error
	SetEndTime(ctx context.Context, id, userID primitive.ObjectID, endTime time.Time) error
}

// WeightRepository defines the interface for interacting with weight entries.
type WeightRepository interface {
	Create(ctx context.Context, entry *domain.WeightEntry) (primitive.ObjectID, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.WeightEntry, error)
	Delete(ctx context.Context, id, userID primitive.ObjectID) error
}
