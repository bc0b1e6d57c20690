package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WeightEntry is a single dated body-weight measurement for a user.
type WeightEntry struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID   primitive.ObjectID `bson:"userId" json:"userId"`
	WeightKg float64            `bson:"weightKg" json:"weightKg"`
	Date     time.Time          `bson:"date" json:"date"`
}
