package domain

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FastStatus is the lifecycle state of a fasting session.
// It is derived from the presence of the timestamps, never stored.
type FastStatus string

const (
	FastPending   FastStatus = "pending"   // created, not yet started
	FastActive    FastStatus = "active"    // started, no end time
	FastCompleted FastStatus = "completed" // started and ended
)

// Fast represents a single tracked fasting session owned by a user.
type Fast struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	TargetHours int                `bson:"targetHours" json:"targetHours"` // committed length, fixed at creation
	FastType    string             `bson:"fastType" json:"fastType"`       // display label, fixed at creation
	StartTime   *time.Time         `bson:"startTime,omitempty" json:"startTime,omitempty"`
	EndTime     *time.Time         `bson:"endTime,omitempty" json:"endTime,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// Status derives the lifecycle state from the timestamps.
func (f *Fast) Status() FastStatus {
	if f.StartTime == nil {
		return FastPending
	}
	if f.EndTime == nil {
		return FastActive
	}
	return FastCompleted
}

// TargetDuration returns the committed fast length as a duration.
func (f *Fast) TargetDuration() time.Duration {
	return time.Duration(f.TargetHours) * time.Hour
}

// TargetEnd returns the moment the fast would hit its target, or nil
// if the fast has not been started.
func (f *Fast) TargetEnd() *time.Time {
	if f.StartTime == nil {
		return nil
	}
	t := f.StartTime.Add(f.TargetDuration())
	return &t
}

// fastTypeCatalog maps preset target durations to their display labels.
// The label is resolved once at creation and stored on the record.
var fastTypeCatalog = map[int]string{
	13: "13:11 CIRCADIAN",
	16: "16:8 INTERMITTENT",
	18: "18:6 INTERMITTENT",
	20: "20:4 WARRIOR",
	24: "24-HOUR FULL DAY",
	36: "36-HOUR MONK",
	48: "48-HOUR EXTENDED",
	72: "72-HOUR EXTENDED",
}

// FastTypeLabel returns the catalog label for a target duration, falling
// back to a generic "N-HOUR FAST" label for durations without a preset.
func FastTypeLabel(targetHours int) string {
	if label, ok := fastTypeCatalog[targetHours]; ok {
		return label
	}
	return fmt.Sprintf("%d-HOUR FAST", targetHours)
}
