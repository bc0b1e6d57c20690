package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFastStatusDerivation(t *testing.T) {
	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	end := start.Add(16 * time.Hour)

	pending := Fast{TargetHours: 16}
	active := Fast{TargetHours: 16, StartTime: &start}
	completed := Fast{TargetHours: 16, StartTime: &start, EndTime: &end}

	assert.Equal(t, FastPending, pending.Status())
	assert.Equal(t, FastActive, active.Status())
	assert.Equal(t, FastCompleted, completed.Status())
}

func TestFastTargetEnd(t *testing.T) {
	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	pending := Fast{TargetHours: 16}
	assert.Nil(t, pending.TargetEnd())

	active := Fast{TargetHours: 16, StartTime: &start}
	assert.Equal(t, start.Add(16*time.Hour), *active.TargetEnd())
}

func TestFastTypeLabel(t *testing.T) {
	assert.Equal(t, "16:8 INTERMITTENT", FastTypeLabel(16))
	assert.Equal(t, "20:4 WARRIOR", FastTypeLabel(20))
	assert.Equal(t, "24-HOUR FULL DAY", FastTypeLabel(24))
	// Durations without a preset fall back to the generic label.
	assert.Equal(t, "17-HOUR FAST", FastTypeLabel(17))
	assert.Equal(t, "100-HOUR FAST", FastTypeLabel(100))
}
