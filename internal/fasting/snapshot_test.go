package fasting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeSnapshotPendingIsZero(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	s := ComputeSnapshot(nil, nil, 16, now)

	assert.Equal(t, time.Duration(0), s.Elapsed)
	assert.Equal(t, time.Duration(0), s.Remaining)
	assert.Equal(t, 0, s.Progress)
	assert.Equal(t, 0, s.OverProgress)
	assert.Equal(t, 100, s.RemainingPercent)
	assert.Equal(t, "0:00:00", s.ElapsedTime)
}

func TestComputeSnapshotNonPositiveTargetIsZero(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	start := now.Add(-2 * time.Hour)

	s := ComputeSnapshot(&start, nil, 0, now)

	assert.Equal(t, 0, s.Progress)
	assert.Equal(t, 100, s.RemainingPercent)
}

func TestComputeSnapshotImmediatelyAfterStart(t *testing.T) {
	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	s := ComputeSnapshot(&start, nil, 16, start)

	assert.Equal(t, 0, s.Progress)
	assert.Equal(t, 100, s.RemainingPercent)
	assert.Equal(t, 16*time.Hour, s.Remaining)
	assert.Equal(t, "16:00:00", s.RemainingTime)
}

func TestComputeSnapshotExactlyAtTarget(t *testing.T) {
	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	now := start.Add(16 * time.Hour)

	s := ComputeSnapshot(&start, nil, 16, now)

	assert.Equal(t, 100, s.Progress)
	assert.Equal(t, time.Duration(0), s.Remaining)
	assert.Equal(t, 0, s.OverProgress)
	assert.Equal(t, 0, s.RemainingPercent)
}

func TestComputeSnapshotPastTarget(t *testing.T) {
	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	// 4h past a 16h target: 20/16 = 125% total.
	now := start.Add(20 * time.Hour)

	s := ComputeSnapshot(&start, nil, 16, now)

	assert.Equal(t, 100, s.Progress, "displayed progress stays clamped")
	assert.Equal(t, 25, s.OverProgress)
	assert.Equal(t, time.Duration(0), s.Remaining)
	assert.Equal(t, "20:00:00", s.ElapsedTime)
}

func TestComputeSnapshotOneHourBeforeTarget(t *testing.T) {
	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	now := start.Add(15 * time.Hour)

	s := ComputeSnapshot(&start, nil, 16, now)

	// 15/16 = 93.75%, rounded to 94.
	assert.Equal(t, 94, s.Progress)
	assert.Equal(t, 94, s.ElapsedPercent)
	assert.Equal(t, 6, s.RemainingPercent)
	assert.Equal(t, "1:00:00", s.RemainingTime)
	assert.Equal(t, "15:00:00", s.ElapsedTime)
}

func TestComputeSnapshotCompleted(t *testing.T) {
	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	end := start.Add(16*time.Hour + 30*time.Minute)
	now := end.Add(48 * time.Hour) // long after; must not matter

	s := ComputeSnapshot(&start, &end, 16, now)

	assert.Equal(t, "16:30:00", s.ElapsedTime)
	assert.Equal(t, 100, s.Progress)
	// 16.5/16 = 103.125% total, so 3% overflow.
	assert.Equal(t, 3, s.OverProgress)
	assert.Equal(t, time.Duration(0), s.Remaining)
	assert.Equal(t, 0, s.RemainingPercent)
}

func TestComputeSnapshotCompletedShortOfTarget(t *testing.T) {
	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	end := start.Add(8 * time.Hour)

	s := ComputeSnapshot(&start, &end, 16, end)

	assert.Equal(t, 50, s.Progress)
	assert.Equal(t, 0, s.OverProgress)
	assert.Equal(t, 0, s.RemainingPercent)
}

func TestComputeSnapshotCompletedEndBeforeStart(t *testing.T) {
	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	end := start.Add(-2 * time.Hour) // data anomaly

	s := ComputeSnapshot(&start, &end, 16, start)

	assert.Equal(t, 0, s.Progress)
	assert.Equal(t, 0, s.OverProgress)
	assert.Equal(t, "0:00:00", s.ElapsedTime, "negative elapsed clamps for display")
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name string
		d    time.Duration
		want string
	}{
		{"zero", 0, "0:00:00"},
		{"negative clamps to zero", -time.Hour, "0:00:00"},
		{"one hour twenty-three minutes forty-five seconds", 5025000 * time.Millisecond, "1:23:45"},
		{"sub-second truncates", 900 * time.Millisecond, "0:00:00"},
		{"hours are unbounded", 30*time.Hour + 2*time.Minute + 5*time.Second, "30:02:05"},
		{"zero-pads minutes and seconds", time.Hour + time.Second, "1:00:01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDuration(tt.d))
		})
	}
}
