package fasting

import (
	"context"
	"testing"
	"time"

	"concarne/health-app/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func timePtr(t time.Time) *time.Time { return &t }

func TestTrackerPendingEmitsSingleZeroSnapshot(t *testing.T) {
	fast := &domain.Fast{TargetHours: 16}
	tracker := NewTracker(time.Millisecond)

	var got []Snapshot
	tracker.Run(context.Background(), fast, func(s Snapshot) {
		got = append(got, s)
	})

	require.Len(t, got, 1, "no timer is driven for a pending fast")
	assert.Equal(t, 0, got[0].Progress)
	assert.Equal(t, 100, got[0].RemainingPercent)
}

func TestTrackerCompletedEmitsFrozenSnapshot(t *testing.T) {
	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	fast := &domain.Fast{
		TargetHours: 16,
		StartTime:   timePtr(start),
		EndTime:     timePtr(start.Add(16*time.Hour + 30*time.Minute)),
	}
	tracker := NewTracker(time.Millisecond)

	var got []Snapshot
	tracker.Run(context.Background(), fast, func(s Snapshot) {
		got = append(got, s)
	})

	require.Len(t, got, 1, "a completed fast freezes on its end time")
	assert.Equal(t, "16:30:00", got[0].ElapsedTime)
	assert.Equal(t, 100, got[0].Progress)
}

func TestTrackerActiveTicksUntilCancelled(t *testing.T) {
	start := time.Now().Add(-2 * time.Hour)
	fast := &domain.Fast{TargetHours: 16, StartTime: &start}
	tracker := NewTracker(5 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	emitted := make(chan Snapshot, 64)
	done := make(chan struct{})
	go func() {
		defer close(done)
		tracker.Run(ctx, fast, func(s Snapshot) {
			emitted <- s
		})
	}()

	// Immediate snapshot plus at least two ticks.
	for i := 0; i < 3; i++ {
		select {
		case s := <-emitted:
			assert.Equal(t, 13, s.Progress) // 2/16 = 12.5%, rounded
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for snapshot tick")
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("tracker did not stop after cancellation")
	}
}

func TestNewTrackerDefaultsInterval(t *testing.T) {
	tracker := NewTracker(0)
	assert.Equal(t, DefaultTickInterval, tracker.interval)
}
