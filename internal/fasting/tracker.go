package fasting

import (
	"context"
	"time"

	"concarne/health-app/internal/domain"
)

// DefaultTickInterval is how often an active fast's snapshot is recomputed.
const DefaultTickInterval = time.Second

// TickFunc receives each recomputed snapshot.
type TickFunc func(Snapshot)

// Tracker recomputes the snapshot of a single fast on a fixed tick. Each
// display session owns one Tracker; cancelling the context is the only way
// a running tracker stops, so the owner must cancel on teardown or when the
// underlying fast reference changes.
type Tracker struct {
	interval time.Duration
	clock    func() time.Time
}

// NewTracker returns a tracker ticking at the given interval. A
// non-positive interval falls back to DefaultTickInterval.
func NewTracker(interval time.Duration) *Tracker {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &Tracker{interval: interval, clock: time.Now}
}

// Run emits snapshots for the fast until ctx is cancelled. It blocks.
//
// A pending or completed fast produces a single frozen snapshot and
// returns immediately: there is nothing to drive a timer for. An active
// fast gets an immediate snapshot and then one per tick; ticking continues
// past the target so over-target progress keeps accumulating.
func (t *Tracker) Run(ctx context.Context, fast *domain.Fast, fn TickFunc) {
	if fast.Status() != domain.FastActive {
		fn(ComputeSnapshot(fast.StartTime, fast.EndTime, fast.TargetHours, t.clock()))
		return
	}

	fn(ComputeSnapshot(fast.StartTime, nil, fast.TargetHours, t.clock()))

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fn(ComputeSnapshot(fast.StartTime, nil, fast.TargetHours, t.clock()))
		}
	}
}
