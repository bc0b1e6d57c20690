// Package fasting computes derived display state for fasting sessions:
// elapsed/remaining time, progress percentages and over-target overflow.
// Everything here is pure arithmetic over timestamps; the package never
// touches persistence.
package fasting

import (
	"fmt"
	"math"
	"time"
)

// Snapshot is the derived display state of a fast at a single instant.
// Progress is clamped to [0,100] for the progress ring; the amount the
// actual ratio exceeds the target is reported separately in OverProgress.
type Snapshot struct {
	Elapsed          time.Duration `json:"-"`
	Remaining        time.Duration `json:"-"`
	ElapsedTime      string        `json:"elapsedTime"`   // H:MM:SS
	RemainingTime    string        `json:"remainingTime"` // H:MM:SS
	Progress         int           `json:"progress"`      // 0..100
	OverProgress     int           `json:"overProgress"`  // percent past target, >= 0
	ElapsedPercent   int           `json:"elapsedPercent"`
	RemainingPercent int           `json:"remainingPercent"`
}

// zeroSnapshot represents a fast that has not been started: nothing has
// elapsed and the whole target remains.
func zeroSnapshot() Snapshot {
	return Snapshot{
		ElapsedTime:      FormatDuration(0),
		RemainingTime:    FormatDuration(0),
		RemainingPercent: 100,
	}
}

// ComputeSnapshot derives the display snapshot for a fast from its start
// time, optional end time, target duration in hours and the caller's "now".
// A nil start time (pending fast) or non-positive target yields the zero
// snapshot; the calculator never returns an error.
func ComputeSnapshot(startTime, endTime *time.Time, targetHours int, now time.Time) Snapshot {
	if startTime == nil || targetHours <= 0 {
		return zeroSnapshot()
	}

	target := time.Duration(targetHours) * time.Hour
	targetEnd := startTime.Add(target)

	if endTime != nil {
		// Completed: freeze on the captured end time. Nothing remains
		// regardless of whether the target was reached.
		elapsed := endTime.Sub(*startTime)
		total := progressPercent(elapsed, target)
		return Snapshot{
			Elapsed:        elapsed,
			ElapsedTime:    FormatDuration(elapsed),
			RemainingTime:  FormatDuration(0),
			Progress:       clampPercent(total),
			OverProgress:   overflowPercent(total),
			ElapsedPercent: clampPercent(total),
		}
	}

	// Active: measure against wall-clock now.
	elapsed := now.Sub(*startTime)
	remaining := targetEnd.Sub(now)
	if remaining < 0 {
		remaining = 0
	}
	total := progressPercent(elapsed, target)
	progress := clampPercent(total)
	return Snapshot{
		Elapsed:          elapsed,
		Remaining:        remaining,
		ElapsedTime:      FormatDuration(elapsed),
		RemainingTime:    FormatDuration(remaining),
		Progress:         progress,
		OverProgress:     overflowPercent(total),
		ElapsedPercent:   progress,
		RemainingPercent: 100 - progress,
	}
}

// progressPercent is the unclamped ratio of elapsed to target, rounded to
// the nearest whole percent. Negative elapsed (end before start anomaly)
// floors at zero.
func progressPercent(elapsed, target time.Duration) int {
	if elapsed <= 0 {
		return 0
	}
	return int(math.Round(float64(elapsed) / float64(target) * 100))
}

func clampPercent(p int) int {
	if p > 100 {
		return 100
	}
	if p < 0 {
		return 0
	}
	return p
}

func overflowPercent(total int) int {
	if total > 100 {
		return total - 100
	}
	return 0
}

// FormatDuration renders a duration as H:MM:SS with unbounded hours.
// Negative durations clamp to zero.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	s := (d % time.Minute) / time.Second
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}
