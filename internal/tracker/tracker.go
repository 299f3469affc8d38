// Package tracker maintains the merged set of watched intervals for one video.
//
// The set is kept sorted by start, with no two intervals overlapping or touching.
// Every mutation re-establishes that form, so reads never need to merge.
package tracker

import (
	"math"
	"slices"

	"github.com/SAINARENDRAPANGA/lecture-progress-tracker-wise/internal/domain"
)

// IntervalTracker records which parts of a video have actually been played.
// Seeking past a section earns no credit for it and replaying a section is
// only counted once.
//
// An IntervalTracker is owned by a single playback session and is not safe
// for concurrent use.
type IntervalTracker struct {
	duration  float64
	intervals []domain.Interval
}

// New creates an empty tracker for a video of the given length in seconds
func New(totalDuration float64) *IntervalTracker {
	return &IntervalTracker{duration: totalDuration}
}

// Duration returns the video length the tracker was created with
func (t *IntervalTracker) Duration() float64 {
	return t.duration
}

// AddInterval records that [start, end] was played without interruption.
//
// Segments with start >= end, or that run past the end of the video, are
// ignored. Accepted segments are widened to whole seconds and clamped to
// [0, duration] before being merged in.
func (t *IntervalTracker) AddInterval(start, end float64) {
	if !(start < end) || end > t.duration {
		return
	}

	iv := domain.Interval{
		Start: math.Max(0, math.Floor(start)),
		End:   math.Min(math.Ceil(end), t.duration),
	}
	// Only reachable with a negative end
	if iv.End <= iv.Start {
		return
	}

	t.intervals = merge(append(t.intervals, iv))
}

// SetIntervals replaces the watched set, typically with previously saved data.
// Bounds are not checked against the duration; the input is only re-merged.
func (t *IntervalTracker) SetIntervals(intervals []domain.Interval) {
	t.intervals = merge(slices.Clone(intervals))
}

// Intervals returns a copy of the watched set in ascending order
func (t *IntervalTracker) Intervals() []domain.Interval {
	return slices.Clone(t.intervals)
}

// TotalWatchedSeconds returns the number of unique seconds watched
func (t *IntervalTracker) TotalWatchedSeconds() float64 {
	var total float64
	for _, iv := range t.intervals {
		total += iv.End - iv.Start
	}
	return total
}

// ProgressPercentage returns unique watched time as a share of the duration,
// in [0, 100]. A tracker without a positive duration reports 0.
func (t *IntervalTracker) ProgressPercentage() float64 {
	if t.duration <= 0 {
		return 0
	}
	pct := t.TotalWatchedSeconds() * 100 / t.duration
	return math.Max(0, math.Min(100, pct))
}

// FurthestWatchedPosition returns the end of the last watched run, or 0.
// This is where playback should resume, not the furthest point ever seeked to.
func (t *IntervalTracker) FurthestWatchedPosition() float64 {
	if len(t.intervals) == 0 {
		return 0
	}
	return t.intervals[len(t.intervals)-1].End
}

// IsWatched reports whether the given second lies in some [start, end)
func (t *IntervalTracker) IsWatched(at float64) bool {
	for _, iv := range t.intervals {
		if iv.Contains(at) {
			return true
		}
	}
	return false
}

// Clear forgets all watched intervals
func (t *IntervalTracker) Clear() {
	t.intervals = nil
}

// merge sorts intervals by start and collapses any that overlap or touch.
// The input slice is reordered in place; the result is a new slice.
func merge(intervals []domain.Interval) []domain.Interval {
	if len(intervals) == 0 {
		return nil
	}

	slices.SortFunc(intervals, func(a, b domain.Interval) int {
		switch {
		case a.Start < b.Start:
			return -1
		case a.Start > b.Start:
			return 1
		}
		return 0
	})

	merged := make([]domain.Interval, 0, len(intervals))
	current := intervals[0]
	for _, next := range intervals[1:] {
		if next.Start <= current.End {
			current.End = math.Max(current.End, next.End)
			continue
		}
		merged = append(merged, current)
		current = next
	}
	return append(merged, current)
}
