package service

import (
	"log/slog"

	"github.com/SAINARENDRAPANGA/lecture-progress-tracker-wise/internal/domain"
	"github.com/SAINARENDRAPANGA/lecture-progress-tracker-wise/internal/tracker"
	"github.com/google/uuid"
)

// DefaultMinUpdateSeconds is how much continuous playback must elapse before
// a periodic position update is recorded as an interval.
const DefaultMinUpdateSeconds = 1.0

// SessionOptions tunes a WatchSession
type SessionOptions struct {
	MinUpdateSeconds float64
}

// WatchSession turns playback events for one lecture into watched intervals.
//
// Tracking starts at a known position and every stop, or every periodic update
// far enough past the last recorded position, adds the segment in between.
// Progress is saved after each recorded segment.
type WatchSession struct {
	id       string
	lecture  domain.Lecture
	progress *ProgressService
	tracker  *tracker.IntervalTracker
	opts     SessionOptions
	logger   *slog.Logger

	tracking bool
	last     float64
	hasLast  bool

	state domain.ProgressState
}

// NewWatchSession restores saved progress for the lecture and returns a
// session ready to track. Lectures without a known duration start empty.
func NewWatchSession(progress *ProgressService, lecture domain.Lecture, opts SessionOptions, logger *slog.Logger) *WatchSession {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.MinUpdateSeconds <= 0 {
		opts.MinUpdateSeconds = DefaultMinUpdateSeconds
	}

	id := uuid.NewString()
	s := &WatchSession{
		id:       id,
		lecture:  lecture,
		progress: progress,
		opts:     opts,
		logger:   logger.With("sessionID", id, "videoID", lecture.ID),
	}

	if lecture.HasDuration() {
		s.tracker = progress.Load(lecture.ID, lecture.Duration)
	} else {
		s.tracker = tracker.New(lecture.Duration)
	}
	s.refresh()

	s.logger.Debug("watch session opened", "duration", lecture.Duration, "percent", s.state.ProgressPercent)
	return s
}

// ID returns the session identifier used in logs
func (s *WatchSession) ID() string { return s.id }

// Lecture returns the lecture being tracked
func (s *WatchSession) Lecture() domain.Lecture { return s.lecture }

// Tracker exposes the underlying tracker for point queries such as IsWatched.
// Callers must not mutate it directly.
func (s *WatchSession) Tracker() *tracker.IntervalTracker { return s.tracker }

// IsTracking reports whether a segment is currently open
func (s *WatchSession) IsTracking() bool { return s.tracking }

// Progress returns the read model as of the last change
func (s *WatchSession) Progress() domain.ProgressState { return s.state }

// StartTracking opens a segment at the given playback position
func (s *WatchSession) StartTracking(at float64) {
	s.tracking = true
	s.last = at
	s.hasLast = true
}

// StopTracking closes the open segment at the given position and records it
func (s *WatchSession) StopTracking(at float64) {
	if s.tracking && s.hasLast {
		s.record(s.last, at)
	}
	s.tracking = false
	s.hasLast = false
}

// UpdateTimePosition records the segment since the last update once enough
// playback has elapsed. Smaller steps are absorbed into the next one.
func (s *WatchSession) UpdateTimePosition(at float64) {
	if !s.tracking || !s.hasLast {
		return
	}
	if at-s.last > s.opts.MinUpdateSeconds {
		s.record(s.last, at)
		s.last = at
	}
}

// ResetProgress deletes saved progress and then forgets all watched intervals.
// When the delete fails the tracker keeps its intervals, matching the store.
func (s *WatchSession) ResetProgress() error {
	if err := s.progress.Reset(s.lecture.ID); err != nil {
		s.logger.Error("failed to reset progress", "error", err)
		return err
	}
	s.tracker.Clear()
	s.refresh()
	return nil
}

func (s *WatchSession) record(start, end float64) {
	s.tracker.AddInterval(start, end)
	s.refresh()

	if err := s.progress.Save(s.lecture.ID, s.tracker); err != nil {
		s.logger.Error("failed to save progress", "error", err)
		return
	}
	s.logger.Debug("segment recorded",
		"start", start,
		"end", end,
		"percent", s.state.ProgressPercent,
	)
}

func (s *WatchSession) refresh() {
	s.state = Snapshot(s.tracker)
}
