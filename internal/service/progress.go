package service

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/SAINARENDRAPANGA/lecture-progress-tracker-wise/internal/domain"
	"github.com/SAINARENDRAPANGA/lecture-progress-tracker-wise/internal/tracker"
)

// progressKeyPrefix namespaces saved progress in the store
const progressKeyPrefix = "video-progress-"

// ProgressKey returns the store key for a lecture's saved progress
func ProgressKey(videoID string) string {
	return progressKeyPrefix + videoID
}

// prefixDeleter is implemented by stores that can drop a key range at once
type prefixDeleter interface {
	DeletePrefix(prefix string) error
}

// ProgressService saves and restores watched intervals per lecture.
// Bad or missing saved data always degrades to "no prior progress".
type ProgressService struct {
	store  domain.ProgressStore
	logger *slog.Logger
	now    func() time.Time
}

// NewProgressService creates a new progress service
func NewProgressService(store domain.ProgressStore, logger *slog.Logger) *ProgressService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProgressService{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// Load returns a tracker for the lecture seeded with any saved intervals
func (s *ProgressService) Load(videoID string, duration float64) *tracker.IntervalTracker {
	t := tracker.New(duration)

	saved, ok := s.Saved(videoID)
	if !ok {
		return t
	}

	t.SetIntervals(saved.Intervals)
	s.logger.Debug("restored progress",
		"videoID", videoID,
		"intervals", len(saved.Intervals),
		"percent", t.ProgressPercentage(),
	)
	return t
}

// Saved returns the decoded record for a lecture. Entries that are not
// finite, non-empty ranges are dropped; undecodable records read as absent.
func (s *ProgressService) Saved(videoID string) (domain.SavedProgress, bool) {
	data, ok := s.store.Get(ProgressKey(videoID))
	if !ok {
		return domain.SavedProgress{}, false
	}

	saved, err := DecodeProgress(data)
	if err != nil {
		s.logger.Warn("discarding unreadable saved progress", "videoID", videoID, "error", err)
		return domain.SavedProgress{}, false
	}
	return saved, true
}

// Save writes the tracker's intervals with the current time
func (s *ProgressService) Save(videoID string, t *tracker.IntervalTracker) error {
	data, err := EncodeProgress(domain.SavedProgress{
		Intervals: t.Intervals(),
		Timestamp: s.now().UnixMilli(),
	})
	if err != nil {
		return fmt.Errorf("encoding progress for %s: %w", videoID, err)
	}
	if err := s.store.Put(ProgressKey(videoID), data); err != nil {
		return fmt.Errorf("saving progress for %s: %w", videoID, err)
	}
	return nil
}

// Reset deletes saved progress for one lecture
func (s *ProgressService) Reset(videoID string) error {
	if err := s.store.Delete(ProgressKey(videoID)); err != nil {
		return fmt.Errorf("resetting progress for %s: %w", videoID, err)
	}
	s.logger.Info("progress reset", "videoID", videoID)
	return nil
}

// ResetAll deletes saved progress for every lecture in the catalog.
// Stores that support prefix deletion also lose records for lectures no
// longer in the catalog.
func (s *ProgressService) ResetAll(lectures []domain.Lecture) error {
	if pd, ok := s.store.(prefixDeleter); ok {
		if err := pd.DeletePrefix(progressKeyPrefix); err != nil {
			return fmt.Errorf("resetting all progress: %w", err)
		}
		s.logger.Info("all progress reset")
		return nil
	}
	for _, l := range lectures {
		if err := s.Reset(l.ID); err != nil {
			return err
		}
	}
	return nil
}

// Summary builds the read model for a lecture from saved data alone
func (s *ProgressService) Summary(lecture domain.Lecture) domain.ProgressState {
	return Snapshot(s.Load(lecture.ID, lecture.Duration))
}

// Snapshot derives the UI read model from a tracker
func Snapshot(t *tracker.IntervalTracker) domain.ProgressState {
	return domain.ProgressState{
		WatchedIntervals: t.Intervals(),
		ProgressPercent:  t.ProgressPercentage(),
		CurrentPosition:  t.FurthestWatchedPosition(),
	}
}

// EncodeProgress serializes a saved record
func EncodeProgress(p domain.SavedProgress) ([]byte, error) {
	if p.Intervals == nil {
		p.Intervals = []domain.Interval{}
	}
	return json.Marshal(p)
}

// DecodeProgress parses a saved record and drops malformed intervals
func DecodeProgress(data []byte) (domain.SavedProgress, error) {
	var raw struct {
		Intervals []json.RawMessage `json:"intervals"`
		Timestamp int64             `json:"timestamp"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return domain.SavedProgress{}, err
	}
	if raw.Intervals == nil {
		return domain.SavedProgress{}, fmt.Errorf("record has no intervals")
	}

	saved := domain.SavedProgress{
		Intervals: make([]domain.Interval, 0, len(raw.Intervals)),
		Timestamp: raw.Timestamp,
	}
	for _, msg := range raw.Intervals {
		var iv domain.Interval
		if err := json.Unmarshal(msg, &iv); err != nil {
			continue
		}
		if !validInterval(iv) {
			continue
		}
		saved.Intervals = append(saved.Intervals, iv)
	}
	return saved, nil
}

func validInterval(iv domain.Interval) bool {
	if math.IsNaN(iv.Start) || math.IsInf(iv.Start, 0) || math.IsNaN(iv.End) || math.IsInf(iv.End, 0) {
		return false
	}
	return iv.Start < iv.End
}
