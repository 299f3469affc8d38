package service

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/SAINARENDRAPANGA/lecture-progress-tracker-wise/internal/domain"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// LibraryService holds the lecture catalog
type LibraryService struct {
	lectures []domain.Lecture
	byID     map[string]int
	logger   *slog.Logger
}

// NewLibraryService creates a catalog from the given lectures.
// Later duplicates of an ID are ignored.
func NewLibraryService(lectures []domain.Lecture, logger *slog.Logger) *LibraryService {
	if logger == nil {
		logger = slog.Default()
	}

	s := &LibraryService{
		lectures: make([]domain.Lecture, 0, len(lectures)),
		byID:     make(map[string]int, len(lectures)),
		logger:   logger,
	}
	for _, l := range lectures {
		if _, dup := s.byID[l.ID]; dup {
			logger.Warn("duplicate lecture id ignored", "videoID", l.ID, "title", l.Title)
			continue
		}
		s.byID[l.ID] = len(s.lectures)
		s.lectures = append(s.lectures, l)
	}

	logger.Debug("catalog loaded", "count", len(s.lectures))
	return s
}

// Lectures returns the catalog in configured order
func (s *LibraryService) Lectures() []domain.Lecture {
	out := make([]domain.Lecture, len(s.lectures))
	copy(out, s.lectures)
	return out
}

// Get looks up a lecture by ID
func (s *LibraryService) Get(id string) (domain.Lecture, error) {
	idx, ok := s.byID[id]
	if !ok {
		return domain.Lecture{}, domain.ErrLectureNotFound
	}
	return s.lectures[idx], nil
}

// Search returns lectures whose title fuzzily contains the query, best match first.
// An empty query returns nil.
func (s *LibraryService) Search(query string) []domain.Lecture {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	titles := make([]string, len(s.lectures))
	for i, l := range s.lectures {
		titles[i] = l.Title
	}

	matches := fuzzy.RankFindFold(query, titles)

	// Sort by distance (lower is better), catalog order breaks ties
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Distance != matches[j].Distance {
			return matches[i].Distance < matches[j].Distance
		}
		return matches[i].OriginalIndex < matches[j].OriginalIndex
	})

	results := make([]domain.Lecture, 0, len(matches))
	for _, m := range matches {
		results = append(results, s.lectures[m.OriginalIndex])
	}

	s.logger.Debug("search complete", "query", query, "results", len(results))
	return results
}
