package components

import (
	"strings"
	"testing"

	"github.com/SAINARENDRAPANGA/lecture-progress-tracker-wise/internal/domain"
)

func cellString(cells []CellKind) string {
	var b strings.Builder
	for _, c := range cells {
		if c == CellWatched {
			b.WriteByte('#')
		} else {
			b.WriteByte('.')
		}
	}
	return b.String()
}

func TestTimelineCells(t *testing.T) {
	tests := []struct {
		name      string
		intervals []domain.Interval
		duration  float64
		width     int
		want      string
	}{
		{
			name:     "empty",
			duration: 100,
			width:    10,
			want:     "..........",
		},
		{
			name:      "skip leaves a gap",
			intervals: []domain.Interval{{Start: 0, End: 10}, {Start: 90, End: 100}},
			duration:  100,
			width:     10,
			want:      "#........#",
		},
		{
			name:      "full",
			intervals: []domain.Interval{{Start: 0, End: 60}},
			duration:  60,
			width:     6,
			want:      "######",
		},
		{
			name:      "proportional",
			intervals: []domain.Interval{{Start: 25, End: 75}},
			duration:  100,
			width:     4,
			want:      ".##.",
		},
		{
			name:     "zero duration",
			duration: 0,
			width:    5,
			want:     ".....",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cellString(TimelineCells(tt.intervals, tt.duration, tt.width))
			if got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestPlayheadCell(t *testing.T) {
	tests := []struct {
		position float64
		want     int
	}{
		{0, 0},
		{49.9, 4},
		{50, 5},
		{100, 9},
		{-5, 0},
		{250, 9},
	}
	for _, tt := range tests {
		if got := PlayheadCell(tt.position, 100, 10); got != tt.want {
			t.Errorf("PlayheadCell(%g) = %d, want %d", tt.position, got, tt.want)
		}
	}
}

func TestWatchedSummary(t *testing.T) {
	if got := WatchedSummary(20, 100); got != "20 / 100 seconds watched" {
		t.Fatalf("unexpected summary %q", got)
	}
	if got := WatchedSummary(26.1, 52.2); got != "26 / 52 seconds watched" {
		t.Fatalf("unexpected summary %q", got)
	}
}

func TestTimelineView(t *testing.T) {
	tl := Timeline{
		Width:    20,
		Duration: 100,
		Position: 50,
		Progress: domain.ProgressState{
			WatchedIntervals: []domain.Interval{{Start: 0, End: 50}},
			ProgressPercent:  50,
			CurrentPosition:  50,
		},
	}

	out := tl.View()
	if strings.Count(out, WatchedChar) != 10 {
		t.Fatalf("expected 10 watched cells in %q", out)
	}
	if !strings.Contains(out, "50.0%") {
		t.Fatalf("expected percentage in %q", out)
	}
	if !strings.Contains(out, "50 / 100 seconds watched") {
		t.Fatalf("expected summary in %q", out)
	}

	if (Timeline{Width: 2}).View() != "" {
		t.Fatal("expected empty view for tiny width")
	}
}
