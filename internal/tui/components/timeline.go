package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/SAINARENDRAPANGA/lecture-progress-tracker-wise/internal/domain"
	"github.com/SAINARENDRAPANGA/lecture-progress-tracker-wise/internal/tui/styles"
)

// Raw timeline characters (unstyled)
const (
	WatchedChar  = "█"
	GapChar      = "░"
	PlayheadChar = "▼"
)

// CellKind classifies one character cell of the timeline
type CellKind int

const (
	CellGap CellKind = iota
	CellWatched
)

// TimelineCells maps watched intervals onto width cells spanning the whole
// duration. A cell counts as watched when its midpoint was watched, so the bar
// reads the same as the per-second IsWatched query at terminal resolution.
func TimelineCells(intervals []domain.Interval, duration float64, width int) []CellKind {
	if width <= 0 {
		return nil
	}
	cells := make([]CellKind, width)
	if duration <= 0 {
		return cells
	}

	step := duration / float64(width)
	for i := range cells {
		mid := (float64(i) + 0.5) * step
		for _, iv := range intervals {
			if iv.Contains(mid) {
				cells[i] = CellWatched
				break
			}
		}
	}
	return cells
}

// PlayheadCell returns the cell index under position, clamped to the bar
func PlayheadCell(position, duration float64, width int) int {
	if width <= 0 || duration <= 0 {
		return 0
	}
	idx := int(math.Floor(position / duration * float64(width)))
	return max(0, min(idx, width-1))
}

// Timeline renders watched segments of a lecture as a single-line bar
type Timeline struct {
	Width    int
	Duration float64
	Progress domain.ProgressState
	Position float64
}

// View renders the playhead marker line, the bar and the summary line
func (t Timeline) View() string {
	if t.Width < 3 {
		return ""
	}

	cells := TimelineCells(t.Progress.WatchedIntervals, t.Duration, t.Width)
	head := PlayheadCell(t.Position, t.Duration, t.Width)

	var bar strings.Builder
	for _, c := range cells {
		if c == CellWatched {
			bar.WriteString(styles.WatchedStyle.Render(WatchedChar))
		} else {
			bar.WriteString(styles.GapStyle.Render(GapChar))
		}
	}

	marker := strings.Repeat(" ", head) + styles.PlayheadStyle.Render(PlayheadChar)

	header := styles.Pad(styles.TitleStyle.Render("Progress"), t.Width-7) +
		styles.AccentStyle.Render(fmt.Sprintf("%6.1f%%", t.Progress.ProgressPercent))

	return strings.Join([]string{
		header,
		marker,
		bar.String(),
		styles.DimStyle.Render(WatchedSummary(t.Progress.WatchedSeconds(), t.Duration)),
	}, "\n")
}

// WatchedSummary reports watched time as "N / M seconds watched", both rounded
func WatchedSummary(watched, duration float64) string {
	return fmt.Sprintf("%d / %d seconds watched",
		int(math.Round(watched)),
		int(math.Round(duration)),
	)
}
