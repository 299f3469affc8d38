package tui

import (
	"fmt"
	"io"
	"time"

	"github.com/SAINARENDRAPANGA/lecture-progress-tracker-wise/internal/domain"
	"github.com/SAINARENDRAPANGA/lecture-progress-tracker-wise/internal/service"
	"github.com/SAINARENDRAPANGA/lecture-progress-tracker-wise/internal/tui/components"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// RenderReport writes a one-row-per-lecture progress table, for use when
// stdout is not a terminal or a report was requested explicitly.
func RenderReport(w io.Writer, lectures []domain.Lecture, progressSvc *service.ProgressService) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "TITLE", "LENGTH", "WATCHED", "PROGRESS", "RESUME AT", "LAST SAVED")

	for _, lec := range lectures {
		summary := progressSvc.Summary(lec)

		lastSaved := "-"
		if saved, ok := progressSvc.Saved(lec.ID); ok && saved.Timestamp > 0 {
			lastSaved = time.UnixMilli(saved.Timestamp).Local().Format("2006-01-02 15:04")
		}

		resume := "-"
		if summary.CurrentPosition > 0 {
			resume = domain.FormatClock(summary.CurrentPosition)
		}

		t.Row(
			lec.ID,
			lec.Title,
			lec.FormattedDuration(),
			components.WatchedSummary(summary.WatchedSeconds(), lec.Duration),
			fmt.Sprintf("%.1f%%", summary.ProgressPercent),
			resume,
			lastSaved,
		)
	}

	_, err := fmt.Fprintln(w, t.Render())
	return err
}
