package tui

import (
	"fmt"
	"strings"

	"github.com/SAINARENDRAPANGA/lecture-progress-tracker-wise/internal/domain"
	"github.com/SAINARENDRAPANGA/lecture-progress-tracker-wise/internal/service"
	"github.com/SAINARENDRAPANGA/lecture-progress-tracker-wise/internal/tui/components"
	"github.com/SAINARENDRAPANGA/lecture-progress-tracker-wise/internal/tui/styles"
	"github.com/charmbracelet/lipgloss"
)

// maxIntervalLines caps the watched-segment list in the player panel
const maxIntervalLines = 6

// RenderPlayer renders the panel for the loaded lecture
func RenderPlayer(p *service.Player, width, height int) string {
	style := styles.ActiveBorder.Padding(0, 1)
	frameW, frameH := style.GetFrameSize()
	inner := max(0, width-frameW)

	if p == nil {
		return style.Width(inner).Height(max(0, height-frameH)).
			Render(styles.DimStyle.Render("No lectures configured"))
	}

	lec := p.Lecture()
	progress := p.Progress()

	lines := []string{
		styles.TitleStyle.Render(styles.Truncate(lec.Title, inner)),
		styles.SubtitleStyle.Render(styles.Truncate(lec.Src, inner)),
		"",
		renderClock(p),
		"",
	}

	if lec.HasDuration() {
		lines = append(lines, components.Timeline{
			Width:    inner,
			Duration: lec.Duration,
			Progress: progress,
			Position: p.Position(),
		}.View())
	} else {
		lines = append(lines, styles.ErrorStyle.Render("Duration unknown, progress is not tracked"))
	}

	lines = append(lines, "")
	if progress.CurrentPosition > 0 && !p.IsPlaying() && p.Position() != progress.CurrentPosition {
		lines = append(lines, styles.AccentStyle.Render("Continue from "+domain.FormatClock(progress.CurrentPosition)))
	}
	lines = append(lines, RenderIntervals(progress.WatchedIntervals)...)

	return style.
		Width(inner).
		Height(max(0, height-frameH)).
		Render(strings.Join(lines, "\n"))
}

func renderClock(p *service.Player) string {
	state := styles.DimStyle.Render("⏸ Paused")
	if p.IsPlaying() {
		state = styles.SuccessStyle.Render("▶ Playing")
	}
	return fmt.Sprintf("%s / %s  %s",
		domain.FormatClock(p.Position()),
		p.Lecture().FormattedDuration(),
		state,
	)
}

// RenderIntervals lists watched segments as clock ranges
func RenderIntervals(intervals []domain.Interval) []string {
	if len(intervals) == 0 {
		return []string{styles.DimStyle.Render("Nothing watched yet")}
	}

	lines := []string{styles.SubtitleStyle.Render("Watched segments")}
	for i, iv := range intervals {
		if i == maxIntervalLines {
			lines = append(lines, styles.DimStyle.Render(fmt.Sprintf("  … %d more", len(intervals)-i)))
			break
		}
		lines = append(lines, fmt.Sprintf("  %s – %s",
			domain.FormatClock(iv.Start),
			domain.FormatClock(iv.End),
		))
	}
	return lines
}

func (m Model) renderFooter() string {
	var left string
	if m.StatusMsg != "" {
		if m.StatusIsErr {
			left = styles.ErrorStyle.Render(m.StatusMsg)
		} else {
			left = styles.DimStyle.Render(m.StatusMsg)
		}
	}

	right := m.Help.ShortHelpView(m.Keys.ShortHelp())

	gap := m.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		// Not enough space - status wins
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	body := styles.TitleStyle.Render("Keys") + "\n\n" +
		m.Help.FullHelpView(m.Keys.FullHelp()) + "\n\n" +
		styles.DimStyle.Render("Press any key to return...")

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ActiveBorder.Padding(1, 2).Render(body))
}
