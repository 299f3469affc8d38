package components

import (
	"fmt"
	"strings"

	"github.com/SAINARENDRAPANGA/lecture-progress-tracker-wise/internal/domain"
	"github.com/SAINARENDRAPANGA/lecture-progress-tracker-wise/internal/tui/styles"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"
)

// BorderHeight is the top and bottom border rows
const BorderHeight = 2

// LectureList is a scrollable, filterable list of lectures with their progress
type LectureList struct {
	lectures []domain.Lecture
	percents map[string]float64 // Progress per lecture ID
	activeID string             // Lecture loaded in the player

	// Selection
	cursor int
	offset int

	// Dimensions
	width  int
	height int

	// Filter state
	filterActive bool
	filterInput  textinput.Model
	filteredIdx  []int // indices into lectures
}

// NewLectureList creates a list over the given lectures
func NewLectureList(lectures []domain.Lecture) *LectureList {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle

	return &LectureList{
		lectures:    lectures,
		percents:    make(map[string]float64),
		filterInput: ti,
	}
}

// SetPercent records the progress shown next to a lecture
func (l *LectureList) SetPercent(id string, percent float64) {
	l.percents[id] = percent
}

// Percent returns the progress last recorded for a lecture
func (l *LectureList) Percent(id string) float64 {
	return l.percents[id]
}

// SetActive marks the lecture currently loaded in the player
func (l *LectureList) SetActive(id string) {
	l.activeID = id
}

func (l *LectureList) SetSize(width, height int) {
	l.width = width
	l.height = height
	l.ensureVisible()
}

// IsFiltering reports whether the filter input is capturing keys
func (l *LectureList) IsFiltering() bool {
	return l.filterActive && l.filterInput.Focused()
}

// StartFilter focuses the filter input
func (l *LectureList) StartFilter() tea.Cmd {
	l.filterActive = true
	return l.filterInput.Focus()
}

// ItemCount returns the number of visible rows
func (l *LectureList) ItemCount() int {
	if l.filterActive && l.filteredIdx != nil {
		return len(l.filteredIdx)
	}
	return len(l.lectures)
}

// Selected returns the lecture under the cursor
func (l *LectureList) Selected() (domain.Lecture, bool) {
	if l.cursor >= l.ItemCount() {
		return domain.Lecture{}, false
	}
	return l.lectures[l.mapIndex(l.cursor)], true
}

func (l *LectureList) Update(msg tea.Msg) tea.Cmd {
	// Typing mode
	if l.IsFiltering() {
		if key, ok := msg.(tea.KeyMsg); ok {
			switch key.String() {
			case "esc":
				l.clearFilter()
				return nil
			case "enter":
				// Accept filter, blur input to allow navigation
				l.filterInput.Blur()
				return nil
			case "backspace":
				if l.filterInput.Value() == "" {
					l.clearFilter()
					return nil
				}
			}
		}

		var cmd tea.Cmd
		l.filterInput, cmd = l.filterInput.Update(msg)
		l.applyFilter()
		return cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	if l.filterActive && key.String() == "esc" {
		l.clearFilter()
		return nil
	}

	count := l.ItemCount()
	if count == 0 {
		return nil
	}

	switch key.String() {
	case "j", "down":
		if l.cursor < count-1 {
			l.cursor++
		}
	case "k", "up":
		if l.cursor > 0 {
			l.cursor--
		}
	case "g", "home":
		l.cursor = 0
	case "G", "end":
		l.cursor = count - 1
	}
	l.ensureVisible()
	return nil
}

func (l *LectureList) View() string {
	style := styles.ActiveBorder
	frameW, frameH := style.GetFrameSize()
	inner := max(0, l.width-frameW)

	var lines []string
	lines = append(lines, styles.TitleStyle.Render("Lectures"))
	if l.filterActive {
		lines = append(lines, l.filterInput.View())
	}

	visible := l.maxVisible()
	end := min(l.offset+visible, l.ItemCount())
	for row := l.offset; row < end; row++ {
		lines = append(lines, l.renderRow(row, inner))
	}
	if l.ItemCount() == 0 {
		lines = append(lines, styles.DimStyle.Render("no matches"))
	}

	return style.
		Width(inner).
		Height(max(0, l.height-frameH)).
		Render(strings.Join(lines, "\n"))
}

func (l *LectureList) renderRow(row, width int) string {
	lec := l.lectures[l.mapIndex(row)]
	pct := l.Percent(lec.ID)

	marker := "  "
	if lec.ID == l.activeID {
		marker = styles.AccentStyle.Render("▶ ")
	}
	suffix := fmt.Sprintf(" %3.0f%%", pct)
	titleWidth := width - 2 - 2 - len(suffix) - 2 // marker, status+space, suffix, padding
	text := marker + styles.RenderWatchStatus(pct) + " " +
		styles.Pad(styles.Truncate(lec.Title, titleWidth), titleWidth) + suffix

	if row == l.cursor {
		return styles.SelectedItemStyle.Render(text)
	}
	return styles.NormalItemStyle.Render(text)
}

// maxVisible is the number of rows that fit below the header and filter lines
func (l *LectureList) maxVisible() int {
	chrome := BorderHeight + 1
	if l.filterActive {
		chrome++
	}
	return max(1, l.height-chrome)
}

func (l *LectureList) ensureVisible() {
	visible := l.maxVisible()
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+visible {
		l.offset = l.cursor - visible + 1
	}
}

func (l *LectureList) applyFilter() {
	query := l.filterInput.Value()
	if query == "" {
		l.filteredIdx = nil
		return
	}

	lowerTitles := make([]string, len(l.lectures))
	for i, lec := range l.lectures {
		lowerTitles[i] = strings.ToLower(lec.Title)
	}

	matches := fuzzy.Find(strings.ToLower(query), lowerTitles)

	l.filteredIdx = make([]int, len(matches))
	for i, match := range matches {
		l.filteredIdx[i] = match.Index
	}

	// Reset cursor to first match
	l.cursor = 0
	l.offset = 0
}

func (l *LectureList) clearFilter() {
	l.filterActive = false
	l.filterInput.Reset()
	l.filterInput.Blur()
	l.filteredIdx = nil
	l.cursor = 0
	l.offset = 0
}

func (l *LectureList) mapIndex(row int) int {
	if l.filterActive && l.filteredIdx != nil {
		return l.filteredIdx[row]
	}
	return row
}
