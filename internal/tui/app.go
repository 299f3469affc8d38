package tui

import (
	"log/slog"
	"time"

	"github.com/SAINARENDRAPANGA/lecture-progress-tracker-wise/internal/domain"
	"github.com/SAINARENDRAPANGA/lecture-progress-tracker-wise/internal/service"
	"github.com/SAINARENDRAPANGA/lecture-progress-tracker-wise/internal/tui/components"
	"github.com/SAINARENDRAPANGA/lecture-progress-tracker-wise/internal/tui/styles"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Layout proportions
const (
	ListColumnPercent = 35
	MinListWidth      = 24

	// Vertical layout: single footer line
	ChromeHeight = 1
)

// Opener launches a lecture source outside the TUI
type Opener interface {
	Open(src string, offset time.Duration) error
}

// Options tunes the player clock and tracking
type Options struct {
	SeekStep time.Duration
	Tick     time.Duration
	Session  service.SessionOptions
	Opener   Opener // Optional
	Logger   *slog.Logger
}

// Model is the main Bubble Tea model for the application
type Model struct {
	Ready    bool
	ShowHelp bool

	// Services
	LibrarySvc  *service.LibraryService
	ProgressSvc *service.ProgressService

	// UI Components
	List   *components.LectureList
	Player *service.Player
	Keys   KeyMap
	Help   help.Model

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg   string
	StatusIsErr bool
	statusSeq   int

	opts    Options
	logger  *slog.Logger
	initCmd tea.Cmd // Clears the status set while loading the first lecture
}

// NewModel creates a new application model with the first lecture loaded
func NewModel(librarySvc *service.LibraryService, progressSvc *service.ProgressService, opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Tick <= 0 {
		opts.Tick = 250 * time.Millisecond
	}
	if opts.SeekStep <= 0 {
		opts.SeekStep = 10 * time.Second
	}

	h := help.New()
	h.Styles.ShortKey = styles.HelpKeyStyle
	h.Styles.ShortDesc = styles.HelpDescStyle
	h.Styles.FullKey = styles.HelpKeyStyle
	h.Styles.FullDesc = styles.HelpDescStyle

	lectures := librarySvc.Lectures()
	m := Model{
		LibrarySvc:  librarySvc,
		ProgressSvc: progressSvc,
		List:        components.NewLectureList(lectures),
		Keys:        DefaultKeyMap(),
		Help:        h,
		opts:        opts,
		logger:      opts.Logger,
	}
	for _, lec := range lectures {
		m.List.SetPercent(lec.ID, progressSvc.Summary(lec).ProgressPercent)
	}
	if len(lectures) > 0 {
		m.initCmd = m.openLecture(lectures[0])
	}
	return m
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(TickCmd(m.opts.Tick), m.initCmd)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case TickMsg:
		m.advance()
		return m, TickCmd(m.opts.Tick)

	case StatusMsg:
		return m, m.setStatus(msg.Message, msg.IsError)

	case ErrMsg:
		m.logger.Error("ui error", "error", msg.Err, "context", msg.Context)
		return m, m.setStatus(msg.Error(), true)

	case ClearStatusMsg:
		if msg.seq == m.statusSeq {
			m.StatusMsg = ""
			m.StatusIsErr = false
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any key dismisses help
	if m.ShowHelp {
		m.ShowHelp = false
		return m, nil
	}

	// Filter input captures everything while typing
	if m.List.IsFiltering() {
		return m, m.List.Update(msg)
	}

	switch {
	case key.Matches(msg, m.Keys.Quit):
		m.Close()
		return m, tea.Quit

	case key.Matches(msg, m.Keys.Help):
		m.ShowHelp = true
		return m, nil

	case key.Matches(msg, m.Keys.Filter):
		return m, m.List.StartFilter()

	case key.Matches(msg, m.Keys.Select):
		lec, ok := m.List.Selected()
		if !ok {
			return m, nil
		}
		return m, m.openLecture(lec)
	}

	if m.Player == nil {
		return m, m.List.Update(msg)
	}

	switch {
	case key.Matches(msg, m.Keys.PlayPause):
		if !m.Player.Lecture().HasDuration() {
			return m, m.setStatus("Duration unknown, playback unavailable", true)
		}
		m.Player.TogglePlay()
		m.syncPercent()
		return m, nil

	case key.Matches(msg, m.Keys.SeekBack):
		m.Player.SeekTo(m.Player.Position() - m.opts.SeekStep.Seconds())
		m.syncPercent()
		return m, nil

	case key.Matches(msg, m.Keys.SeekForward):
		m.Player.SeekTo(m.Player.Position() + m.opts.SeekStep.Seconds())
		m.syncPercent()
		return m, nil

	case key.Matches(msg, m.Keys.Continue):
		if !m.Player.Resume() {
			return m, m.setStatus("Nothing to continue from", false)
		}
		return m, m.setStatus("Continuing from "+domain.FormatClock(m.Player.Position()), false)

	case key.Matches(msg, m.Keys.Reset):
		if err := m.Player.Reset(); err != nil {
			return m, m.setStatus(ErrMsg{Err: err, Context: "reset"}.Error(), true)
		}
		m.syncPercent()
		return m, m.setStatus("Progress reset for "+m.Player.Lecture().Title, false)

	case key.Matches(msg, m.Keys.OpenSource):
		return m, m.openExternal()
	}

	return m, m.List.Update(msg)
}

// openLecture closes the current player, saving its open segment, and loads
// lec positioned where its watched progress ends
func (m *Model) openLecture(lec domain.Lecture) tea.Cmd {
	if m.Player != nil {
		if m.Player.Lecture().ID == lec.ID {
			return nil
		}
		m.Player.Close()
		m.syncPercent()
	}

	session := service.NewWatchSession(m.ProgressSvc, lec, m.opts.Session, m.logger)
	m.Player = service.NewPlayer(session, m.logger)
	m.List.SetActive(lec.ID)
	m.syncPercent()

	if !lec.HasDuration() {
		return m.setStatus("Duration unknown for "+lec.Title, true)
	}
	if pos := m.Player.Progress().CurrentPosition; pos > 0 {
		m.Player.SeekTo(pos)
		return m.setStatus("Resuming from "+domain.FormatClock(pos), false)
	}
	return nil
}

// openExternal pauses the built-in player and hands the source to the
// configured opener at the current position
func (m *Model) openExternal() tea.Cmd {
	if m.opts.Opener == nil {
		return m.setStatus("No external player configured", true)
	}
	m.Player.Pause()
	m.syncPercent()

	lec := m.Player.Lecture()
	offset := time.Duration(m.Player.Position() * float64(time.Second))
	if err := m.opts.Opener.Open(lec.Src, offset); err != nil {
		m.logger.Error("failed to open external player", "videoID", lec.ID, "error", err)
		return m.setStatus(ErrMsg{Err: err, Context: "open"}.Error(), true)
	}
	return m.setStatus("Opened "+lec.Title+" externally, playback there is not tracked", false)
}

// advance runs the player clock by one tick
func (m *Model) advance() {
	if m.Player == nil || !m.Player.IsPlaying() {
		return
	}
	m.Player.Advance(m.opts.Tick.Seconds())
	m.syncPercent()

	if !m.Player.IsPlaying() {
		m.StatusMsg = "Finished " + m.Player.Lecture().Title
		m.StatusIsErr = false
		m.statusSeq++
	}
}

// Close stops playback so the last watched segment is saved
func (m *Model) Close() {
	if m.Player != nil {
		m.Player.Close()
		m.syncPercent()
	}
}

func (m *Model) syncPercent() {
	if m.Player == nil {
		return
	}
	m.List.SetPercent(m.Player.Lecture().ID, m.Player.Progress().ProgressPercent)
}

func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.statusSeq++
	m.StatusMsg = text
	m.StatusIsErr = isErr
	return ClearStatusCmd(m.statusSeq, statusTTL)
}

func (m *Model) updateLayout() {
	contentHeight := m.Height - ChromeHeight
	m.List.SetSize(m.listWidth(), contentHeight)
	m.Help.Width = m.Width
}

func (m Model) listWidth() int {
	return max(MinListWidth, m.Width*ListColumnPercent/100)
}

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	if m.ShowHelp {
		return m.renderHelp()
	}

	contentHeight := m.Height - ChromeHeight
	listWidth := m.listWidth()
	playerWidth := max(0, m.Width-listWidth)

	content := lipgloss.JoinHorizontal(lipgloss.Top,
		m.List.View(),
		RenderPlayer(m.Player, playerWidth, contentHeight),
	)

	return lipgloss.JoinVertical(lipgloss.Left, content, m.renderFooter())
}
