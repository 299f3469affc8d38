package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/SAINARENDRAPANGA/lecture-progress-tracker-wise/internal/adapter"
	"github.com/SAINARENDRAPANGA/lecture-progress-tracker-wise/internal/domain"
	"github.com/SAINARENDRAPANGA/lecture-progress-tracker-wise/internal/service"
	"github.com/SAINARENDRAPANGA/lecture-progress-tracker-wise/internal/store"
	"github.com/SAINARENDRAPANGA/lecture-progress-tracker-wise/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

// Version is set at build time via -ldflags
var Version = "dev"

type flags struct {
	configPath string
	reset      string
	search     string
	report     bool
	purge      bool
}

func main() {
	var (
		showVersion bool
		f           flags
	)
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.StringVar(&f.configPath, "config", "", "path to config file")
	flag.StringVar(&f.reset, "reset", "", "delete saved progress for a lecture id, or \"all\"")
	flag.BoolVar(&f.report, "report", false, "print a progress report and exit")
	flag.StringVar(&f.search, "search", "", "report only lectures whose title matches the query")
	flag.BoolVar(&f.purge, "purge", false, "remove the storage directory and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("lectures %s\n", Version)
		return
	}

	if err := run(f); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(f flags) error {
	// Load configuration
	cfg, err := loadConfig(f.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting lectures", "version", Version, "driver", cfg.Storage.Driver)

	if f.purge {
		if err := adapter.ClearStorage(&cfg.Storage); err != nil {
			return err
		}
		fmt.Println("✓ Storage removed")
		return nil
	}

	st, err := store.Open(store.Options{Driver: cfg.Storage.Driver, Dir: cfg.Storage.Path})
	if err != nil {
		return fmt.Errorf("failed to open progress store: %w", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.Error("failed to close store", "error", err)
		}
	}()

	// Create services
	librarySvc := service.NewLibraryService(cfg.LectureList(), logger)
	progressSvc := service.NewProgressService(st, logger)

	if f.reset != "" {
		return resetProgress(f.reset, librarySvc, progressSvc)
	}

	if f.search != "" {
		matches := librarySvc.Search(f.search)
		if len(matches) == 0 {
			return fmt.Errorf("no lecture matches %q", f.search)
		}
		return tui.RenderReport(os.Stdout, matches, progressSvc)
	}

	if f.report || !term.IsTerminal(int(os.Stdout.Fd())) {
		return tui.RenderReport(os.Stdout, librarySvc.Lectures(), progressSvc)
	}

	// Create TUI model
	model := tui.NewModel(librarySvc, progressSvc, tui.Options{
		SeekStep: time.Duration(cfg.Tracking.SeekStepSeconds * float64(time.Second)),
		Tick:     time.Duration(cfg.Tracking.TickMillis) * time.Millisecond,
		Session:  service.SessionOptions{MinUpdateSeconds: cfg.Tracking.MinUpdateSeconds},
		Opener:   adapter.NewExternalPlayer(cfg.Player, logger),
		Logger:   logger,
	})

	// Run the TUI
	p := tea.NewProgram(model, tea.WithAltScreen())

	logger.Info("starting TUI")

	final, err := p.Run()
	if m, ok := final.(tui.Model); ok {
		// Save the open segment even when the program was interrupted
		m.Close()
	}
	if err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

func loadConfig(path string) (*adapter.Config, error) {
	if path != "" {
		return adapter.LoadConfigFile(path)
	}
	return adapter.LoadConfig()
}

// resetProgress handles -reset for one lecture or the whole catalog
func resetProgress(id string, librarySvc *service.LibraryService, progressSvc *service.ProgressService) error {
	if id == "all" {
		if err := progressSvc.ResetAll(librarySvc.Lectures()); err != nil {
			return err
		}
		fmt.Println("✓ Progress reset for all lectures")
		return nil
	}

	lec, err := librarySvc.Get(id)
	if errors.Is(err, domain.ErrLectureNotFound) {
		return fmt.Errorf("unknown lecture %q", id)
	}
	if err := progressSvc.Reset(lec.ID); err != nil {
		return err
	}
	fmt.Printf("✓ Progress reset for %s\n", lec.Title)
	return nil
}
