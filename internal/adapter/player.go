package adapter

import (
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// ErrNoSource is returned when a lecture has no media URL to open
var ErrNoSource = errors.New("lecture has no source")

// offsetFlags maps known players to their start-offset flag.
// A trailing space means the value is passed as a separate argument.
var offsetFlags = map[string]string{
	"mpv":       "--start=",
	"vlc":       "--start-time=",
	"iina":      "--mpv-start=",
	"celluloid": "--mpv-start=",
	"ffplay":    "-ss ",
}

// ExternalPlayer opens a lecture's source in a desktop player. Playback there
// is not observed, so nothing it plays is credited as watched.
type ExternalPlayer struct {
	command   string   // configured player command, empty for system default
	args      []string // additional arguments for the player
	startFlag string   // offset flag prefix, e.g., "--start=" or "-ss "
	logger    *slog.Logger

	// start runs the command without waiting for it
	start func(name string, args ...string) error
}

// NewExternalPlayer creates a player launcher. The start flag is detected
// for known players when not configured.
func NewExternalPlayer(cfg PlayerConfig, logger *slog.Logger) *ExternalPlayer {
	if logger == nil {
		logger = slog.Default()
	}

	flag := cfg.StartFlag
	if flag == "" && cfg.Command != "" {
		base := strings.ToLower(filepath.Base(cfg.Command))
		base = strings.TrimSuffix(base, filepath.Ext(base))
		if f, ok := offsetFlags[base]; ok {
			flag = f
			logger.Debug("auto-detected player offset flag", "player", base, "flag", flag)
		}
	}

	return &ExternalPlayer{
		command:   cfg.Command,
		args:      cfg.Args,
		startFlag: flag,
		logger:    logger,
		start: func(name string, args ...string) error {
			return exec.Command(name, args...).Start()
		},
	}
}

// Open launches src, starting at offset when the player supports it
func (p *ExternalPlayer) Open(src string, offset time.Duration) error {
	if src == "" {
		return ErrNoSource
	}

	name, args := p.command, p.Args(src, offset)
	if name == "" {
		name, args = systemOpener(src)
		if offset > 0 {
			p.logger.Debug("system default player ignores start offset", "offset", offset)
		}
	}

	p.logger.Info("launching external player", "command", name, "args", args)
	if err := p.start(name, args...); err != nil {
		return fmt.Errorf("launching %s: %w", name, err)
	}
	return nil
}

// Args builds the configured player's argument list, source last
func (p *ExternalPlayer) Args(src string, offset time.Duration) []string {
	args := append([]string{}, p.args...)

	secs := fmt.Sprintf("%.0f", offset.Seconds())
	switch {
	case offset <= 0 || p.command == "":
	case p.startFlag == "":
		p.logger.Warn("cannot set start offset, configure player.start_flag",
			"command", p.command, "offset", offset)
	case strings.HasSuffix(p.startFlag, " "):
		args = append(args, strings.TrimSuffix(p.startFlag, " "), secs)
	default:
		args = append(args, p.startFlag+secs)
	}

	return append(args, src)
}

// systemOpener returns the platform's default URL handler invocation
func systemOpener(src string) (string, []string) {
	switch runtime.GOOS {
	case "darwin":
		return "open", []string{src}
	case "windows":
		return "cmd", []string{"/c", "start", "", src}
	default:
		return "xdg-open", []string{src}
	}
}
