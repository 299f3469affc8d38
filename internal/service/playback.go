package service

import (
	"log/slog"
	"math"

	"github.com/SAINARENDRAPANGA/lecture-progress-tracker-wise/internal/domain"
)

// Player is a playback clock for one lecture that reports play, pause, seek
// and end events to a WatchSession, the way a video element's handlers would.
type Player struct {
	session  *WatchSession
	position float64
	playing  bool
	logger   *slog.Logger
}

// NewPlayer creates a paused player positioned at the start of the lecture
func NewPlayer(session *WatchSession, logger *slog.Logger) *Player {
	if logger == nil {
		logger = slog.Default()
	}
	return &Player{
		session: session,
		logger:  logger.With("sessionID", session.ID(), "videoID", session.Lecture().ID),
	}
}

// Lecture returns the lecture loaded in the player
func (p *Player) Lecture() domain.Lecture { return p.session.Lecture() }

// Session returns the tracking session behind the player
func (p *Player) Session() *WatchSession { return p.session }

// Position returns the current playback position in seconds
func (p *Player) Position() float64 { return p.position }

// Duration returns the lecture length in seconds
func (p *Player) Duration() float64 { return p.session.Lecture().Duration }

// IsPlaying reports whether the clock is running
func (p *Player) IsPlaying() bool { return p.playing }

// Progress returns the tracking read model
func (p *Player) Progress() domain.ProgressState { return p.session.Progress() }

// Play starts playback from the current position
func (p *Player) Play() {
	if p.playing || !p.Lecture().HasDuration() {
		return
	}
	if p.position >= p.Duration() {
		p.position = 0
	}
	p.playing = true
	p.session.StartTracking(p.position)
	p.logger.Info("playback started", "position", p.position)
}

// Pause stops playback and records the segment just played
func (p *Player) Pause() {
	if !p.playing {
		return
	}
	p.playing = false
	p.session.StopTracking(p.position)
	p.logger.Info("playback paused", "position", p.position)
}

// TogglePlay switches between playing and paused
func (p *Player) TogglePlay() {
	if p.playing {
		p.Pause()
		return
	}
	p.Play()
}

// SeekTo moves playback to t, clamped to the lecture. The skipped range is
// never credited: the open segment is closed at the old position and a new
// one starts at the target.
func (p *Player) SeekTo(t float64) {
	target := math.Max(0, math.Min(t, p.Duration()))
	if p.playing {
		p.session.StopTracking(p.position)
	}
	p.position = target
	if p.playing {
		p.session.StartTracking(target)
	}
}

// Advance moves the clock forward by dt seconds of real playback.
// Reaching the end of the lecture ends playback.
func (p *Player) Advance(dt float64) {
	if !p.playing || dt <= 0 {
		return
	}
	p.position = math.Min(p.position+dt, p.Duration())
	if p.position >= p.Duration() {
		p.End()
		return
	}
	p.session.UpdateTimePosition(p.position)
}

// End finishes playback at the end of the lecture
func (p *Player) End() {
	p.position = p.Duration()
	if p.session.IsTracking() {
		p.session.StopTracking(p.Duration())
	}
	p.playing = false
	p.logger.Info("playback ended", "percent", p.session.Progress().ProgressPercent)
}

// Resume seeks to the end of the last watched run.
// It returns false when there is nothing to resume from.
func (p *Player) Resume() bool {
	pos := p.session.Progress().CurrentPosition
	if pos <= 0 {
		return false
	}
	p.SeekTo(pos)
	p.logger.Info("resuming", "position", pos)
	return true
}

// Reset clears progress for the lecture and rewinds to the start.
// If progress cannot be deleted, playback continues from where it was.
func (p *Player) Reset() error {
	if p.playing {
		// Close the open segment so pre-reset playback is not credited
		p.session.StopTracking(p.position)
	}
	err := p.session.ResetProgress()
	if err == nil {
		p.position = 0
	}
	if p.playing {
		p.session.StartTracking(p.position)
	}
	return err
}

// Close stops tracking so the last segment is saved
func (p *Player) Close() {
	p.Pause()
}
