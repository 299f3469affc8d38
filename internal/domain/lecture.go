package domain

import "fmt"

// Lecture is a video whose viewing progress is tracked
type Lecture struct {
	ID       string  // Stable identifier, used to key saved progress
	Title    string  // Display title
	Src      string  // Media URL
	Duration float64 // Total runtime in seconds (0 until known)
}

// HasDuration reports whether the runtime is known, which tracking requires
func (l Lecture) HasDuration() bool {
	return l.Duration > 0
}

// FormattedDuration returns the runtime as MM:SS
func (l Lecture) FormattedDuration() string {
	return FormatClock(l.Duration)
}

// FormatClock renders seconds as zero-padded MM:SS, truncating fractions.
// Minutes are not wrapped into hours.
func FormatClock(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
