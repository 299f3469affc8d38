package domain

// ProgressState is the read model handed to the UI after every tracking change.
type ProgressState struct {
	WatchedIntervals []Interval
	ProgressPercent  float64
	CurrentPosition  float64 // End of the last watched run, used for resume
}

// WatchedSeconds sums the interval lengths
func (p ProgressState) WatchedSeconds() float64 {
	var total float64
	for _, iv := range p.WatchedIntervals {
		total += iv.Length()
	}
	return total
}

// SavedProgress is the persisted record for one lecture.
type SavedProgress struct {
	Intervals []Interval `json:"intervals"`
	Timestamp int64      `json:"timestamp"` // Unix milliseconds at save time
}
