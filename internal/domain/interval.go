package domain

import (
	"encoding/json"
	"fmt"
)

// Interval is a contiguous range of playback, in seconds, that has been watched.
// Start is inclusive and End is exclusive for point queries.
type Interval struct {
	Start float64
	End   float64
}

// Length returns the number of seconds covered by the interval
func (i Interval) Length() float64 {
	return i.End - i.Start
}

// Contains reports whether t falls inside [Start, End)
func (i Interval) Contains(t float64) bool {
	return t >= i.Start && t < i.End
}

func (i Interval) String() string {
	return fmt.Sprintf("[%g,%g]", i.Start, i.End)
}

// MarshalJSON encodes the interval as a two-element array: [start, end]
func (i Interval) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{i.Start, i.End})
}

// UnmarshalJSON decodes a two-element array. Any other shape is an error.
func (i *Interval) UnmarshalJSON(data []byte) error {
	var pair []float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("interval: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("interval: expected 2 values, got %d", len(pair))
	}
	i.Start, i.End = pair[0], pair[1]
	return nil
}
