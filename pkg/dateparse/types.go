package dateparse

import "time"

// ClockTime is a resolved wall-clock time of day.
type ClockTime struct {
	Hour   int
	Minute int
}

// Result holds the fields the extractor could resolve from free text.
// Either field may be nil: the extractor never fabricates a time when
// only a date is given, or vice versa.
type Result struct {
	Date          *time.Time // midnight of the resolved day, in the extractor's location
	Time          *ClockTime
	ExplicitToday bool // the text literally named "today"
}

// HasDate reports whether a date was resolved.
func (r Result) HasDate() bool { return r.Date != nil }

// HasTime reports whether a time was resolved.
func (r Result) HasTime() bool { return r.Time != nil }
