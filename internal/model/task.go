package model

import "time"

// Task is a task persisted by the external task service.
type Task struct {
	ID           string    // opaque identifier assigned by the task service
	Title        string
	Start        time.Time
	End          time.Time
	Priority     Priority
	CalendarLink string // deep link to the mirrored calendar event (may be empty)
}
