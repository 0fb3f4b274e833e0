package task

import (
	"time"

	"scheduling-assistant/internal/model"
)

// CreateInput is the input for creating a single task.
type CreateInput struct {
	Title    string
	Start    time.Time
	End      time.Time
	Priority model.Priority
}

// CreateOutput is the result of a successful task creation.
type CreateOutput struct {
	TaskID       string // opaque identifier from the task service
	CalendarLink string // deep link to the mirrored calendar event (may be empty)
}
