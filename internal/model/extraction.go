package model

// Intent is the declared scheduling intent of an extraction.
type Intent string

const (
	IntentCreateTask    Intent = "create_task"
	IntentScheduleOnly  Intent = "schedule_only"
	IntentReschedule    Intent = "reschedule"
	IntentMultiSchedule Intent = "multi_schedule"
)

// Valid reports whether i is a recognized intent.
func (i Intent) Valid() bool {
	switch i {
	case IntentCreateTask, IntentScheduleOnly, IntentReschedule, IntentMultiSchedule:
		return true
	}
	return false
}

// ExtractionTask is one task's worth of raw scheduling signals. All date
// fields are unresolved: absolute date arithmetic is the deterministic
// extractor's job, never the model's.
type ExtractionTask struct {
	TaskTitle      string   `json:"taskTitle"`
	DateExpression string   `json:"dateExpression,omitempty"`
	Month          int      `json:"month,omitempty"`
	Weekday        string   `json:"weekday,omitempty"`
	WeekdayOrdinal int      `json:"weekdayOrdinal,omitempty"`
	Time           string   `json:"time,omitempty"`
	Priority       Priority `json:"priority"`
}

// SchedulingExtraction is the normalized structured representation of a
// scheduling request, shape-identical whether it came from the
// deterministic extractor or the generative assist.
type SchedulingExtraction struct {
	Intent                   Intent           `json:"intent"`
	Tasks                    []ExtractionTask `json:"tasks"`
	RequiresTimeConfirmation bool             `json:"requiresTimeConfirmation"`
	RequiresClarification    bool             `json:"requiresClarification"`
}
