package assist

import (
	"context"

	"scheduling-assistant/internal/model"
)

// Adapter is the generative assist capability. Implementations degrade
// gracefully: Converse never returns an error, only a safe fallback reply.
type Adapter interface {
	// Converse sends the message plus a short rolling history to the model
	// and returns a validated conversational reply.
	Converse(ctx context.Context, message string, history []model.ConversationTurn) Reply

	// ExtractScheduling runs the structured extraction contract with bounded
	// retries. After the attempts are exhausted it returns a definitive
	// error, never a best-effort guess.
	ExtractScheduling(ctx context.Context, message string) (model.SchedulingExtraction, error)
}

// ActionType is the action the model declared in its reply.
type ActionType string

const (
	ActionProposeTask ActionType = "propose_task"
	ActionProposePlan ActionType = "propose_plan"
	ActionClarify     ActionType = "clarify"
	ActionNone        ActionType = "none"

	// ActionCreateTask is accepted for backward compatibility and treated
	// exactly like ActionProposeTask: it always goes through the
	// propose/confirm gate and never creates a task directly.
	ActionCreateTask ActionType = "create_task"
)

// Valid reports whether t is a recognized action type.
func (t ActionType) Valid() bool {
	switch t {
	case ActionProposeTask, ActionProposePlan, ActionClarify, ActionNone, ActionCreateTask:
		return true
	}
	return false
}

// TaskLike reports whether the action proposes a single task.
func (t ActionType) TaskLike() bool {
	return t == ActionProposeTask || t == ActionCreateTask
}

// TaskAction is the payload of a task-like action. Start and End are
// RFC3339 strings straight from the model; they have been checked to parse
// but are revalidated again at confirmation time.
type TaskAction struct {
	Title    string
	Start    string
	End      string
	Priority model.Priority
}

// PlanAction is the payload of a propose_plan action.
type PlanAction struct {
	PlanTitle string
	Tasks     []TaskAction
}

// Reply is a validated conversational model response.
type Reply struct {
	AssistantMessage string
	Action           ActionType
	Task             *TaskAction
	Plan             *PlanAction
}
