package assist

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"scheduling-assistant/internal/model"
)

// wire types for the conversational reply contract.

type wireReply struct {
	AssistantMessage string     `json:"assistant_message"`
	Action           wireAction `json:"action"`
}

type wireAction struct {
	Type      string     `json:"type"`
	Title     string     `json:"title"`
	Start     string     `json:"start"`
	End       string     `json:"end"`
	Priority  string     `json:"priority"`
	PlanTitle string     `json:"plan_title"`
	Tasks     []wireTask `json:"tasks"`
}

type wireTask struct {
	Title    string `json:"title"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Priority string `json:"priority"`
}

// extractJSONObject locates the first '{' and the last '}' in raw and
// returns the substring. Models routinely wrap JSON in prose or fences.
func extractJSONObject(raw string) (string, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return "", fmt.Errorf("%w: no JSON object found", ErrMalformedOutput)
	}
	return raw[start : end+1], nil
}

// ParseReply extracts and validates a conversational reply from raw model
// output. Any schema violation for the declared action is a failure.
func ParseReply(raw string) (Reply, error) {
	obj, err := extractJSONObject(raw)
	if err != nil {
		return Reply{}, err
	}

	var w wireReply
	if err := json.Unmarshal([]byte(obj), &w); err != nil {
		return Reply{}, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}

	if strings.TrimSpace(w.AssistantMessage) == "" {
		return Reply{}, fmt.Errorf("%w: missing assistant_message", ErrMalformedOutput)
	}

	action := ActionType(w.Action.Type)
	if !action.Valid() {
		return Reply{}, fmt.Errorf("%w: unknown action type %q", ErrMalformedOutput, w.Action.Type)
	}

	reply := Reply{AssistantMessage: w.AssistantMessage, Action: action}

	switch {
	case action.TaskLike():
		t, err := validateTask(wireTask{
			Title:    w.Action.Title,
			Start:    w.Action.Start,
			End:      w.Action.End,
			Priority: w.Action.Priority,
		})
		if err != nil {
			return Reply{}, err
		}
		reply.Task = &t

	case action == ActionProposePlan:
		if strings.TrimSpace(w.Action.PlanTitle) == "" {
			return Reply{}, fmt.Errorf("%w: plan is missing plan_title", ErrMalformedOutput)
		}
		if len(w.Action.Tasks) == 0 {
			return Reply{}, fmt.Errorf("%w: plan has no tasks", ErrMalformedOutput)
		}
		plan := PlanAction{PlanTitle: w.Action.PlanTitle}
		for i, wt := range w.Action.Tasks {
			t, err := validateTask(wt)
			if err != nil {
				return Reply{}, fmt.Errorf("plan task %d: %w", i, err)
			}
			plan.Tasks = append(plan.Tasks, t)
		}
		reply.Plan = &plan
	}

	return reply, nil
}

// validateTask checks the required payload shape of a task-like action.
func validateTask(w wireTask) (TaskAction, error) {
	if strings.TrimSpace(w.Title) == "" {
		return TaskAction{}, fmt.Errorf("%w: task is missing title", ErrMalformedOutput)
	}
	start, err := time.Parse(time.RFC3339, w.Start)
	if err != nil {
		return TaskAction{}, fmt.Errorf("%w: task start %q is not RFC3339", ErrMalformedOutput, w.Start)
	}
	end, err := time.Parse(time.RFC3339, w.End)
	if err != nil {
		return TaskAction{}, fmt.Errorf("%w: task end %q is not RFC3339", ErrMalformedOutput, w.End)
	}
	if !end.After(start) {
		return TaskAction{}, fmt.Errorf("%w: task end is not after start", ErrMalformedOutput)
	}
	priority, ok := model.ParsePriority(w.Priority)
	if !ok {
		return TaskAction{}, fmt.Errorf("%w: task priority %q is invalid", ErrMalformedOutput, w.Priority)
	}
	return TaskAction{Title: w.Title, Start: w.Start, End: w.End, Priority: priority}, nil
}

// ParseExtraction extracts and validates a structured scheduling extraction
// from raw model output.
func ParseExtraction(raw string) (model.SchedulingExtraction, error) {
	obj, err := extractJSONObject(raw)
	if err != nil {
		return model.SchedulingExtraction{}, err
	}

	var ex model.SchedulingExtraction
	if err := json.Unmarshal([]byte(obj), &ex); err != nil {
		return model.SchedulingExtraction{}, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}

	if !ex.Intent.Valid() {
		return model.SchedulingExtraction{}, fmt.Errorf("%w: unknown intent %q", ErrMalformedOutput, ex.Intent)
	}
	if len(ex.Tasks) == 0 {
		return model.SchedulingExtraction{}, fmt.Errorf("%w: empty tasks array", ErrMalformedOutput)
	}
	for i, t := range ex.Tasks {
		if strings.TrimSpace(t.TaskTitle) == "" {
			return model.SchedulingExtraction{}, fmt.Errorf("%w: task %d is missing taskTitle", ErrMalformedOutput, i)
		}
		if !t.Priority.Valid() {
			return model.SchedulingExtraction{}, fmt.Errorf("%w: task %d priority %q is invalid", ErrMalformedOutput, i, t.Priority)
		}
	}

	return ex, nil
}
