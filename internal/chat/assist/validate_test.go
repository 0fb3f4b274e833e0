package assist_test

import (
	"errors"
	"testing"

	"scheduling-assistant/internal/chat/assist"
	"scheduling-assistant/internal/model"
)

func TestParseReplyValid(t *testing.T) {
	raw := `Sure, here you go:
{
  "assistant_message": "I can schedule gym for tomorrow morning.",
  "action": {
    "type": "propose_task",
    "title": "Gym",
    "start": "2025-06-12T07:00:00Z",
    "end": "2025-06-12T08:00:00Z",
    "priority": "medium"
  }
}`
	reply, err := assist.ParseReply(raw)
	if err != nil {
		t.Fatalf("ParseReply: %v", err)
	}
	if reply.Action != assist.ActionProposeTask {
		t.Errorf("action = %v, want propose_task", reply.Action)
	}
	if reply.Task == nil || reply.Task.Title != "Gym" {
		t.Errorf("task = %+v, want title Gym", reply.Task)
	}
	if reply.Task.Priority != model.PriorityMedium {
		t.Errorf("priority = %v, want medium", reply.Task.Priority)
	}
}

func TestParseReplyLegacyCreateTaskIsAccepted(t *testing.T) {
	raw := `{
  "assistant_message": "Creating it now.",
  "action": {
    "type": "create_task",
    "title": "Gym",
    "start": "2025-06-12T07:00:00Z",
    "end": "2025-06-12T08:00:00Z",
    "priority": "high"
  }
}`
	reply, err := assist.ParseReply(raw)
	if err != nil {
		t.Fatalf("ParseReply: %v", err)
	}
	if !reply.Action.TaskLike() {
		t.Errorf("create_task should be task-like, got %v", reply.Action)
	}
	if reply.Task == nil {
		t.Fatal("expected a task payload")
	}
}

func TestParseReplyPlan(t *testing.T) {
	raw := `{
  "assistant_message": "Here is a starter plan.",
  "action": {
    "type": "propose_plan",
    "plan_title": "Couch to 5k",
    "tasks": [
      {"title": "Run 1", "start": "2025-06-12T10:00:00Z", "end": "2025-06-12T11:00:00Z", "priority": "medium"},
      {"title": "Run 2", "start": "2025-06-14T10:00:00Z", "end": "2025-06-14T11:00:00Z", "priority": "medium"}
    ]
  }
}`
	reply, err := assist.ParseReply(raw)
	if err != nil {
		t.Fatalf("ParseReply: %v", err)
	}
	if reply.Plan == nil || len(reply.Plan.Tasks) != 2 {
		t.Fatalf("plan = %+v, want 2 tasks", reply.Plan)
	}
	if reply.Plan.PlanTitle != "Couch to 5k" {
		t.Errorf("plan title = %q", reply.Plan.PlanTitle)
	}
}

func TestParseReplyMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "no json at all", raw: "I'd be happy to help!"},
		{name: "broken json", raw: `{"assistant_message": "hi", "action": {`},
		{name: "missing assistant_message", raw: `{"action": {"type": "none"}}`},
		{name: "unknown action type", raw: `{"assistant_message": "hi", "action": {"type": "delete_everything"}}`},
		{name: "task missing title", raw: `{"assistant_message": "hi", "action": {"type": "propose_task", "start": "2025-06-12T07:00:00Z", "end": "2025-06-12T08:00:00Z", "priority": "low"}}`},
		{name: "task start not rfc3339", raw: `{"assistant_message": "hi", "action": {"type": "propose_task", "title": "Gym", "start": "tomorrow 7am", "end": "2025-06-12T08:00:00Z", "priority": "low"}}`},
		{name: "task end before start", raw: `{"assistant_message": "hi", "action": {"type": "propose_task", "title": "Gym", "start": "2025-06-12T08:00:00Z", "end": "2025-06-12T07:00:00Z", "priority": "low"}}`},
		{name: "bad priority", raw: `{"assistant_message": "hi", "action": {"type": "propose_task", "title": "Gym", "start": "2025-06-12T07:00:00Z", "end": "2025-06-12T08:00:00Z", "priority": "critical"}}`},
		{name: "plan without title", raw: `{"assistant_message": "hi", "action": {"type": "propose_plan", "tasks": [{"title": "a", "start": "2025-06-12T07:00:00Z", "end": "2025-06-12T08:00:00Z", "priority": "low"}]}}`},
		{name: "plan without tasks", raw: `{"assistant_message": "hi", "action": {"type": "propose_plan", "plan_title": "Empty"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := assist.ParseReply(tt.raw); !errors.Is(err, assist.ErrMalformedOutput) {
				t.Errorf("ParseReply error = %v, want ErrMalformedOutput", err)
			}
		})
	}
}

func TestParseExtraction(t *testing.T) {
	raw := "```json\n" + `{
  "intent": "multi_schedule",
  "tasks": [
    {"taskTitle": "Report", "dateExpression": "tomorrow", "priority": "high"},
    {"taskTitle": "Review", "weekday": "friday", "time": "14:00", "priority": "medium"}
  ],
  "requiresTimeConfirmation": true,
  "requiresClarification": false
}` + "\n```"

	ex, err := assist.ParseExtraction(raw)
	if err != nil {
		t.Fatalf("ParseExtraction: %v", err)
	}
	if ex.Intent != model.IntentMultiSchedule {
		t.Errorf("intent = %v", ex.Intent)
	}
	if len(ex.Tasks) != 2 || ex.Tasks[1].Weekday != "friday" {
		t.Errorf("tasks = %+v", ex.Tasks)
	}
	if !ex.RequiresTimeConfirmation {
		t.Error("expected requiresTimeConfirmation to be set")
	}
}

func TestParseExtractionMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "unknown intent", raw: `{"intent": "chitchat", "tasks": [{"taskTitle": "x", "priority": "low"}]}`},
		{name: "empty tasks", raw: `{"intent": "create_task", "tasks": []}`},
		{name: "task without title", raw: `{"intent": "create_task", "tasks": [{"priority": "low"}]}`},
		{name: "task with bad priority", raw: `{"intent": "create_task", "tasks": [{"taskTitle": "x", "priority": "p1"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := assist.ParseExtraction(tt.raw); !errors.Is(err, assist.ErrMalformedOutput) {
				t.Errorf("ParseExtraction error = %v, want ErrMalformedOutput", err)
			}
		})
	}
}
