package usecase

import (
	"fmt"
	"strings"

	"scheduling-assistant/internal/model"
)

const (
	dayFormat  = "Mon, 02 Jan 2006"
	timeFormat = "15:04"
)

const (
	greetingReply = "Hi! I can schedule tasks for you - tell me what you'd like to do and when."

	greetingWithPendingPrefix = "Hi again! You still have a proposal waiting:\n\n"

	bareCreateReply = "Sure - what should the task be about?"

	rejectionReply = "Okay, I've discarded that proposal. What would you like to do instead?"

	staleProposalReply = "That proposed time has already passed while we were talking. " +
		"Tell me the task again and I'll suggest a fresh slot."

	invalidProposalReply = "Something went wrong with that proposal, so I've discarded it. " +
		"Tell me the task again and I'll start over."

	emptyMessageReply = "I didn't catch that - tell me what you'd like to schedule."
)

func formatWindow(payload model.TaskProposalPayload) string {
	start, end, err := payload.Window()
	if err != nil {
		return fmt.Sprintf("%s to %s", payload.SuggestedStart, payload.SuggestedEnd)
	}
	return fmt.Sprintf("%s, %s-%s", start.Format(dayFormat), start.Format(timeFormat), end.Format(timeFormat))
}

// restateTask renders a task proposal with its confirmation question.
func restateTask(payload model.TaskProposalPayload) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Here's what I'll schedule:\n")
	fmt.Fprintf(&b, "- %s\n", payload.Title)
	fmt.Fprintf(&b, "- When: %s\n", formatWindow(payload))
	fmt.Fprintf(&b, "- Priority: %s\n\n", payload.Priority)
	b.WriteString("Shall I go ahead? (yes / no, or give me a different date or time)")
	return b.String()
}

// restatePlan renders a plan proposal with its confirmation question.
func restatePlan(plan model.PlanProposalPayload) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Here's the plan for %q:\n", plan.PlanTitle)
	for i, t := range plan.Tasks {
		fmt.Fprintf(&b, "%d. %s - %s\n", i+1, t.Title, formatWindow(t))
	}
	b.WriteString("\nShall I schedule all of these? (yes / no)")
	return b.String()
}

func unresolvableAdjustmentReply(payload model.TaskProposalPayload) string {
	return fmt.Sprintf(
		"I couldn't work out a new date or time from that. The proposal is still %q at %s - "+
			"confirm with yes, cancel with no, or give me a date like \"tomorrow at 3pm\".",
		payload.Title, formatWindow(payload))
}

func scheduledTaskReply(payload model.TaskProposalPayload, calendarLink string) string {
	msg := fmt.Sprintf("Done - scheduled %q for %s.", payload.Title, formatWindow(payload))
	if calendarLink != "" {
		msg += " Calendar: " + calendarLink
	}
	return msg
}

func scheduledPlanReply(planTitle string, created, skipped int) string {
	msg := fmt.Sprintf("Done - scheduled %d task(s) for %q.", created, planTitle)
	if skipped > 0 {
		msg += fmt.Sprintf(" %d task(s) could not be created and were skipped.", skipped)
	}
	return msg
}
