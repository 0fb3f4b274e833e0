package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"scheduling-assistant/internal/chat/assist"
	"scheduling-assistant/internal/chat/classifier"
	"scheduling-assistant/internal/model"
	"scheduling-assistant/pkg/dateparse"
)

// titleLeadIns are conversational framings stripped from the front of an
// utterance when deriving a task title.
var titleLeadIns = []string{
	"please ", "can you ", "could you ", "i need to ", "i want to ",
	"i have to ", "remind me to ", "create a task to ", "create a task for ",
	"create a task ", "add a task to ", "add a task for ", "add a task ",
	"schedule a task to ", "schedule a task for ", "schedule ", "add ", "create ",
}

func titleFromText(text string) string {
	t := strings.TrimSpace(text)
	lower := strings.ToLower(t)
	for _, lead := range titleLeadIns {
		if strings.HasPrefix(lower, lead) {
			t = strings.TrimSpace(t[len(lead):])
			break
		}
	}
	t = strings.Trim(t, " .!?,")
	if t == "" {
		return strings.TrimSpace(text)
	}
	return t
}

// proposeDefaultSlot handles a topic with no schedule: build a proposal in
// the next default slot and ask for confirmation.
func (uc *implUseCase) proposeDefaultSlot(ctx context.Context, sc model.Scope, text string) (string, error) {
	start, end := uc.defaultSlot()
	payload := model.TaskProposalPayload{
		Title:          titleFromText(text),
		SuggestedStart: start.Format(time.RFC3339),
		SuggestedEnd:   end.Format(time.RFC3339),
		Priority:       classifier.DetectPriority(text),
	}
	uc.setPendingTask(ctx, sc, payload)
	return restateTask(payload), nil
}

// proposeFromExtraction is the deterministic pipeline: resolve the date and
// time locally, derive the title by stripping schedule tokens, and propose.
func (uc *implUseCase) proposeFromExtraction(ctx context.Context, sc model.Scope, text string) (string, error) {
	res := uc.extractor.Extract(text, uc.now().In(uc.cfg.Location))
	start, end := uc.slotFromResult(res)

	title := titleFromText(dateparse.StripScheduleTokens(text))
	payload := model.TaskProposalPayload{
		Title:          title,
		SuggestedStart: start.Format(time.RFC3339),
		SuggestedEnd:   end.Format(time.RFC3339),
		Priority:       classifier.DetectPriority(text),
	}
	uc.setPendingTask(ctx, sc, payload)
	return restateTask(payload), nil
}

// proposePlan builds a multi-task proposal. With assist available the model
// shapes the plan; otherwise a fixed three-session scaffold is used.
func (uc *implUseCase) proposePlan(ctx context.Context, sc model.Scope, text string, history []model.ConversationTurn) (string, error) {
	if uc.assist != nil {
		return uc.runAssist(ctx, sc, text, history)
	}

	title := titleFromText(text)
	now := uc.now().In(uc.cfg.Location)
	var tasks []model.TaskProposalPayload
	for i, offset := range []int{1, 3, 5} {
		day := now.AddDate(0, 0, offset)
		start := time.Date(day.Year(), day.Month(), day.Day(), uc.defaultHourFor(day), 0, 0, 0, uc.cfg.Location)
		tasks = append(tasks, model.TaskProposalPayload{
			Title:          fmt.Sprintf("%s - session %d", title, i+1),
			SuggestedStart: start.Format(time.RFC3339),
			SuggestedEnd:   start.Add(uc.cfg.DefaultDuration).Format(time.RFC3339),
			Priority:       classifier.DetectPriority(text),
		})
	}

	plan := model.PlanProposalPayload{PlanTitle: title, Tasks: tasks}
	uc.store.SetPending(sc.UserID, &model.PendingProposal{
		Kind:      model.ProposalKindPlan,
		Plan:      &plan,
		CreatedAt: uc.now(),
	})
	return restatePlan(plan), nil
}

// runAssist sends the turn to the generative assist and maps its declared
// action onto the state machine. A proposal action never creates a task
// directly: it only parks a pending proposal.
func (uc *implUseCase) runAssist(ctx context.Context, sc model.Scope, text string, history []model.ConversationTurn) (string, error) {
	reply := uc.assist.Converse(ctx, text, history)

	switch {
	case reply.Action.TaskLike() && reply.Task != nil:
		payload := model.TaskProposalPayload{
			Title:          reply.Task.Title,
			SuggestedStart: reply.Task.Start,
			SuggestedEnd:   reply.Task.End,
			Priority:       reply.Task.Priority,
		}
		uc.setPendingTask(ctx, sc, payload)
		return joinReply(reply.AssistantMessage, restateTask(payload)), nil

	case reply.Action == assist.ActionProposePlan && reply.Plan != nil:
		tasks := make([]model.TaskProposalPayload, 0, len(reply.Plan.Tasks))
		for _, t := range reply.Plan.Tasks {
			tasks = append(tasks, model.TaskProposalPayload{
				Title:          t.Title,
				SuggestedStart: t.Start,
				SuggestedEnd:   t.End,
				Priority:       t.Priority,
			})
		}
		plan := model.PlanProposalPayload{PlanTitle: reply.Plan.PlanTitle, Tasks: tasks}
		uc.store.SetPending(sc.UserID, &model.PendingProposal{
			Kind:      model.ProposalKindPlan,
			Plan:      &plan,
			CreatedAt: uc.now(),
		})
		return joinReply(reply.AssistantMessage, restatePlan(plan)), nil

	default:
		// No actionable proposal came back. When the utterance plainly
		// carries schedule tokens, fall back to the structured extraction
		// contract before giving up.
		if uc.extractor.HasDateToken(text) || uc.extractor.HasTimeToken(text) {
			if msg, ok := uc.tryAssistExtraction(ctx, sc, text); ok {
				return msg, nil
			}
		}
		return reply.AssistantMessage, nil
	}
}

// adjust merges a date/time correction onto the pending task proposal.
// When nothing resolvable was found the proposal stays untouched and the
// user is re-asked.
func (uc *implUseCase) adjust(ctx context.Context, sc model.Scope, text string, pending *model.PendingProposal) (string, error) {
	if pending.Task == nil {
		return "", model.ErrMissingProposalBody
	}

	res := uc.extractor.Extract(text, uc.now().In(uc.cfg.Location))
	merged, ok := uc.mergeAdjustment(*pending.Task, res)
	if !ok {
		uc.l.Debugf(ctx, "adjust: no resolvable tokens in %q, keeping proposal", text)
		return unresolvableAdjustmentReply(*pending.Task), nil
	}

	uc.setPendingTask(ctx, sc, merged)
	return restateTask(merged), nil
}

func (uc *implUseCase) setPendingTask(ctx context.Context, sc model.Scope, payload model.TaskProposalPayload) {
	uc.store.SetPending(sc.UserID, &model.PendingProposal{
		Kind:      model.ProposalKindTask,
		Task:      &payload,
		CreatedAt: uc.now(),
	})
	uc.l.Infof(ctx, "proposal pending: user=%s title=%q start=%s", sc.UserID, payload.Title, payload.SuggestedStart)
}

func (uc *implUseCase) restatePending(pending *model.PendingProposal) string {
	switch pending.Kind {
	case model.ProposalKindPlan:
		if pending.Plan != nil {
			return greetingWithPendingPrefix + restatePlan(*pending.Plan)
		}
	default:
		if pending.Task != nil {
			return greetingWithPendingPrefix + restateTask(*pending.Task)
		}
	}
	return greetingReply
}

func joinReply(message, restate string) string {
	message = strings.TrimSpace(message)
	if message == "" {
		return restate
	}
	return message + "\n\n" + restate
}
