package usecase

import (
	"context"
	"fmt"

	"scheduling-assistant/internal/chat"
	"scheduling-assistant/internal/model"
	"scheduling-assistant/internal/task"
)

// confirm materializes the pending proposal. The payload is revalidated
// here, not at proposal time: it may be malformed, or its window may have
// slipped into the past while the user deliberated.
func (uc *implUseCase) confirm(ctx context.Context, sc model.Scope, pending *model.PendingProposal) (string, error) {
	switch pending.Kind {
	case model.ProposalKindTask:
		return uc.confirmTask(ctx, sc, pending)
	case model.ProposalKindPlan:
		return uc.confirmPlan(ctx, sc, pending)
	default:
		return "", model.ErrMissingProposalBody
	}
}

func (uc *implUseCase) confirmTask(ctx context.Context, sc model.Scope, pending *model.PendingProposal) (string, error) {
	if pending.Task == nil {
		return "", model.ErrMissingProposalBody
	}
	payload := *pending.Task

	start, end, err := payload.Window()
	if err != nil {
		uc.l.Warnf(ctx, "confirmTask: invalid payload for user=%s: %v", sc.UserID, err)
		uc.store.ClearPending(sc.UserID)
		return invalidProposalReply, nil
	}
	if start.Before(uc.now()) {
		uc.l.Infof(ctx, "confirmTask: stale window for user=%s start=%s", sc.UserID, payload.SuggestedStart)
		uc.store.ClearPending(sc.UserID)
		return staleProposalReply, nil
	}

	out, err := uc.taskUC.Create(ctx, sc, task.CreateInput{
		Title:    payload.Title,
		Start:    start,
		End:      end,
		Priority: payload.Priority,
	})
	if err != nil {
		// The proposal stays pending so the user can retry with another
		// confirmation once the backend recovers.
		uc.l.Errorf(ctx, "confirmTask: create failed for user=%s: %v", sc.UserID, err)
		return "", fmt.Errorf("%w: %v", chat.ErrMaterializeFailed, err)
	}

	uc.store.ClearPending(sc.UserID)
	uc.l.Infof(ctx, "confirmTask: created task=%s for user=%s", out.TaskID, sc.UserID)
	return scheduledTaskReply(payload, out.CalendarLink), nil
}

// confirmPlan creates the plan's tasks best-effort: an individual failure
// skips that task and continues. The proposal clears when at least one
// task landed; a backend failure on every valid task keeps it pending. A
// plan with no valid tasks at all is dropped like a malformed task
// proposal, with no internal error.
func (uc *implUseCase) confirmPlan(ctx context.Context, sc model.Scope, pending *model.PendingProposal) (string, error) {
	if pending.Plan == nil {
		return "", model.ErrMissingProposalBody
	}

	var valid, created, skipped int
	for _, payload := range pending.Plan.Tasks {
		start, end, err := payload.Window()
		if err != nil {
			uc.l.Warnf(ctx, "confirmPlan: skipping invalid task %q: %v", payload.Title, err)
			skipped++
			continue
		}
		if start.Before(uc.now()) {
			uc.l.Infof(ctx, "confirmPlan: skipping stale task %q start=%s", payload.Title, payload.SuggestedStart)
			skipped++
			continue
		}
		valid++
		if _, err := uc.taskUC.Create(ctx, sc, task.CreateInput{
			Title:    payload.Title,
			Start:    start,
			End:      end,
			Priority: payload.Priority,
		}); err != nil {
			uc.l.Errorf(ctx, "confirmPlan: create failed for %q: %v", payload.Title, err)
			skipped++
			continue
		}
		created++
	}

	if valid == 0 {
		uc.l.Warnf(ctx, "confirmPlan: no valid tasks in plan %q for user=%s", pending.Plan.PlanTitle, sc.UserID)
		uc.store.ClearPending(sc.UserID)
		return invalidProposalReply, nil
	}
	if created == 0 {
		return "", fmt.Errorf("%w: no tasks in plan %q could be created", chat.ErrMaterializeFailed, pending.Plan.PlanTitle)
	}

	uc.store.ClearPending(sc.UserID)
	uc.l.Infof(ctx, "confirmPlan: user=%s plan=%q created=%d skipped=%d", sc.UserID, pending.Plan.PlanTitle, created, skipped)
	return scheduledPlanReply(pending.Plan.PlanTitle, created, skipped), nil
}
