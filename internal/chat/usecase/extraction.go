package usecase

import (
	"context"
	"strings"
	"time"

	"scheduling-assistant/internal/chat/classifier"
	"scheduling-assistant/internal/model"
)

// tryAssistExtraction is the recovery path when the conversational reply
// carried no actionable proposal but the utterance clearly holds schedule
// signals. The model only names the raw signals; all date arithmetic stays
// deterministic. Returns false when extraction failed or asked for
// clarification.
func (uc *implUseCase) tryAssistExtraction(ctx context.Context, sc model.Scope, text string) (string, bool) {
	ex, err := uc.assist.ExtractScheduling(ctx, text)
	if err != nil {
		uc.l.Warnf(ctx, "assist extraction failed for user=%s: %v", sc.UserID, err)
		return "", false
	}
	if ex.RequiresClarification || len(ex.Tasks) == 0 {
		return "", false
	}

	payloads := make([]model.TaskProposalPayload, 0, len(ex.Tasks))
	for _, et := range ex.Tasks {
		payloads = append(payloads, uc.resolveExtractionTask(et))
	}

	if len(payloads) == 1 {
		uc.setPendingTask(ctx, sc, payloads[0])
		return restateTask(payloads[0]), true
	}

	plan := model.PlanProposalPayload{PlanTitle: "Your schedule", Tasks: payloads}
	uc.store.SetPending(sc.UserID, &model.PendingProposal{
		Kind:      model.ProposalKindPlan,
		Plan:      &plan,
		CreatedAt: uc.now(),
	})
	return restatePlan(plan), true
}

// resolveExtractionTask turns one extraction task's raw signals into a
// concrete window via the deterministic extractor.
func (uc *implUseCase) resolveExtractionTask(et model.ExtractionTask) model.TaskProposalPayload {
	parts := make([]string, 0, 3)
	for _, p := range []string{et.DateExpression, et.Weekday, et.Time} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, p)
		}
	}

	res := uc.extractor.Extract(strings.Join(parts, " "), uc.now().In(uc.cfg.Location))
	start, end := uc.slotFromResult(res)

	priority := et.Priority
	if !priority.Valid() {
		priority = classifier.DetectPriority(et.TaskTitle)
	}

	return model.TaskProposalPayload{
		Title:          et.TaskTitle,
		SuggestedStart: start.Format(time.RFC3339),
		SuggestedEnd:   end.Format(time.RFC3339),
		Priority:       priority,
	}
}
