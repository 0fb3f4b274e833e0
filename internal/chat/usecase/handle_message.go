package usecase

import (
	"context"
	"strings"

	"scheduling-assistant/internal/chat"
	"scheduling-assistant/internal/chat/classifier"
	"scheduling-assistant/internal/model"
)

// HandleMessage runs one conversation turn through the confirmation state
// machine.
func (uc *implUseCase) HandleMessage(ctx context.Context, sc model.Scope, input chat.HandleMessageInput) (chat.HandleMessageOutput, error) {
	if sc.UserID == "" {
		return chat.HandleMessageOutput{}, chat.ErrMissingUser
	}

	text := strings.TrimSpace(input.Text)
	if text == "" {
		return chat.HandleMessageOutput{Message: emptyMessageReply}, nil
	}

	sess := uc.store.Get(sc.UserID)
	cc := classifier.Context{
		HasPendingProposal: sess.HasPending(),
		PendingIsTask:      sess.HasPending() && sess.Pending.Kind == model.ProposalKindTask,
	}
	kind := uc.cls.Classify(text, cc)

	uc.l.Debugf(ctx, "HandleMessage: user=%s kind=%s pending=%t", sc.UserID, kind, cc.HasPendingProposal)

	var reply string
	var err error
	if sess.HasPending() {
		reply, err = uc.handlePending(ctx, sc, text, kind, sess.Pending)
	} else {
		reply, err = uc.handleIdle(ctx, sc, text, kind, sess.History)
	}
	if err != nil {
		return chat.HandleMessageOutput{}, err
	}

	uc.store.AppendTurn(sc.UserID, model.ConversationTurn{Role: model.RoleUser, Content: text})
	uc.store.AppendTurn(sc.UserID, model.ConversationTurn{Role: model.RoleAssistant, Content: reply})

	return chat.HandleMessageOutput{
		Message:              reply,
		RequiresConfirmation: uc.store.Get(sc.UserID).HasPending(),
	}, nil
}

// handlePending applies the ProposalPending transitions.
func (uc *implUseCase) handlePending(ctx context.Context, sc model.Scope, text string, kind classifier.Kind, pending *model.PendingProposal) (string, error) {
	switch kind {
	case classifier.KindConfirmation:
		return uc.confirm(ctx, sc, pending)

	case classifier.KindRejection:
		uc.store.ClearPending(sc.UserID)
		return rejectionReply, nil

	case classifier.KindGreeting:
		// Context is not lost: restate and re-ask.
		return uc.restatePending(pending), nil

	case classifier.KindAdjustment:
		return uc.adjust(ctx, sc, text, pending)

	default:
		// Unrelated text supersedes the proposal: drop it with no further
		// trace and handle the turn as if no proposal existed.
		uc.store.ClearPending(sc.UserID)
		idleKind := uc.cls.Classify(text, classifier.Context{})
		return uc.handleIdle(ctx, sc, text, idleKind, uc.store.Get(sc.UserID).History)
	}
}

// handleIdle applies the Idle transitions.
func (uc *implUseCase) handleIdle(ctx context.Context, sc model.Scope, text string, kind classifier.Kind, history []model.ConversationTurn) (string, error) {
	switch kind {
	case classifier.KindGreeting:
		return greetingReply, nil

	case classifier.KindBareCreate:
		// No topic given: ask, create no proposal.
		return bareCreateReply, nil

	case classifier.KindTopicOnly:
		return uc.proposeDefaultSlot(ctx, sc, text)

	case classifier.KindPlanRequest:
		return uc.proposePlan(ctx, sc, text, history)

	default:
		return uc.runPipeline(ctx, sc, text, history)
	}
}

// runPipeline handles utterances that need the full pipeline: generative
// assist when available, the deterministic extractor otherwise.
func (uc *implUseCase) runPipeline(ctx context.Context, sc model.Scope, text string, history []model.ConversationTurn) (string, error) {
	if uc.assist != nil {
		return uc.runAssist(ctx, sc, text, history)
	}
	return uc.proposeFromExtraction(ctx, sc, text)
}
