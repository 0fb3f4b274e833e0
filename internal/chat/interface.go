package chat

import (
	"context"

	"scheduling-assistant/internal/model"
)

// UseCase is the message-handling capability of the scheduling decision engine.
type UseCase interface {
	// HandleMessage runs one conversation turn: classify the utterance,
	// consult the extractor and (optionally) the generative assist, apply
	// the confirmation state machine, and return the assistant's reply.
	HandleMessage(ctx context.Context, sc model.Scope, input HandleMessageInput) (HandleMessageOutput, error)
}
