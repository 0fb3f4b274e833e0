package task

import (
	"context"

	"scheduling-assistant/internal/model"
)

// UseCase is the task-creation capability consumed by the decision engine.
type UseCase interface {
	// Create persists a single confirmed task and mirrors it to the
	// configured calendar when one is available.
	Create(ctx context.Context, sc model.Scope, input CreateInput) (CreateOutput, error)
}
