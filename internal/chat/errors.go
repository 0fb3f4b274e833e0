package chat

import "errors"

// Domain-specific errors for the chat package.
var (
	ErrMissingUser       = errors.New("user id is required")
	ErrMaterializeFailed = errors.New("failed to create the confirmed task")
)
