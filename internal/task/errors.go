package task

import "errors"

// Domain-specific errors for the task package.
var (
	ErrEmptyTitle    = errors.New("task title is empty")
	ErrInvalidWindow = errors.New("task end must be after start")
	ErrBadPriority   = errors.New("task priority is not a recognized level")
)
