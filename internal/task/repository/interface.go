package repository

import (
	"context"
	"time"

	"scheduling-assistant/internal/model"
)

// TaskRepository is the interface for task service data access.
type TaskRepository interface {
	CreateTask(ctx context.Context, opt CreateTaskOptions) (model.Task, error)
}

// CreateTaskOptions are the fields sent to the task service on create.
type CreateTaskOptions struct {
	Title    string
	Start    time.Time
	End      time.Time
	Priority model.Priority
	OwnerID  string
}
