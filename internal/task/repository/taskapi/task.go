package taskapi

import (
	"context"
	"time"

	"scheduling-assistant/internal/model"
	"scheduling-assistant/internal/task/repository"
	pkgLog "scheduling-assistant/pkg/log"
)

type implRepository struct {
	client *Client
	l      pkgLog.Logger
}

// New creates a new task service repository.
func New(client *Client, l pkgLog.Logger) repository.TaskRepository {
	return &implRepository{
		client: client,
		l:      l,
	}
}

func (r *implRepository) CreateTask(ctx context.Context, opt repository.CreateTaskOptions) (model.Task, error) {
	req := CreateTaskRequest{
		Title:    opt.Title,
		Start:    opt.Start.Format(time.RFC3339),
		End:      opt.End.Format(time.RFC3339),
		Priority: string(opt.Priority),
		OwnerID:  opt.OwnerID,
	}

	record, err := r.client.CreateTask(ctx, req)
	if err != nil {
		r.l.Errorf(ctx, "taskapi repository: failed to create task: %v", err)
		return model.Task{}, err
	}

	return r.recordToTask(record), nil
}

// recordToTask converts a task service record to the internal model.Task.
func (r *implRepository) recordToTask(rec *TaskRecord) model.Task {
	start, _ := time.Parse(time.RFC3339, rec.Start)
	end, _ := time.Parse(time.RFC3339, rec.End)

	return model.Task{
		ID:       rec.ID,
		Title:    rec.Title,
		Start:    start,
		End:      end,
		Priority: model.Priority(rec.Priority),
	}
}
