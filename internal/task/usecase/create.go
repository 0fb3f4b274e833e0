package usecase

import (
	"context"
	"fmt"
	"strings"

	"scheduling-assistant/internal/model"
	"scheduling-assistant/internal/task"
	"scheduling-assistant/internal/task/repository"
	"scheduling-assistant/pkg/gcalendar"
)

// Create persists a single task in the task service and mirrors it to the
// calendar when one is configured.
func (uc *implUseCase) Create(ctx context.Context, sc model.Scope, input task.CreateInput) (task.CreateOutput, error) {
	if strings.TrimSpace(input.Title) == "" {
		return task.CreateOutput{}, task.ErrEmptyTitle
	}
	if !input.End.After(input.Start) {
		return task.CreateOutput{}, task.ErrInvalidWindow
	}
	if !input.Priority.Valid() {
		return task.CreateOutput{}, task.ErrBadPriority
	}

	uc.l.Infof(ctx, "Create: user=%s title=%q start=%s", sc.UserID, input.Title, input.Start)

	created, err := uc.repo.CreateTask(ctx, repository.CreateTaskOptions{
		Title:    input.Title,
		Start:    input.Start,
		End:      input.End,
		Priority: input.Priority,
		OwnerID:  sc.UserID,
	})
	if err != nil {
		return task.CreateOutput{}, fmt.Errorf("failed to create task: %w", err)
	}

	// Calendar mirroring is best-effort: a mirror failure never voids the task.
	calendarLink := uc.tryMirrorCalendarEvent(ctx, input)

	uc.l.Infof(ctx, "Create: created task %q id=%s", input.Title, created.ID)

	return task.CreateOutput{
		TaskID:       created.ID,
		CalendarLink: calendarLink,
	}, nil
}

// tryMirrorCalendarEvent attempts to create a calendar event for the task.
// Returns the event HTML link, or empty string on failure.
func (uc *implUseCase) tryMirrorCalendarEvent(ctx context.Context, input task.CreateInput) string {
	if uc.calendar == nil {
		return ""
	}

	event, err := uc.calendar.CreateEvent(ctx, gcalendar.CreateEventRequest{
		CalendarID:  uc.calendarID,
		Summary:     input.Title,
		Description: fmt.Sprintf("Priority: %s", input.Priority),
		StartTime:   input.Start,
		EndTime:     input.End,
		Timezone:    uc.timezone,
	})
	if err != nil {
		uc.l.Warnf(ctx, "Create: calendar mirror failed for %q (non-fatal): %v", input.Title, err)
		return ""
	}

	return event.HtmlLink
}
