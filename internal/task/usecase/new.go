package usecase

import (
	"context"

	"scheduling-assistant/internal/task/repository"
	"scheduling-assistant/pkg/gcalendar"
	pkgLog "scheduling-assistant/pkg/log"
)

// CalendarClient mirrors tasks into an external calendar.
type CalendarClient interface {
	CreateEvent(ctx context.Context, req gcalendar.CreateEventRequest) (*gcalendar.Event, error)
}

type implUseCase struct {
	l          pkgLog.Logger
	repo       repository.TaskRepository
	calendar   CalendarClient
	calendarID string
	timezone   string
}

// New creates a new task UseCase instance. calendar may be nil when
// calendar mirroring is not configured.
func New(
	l pkgLog.Logger,
	repo repository.TaskRepository,
	calendar CalendarClient,
	calendarID string,
	timezone string,
) *implUseCase {
	return &implUseCase{
		l:          l,
		repo:       repo,
		calendar:   calendar,
		calendarID: calendarID,
		timezone:   timezone,
	}
}
