package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"scheduling-assistant/internal/model"
	"scheduling-assistant/internal/task"
	"scheduling-assistant/internal/task/repository"
	"scheduling-assistant/internal/task/usecase"
	"scheduling-assistant/pkg/gcalendar"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, args ...interface{})                  {}
func (m *mockLogger) Debugf(ctx context.Context, format string, args ...interface{})  {}
func (m *mockLogger) Info(ctx context.Context, args ...interface{})                   {}
func (m *mockLogger) Infof(ctx context.Context, format string, args ...interface{})   {}
func (m *mockLogger) Warn(ctx context.Context, args ...interface{})                   {}
func (m *mockLogger) Warnf(ctx context.Context, format string, args ...interface{})   {}
func (m *mockLogger) Error(ctx context.Context, args ...interface{})                  {}
func (m *mockLogger) Errorf(ctx context.Context, format string, args ...interface{})  {}
func (m *mockLogger) DPanic(ctx context.Context, args ...interface{})                 {}
func (m *mockLogger) DPanicf(ctx context.Context, format string, args ...interface{}) {}
func (m *mockLogger) Panic(ctx context.Context, args ...interface{})                  {}
func (m *mockLogger) Panicf(ctx context.Context, format string, args ...interface{})  {}
func (m *mockLogger) Fatal(ctx context.Context, args ...interface{})                  {}
func (m *mockLogger) Fatalf(ctx context.Context, format string, args ...interface{})  {}

type mockRepo struct {
	gotOpts repository.CreateTaskOptions
	result  model.Task
	err     error
}

func (m *mockRepo) CreateTask(ctx context.Context, opt repository.CreateTaskOptions) (model.Task, error) {
	m.gotOpts = opt
	return m.result, m.err
}

type mockCalendar struct {
	gotReq gcalendar.CreateEventRequest
	event  *gcalendar.Event
	err    error
	calls  int
}

func (m *mockCalendar) CreateEvent(ctx context.Context, req gcalendar.CreateEventRequest) (*gcalendar.Event, error) {
	m.calls++
	m.gotReq = req
	return m.event, m.err
}

var (
	start = time.Date(2025, 6, 12, 7, 0, 0, 0, time.UTC)
	end   = time.Date(2025, 6, 12, 8, 0, 0, 0, time.UTC)
)

func validInput() task.CreateInput {
	return task.CreateInput{
		Title:    "Gym",
		Start:    start,
		End:      end,
		Priority: model.PriorityMedium,
	}
}

func TestCreateValidation(t *testing.T) {
	uc := usecase.New(&mockLogger{}, &mockRepo{}, nil, "", "UTC")
	sc := model.Scope{UserID: "u1"}

	tests := []struct {
		name    string
		mutate  func(*task.CreateInput)
		wantErr error
	}{
		{name: "empty title", mutate: func(i *task.CreateInput) { i.Title = "  " }, wantErr: task.ErrEmptyTitle},
		{name: "end before start", mutate: func(i *task.CreateInput) { i.End = i.Start.Add(-time.Hour) }, wantErr: task.ErrInvalidWindow},
		{name: "end equals start", mutate: func(i *task.CreateInput) { i.End = i.Start }, wantErr: task.ErrInvalidWindow},
		{name: "bad priority", mutate: func(i *task.CreateInput) { i.Priority = "p1" }, wantErr: task.ErrBadPriority},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(&input)
			if _, err := uc.Create(context.Background(), sc, input); !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCreateSuccess(t *testing.T) {
	repo := &mockRepo{result: model.Task{ID: "t-42", Title: "Gym"}}
	uc := usecase.New(&mockLogger{}, repo, nil, "", "UTC")

	out, err := uc.Create(context.Background(), model.Scope{UserID: "u1"}, validInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if out.TaskID != "t-42" {
		t.Errorf("task id = %q, want t-42", out.TaskID)
	}
	if repo.gotOpts.OwnerID != "u1" {
		t.Errorf("owner id = %q, want u1", repo.gotOpts.OwnerID)
	}
	if !repo.gotOpts.Start.Equal(start) {
		t.Errorf("start = %v, want %v", repo.gotOpts.Start, start)
	}
}

func TestCreateRepositoryError(t *testing.T) {
	repo := &mockRepo{err: errors.New("service down")}
	cal := &mockCalendar{}
	uc := usecase.New(&mockLogger{}, repo, cal, "primary", "UTC")

	if _, err := uc.Create(context.Background(), model.Scope{UserID: "u1"}, validInput()); err == nil {
		t.Fatal("expected error")
	}
	if cal.calls != 0 {
		t.Error("calendar must not be called when the task was not created")
	}
}

func TestCreateMirrorsCalendar(t *testing.T) {
	repo := &mockRepo{result: model.Task{ID: "t-1"}}
	cal := &mockCalendar{event: &gcalendar.Event{HtmlLink: "https://calendar/e/1"}}
	uc := usecase.New(&mockLogger{}, repo, cal, "primary", "UTC")

	out, err := uc.Create(context.Background(), model.Scope{UserID: "u1"}, validInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if out.CalendarLink != "https://calendar/e/1" {
		t.Errorf("calendar link = %q", out.CalendarLink)
	}
	if cal.gotReq.Summary != "Gym" || cal.gotReq.CalendarID != "primary" {
		t.Errorf("calendar request = %+v", cal.gotReq)
	}
}

func TestCreateCalendarFailureIsNonFatal(t *testing.T) {
	repo := &mockRepo{result: model.Task{ID: "t-1"}}
	cal := &mockCalendar{err: errors.New("quota exceeded")}
	uc := usecase.New(&mockLogger{}, repo, cal, "primary", "UTC")

	out, err := uc.Create(context.Background(), model.Scope{UserID: "u1"}, validInput())
	if err != nil {
		t.Fatalf("Create must not fail on calendar errors: %v", err)
	}
	if out.TaskID != "t-1" {
		t.Errorf("task id = %q", out.TaskID)
	}
	if out.CalendarLink != "" {
		t.Errorf("calendar link = %q, want empty", out.CalendarLink)
	}
}
