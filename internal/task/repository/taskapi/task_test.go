package taskapi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"scheduling-assistant/internal/model"
	"scheduling-assistant/internal/task/repository"
	"scheduling-assistant/internal/task/repository/taskapi"
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

func TestCreateTask(t *testing.T) {
	var gotAuth string
	var gotBody taskapi.CreateTaskRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/tasks" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(taskapi.TaskRecord{
			ID:       "t-7",
			Title:    gotBody.Title,
			Start:    gotBody.Start,
			End:      gotBody.End,
			Priority: gotBody.Priority,
		})
	}))
	defer srv.Close()

	repo := taskapi.New(taskapi.NewClient(srv.URL, "secret-token"), &mockLogger{})

	start := time.Date(2025, 6, 12, 7, 0, 0, 0, time.UTC)
	created, err := repo.CreateTask(context.Background(), repository.CreateTaskOptions{
		Title:    "Gym",
		Start:    start,
		End:      start.Add(time.Hour),
		Priority: model.PriorityHigh,
		OwnerID:  "u1",
	})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	if gotAuth != "Bearer secret-token" {
		t.Errorf("authorization = %q", gotAuth)
	}
	if gotBody.Start != "2025-06-12T07:00:00Z" {
		t.Errorf("wire start = %q", gotBody.Start)
	}
	if gotBody.OwnerID != "u1" {
		t.Errorf("wire owner_id = %q", gotBody.OwnerID)
	}
	if created.ID != "t-7" || created.Title != "Gym" {
		t.Errorf("created = %+v", created)
	}
	if !created.Start.Equal(start) {
		t.Errorf("created start = %v, want %v", created.Start, start)
	}
}

func TestCreateTaskServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	repo := taskapi.New(taskapi.NewClient(srv.URL, ""), &mockLogger{})
	_, err := repo.CreateTask(context.Background(), repository.CreateTaskOptions{
		Title:    "Gym",
		Start:    time.Now(),
		End:      time.Now().Add(time.Hour),
		Priority: model.PriorityLow,
	})
	if err == nil {
		t.Fatal("expected error on 502 response")
	}
}
