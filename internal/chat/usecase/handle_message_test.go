package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"scheduling-assistant/internal/chat"
	"scheduling-assistant/internal/chat/assist"
	"scheduling-assistant/internal/chat/classifier"
	"scheduling-assistant/internal/chat/session"
	chatUC "scheduling-assistant/internal/chat/usecase"
	"scheduling-assistant/internal/model"
	"scheduling-assistant/internal/task"
	"scheduling-assistant/pkg/dateparse"
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

// mockTaskUseCase implements task.UseCase with a programmable create step.
type mockTaskUseCase struct {
	created  []task.CreateInput
	createFn func(input task.CreateInput) (task.CreateOutput, error)
}

func (m *mockTaskUseCase) Create(ctx context.Context, sc model.Scope, input task.CreateInput) (task.CreateOutput, error) {
	m.created = append(m.created, input)
	if m.createFn != nil {
		return m.createFn(input)
	}
	return task.CreateOutput{TaskID: "task-1"}, nil
}

// mockAssist implements assist.Adapter with canned responses.
type mockAssist struct {
	reply      assist.Reply
	extraction model.SchedulingExtraction
	extractErr error
}

func (m *mockAssist) Converse(ctx context.Context, message string, history []model.ConversationTurn) assist.Reply {
	return m.reply
}

func (m *mockAssist) ExtractScheduling(ctx context.Context, message string) (model.SchedulingExtraction, error) {
	return m.extraction, m.extractErr
}

// Reference instant: Wednesday, 11 June 2025, 09:30 UTC.
var refNow = time.Date(2025, 6, 11, 9, 30, 0, 0, time.UTC)

type fixture struct {
	uc    chat.UseCase
	store session.Store
	tasks *mockTaskUseCase
}

func newFixture(t *testing.T, assistAdapter assist.Adapter, now time.Time) fixture {
	t.Helper()

	extractor, err := dateparse.NewExtractor("UTC")
	if err != nil {
		t.Fatalf("NewExtractor: %v", err)
	}
	store, err := session.NewMemoryStore(0)
	if err != nil {
		t.Fatalf("NewMemoryStore: %v", err)
	}
	tasks := &mockTaskUseCase{}

	uc := chatUC.New(
		&mockLogger{},
		store,
		classifier.New(extractor),
		extractor,
		assistAdapter,
		tasks,
		chatUC.SlotConfig{
			Location:           time.UTC,
			WeekdayDefaultHour: 16,
			WeekendDefaultHour: 10,
			DefaultDuration:    time.Hour,
		},
		func() time.Time { return now },
	)
	return fixture{uc: uc, store: store, tasks: tasks}
}

func send(t *testing.T, f fixture, text string) chat.HandleMessageOutput {
	t.Helper()
	out, err := f.uc.HandleMessage(context.Background(), model.Scope{UserID: "u1"}, chat.HandleMessageInput{Text: text})
	if err != nil {
		t.Fatalf("HandleMessage(%q): %v", text, err)
	}
	return out
}

func TestMissingUserRejected(t *testing.T) {
	f := newFixture(t, nil, refNow)
	_, err := f.uc.HandleMessage(context.Background(), model.Scope{}, chat.HandleMessageInput{Text: "hi"})
	if !errors.Is(err, chat.ErrMissingUser) {
		t.Fatalf("error = %v, want ErrMissingUser", err)
	}
}

func TestEmptyMessage(t *testing.T) {
	f := newFixture(t, nil, refNow)
	out := send(t, f, "   ")
	if out.RequiresConfirmation {
		t.Error("empty message must not open a proposal")
	}
	if out.Message == "" {
		t.Error("expected a prompt for input")
	}
}

func TestGreetingIdle(t *testing.T) {
	f := newFixture(t, nil, refNow)
	out := send(t, f, "hello")
	if out.RequiresConfirmation {
		t.Error("greeting must not open a proposal")
	}
	if len(f.tasks.created) != 0 {
		t.Error("greeting must not create tasks")
	}
}

func TestBareCreateAsksForTopic(t *testing.T) {
	f := newFixture(t, nil, refNow)
	out := send(t, f, "create a task")
	if out.RequiresConfirmation {
		t.Error("bare create must not open a proposal")
	}
	if !strings.Contains(strings.ToLower(out.Message), "what") {
		t.Errorf("expected a follow-up question, got %q", out.Message)
	}
}

func TestScheduleFlowEndToEnd(t *testing.T) {
	f := newFixture(t, nil, refNow)

	out := send(t, f, "gym tomorrow at 7am")
	if !out.RequiresConfirmation {
		t.Fatal("expected a pending proposal")
	}
	if !strings.Contains(out.Message, "gym") {
		t.Errorf("proposal message should name the topic, got %q", out.Message)
	}
	if len(f.tasks.created) != 0 {
		t.Fatal("no task may be created before confirmation")
	}

	pending := f.store.Get("u1").Pending
	if pending == nil || pending.Task == nil {
		t.Fatal("store has no pending task proposal")
	}
	if got, want := pending.Task.SuggestedStart, "2025-06-12T07:00:00Z"; got != want {
		t.Errorf("suggested start = %s, want %s", got, want)
	}
	if got, want := pending.Task.SuggestedEnd, "2025-06-12T08:00:00Z"; got != want {
		t.Errorf("suggested end = %s, want %s", got, want)
	}

	out = send(t, f, "yes")
	if out.RequiresConfirmation {
		t.Error("confirmation must clear the proposal")
	}
	if len(f.tasks.created) != 1 {
		t.Fatalf("created %d tasks, want 1", len(f.tasks.created))
	}
	created := f.tasks.created[0]
	if created.Title != "gym" {
		t.Errorf("created title = %q, want gym", created.Title)
	}
	if !created.Start.Equal(time.Date(2025, 6, 12, 7, 0, 0, 0, time.UTC)) {
		t.Errorf("created start = %v", created.Start)
	}
}

func TestTopicOnlyGetsDefaultSlot(t *testing.T) {
	f := newFixture(t, nil, refNow)

	out := send(t, f, "walk the dog")
	if !out.RequiresConfirmation {
		t.Fatal("expected a pending proposal")
	}

	pending := f.store.Get("u1").Pending
	// Wednesday 09:30, weekday default 16:00 has not passed: today.
	if got, want := pending.Task.SuggestedStart, "2025-06-11T16:00:00Z"; got != want {
		t.Errorf("suggested start = %s, want %s", got, want)
	}
}

func TestTopicOnlyRollsToTomorrowWhenHourPassed(t *testing.T) {
	evening := time.Date(2025, 6, 11, 17, 0, 0, 0, time.UTC)
	f := newFixture(t, nil, evening)

	send(t, f, "walk the dog")
	pending := f.store.Get("u1").Pending
	if got, want := pending.Task.SuggestedStart, "2025-06-12T16:00:00Z"; got != want {
		t.Errorf("suggested start = %s, want %s", got, want)
	}
}

func TestTopicOnlyWeekendHour(t *testing.T) {
	// Friday evening: the default hour has passed, rolls to Saturday
	// which uses the weekend hour.
	fridayEvening := time.Date(2025, 6, 13, 17, 0, 0, 0, time.UTC)
	f := newFixture(t, nil, fridayEvening)

	send(t, f, "clean the garage")
	pending := f.store.Get("u1").Pending
	if got, want := pending.Task.SuggestedStart, "2025-06-14T10:00:00Z"; got != want {
		t.Errorf("suggested start = %s, want %s", got, want)
	}
}

func TestExplicitTodayRollsWhenTimePassed(t *testing.T) {
	// 2025-01-01 is a Wednesday; at 20:00 the named 17:00 has passed.
	evening := time.Date(2025, 1, 1, 20, 0, 0, 0, time.UTC)
	f := newFixture(t, nil, evening)

	out := send(t, f, "dentist today at 5pm")
	if !out.RequiresConfirmation {
		t.Fatal("expected a pending proposal")
	}

	pending := f.store.Get("u1").Pending
	if got, want := pending.Task.SuggestedStart, "2025-01-02T17:00:00Z"; got != want {
		t.Errorf("suggested start = %s, want %s", got, want)
	}
	if got, want := pending.Task.SuggestedEnd, "2025-01-02T18:00:00Z"; got != want {
		t.Errorf("suggested end = %s, want %s", got, want)
	}
}

func TestRejectionClearsProposal(t *testing.T) {
	f := newFixture(t, nil, refNow)

	send(t, f, "gym tomorrow at 7am")
	out := send(t, f, "no")
	if out.RequiresConfirmation {
		t.Error("rejection must clear the proposal")
	}
	if len(f.tasks.created) != 0 {
		t.Error("rejection must not create tasks")
	}
}

func TestGreetingKeepsProposal(t *testing.T) {
	f := newFixture(t, nil, refNow)

	send(t, f, "gym tomorrow at 7am")
	out := send(t, f, "hello again")
	if !out.RequiresConfirmation {
		t.Error("greeting must not drop the proposal")
	}
	if !strings.Contains(out.Message, "gym") {
		t.Errorf("greeting reply should restate the proposal, got %q", out.Message)
	}
}

func TestAdjustmentMergesTimeKeepsRest(t *testing.T) {
	f := newFixture(t, nil, refNow)

	send(t, f, "gym tomorrow at 7am")
	out := send(t, f, "make it 3pm")
	if !out.RequiresConfirmation {
		t.Fatal("adjustment must keep a pending proposal")
	}

	pending := f.store.Get("u1").Pending
	if pending.Task.Title != "gym" {
		t.Errorf("title changed to %q during adjustment", pending.Task.Title)
	}
	if got, want := pending.Task.SuggestedStart, "2025-06-12T15:00:00Z"; got != want {
		t.Errorf("adjusted start = %s, want %s", got, want)
	}
	// Duration preserved.
	if got, want := pending.Task.SuggestedEnd, "2025-06-12T16:00:00Z"; got != want {
		t.Errorf("adjusted end = %s, want %s", got, want)
	}
}

func TestAdjustmentMovesDate(t *testing.T) {
	f := newFixture(t, nil, refNow)

	send(t, f, "gym tomorrow at 7am")
	send(t, f, "friday instead")

	pending := f.store.Get("u1").Pending
	// Date moved to Friday, time of day kept from the proposal.
	if got, want := pending.Task.SuggestedStart, "2025-06-13T07:00:00Z"; got != want {
		t.Errorf("adjusted start = %s, want %s", got, want)
	}
}

func TestAdjustmentToTodayRollsWhenTimePassed(t *testing.T) {
	evening := time.Date(2025, 1, 1, 20, 0, 0, 0, time.UTC)
	f := newFixture(t, nil, evening)

	f.store.SetPending("u1", &model.PendingProposal{
		Kind: model.ProposalKindTask,
		Task: &model.TaskProposalPayload{
			Title:          "gym",
			SuggestedStart: "2025-01-02T07:00:00Z",
			SuggestedEnd:   "2025-01-02T08:00:00Z",
			Priority:       model.PriorityMedium,
		},
		CreatedAt: evening,
	})

	out := send(t, f, "today at 5pm")
	if !out.RequiresConfirmation {
		t.Fatal("adjustment must keep a pending proposal")
	}

	pending := f.store.Get("u1").Pending
	if pending.Task.Title != "gym" {
		t.Errorf("title changed to %q during adjustment", pending.Task.Title)
	}
	// 17:00 today has passed, so "today" lands on the next day.
	if got, want := pending.Task.SuggestedStart, "2025-01-02T17:00:00Z"; got != want {
		t.Errorf("adjusted start = %s, want %s", got, want)
	}
	if got, want := pending.Task.SuggestedEnd, "2025-01-02T18:00:00Z"; got != want {
		t.Errorf("adjusted end = %s, want %s", got, want)
	}
}

func TestUnrelatedTextSupersedesProposal(t *testing.T) {
	f := newFixture(t, nil, refNow)

	send(t, f, "gym tomorrow at 7am")
	send(t, f, "organize the bookshelf")

	pending := f.store.Get("u1").Pending
	if pending == nil || pending.Task == nil {
		t.Fatal("expected the new topic to open a fresh proposal")
	}
	if pending.Task.Title != "organize the bookshelf" {
		t.Errorf("pending title = %q, want the new topic", pending.Task.Title)
	}
	if len(f.tasks.created) != 0 {
		t.Error("superseding must not create tasks")
	}
}

func TestConfirmationOfStaleProposal(t *testing.T) {
	f := newFixture(t, nil, refNow)

	f.store.SetPending("u1", &model.PendingProposal{
		Kind: model.ProposalKindTask,
		Task: &model.TaskProposalPayload{
			Title:          "gym",
			SuggestedStart: "2025-06-10T07:00:00Z",
			SuggestedEnd:   "2025-06-10T08:00:00Z",
			Priority:       model.PriorityMedium,
		},
		CreatedAt: refNow.Add(-24 * time.Hour),
	})

	out := send(t, f, "yes")
	if out.RequiresConfirmation {
		t.Error("stale proposal must be cleared")
	}
	if len(f.tasks.created) != 0 {
		t.Error("stale proposal must not be materialized")
	}
}

func TestConfirmationOfMalformedProposal(t *testing.T) {
	f := newFixture(t, nil, refNow)

	f.store.SetPending("u1", &model.PendingProposal{
		Kind: model.ProposalKindTask,
		Task: &model.TaskProposalPayload{
			Title:          "gym",
			SuggestedStart: "tomorrow at 7",
			SuggestedEnd:   "later",
			Priority:       model.PriorityMedium,
		},
		CreatedAt: refNow,
	})

	out := send(t, f, "yes")
	if out.RequiresConfirmation {
		t.Error("malformed proposal must be cleared")
	}
	if len(f.tasks.created) != 0 {
		t.Error("malformed proposal must not be materialized")
	}
}

func TestConfirmationBackendFailureKeepsProposal(t *testing.T) {
	f := newFixture(t, nil, refNow)
	f.tasks.createFn = func(task.CreateInput) (task.CreateOutput, error) {
		return task.CreateOutput{}, errors.New("service unavailable")
	}

	send(t, f, "gym tomorrow at 7am")
	_, err := f.uc.HandleMessage(context.Background(), model.Scope{UserID: "u1"}, chat.HandleMessageInput{Text: "yes"})
	if !errors.Is(err, chat.ErrMaterializeFailed) {
		t.Fatalf("error = %v, want ErrMaterializeFailed", err)
	}
	if !f.store.Get("u1").HasPending() {
		t.Error("proposal must survive a backend failure so the user can retry")
	}
}

func TestPlanProposalAndConfirmation(t *testing.T) {
	f := newFixture(t, nil, refNow)

	out := send(t, f, "I want a workout plan")
	if !out.RequiresConfirmation {
		t.Fatal("expected a pending plan proposal")
	}

	pending := f.store.Get("u1").Pending
	if pending.Kind != model.ProposalKindPlan || pending.Plan == nil {
		t.Fatalf("pending = %+v, want a plan", pending)
	}
	if len(pending.Plan.Tasks) != 3 {
		t.Fatalf("plan has %d tasks, want 3", len(pending.Plan.Tasks))
	}
	// Sessions land on +1/+3/+5 days.
	if got, want := pending.Plan.Tasks[0].SuggestedStart, "2025-06-12T16:00:00Z"; got != want {
		t.Errorf("first session start = %s, want %s", got, want)
	}
	// 16 June 2025 is a Monday: weekday hour again.
	if got, want := pending.Plan.Tasks[2].SuggestedStart, "2025-06-16T16:00:00Z"; got != want {
		t.Errorf("third session start = %s, want %s", got, want)
	}

	out = send(t, f, "yes")
	if out.RequiresConfirmation {
		t.Error("plan confirmation must clear the proposal")
	}
	if len(f.tasks.created) != 3 {
		t.Fatalf("created %d tasks, want 3", len(f.tasks.created))
	}
	if !strings.Contains(out.Message, "3") {
		t.Errorf("reply should report the created count, got %q", out.Message)
	}
}

func TestPlanPartialFailureReportsCount(t *testing.T) {
	f := newFixture(t, nil, refNow)
	var calls int
	f.tasks.createFn = func(task.CreateInput) (task.CreateOutput, error) {
		calls++
		if calls == 2 {
			return task.CreateOutput{}, errors.New("boom")
		}
		return task.CreateOutput{TaskID: "ok"}, nil
	}

	send(t, f, "I want a workout plan")
	out := send(t, f, "yes")

	if out.RequiresConfirmation {
		t.Error("a partially created plan still clears the proposal")
	}
	if !strings.Contains(out.Message, "2") || !strings.Contains(out.Message, "1") {
		t.Errorf("reply should report created and skipped counts, got %q", out.Message)
	}
}

func TestPlanTotalFailureKeepsProposal(t *testing.T) {
	f := newFixture(t, nil, refNow)
	f.tasks.createFn = func(task.CreateInput) (task.CreateOutput, error) {
		return task.CreateOutput{}, errors.New("down")
	}

	send(t, f, "I want a workout plan")
	_, err := f.uc.HandleMessage(context.Background(), model.Scope{UserID: "u1"}, chat.HandleMessageInput{Text: "yes"})
	if !errors.Is(err, chat.ErrMaterializeFailed) {
		t.Fatalf("error = %v, want ErrMaterializeFailed", err)
	}
	if !f.store.Get("u1").HasPending() {
		t.Error("plan must stay pending when nothing was created")
	}
}

func TestPlanAllInvalidDropsProposal(t *testing.T) {
	f := newFixture(t, nil, refNow)

	f.store.SetPending("u1", &model.PendingProposal{
		Kind: model.ProposalKindPlan,
		Plan: &model.PlanProposalPayload{
			PlanTitle: "broken plan",
			Tasks: []model.TaskProposalPayload{
				{Title: "session 1", SuggestedStart: "someday", SuggestedEnd: "later", Priority: model.PriorityMedium},
				{Title: "session 2", SuggestedStart: "not a date", SuggestedEnd: "", Priority: model.PriorityMedium},
			},
		},
		CreatedAt: refNow,
	})

	out := send(t, f, "yes")
	if out.RequiresConfirmation {
		t.Error("a plan with no valid tasks must be cleared")
	}
	if f.store.Get("u1").HasPending() {
		t.Error("proposal must be dropped, not kept for retry")
	}
	if len(f.tasks.created) != 0 {
		t.Error("no task may be created from an invalid plan")
	}
	if !strings.Contains(out.Message, "discarded") {
		t.Errorf("reply should ask the user to restate, got %q", out.Message)
	}
}

func TestAssistProposalIsGated(t *testing.T) {
	adapter := &mockAssist{
		reply: assist.Reply{
			AssistantMessage: "How about tomorrow morning?",
			Action:           assist.ActionCreateTask, // legacy alias must still be gated
			Task: &assist.TaskAction{
				Title:    "Gym",
				Start:    "2025-06-12T07:00:00Z",
				End:      "2025-06-12T08:00:00Z",
				Priority: model.PriorityMedium,
			},
		},
	}
	f := newFixture(t, adapter, refNow)

	out := send(t, f, "hit the gym tomorrow at 7am")
	if !out.RequiresConfirmation {
		t.Fatal("assist proposal must open a pending proposal")
	}
	if len(f.tasks.created) != 0 {
		t.Fatal("create_task from the model must never bypass confirmation")
	}

	send(t, f, "yes")
	if len(f.tasks.created) != 1 {
		t.Fatalf("created %d tasks after confirmation, want 1", len(f.tasks.created))
	}
}

func TestAssistClarifyPassesThrough(t *testing.T) {
	adapter := &mockAssist{
		reply: assist.Reply{
			AssistantMessage: "When would you like to do that?",
			Action:           assist.ActionClarify,
		},
	}
	f := newFixture(t, adapter, refNow)

	out := send(t, f, "book something for the thing at 9")
	if out.RequiresConfirmation {
		t.Error("clarify must not open a proposal")
	}
	if out.Message != "When would you like to do that?" {
		t.Errorf("message = %q", out.Message)
	}
}

func TestAssistExtractionRecoversUnactionableReply(t *testing.T) {
	adapter := &mockAssist{
		reply: assist.Reply{
			AssistantMessage: assist.FallbackMessage,
			Action:           assist.ActionNone,
		},
		extraction: model.SchedulingExtraction{
			Intent: model.IntentMultiSchedule,
			Tasks: []model.ExtractionTask{
				{TaskTitle: "Finish report", DateExpression: "tomorrow", Priority: model.PriorityHigh},
				{TaskTitle: "Review code", Weekday: "friday", Time: "14:00", Priority: model.PriorityMedium},
			},
		},
	}
	f := newFixture(t, adapter, refNow)

	out := send(t, f, "finish the report tomorrow and review code friday at 14:00")
	if !out.RequiresConfirmation {
		t.Fatal("expected the extraction fallback to open a proposal")
	}

	pending := f.store.Get("u1").Pending
	if pending.Kind != model.ProposalKindPlan || len(pending.Plan.Tasks) != 2 {
		t.Fatalf("pending = %+v, want a 2-task plan", pending)
	}
	// "tomorrow" resolved deterministically to the day's default hour.
	if got, want := pending.Plan.Tasks[0].SuggestedStart, "2025-06-12T16:00:00Z"; got != want {
		t.Errorf("first task start = %s, want %s", got, want)
	}
	// "friday 14:00" resolved to the upcoming Friday.
	if got, want := pending.Plan.Tasks[1].SuggestedStart, "2025-06-13T14:00:00Z"; got != want {
		t.Errorf("second task start = %s, want %s", got, want)
	}
}

func TestAssistExtractionFailureKeepsConversationalReply(t *testing.T) {
	adapter := &mockAssist{
		reply: assist.Reply{
			AssistantMessage: assist.FallbackMessage,
			Action:           assist.ActionNone,
		},
		extractErr: assist.ErrUnparseable,
	}
	f := newFixture(t, adapter, refNow)

	out := send(t, f, "do the thing tomorrow")
	if out.RequiresConfirmation {
		t.Error("failed extraction must not open a proposal")
	}
	if out.Message != assist.FallbackMessage {
		t.Errorf("message = %q, want the conversational reply", out.Message)
	}
}

func TestHistoryIsRecorded(t *testing.T) {
	f := newFixture(t, nil, refNow)

	send(t, f, "hello")
	send(t, f, "walk the dog")

	history := f.store.Get("u1").History
	if len(history) != 4 {
		t.Fatalf("history length = %d, want 4", len(history))
	}
	if history[0].Role != model.RoleUser || history[1].Role != model.RoleAssistant {
		t.Errorf("history roles out of order: %+v", history[:2])
	}
}
