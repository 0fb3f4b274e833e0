package usecase

import (
	"time"

	"scheduling-assistant/internal/chat/assist"
	"scheduling-assistant/internal/chat/classifier"
	"scheduling-assistant/internal/chat/session"
	"scheduling-assistant/internal/task"
	"scheduling-assistant/pkg/dateparse"
	pkgLog "scheduling-assistant/pkg/log"
)

// SlotConfig tunes the default-slot policy for topic-only requests.
type SlotConfig struct {
	Location           *time.Location
	WeekdayDefaultHour int // default presentation time on weekdays
	WeekendDefaultHour int // default presentation time on weekends
	DefaultDuration    time.Duration
}

type implUseCase struct {
	l         pkgLog.Logger
	store     session.Store
	cls       *classifier.Classifier
	extractor *dateparse.Extractor
	assist    assist.Adapter // nil means deterministic-only operation
	taskUC    task.UseCase
	cfg       SlotConfig
	now       func() time.Time
}

// New creates the conversational scheduling engine. assistAdapter may be
// nil, in which case every turn is handled deterministically. now may be
// nil, defaulting to time.Now.
func New(
	l pkgLog.Logger,
	store session.Store,
	cls *classifier.Classifier,
	extractor *dateparse.Extractor,
	assistAdapter assist.Adapter,
	taskUC task.UseCase,
	cfg SlotConfig,
	now func() time.Time,
) *implUseCase {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.WeekdayDefaultHour == 0 {
		cfg.WeekdayDefaultHour = 16
	}
	if cfg.WeekendDefaultHour == 0 {
		cfg.WeekendDefaultHour = 10
	}
	if cfg.DefaultDuration <= 0 {
		cfg.DefaultDuration = time.Hour
	}
	if now == nil {
		now = time.Now
	}
	return &implUseCase{
		l:         l,
		store:     store,
		cls:       cls,
		extractor: extractor,
		assist:    assistAdapter,
		taskUC:    taskUC,
		cfg:       cfg,
		now:       now,
	}
}
