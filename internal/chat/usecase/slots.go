package usecase

import (
	"time"

	"scheduling-assistant/internal/model"
	"scheduling-assistant/pkg/dateparse"
)

// defaultHourFor picks the default presentation hour for a day: weekdays
// get the working-hours default, weekends the morning default.
func (uc *implUseCase) defaultHourFor(day time.Time) int {
	switch day.Weekday() {
	case time.Saturday, time.Sunday:
		return uc.cfg.WeekendDefaultHour
	default:
		return uc.cfg.WeekdayDefaultHour
	}
}

// defaultSlot computes the default window for a topic with no schedule:
// today at the day's default hour, rolled to tomorrow when that hour has
// already passed. The hour is recomputed for the day it lands on.
func (uc *implUseCase) defaultSlot() (start, end time.Time) {
	now := uc.now().In(uc.cfg.Location)
	day := now
	start = time.Date(day.Year(), day.Month(), day.Day(), uc.defaultHourFor(day), 0, 0, 0, uc.cfg.Location)
	if !start.After(now) {
		day = now.AddDate(0, 0, 1)
		start = time.Date(day.Year(), day.Month(), day.Day(), uc.defaultHourFor(day), 0, 0, 0, uc.cfg.Location)
	}
	return start, start.Add(uc.cfg.DefaultDuration)
}

// slotFromResult turns an extraction result into a concrete window,
// filling whichever half is missing:
//   - date only: the day's default hour
//   - time only: today, rolled to tomorrow when the time has passed
//   - neither: the full default slot
//
// An explicit "today" whose time has already passed also rolls to the
// next day: "today at 5pm" said at 8pm means tomorrow at 5pm.
func (uc *implUseCase) slotFromResult(res dateparse.Result) (start, end time.Time) {
	now := uc.now().In(uc.cfg.Location)

	switch {
	case res.HasDate() && res.HasTime():
		start = uc.extractor.At(*res.Date, *res.Time)
		if res.ExplicitToday && !start.After(now) {
			start = uc.extractor.At(res.Date.AddDate(0, 0, 1), *res.Time)
		}
	case res.HasDate():
		day := *res.Date
		start = time.Date(day.Year(), day.Month(), day.Day(), uc.defaultHourFor(day), 0, 0, 0, uc.cfg.Location)
		if res.ExplicitToday && !start.After(now) {
			day = day.AddDate(0, 0, 1)
			start = time.Date(day.Year(), day.Month(), day.Day(), uc.defaultHourFor(day), 0, 0, 0, uc.cfg.Location)
		}
	case res.HasTime():
		start = uc.extractor.At(now, *res.Time)
		if !start.After(now) {
			start = uc.extractor.At(now.AddDate(0, 0, 1), *res.Time)
		}
	default:
		return uc.defaultSlot()
	}
	return start, start.Add(uc.cfg.DefaultDuration)
}

// mergeAdjustment applies an adjustment utterance onto the pending task,
// keeping every field the user did not mention. The original duration is
// preserved, floored at 30 minutes. Returns false when the current text
// carried no resolvable date or time.
func (uc *implUseCase) mergeAdjustment(pending model.TaskProposalPayload, res dateparse.Result) (model.TaskProposalPayload, bool) {
	if !res.HasDate() && !res.HasTime() {
		return pending, false
	}

	now := uc.now().In(uc.cfg.Location)

	oldStart, oldEnd, err := pending.Window()
	duration := uc.cfg.DefaultDuration
	if err == nil {
		duration = oldEnd.Sub(oldStart)
	}
	if duration < 30*time.Minute {
		duration = 30 * time.Minute
	}

	var day time.Time
	switch {
	case res.HasDate():
		day = *res.Date
	case err == nil && !oldStart.Before(now):
		day = oldStart.In(uc.cfg.Location)
	default:
		day = now
	}

	var clock dateparse.ClockTime
	switch {
	case res.HasTime():
		clock = *res.Time
	case err == nil:
		old := oldStart.In(uc.cfg.Location)
		clock = dateparse.ClockTime{Hour: old.Hour(), Minute: old.Minute()}
	default:
		clock = dateparse.ClockTime{Hour: uc.defaultHourFor(day)}
	}

	start := uc.extractor.At(day, clock)
	// "today at 5pm" said after 5pm rolls to tomorrow, as does a bare
	// time that has already passed.
	if !start.After(now) && (res.ExplicitToday || !res.HasDate()) {
		start = uc.extractor.At(day.AddDate(0, 0, 1), clock)
	}

	pending.SuggestedStart = start.Format(time.RFC3339)
	pending.SuggestedEnd = start.Add(duration).Format(time.RFC3339)
	return pending, true
}
