package dateparse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Extractor resolves date and time expressions in free text against a
// reference instant. It never guesses: fields it cannot resolve stay nil.
type Extractor struct {
	location *time.Location
}

// NewExtractor creates an extractor for the given IANA timezone string,
// e.g. "Europe/Berlin" or "Local".
func NewExtractor(timezone string) (*Extractor, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return &Extractor{location: loc}, nil
}

var weekdays = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

var (
	weekdayRe = regexp.MustCompile(`\b(next\s+)?(monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`)

	isoDateRe     = regexp.MustCompile(`\b(\d{4})-(\d{1,2})-(\d{1,2})\b`)
	numericDateRe = regexp.MustCompile(`\b(\d{1,2})([/\-.])(\d{1,2})(?:([/\-.])(\d{2,4}))?\b`)

	clockRe    = regexp.MustCompile(`\b(\d{1,2}):(\d{2})\s*(am|pm)?\b`)
	hourAmPmRe = regexp.MustCompile(`\b(\d{1,2})\s*(am|pm)\b`)
	bareHourRe = regexp.MustCompile(`\bat\s+(\d{1,2})\b`)
)

// Extract resolves date/time signals in text relative to now.
func (e *Extractor) Extract(text string, now time.Time) Result {
	text = strings.ToLower(strings.TrimSpace(text))
	now = now.In(e.location)

	res := Result{}

	if d, explicitToday, ok := e.extractDate(text, now); ok {
		res.Date = &d
		res.ExplicitToday = explicitToday
	}

	if t, ok := extractClock(text); ok {
		res.Time = &t
	}

	return res
}

// extractDate resolves the date portion of text. Precedence: relative terms,
// weekday names, absolute numeric forms.
func (e *Extractor) extractDate(text string, now time.Time) (time.Time, bool, bool) {
	today := e.startOfDay(now)

	// Relative terms. "day after tomorrow" must win over "tomorrow".
	switch {
	case strings.Contains(text, "day after tomorrow"):
		return today.AddDate(0, 0, 2), false, true
	case strings.Contains(text, "tomorrow"):
		return today.AddDate(0, 0, 1), false, true
	case strings.Contains(text, "today"):
		return today, true, true
	case strings.Contains(text, "next week"):
		return today.AddDate(0, 0, 7), false, true
	case strings.Contains(text, "next month"):
		return today.AddDate(0, 1, 0), false, true
	}

	// Weekday names resolve to the next occurrence on/after now;
	// a same-day match counts as today, "next" adds a further week.
	if m := weekdayRe.FindStringSubmatch(text); m != nil {
		target := weekdays[m[2]]
		daysUntil := int(target-now.Weekday()+7) % 7
		if m[1] != "" {
			daysUntil += 7
		}
		return today.AddDate(0, 0, daysUntil), false, true
	}

	// YYYY-MM-DD
	if m := isoDateRe.FindStringSubmatch(text); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		if d, ok := e.makeDate(year, month, day); ok {
			return d, false, true
		}
		return time.Time{}, false, false
	}

	// Day/month with an optional 2-4 digit year, separated by / - or .
	if m := numericDateRe.FindStringSubmatch(text); m != nil {
		a, _ := strconv.Atoi(m[1])
		b, _ := strconv.Atoi(m[3])

		// Day-first convention; a component above 12 can only be the day.
		day, month := a, b
		if b > 12 {
			day, month = b, a
		}

		if m[5] == "" {
			// No year: next upcoming occurrence of that month/day.
			d, ok := e.makeDate(now.Year(), month, day)
			if !ok {
				return time.Time{}, false, false
			}
			if d.Before(today) {
				d, ok = e.makeDate(now.Year()+1, month, day)
				if !ok {
					return time.Time{}, false, false
				}
			}
			return d, false, true
		}

		// Separators must agree (reject e.g. "3/4-25").
		if m[4] != m[2] {
			return time.Time{}, false, false
		}

		year, _ := strconv.Atoi(m[5])
		if year < 100 {
			year += 2000
		}
		if d, ok := e.makeDate(year, month, day); ok {
			return d, false, true
		}
		return time.Time{}, false, false
	}

	return time.Time{}, false, false
}

// makeDate validates month/day ranges and builds a midnight timestamp.
// time.Date normalizes out-of-range values, so reject them up front.
func (e *Extractor) makeDate(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, e.location)
	if d.Day() != day || d.Month() != time.Month(month) {
		return time.Time{}, false
	}
	return d, true
}

// extractClock resolves the time-of-day portion of text.
// Invalid ranges fail extraction for the field rather than guessing.
func extractClock(text string) (ClockTime, bool) {
	if m := clockRe.FindStringSubmatch(text); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		if minute > 59 {
			return ClockTime{}, false
		}
		if m[3] != "" {
			h, ok := to24Hour(hour, m[3])
			if !ok {
				return ClockTime{}, false
			}
			return ClockTime{Hour: h, Minute: minute}, true
		}
		if hour > 23 {
			return ClockTime{}, false
		}
		return ClockTime{Hour: hour, Minute: minute}, true
	}

	if m := hourAmPmRe.FindStringSubmatch(text); m != nil {
		hour, _ := strconv.Atoi(m[1])
		h, ok := to24Hour(hour, m[2])
		if !ok {
			return ClockTime{}, false
		}
		return ClockTime{Hour: h}, true
	}

	if m := bareHourRe.FindStringSubmatch(text); m != nil {
		hour, _ := strconv.Atoi(m[1])
		if hour > 23 {
			return ClockTime{}, false
		}
		return ClockTime{Hour: hour}, true
	}

	return ClockTime{}, false
}

// to24Hour converts a 12-hour clock hour with am/pm marker.
func to24Hour(hour int, marker string) (int, bool) {
	if hour < 1 || hour > 12 {
		return 0, false
	}
	if marker == "am" {
		if hour == 12 {
			return 0, true
		}
		return hour, true
	}
	if hour == 12 {
		return 12, true
	}
	return hour + 12, true
}

// HasDateToken reports whether text contains any token the extractor
// recognizes as a date expression, even if it cannot fully resolve it.
func (e *Extractor) HasDateToken(text string) bool {
	text = strings.ToLower(text)
	for _, term := range []string{"today", "tomorrow", "next week", "next month"} {
		if strings.Contains(text, term) {
			return true
		}
	}
	return weekdayRe.MatchString(text) || isoDateRe.MatchString(text) || numericDateRe.MatchString(text)
}

// HasTimeToken reports whether text contains any token the extractor
// recognizes as a time expression.
func (e *Extractor) HasTimeToken(text string) bool {
	text = strings.ToLower(text)
	return clockRe.MatchString(text) || hourAmPmRe.MatchString(text) || bareHourRe.MatchString(text)
}

// At combines a resolved day with a clock time in the extractor's location.
func (e *Extractor) At(day time.Time, clock ClockTime) time.Time {
	day = day.In(e.location)
	return time.Date(day.Year(), day.Month(), day.Day(), clock.Hour, clock.Minute, 0, 0, e.location)
}

// startOfDay returns midnight at the start of the given day in the extractor's location.
func (e *Extractor) startOfDay(t time.Time) time.Time {
	t = t.In(e.location)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, e.location)
}
