package dateparse

import (
	"regexp"
	"strings"
)

var relativeTermRe = regexp.MustCompile(`\b(day after tomorrow|tomorrow|today|next week|next month)\b`)

// Connector words left dangling once a date/time expression is removed.
var danglingRe = regexp.MustCompile(`\s+\b(at|on|by|for|next)\b\s*$`)

// StripScheduleTokens removes the date and time expressions the extractor
// recognizes, leaving the topic text. Used to derive a task title from a
// combined utterance like "gym tomorrow at 7am".
func StripScheduleTokens(text string) string {
	s := " " + strings.TrimSpace(text) + " "
	lower := strings.ToLower(s)

	// Collect spans to drop from the lowercase shadow, then cut the same
	// spans from the original to preserve the user's casing.
	spans := [][]int{}
	for _, re := range []*regexp.Regexp{relativeTermRe, weekdayRe, isoDateRe, numericDateRe, clockRe, hourAmPmRe, bareHourRe} {
		spans = append(spans, re.FindAllStringIndex(lower, -1)...)
	}

	if len(spans) == 0 {
		return strings.TrimSpace(text)
	}

	drop := make([]bool, len(s))
	for _, span := range spans {
		for i := span[0]; i < span[1]; i++ {
			drop[i] = true
		}
	}

	var b strings.Builder
	for i, r := range []byte(s) {
		if !drop[i] {
			b.WriteByte(r)
		}
	}

	out := strings.Join(strings.Fields(b.String()), " ")
	for {
		next := strings.TrimSpace(danglingRe.ReplaceAllString(out, ""))
		if next == out {
			break
		}
		out = next
	}
	return out
}
