// Package dates extracts relative date phrases from free text and
// normalizes them to absolute calendar dates.
package dates

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Resolved pairs the matched phrase with its normalized calendar date.
type Resolved struct {
	Phrase string
	Date   time.Time
}

// ISO renders the resolved date in ISO calendar form (YYYY-MM-DD).
func (r Resolved) ISO() string { return r.Date.Format("2006-01-02") }

// Pattern categories, in fixed priority order. The first category with any
// match wins; later categories are not consulted even if they would match.
var (
	relativeWordPattern = regexp.MustCompile(`(?i)\b(today|tomorrow|yesterday)\b`)
	weekdayPattern      = regexp.MustCompile(`(?i)\b(?:(this|next|coming)\s+)?(monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`)
	offsetPattern       = regexp.MustCompile(`(?i)\bin\s+(\d+)\s+(day|days|week|weeks)\b`)
)

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// Resolve scans text for a relative date phrase and normalizes it against
// now. Within the winning category the leftmost match is used. A phrase
// that is recognized but cannot be normalized degrades to no-match rather
// than an error. The function is pure: now is injected, the system clock is
// never read.
func Resolve(text string, now time.Time) (Resolved, bool) {
	base := truncateToDay(now)

	if loc := relativeWordPattern.FindStringSubmatchIndex(text); loc != nil {
		phrase := text[loc[0]:loc[1]]
		switch strings.ToLower(text[loc[2]:loc[3]]) {
		case "today":
			return Resolved{Phrase: phrase, Date: base}, true
		case "tomorrow":
			return Resolved{Phrase: phrase, Date: base.AddDate(0, 0, 1)}, true
		case "yesterday":
			return Resolved{Phrase: phrase, Date: base.AddDate(0, 0, -1)}, true
		}
		return Resolved{}, false
	}

	if loc := weekdayPattern.FindStringSubmatchIndex(text); loc != nil {
		phrase := text[loc[0]:loc[1]]
		target, ok := weekdays[strings.ToLower(text[loc[4]:loc[5]])]
		if !ok {
			return Resolved{}, false
		}
		// Prefer-future bias: a weekday resolves to its upcoming occurrence,
		// never the current day or a past one.
		delta := (int(target) - int(base.Weekday()) + 7) % 7
		if delta == 0 {
			delta = 7
		}
		return Resolved{Phrase: phrase, Date: base.AddDate(0, 0, delta)}, true
	}

	if loc := offsetPattern.FindStringSubmatchIndex(text); loc != nil {
		phrase := text[loc[0]:loc[1]]
		n, err := strconv.Atoi(text[loc[2]:loc[3]])
		if err != nil {
			return Resolved{}, false
		}
		unit := strings.ToLower(text[loc[4]:loc[5]])
		if strings.HasPrefix(unit, "week") {
			n *= 7
		}
		return Resolved{Phrase: phrase, Date: base.AddDate(0, 0, n)}, true
	}

	return Resolved{}, false
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
