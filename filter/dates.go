package filter

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"
)

// periodRegex matches period expressions like "this week" or "last month"
var periodRegex = regexp.MustCompile(`(?i)^(this|current|last|previous)\s+(day|week|month|year)$`)

// ParseWhen parses an absolute or natural language point in time relative to
// now: "2024-01-31", "yesterday", "3 days ago", "last monday", "this week".
// Periods resolve to their first instant.
func ParseWhen(input string, now time.Time) (time.Time, error) {
	input = strings.TrimSpace(input)
	switch strings.ToLower(input) {
	case "", "now":
		return now, nil
	case "today":
		return startOfDay(now), nil
	}

	if m := periodRegex.FindStringSubmatch(input); m != nil {
		return periodStart(now, strings.ToLower(m[1]), strings.ToLower(m[2])), nil
	}

	cfg := &dateparser.Configuration{CurrentTime: now}
	result, err := dateparser.Parse(cfg, input)
	if err != nil {
		return time.Time{}, fmt.Errorf("cannot understand time %q: %w", input, err)
	}
	return result.Time, nil
}

// ParseRange parses since/until bounds. An empty until means now; an empty
// since means one week before until.
func ParseRange(since, until string, now time.Time) (time.Time, time.Time, error) {
	end := now
	if strings.TrimSpace(until) != "" {
		t, err := ParseWhen(until, now)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		end = t
	}
	start := end.AddDate(0, 0, -7)
	if strings.TrimSpace(since) != "" {
		t, err := ParseWhen(since, now)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		start = t
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("until %s is before since %s", end.Format(time.RFC3339), start.Format(time.RFC3339))
	}
	return start, end, nil
}

func periodStart(now time.Time, modifier, period string) time.Time {
	previous := modifier == "last" || modifier == "previous"
	day := startOfDay(now)

	switch period {
	case "day":
		if previous {
			return day.AddDate(0, 0, -1)
		}
		return day
	case "week":
		// weeks start on Monday
		offset := (int(now.Weekday()) + 6) % 7
		t := day.AddDate(0, 0, -offset)
		if previous {
			t = t.AddDate(0, 0, -7)
		}
		return t
	case "month":
		t := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		if previous {
			t = t.AddDate(0, -1, 0)
		}
		return t
	default:
		t := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
		if previous {
			t = t.AddDate(-1, 0, 0)
		}
		return t
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
