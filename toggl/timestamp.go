package toggl

import (
	"fmt"
	"strings"
	"time"
)

// timeLayouts lists the timestamp shapes seen in Toggl responses. Fractional
// seconds come with anywhere from one to nine digits depending on the endpoint,
// so every width is tried explicitly for the zone-less and no-colon forms.
var timeLayouts = buildTimeLayouts()

func buildTimeLayouts() []string {
	layouts := []string{time.RFC3339Nano, time.RFC3339}
	bases := []struct{ prefix, zone string }{
		{"2006-01-02T15:04:05", "-0700"},
		{"2006-01-02T15:04:05", "-07"},
		{"2006-01-02T15:04:05", ""},
		{"2006-01-02 15:04:05", "-07:00"},
		{"2006-01-02 15:04:05", ""},
	}
	for _, b := range bases {
		layouts = append(layouts, b.prefix+b.zone)
		for width := 1; width <= 9; width++ {
			layouts = append(layouts, b.prefix+"."+strings.Repeat("0", width)+b.zone)
		}
	}
	return append(layouts, time.DateOnly)
}

// ParseTime parses an ISO-8601 timestamp as produced by the Toggl API. Values
// without a zone are taken as UTC.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}

// FormatTime renders t the way request bodies and query strings expect it.
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
