package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWhen(t *testing.T) {
	// a Friday
	now := time.Date(2024, 3, 15, 12, 30, 0, 0, time.UTC)

	tests := []struct {
		input string
		want  time.Time
	}{
		{"", now},
		{"now", now},
		{"today", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"this week", time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)},
		{"last week", time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)},
		{"this month", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"previous month", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
		{"last day", time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC)},
		{"this year", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseWhen(tt.input, now)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s want %s", got, tt.want)
		})
	}
}

func TestParseWhenNatural(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 30, 0, 0, time.UTC)

	got, err := ParseWhen("2024-01-31", now)
	require.NoError(t, err)
	assert.Equal(t, 2024, got.Year())
	assert.Equal(t, time.January, got.Month())
	assert.Equal(t, 31, got.Day())

	got, err = ParseWhen("3 days ago", now)
	require.NoError(t, err)
	assert.Equal(t, 12, got.Day())

	_, err = ParseWhen("not a date at all", now)
	assert.Error(t, err)
}

func TestParseRange(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 30, 0, 0, time.UTC)

	start, end, err := ParseRange("", "", now)
	require.NoError(t, err)
	assert.True(t, end.Equal(now))
	assert.True(t, start.Equal(now.AddDate(0, 0, -7)))

	start, end, err = ParseRange("this month", "today", now)
	require.NoError(t, err)
	assert.Equal(t, 1, start.Day())
	assert.Equal(t, 15, end.Day())

	_, _, err = ParseRange("today", "last week", now)
	assert.Error(t, err)
}
