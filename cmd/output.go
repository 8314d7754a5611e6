package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorPrimary = lipgloss.Color("#7C3AED")
	colorMuted   = lipgloss.Color("#6B7280")
	colorSuccess = lipgloss.Color("#10B981")
	colorActive  = lipgloss.Color("#3B82F6")

	styleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	styleMuted = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleRunning = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorSuccess)

	styleDuration = lipgloss.NewStyle().
			Foreground(colorActive)
)

const ruleWidth = 85

// table prints fixed-width rows between heavy rules
type table struct {
	w      io.Writer
	format string
}

func newTable(w io.Writer, format string, headers ...any) *table {
	t := &table{w: w, format: format}
	fmt.Fprintln(w, strings.Repeat("━", ruleWidth))
	fmt.Fprintln(w, styleHeader.Render(fmt.Sprintf(format, headers...)))
	fmt.Fprintln(w, strings.Repeat("━", ruleWidth))
	return t
}

func (t *table) row(values ...any) {
	fmt.Fprintf(t.w, t.format+"\n", values...)
}

func (t *table) close() {
	fmt.Fprintln(t.w, strings.Repeat("━", ruleWidth))
}

// truncate shortens s to limit runes, marking the cut with "...".
func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	if limit <= 3 {
		return string(r[:limit])
	}
	return string(r[:limit-3]) + "..."
}

// formatDuration renders d as H:MM:SS.
func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Truncate(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	if strings.HasSuffix(word, "y") {
		word = strings.TrimSuffix(word, "y") + "ie"
	}
	return strconv.Itoa(n) + " " + word + "s"
}

// parseIDs reads positional ids, accepting "1 2 3" and "1,2,3".
func parseIDs(args []string) ([]int64, error) {
	var ids []int64
	for _, arg := range args {
		for _, part := range strings.Split(arg, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseInt(part, 10, 64)
			if err != nil || id <= 0 {
				return nil, fmt.Errorf("invalid id '%s': must be a positive integer", part)
			}
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("at least one id is required")
	}
	return ids, nil
}

func parseID(arg string) (int64, error) {
	ids, err := parseIDs([]string{arg})
	if err != nil {
		return 0, err
	}
	if len(ids) != 1 {
		return 0, fmt.Errorf("expected a single id, got '%s'", arg)
	}
	return ids[0], nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
