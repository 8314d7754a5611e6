package toggl

import (
	"fmt"
	"time"
)

// Client represents a Toggl client (a customer billed under a workspace)
type Client struct {
	ID          int64
	WorkspaceID int64
	Name        string
	Archived    bool
	Notes       string
	At          time.Time
}

// Project represents a Toggl project
type Project struct {
	ID             int64
	WorkspaceID    int64
	ClientID       *int64
	Name           string
	Billable       bool
	Private        bool
	Active         bool
	Template       bool
	Color          string
	AutoEstimates  bool
	EstimatedHours *int64
	ActualHours    *int64
	CreatedAt      time.Time
	At             time.Time
}

// HasClient reports whether the project is linked to a client
func (p *Project) HasClient() bool {
	return p.ClientID != nil && *p.ClientID != 0
}

// TimeEntry represents a single recorded span of work
type TimeEntry struct {
	ID          int64
	WorkspaceID int64
	ProjectID   *int64
	TaskID      *int64
	UserID      int64
	Billable    bool
	Start       time.Time
	Stop        *time.Time
	// Duration is in seconds. A running entry has a negative duration.
	Duration    int64
	Description string
	Tags        []string
	TagIDs      []int64
	DurOnly     bool
	At          time.Time
}

// IsRunning reports whether the entry is still being tracked
func (e *TimeEntry) IsRunning() bool {
	return e.Duration < 0
}

// Elapsed returns the tracked duration, measuring running entries against now.
func (e *TimeEntry) Elapsed(now time.Time) time.Duration {
	if e.IsRunning() {
		return now.Sub(e.Start).Truncate(time.Second)
	}
	return time.Duration(e.Duration) * time.Second
}

// Workspace represents a Toggl workspace
type Workspace struct {
	ID                int64
	Name              string
	Premium           bool
	Admin             bool
	OrganizationID    *int64
	DefaultCurrency   string
	DefaultHourlyRate *float64
	At                time.Time
}

// Tag represents a workspace-scoped label
type Tag struct {
	ID          int64
	WorkspaceID int64
	Name        string
	At          time.Time
}

// User represents the authenticated account
type User struct {
	ID                 int64
	Email              string
	FullName           string
	Timezone           string
	DefaultWorkspaceID int64
	BeginningOfWeek    time.Weekday
	ImageURL           string
	CreatedAt          time.Time
	UpdatedAt          time.Time
	At                 time.Time
}

// DurationFormat is how durations are displayed for the user
type DurationFormat string

const (
	// DurationFormatClassic renders 1:30:00 style durations
	DurationFormatClassic DurationFormat = "classic"
	// DurationFormatImproved renders 1:30 h style durations
	DurationFormatImproved DurationFormat = "improved"
	// DurationFormatDecimal renders 1.50 h style durations
	DurationFormatDecimal DurationFormat = "decimal"
)

// Valid reports whether f is one of the known formats
func (f DurationFormat) Valid() bool {
	switch f {
	case DurationFormatClassic, DurationFormatImproved, DurationFormatDecimal:
		return true
	}
	return false
}

// Preferences holds account display settings
type Preferences struct {
	DateFormat      string
	TimeOfDayFormat string
	DurationFormat  DurationFormat
}

// NoContent is the body type of operations whose response carries nothing of use.
type NoContent struct{}

// ParseClient builds a Client from a JSON object. A nil object yields nil.
func ParseClient(o Object) (*Client, error) {
	if o == nil {
		return nil, nil
	}
	at, err := o.Time("at", "updated_at")
	if err != nil {
		return nil, fmt.Errorf("client at: %w", err)
	}
	return &Client{
		ID:          o.Int64Or(0, "id"),
		WorkspaceID: o.Int64Or(0, "wid", "workspace_id"),
		Name:        o.StringOr("", "name"),
		Archived:    o.BoolOr(false, "archived"),
		Notes:       o.StringOr("", "notes"),
		At:          deref(at),
	}, nil
}

// ParseProject builds a Project from a JSON object. A nil object yields nil.
func ParseProject(o Object) (*Project, error) {
	if o == nil {
		return nil, nil
	}
	createdAt, err := o.Time("created_at")
	if err != nil {
		return nil, fmt.Errorf("project created_at: %w", err)
	}
	at, err := o.Time("at")
	if err != nil {
		return nil, fmt.Errorf("project at: %w", err)
	}
	return &Project{
		ID:             o.Int64Or(0, "id"),
		WorkspaceID:    o.Int64Or(0, "workspace_id", "wid"),
		ClientID:       o.Int64("client_id", "cid"),
		Name:           o.StringOr("", "name"),
		Billable:       o.BoolOr(false, "billable"),
		Private:        o.BoolOr(false, "is_private"),
		Active:         o.BoolOr(false, "active"),
		Template:       o.BoolOr(false, "template"),
		Color:          o.StringOr("", "color", "hex_color"),
		AutoEstimates:  o.BoolOr(false, "auto_estimates"),
		EstimatedHours: o.Int64("estimated_hours"),
		ActualHours:    o.Int64("actual_hours"),
		CreatedAt:      deref(createdAt),
		At:             deref(at),
	}, nil
}

// ParseTimeEntry builds a TimeEntry from a JSON object. A nil object yields nil.
func ParseTimeEntry(o Object) (*TimeEntry, error) {
	if o == nil {
		return nil, nil
	}
	start, err := o.Time("start")
	if err != nil {
		return nil, fmt.Errorf("time entry start: %w", err)
	}
	stop, err := o.Time("stop")
	if err != nil {
		return nil, fmt.Errorf("time entry stop: %w", err)
	}
	at, err := o.Time("at")
	if err != nil {
		return nil, fmt.Errorf("time entry at: %w", err)
	}
	return &TimeEntry{
		ID:          o.Int64Or(0, "id"),
		WorkspaceID: o.Int64Or(0, "workspace_id", "wid"),
		ProjectID:   o.Int64("project_id", "pid"),
		TaskID:      o.Int64("task_id", "tid"),
		UserID:      o.Int64Or(0, "user_id", "uid"),
		Billable:    o.BoolOr(false, "billable"),
		Start:       deref(start),
		Stop:        stop,
		Duration:    o.Int64Or(0, "duration"),
		Description: o.StringOr("", "description"),
		Tags:        o.Strings("tags"),
		TagIDs:      o.Int64s("tag_ids"),
		DurOnly:     o.BoolOr(false, "duronly"),
		At:          deref(at),
	}, nil
}

// ParseWorkspace builds a Workspace from a JSON object. A nil object yields nil.
func ParseWorkspace(o Object) (*Workspace, error) {
	if o == nil {
		return nil, nil
	}
	at, err := o.Time("at")
	if err != nil {
		return nil, fmt.Errorf("workspace at: %w", err)
	}
	return &Workspace{
		ID:                o.Int64Or(0, "id"),
		Name:              o.StringOr("", "name"),
		Premium:           o.BoolOr(false, "premium"),
		Admin:             o.BoolOr(false, "admin"),
		OrganizationID:    o.Int64("organization_id"),
		DefaultCurrency:   o.StringOr("", "default_currency"),
		DefaultHourlyRate: o.Float64("default_hourly_rate"),
		At:                deref(at),
	}, nil
}

// ParseTag builds a Tag from a JSON object. A nil object yields nil.
func ParseTag(o Object) (*Tag, error) {
	if o == nil {
		return nil, nil
	}
	at, err := o.Time("at")
	if err != nil {
		return nil, fmt.Errorf("tag at: %w", err)
	}
	return &Tag{
		ID:          o.Int64Or(0, "id"),
		WorkspaceID: o.Int64Or(0, "workspace_id", "wid"),
		Name:        o.StringOr("", "name"),
		At:          deref(at),
	}, nil
}

// ParseUser builds a User from a JSON object. A nil object yields nil.
func ParseUser(o Object) (*User, error) {
	if o == nil {
		return nil, nil
	}
	createdAt, err := o.Time("created_at")
	if err != nil {
		return nil, fmt.Errorf("user created_at: %w", err)
	}
	updatedAt, err := o.Time("updated_at")
	if err != nil {
		return nil, fmt.Errorf("user updated_at: %w", err)
	}
	at, err := o.Time("at")
	if err != nil {
		return nil, fmt.Errorf("user at: %w", err)
	}
	return &User{
		ID:                 o.Int64Or(0, "id"),
		Email:              o.StringOr("", "email"),
		FullName:           o.StringOr("", "fullname"),
		Timezone:           o.StringOr("", "timezone"),
		DefaultWorkspaceID: o.Int64Or(0, "default_workspace_id", "default_wid"),
		BeginningOfWeek:    foldWeekday(o.Int64Or(0, "beginning_of_week")),
		ImageURL:           o.StringOr("", "image_url"),
		CreatedAt:          deref(createdAt),
		UpdatedAt:          deref(updatedAt),
		At:                 deref(at),
	}, nil
}

// ParsePreferences builds Preferences from a JSON object. A nil object yields nil.
func ParsePreferences(o Object) (*Preferences, error) {
	if o == nil {
		return nil, nil
	}
	return &Preferences{
		DateFormat:      o.StringOr("", "date_format"),
		TimeOfDayFormat: o.StringOr("", "timeofday_format"),
		DurationFormat:  DurationFormat(o.StringOr("", "duration_format")),
	}, nil
}

func parseNoContent(Object) (*NoContent, error) {
	return &NoContent{}, nil
}

// ProjectIDs collects the ids of projects.
func ProjectIDs(projects ...*Project) ([]int64, error) {
	return idsOf(projects, func(p *Project) int64 { return p.ID })
}

// TimeEntryIDs collects the ids of time entries.
func TimeEntryIDs(entries ...*TimeEntry) ([]int64, error) {
	return idsOf(entries, func(e *TimeEntry) int64 { return e.ID })
}

// foldWeekday folds any integer onto Sunday..Saturday.
func foldWeekday(n int64) time.Weekday {
	return time.Weekday(((n % 7) + 7) % 7)
}

func idsOf[T any](items []*T, id func(*T) int64) ([]int64, error) {
	out := make([]int64, 0, len(items))
	for i, item := range items {
		if item == nil {
			return nil, fmt.Errorf("item %d: %w", i, ErrNilArgument)
		}
		out = append(out, id(item))
	}
	return out, nil
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
