package toggl

import (
	"net/http"
	"net/url"
	"time"
)

// DefaultCreatedWith names this library in the created_with field Toggl requires.
const DefaultCreatedWith = "togglr"

// ListTimeEntriesOptions lists the authenticated user's time entries. Start and
// End are either both set or both zero; zero returns the API's default window.
type ListTimeEntriesOptions struct {
	Start time.Time
	End   time.Time
	// Meta asks the API to include related project/client names.
	Meta bool
}

// Request implements Options
func (o ListTimeEntriesOptions) Request(api Version) (Request, error) {
	const op = "list time entries"
	if err := requireRoute(op, api.TimeEntries.List); err != nil {
		return Request{}, err
	}
	switch {
	case o.Start.IsZero() && !o.End.IsZero():
		return Request{}, missing(op, "start_date")
	case !o.Start.IsZero() && o.End.IsZero():
		return Request{}, missing(op, "end_date")
	case !o.Start.IsZero() && o.End.Before(o.Start):
		return Request{}, invalid(op, "end_date", "is before start_date")
	}
	req := get(api.path(api.TimeEntries.List, 0))
	q := url.Values{}
	if !o.Start.IsZero() {
		q.Set("start_date", FormatTime(o.Start))
		q.Set("end_date", FormatTime(o.End))
	}
	if o.Meta && !api.LegacyFields {
		q.Set("meta", "true")
	}
	if len(q) > 0 {
		req.Query = q
	}
	return req, nil
}

// GetTimeEntryOptions fetches one time entry.
type GetTimeEntryOptions struct {
	EntryID int64
}

// Request implements Options
func (o GetTimeEntryOptions) Request(api Version) (Request, error) {
	path, err := route(api, "get time entry", api.GetEntry, 0, "time_entry_id", o.EntryID)
	if err != nil {
		return Request{}, err
	}
	return get(path), nil
}

// CurrentTimeEntryOptions fetches the running time entry, if any.
type CurrentTimeEntryOptions struct{}

// Request implements Options
func (o CurrentTimeEntryOptions) Request(api Version) (Request, error) {
	path, err := route(api, "current time entry", api.CurrentEntry, 0, "")
	if err != nil {
		return Request{}, err
	}
	return get(path), nil
}

// TimeEntryFields are the writable time entry attributes shared by create and
// update. Nil pointers, empty strings and nil slices are left out.
type TimeEntryFields struct {
	ProjectID   *int64
	TaskID      *int64
	Description string
	Tags        []string
	TagIDs      []int64
	Billable    *bool
	Stop        *time.Time
	Duration    *int64
}

func (f TimeEntryFields) apply(api Version, b *body) {
	b.setInt(api.field("project_id", "pid"), f.ProjectID).
		setInt(api.field("task_id", "tid"), f.TaskID).
		setString("description", f.Description).
		setIf(f.Tags != nil, "tags", f.Tags).
		setIf(f.TagIDs != nil, "tag_ids", f.TagIDs).
		setBool("billable", f.Billable).
		setTime("stop", f.Stop).
		setInt("duration", f.Duration)
}

// CreateTimeEntryOptions records a time entry. Without Stop or Duration the
// entry is created running.
type CreateTimeEntryOptions struct {
	WorkspaceID int64
	Start       time.Time
	CreatedWith string
	TimeEntryFields
}

// Request implements Options
func (o CreateTimeEntryOptions) Request(api Version) (Request, error) {
	const op = "create time entry"
	if err := requireRoute(op, api.TimeEntries.Create); err != nil {
		return Request{}, err
	}
	if err := requireID(op, "workspace_id", o.WorkspaceID); err != nil {
		return Request{}, err
	}
	if o.Start.IsZero() {
		return Request{}, missing(op, "start")
	}
	if o.Stop != nil && !o.Stop.IsZero() && o.Stop.Before(o.Start) {
		return Request{}, invalid(op, "stop", "is before start")
	}
	fields := o.TimeEntryFields
	if fields.Duration == nil {
		fields.Duration = Int64(entryDuration(api, o.Start, fields.Stop))
	}
	b := newBody().
		set("created_with", createdWith(o.CreatedWith)).
		set(api.field("workspace_id", "wid"), o.WorkspaceID).
		set("start", FormatTime(o.Start))
	fields.apply(api, b)
	return withBody(http.MethodPost, api.path(api.TimeEntries.Create, o.WorkspaceID), api.TimeEntries.Envelope, b)
}

// StartTimeEntryOptions starts a running time entry. Start is required by the
// v9 API, where starting is a create with a negative duration.
type StartTimeEntryOptions struct {
	WorkspaceID int64
	Start       time.Time
	ProjectID   *int64
	TaskID      *int64
	Description string
	Tags        []string
	Billable    *bool
	CreatedWith string
}

// Request implements Options
func (o StartTimeEntryOptions) Request(api Version) (Request, error) {
	const op = "start time entry"
	if api.StartEntry == "" {
		return CreateTimeEntryOptions{
			WorkspaceID: o.WorkspaceID,
			Start:       o.Start,
			CreatedWith: o.CreatedWith,
			TimeEntryFields: TimeEntryFields{
				ProjectID:   o.ProjectID,
				TaskID:      o.TaskID,
				Description: o.Description,
				Tags:        o.Tags,
				Billable:    o.Billable,
			},
		}.Request(api)
	}
	if err := requireID(op, "workspace_id", o.WorkspaceID); err != nil {
		return Request{}, err
	}
	b := newBody().
		set("created_with", createdWith(o.CreatedWith)).
		set(api.field("workspace_id", "wid"), o.WorkspaceID).
		setTime("start", &o.Start)
	TimeEntryFields{
		ProjectID:   o.ProjectID,
		TaskID:      o.TaskID,
		Description: o.Description,
		Tags:        o.Tags,
		Billable:    o.Billable,
	}.apply(api, b)
	return withBody(http.MethodPost, api.path(api.StartEntry, o.WorkspaceID), api.TimeEntries.Envelope, b)
}

// StopTimeEntryOptions stops a running time entry. Stop is required by the v9
// API, where stopping is an update of the stop timestamp.
type StopTimeEntryOptions struct {
	WorkspaceID int64
	EntryID     int64
	Stop        time.Time
}

// Request implements Options
func (o StopTimeEntryOptions) Request(api Version) (Request, error) {
	const op = "stop time entry"
	path, err := route(api, op, api.StopEntry, o.WorkspaceID, "time_entry_id", o.EntryID)
	if err != nil {
		return Request{}, err
	}
	if !api.StopWithBody {
		return Request{Method: http.MethodPut, Path: path}, nil
	}
	if o.Stop.IsZero() {
		return Request{}, missing(op, "stop")
	}
	b := newBody().set("stop", FormatTime(o.Stop))
	return withBody(http.MethodPut, path, "", b)
}

// UpdateTimeEntryOptions changes an existing time entry.
type UpdateTimeEntryOptions struct {
	WorkspaceID int64
	EntryID     int64
	Start       *time.Time
	TimeEntryFields
}

// Request implements Options
func (o UpdateTimeEntryOptions) Request(api Version) (Request, error) {
	const op = "update time entry"
	path, err := route(api, op, api.TimeEntries.Item, o.WorkspaceID, "time_entry_id", o.EntryID)
	if err != nil {
		return Request{}, err
	}
	b := newBody().setTime("start", o.Start)
	o.TimeEntryFields.apply(api, b)
	if b.Len() == 0 {
		return Request{}, invalid(op, "fields", "has nothing to update")
	}
	return withBody(http.MethodPut, path, api.TimeEntries.Envelope, b)
}

// DeleteTimeEntriesOptions deletes one or more time entries in a single request.
type DeleteTimeEntriesOptions struct {
	WorkspaceID int64
	EntryIDs    []int64
}

// DeleteTimeEntriesByID builds DeleteTimeEntriesOptions from ids.
func DeleteTimeEntriesByID(workspaceID int64, ids ...int64) DeleteTimeEntriesOptions {
	return DeleteTimeEntriesOptions{WorkspaceID: workspaceID, EntryIDs: ids}
}

// DeleteTimeEntriesOf builds DeleteTimeEntriesOptions from time entry models.
func DeleteTimeEntriesOf(workspaceID int64, entries ...*TimeEntry) (DeleteTimeEntriesOptions, error) {
	ids, err := TimeEntryIDs(entries...)
	if err != nil {
		return DeleteTimeEntriesOptions{}, err
	}
	return DeleteTimeEntriesOptions{WorkspaceID: workspaceID, EntryIDs: ids}, nil
}

// Request implements Options
func (o DeleteTimeEntriesOptions) Request(api Version) (Request, error) {
	tpl := api.TimeEntries.Item
	if len(o.EntryIDs) > 1 {
		tpl = api.TimeEntries.Items
	}
	path, err := route(api, "delete time entries", tpl, o.WorkspaceID, "time_entry_ids", o.EntryIDs...)
	if err != nil {
		return Request{}, err
	}
	return del(path), nil
}

// entryDuration derives the duration field: elapsed seconds for a stopped
// entry, otherwise the running marker of the version (-1 on v9, the negated
// start epoch on v8).
func entryDuration(api Version, start time.Time, stop *time.Time) int64 {
	if stop != nil && !stop.IsZero() {
		return int64(stop.Sub(start) / time.Second)
	}
	if api.LegacyFields {
		return -start.Unix()
	}
	return -1
}

func createdWith(s string) string {
	if s == "" {
		return DefaultCreatedWith
	}
	return s
}
