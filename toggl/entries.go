package toggl

import (
	"context"
	"time"
)

// TimeEntriesEndpoint manages time entries
type TimeEntriesEndpoint struct {
	res resource[TimeEntry]
	now func() time.Time
}

// List returns the user's time entries that started within [start, end]
func (e *TimeEntriesEndpoint) List(ctx context.Context, start, end time.Time) (*ListResponse[TimeEntry], error) {
	return e.ListWith(ctx, ListTimeEntriesOptions{Start: start, End: end})
}

// ListWith returns the time entries matching opts
func (e *TimeEntriesEndpoint) ListWith(ctx context.Context, opts ListTimeEntriesOptions) (*ListResponse[TimeEntry], error) {
	return e.res.many(ctx, opts)
}

// ListAsync is the asynchronous form of ListWith
func (e *TimeEntriesEndpoint) ListAsync(ctx context.Context, opts ListTimeEntriesOptions) *Future[*ListResponse[TimeEntry]] {
	return async(ctx, opts, e.ListWith)
}

// Get returns one time entry
func (e *TimeEntriesEndpoint) Get(ctx context.Context, entryID int64) (*Response[TimeEntry], error) {
	return e.GetWith(ctx, GetTimeEntryOptions{EntryID: entryID})
}

// GetWith returns the time entry described by opts
func (e *TimeEntriesEndpoint) GetWith(ctx context.Context, opts GetTimeEntryOptions) (*Response[TimeEntry], error) {
	return e.res.one(ctx, opts)
}

// GetAsync is the asynchronous form of GetWith
func (e *TimeEntriesEndpoint) GetAsync(ctx context.Context, opts GetTimeEntryOptions) *Future[*Response[TimeEntry]] {
	return async(ctx, opts, e.GetWith)
}

// Current returns the running time entry. The body is nil when nothing runs.
func (e *TimeEntriesEndpoint) Current(ctx context.Context) (*Response[TimeEntry], error) {
	return e.res.one(ctx, CurrentTimeEntryOptions{})
}

// CurrentAsync is the asynchronous form of Current
func (e *TimeEntriesEndpoint) CurrentAsync(ctx context.Context) *Future[*Response[TimeEntry]] {
	return async(ctx, CurrentTimeEntryOptions{}, func(ctx context.Context, _ CurrentTimeEntryOptions) (*Response[TimeEntry], error) {
		return e.Current(ctx)
	})
}

// Create records a finished time entry
func (e *TimeEntriesEndpoint) Create(ctx context.Context, workspaceID int64, description string, start, stop time.Time) (*Response[TimeEntry], error) {
	return e.CreateWith(ctx, CreateTimeEntryOptions{
		WorkspaceID:     workspaceID,
		Start:           start,
		TimeEntryFields: TimeEntryFields{Description: description, Stop: &stop},
	})
}

// CreateWith records the time entry described by opts
func (e *TimeEntriesEndpoint) CreateWith(ctx context.Context, opts CreateTimeEntryOptions) (*Response[TimeEntry], error) {
	return e.res.one(ctx, opts)
}

// CreateAsync is the asynchronous form of CreateWith
func (e *TimeEntriesEndpoint) CreateAsync(ctx context.Context, opts CreateTimeEntryOptions) *Future[*Response[TimeEntry]] {
	return async(ctx, opts, e.CreateWith)
}

// Start starts a running time entry now
func (e *TimeEntriesEndpoint) Start(ctx context.Context, workspaceID int64, description string) (*Response[TimeEntry], error) {
	return e.StartWith(ctx, StartTimeEntryOptions{WorkspaceID: workspaceID, Description: description, Start: e.now()})
}

// StartWith starts the time entry described by opts
func (e *TimeEntriesEndpoint) StartWith(ctx context.Context, opts StartTimeEntryOptions) (*Response[TimeEntry], error) {
	return e.res.one(ctx, opts)
}

// StartAsync is the asynchronous form of StartWith
func (e *TimeEntriesEndpoint) StartAsync(ctx context.Context, opts StartTimeEntryOptions) *Future[*Response[TimeEntry]] {
	return async(ctx, opts, e.StartWith)
}

// Stop stops a running time entry now
func (e *TimeEntriesEndpoint) Stop(ctx context.Context, workspaceID, entryID int64) (*Response[TimeEntry], error) {
	return e.StopWith(ctx, StopTimeEntryOptions{WorkspaceID: workspaceID, EntryID: entryID, Stop: e.now()})
}

// StopWith stops the time entry described by opts
func (e *TimeEntriesEndpoint) StopWith(ctx context.Context, opts StopTimeEntryOptions) (*Response[TimeEntry], error) {
	return e.res.one(ctx, opts)
}

// StopAsync is the asynchronous form of StopWith
func (e *TimeEntriesEndpoint) StopAsync(ctx context.Context, opts StopTimeEntryOptions) *Future[*Response[TimeEntry]] {
	return async(ctx, opts, e.StopWith)
}

// UpdateWith applies opts to a time entry
func (e *TimeEntriesEndpoint) UpdateWith(ctx context.Context, opts UpdateTimeEntryOptions) (*Response[TimeEntry], error) {
	return e.res.one(ctx, opts)
}

// UpdateAsync is the asynchronous form of UpdateWith
func (e *TimeEntriesEndpoint) UpdateAsync(ctx context.Context, opts UpdateTimeEntryOptions) *Future[*Response[TimeEntry]] {
	return async(ctx, opts, e.UpdateWith)
}

// Delete deletes one or more time entries with a single request
func (e *TimeEntriesEndpoint) Delete(ctx context.Context, workspaceID int64, entryIDs ...int64) (*Response[NoContent], error) {
	return e.DeleteWith(ctx, DeleteTimeEntriesByID(workspaceID, entryIDs...))
}

// DeleteEntries deletes the given time entry models with a single request
func (e *TimeEntriesEndpoint) DeleteEntries(ctx context.Context, workspaceID int64, entries ...*TimeEntry) (*Response[NoContent], error) {
	opts, err := DeleteTimeEntriesOf(workspaceID, entries...)
	if err != nil {
		return nil, err
	}
	return e.DeleteWith(ctx, opts)
}

// DeleteWith deletes the time entries described by opts
func (e *TimeEntriesEndpoint) DeleteWith(ctx context.Context, opts DeleteTimeEntriesOptions) (*Response[NoContent], error) {
	return noContent(e.res).one(ctx, opts)
}

// DeleteAsync is the asynchronous form of DeleteWith
func (e *TimeEntriesEndpoint) DeleteAsync(ctx context.Context, opts DeleteTimeEntriesOptions) *Future[*Response[NoContent]] {
	return async(ctx, opts, e.DeleteWith)
}
