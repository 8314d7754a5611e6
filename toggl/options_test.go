package toggl

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestPaths(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		api    Version
		opts   Options
		method string
		path   string
		body   string
	}{
		{
			name:   "v9 list clients",
			api:    V9,
			opts:   ListClientsOptions{WorkspaceID: 42},
			method: http.MethodGet,
			path:   "/api/v9/workspaces/42/clients",
		},
		{
			name:   "v9 create client",
			api:    V9,
			opts:   CreateClientOptions{WorkspaceID: 42, Name: "Acme"},
			method: http.MethodPost,
			path:   "/api/v9/workspaces/42/clients",
			body:   `{"wid":42,"name":"Acme"}`,
		},
		{
			name:   "v8 create client",
			api:    V8,
			opts:   CreateClientOptions{WorkspaceID: 42, Name: "Acme", Notes: "vip"},
			method: http.MethodPost,
			path:   "/api/v8/clients",
			body:   `{"client":{"wid":42,"name":"Acme","notes":"vip"}}`,
		},
		{
			name:   "v9 update client",
			api:    V9,
			opts:   UpdateClientOptions{WorkspaceID: 42, ClientID: 7, Name: "Acme Corp"},
			method: http.MethodPut,
			path:   "/api/v9/workspaces/42/clients/7",
			body:   `{"wid":42,"name":"Acme Corp"}`,
		},
		{
			name:   "v8 get client",
			api:    V8,
			opts:   GetClientOptions{ClientID: 7},
			method: http.MethodGet,
			path:   "/api/v8/clients/7",
		},
		{
			name:   "v9 delete client",
			api:    V9,
			opts:   DeleteClientOptions{WorkspaceID: 42, ClientID: 7},
			method: http.MethodDelete,
			path:   "/api/v9/workspaces/42/clients/7",
		},
		{
			name:   "v9 archive client",
			api:    V9,
			opts:   ArchiveClientOptions{WorkspaceID: 42, ClientID: 7},
			method: http.MethodPost,
			path:   "/api/v9/workspaces/42/clients/7/archive",
		},
		{
			name:   "v9 restore client",
			api:    V9,
			opts:   ArchiveClientOptions{WorkspaceID: 42, ClientID: 7, Restore: true},
			method: http.MethodPost,
			path:   "/api/v9/workspaces/42/clients/7/restore",
		},
		{
			name:   "v8 client projects",
			api:    V8,
			opts:   ClientProjectsOptions{ClientID: 7},
			method: http.MethodGet,
			path:   "/api/v8/clients/7/projects",
		},
		{
			name:   "v9 create project",
			api:    V9,
			opts:   CreateProjectOptions{WorkspaceID: 42, Name: "Site", ProjectFields: ProjectFields{ClientID: Int64(7), Billable: Bool(true)}},
			method: http.MethodPost,
			path:   "/api/v9/workspaces/42/projects",
			body:   `{"name":"Site","workspace_id":42,"client_id":7,"billable":true}`,
		},
		{
			name:   "v8 create project",
			api:    V8,
			opts:   CreateProjectOptions{WorkspaceID: 42, Name: "Site", ProjectFields: ProjectFields{ClientID: Int64(7)}},
			method: http.MethodPost,
			path:   "/api/v8/projects",
			body:   `{"project":{"name":"Site","wid":42,"cid":7}}`,
		},
		{
			name:   "v9 update project",
			api:    V9,
			opts:   UpdateProjectOptions{WorkspaceID: 42, ProjectID: 3, ProjectFields: ProjectFields{Active: Bool(false)}},
			method: http.MethodPut,
			path:   "/api/v9/workspaces/42/projects/3",
			body:   `{"active":false}`,
		},
		{
			name:   "v9 delete projects",
			api:    V9,
			opts:   DeleteProjectsByID(42, 1, 2, 3),
			method: http.MethodDelete,
			path:   "/api/v9/workspaces/42/projects/1,2,3",
		},
		{
			name:   "v8 delete projects",
			api:    V8,
			opts:   DeleteProjectsByID(42, 1, 2, 3),
			method: http.MethodDelete,
			path:   "/api/v8/projects/1,2,3",
		},
		{
			name:   "v9 delete one project",
			api:    V9,
			opts:   DeleteProjectsByID(42, 5),
			method: http.MethodDelete,
			path:   "/api/v9/workspaces/42/projects/5",
		},
		{
			name:   "v9 list time entries",
			api:    V9,
			opts:   ListTimeEntriesOptions{Start: start, End: end},
			method: http.MethodGet,
			path:   "/api/v9/me/time_entries",
		},
		{
			name:   "v8 list time entries",
			api:    V8,
			opts:   ListTimeEntriesOptions{},
			method: http.MethodGet,
			path:   "/api/v8/time_entries",
		},
		{
			name:   "v9 current time entry",
			api:    V9,
			opts:   CurrentTimeEntryOptions{},
			method: http.MethodGet,
			path:   "/api/v9/me/time_entries/current",
		},
		{
			name:   "v8 get time entry",
			api:    V8,
			opts:   GetTimeEntryOptions{EntryID: 99},
			method: http.MethodGet,
			path:   "/api/v8/time_entries/99",
		},
		{
			name:   "v9 create time entry",
			api:    V9,
			opts:   CreateTimeEntryOptions{WorkspaceID: 42, Start: start, TimeEntryFields: TimeEntryFields{Description: "Planning", Stop: Time(start.Add(time.Hour))}},
			method: http.MethodPost,
			path:   "/api/v9/workspaces/42/time_entries",
			body:   `{"created_with":"togglr","workspace_id":42,"start":"2024-01-01T00:00:00Z","description":"Planning","stop":"2024-01-01T01:00:00Z","duration":3600}`,
		},
		{
			name:   "v9 start time entry",
			api:    V9,
			opts:   StartTimeEntryOptions{WorkspaceID: 42, Start: start, Description: "Focus"},
			method: http.MethodPost,
			path:   "/api/v9/workspaces/42/time_entries",
			body:   `{"created_with":"togglr","workspace_id":42,"start":"2024-01-01T00:00:00Z","description":"Focus","duration":-1}`,
		},
		{
			name:   "v8 start time entry",
			api:    V8,
			opts:   StartTimeEntryOptions{WorkspaceID: 42, Description: "Focus", ProjectID: Int64(3)},
			method: http.MethodPost,
			path:   "/api/v8/time_entries/start",
			body:   `{"time_entry":{"created_with":"togglr","wid":42,"pid":3,"description":"Focus"}}`,
		},
		{
			name:   "v9 stop time entry",
			api:    V9,
			opts:   StopTimeEntryOptions{WorkspaceID: 42, EntryID: 99, Stop: end},
			method: http.MethodPut,
			path:   "/api/v9/workspaces/42/time_entries/99",
			body:   `{"stop":"2024-01-31T00:00:00Z"}`,
		},
		{
			name:   "v8 stop time entry",
			api:    V8,
			opts:   StopTimeEntryOptions{EntryID: 99},
			method: http.MethodPut,
			path:   "/api/v8/time_entries/99/stop",
		},
		{
			name:   "v9 update time entry",
			api:    V9,
			opts:   UpdateTimeEntryOptions{WorkspaceID: 42, EntryID: 99, TimeEntryFields: TimeEntryFields{Tags: []string{"q1"}}},
			method: http.MethodPut,
			path:   "/api/v9/workspaces/42/time_entries/99",
			body:   `{"tags":["q1"]}`,
		},
		{
			name:   "v8 delete time entry",
			api:    V8,
			opts:   DeleteTimeEntriesByID(0, 99),
			method: http.MethodDelete,
			path:   "/api/v8/time_entries/99",
		},
		{
			name:   "v9 delete time entries",
			api:    V9,
			opts:   DeleteTimeEntriesByID(42, 1, 2, 3),
			method: http.MethodDelete,
			path:   "/api/v9/workspaces/42/time_entries/1,2,3",
		},
		{
			name:   "v8 delete time entries",
			api:    V8,
			opts:   DeleteTimeEntriesByID(42, 1, 2, 3),
			method: http.MethodDelete,
			path:   "/api/v8/time_entries/1,2,3",
		},
		{
			name:   "v9 create tag",
			api:    V9,
			opts:   CreateTagOptions{WorkspaceID: 42, Name: "q1"},
			method: http.MethodPost,
			path:   "/api/v9/workspaces/42/tags",
			body:   `{"name":"q1","workspace_id":42}`,
		},
		{
			name:   "v8 update tag",
			api:    V8,
			opts:   UpdateTagOptions{TagID: 11, Name: "q2"},
			method: http.MethodPut,
			path:   "/api/v8/tags/11",
			body:   `{"tag":{"name":"q2"}}`,
		},
		{
			name:   "v9 list workspaces",
			api:    V9,
			opts:   ListWorkspacesOptions{},
			method: http.MethodGet,
			path:   "/api/v9/me/workspaces",
		},
		{
			name:   "v8 list workspaces",
			api:    V8,
			opts:   ListWorkspacesOptions{},
			method: http.MethodGet,
			path:   "/api/v8/workspaces",
		},
		{
			name:   "v8 update workspace",
			api:    V8,
			opts:   UpdateWorkspaceOptions{WorkspaceID: 42, DefaultCurrency: "EUR"},
			method: http.MethodPut,
			path:   "/api/v8/workspaces/42",
			body:   `{"workspace":{"default_currency":"EUR"}}`,
		},
		{
			name:   "v8 update me",
			api:    V8,
			opts:   UpdateMeOptions{FullName: "Ada", DefaultWorkspaceID: 42},
			method: http.MethodPut,
			path:   "/api/v8/me",
			body:   `{"user":{"fullname":"Ada","default_wid":42}}`,
		},
		{
			name:   "v9 update preferences",
			api:    V9,
			opts:   UpdatePreferencesOptions{DurationFormat: DurationFormatImproved},
			method: http.MethodPost,
			path:   "/api/v9/me/preferences",
			body:   `{"duration_format":"improved"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := tt.opts.Request(tt.api)
			require.NoError(t, err)

			assert.Equal(t, tt.method, req.Method)
			assert.Equal(t, tt.path, req.Path)
			if tt.body == "" {
				assert.Nil(t, req.Body)
			} else {
				assert.JSONEq(t, tt.body, string(req.Body))
				assert.Equal(t, tt.body, string(req.Body), "body keys must keep their order")
			}
		})
	}
}

func TestRequestQueries(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	req, err := ListTimeEntriesOptions{Start: start, End: end, Meta: true}.Request(V9)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01T00:00:00Z", req.Query.Get("start_date"))
	assert.Equal(t, "2024-01-31T00:00:00Z", req.Query.Get("end_date"))
	assert.Equal(t, "true", req.Query.Get("meta"))

	req, err = ListTimeEntriesOptions{Start: start, End: end, Meta: true}.Request(V8)
	require.NoError(t, err)
	assert.False(t, req.Query.Has("meta"))

	req, err = ListTimeEntriesOptions{}.Request(V9)
	require.NoError(t, err)
	assert.Nil(t, req.Query)
	assert.Equal(t, "GET /api/v9/me/time_entries", req.String())

	req, err = ListProjectsOptions{WorkspaceID: 42}.Request(V8)
	require.NoError(t, err)
	assert.Equal(t, "both", req.Query.Get("active"))

	req, err = ListProjectsOptions{WorkspaceID: 42}.Request(V9)
	require.NoError(t, err)
	assert.Nil(t, req.Query)

	req, err = ListProjectsOptions{WorkspaceID: 42, Active: Bool(false)}.Request(V9)
	require.NoError(t, err)
	assert.Equal(t, "/api/v9/workspaces/42/projects?active=false", req.URL())

	req, err = ListClientsOptions{WorkspaceID: 42, Status: ClientStatusArchived, Name: "Ac"}.Request(V9)
	require.NoError(t, err)
	assert.Equal(t, "archived", req.Query.Get("status"))
	assert.Equal(t, "Ac", req.Query.Get("name"))

	req, err = MeOptions{WithRelatedData: true}.Request(V9)
	require.NoError(t, err)
	assert.Equal(t, "/api/v9/me?with_related_data=true", req.URL())
}

func TestRequestValidation(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		api   Version
		opts  Options
		field string
	}{
		{"create client without name", V9, CreateClientOptions{WorkspaceID: 42}, "name"},
		{"create client blank name", V9, CreateClientOptions{WorkspaceID: 42, Name: "  "}, "name"},
		{"create client without workspace", V9, CreateClientOptions{Name: "Acme"}, "workspace_id"},
		{"v8 create client without workspace", V8, CreateClientOptions{Name: "Acme"}, "workspace_id"},
		{"get client without id", V9, GetClientOptions{WorkspaceID: 42}, "client_id"},
		{"get client without workspace", V9, GetClientOptions{ClientID: 7}, "workspace_id"},
		{"list clients without workspace", V8, ListClientsOptions{}, "workspace_id"},
		{"update client without name", V9, UpdateClientOptions{WorkspaceID: 42, ClientID: 7}, "name"},
		{"list projects without workspace", V9, ListProjectsOptions{}, "workspace_id"},
		{"create project without name", V8, CreateProjectOptions{WorkspaceID: 42}, "name"},
		{"update project with nothing", V9, UpdateProjectOptions{WorkspaceID: 42, ProjectID: 3}, "fields"},
		{"delete projects without ids", V9, DeleteProjectsOptions{WorkspaceID: 42}, "project_ids"},
		{"delete projects with zero id", V8, DeleteProjectsByID(42, 1, 0), "project_ids"},
		{"list entries without end", V9, ListTimeEntriesOptions{Start: start}, "end_date"},
		{"list entries without start", V9, ListTimeEntriesOptions{End: start}, "start_date"},
		{"list entries end before start", V9, ListTimeEntriesOptions{Start: start, End: start.Add(-time.Hour)}, "end_date"},
		{"create entry without start", V9, CreateTimeEntryOptions{WorkspaceID: 42}, "start"},
		{"create entry stop before start", V9, CreateTimeEntryOptions{WorkspaceID: 42, Start: start, TimeEntryFields: TimeEntryFields{Stop: Time(start.Add(-time.Minute))}}, "stop"},
		{"delete entries without ids", V9, DeleteTimeEntriesOptions{WorkspaceID: 42}, "time_entry_ids"},
		{"delete entries with zero id", V8, DeleteTimeEntriesByID(42, 4, 0), "time_entry_ids"},
		{"start entry without start", V9, StartTimeEntryOptions{WorkspaceID: 42}, "start"},
		{"stop entry without stop", V9, StopTimeEntryOptions{WorkspaceID: 42, EntryID: 99}, "stop"},
		{"stop entry without id", V8, StopTimeEntryOptions{}, "time_entry_id"},
		{"update entry with nothing", V9, UpdateTimeEntryOptions{WorkspaceID: 42, EntryID: 99}, "fields"},
		{"create tag without name", V9, CreateTagOptions{WorkspaceID: 42}, "name"},
		{"delete tag without id", V9, DeleteTagOptions{WorkspaceID: 42}, "tag_id"},
		{"get workspace without id", V9, GetWorkspaceOptions{}, "workspace_id"},
		{"update workspace with nothing", V9, UpdateWorkspaceOptions{WorkspaceID: 42}, "fields"},
		{"update me with nothing", V9, UpdateMeOptions{}, "fields"},
		{"update preferences bad format", V9, UpdatePreferencesOptions{DurationFormat: "roman"}, "duration_format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.opts.Request(tt.api)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrRequiredField)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestRequestUnsupported(t *testing.T) {
	tests := []struct {
		name string
		api  Version
		opts Options
	}{
		{"v8 archive client", V8, ArchiveClientOptions{WorkspaceID: 42, ClientID: 7}},
		{"v9 client projects", V9, ClientProjectsOptions{ClientID: 7}},
		{"v8 preferences", V8, PreferencesOptions{}},
		{"v8 update preferences", V8, UpdatePreferencesOptions{DurationFormat: DurationFormatDecimal}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.opts.Request(tt.api)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrUnsupported)
			assert.NotErrorIs(t, err, ErrRequiredField)
		})
	}
}

func TestRequestIdempotent(t *testing.T) {
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	builders := []Options{
		CreateClientOptions{WorkspaceID: 42, Name: "Acme", Notes: "vip"},
		CreateProjectOptions{WorkspaceID: 42, Name: "Site", ProjectFields: ProjectFields{ClientID: Int64(7), Color: "#fff", Private: Bool(true)}},
		CreateTimeEntryOptions{WorkspaceID: 42, Start: start, TimeEntryFields: TimeEntryFields{Tags: []string{"a", "b"}, Billable: Bool(true)}},
		DeleteProjectsByID(42, 3, 1, 2),
		ListTimeEntriesOptions{Start: start, End: start.Add(24 * time.Hour), Meta: true},
	}

	for _, api := range []Version{V8, V9} {
		for _, b := range builders {
			first, err := b.Request(api)
			require.NoError(t, err)
			second, err := b.Request(api)
			require.NoError(t, err)
			assert.Equal(t, first, second)
		}
	}
}

func TestCreateBodyRoundTrip(t *testing.T) {
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	for _, api := range []Version{V8, V9} {
		t.Run(api.Name, func(t *testing.T) {
			req, err := CreateTimeEntryOptions{
				WorkspaceID: 42,
				Start:       start,
				TimeEntryFields: TimeEntryFields{
					ProjectID:   Int64(3),
					Description: "Review",
					Tags:        []string{"q1"},
					Stop:        Time(start.Add(45 * time.Minute)),
				},
			}.Request(api)
			require.NoError(t, err)

			obj := bodyObject(t, api.TimeEntries.Envelope, req.Body)
			entry, err := ParseTimeEntry(obj)
			require.NoError(t, err)

			assert.Equal(t, int64(42), entry.WorkspaceID)
			assert.Equal(t, int64(3), *entry.ProjectID)
			assert.Equal(t, "Review", entry.Description)
			assert.Equal(t, []string{"q1"}, entry.Tags)
			assert.True(t, entry.Start.Equal(start))
			assert.Equal(t, int64(45*60), entry.Duration)

			req, err = CreateProjectOptions{WorkspaceID: 42, Name: "Site", ProjectFields: ProjectFields{ClientID: Int64(7), Private: Bool(true)}}.Request(api)
			require.NoError(t, err)
			project, err := ParseProject(bodyObject(t, api.Projects.Envelope, req.Body))
			require.NoError(t, err)
			assert.Equal(t, "Site", project.Name)
			assert.Equal(t, int64(42), project.WorkspaceID)
			assert.Equal(t, int64(7), *project.ClientID)
			assert.True(t, project.Private)

			req, err = CreateClientOptions{WorkspaceID: 42, Name: "Acme"}.Request(api)
			require.NoError(t, err)
			client, err := ParseClient(bodyObject(t, api.Clients.Envelope, req.Body))
			require.NoError(t, err)
			assert.Equal(t, "Acme", client.Name)
			assert.Equal(t, int64(42), client.WorkspaceID)
		})
	}
}

func TestRunningDuration(t *testing.T) {
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, int64(-1), entryDuration(V9, start, nil))
	assert.Equal(t, -start.Unix(), entryDuration(V8, start, nil))
	assert.Equal(t, int64(60), entryDuration(V9, start, Time(start.Add(time.Minute))))
}

func TestDeleteProjectsOf(t *testing.T) {
	opts, err := DeleteProjectsOf(42, &Project{ID: 1}, &Project{ID: 2})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, opts.ProjectIDs)

	_, err = DeleteProjectsOf(42, &Project{ID: 1}, nil)
	assert.ErrorIs(t, err, ErrNilArgument)
}

func TestDeleteTimeEntriesOf(t *testing.T) {
	opts, err := DeleteTimeEntriesOf(42, &TimeEntry{ID: 1}, &TimeEntry{ID: 2}, &TimeEntry{ID: 3})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, opts.EntryIDs)

	req, err := opts.Request(V9)
	require.NoError(t, err)
	assert.Equal(t, "DELETE /api/v9/workspaces/42/time_entries/1,2,3", req.String())

	_, err = DeleteTimeEntriesOf(42, nil)
	assert.ErrorIs(t, err, ErrNilArgument)
}

func TestCreateTimeEntryZeroStop(t *testing.T) {
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	req, err := CreateTimeEntryOptions{WorkspaceID: 42, Start: start, TimeEntryFields: TimeEntryFields{Stop: &time.Time{}}}.Request(V9)
	require.NoError(t, err)

	var sent map[string]any
	require.NoError(t, json.Unmarshal(req.Body, &sent))
	assert.NotContains(t, sent, "stop")
	assert.Equal(t, float64(-1), sent["duration"])
}

func TestParseVersion(t *testing.T) {
	for _, name := range []string{"", "v9", "9", "V9"} {
		v, ok := ParseVersion(name)
		assert.True(t, ok, name)
		assert.Equal(t, "v9", v.String())
	}
	v, ok := ParseVersion("v8")
	assert.True(t, ok)
	assert.Equal(t, V8.Prefix, v.Prefix)

	_, ok = ParseVersion("v10")
	assert.False(t, ok)
}

func bodyObject(t *testing.T, envelope string, raw []byte) Object {
	t.Helper()
	obj, err := DecodeObject(raw)
	require.NoError(t, err)
	if envelope != "" {
		obj = obj.Object(envelope)
		require.NotNil(t, obj)
	}
	return obj
}
