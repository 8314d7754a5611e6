package toggl

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustObject(t *testing.T, raw string) Object {
	t.Helper()
	obj, err := DecodeObject([]byte(raw))
	require.NoError(t, err)
	return obj
}

func TestParseNilObject(t *testing.T) {
	client, err := ParseClient(nil)
	assert.NoError(t, err)
	assert.Nil(t, client)

	project, err := ParseProject(nil)
	assert.NoError(t, err)
	assert.Nil(t, project)

	entry, err := ParseTimeEntry(nil)
	assert.NoError(t, err)
	assert.Nil(t, entry)

	ws, err := ParseWorkspace(nil)
	assert.NoError(t, err)
	assert.Nil(t, ws)

	tag, err := ParseTag(nil)
	assert.NoError(t, err)
	assert.Nil(t, tag)

	user, err := ParseUser(nil)
	assert.NoError(t, err)
	assert.Nil(t, user)

	prefs, err := ParsePreferences(nil)
	assert.NoError(t, err)
	assert.Nil(t, prefs)
}

func TestParseClient(t *testing.T) {
	obj := mustObject(t, `{"id":7,"wid":42,"name":"Acme","archived":true,"notes":"vip","at":"2024-03-01T10:00:00+00:00"}`)

	client, err := ParseClient(obj)
	require.NoError(t, err)
	require.NotNil(t, client)

	assert.Equal(t, int64(7), client.ID)
	assert.Equal(t, int64(42), client.WorkspaceID)
	assert.Equal(t, "Acme", client.Name)
	assert.True(t, client.Archived)
	assert.Equal(t, "vip", client.Notes)
	assert.True(t, client.At.Equal(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)))
}

func TestParseProject(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{
			name: "current keys",
			raw:  `{"id":3,"workspace_id":42,"client_id":7,"name":"Site","billable":true,"is_private":true,"active":true,"color":"#06aaf5","estimated_hours":12}`,
		},
		{
			name: "legacy keys",
			raw:  `{"id":3,"wid":42,"cid":7,"name":"Site","billable":true,"is_private":true,"active":true,"hex_color":"#06aaf5","estimated_hours":12}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			project, err := ParseProject(mustObject(t, tt.raw))
			require.NoError(t, err)
			require.NotNil(t, project)

			assert.Equal(t, int64(3), project.ID)
			assert.Equal(t, int64(42), project.WorkspaceID)
			require.NotNil(t, project.ClientID)
			assert.Equal(t, int64(7), *project.ClientID)
			assert.True(t, project.HasClient())
			assert.Equal(t, "Site", project.Name)
			assert.True(t, project.Billable)
			assert.True(t, project.Private)
			assert.True(t, project.Active)
			assert.Equal(t, "#06aaf5", project.Color)
			require.NotNil(t, project.EstimatedHours)
			assert.Equal(t, int64(12), *project.EstimatedHours)
			assert.Nil(t, project.ActualHours)
		})
	}
}

func TestParseProjectWithoutClient(t *testing.T) {
	project, err := ParseProject(mustObject(t, `{"id":3,"workspace_id":42,"client_id":null,"name":"Internal"}`))
	require.NoError(t, err)
	assert.Nil(t, project.ClientID)
	assert.False(t, project.HasClient())
}

func TestParseTimeEntry(t *testing.T) {
	t.Run("stopped", func(t *testing.T) {
		obj := mustObject(t, `{
			"id": 99,
			"workspace_id": 42,
			"project_id": 3,
			"user_id": 5,
			"billable": false,
			"start": "2024-01-15T09:00:00.123Z",
			"stop": "2024-01-15T10:30:00Z",
			"duration": 5400,
			"description": "Planning",
			"tags": ["meeting", "q1"],
			"tag_ids": [11, 12],
			"duronly": true
		}`)

		entry, err := ParseTimeEntry(obj)
		require.NoError(t, err)
		require.NotNil(t, entry)

		assert.Equal(t, int64(99), entry.ID)
		assert.Equal(t, int64(42), entry.WorkspaceID)
		require.NotNil(t, entry.ProjectID)
		assert.Equal(t, int64(3), *entry.ProjectID)
		assert.Nil(t, entry.TaskID)
		assert.Equal(t, int64(5), entry.UserID)
		assert.Equal(t, 123*time.Millisecond, time.Duration(entry.Start.Nanosecond()))
		require.NotNil(t, entry.Stop)
		assert.Equal(t, int64(5400), entry.Duration)
		assert.Equal(t, "Planning", entry.Description)
		assert.Equal(t, []string{"meeting", "q1"}, entry.Tags)
		assert.Equal(t, []int64{11, 12}, entry.TagIDs)
		assert.True(t, entry.DurOnly)
		assert.False(t, entry.IsRunning())
		assert.Equal(t, 90*time.Minute, entry.Elapsed(time.Now()))
	})

	t.Run("running legacy", func(t *testing.T) {
		obj := mustObject(t, `{"id":1,"wid":42,"pid":3,"tid":8,"uid":5,"start":"2024-01-15T09:00:00+00:00","duration":-1705309200}`)

		entry, err := ParseTimeEntry(obj)
		require.NoError(t, err)

		assert.Equal(t, int64(42), entry.WorkspaceID)
		assert.Equal(t, int64(3), *entry.ProjectID)
		assert.Equal(t, int64(8), *entry.TaskID)
		assert.Equal(t, int64(5), entry.UserID)
		assert.Nil(t, entry.Stop)
		assert.True(t, entry.IsRunning())

		now := entry.Start.Add(25 * time.Minute)
		assert.Equal(t, 25*time.Minute, entry.Elapsed(now))
	})

	t.Run("malformed timestamp", func(t *testing.T) {
		_, err := ParseTimeEntry(mustObject(t, `{"id":1,"start":"yesterday"}`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "start")
	})
}

func TestParseWorkspace(t *testing.T) {
	ws, err := ParseWorkspace(mustObject(t, `{"id":42,"name":"Team","premium":true,"admin":true,"organization_id":9,"default_currency":"EUR","default_hourly_rate":85.5}`))
	require.NoError(t, err)

	assert.Equal(t, int64(42), ws.ID)
	assert.Equal(t, "Team", ws.Name)
	assert.True(t, ws.Premium)
	assert.True(t, ws.Admin)
	require.NotNil(t, ws.OrganizationID)
	assert.Equal(t, int64(9), *ws.OrganizationID)
	assert.Equal(t, "EUR", ws.DefaultCurrency)
	require.NotNil(t, ws.DefaultHourlyRate)
	assert.InDelta(t, 85.5, *ws.DefaultHourlyRate, 0.0001)
}

func TestParseUser(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"current keys", `{"id":5,"email":"a@b.c","fullname":"Ada","timezone":"Europe/Oslo","default_workspace_id":42,"beginning_of_week":1}`},
		{"legacy keys", `{"id":5,"email":"a@b.c","fullname":"Ada","timezone":"Europe/Oslo","default_wid":42,"beginning_of_week":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := ParseUser(mustObject(t, tt.raw))
			require.NoError(t, err)

			assert.Equal(t, int64(5), user.ID)
			assert.Equal(t, "a@b.c", user.Email)
			assert.Equal(t, "Ada", user.FullName)
			assert.Equal(t, "Europe/Oslo", user.Timezone)
			assert.Equal(t, int64(42), user.DefaultWorkspaceID)
			assert.Equal(t, time.Monday, user.BeginningOfWeek)
		})
	}
}

func TestParseUserBeginningOfWeek(t *testing.T) {
	tests := []struct {
		raw  string
		want time.Weekday
	}{
		{`{"beginning_of_week":0}`, time.Sunday},
		{`{"beginning_of_week":6}`, time.Saturday},
		{`{"beginning_of_week":8}`, time.Monday},
		{`{"beginning_of_week":-1}`, time.Saturday},
		{`{"beginning_of_week":-7}`, time.Sunday},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			user, err := ParseUser(mustObject(t, tt.raw))
			require.NoError(t, err)
			assert.Equal(t, tt.want, user.BeginningOfWeek)
			assert.NotContains(t, user.BeginningOfWeek.String(), "%!")
		})
	}
}

func TestParsePreferences(t *testing.T) {
	prefs, err := ParsePreferences(mustObject(t, `{"date_format":"YYYY-MM-DD","timeofday_format":"H:mm","duration_format":"decimal"}`))
	require.NoError(t, err)

	assert.Equal(t, "YYYY-MM-DD", prefs.DateFormat)
	assert.Equal(t, "H:mm", prefs.TimeOfDayFormat)
	assert.Equal(t, DurationFormatDecimal, prefs.DurationFormat)
	assert.True(t, prefs.DurationFormat.Valid())
	assert.False(t, DurationFormat("roman").Valid())
}

func TestIDHelpers(t *testing.T) {
	ids, err := ProjectIDs(&Project{ID: 1}, &Project{ID: 2}, &Project{ID: 3})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, ids)

	ids, err = TimeEntryIDs()
	require.NoError(t, err)
	assert.Empty(t, ids)

	_, err = ProjectIDs(&Project{ID: 1}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNilArgument))
	assert.Contains(t, err.Error(), "item 1")

	_, err = TimeEntryIDs(nil)
	assert.ErrorIs(t, err, ErrNilArgument)
}
