//go:build e2e

package store

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/s0up4200/togglr/toggl"
)

func startMySQL(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "mysql:8.0",
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_DATABASE":      "testdb",
			"MYSQL_ROOT_PASSWORD": "secret",
			"MYSQL_USER":          "test",
			"MYSQL_PASSWORD":      "pass",
		},
		WaitingFor: wait.ForListeningPort("3306/tcp").WithStartupTimeout(90 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err, "failed to start mysql container")
	t.Cleanup(func() { _ = mysqlC.Terminate(context.Background()) })

	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306/tcp")
	require.NoError(t, err)

	return fmt.Sprintf("test:pass@tcp(%s:%s)/testdb", host, port.Port())
}

func TestSyncToMySQL(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping in short mode")
	}
	ctx := context.Background()
	dsn := startMySQL(t)

	var (
		st  *Store
		err error
	)
	// The port opens before mysqld accepts logins.
	require.Eventually(t, func() bool {
		st, err = Open(ctx, dsn, zerolog.Nop())
		return err == nil
	}, 60*time.Second, time.Second)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.Migrate(ctx))
	require.NoError(t, st.Migrate(ctx), "migrations must be re-runnable")

	api := togglRoutes(t, syncRoutes)
	opts := SyncOptions{
		Since:       time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
		Until:       time.Date(2025, 8, 2, 0, 0, 0, 0, time.UTC),
		Concurrency: 2,
		Logger:      zerolog.Nop(),
	}

	_, err = Sync(ctx, api, st, opts)
	require.NoError(t, err)

	normalized, err := NormalizeDSN(dsn)
	require.NoError(t, err)
	db, err := sql.Open("mysql", normalized)
	require.NoError(t, err)
	defer db.Close()

	count := func(table string) int {
		var n int
		require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n))
		return n
	}
	assert.Equal(t, 2, count("toggl_workspaces"))
	assert.Equal(t, 1, count("toggl_clients"))
	assert.Equal(t, 2, count("toggl_projects"))
	assert.Equal(t, 2, count("toggl_time_entries"))

	// Second run upserts instead of duplicating.
	_, err = Sync(ctx, api, st, opts)
	require.NoError(t, err)
	assert.Equal(t, 2, count("toggl_time_entries"))

	var (
		tags string
		stop sql.NullTime
	)
	require.NoError(t, db.QueryRowContext(ctx, "SELECT tags, stop FROM toggl_time_entries WHERE id = ?", 1001).Scan(&tags, &stop))
	assert.Equal(t, "[]", tags)
	assert.False(t, stop.Valid)

	require.NoError(t, st.UpsertTimeEntries(ctx, []*toggl.TimeEntry{{
		ID:          1001,
		WorkspaceID: 2,
		Description: "done",
		Tags:        []string{"meeting"},
		Start:       opts.Since,
		Duration:    60,
	}}))
	var desc string
	require.NoError(t, db.QueryRowContext(ctx, "SELECT description, tags FROM toggl_time_entries WHERE id = ?", 1001).Scan(&desc, &tags))
	assert.Equal(t, "done", desc)
	assert.Equal(t, `["meeting"]`, tags)
}
