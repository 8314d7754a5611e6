package store

import (
	"context"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/togglr/toggl"
)

// SyncOptions selects what Sync copies
type SyncOptions struct {
	Since time.Time
	Until time.Time
	// WorkspaceID limits the sync to one workspace; 0 syncs all of them.
	WorkspaceID int64
	Concurrency int
	Logger      zerolog.Logger
}

// SyncStats counts the records handed to the sink
type SyncStats struct {
	Workspaces  int
	Clients     int
	Projects    int
	TimeEntries int
}

// Sync copies workspaces, their clients and projects, and the time entries
// between Since and Until from api into sink. Workspaces are fetched
// concurrently; the first error cancels the rest.
func Sync(ctx context.Context, api *toggl.API, sink Sink, opts SyncOptions) (SyncStats, error) {
	var stats SyncStats
	if api == nil || sink == nil {
		return stats, toggl.ErrNilArgument
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	log := opts.Logger

	resp, err := api.Workspaces.List(ctx)
	if err != nil {
		return stats, fmt.Errorf("failed to list workspaces: %w", err)
	}
	all, err := resp.Items()
	if err != nil {
		return stats, fmt.Errorf("failed to parse workspaces: %w", err)
	}

	workspaces := make([]*toggl.Workspace, 0, len(all))
	selected := make(map[int64]bool, len(all))
	for _, ws := range all {
		if ws == nil || (opts.WorkspaceID != 0 && ws.ID != opts.WorkspaceID) {
			continue
		}
		workspaces = append(workspaces, ws)
		selected[ws.ID] = true
	}
	if opts.WorkspaceID != 0 && len(workspaces) == 0 {
		return stats, fmt.Errorf("workspace %d not found", opts.WorkspaceID)
	}

	if err := sink.UpsertWorkspaces(ctx, workspaces); err != nil {
		return stats, err
	}
	stats.Workspaces = len(workspaces)

	var clients, projects atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)

	for _, ws := range workspaces {
		g.Go(func() error {
			n, err := syncClients(gctx, api, sink, ws.ID)
			if err != nil {
				return fmt.Errorf("workspace %d: %w", ws.ID, err)
			}
			clients.Add(int64(n))

			n, err = syncProjects(gctx, api, sink, ws.ID)
			if err != nil {
				return fmt.Errorf("workspace %d: %w", ws.ID, err)
			}
			projects.Add(int64(n))

			log.Debug().Int64("workspace_id", ws.ID).Str("workspace", ws.Name).Msg("Synced workspace")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return stats, err
	}
	stats.Clients = int(clients.Load())
	stats.Projects = int(projects.Load())

	entriesResp, err := api.TimeEntries.List(ctx, opts.Since, opts.Until)
	if err != nil {
		return stats, fmt.Errorf("failed to list time entries: %w", err)
	}
	entries, err := entriesResp.Items()
	if err != nil {
		return stats, fmt.Errorf("failed to parse time entries: %w", err)
	}

	kept := entries[:0]
	for _, e := range entries {
		if e != nil && selected[e.WorkspaceID] {
			kept = append(kept, e)
		}
	}
	if err := sink.UpsertTimeEntries(ctx, kept); err != nil {
		return stats, err
	}
	stats.TimeEntries = len(kept)

	log.Info().
		Int("workspaces", stats.Workspaces).
		Int("clients", stats.Clients).
		Int("projects", stats.Projects).
		Int("time_entries", stats.TimeEntries).
		Msg("Sync complete")

	return stats, nil
}

func syncClients(ctx context.Context, api *toggl.API, sink Sink, workspaceID int64) (int, error) {
	resp, err := api.Clients.ListWith(ctx, toggl.ListClientsOptions{
		WorkspaceID: workspaceID,
		Status:      toggl.ClientStatusBoth,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to list clients: %w", err)
	}
	clients, err := resp.Items()
	if err != nil {
		return 0, fmt.Errorf("failed to parse clients: %w", err)
	}
	return len(clients), sink.UpsertClients(ctx, clients)
}

func syncProjects(ctx context.Context, api *toggl.API, sink Sink, workspaceID int64) (int, error) {
	resp, err := api.Projects.List(ctx, workspaceID)
	if err != nil {
		// Workspaces without project access answer 403.
		if toggl.StatusCode(err) == http.StatusForbidden {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to list projects: %w", err)
	}
	projects, err := resp.Items()
	if err != nil {
		return 0, fmt.Errorf("failed to parse projects: %w", err)
	}
	return len(projects), sink.UpsertProjects(ctx, projects)
}
