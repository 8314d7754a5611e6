package cmd

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/togglr/filter"
	"github.com/s0up4200/togglr/toggl"
)

var (
	since      string
	until      string
	filterExpr string

	entryProject  int64
	entryTags     []string
	entryBillable bool
)

// entriesCmd groups time entry commands
var entriesCmd = &cobra.Command{
	Use:     "entries",
	Aliases: []string{"e"},
	Short:   "Track and inspect time entries",
}

var entriesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List time entries, optionally filtered",
	Long: `List time entries between --since and --until.

Both accept dates ("2024-01-31") or natural language ("yesterday", "3 days ago",
"last month"). --filter takes a named filter from the config file or an
expression, for example:

  togglr entries list --since "last week" --filter 'hasTag("meeting") && Hours > 1'
  togglr entries list --filter 'project:Website and billable:true'
  togglr entries list --filter 'client:"Acme Corp" and tag!:internal'`,
	Args: cobra.NoArgs,
	RunE: runEntriesList,
}

var entriesFiltersCmd = &cobra.Command{
	Use:   "filters",
	Short: "Show configured filters and the variables expressions can use",
	Args:  cobra.NoArgs,
	RunE:  runEntriesFilters,
}

var entriesCurrentCmd = &cobra.Command{
	Use:   "current",
	Short: "Show the running time entry",
	Args:  cobra.NoArgs,
	RunE:  runEntriesCurrent,
}

var entriesStartCmd = &cobra.Command{
	Use:   "start [DESCRIPTION]",
	Short: "Start tracking a new time entry",
	RunE:  runEntriesStart,
}

var entriesStopCmd = &cobra.Command{
	Use:   "stop [ID]",
	Short: "Stop a time entry (the running one by default)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runEntriesStop,
}

var entriesDeleteCmd = &cobra.Command{
	Use:   "delete ID [ID...]",
	Short: "Delete one or more time entries",
	Long: `Delete one or more time entries in a single request.

Ids may be given as separate arguments or comma separated: togglr entries delete 1,2,3`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEntriesDelete,
}

func init() {
	entriesListCmd.Flags().StringVar(&since, "since", "", "start of the range (default one week before --until)")
	entriesListCmd.Flags().StringVar(&until, "until", "", "end of the range (default now)")
	entriesListCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter name or expression")

	entriesStartCmd.Flags().Int64VarP(&entryProject, "project", "p", 0, "project id")
	entriesStartCmd.Flags().StringSliceVarP(&entryTags, "tags", "t", nil, "tags to attach")
	entriesStartCmd.Flags().BoolVarP(&entryBillable, "billable", "b", false, "mark the entry billable")

	entriesCmd.AddCommand(entriesListCmd, entriesFiltersCmd, entriesCurrentCmd, entriesStartCmd, entriesStopCmd, entriesDeleteCmd)
	rootCmd.AddCommand(entriesCmd)
}

func runEntriesList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	now := time.Now()

	start, end, err := filter.ParseRange(since, until, now)
	if err != nil {
		return err
	}

	expression := filterExpr
	if expression == "" {
		expression = cfg.Filter.Default
	}

	// Compile before fetching so a bad expression costs no requests.
	mgr := filter.NewManager()
	defer mgr.Close(context.Background())
	if err := mgr.RegisterFilters(cfg.Filter.Presets); err != nil {
		return err
	}
	if expression != "" {
		if _, err := mgr.Resolve(expression); err != nil {
			return fmt.Errorf("invalid filter expression: %w", err)
		}
	}

	logger.Debug().Time("since", start).Time("until", end).Str("filter", expression).Msg("Listing time entries")

	resp, err := api.TimeEntries.List(ctx, start, end)
	if err != nil {
		return fmt.Errorf("failed to list time entries: %w", err)
	}
	raw, err := resp.Items()
	if err != nil {
		return err
	}

	names, err := loadNames(ctx, raw)
	if err != nil {
		return err
	}
	entries := names.Resolve(raw)

	if expression != "" {
		entries, err = mgr.Apply(ctx, expression, entries)
		if err != nil {
			return err
		}
	}

	printEntries(cmd, entries, now)
	return nil
}

// loadNames fetches the workspaces of entries with their projects and
// clients, one workspace at a time per worker.
func loadNames(ctx context.Context, entries []*toggl.TimeEntry) (filter.Names, error) {
	wsFuture := api.Workspaces.ListAsync(ctx, toggl.ListWorkspacesOptions{})

	wanted := make(map[int64]bool)
	for _, e := range entries {
		if e != nil {
			wanted[e.WorkspaceID] = true
		}
	}

	var (
		mu       sync.Mutex
		projects []*toggl.Project
		clients  []*toggl.Client
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Sync.Concurrency)
	for wid := range wanted {
		g.Go(func() error {
			pf := api.Projects.ListAsync(gctx, toggl.ListProjectsOptions{WorkspaceID: wid})
			cf := api.Clients.ListAsync(gctx, toggl.ListClientsOptions{WorkspaceID: wid, Status: toggl.ClientStatusBoth})

			ps, err := awaitItems(pf)
			if err != nil {
				return fmt.Errorf("failed to list projects of workspace %d: %w", wid, err)
			}
			cs, err := awaitItems(cf)
			if err != nil {
				return fmt.Errorf("failed to list clients of workspace %d: %w", wid, err)
			}

			mu.Lock()
			projects = append(projects, ps...)
			clients = append(clients, cs...)
			mu.Unlock()
			return nil
		})
	}

	workspaces, wsErr := awaitItems(wsFuture)
	if err := g.Wait(); err != nil {
		return filter.Names{}, err
	}
	if wsErr != nil {
		return filter.Names{}, fmt.Errorf("failed to list workspaces: %w", wsErr)
	}

	return filter.NewNames(workspaces, projects, clients), nil
}

func awaitItems[T any](f *toggl.Future[*toggl.ListResponse[T]]) ([]*T, error) {
	resp, err := f.Await()
	if err != nil {
		return nil, err
	}
	return resp.Items()
}

func printEntries(cmd *cobra.Command, entries []filter.Entry, now time.Time) {
	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(out, "No time entries found.")
		return
	}

	fmt.Fprintf(out, "Found %s:\n\n", plural(len(entries), "time entry"))
	t := newTable(out, "%-12v %-17v %-10v %-20v %v", "ID", "START", "DURATION", "PROJECT", "DESCRIPTION")

	var total time.Duration
	for _, e := range entries {
		elapsed := e.Elapsed(now)
		total += elapsed

		duration := formatDuration(elapsed)
		if e.IsRunning() {
			duration = styleRunning.Render(duration)
		}
		project := e.Project
		if project == "" {
			project = "-"
		}
		t.row(e.ID, e.Start.Local().Format("2006-01-02 15:04"), duration, truncate(project, 20), truncate(e.Description, 30))
	}
	t.close()

	fmt.Fprintf(out, "Total: %s\n", styleDuration.Render(formatDuration(total)))
}

func runEntriesFilters(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	mgr := filter.NewManager()
	defer mgr.Close(context.Background())
	if err := mgr.RegisterFilters(cfg.Filter.Presets); err != nil {
		return err
	}

	names := mgr.ListFilters()
	if len(names) == 0 {
		fmt.Fprintln(out, "No filters configured.")
	} else {
		fmt.Fprintln(out, styleHeader.Render("Filters"))
		for _, name := range names {
			f, _ := mgr.GetFilter(name)
			marker := ""
			if cfg.Filter.Default == name {
				marker = styleMuted.Render(" (default)")
			}
			fmt.Fprintf(out, "  • %s%s: %s\n", name, marker, f.Expression())
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, styleHeader.Render("Variables"))
	fmt.Fprintf(out, "  %s\n", strings.Join(filter.Variables(), ", "))
	return nil
}

func runEntriesCurrent(cmd *cobra.Command, args []string) error {
	resp, err := api.TimeEntries.Current(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to get current time entry: %w", err)
	}
	entry, err := resp.Body()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if entry == nil {
		fmt.Fprintln(out, styleMuted.Render("No time entry is running."))
		return nil
	}

	description := entry.Description
	if description == "" {
		description = "(no description)"
	}
	fmt.Fprintf(out, "%s %s (ID: %d)\n", styleRunning.Render("● Running"), description, entry.ID)
	fmt.Fprintf(out, "  Started: %s\n", entry.Start.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(out, "  Elapsed: %s\n", styleDuration.Render(formatDuration(entry.Elapsed(time.Now()))))
	if len(entry.Tags) > 0 {
		fmt.Fprintf(out, "  Tags:    %s\n", strings.Join(entry.Tags, ", "))
	}
	return nil
}

func runEntriesStart(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	wid, err := resolveWorkspace(ctx)
	if err != nil {
		return err
	}

	opts := toggl.StartTimeEntryOptions{
		WorkspaceID: wid,
		Start:       time.Now(),
		Description: strings.Join(args, " "),
		Tags:        entryTags,
		CreatedWith: "togglr",
	}
	if cmd.Flags().Changed("project") {
		opts.ProjectID = &entryProject
	}
	if cmd.Flags().Changed("billable") {
		opts.Billable = &entryBillable
	}

	resp, err := api.TimeEntries.StartWith(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to start time entry: %w", err)
	}
	entry, err := bodyOf(resp, "time entry")
	if err != nil {
		return err
	}

	logger.Info().Int64("id", entry.ID).Str("description", entry.Description).Msg("Time entry started")
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Started time entry %d at %s\n", entry.ID, entry.Start.Local().Format("15:04"))
	return nil
}

func runEntriesStop(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	var (
		id  int64
		wid = cfg.Toggl.WorkspaceID
	)
	if len(args) == 1 {
		var err error
		if id, err = parseID(args[0]); err != nil {
			return err
		}
		if wid == 0 {
			if wid, err = resolveWorkspace(ctx); err != nil {
				return err
			}
		}
	} else {
		resp, err := api.TimeEntries.Current(ctx)
		if err != nil {
			return fmt.Errorf("failed to get current time entry: %w", err)
		}
		current, err := resp.Body()
		if err != nil {
			return err
		}
		if current == nil {
			fmt.Fprintln(out, styleMuted.Render("No time entry is running."))
			return nil
		}
		id, wid = current.ID, current.WorkspaceID
	}

	resp, err := api.TimeEntries.Stop(ctx, wid, id)
	if err != nil {
		return fmt.Errorf("failed to stop time entry %d: %w", id, err)
	}
	entry, err := bodyOf(resp, "time entry")
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "✓ Stopped time entry %d after %s\n", entry.ID, styleDuration.Render(formatDuration(entry.Elapsed(time.Now()))))
	return nil
}

func runEntriesDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	ids, err := parseIDs(args)
	if err != nil {
		return err
	}
	wid, err := resolveWorkspace(ctx)
	if err != nil {
		return err
	}

	if _, err := api.TimeEntries.Delete(ctx, wid, ids...); err != nil {
		return fmt.Errorf("failed to delete time entries: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted %s\n", plural(len(ids), "time entry"))
	return nil
}
