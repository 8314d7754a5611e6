package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/togglr/toggl"
)

var showPreferences bool

// meCmd represents the me command
var meCmd = &cobra.Command{
	Use:   "me",
	Short: "Show the account behind the API token",
	RunE:  runMe,
}

// workspacesCmd groups workspace commands
var workspacesCmd = &cobra.Command{
	Use:     "workspaces",
	Aliases: []string{"ws"},
	Short:   "Inspect workspaces",
}

var workspacesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the workspaces you belong to",
	Args:  cobra.NoArgs,
	RunE:  runWorkspacesList,
}

func init() {
	meCmd.Flags().BoolVar(&showPreferences, "preferences", false, "also show display preferences (v9 only)")

	workspacesCmd.AddCommand(workspacesListCmd)
	rootCmd.AddCommand(meCmd, workspacesCmd)
}

func runMe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// Fetch user and preferences concurrently; the preferences future is
	// only awaited when asked for.
	meFuture := api.User.MeAsync(ctx, toggl.MeOptions{})
	var prefsFuture *toggl.Future[*toggl.Response[toggl.Preferences]]
	if showPreferences {
		prefsFuture = api.User.PreferencesAsync(ctx)
	}

	resp, err := meFuture.Await()
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	me, err := bodyOf(resp, "user")
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, styleHeader.Render(me.FullName))
	fmt.Fprintf(out, "  Email:             %s\n", me.Email)
	fmt.Fprintf(out, "  ID:                %d\n", me.ID)
	fmt.Fprintf(out, "  Default workspace: %d\n", me.DefaultWorkspaceID)
	fmt.Fprintf(out, "  Timezone:          %s\n", me.Timezone)
	fmt.Fprintf(out, "  Week starts:       %s\n", me.BeginningOfWeek)

	if prefsFuture == nil {
		return nil
	}
	prefsResp, err := prefsFuture.Await()
	if err != nil {
		return fmt.Errorf("failed to get preferences: %w", err)
	}
	prefs, err := prefsResp.Body()
	if err != nil {
		return err
	}
	if prefs != nil {
		fmt.Fprintf(out, "  Date format:       %s\n", prefs.DateFormat)
		fmt.Fprintf(out, "  Time format:       %s\n", prefs.TimeOfDayFormat)
		fmt.Fprintf(out, "  Duration format:   %s\n", prefs.DurationFormat)
	}
	return nil
}

func runWorkspacesList(cmd *cobra.Command, args []string) error {
	resp, err := api.Workspaces.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list workspaces: %w", err)
	}
	workspaces, err := resp.Items()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(workspaces) == 0 {
		fmt.Fprintln(out, "No workspaces found.")
		return nil
	}

	t := newTable(out, "%-12v %-50v %-8v %v", "ID", "NAME", "PREMIUM", "ADMIN")
	for _, ws := range workspaces {
		t.row(ws.ID, truncate(ws.Name, 48), yesNo(ws.Premium), yesNo(ws.Admin))
	}
	t.close()
	return nil
}
