package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/togglr/toggl"
)

var (
	projectsAll      bool
	projectClientID  int64
	projectColor     string
	projectBillable  bool
	projectPrivate   bool
	projectEstimateH int64
)

// projectsCmd groups project commands
var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Manage the projects of a workspace",
}

var projectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects",
	Args:  cobra.NoArgs,
	RunE:  runProjectsList,
}

var projectsCreateCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create a project",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runProjectsCreate,
}

var projectsDeleteCmd = &cobra.Command{
	Use:   "delete ID [ID...]",
	Short: "Delete one or more projects",
	Long: `Delete one or more projects in a single request.

Ids may be given as separate arguments or comma separated: togglr projects delete 1,2,3`,
	Args: cobra.MinimumNArgs(1),
	RunE: runProjectsDelete,
}

func init() {
	projectsListCmd.Flags().BoolVarP(&projectsAll, "all", "a", false, "include archived projects")

	projectsCreateCmd.Flags().Int64Var(&projectClientID, "client", 0, "client id")
	projectsCreateCmd.Flags().StringVar(&projectColor, "color", "", "hex color, e.g. #06aaf5")
	projectsCreateCmd.Flags().BoolVar(&projectBillable, "billable", false, "mark the project billable")
	projectsCreateCmd.Flags().BoolVar(&projectPrivate, "private", false, "make the project private")
	projectsCreateCmd.Flags().Int64Var(&projectEstimateH, "estimate", 0, "estimated hours")

	projectsCmd.AddCommand(projectsListCmd, projectsCreateCmd, projectsDeleteCmd)
	rootCmd.AddCommand(projectsCmd)
}

func runProjectsList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	wid, err := resolveWorkspace(ctx)
	if err != nil {
		return err
	}

	opts := toggl.ListProjectsOptions{WorkspaceID: wid}
	if !projectsAll {
		active := true
		opts.Active = &active
	}

	resp, err := api.Projects.ListWith(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to list projects: %w", err)
	}
	projects, err := resp.Items()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(projects) == 0 {
		fmt.Fprintln(out, "No projects found.")
		return nil
	}

	fmt.Fprintf(out, "Found %s:\n\n", plural(len(projects), "project"))
	t := newTable(out, "%-12v %-40v %-10v %-9v %v", "ID", "NAME", "CLIENT", "BILLABLE", "ACTIVE")
	for _, p := range projects {
		client := "-"
		if p.HasClient() {
			client = fmt.Sprint(*p.ClientID)
		}
		t.row(p.ID, truncate(p.Name, 38), client, yesNo(p.Billable), yesNo(p.Active))
	}
	t.close()
	return nil
}

func runProjectsCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	wid, err := resolveWorkspace(ctx)
	if err != nil {
		return err
	}

	opts := toggl.CreateProjectOptions{
		WorkspaceID: wid,
		Name:        strings.Join(args, " "),
	}
	opts.Color = projectColor
	if cmd.Flags().Changed("client") {
		opts.ClientID = &projectClientID
	}
	if cmd.Flags().Changed("billable") {
		opts.Billable = &projectBillable
	}
	if cmd.Flags().Changed("private") {
		opts.Private = &projectPrivate
	}
	if cmd.Flags().Changed("estimate") {
		opts.EstimatedHours = &projectEstimateH
	}

	resp, err := api.Projects.CreateWith(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}
	project, err := bodyOf(resp, "project")
	if err != nil {
		return err
	}

	logger.Info().Int64("id", project.ID).Str("name", project.Name).Msg("Project created")
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Created project %s (ID: %d)\n", project.Name, project.ID)
	return nil
}

func runProjectsDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	ids, err := parseIDs(args)
	if err != nil {
		return err
	}
	wid, err := resolveWorkspace(ctx)
	if err != nil {
		return err
	}

	if _, err := api.Projects.Delete(ctx, wid, ids...); err != nil {
		return fmt.Errorf("failed to delete projects: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted %s\n", plural(len(ids), "project"))
	return nil
}
