package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/togglr/toggl"
)

var (
	clientStatus  string
	clientNotes   string
	restoreClient bool
)

// clientsCmd groups client commands
var clientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "Manage the clients of a workspace",
}

var clientsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List clients",
	Args:  cobra.NoArgs,
	RunE:  runClientsList,
}

var clientsCreateCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create a client",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runClientsCreate,
}

var clientsDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a client",
	Args:  cobra.ExactArgs(1),
	RunE:  runClientsDelete,
}

var clientsArchiveCmd = &cobra.Command{
	Use:   "archive ID",
	Short: "Archive a client, or restore it with --restore (v9 only)",
	Args:  cobra.ExactArgs(1),
	RunE:  runClientsArchive,
}

func init() {
	clientsListCmd.Flags().StringVar(&clientStatus, "status", "", "filter by status (active, archived, both)")
	clientsCreateCmd.Flags().StringVar(&clientNotes, "notes", "", "client notes")
	clientsArchiveCmd.Flags().BoolVar(&restoreClient, "restore", false, "restore an archived client")

	clientsCmd.AddCommand(clientsListCmd, clientsCreateCmd, clientsDeleteCmd, clientsArchiveCmd)
	rootCmd.AddCommand(clientsCmd)
}

func runClientsList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	wid, err := resolveWorkspace(ctx)
	if err != nil {
		return err
	}

	status := toggl.ClientStatus(strings.ToLower(clientStatus))
	switch status {
	case "", toggl.ClientStatusActive, toggl.ClientStatusArchived, toggl.ClientStatusBoth:
	default:
		return fmt.Errorf("invalid status: %s (must be 'active', 'archived' or 'both')", clientStatus)
	}

	resp, err := api.Clients.ListWith(ctx, toggl.ListClientsOptions{WorkspaceID: wid, Status: status})
	if err != nil {
		return fmt.Errorf("failed to list clients: %w", err)
	}
	clients, err := resp.Items()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(clients) == 0 {
		fmt.Fprintln(out, "No clients found.")
		return nil
	}

	fmt.Fprintf(out, "Found %s:\n\n", plural(len(clients), "client"))
	t := newTable(out, "%-12v %-50v %v", "ID", "NAME", "ARCHIVED")
	for _, c := range clients {
		t.row(c.ID, truncate(c.Name, 48), yesNo(c.Archived))
	}
	t.close()
	return nil
}

func runClientsCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	wid, err := resolveWorkspace(ctx)
	if err != nil {
		return err
	}

	resp, err := api.Clients.CreateWith(ctx, toggl.CreateClientOptions{
		WorkspaceID: wid,
		Name:        strings.Join(args, " "),
		Notes:       clientNotes,
	})
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	client, err := bodyOf(resp, "client")
	if err != nil {
		return err
	}

	logger.Info().Int64("id", client.ID).Str("name", client.Name).Msg("Client created")
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Created client %s (ID: %d)\n", client.Name, client.ID)
	return nil
}

func runClientsDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	wid, err := resolveWorkspace(ctx)
	if err != nil {
		return err
	}

	if _, err := api.Clients.Delete(ctx, wid, id); err != nil {
		return fmt.Errorf("failed to delete client %d: %w", id, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted client %d\n", id)
	return nil
}

func runClientsArchive(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	wid, err := resolveWorkspace(ctx)
	if err != nil {
		return err
	}

	opts := toggl.ArchiveClientOptions{WorkspaceID: wid, ClientID: id, Restore: restoreClient}
	if _, err := api.Clients.ArchiveWith(ctx, opts); err != nil {
		return fmt.Errorf("failed to update client %d: %w", id, err)
	}

	action := "Archived"
	if restoreClient {
		action = "Restored"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ %s client %d\n", action, id)
	return nil
}
