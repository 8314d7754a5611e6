package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// tagsCmd groups tag commands
var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "Manage the tags of a workspace",
}

var tagsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tags",
	Args:  cobra.NoArgs,
	RunE:  runTagsList,
}

var tagsCreateCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create a tag",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTagsCreate,
}

var tagsDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a tag",
	Args:  cobra.ExactArgs(1),
	RunE:  runTagsDelete,
}

func init() {
	tagsCmd.AddCommand(tagsListCmd, tagsCreateCmd, tagsDeleteCmd)
	rootCmd.AddCommand(tagsCmd)
}

func runTagsList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	wid, err := resolveWorkspace(ctx)
	if err != nil {
		return err
	}

	resp, err := api.Tags.List(ctx, wid)
	if err != nil {
		return fmt.Errorf("failed to list tags: %w", err)
	}
	tags, err := resp.Items()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(tags) == 0 {
		fmt.Fprintln(out, "No tags found.")
		return nil
	}

	for _, tag := range tags {
		fmt.Fprintf(out, "  • %s %s\n", tag.Name, styleMuted.Render(fmt.Sprintf("(ID: %d)", tag.ID)))
	}
	return nil
}

func runTagsCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	wid, err := resolveWorkspace(ctx)
	if err != nil {
		return err
	}

	resp, err := api.Tags.Create(ctx, wid, strings.Join(args, " "))
	if err != nil {
		return fmt.Errorf("failed to create tag: %w", err)
	}
	tag, err := bodyOf(resp, "tag")
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Created tag %s (ID: %d)\n", tag.Name, tag.ID)
	return nil
}

func runTagsDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	wid, err := resolveWorkspace(ctx)
	if err != nil {
		return err
	}

	if _, err := api.Tags.Delete(ctx, wid, id); err != nil {
		return fmt.Errorf("failed to delete tag %d: %w", id, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted tag %d\n", id)
	return nil
}
