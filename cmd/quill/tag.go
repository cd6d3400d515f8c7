package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/quillnotes/quill/internal/telemetry"
	"github.com/quillnotes/quill/internal/ui"
)

var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Manage note tags",
}

var tagAddCmd = &cobra.Command{
	Use:   "add <id> <tag>...",
	Short: "Add tags to a note",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		telemetry.CountOp(rootCtx, "tag")
		id := args[0]
		for _, tag := range args[1:] {
			if err := store.AddTag(rootCtx, id, tag); err != nil {
				return fmt.Errorf("adding tag %q: %w", tag, err)
			}
		}
		fmt.Printf("Tagged %s with %s\n", ui.RenderAccent(id), ui.RenderTags(args[1:]))
		return nil
	},
}

var tagRmCmd = &cobra.Command{
	Use:     "rm <id> <tag>...",
	Aliases: []string{"remove"},
	Short:   "Remove tags from a note",
	Args:    cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		telemetry.CountOp(rootCtx, "tag")
		id := args[0]
		for _, tag := range args[1:] {
			if err := store.RemoveTag(rootCtx, id, tag); err != nil {
				return fmt.Errorf("removing tag %q: %w", tag, err)
			}
		}
		fmt.Printf("Untagged %s: %s\n", ui.RenderAccent(id), ui.RenderTags(args[1:]))
		return nil
	},
}

var tagListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all tags with note counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		telemetry.CountOp(rootCtx, "tag")

		counts, err := store.ListTags(rootCtx)
		if err != nil {
			return fmt.Errorf("listing tags: %w", err)
		}

		if jsonOutput {
			return printJSON(counts)
		}

		if len(counts) == 0 {
			fmt.Println(ui.RenderMuted("No tags."))
			return nil
		}

		tags := make([]string, 0, len(counts))
		for tag := range counts {
			tags = append(tags, tag)
		}
		sort.Strings(tags)
		for _, tag := range tags {
			fmt.Printf("%s %s\n", ui.RenderTags([]string{tag}), ui.RenderMuted(fmt.Sprintf("(%d)", counts[tag])))
		}
		return nil
	},
}

func init() {
	tagCmd.AddCommand(tagAddCmd, tagRmCmd, tagListCmd)
	rootCmd.AddCommand(tagCmd)
}
