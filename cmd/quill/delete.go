package main

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/quillnotes/quill/internal/telemetry"
	"github.com/quillnotes/quill/internal/ui"
)

var deleteForce bool

var deleteCmd = &cobra.Command{
	Use:     "delete <id>...",
	Aliases: []string{"rm"},
	Short:   "Delete notes",
	Long: `Delete one or more notes permanently.

Prompts for confirmation unless --force is given or stdout is not a
terminal (agent/script use).`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		telemetry.CountOp(rootCtx, "delete")

		if !deleteForce && ui.IsInteractive() {
			confirmed := false
			prompt := huh.NewConfirm().
				Title(fmt.Sprintf("Delete %d note(s)?", len(args))).
				Description("This cannot be undone.").
				Value(&confirmed)
			if err := prompt.Run(); err != nil {
				return err
			}
			if !confirmed {
				fmt.Println(ui.RenderMuted("Cancelled."))
				return nil
			}
		}

		for _, id := range args {
			if err := store.DeleteNote(rootCtx, id); err != nil {
				return fmt.Errorf("deleting note %s: %w", id, err)
			}
			fmt.Printf("Deleted %s\n", ui.RenderAccent(id))
		}
		return nil
	},
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(deleteCmd)
}
