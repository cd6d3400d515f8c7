package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/quillnotes/quill/internal/telemetry"
	"github.com/quillnotes/quill/internal/ui"
)

var pinCmd = &cobra.Command{
	Use:   "pin <id>...",
	Short: "Pin notes to the top of the list",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		telemetry.CountOp(rootCtx, "pin")
		return setPinned(args, true)
	},
}

var unpinCmd = &cobra.Command{
	Use:   "unpin <id>...",
	Short: "Unpin notes",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		telemetry.CountOp(rootCtx, "pin")
		return setPinned(args, false)
	},
}

func setPinned(ids []string, pinned bool) error {
	verb := "Pinned"
	marker := ui.IconPin
	if !pinned {
		verb = "Unpinned"
		marker = "📍"
	}
	yellow := color.New(color.FgYellow).SprintFunc()
	for _, id := range ids {
		if err := store.SetPinned(rootCtx, id, pinned); err != nil {
			return err
		}
		fmt.Printf("%s %s %s\n", yellow(marker), verb, ui.RenderAccent(id))
	}
	return nil
}

func init() {
	rootCmd.AddCommand(pinCmd, unpinCmd)
}
