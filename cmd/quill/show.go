package main

import (
	"github.com/spf13/cobra"

	"github.com/quillnotes/quill/internal/telemetry"
)

var showFull bool

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a note in full",
	Long: `Show one note: metadata plus the body rendered as markdown.

Long bodies are truncated to the first and last few lines; pass --full
for everything.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		telemetry.CountOp(rootCtx, "show")

		note, err := store.GetNote(rootCtx, args[0])
		if err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(note)
		}
		displayNote(note, showFull)
		return nil
	},
}

func init() {
	showCmd.Flags().BoolVar(&showFull, "full", false, "Show the full body without truncation")
	rootCmd.AddCommand(showCmd)
}
