package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/quillnotes/quill/internal/telemetry"
	"github.com/quillnotes/quill/internal/tui/notebook"
)

var tuiCmd = &cobra.Command{
	Use:     "tui",
	Aliases: []string{"ui"},
	Short:   "Open the interactive notebook",
	Long: `Open the full-screen notebook: browse, search, tag-filter, edit,
pin, and delete notes without leaving the terminal. Press ? inside for
key bindings.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		telemetry.CountOp(rootCtx, "tui")

		p := tea.NewProgram(notebook.New(store), tea.WithAltScreen(), tea.WithContext(rootCtx))
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("running notebook: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
