package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/quillnotes/quill/internal/telemetry"
	"github.com/quillnotes/quill/internal/types"
	"github.com/quillnotes/quill/internal/ui"
)

var createFormCmd = &cobra.Command{
	Use:   "create-form",
	Short: "Create a new note using an interactive form",
	Long: `Create a new note using an interactive terminal form.

Keyboard navigation:
  - Tab/Shift+Tab: Move between fields
  - Enter: Submit the form (on the last field or submit button)
  - Ctrl+C: Cancel and exit`,
	RunE: func(cmd *cobra.Command, args []string) error {
		telemetry.CountOp(rootCtx, "create")
		return runCreateForm()
	},
}

func runCreateForm() error {
	var (
		title     string
		body      string
		tagsInput string
		pinned    bool
	)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Description("One line, required").
				Placeholder("e.g., Grocery list").
				Value(&title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("title is required")
					}
					if len(s) > types.MaxTitleLength {
						return fmt.Errorf("title must be %d characters or less", types.MaxTitleLength)
					}
					return nil
				}),

			huh.NewText().
				Title("Body").
				Description("Markdown, optional").
				Placeholder("Write your note...").
				Value(&body),

			huh.NewInput().
				Title("Tags").
				Description("Space or comma separated, optional").
				Placeholder("home errands").
				Value(&tagsInput),

			huh.NewConfirm().
				Title("Pin this note?").
				Value(&pinned),
		),
	)

	if err := form.Run(); err != nil {
		return fmt.Errorf("form cancelled: %w", err)
	}

	tags := strings.FieldsFunc(tagsInput, func(r rune) bool { return r == ',' || r == ' ' })
	note, err := createNote(rootCtx, store, title, body, tags, pinned)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(note)
	}
	fmt.Printf("Created note %s: %s\n", ui.RenderAccent(note.ID), ui.Summary(note.Title, 70))
	return nil
}

func init() {
	rootCmd.AddCommand(createFormCmd)
}
