package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quillnotes/quill/internal/telemetry"
	"github.com/quillnotes/quill/internal/ui"
)

var (
	editTitle string
	editBody  string
	editTags  []string
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a note",
	Long: `Edit a note's title, body, or tags.

With no field flags, the body opens in $EDITOR (falling back to vi).
--tag replaces the full tag set; use 'quill tag add/rm' for incremental
changes.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		telemetry.CountOp(rootCtx, "update")
		id := args[0]

		updates := make(map[string]interface{})
		if cmd.Flags().Changed("title") {
			updates["title"] = editTitle
		}
		if cmd.Flags().Changed("body") {
			updates["body"] = editBody
		}
		if cmd.Flags().Changed("tag") {
			updates["tags"] = editTags
		}

		if len(updates) == 0 {
			note, err := store.GetNote(rootCtx, id)
			if err != nil {
				return err
			}
			body, edited, err := editInEditor(note.Body)
			if err != nil {
				return err
			}
			if !edited {
				fmt.Println(ui.RenderMuted("No changes."))
				return nil
			}
			updates["body"] = body
		}

		if err := store.UpdateNote(rootCtx, id, updates); err != nil {
			return fmt.Errorf("updating note: %w", err)
		}

		note, err := store.GetNote(rootCtx, id)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(note)
		}
		fmt.Printf("Updated note %s\n", ui.RenderAccent(note.ID))
		return nil
	},
}

// editInEditor writes text to a temp file, opens $EDITOR on it, and returns
// the result. The second return is false when the content is unchanged.
func editInEditor(text string) (string, bool, error) {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}

	tmpDir, err := os.MkdirTemp("", "quill-edit-")
	if err != nil {
		return "", false, fmt.Errorf("creating temp dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	path := filepath.Join(tmpDir, "note.md")
	if err := os.WriteFile(path, []byte(text), 0600); err != nil {
		return "", false, fmt.Errorf("writing temp file: %w", err)
	}

	parts := strings.Fields(editor)
	parts = append(parts, path)
	c := exec.Command(parts[0], parts[1:]...) // #nosec G204 - user's own $EDITOR
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	if err := c.Run(); err != nil {
		return "", false, fmt.Errorf("running editor: %w", err)
	}

	data, err := os.ReadFile(path) // #nosec G304 - temp file we created
	if err != nil {
		return "", false, fmt.Errorf("reading temp file: %w", err)
	}
	edited := string(data)
	return edited, edited != text, nil
}

func init() {
	editCmd.Flags().StringVar(&editTitle, "title", "", "New title")
	editCmd.Flags().StringVarP(&editBody, "body", "b", "", "New body")
	editCmd.Flags().StringArrayVarP(&editTags, "tag", "t", nil, "Replacement tag set (repeatable)")
	rootCmd.AddCommand(editCmd)
}
