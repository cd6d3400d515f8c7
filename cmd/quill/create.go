package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/quillnotes/quill/internal/idgen"
	"github.com/quillnotes/quill/internal/storage"
	"github.com/quillnotes/quill/internal/telemetry"
	"github.com/quillnotes/quill/internal/types"
	"github.com/quillnotes/quill/internal/ui"
)

var (
	createBody string
	createTags []string
	createPin  bool
)

var createCmd = &cobra.Command{
	Use:   "create <title>",
	Short: "Create a new note",
	Long: `Create a new note with the given title.

Examples:
  quill create "Grocery list" -b "milk\neggs" -t home
  quill create "Deploy checklist" --tag work --tag ops --pin`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		telemetry.CountOp(rootCtx, "create")

		note, err := createNote(rootCtx, store, args[0], createBody, createTags, createPin)
		if err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(note)
		}
		fmt.Printf("Created note %s: %s\n", ui.RenderAccent(note.ID), ui.Summary(note.Title, 70))
		return nil
	},
}

// createNote builds and stores a new note. IDs are content hashes at a short
// width, so a collision retries with a bumped nonce.
func createNote(ctx context.Context, s storage.Store, title, body string, tags []string, pinned bool) (*types.Note, error) {
	now := time.Now()
	note := &types.Note{
		Title:     title,
		Body:      body,
		Tags:      types.NormalizeTags(tags),
		Pinned:    pinned,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := note.Validate(); err != nil {
		return nil, err
	}

	var lastErr error
	for nonce := 0; nonce < 10; nonce++ {
		note.ID = idgen.GenerateHashID("ql", title, body, now, idgen.DefaultLength, nonce)
		lastErr = s.CreateNote(ctx, note)
		if lastErr == nil {
			return note, nil
		}
		if !errors.Is(lastErr, storage.ErrAlreadyExists) {
			break
		}
	}
	return nil, fmt.Errorf("creating note: %w", lastErr)
}

func init() {
	createCmd.Flags().StringVarP(&createBody, "body", "b", "", "Note body (markdown)")
	createCmd.Flags().StringArrayVarP(&createTags, "tag", "t", nil, "Tag to attach (repeatable)")
	createCmd.Flags().BoolVar(&createPin, "pin", false, "Pin the note")
	rootCmd.AddCommand(createCmd)
}
