package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/quillnotes/quill/internal/storage"
	"github.com/quillnotes/quill/internal/telemetry"
	"github.com/quillnotes/quill/internal/types"
	"github.com/quillnotes/quill/internal/ui"
)

var importCmd = &cobra.Command{
	Use:   "import <file>...",
	Short: "Import notes from JSONL or YAML files",
	Long: `Import notes exported with 'quill export'. Files are parsed
concurrently; format is chosen by extension (.jsonl/.json vs .yaml/.yml).

An incoming note with a known ID replaces the stored one only when its
updated_at is newer (last write wins). Notes without IDs are rejected.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		telemetry.CountOp(rootCtx, "import")

		var (
			mu  sync.Mutex
			all []*types.Note
		)

		g, ctx := errgroup.WithContext(rootCtx)
		for _, path := range args {
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				notes, err := readNotesFile(path)
				if err != nil {
					return err
				}
				mu.Lock()
				all = append(all, notes...)
				mu.Unlock()
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		created, updated, skipped, err := mergeNotes(rootCtx, store, all)
		if err != nil {
			return err
		}

		fmt.Printf("Imported %d note(s): %d created, %d updated, %d unchanged\n",
			len(all), created, updated, skipped)
		return nil
	},
}

// mergeNotes folds imported notes into the store. Unknown IDs are created;
// known IDs are replaced only when the incoming updated_at is newer, and the
// replacement keeps that incoming timestamp so re-importing the same export
// stays idempotent.
func mergeNotes(ctx context.Context, s storage.Store, notes []*types.Note) (created, updated, skipped int, err error) {
	for _, n := range notes {
		if n.ID == "" {
			return created, updated, skipped, fmt.Errorf("note %q has no id", ui.Summary(n.Title, 40))
		}
		existing, err := s.GetNote(ctx, n.ID)
		switch {
		case errors.Is(err, storage.ErrNotFound):
			if err := s.CreateNote(ctx, n); err != nil {
				return created, updated, skipped, fmt.Errorf("importing note %s: %w", n.ID, err)
			}
			created++
		case err != nil:
			return created, updated, skipped, fmt.Errorf("checking note %s: %w", n.ID, err)
		case n.UpdatedAt.After(existing.UpdatedAt):
			updates := map[string]interface{}{
				"title":      n.Title,
				"body":       n.Body,
				"tags":       n.Tags,
				"pinned":     n.Pinned,
				"updated_at": n.UpdatedAt,
			}
			if err := s.UpdateNote(ctx, n.ID, updates); err != nil {
				return created, updated, skipped, fmt.Errorf("importing note %s: %w", n.ID, err)
			}
			updated++
		default:
			skipped++
		}
	}
	return created, updated, skipped, nil
}

// readNotesFile parses one export file, picking the codec by extension.
func readNotesFile(path string) ([]*types.Note, error) {
	f, err := os.Open(path) // #nosec G304 - user-chosen input path
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var notes []*types.Note
		if err := yaml.NewDecoder(f).Decode(&notes); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		return notes, nil
	default:
		var notes []*types.Note
		scanner := bufio.NewScanner(f)
		scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
		lineNum := 0
		for scanner.Scan() {
			lineNum++
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			var n types.Note
			if err := json.Unmarshal([]byte(line), &n); err != nil {
				return nil, fmt.Errorf("parsing %s line %d: %w", path, lineNum, err)
			}
			notes = append(notes, &n)
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		return notes, nil
	}
}

func init() {
	rootCmd.AddCommand(importCmd)
}
