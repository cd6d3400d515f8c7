package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/quillnotes/quill/internal/configfile"
	"github.com/quillnotes/quill/internal/telemetry"
	"github.com/quillnotes/quill/internal/timeparsing"
	"github.com/quillnotes/quill/internal/types"
)

var (
	listTag    string
	listPinned bool
	listSince  string
	listUntil  string
	listSort   string
	listWatch  bool
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List notes",
	Long: `List notes, pinned first, most recently updated at the top.

Time filters accept compact durations (-2d, -1w), natural language
("yesterday", "last monday"), or RFC3339/date stamps.

Examples:
  quill list --tag work
  quill list --pinned
  quill list --since -1w --sort title-asc
  quill list --watch`,
	RunE: func(cmd *cobra.Command, args []string) error {
		telemetry.CountOp(rootCtx, "list")

		filter, err := buildFilter(listTag, listPinned, listSince, listUntil)
		if err != nil {
			return err
		}

		order := types.ParseNoteSortOrder(resolveSortFlag(listSort))

		notes, err := store.ListNotes(rootCtx, filter)
		if err != nil {
			return fmt.Errorf("listing notes: %w", err)
		}
		types.SortNotes(notes, order)

		if jsonOutput {
			return printJSON(notes)
		}
		displayNoteList(notes)

		if listWatch {
			watchNotes(rootCtx, filter, order)
		}
		return nil
	},
}

// buildFilter translates the list/search flag set into a NoteFilter.
func buildFilter(tag string, pinned bool, since, until string) (types.NoteFilter, error) {
	filter := types.NoteFilter{Tag: tag, PinnedOnly: pinned}
	now := time.Now()

	if since != "" {
		t, err := timeparsing.ParseTimeArg(since, now)
		if err != nil {
			return filter, fmt.Errorf("parsing --since: %w", err)
		}
		filter.Since = &t
	}
	if until != "" {
		t, err := timeparsing.ParseTimeArg(until, now)
		if err != nil {
			return filter, fmt.Errorf("parsing --until: %w", err)
		}
		filter.Until = &t
	}
	return filter, nil
}

// resolveSortFlag falls back to the sort order saved in the directory config.
func resolveSortFlag(flag string) string {
	if flag != "" {
		return flag
	}
	if cfg != nil {
		return cfg.DefaultSort
	}
	return ""
}

// reloader is implemented by backends that cache the collection in memory
// and can re-read it from disk.
type reloader interface {
	Reload() error
}

// isCollectionFile reports whether a changed file in the quill directory is
// the collection itself. SQLite writes sidecar files (-wal, -journal), so any
// .db-ish name counts.
func isCollectionFile(base, collection string) bool {
	if base == collection {
		return true
	}
	return strings.Contains(base, ".db")
}

// watchNotes re-lists whenever the collection file changes until interrupted.
func watchNotes(ctx context.Context, filter types.NoteFilter, order []types.NoteSortOption) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating watcher: %v\n", err)
		return
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(quillDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error watching %s: %v\n", quillDir, err)
		return
	}

	collection := filepath.Base(configfile.DefaultConfig().CollectionPath(quillDir))
	if cfg != nil {
		collection = filepath.Base(cfg.CollectionPath(quillDir))
	}

	fmt.Fprintf(os.Stderr, "\nWatching for changes... (Press Ctrl+C to exit)\n")

	redisplay := func() {
		// The local backend holds the whole collection in memory; pull the
		// external write back in before re-listing.
		if r, ok := store.(reloader); ok {
			if err := r.Reload(); err != nil {
				fmt.Fprintf(os.Stderr, "Error reloading collection: %v\n", err)
				return
			}
		}
		notes, err := store.ListNotes(ctx, filter)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error refreshing notes: %v\n", err)
			return
		}
		types.SortNotes(notes, order)
		displayNoteList(notes)
		fmt.Fprintf(os.Stderr, "\nWatching for changes... (Press Ctrl+C to exit)\n")
	}

	// Editors save with a burst of writes; debounce so the list redraws once.
	var debounce *time.Timer
	const debounceDelay = 500 * time.Millisecond

	for {
		select {
		case <-ctx.Done():
			fmt.Fprintf(os.Stderr, "\nStopped watching.\n")
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if !isCollectionFile(filepath.Base(event.Name), collection) {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(debounceDelay, redisplay)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			fmt.Fprintf(os.Stderr, "Watcher error: %v\n", err)
		}
	}
}

func init() {
	listCmd.Flags().StringVarP(&listTag, "tag", "t", "", "Only notes carrying this tag")
	listCmd.Flags().BoolVar(&listPinned, "pinned", false, "Only pinned notes")
	listCmd.Flags().StringVar(&listSince, "since", "", "Only notes updated since (e.g. -2d, yesterday, 2026-08-01)")
	listCmd.Flags().StringVar(&listUntil, "until", "", "Only notes updated before")
	listCmd.Flags().StringVar(&listSort, "sort", "", "Sort order (e.g. updated-desc, title-asc)")
	listCmd.Flags().BoolVarP(&listWatch, "watch", "w", false, "Watch for changes and re-display")
	rootCmd.AddCommand(listCmd)
}
