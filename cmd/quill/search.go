package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quillnotes/quill/internal/telemetry"
	"github.com/quillnotes/quill/internal/types"
)

var (
	searchTag    string
	searchPinned bool
	searchSince  string
	searchUntil  string
	searchSort   string
)

var searchCmd = &cobra.Command{
	Use:   "search <query>...",
	Short: "Search notes by text",
	Long: `Case-insensitive substring search over titles, bodies, and tags.
Multiple words are joined into one query. Combine with the same filters
as list.

Examples:
  quill search deploy
  quill search grocery --tag home`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		telemetry.CountOp(rootCtx, "search")

		query := strings.Join(args, " ")
		filter, err := buildFilter(searchTag, searchPinned, searchSince, searchUntil)
		if err != nil {
			return err
		}

		notes, err := store.SearchNotes(rootCtx, query, filter)
		if err != nil {
			return fmt.Errorf("searching notes: %w", err)
		}
		types.SortNotes(notes, types.ParseNoteSortOrder(resolveSortFlag(searchSort)))

		if jsonOutput {
			return printJSON(notes)
		}
		displayNoteList(notes)
		return nil
	},
}

func init() {
	searchCmd.Flags().StringVarP(&searchTag, "tag", "t", "", "Only notes carrying this tag")
	searchCmd.Flags().BoolVar(&searchPinned, "pinned", false, "Only pinned notes")
	searchCmd.Flags().StringVar(&searchSince, "since", "", "Only notes updated since")
	searchCmd.Flags().StringVar(&searchUntil, "until", "", "Only notes updated before")
	searchCmd.Flags().StringVar(&searchSort, "sort", "", "Sort order (e.g. updated-desc, title-asc)")
	rootCmd.AddCommand(searchCmd)
}
