package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/quillnotes/quill/internal/telemetry"
	"github.com/quillnotes/quill/internal/types"
	"github.com/quillnotes/quill/internal/ui"
)

var (
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export notes to JSONL or YAML",
	Long: `Export every note, one JSON object per line (jsonl) or as a YAML
document list. Writes to stdout unless --out is given.

Examples:
  quill export > backup.jsonl
  quill export --format yaml --out notes.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		telemetry.CountOp(rootCtx, "export")

		notes, err := store.ListNotes(rootCtx, types.NoteFilter{})
		if err != nil {
			return fmt.Errorf("listing notes: %w", err)
		}
		types.SortNotes(notes, nil)

		var w io.Writer = os.Stdout
		if exportOut != "" {
			f, err := os.Create(exportOut) // #nosec G304 - user-chosen output path
			if err != nil {
				return fmt.Errorf("creating %s: %w", exportOut, err)
			}
			defer func() { _ = f.Close() }()
			w = f
		}

		switch exportFormat {
		case "jsonl":
			if err := writeJSONL(w, notes); err != nil {
				return err
			}
		case "yaml":
			if err := yaml.NewEncoder(w).Encode(notes); err != nil {
				return fmt.Errorf("encoding yaml: %w", err)
			}
		default:
			return fmt.Errorf("unknown format %q (want jsonl or yaml)", exportFormat)
		}

		if exportOut != "" {
			fmt.Printf("Exported %d note(s) to %s\n", len(notes), ui.RenderAccent(exportOut))
		}
		return nil
	},
}

func writeJSONL(w io.Writer, notes []*types.Note) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	for _, n := range notes {
		if err := enc.Encode(n); err != nil {
			return fmt.Errorf("encoding note %s: %w", n.ID, err)
		}
	}
	return bw.Flush()
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "jsonl", "Output format (jsonl, yaml)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (default: stdout)")
	rootCmd.AddCommand(exportCmd)
}
