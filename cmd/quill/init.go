package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/quillnotes/quill/internal/configfile"
	"github.com/quillnotes/quill/internal/ui"
)

var initBackend string

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a quill directory",
	Long: `Create a .quill directory in the current location and write its metadata file.

The backend decides how notes are stored:
  local   one human-readable JSON file (default)
  sqlite  a SQLite database, for large collections
  memory  nothing persists; useful for scripting and tests`,
	RunE: func(cmd *cobra.Command, args []string) error {
		target := dirFlag
		if target == "" {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("getting working directory: %w", err)
			}
			target = filepath.Join(cwd, configfile.DirName)
		}

		if existing, err := configfile.Load(target); err != nil {
			return err
		} else if existing != nil {
			return fmt.Errorf("%s is already initialized (backend: %s)", target, existing.GetBackend())
		}

		switch initBackend {
		case "local", "sqlite", "memory":
		default:
			return fmt.Errorf("unknown backend %q (want local, sqlite, or memory)", initBackend)
		}

		cfg := configfile.DefaultConfig()
		cfg.Backend = initBackend
		if initBackend == "sqlite" {
			cfg.Collection = "notes.db"
		}
		if err := cfg.Save(target); err != nil {
			return err
		}

		fmt.Printf("Initialized %s (backend: %s)\n", ui.RenderAccent(target), cfg.GetBackend())
		return nil
	},
}

func init() {
	initCmd.Flags().StringVar(&initBackend, "backend", "local", "Storage backend (local, sqlite, memory)")
	rootCmd.AddCommand(initCmd)
}
