package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/quillnotes/quill/internal/configfile"
	"github.com/quillnotes/quill/internal/debug"
	"github.com/quillnotes/quill/internal/storage"
	"github.com/quillnotes/quill/internal/storage/factory"
	"github.com/quillnotes/quill/internal/telemetry"
)

// Version and Build are overridden at link time via -ldflags.
var (
	Version = "dev"
	Build   = "unknown"
)

var (
	dirFlag     string
	jsonOutput  bool
	verboseFlag bool
	quietFlag   bool

	quillDir string
	cfg      *configfile.Config
	store    storage.Store

	// Signal-aware context for graceful cancellation
	rootCtx    context.Context
	rootCancel context.CancelFunc
)

// noStoreCommands lists commands that run without an initialized quill
// directory.
var noStoreCommands = map[string]bool{
	"init":       true,
	"version":    true,
	"help":       true,
	"completion": true,
}

func needsStore(cmd *cobra.Command) bool {
	if !cmd.HasParent() {
		// Bare "quill" only prints help or the version.
		return false
	}
	for c := cmd; c != nil; c = c.Parent() {
		if noStoreCommands[c.Name()] {
			return false
		}
	}
	return true
}

func init() {
	viper.SetEnvPrefix("QUILL")
	viper.AutomaticEnv()

	rootCmd.PersistentFlags().StringVar(&dirFlag, "dir", "", "Quill directory (default: auto-discover .quill, or $QUILL_DIR)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose/debug output")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "Suppress non-essential output (errors only)")

	rootCmd.Flags().BoolP("version", "V", false, "Print version information")
}

var rootCmd = &cobra.Command{
	Use:   "quill",
	Short: "quill - Single-page note taking",
	Long:  `A pocket notebook for the terminal. Short notes with tags, pins, and full-text search, stored as one JSON file you can read and version.`,
	Run: func(cmd *cobra.Command, args []string) {
		if v, _ := cmd.Flags().GetBool("version"); v {
			fmt.Printf("quill version %s (%s)\n", Version, Build)
			return
		}
		_ = cmd.Help()
	},
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		debug.SetVerbose(verboseFlag)
		debug.SetQuiet(quietFlag)
		setupSignalContext()

		if err := telemetry.Init(rootCtx, "quill", Version); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: telemetry init failed: %v\n", err)
		}

		if !needsStore(cmd) {
			return nil
		}

		var err error
		quillDir, err = resolveQuillDir()
		if err != nil {
			return err
		}

		cfg, err = configfile.Load(quillDir)
		if err != nil {
			return err
		}
		if cfg == nil {
			return fmt.Errorf("%s: %w (run 'quill init' first)", quillDir, storage.ErrNotInitialized)
		}
		if backend := viper.GetString("backend"); backend != "" {
			cfg.Backend = backend
		}

		store, err = factory.Open(rootCtx, quillDir, cfg)
		if err != nil {
			return fmt.Errorf("opening store: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if store != nil {
			_ = store.Close()
			store = nil
		}
		if err := telemetry.Shutdown(context.Background()); err != nil {
			debug.Logf("telemetry shutdown: %v", err)
		}
		if rootCancel != nil {
			rootCancel()
		}
	},
}

func setupSignalContext() {
	if rootCtx != nil {
		return
	}
	rootCtx, rootCancel = signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// resolveQuillDir finds the quill directory: --dir flag, then QUILL_DIR env,
// then walking up from the working directory looking for .quill.
func resolveQuillDir() (string, error) {
	if dirFlag != "" {
		return dirFlag, nil
	}
	if env := viper.GetString("dir"); env != "" {
		return env, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}
	for dir := cwd; ; {
		candidate := filepath.Join(dir, configfile.DirName)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	// Not found anywhere up the tree: default to cwd so init has a target
	// and error messages point somewhere sensible.
	return filepath.Join(cwd, configfile.DirName), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
