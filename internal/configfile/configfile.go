// Package configfile reads and writes the .quill/metadata.json file that
// describes a quill directory: which backend holds the notes and where.
package configfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const ConfigFileName = "metadata.json"

// DirName is the quill dot-directory created next to the user's files.
const DirName = ".quill"

type Config struct {
	// Backend selects the storage provider: "local" (default), "sqlite",
	// or "memory".
	Backend string `json:"backend,omitempty"`

	// Collection is the collection file name inside the quill directory
	// (notes.json for local, notes.db for sqlite).
	Collection string `json:"collection,omitempty"`

	// DefaultSort is the saved sort order string (e.g. "updated-desc").
	DefaultSort string `json:"default_sort,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Backend:    "local",
		Collection: "notes.json",
	}
}

func ConfigPath(quillDir string) string {
	return filepath.Join(quillDir, ConfigFileName)
}

// Load reads the config from quillDir. Returns (nil, nil) when the directory
// has no config yet.
func Load(quillDir string) (*Config, error) {
	data, err := os.ReadFile(ConfigPath(quillDir)) // #nosec G304 - controlled path from config
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Save(quillDir string) error {
	if err := os.MkdirAll(quillDir, 0750); err != nil {
		return fmt.Errorf("creating quill directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(ConfigPath(quillDir), data, 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// GetBackend returns the configured backend, defaulting to "local".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return "local"
	}
	return c.Backend
}

// CollectionPath returns the absolute path of the collection file.
func (c *Config) CollectionPath(quillDir string) string {
	name := c.Collection
	if name == "" {
		if c.GetBackend() == "sqlite" {
			name = "notes.db"
		} else {
			name = "notes.json"
		}
	}
	return filepath.Join(quillDir, name)
}
