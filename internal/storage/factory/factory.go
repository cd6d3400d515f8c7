// Package factory opens the storage provider a quill directory is
// configured for. It lives outside package storage so the interface package
// stays free of backend imports.
package factory

import (
	"context"
	"fmt"

	"github.com/quillnotes/quill/internal/configfile"
	"github.com/quillnotes/quill/internal/storage"
	"github.com/quillnotes/quill/internal/storage/local"
	"github.com/quillnotes/quill/internal/storage/memory"
	"github.com/quillnotes/quill/internal/storage/sqlite"
)

// Open returns the provider selected by cfg, rooted at quillDir.
func Open(ctx context.Context, quillDir string, cfg *configfile.Config) (storage.Store, error) {
	if cfg == nil {
		cfg = configfile.DefaultConfig()
	}

	switch backend := cfg.GetBackend(); backend {
	case "local":
		return local.New(cfg.CollectionPath(quillDir))
	case "sqlite":
		return sqlite.New(ctx, cfg.CollectionPath(quillDir))
	case "memory":
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", backend)
	}
}
