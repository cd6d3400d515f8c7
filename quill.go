// Package quill provides a minimal public API for embedding the note store
// in other Go programs.
//
// Most integrations should shell out to the quill CLI (quill export,
// quill list --json). This package exports only the essential types and
// constructors for programs that want the storage layer directly.
package quill

import (
	"context"

	"github.com/quillnotes/quill/internal/state"
	"github.com/quillnotes/quill/internal/storage"
	"github.com/quillnotes/quill/internal/storage/local"
	"github.com/quillnotes/quill/internal/storage/memory"
	"github.com/quillnotes/quill/internal/storage/sqlite"
	"github.com/quillnotes/quill/internal/types"
)

// Core types for working with notes
type (
	Note       = types.Note
	NoteFilter = types.NoteFilter
	State      = state.State
)

// Sentinel errors returned by stores
var (
	ErrNotFound      = storage.ErrNotFound
	ErrAlreadyExists = storage.ErrAlreadyExists
	ErrInvalidID     = storage.ErrInvalidID
)

// Store is the interface every storage provider satisfies.
type Store = storage.Store

// NewLocalStore opens (or creates) a JSON-file note collection.
func NewLocalStore(path string) (Store, error) {
	return local.New(path)
}

// NewMemoryStore returns a store that keeps notes in memory only.
func NewMemoryStore() Store {
	return memory.New()
}

// NewSQLiteStore opens (or creates) a SQLite-backed note collection.
func NewSQLiteStore(ctx context.Context, path string) (Store, error) {
	return sqlite.New(ctx, path)
}
