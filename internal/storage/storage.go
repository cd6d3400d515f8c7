// Package storage provides shared types for note storage.
//
// The concrete providers live in the local, memory, and sqlite sub-packages.
// This package holds the interface and sentinel errors that are referenced by
// both the providers and their consumers (cmd/quill, internal/state).
package storage

import (
	"context"
	"errors"

	"github.com/quillnotes/quill/internal/types"
)

// ErrNotFound is returned when a requested note does not exist in the store.
var ErrNotFound = errors.New("not found")

// ErrAlreadyExists is returned when creating a note whose ID is taken.
var ErrAlreadyExists = errors.New("already exists")

// ErrNotInitialized is returned when the store directory has not been
// initialized (no metadata file).
var ErrNotInitialized = errors.New("store not initialized")

// ErrInvalidID is returned when a note ID is malformed or empty.
var ErrInvalidID = errors.New("invalid note id")

// Store is the interface satisfied by every note storage provider.
// Consumers depend on this interface rather than on a concrete type so that
// alternative providers (memory, sqlite, mocks) can be substituted.
type Store interface {
	// Note CRUD
	CreateNote(ctx context.Context, note *types.Note) error
	GetNote(ctx context.Context, id string) (*types.Note, error)
	ListNotes(ctx context.Context, filter types.NoteFilter) ([]*types.Note, error)
	UpdateNote(ctx context.Context, id string, updates map[string]interface{}) error
	DeleteNote(ctx context.Context, id string) error
	SearchNotes(ctx context.Context, query string, filter types.NoteFilter) ([]*types.Note, error)

	// Tags
	AddTag(ctx context.Context, id, tag string) error
	RemoveTag(ctx context.Context, id, tag string) error
	ListTags(ctx context.Context) (map[string]int, error)

	// Pinning
	SetPinned(ctx context.Context, id string, pinned bool) error

	// Configuration
	SetConfig(ctx context.Context, key, value string) error
	GetConfig(ctx context.Context, key string) (string, error)

	// Lifecycle
	Close() error
}
