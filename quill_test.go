package quill_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillnotes/quill"
)

func TestPublicAPILocalStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "notes.json")

	store, err := quill.NewLocalStore(path)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	now := time.Now()
	note := &quill.Note{
		ID:        "ql-ap1",
		Title:     "Embedded usage",
		Body:      "created through the public API",
		Tags:      []string{"api"},
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, store.CreateNote(ctx, note))

	got, err := store.GetNote(ctx, "ql-ap1")
	require.NoError(t, err)
	assert.Equal(t, "Embedded usage", got.Title)
	assert.True(t, got.HasTag("api"))

	_, err = store.GetNote(ctx, "ql-nope")
	assert.ErrorIs(t, err, quill.ErrNotFound)

	err = store.CreateNote(ctx, note)
	assert.ErrorIs(t, err, quill.ErrAlreadyExists)
}

func TestPublicAPIMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := quill.NewMemoryStore()
	defer func() { _ = store.Close() }()

	now := time.Now()
	require.NoError(t, store.CreateNote(ctx, &quill.Note{
		ID: "ql-m1", Title: "Scratch", CreatedAt: now, UpdatedAt: now,
	}))

	notes, err := store.SearchNotes(ctx, "scratch", quill.NoteFilter{})
	require.NoError(t, err)
	assert.Len(t, notes, 1)
}

func TestPublicAPISQLiteStore(t *testing.T) {
	ctx := context.Background()
	store, err := quill.NewSQLiteStore(ctx, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	now := time.Now()
	require.NoError(t, store.CreateNote(ctx, &quill.Note{
		ID: "ql-s1", Title: "Durable", Pinned: true, CreatedAt: now, UpdatedAt: now,
	}))

	notes, err := store.ListNotes(ctx, quill.NoteFilter{PinnedOnly: true})
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "ql-s1", notes[0].ID)
}
