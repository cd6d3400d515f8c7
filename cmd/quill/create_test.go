package main

import (
	"context"
	"strings"
	"testing"

	"github.com/quillnotes/quill/internal/storage/memory"
)

func TestCreateNote(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	note, err := createNote(ctx, s, "Grocery list", "milk\neggs", []string{"Home", "home", " errands "}, false)
	if err != nil {
		t.Fatalf("createNote failed: %v", err)
	}

	if !strings.HasPrefix(note.ID, "ql-") {
		t.Errorf("ID = %q, want ql- prefix", note.ID)
	}
	if len(note.Tags) != 2 {
		t.Errorf("Tags = %v, want deduped [errands home]", note.Tags)
	}
	if note.CreatedAt != note.UpdatedAt {
		t.Errorf("CreatedAt != UpdatedAt on fresh note")
	}

	stored, err := s.GetNote(ctx, note.ID)
	if err != nil {
		t.Fatalf("GetNote failed: %v", err)
	}
	if stored.Body != "milk\neggs" {
		t.Errorf("stored body = %q", stored.Body)
	}
}

func TestCreateNoteRejectsEmptyTitle(t *testing.T) {
	if _, err := createNote(context.Background(), memory.New(), "   ", "", nil, false); err == nil {
		t.Error("createNote with blank title succeeded, want error")
	}
}

func TestCreateNoteCollisionRetries(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	// Identical content must still yield distinct IDs, via the timestamp
	// input or, failing that, the nonce retry.
	first, err := createNote(ctx, s, "Same title", "same body", nil, false)
	if err != nil {
		t.Fatalf("first createNote failed: %v", err)
	}
	second, err := createNote(ctx, s, "Same title", "same body", nil, false)
	if err != nil {
		t.Fatalf("second createNote failed: %v", err)
	}
	if first.ID == second.ID {
		t.Errorf("both notes got ID %s", first.ID)
	}
}
