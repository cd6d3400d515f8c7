package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/quillnotes/quill/internal/storage"
	"github.com/quillnotes/quill/internal/types"
)

func testNote(id, title string) *types.Note {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	return &types.Note{ID: id, Title: title, CreatedAt: now, UpdatedAt: now}
}

func TestCRUDLifecycle(t *testing.T) {
	m := New()
	ctx := context.Background()

	if err := m.CreateNote(ctx, testNote("ql-a", "alpha")); err != nil {
		t.Fatalf("CreateNote() failed: %v", err)
	}

	got, err := m.GetNote(ctx, "ql-a")
	if err != nil {
		t.Fatalf("GetNote() failed: %v", err)
	}
	if got.Title != "alpha" {
		t.Errorf("Title = %q, want alpha", got.Title)
	}

	if err := m.UpdateNote(ctx, "ql-a", map[string]interface{}{"body": "content"}); err != nil {
		t.Fatalf("UpdateNote() failed: %v", err)
	}
	got, _ = m.GetNote(ctx, "ql-a")
	if got.Body != "content" {
		t.Errorf("Body = %q, want content", got.Body)
	}

	if err := m.DeleteNote(ctx, "ql-a"); err != nil {
		t.Fatalf("DeleteNote() failed: %v", err)
	}
	if _, err := m.GetNote(ctx, "ql-a"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetNote() after delete error = %v, want ErrNotFound", err)
	}
}

func TestSearchAndTags(t *testing.T) {
	m := New()
	ctx := context.Background()

	a := testNote("ql-a", "standup notes")
	a.Tags = []string{"work"}
	b := testNote("ql-b", "birthday ideas")
	if err := m.CreateNote(ctx, a); err != nil {
		t.Fatalf("CreateNote() failed: %v", err)
	}
	if err := m.CreateNote(ctx, b); err != nil {
		t.Fatalf("CreateNote() failed: %v", err)
	}

	results, err := m.SearchNotes(ctx, "standup", types.NoteFilter{})
	if err != nil {
		t.Fatalf("SearchNotes() failed: %v", err)
	}
	if len(results) != 1 || results[0].ID != "ql-a" {
		t.Errorf("SearchNotes(standup) = %v, want [ql-a]", results)
	}

	if err := m.AddTag(ctx, "ql-b", "home"); err != nil {
		t.Fatalf("AddTag() failed: %v", err)
	}
	tags, err := m.ListTags(ctx)
	if err != nil {
		t.Fatalf("ListTags() failed: %v", err)
	}
	if tags["work"] != 1 || tags["home"] != 1 {
		t.Errorf("ListTags() = %v, want work:1 home:1", tags)
	}
}

func TestPinnedSortsFirst(t *testing.T) {
	m := New()
	ctx := context.Background()

	old := testNote("ql-old", "old but pinned")
	old.UpdatedAt = old.CreatedAt.Add(-24 * time.Hour)
	old.CreatedAt = old.UpdatedAt
	old.Pinned = true
	fresh := testNote("ql-new", "fresh")

	if err := m.CreateNote(ctx, fresh); err != nil {
		t.Fatalf("CreateNote() failed: %v", err)
	}
	if err := m.CreateNote(ctx, old); err != nil {
		t.Fatalf("CreateNote() failed: %v", err)
	}

	notes, err := m.ListNotes(ctx, types.NoteFilter{})
	if err != nil {
		t.Fatalf("ListNotes() failed: %v", err)
	}
	if len(notes) != 2 || notes[0].ID != "ql-old" {
		t.Errorf("ListNotes() order = %v, want pinned first", noteIDs(notes))
	}
}

func noteIDs(notes []*types.Note) []string {
	ids := make([]string, len(notes))
	for i, n := range notes {
		ids[i] = n.ID
	}
	return ids
}
