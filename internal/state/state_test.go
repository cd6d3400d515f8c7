package state

import (
	"testing"
	"time"

	"github.com/quillnotes/quill/internal/types"
)

func mkNote(id, title string, tags ...string) *types.Note {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	return &types.Note{
		ID:        id,
		Title:     title,
		Tags:      types.NormalizeTags(tags),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func loaded(notes ...*types.Note) State {
	return Apply(State{}, NotesLoaded{Notes: notes})
}

func ids(notes []*types.Note) []string {
	out := make([]string, len(notes))
	for i, n := range notes {
		out[i] = n.ID
	}
	return out
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	s := loaded(mkNote("ql-a", "alpha"))

	_ = Apply(s, NoteRemoved{ID: "ql-a"})
	if len(s.Notes) != 1 {
		t.Errorf("input state mutated: %d notes, want 1", len(s.Notes))
	}

	_ = Apply(s, SearchChanged{Query: "x"})
	if s.Search != "" {
		t.Errorf("input state mutated: Search = %q", s.Search)
	}
}

func TestFilteredBySearchAndTag(t *testing.T) {
	s := loaded(
		mkNote("ql-a", "standup notes", "work"),
		mkNote("ql-b", "vacation notes", "home"),
		mkNote("ql-c", "standup follow-up", "work"),
	)

	// Empty search is the identity.
	if got := s.Filtered(); len(got) != 3 {
		t.Errorf("Filtered() with no filters = %d notes, want 3", len(got))
	}

	s = Apply(s, SearchChanged{Query: "standup"})
	if got := s.Filtered(); len(got) != 2 {
		t.Errorf("Filtered() after search = %v, want 2 notes", ids(got))
	}

	// Search AND tag intersect.
	s = Apply(s, TagSelected{Tag: "work"})
	if got := s.Filtered(); len(got) != 2 {
		t.Errorf("Filtered() search+tag = %v, want 2 notes", ids(got))
	}
	s = Apply(s, SearchChanged{Query: "follow"})
	got := s.Filtered()
	if len(got) != 1 || got[0].ID != "ql-c" {
		t.Errorf("Filtered() = %v, want [ql-c]", ids(got))
	}

	s = Apply(s, TagCleared{})
	if s.SelectedTag != "" {
		t.Errorf("SelectedTag = %q after clear", s.SelectedTag)
	}
}

func TestSelectingAbsentTagYieldsEmpty(t *testing.T) {
	s := loaded(mkNote("ql-a", "alpha", "work"))
	s = Apply(s, TagSelected{Tag: "nope"})
	if got := s.Filtered(); len(got) != 0 {
		t.Errorf("Filtered() = %v, want empty for absent tag", ids(got))
	}
}

func TestReloadClearsStaleTagSelection(t *testing.T) {
	s := loaded(mkNote("ql-a", "alpha", "work"))
	s = Apply(s, TagSelected{Tag: "work"})

	// Reload with a collection that no longer has the tag.
	s = Apply(s, NotesLoaded{Notes: []*types.Note{mkNote("ql-b", "beta")}})
	if s.SelectedTag != "" {
		t.Errorf("SelectedTag = %q after reload without tag, want cleared", s.SelectedTag)
	}
}

func TestUpsert(t *testing.T) {
	s := loaded(mkNote("ql-a", "alpha"))

	// New ID inserts.
	s = Apply(s, NoteUpserted{Note: mkNote("ql-b", "beta")})
	if len(s.Notes) != 2 {
		t.Fatalf("notes = %d after insert, want 2", len(s.Notes))
	}

	// Existing ID replaces, never duplicates.
	s = Apply(s, NoteUpserted{Note: mkNote("ql-a", "alpha v2")})
	if len(s.Notes) != 2 {
		t.Fatalf("notes = %d after replace, want 2", len(s.Notes))
	}
	var found bool
	for _, n := range s.Notes {
		if n.ID == "ql-a" {
			found = true
			if n.Title != "alpha v2" {
				t.Errorf("Title = %q, want alpha v2", n.Title)
			}
		}
	}
	if !found {
		t.Error("ql-a missing after upsert")
	}
}

func TestRemove(t *testing.T) {
	s := loaded(mkNote("ql-a", "alpha"), mkNote("ql-b", "beta"))
	s = Apply(s, EditorOpened{ID: "ql-a"})

	s = Apply(s, NoteRemoved{ID: "ql-a"})
	if len(s.Notes) != 1 || s.Notes[0].ID != "ql-b" {
		t.Errorf("notes = %v, want [ql-b]", ids(s.Notes))
	}
	// Removing the note under edit closes the editor.
	if s.EditorOpen || s.EditingID != "" {
		t.Errorf("editor still open on removed note: open=%v id=%q", s.EditorOpen, s.EditingID)
	}

	// Removing an unknown ID is a no-op.
	s = Apply(s, NoteRemoved{ID: "ql-none"})
	if len(s.Notes) != 1 {
		t.Errorf("notes = %d after removing unknown ID, want 1", len(s.Notes))
	}
}

func TestEditorLifecycle(t *testing.T) {
	note := mkNote("ql-a", "alpha")
	s := loaded(note)

	s = Apply(s, EditorOpened{ID: "ql-a"})
	if !s.EditorOpen || s.Editing() != note {
		t.Errorf("Editing() = %v, want ql-a", s.Editing())
	}

	s = Apply(s, EditorClosed{})
	if s.EditorOpen || s.Editing() != nil {
		t.Error("editor not closed")
	}

	// New-note editor has no Editing() note.
	s = Apply(s, EditorOpened{ID: ""})
	if !s.EditorOpen || s.Editing() != nil {
		t.Errorf("Editing() = %v for new note, want nil", s.Editing())
	}
}

func TestDerivedTags(t *testing.T) {
	s := loaded(
		mkNote("ql-a", "a", "work", "urgent"),
		mkNote("ql-b", "b", "work"),
		mkNote("ql-c", "c"),
	)

	tags := s.Tags()
	if len(tags) != 2 {
		t.Fatalf("Tags() = %v, want 2 entries", tags)
	}
	if tags[0].Tag != "urgent" || tags[0].Count != 1 {
		t.Errorf("Tags()[0] = %+v, want urgent:1", tags[0])
	}
	if tags[1].Tag != "work" || tags[1].Count != 2 {
		t.Errorf("Tags()[1] = %+v, want work:2", tags[1])
	}

	// Tag view covers the whole collection even when a search is active.
	s = Apply(s, SearchChanged{Query: "zzz"})
	if got := s.Tags(); len(got) != 2 {
		t.Errorf("Tags() under search = %v, want full tag set", got)
	}
}

func TestFilteredSortsPinnedFirst(t *testing.T) {
	pinned := mkNote("ql-p", "pinned")
	pinned.Pinned = true
	pinned.UpdatedAt = pinned.UpdatedAt.Add(-time.Hour)
	fresh := mkNote("ql-f", "fresh")

	s := loaded(fresh, pinned)
	got := s.Filtered()
	if len(got) != 2 || got[0].ID != "ql-p" {
		t.Errorf("Filtered() order = %v, want pinned first", ids(got))
	}

	// Explicit sort order still keeps pinned on top.
	s = Apply(s, SortChanged{Order: types.ParseNoteSortOrder("title-asc")})
	got = s.Filtered()
	if got[0].ID != "ql-p" {
		t.Errorf("Filtered() order = %v with title-asc, want pinned first", ids(got))
	}
}
