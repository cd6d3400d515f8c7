// Package state holds the client-side view state for a loaded note
// collection and the reducer that advances it.
//
// The reducer is pure: Apply returns a new State and never mutates its
// input, so both the CLI and the TUI can replay actions and render from the
// same derived views (filtered list, tag set) without coordinating.
package state

import (
	"sort"

	"github.com/quillnotes/quill/internal/types"
)

// State is the in-memory view of the collection plus UI selection state.
type State struct {
	Notes       []*types.Note
	Search      string
	SelectedTag string
	SortOrder   []types.NoteSortOption
	EditorOpen  bool
	EditingID   string // "" while creating a new note
}

// Action is a state transition request. Exactly one constructor per action;
// the reducer switches on the concrete type.
type Action interface{ isAction() }

// NotesLoaded replaces the whole collection (initial load or reload).
type NotesLoaded struct{ Notes []*types.Note }

// SearchChanged sets the free-text filter.
type SearchChanged struct{ Query string }

// TagSelected filters the list to one tag.
type TagSelected struct{ Tag string }

// TagCleared removes the tag filter.
type TagCleared struct{}

// SortChanged replaces the sort order.
type SortChanged struct{ Order []types.NoteSortOption }

// EditorOpened opens the editor, for an existing note (ID set) or a new one.
type EditorOpened struct{ ID string }

// EditorClosed closes the editor without touching the collection.
type EditorClosed struct{}

// NoteUpserted inserts or replaces one note after a storage write succeeded.
type NoteUpserted struct{ Note *types.Note }

// NoteRemoved drops one note after a storage delete succeeded.
type NoteRemoved struct{ ID string }

func (NotesLoaded) isAction()   {}
func (SearchChanged) isAction() {}
func (TagSelected) isAction()   {}
func (TagCleared) isAction()    {}
func (SortChanged) isAction()   {}
func (EditorOpened) isAction()  {}
func (EditorClosed) isAction()  {}
func (NoteUpserted) isAction()  {}
func (NoteRemoved) isAction()   {}

// Apply returns the state after the action. The input state is not modified;
// the notes slice is copied on structural changes and shared otherwise.
func Apply(s State, action Action) State {
	switch a := action.(type) {
	case NotesLoaded:
		s.Notes = a.Notes
		// A stale tag selection would silently show an empty list forever.
		if s.SelectedTag != "" && !collectionHasTag(a.Notes, s.SelectedTag) {
			s.SelectedTag = ""
		}
	case SearchChanged:
		s.Search = a.Query
	case TagSelected:
		s.SelectedTag = types.NormalizeTag(a.Tag)
	case TagCleared:
		s.SelectedTag = ""
	case SortChanged:
		s.SortOrder = a.Order
	case EditorOpened:
		s.EditorOpen = true
		s.EditingID = a.ID
	case EditorClosed:
		s.EditorOpen = false
		s.EditingID = ""
	case NoteUpserted:
		if a.Note == nil {
			return s
		}
		notes := make([]*types.Note, 0, len(s.Notes)+1)
		replaced := false
		for _, n := range s.Notes {
			if n.ID == a.Note.ID {
				notes = append(notes, a.Note)
				replaced = true
			} else {
				notes = append(notes, n)
			}
		}
		if !replaced {
			notes = append(notes, a.Note)
		}
		s.Notes = notes
	case NoteRemoved:
		notes := make([]*types.Note, 0, len(s.Notes))
		for _, n := range s.Notes {
			if n.ID != a.ID {
				notes = append(notes, n)
			}
		}
		s.Notes = notes
		if s.EditingID == a.ID {
			s.EditorOpen = false
			s.EditingID = ""
		}
	}
	return s
}

// Filtered returns the derived note list: search text AND selected tag,
// sorted pinned-first then by the configured order. The result is a fresh
// slice; callers may reorder it freely.
func (s State) Filtered() []*types.Note {
	out := make([]*types.Note, 0, len(s.Notes))
	for _, n := range s.Notes {
		if !n.MatchesSearch(s.Search) {
			continue
		}
		if s.SelectedTag != "" && !n.HasTag(s.SelectedTag) {
			continue
		}
		out = append(out, n)
	}
	types.SortNotes(out, s.SortOrder)
	return out
}

// TagCount is one entry in the derived tag view.
type TagCount struct {
	Tag   string
	Count int
}

// Tags returns the derived tag set over the full collection (not the
// filtered list), sorted by tag name.
func (s State) Tags() []TagCount {
	counts := make(map[string]int)
	for _, n := range s.Notes {
		for _, t := range n.Tags {
			counts[t]++
		}
	}
	out := make([]TagCount, 0, len(counts))
	for tag, count := range counts {
		out = append(out, TagCount{Tag: tag, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Tag < out[j].Tag })
	return out
}

// Editing returns the note currently open in the editor, or nil when the
// editor is closed or composing a new note.
func (s State) Editing() *types.Note {
	if !s.EditorOpen || s.EditingID == "" {
		return nil
	}
	for _, n := range s.Notes {
		if n.ID == s.EditingID {
			return n
		}
	}
	return nil
}

func collectionHasTag(notes []*types.Note, tag string) bool {
	for _, n := range notes {
		if n.HasTag(tag) {
			return true
		}
	}
	return false
}
