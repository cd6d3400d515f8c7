package notebook

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/quillnotes/quill/internal/storage/memory"
	"github.com/quillnotes/quill/internal/types"
)

func seedStore(t *testing.T) *memory.MemoryStore {
	t.Helper()
	store := memory.New()
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	notes := []*types.Note{
		{ID: "ql-a1", Title: "Grocery list", Body: "milk\neggs", Tags: []string{"home"}, CreatedAt: now, UpdatedAt: now},
		{ID: "ql-b2", Title: "Standup notes", Body: "blocked on review", Tags: []string{"work"}, CreatedAt: now, UpdatedAt: now.Add(time.Hour)},
		{ID: "ql-c3", Title: "Deploy checklist", Body: "", Tags: []string{"work", "ops"}, Pinned: true, CreatedAt: now, UpdatedAt: now.Add(2 * time.Hour)},
	}
	for _, n := range notes {
		if err := store.CreateNote(context.Background(), n); err != nil {
			t.Fatalf("CreateNote(%s) failed: %v", n.ID, err)
		}
	}
	return store
}

// drain runs a command pipeline to completion, feeding each produced message
// back into the model. Batch commands are expanded in order.
func drain(t *testing.T, m *Model, cmd tea.Cmd) *Model {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		msg := c()
		if batch, ok := msg.(tea.BatchMsg); ok {
			queue = append(queue, batch...)
			continue
		}
		updated, next := m.Update(msg)
		m = updated.(*Model)
		if next != nil {
			queue = append(queue, next)
		}
	}
	return m
}

func press(t *testing.T, m *Model, keys ...string) *Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "ctrl+s":
			msg = tea.KeyMsg{Type: tea.KeyCtrlS}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		updated, cmd := m.Update(msg)
		m = updated.(*Model)
		m = drain(t, m, cmd)
	}
	return m
}

func newLoaded(t *testing.T) *Model {
	t.Helper()
	m := New(seedStore(t))
	return drain(t, m, m.loadNotes())
}

func TestInitLoadsNotes(t *testing.T) {
	m := newLoaded(t)
	if got := len(m.State().Notes); got != 3 {
		t.Fatalf("loaded %d notes, want 3", got)
	}
	// Pinned note sorts first regardless of recency.
	if got := m.State().Filtered()[0].ID; got != "ql-c3" {
		t.Errorf("first note = %s, want pinned ql-c3", got)
	}
}

func TestCursorNavigation(t *testing.T) {
	m := newLoaded(t)
	if m.cursor != 0 {
		t.Fatalf("initial cursor = %d, want 0", m.cursor)
	}
	m = press(t, m, "j", "j")
	if m.cursor != 2 {
		t.Errorf("cursor after jj = %d, want 2", m.cursor)
	}
	// Does not run past the end.
	m = press(t, m, "j")
	if m.cursor != 2 {
		t.Errorf("cursor after jjj = %d, want 2", m.cursor)
	}
	m = press(t, m, "k", "k", "k")
	if m.cursor != 0 {
		t.Errorf("cursor after kkk = %d, want 0", m.cursor)
	}
}

func TestLiveSearchFiltersList(t *testing.T) {
	m := newLoaded(t)
	m = press(t, m, "/")
	if m.mode != ModeSearch {
		t.Fatalf("mode after / = %v, want ModeSearch", m.mode)
	}
	m = press(t, m, "g", "r", "o", "c")
	filtered := m.State().Filtered()
	if len(filtered) != 1 || filtered[0].ID != "ql-a1" {
		t.Fatalf("filtered = %v, want [ql-a1]", noteIDs(filtered))
	}
	// Enter keeps the query active, esc clears it.
	m = press(t, m, "enter")
	if m.mode != ModeBrowse || m.State().Search != "groc" {
		t.Errorf("after enter: mode=%v search=%q, want browse with query kept", m.mode, m.State().Search)
	}
	m = press(t, m, "/", "esc")
	if m.State().Search != "" {
		t.Errorf("search after esc = %q, want cleared", m.State().Search)
	}
}

func TestTagCycling(t *testing.T) {
	m := newLoaded(t)

	// Tags sort alphabetically: home, ops, work. Cycling walks the set and
	// wraps back to no filter.
	want := []string{"home", "ops", "work", ""}
	for _, tag := range want {
		m = press(t, m, "t")
		if m.State().SelectedTag != tag {
			t.Fatalf("SelectedTag = %q, want %q", m.State().SelectedTag, tag)
		}
	}

	m = press(t, m, "t", "t")
	m = press(t, m, "T")
	if m.State().SelectedTag != "" {
		t.Errorf("SelectedTag after T = %q, want cleared", m.State().SelectedTag)
	}
}

func TestCreateNoteThroughEditor(t *testing.T) {
	m := newLoaded(t)
	m = press(t, m, "n")
	if m.mode != ModeEdit || !m.State().EditorOpen {
		t.Fatalf("mode after n = %v (editor open %v), want edit mode", m.mode, m.State().EditorOpen)
	}

	m.titleInput.SetValue("Call dentist")
	m.tagsInput.SetValue("home errands")
	m.bodyInput.SetValue("ask about friday")
	m = press(t, m, "ctrl+s")

	if m.mode != ModeBrowse {
		t.Fatalf("mode after save = %v, want browse", m.mode)
	}
	if got := len(m.State().Notes); got != 4 {
		t.Fatalf("notes after create = %d, want 4", got)
	}

	var created *types.Note
	for _, n := range m.State().Notes {
		if n.Title == "Call dentist" {
			created = n
		}
	}
	if created == nil {
		t.Fatal("created note not found in state")
	}
	if len(created.Tags) != 2 || created.Tags[0] != "errands" || created.Tags[1] != "home" {
		t.Errorf("created tags = %v, want normalized [errands home]", created.Tags)
	}

	// The write reached the store, not just the view state.
	stored, err := m.store.GetNote(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetNote(%s) failed: %v", created.ID, err)
	}
	if stored.Body != "ask about friday" {
		t.Errorf("stored body = %q, want %q", stored.Body, "ask about friday")
	}
}

func TestEditExistingNote(t *testing.T) {
	m := newLoaded(t)
	m = press(t, m, "enter") // cursor 0 = pinned ql-c3
	if m.State().EditingID != "ql-c3" {
		t.Fatalf("EditingID = %q, want ql-c3", m.State().EditingID)
	}
	if got := m.titleInput.Value(); got != "Deploy checklist" {
		t.Fatalf("editor title = %q, want prefilled", got)
	}

	m.titleInput.SetValue("Deploy runbook")
	m = press(t, m, "ctrl+s")

	stored, err := m.store.GetNote(context.Background(), "ql-c3")
	if err != nil {
		t.Fatalf("GetNote failed: %v", err)
	}
	if stored.Title != "Deploy runbook" {
		t.Errorf("stored title = %q, want %q", stored.Title, "Deploy runbook")
	}
	if got := len(m.State().Notes); got != 3 {
		t.Errorf("notes after edit = %d, want 3 (upsert, not append)", got)
	}
}

func TestEditorCancelDiscards(t *testing.T) {
	m := newLoaded(t)
	m = press(t, m, "n")
	m.titleInput.SetValue("Scratch")
	m = press(t, m, "esc")

	if m.mode != ModeBrowse || m.State().EditorOpen {
		t.Errorf("editor still open after esc")
	}
	if got := len(m.State().Notes); got != 3 {
		t.Errorf("notes after cancel = %d, want 3", got)
	}
}

func TestTogglePin(t *testing.T) {
	m := newLoaded(t)
	m = press(t, m, "j", "p") // cursor 1 = ql-b2 (most recent unpinned)

	stored, err := m.store.GetNote(context.Background(), "ql-b2")
	if err != nil {
		t.Fatalf("GetNote failed: %v", err)
	}
	if !stored.Pinned {
		t.Error("ql-b2 not pinned after p")
	}
	// Pinning touches UpdatedAt, so the note jumps to the head of the
	// pinned group under the default updated-desc order.
	if got := m.State().Filtered()[0].ID; got != "ql-b2" {
		t.Errorf("first note = %s, want freshly pinned ql-b2", got)
	}
}

func TestDeleteNote(t *testing.T) {
	m := newLoaded(t)
	m = press(t, m, "d") // delete pinned ql-c3 under cursor

	if got := len(m.State().Notes); got != 2 {
		t.Fatalf("notes after delete = %d, want 2", got)
	}
	if _, err := m.store.GetNote(context.Background(), "ql-c3"); err == nil {
		t.Error("ql-c3 still in store after delete")
	}
	if m.cursor < 0 || m.cursor >= len(m.State().Filtered()) {
		t.Errorf("cursor %d out of range after delete", m.cursor)
	}
}

func TestDeleteLastNoteKeepsCursorValid(t *testing.T) {
	m := newLoaded(t)
	m = press(t, m, "j", "j", "d")
	if m.cursor != 1 {
		t.Errorf("cursor after deleting last item = %d, want 1", m.cursor)
	}
}

func TestSplitAndJoinTags(t *testing.T) {
	tags := splitTags("  work,  ops home ")
	if len(tags) != 3 {
		t.Fatalf("splitTags = %v, want 3 entries", tags)
	}
	if got := joinTags([]string{"a", "b"}); got != "a b" {
		t.Errorf("joinTags = %q, want %q", got, "a b")
	}
}

func noteIDs(notes []*types.Note) []string {
	ids := make([]string, len(notes))
	for i, n := range notes {
		ids[i] = n.ID
	}
	return ids
}
