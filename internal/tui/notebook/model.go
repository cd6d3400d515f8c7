// Package notebook provides the single-page Bubbletea UI over a note store.
//
// The model owns no list state of its own: every keystroke dispatches a
// reducer action and the view renders from the reducer's derived views
// (filtered list, tag set). Storage writes happen in tea commands; their
// results come back as messages and are folded into the reducer.
package notebook

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/quillnotes/quill/internal/idgen"
	"github.com/quillnotes/quill/internal/state"
	"github.com/quillnotes/quill/internal/storage"
	"github.com/quillnotes/quill/internal/types"
)

// Mode is the current input mode.
type Mode int

const (
	ModeBrowse Mode = iota
	ModeSearch      // Typing into the search input
	ModeEdit        // Editor open (new or existing note)
)

// Model is the Bubbletea model for the notebook TUI.
type Model struct {
	// Dimensions
	width, height int

	// Data
	store  storage.Store
	st     state.State
	cursor int

	// Input
	mode        Mode
	searchInput textinput.Model
	titleInput  textinput.Model
	tagsInput   textinput.Model
	bodyInput   textarea.Model
	editorField int // 0=title, 1=tags, 2=body

	// UI state
	keys     KeyMap
	help     help.Model
	showHelp bool
	status   string
	err      error
}

// New creates a new notebook model over the given store.
func New(store storage.Store) *Model {
	si := textinput.New()
	si.Placeholder = "search notes..."
	si.Prompt = "/ "

	ti := textinput.New()
	ti.Placeholder = "Title"
	ti.CharLimit = types.MaxTitleLength

	tg := textinput.New()
	tg.Placeholder = "tags (space separated)"

	ta := textarea.New()
	ta.Placeholder = "Write your note..."
	ta.SetHeight(8)

	h := help.New()
	h.ShowAll = false

	return &Model{
		store:       store,
		searchInput: si,
		titleInput:  ti,
		tagsInput:   tg,
		bodyInput:   ta,
		keys:        DefaultKeyMap(),
		help:        h,
	}
}

// State exposes the reducer state. Used by tests and the view.
func (m *Model) State() state.State {
	return m.st
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadNotes(),
		tea.SetWindowTitle("Quill"),
	)
}

// notesLoadedMsg carries a (re)loaded collection.
type notesLoadedMsg struct {
	notes []*types.Note
	err   error
}

// noteSavedMsg is sent after a create or update reaches storage.
type noteSavedMsg struct {
	note *types.Note
	err  error
}

// noteDeletedMsg is sent after a delete reaches storage.
type noteDeletedMsg struct {
	id  string
	err error
}

func (m *Model) loadNotes() tea.Cmd {
	return func() tea.Msg {
		notes, err := m.store.ListNotes(context.Background(), types.NoteFilter{})
		return notesLoadedMsg{notes: notes, err: err}
	}
}

func (m *Model) saveNote(id, title, body string, tags []string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if id == "" {
			now := time.Now()
			note := &types.Note{
				Title:     title,
				Body:      body,
				Tags:      types.NormalizeTags(tags),
				CreatedAt: now,
				UpdatedAt: now,
			}
			// Hash IDs can collide at this width; bump the nonce and retry.
			var err error
			for nonce := 0; nonce < 10; nonce++ {
				note.ID = idgen.GenerateHashID("ql", title, body, now, idgen.DefaultLength, nonce)
				if err = m.store.CreateNote(ctx, note); err == nil {
					return noteSavedMsg{note: note}
				}
				if !errors.Is(err, storage.ErrAlreadyExists) {
					break
				}
			}
			return noteSavedMsg{err: err}
		}

		updates := map[string]interface{}{
			"title": title,
			"body":  body,
			"tags":  tags,
		}
		if err := m.store.UpdateNote(ctx, id, updates); err != nil {
			return noteSavedMsg{err: err}
		}
		note, err := m.store.GetNote(ctx, id)
		return noteSavedMsg{note: note, err: err}
	}
}

func (m *Model) togglePin(note *types.Note) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if err := m.store.SetPinned(ctx, note.ID, !note.Pinned); err != nil {
			return noteSavedMsg{err: err}
		}
		updated, err := m.store.GetNote(ctx, note.ID)
		return noteSavedMsg{note: updated, err: err}
	}
}

func (m *Model) deleteNote(id string) tea.Cmd {
	return func() tea.Msg {
		err := m.store.DeleteNote(context.Background(), id)
		return noteDeletedMsg{id: id, err: err}
	}
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.bodyInput.SetWidth(min(msg.Width-6, 100))
		return m, nil

	case notesLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.st = state.Apply(m.st, state.NotesLoaded{Notes: msg.notes})
		m.clampCursor()
		return m, nil

	case noteSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.st = state.Apply(m.st, state.NoteUpserted{Note: msg.note})
		m.status = fmt.Sprintf("saved %s", msg.note.ID)
		return m, nil

	case noteDeletedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.st = state.Apply(m.st, state.NoteRemoved{ID: msg.id})
		m.status = fmt.Sprintf("deleted %s", msg.id)
		m.clampCursor()
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case ModeSearch:
			return m.updateSearch(msg)
		case ModeEdit:
			return m.updateEditor(msg)
		default:
			return m.updateBrowse(msg)
		}
	}

	return m, nil
}

func (m *Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.st.Filtered())-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.mode = ModeSearch
		m.searchInput.SetValue(m.st.Search)
		m.searchInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.NextTag):
		m.st = state.Apply(m.st, state.TagSelected{Tag: m.nextTag()})
		m.clampCursor()
		return m, nil

	case key.Matches(msg, m.keys.ClearTag):
		m.st = state.Apply(m.st, state.TagCleared{})
		return m, nil

	case key.Matches(msg, m.keys.Cancel):
		m.st = state.Apply(m.st, state.SearchChanged{Query: ""})
		m.st = state.Apply(m.st, state.TagCleared{})
		m.status = ""
		return m, nil

	case key.Matches(msg, m.keys.New):
		m.openEditor(nil)
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Edit):
		if note := m.selected(); note != nil {
			m.openEditor(note)
			return m, textinput.Blink
		}
		return m, nil

	case key.Matches(msg, m.keys.TogglePin):
		if note := m.selected(); note != nil {
			return m, m.togglePin(note)
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if note := m.selected(); note != nil {
			return m, m.deleteNote(note.ID)
		}
		return m, nil
	}

	return m, nil
}

func (m *Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.mode = ModeBrowse
		m.searchInput.Blur()
		return m, nil
	case "esc":
		m.mode = ModeBrowse
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		m.st = state.Apply(m.st, state.SearchChanged{Query: ""})
		m.clampCursor()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	// Live filtering: every keystroke narrows the list.
	m.st = state.Apply(m.st, state.SearchChanged{Query: m.searchInput.Value()})
	m.clampCursor()
	return m, cmd
}

func (m *Model) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.closeEditor()
		return m, nil

	case key.Matches(msg, m.keys.Save):
		title := m.titleInput.Value()
		body := m.bodyInput.Value()
		tags := splitTags(m.tagsInput.Value())
		id := m.st.EditingID
		m.closeEditor()
		return m, m.saveNote(id, title, body, tags)

	case msg.String() == "tab":
		m.focusEditorField((m.editorField + 1) % 3)
		return m, nil

	case msg.String() == "shift+tab":
		m.focusEditorField((m.editorField + 2) % 3)
		return m, nil
	}

	var cmd tea.Cmd
	switch m.editorField {
	case 0:
		m.titleInput, cmd = m.titleInput.Update(msg)
	case 1:
		m.tagsInput, cmd = m.tagsInput.Update(msg)
	default:
		m.bodyInput, cmd = m.bodyInput.Update(msg)
	}
	return m, cmd
}

func (m *Model) openEditor(note *types.Note) {
	m.mode = ModeEdit
	if note == nil {
		m.st = state.Apply(m.st, state.EditorOpened{})
		m.titleInput.SetValue("")
		m.tagsInput.SetValue("")
		m.bodyInput.SetValue("")
	} else {
		m.st = state.Apply(m.st, state.EditorOpened{ID: note.ID})
		m.titleInput.SetValue(note.Title)
		m.tagsInput.SetValue(joinTags(note.Tags))
		m.bodyInput.SetValue(note.Body)
	}
	m.focusEditorField(0)
}

func (m *Model) closeEditor() {
	m.mode = ModeBrowse
	m.st = state.Apply(m.st, state.EditorClosed{})
	m.titleInput.Blur()
	m.tagsInput.Blur()
	m.bodyInput.Blur()
}

func (m *Model) focusEditorField(field int) {
	m.editorField = field
	m.titleInput.Blur()
	m.tagsInput.Blur()
	m.bodyInput.Blur()
	switch field {
	case 0:
		m.titleInput.Focus()
	case 1:
		m.tagsInput.Focus()
	default:
		m.bodyInput.Focus()
	}
}

// selected returns the note under the cursor in the filtered view.
func (m *Model) selected() *types.Note {
	filtered := m.st.Filtered()
	if m.cursor < 0 || m.cursor >= len(filtered) {
		return nil
	}
	return filtered[m.cursor]
}

// nextTag cycles through the derived tag set: none -> first -> ... -> last -> none.
func (m *Model) nextTag() string {
	tags := m.st.Tags()
	if len(tags) == 0 {
		return ""
	}
	if m.st.SelectedTag == "" {
		return tags[0].Tag
	}
	for i, tc := range tags {
		if tc.Tag == m.st.SelectedTag {
			if i+1 < len(tags) {
				return tags[i+1].Tag
			}
			return ""
		}
	}
	return tags[0].Tag
}

func (m *Model) clampCursor() {
	if n := len(m.st.Filtered()); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// splitTags parses the tags input field. Commas and whitespace both
// separate; normalization happens later in the save path.
func splitTags(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

func joinTags(tags []string) string {
	return strings.Join(tags, " ")
}
