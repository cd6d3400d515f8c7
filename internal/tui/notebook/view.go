package notebook

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/quillnotes/quill/internal/types"
	"github.com/quillnotes/quill/internal/ui"
)

// View renders the notebook.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Quill"))
	b.WriteString("\n")

	if m.mode == ModeSearch {
		b.WriteString(m.searchInput.View())
		b.WriteString("\n")
	} else if m.st.Search != "" {
		b.WriteString(mutedStyle.Render("search: "+m.st.Search) + "\n")
	}

	b.WriteString(m.renderTagBar())
	b.WriteString("\n")

	if m.mode == ModeEdit {
		b.WriteString(m.renderEditor())
	} else {
		b.WriteString(m.renderList())
	}

	if m.err != nil {
		b.WriteString("\n" + errorStyle.Render("error: "+m.err.Error()))
	} else if m.status != "" {
		b.WriteString("\n" + statusStyle.Render(m.status))
	}

	b.WriteString("\n" + m.help.View(m.keys))
	return b.String()
}

func (m *Model) renderTagBar() string {
	tags := m.st.Tags()
	if len(tags) == 0 {
		return mutedStyle.Render("no tags")
	}

	parts := make([]string, 0, len(tags))
	for _, tc := range tags {
		label := fmt.Sprintf("%s(%d)", tc.Tag, tc.Count)
		if tc.Tag == m.st.SelectedTag {
			parts = append(parts, selectedItemStyle.Render(label))
		} else {
			parts = append(parts, tagStyle.Render(label))
		}
	}
	return strings.Join(parts, " ")
}

func (m *Model) renderList() string {
	filtered := m.st.Filtered()
	if len(filtered) == 0 {
		if m.st.Search != "" || m.st.SelectedTag != "" {
			return mutedStyle.Render("no notes match the current filters")
		}
		return mutedStyle.Render("no notes yet — press n to create one")
	}

	var b strings.Builder
	for i, note := range filtered {
		b.WriteString(m.renderItem(note, i == m.cursor))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) renderItem(note *types.Note, selected bool) string {
	pin := "  "
	if note.Pinned {
		pin = pinnedMarkStyle.Render("📌")
	}

	title := ui.Summary(note.Title, 60)
	line := fmt.Sprintf("%s %s %s", pin, mutedStyle.Render(note.ID), title)
	if len(note.Tags) > 0 {
		line += " " + tagStyle.Render("["+strings.Join(note.Tags, ", ")+"]")
	}

	if selected {
		return selectedItemStyle.Render("> " + line)
	}
	return normalItemStyle.Render("  " + line)
}

func (m *Model) renderEditor() string {
	header := "New note"
	if m.st.EditingID != "" {
		header = "Editing " + m.st.EditingID
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		mutedStyle.Render(header),
		m.titleInput.View(),
		m.tagsInput.View(),
		m.bodyInput.View(),
		mutedStyle.Render("tab: next field · ctrl+s: save · esc: cancel"),
	)
	return editorFrameStyle.Render(body)
}
