package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/quillnotes/quill/internal/types"
	"github.com/quillnotes/quill/internal/ui"
)

// printJSON writes v as indented JSON to stdout.
func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// displayNoteList prints notes one per line: pin marker, ID, title summary,
// tags, relative age.
func displayNoteList(notes []*types.Note) {
	if len(notes) == 0 {
		fmt.Println(ui.RenderMuted("No notes found."))
		return
	}

	for _, n := range notes {
		pin := "  "
		if n.Pinned {
			pin = ui.PinStyle.Render(ui.IconPin)
		}
		line := fmt.Sprintf("%s %s %s", pin, ui.RenderMuted(n.ID), ui.Summary(n.Title, 70))
		if len(n.Tags) > 0 {
			line += " " + ui.RenderTags(n.Tags)
		}
		line += " " + ui.RenderMuted(relativeAge(n.UpdatedAt))
		fmt.Println(line)
	}
	fmt.Println(ui.RenderMuted(fmt.Sprintf("\n%d note(s)", len(notes))))
}

// displayNote prints one note in full: header, metadata, rendered body.
func displayNote(n *types.Note, full bool) {
	header := n.Title
	if n.Pinned {
		header = ui.PinStyle.Render(ui.IconPin+" ") + header
	}
	fmt.Printf("%s %s\n", ui.RenderAccent(n.ID), header)

	fmt.Printf("%s %s  %s %s\n",
		ui.RenderCategory("created:"), n.CreatedAt.Local().Format("2006-01-02 15:04"),
		ui.RenderCategory("updated:"), relativeAge(n.UpdatedAt))
	if len(n.Tags) > 0 {
		fmt.Printf("%s %s\n", ui.RenderCategory("tags:"), ui.RenderTags(n.Tags))
	}

	if n.Body == "" {
		return
	}
	fmt.Println(ui.RenderSeparator())
	body := ui.RenderMarkdown(n.Body)
	if !full {
		body = ui.TruncateLines(body, ui.DefaultMaxLines, ui.DefaultContextLines)
	}
	fmt.Println(body)
}

// relativeAge renders an updated-at timestamp as a compact age ("3h ago").
func relativeAge(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 30*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Local().Format("2006-01-02")
	}
}
