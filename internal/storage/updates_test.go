package storage

import (
	"testing"
	"time"

	"github.com/quillnotes/quill/internal/types"
)

func TestApplyNoteUpdates(t *testing.T) {
	created := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	now := created.Add(time.Hour)

	base := func() *types.Note {
		return &types.Note{
			ID:        "ql-a1b2",
			Title:     "original",
			Body:      "body",
			Tags:      []string{"work"},
			CreatedAt: created,
			UpdatedAt: created,
		}
	}

	t.Run("updates fields and bumps timestamp", func(t *testing.T) {
		n := base()
		updates := map[string]interface{}{
			"title":  "new title",
			"body":   "new body",
			"pinned": true,
			"tags":   []string{"Home", "work"},
		}
		if err := ApplyNoteUpdates(n, updates, now); err != nil {
			t.Fatalf("ApplyNoteUpdates() failed: %v", err)
		}
		if n.Title != "new title" || n.Body != "new body" || !n.Pinned {
			t.Errorf("fields not applied: %+v", n)
		}
		if len(n.Tags) != 2 || n.Tags[0] != "home" || n.Tags[1] != "work" {
			t.Errorf("tags = %v, want [home work]", n.Tags)
		}
		if !n.UpdatedAt.Equal(now) {
			t.Errorf("UpdatedAt = %v, want %v", n.UpdatedAt, now)
		}
	})

	t.Run("tags from json decode as []interface{}", func(t *testing.T) {
		n := base()
		if err := ApplyNoteUpdates(n, map[string]interface{}{"tags": []interface{}{"a", "b"}}, now); err != nil {
			t.Fatalf("ApplyNoteUpdates() failed: %v", err)
		}
		if len(n.Tags) != 2 {
			t.Errorf("tags = %v, want 2 entries", n.Tags)
		}
	})

	t.Run("explicit updated_at wins over the bump", func(t *testing.T) {
		n := base()
		stamp := created.Add(30 * time.Minute)
		updates := map[string]interface{}{
			"body":       "merged body",
			"updated_at": stamp,
		}
		if err := ApplyNoteUpdates(n, updates, now); err != nil {
			t.Fatalf("ApplyNoteUpdates() failed: %v", err)
		}
		if !n.UpdatedAt.Equal(stamp) {
			t.Errorf("UpdatedAt = %v, want explicit %v", n.UpdatedAt, stamp)
		}
	})

	t.Run("rejects non-time updated_at", func(t *testing.T) {
		n := base()
		if err := ApplyNoteUpdates(n, map[string]interface{}{"updated_at": "2025-06-15"}, now); err == nil {
			t.Error("expected error for string updated_at")
		}
	})

	t.Run("rejects unknown field", func(t *testing.T) {
		n := base()
		if err := ApplyNoteUpdates(n, map[string]interface{}{"status": "open"}, now); err == nil {
			t.Error("expected error for unknown field")
		}
	})

	t.Run("rejects wrong type", func(t *testing.T) {
		n := base()
		if err := ApplyNoteUpdates(n, map[string]interface{}{"pinned": "yes"}, now); err == nil {
			t.Error("expected error for non-bool pinned")
		}
	})

	t.Run("rejects update that invalidates note", func(t *testing.T) {
		n := base()
		if err := ApplyNoteUpdates(n, map[string]interface{}{"title": ""}, now); err == nil {
			t.Error("expected validation error for empty title")
		}
	})
}
