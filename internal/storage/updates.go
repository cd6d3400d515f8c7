package storage

import (
	"fmt"
	"time"

	"github.com/quillnotes/quill/internal/types"
)

// ApplyNoteUpdates mutates note according to a partial update map and bumps
// UpdatedAt. Recognised keys: title, body, tags, pinned, updated_at. Shared by
// every provider so update semantics cannot drift between backends.
//
// An explicit updated_at overrides the bump: import uses it so a merged note
// keeps the timestamp it carried in the export rather than the wall clock.
func ApplyNoteUpdates(note *types.Note, updates map[string]interface{}, now time.Time) error {
	explicitStamp := false
	for key, value := range updates {
		switch key {
		case "title":
			s, ok := value.(string)
			if !ok {
				return fmt.Errorf("title must be a string (got %T)", value)
			}
			note.Title = s
		case "body":
			s, ok := value.(string)
			if !ok {
				return fmt.Errorf("body must be a string (got %T)", value)
			}
			note.Body = s
		case "tags":
			tags, err := toStringSlice(value)
			if err != nil {
				return fmt.Errorf("tags: %w", err)
			}
			note.Tags = types.NormalizeTags(tags)
		case "pinned":
			b, ok := value.(bool)
			if !ok {
				return fmt.Errorf("pinned must be a bool (got %T)", value)
			}
			note.Pinned = b
		case "updated_at":
			t, ok := value.(time.Time)
			if !ok {
				return fmt.Errorf("updated_at must be a time.Time (got %T)", value)
			}
			note.UpdatedAt = t
			explicitStamp = true
		default:
			return fmt.Errorf("unknown update field: %s", key)
		}
	}

	if !explicitStamp {
		note.UpdatedAt = now
	}
	return note.Validate()
}

func toStringSlice(value interface{}) ([]string, error) {
	switch v := value.(type) {
	case []string:
		return v, nil
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("expected string element (got %T)", item)
			}
			out = append(out, s)
		}
		return out, nil
	case nil:
		return nil, nil
	default:
		return nil, fmt.Errorf("expected string slice (got %T)", value)
	}
}
