// Package types defines core data structures for the quill note store.
package types

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// MaxTitleLength is the longest title accepted by Validate.
const MaxTitleLength = 500

// Note represents a single stored note.
type Note struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Body      string     `json:"body,omitempty"`
	Tags      []string   `json:"tags,omitempty"`
	Pinned    bool       `json:"pinned,omitempty"` // Pinned notes sort ahead of everything else
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Validate checks that the note has valid field values.
func (n *Note) Validate() error {
	if len(strings.TrimSpace(n.Title)) == 0 {
		return fmt.Errorf("title is required")
	}
	if len(n.Title) > MaxTitleLength {
		return fmt.Errorf("title must be %d characters or less (got %d)", MaxTitleLength, len(n.Title))
	}
	for _, tag := range n.Tags {
		if err := ValidateTag(tag); err != nil {
			return err
		}
	}
	if n.UpdatedAt.Before(n.CreatedAt) {
		return fmt.Errorf("updated_at cannot precede created_at")
	}
	return nil
}

// NormalizeTag lowercases and trims a tag. Returns "" for blank input.
func NormalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

// ValidateTag checks a single (already normalized or raw) tag value.
func ValidateTag(tag string) error {
	norm := NormalizeTag(tag)
	if norm == "" {
		return fmt.Errorf("tag cannot be empty")
	}
	if strings.ContainsAny(norm, ", \t\n") {
		return fmt.Errorf("tag %q cannot contain spaces or commas", tag)
	}
	return nil
}

// NormalizeTags normalizes, dedupes, and sorts a tag list.
func NormalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		norm := NormalizeTag(t)
		if norm == "" || seen[norm] {
			continue
		}
		seen[norm] = true
		out = append(out, norm)
	}
	if len(out) == 0 {
		return nil
	}
	sort.Strings(out)
	return out
}

// HasTag reports whether the note carries the given tag (normalized compare).
func (n *Note) HasTag(tag string) bool {
	norm := NormalizeTag(tag)
	for _, t := range n.Tags {
		if t == norm {
			return true
		}
	}
	return false
}

// MatchesSearch reports whether the note matches a free-text query.
// Matching is a case-insensitive substring test over title, body, and tags.
// An empty query matches everything.
func (n *Note) MatchesSearch(query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}
	if strings.Contains(strings.ToLower(n.Title), query) {
		return true
	}
	if strings.Contains(strings.ToLower(n.Body), query) {
		return true
	}
	for _, t := range n.Tags {
		if strings.Contains(t, query) {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the note. Storage backends hand out clones so
// callers cannot mutate the canonical collection in place.
func (n *Note) Clone() *Note {
	if n == nil {
		return nil
	}
	c := *n
	if n.Tags != nil {
		c.Tags = append([]string(nil), n.Tags...)
	}
	return &c
}

// NoteFilter narrows List/Search results.
type NoteFilter struct {
	Tag        string     // Only notes carrying this tag
	PinnedOnly bool       // Only pinned notes
	Since      *time.Time // Only notes updated at or after this time
	Until      *time.Time // Only notes updated before this time
}

// Matches reports whether the note passes every populated filter field.
func (f NoteFilter) Matches(n *Note) bool {
	if f.Tag != "" && !n.HasTag(f.Tag) {
		return false
	}
	if f.PinnedOnly && !n.Pinned {
		return false
	}
	if f.Since != nil && n.UpdatedAt.Before(*f.Since) {
		return false
	}
	if f.Until != nil && !n.UpdatedAt.Before(*f.Until) {
		return false
	}
	return true
}
