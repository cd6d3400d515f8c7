package types

import (
	"sort"
	"strings"
)

// NoteSortField identifies a sortable note attribute.
type NoteSortField string

const (
	SortFieldUpdated NoteSortField = "updated"
	SortFieldCreated NoteSortField = "created"
	SortFieldTitle   NoteSortField = "title"
)

// SortDirection is asc or desc.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// NoteSortOption is one field/direction pair in a sort order.
type NoteSortOption struct {
	Field     NoteSortField
	Direction SortDirection
}

// DefaultNoteSortOptions returns the default ordering for note queries:
// most recently updated first. Pinned-first is applied on top by SortNotes
// regardless of the configured order.
func DefaultNoteSortOptions() []NoteSortOption {
	return []NoteSortOption{
		{Field: SortFieldUpdated, Direction: SortDesc},
	}
}

// ParseNoteSortOrder converts a comma-delimited string (e.g. "updated-desc,title-asc")
// into a slice of NoteSortOption values. Unrecognised fields or directions are skipped.
func ParseNoteSortOrder(raw string) []NoteSortOption {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	options := make([]NoteSortOption, 0, len(parts))
	seen := make(map[NoteSortField]bool)

	for _, part := range parts {
		token := strings.TrimSpace(part)
		if token == "" {
			continue
		}

		field, dir := splitSortToken(token)
		if field == "" || dir == "" {
			continue
		}

		sortField := mapSortField(field)
		if sortField == "" {
			continue
		}

		direction := mapSortDirection(dir)
		if direction == "" {
			continue
		}

		if seen[sortField] {
			continue
		}
		seen[sortField] = true

		options = append(options, NoteSortOption{
			Field:     sortField,
			Direction: direction,
		})
	}

	return options
}

// EncodeNoteSortOrder converts sort options back to their canonical string form.
func EncodeNoteSortOrder(options []NoteSortOption) string {
	if len(options) == 0 {
		return ""
	}

	tokens := make([]string, 0, len(options))
	for _, opt := range options {
		if opt.Field == "" || opt.Direction == "" {
			continue
		}
		tokens = append(tokens, string(opt.Field)+"-"+string(opt.Direction))
	}
	return strings.Join(tokens, ",")
}

// SortNotes orders notes in place: pinned notes first, then by the given
// options, falling back to the default order when options is empty.
// Ties break on ID for a stable total order.
func SortNotes(notes []*Note, options []NoteSortOption) {
	if len(options) == 0 {
		options = DefaultNoteSortOptions()
	}

	sort.SliceStable(notes, func(i, j int) bool {
		a, b := notes[i], notes[j]
		if a.Pinned != b.Pinned {
			return a.Pinned
		}
		for _, opt := range options {
			if cmp := compareNotes(a, b, opt.Field); cmp != 0 {
				if opt.Direction == SortDesc {
					return cmp > 0
				}
				return cmp < 0
			}
		}
		return a.ID < b.ID
	})
}

func compareNotes(a, b *Note, field NoteSortField) int {
	switch field {
	case SortFieldUpdated:
		return a.UpdatedAt.Compare(b.UpdatedAt)
	case SortFieldCreated:
		return a.CreatedAt.Compare(b.CreatedAt)
	case SortFieldTitle:
		return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
	default:
		return 0
	}
}

func splitSortToken(token string) (string, string) {
	if idx := strings.IndexAny(token, ":-"); idx >= 0 {
		left := strings.TrimSpace(token[:idx])
		right := strings.TrimSpace(token[idx+1:])
		return strings.ToLower(left), strings.ToLower(right)
	}
	token = strings.ToLower(token)
	switch token {
	case "updatedasc":
		return "updated", "asc"
	case "updateddesc":
		return "updated", "desc"
	case "createdasc":
		return "created", "asc"
	case "createddesc":
		return "created", "desc"
	case "titleasc":
		return "title", "asc"
	case "titledesc":
		return "title", "desc"
	default:
		return "", ""
	}
}

func mapSortField(raw string) NoteSortField {
	switch strings.ToLower(raw) {
	case "updated", "updated_at":
		return SortFieldUpdated
	case "created", "created_at":
		return SortFieldCreated
	case "title":
		return SortFieldTitle
	default:
		return ""
	}
}

func mapSortDirection(raw string) SortDirection {
	switch strings.ToLower(raw) {
	case "asc", "ascending":
		return SortAsc
	case "desc", "descending":
		return SortDesc
	default:
		return ""
	}
}
