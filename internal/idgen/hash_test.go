package idgen

import (
	"strings"
	"testing"
	"time"
)

func TestEncodeBase36(t *testing.T) {
	tests := []struct {
		name   string
		data   []byte
		length int
		want   string
	}{
		{name: "zero pads", data: []byte{0}, length: 4, want: "0000"},
		{name: "single byte", data: []byte{35}, length: 2, want: "0z"},
		{name: "truncates to length", data: []byte{255, 255, 255, 255}, length: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EncodeBase36(tt.data, tt.length)
			if len(got) != tt.length {
				t.Errorf("EncodeBase36() length = %d, want %d", len(got), tt.length)
			}
			if tt.want != "" && got != tt.want {
				t.Errorf("EncodeBase36() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGenerateHashID(t *testing.T) {
	ts := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	id := GenerateHashID("ql", "title", "body", ts, 4, 0)
	if !strings.HasPrefix(id, "ql-") {
		t.Errorf("GenerateHashID() = %q, want ql- prefix", id)
	}
	if len(id) != len("ql-")+4 {
		t.Errorf("GenerateHashID() = %q, want 4-char hash", id)
	}

	// Deterministic for identical inputs
	if again := GenerateHashID("ql", "title", "body", ts, 4, 0); again != id {
		t.Errorf("GenerateHashID() not deterministic: %q vs %q", id, again)
	}

	// Nonce changes the ID (collision recovery path)
	if bumped := GenerateHashID("ql", "title", "body", ts, 4, 1); bumped == id {
		t.Errorf("GenerateHashID() with nonce 1 = %q, want different from nonce 0", bumped)
	}

	// Lowercase base36 only
	hash := strings.TrimPrefix(id, "ql-")
	for _, r := range hash {
		if !strings.ContainsRune(base36Alphabet, r) {
			t.Errorf("hash %q contains non-base36 rune %q", hash, r)
		}
	}
}
