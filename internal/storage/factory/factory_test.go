package factory

import (
	"context"
	"testing"

	"github.com/quillnotes/quill/internal/configfile"
	"github.com/quillnotes/quill/internal/storage/local"
	"github.com/quillnotes/quill/internal/storage/memory"
	"github.com/quillnotes/quill/internal/storage/sqlite"
)

func TestOpenBackends(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	tests := []struct {
		backend  string
		wantType string
	}{
		{backend: "", wantType: "local"},
		{backend: "local", wantType: "local"},
		{backend: "sqlite", wantType: "sqlite"},
		{backend: "memory", wantType: "memory"},
	}

	for _, tt := range tests {
		t.Run("backend="+tt.backend, func(t *testing.T) {
			store, err := Open(ctx, dir, &configfile.Config{Backend: tt.backend})
			if err != nil {
				t.Fatalf("Open(%q) failed: %v", tt.backend, err)
			}
			defer func() { _ = store.Close() }()

			switch tt.wantType {
			case "local":
				if _, ok := store.(*local.LocalStore); !ok {
					t.Errorf("Open(%q) = %T, want *local.LocalStore", tt.backend, store)
				}
			case "sqlite":
				if _, ok := store.(*sqlite.SQLiteStore); !ok {
					t.Errorf("Open(%q) = %T, want *sqlite.SQLiteStore", tt.backend, store)
				}
			case "memory":
				if _, ok := store.(*memory.MemoryStore); !ok {
					t.Errorf("Open(%q) = %T, want *memory.MemoryStore", tt.backend, store)
				}
			}
		})
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	if _, err := Open(context.Background(), t.TempDir(), &configfile.Config{Backend: "dolt"}); err == nil {
		t.Error("Open(dolt) succeeded, want error")
	}
}

func TestOpenNilConfig(t *testing.T) {
	store, err := Open(context.Background(), t.TempDir(), nil)
	if err != nil {
		t.Fatalf("Open(nil) failed: %v", err)
	}
	defer func() { _ = store.Close() }()
	if _, ok := store.(*local.LocalStore); !ok {
		t.Errorf("Open(nil) = %T, want default local backend", store)
	}
}
