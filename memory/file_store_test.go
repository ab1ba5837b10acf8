package memory

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSanitizeUserID(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"alice", "alice"},
		{"alice.smith-99_x", "alice.smith-99_x"},
		{"../etc/passwd", ".._etc_passwd"},
		{"user name!", "user_name_"},
		{"ñandú", "_and_"},
		{"", AnonymousUserID},
		{"///", AnonymousUserID},
		{"!!!", AnonymousUserID},
	}
	for _, c := range cases {
		if got := SanitizeUserID(c.in); got != c.want {
			t.Errorf("SanitizeUserID(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestSanitizeUserID_OnlySafeChars(t *testing.T) {
	got := SanitizeUserID("../../tmp/¡hola señor!")
	for _, r := range got {
		if !strings.ContainsRune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789_.-", r) {
			t.Fatalf("unsafe rune %q survived sanitization: %q", r, got)
		}
	}
}

func TestFileStore_LoadMissingIsFirstContact(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	history, err := store.Load(context.Background(), "nuevo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(history) != 0 {
		t.Fatalf("expected empty history, got %d records", len(history))
	}
}

func TestFileStore_SaveAndLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	history := []Record{
		NewRecord(RoleUser, "Hola, ¿cómo estás?"),
		NewRecordWithMetadata(RoleAssistant, "¡Paimon está muy bien! ✨", map[string]string{"mention": "true"}),
	}
	if err := store.Save(ctx, "viajero", history); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := store.Load(ctx, "viajero")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("expected 2 records, got %d", len(loaded))
	}
	if loaded[0].Role != RoleUser || loaded[0].Content != "Hola, ¿cómo estás?" {
		t.Fatalf("unexpected first record: %#v", loaded[0])
	}
	if loaded[1].Metadata["mention"] != "true" {
		t.Fatalf("metadata lost on round trip: %#v", loaded[1])
	}
	if loaded[1].Content != "¡Paimon está muy bien! ✨" {
		t.Fatalf("non-ASCII content mangled: %q", loaded[1].Content)
	}
}

func TestFileStore_DocumentLayout(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if err := store.Save(ctx, "viajero", []Record{NewRecord(RoleUser, "hola")}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	raw, err := os.ReadFile(store.HistoryFile("viajero"))
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("persisted document is not valid JSON: %v", err)
	}
	if doc["user_id"] != "viajero" {
		t.Fatalf("unexpected user_id: %v", doc["user_id"])
	}
	if _, ok := doc["updated_at"].(string); !ok {
		t.Fatalf("missing updated_at: %v", doc["updated_at"])
	}
	records, ok := doc["history"].([]any)
	if !ok || len(records) != 1 {
		t.Fatalf("unexpected history field: %v", doc["history"])
	}
	// Absent metadata must be omitted, never serialized as null.
	if strings.Contains(string(raw), "metadata") {
		t.Fatalf("metadata key present for record without metadata:\n%s", raw)
	}
}

func TestFileStore_SaveOverwritesNotMerges(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if err := store.Save(ctx, "u", []Record{NewRecord(RoleUser, "uno"), NewRecord(RoleAssistant, "dos")}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := store.Save(ctx, "u", []Record{NewRecord(RoleUser, "tres")}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, _ := store.Load(ctx, "u")
	if len(loaded) != 1 || loaded[0].Content != "tres" {
		t.Fatalf("expected full overwrite, got %#v", loaded)
	}
}

func TestFileStore_AppendAndExtend(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if err := store.Append(ctx, "u", NewRecord(RoleUser, "primero")); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if err := store.Extend(ctx, "u", []Record{
		NewRecord(RoleAssistant, "segundo"),
		NewRecord(RoleUser, "tercero"),
	}); err != nil {
		t.Fatalf("extend failed: %v", err)
	}
	loaded, _ := store.Load(ctx, "u")
	if len(loaded) != 3 || loaded[2].Content != "tercero" {
		t.Fatalf("unexpected history after append/extend: %#v", loaded)
	}
}

func TestFileStore_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "roto.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}
	_, err = store.Load(context.Background(), "roto")
	if !errors.Is(err, ErrCorruptHistory) {
		t.Fatalf("expected ErrCorruptHistory, got %v", err)
	}
}

func TestFileStore_UnsafeIdentityStaysInsideBaseDir(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if err := store.Save(context.Background(), "../escape", []Record{NewRecord(RoleUser, "hola")}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	path := store.HistoryFile("../escape")
	rel, err := filepath.Rel(dir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		t.Fatalf("history file escaped base dir: %s", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected file at %s: %v", path, err)
	}
}
