package command

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fl0zWer/Paibot/logging"
)

func writeDoc(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func newTestReference(t *testing.T) (*Reference, string) {
	t.Helper()
	dir := t.TempDir()
	writeDoc(t, dir, "jump.md", "El comando jump hace saltar al jugador.\n\nEjemplo:\n  !jump 3")
	writeDoc(t, dir, "spawn.md", "Crea un objeto en la posición actual.")
	writeDoc(t, dir, "Teleport.md", "Teletransporta al jugador.")
	ref, err := NewReference(dir)
	require.NoError(t, err)
	return ref, dir
}

func TestNewReference_LoadsLowerCasedKeys(t *testing.T) {
	ref, _ := newTestReference(t)
	assert.Equal(t, 3, ref.Len())
	assert.Equal(t, []string{"jump", "spawn", "teleport"}, ref.Available())
}

func TestNewReference_MissingDirectoryIsEmpty(t *testing.T) {
	ref, err := NewReference(filepath.Join(t.TempDir(), "no-existe"))
	require.NoError(t, err)
	assert.Zero(t, ref.Len())
	_, ok := ref.Get("jump")
	assert.False(t, ok)
}

func TestReference_GetIsCaseInsensitive(t *testing.T) {
	ref, _ := newTestReference(t)
	doc, ok := ref.Get("JUMP")
	require.True(t, ok)
	assert.Equal(t, "jump", doc.Name)

	doc, ok = ref.Get("teleport")
	require.True(t, ok)
	assert.Contains(t, doc.Path, "Teleport.md")

	_, ok = ref.Get("inexistente")
	assert.False(t, ok)
}

func TestDocument_Summary(t *testing.T) {
	ref, _ := newTestReference(t)
	doc, _ := ref.Get("jump")
	assert.Equal(t, "El comando jump hace saltar al jugador.", doc.Summary())

	// No paragraph break: the whole trimmed content is the summary.
	doc, _ = ref.Get("spawn")
	assert.Equal(t, "Crea un objeto en la posición actual.", doc.Summary())

	assert.Equal(t, "", Document{Content: "\n\n  \n"}.Summary())
}

func TestReference_FindBestMatch(t *testing.T) {
	ref, _ := newTestReference(t)

	// Exact key wins.
	doc, ok := ref.FindBestMatch("spawn")
	require.True(t, ok)
	assert.Equal(t, "spawn", doc.Name)

	// Key contained in the query.
	doc, ok = ref.FindBestMatch("jumping")
	require.True(t, ok)
	assert.Equal(t, "jump", doc.Name)

	// Query contained in a key.
	doc, ok = ref.FindBestMatch("tele")
	require.True(t, ok)
	assert.Equal(t, "teleport", doc.Name)

	_, ok = ref.FindBestMatch("volar")
	assert.False(t, ok)
}

func TestReference_FindBestMatchIsFirstMatchNotBest(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "b-longer.md", "doc b")
	writeDoc(t, dir, "lo.md", "doc lo")
	ref, err := NewReference(dir)
	require.NoError(t, err)

	// Both keys match "lon" ("b-longer" contains it, "lo" is contained in
	// it) but load order decides, not closeness: the first scanned key wins.
	doc, ok := ref.FindBestMatch("lon")
	require.True(t, ok)
	assert.Equal(t, "b-longer", doc.Name, "first load-order match must win")
}

func TestReference_Refresh(t *testing.T) {
	ref, dir := newTestReference(t)
	writeDoc(t, dir, "fly.md", "Permite volar.")
	require.NoError(t, ref.Refresh())
	assert.Equal(t, 4, ref.Len())
	doc, ok := ref.Get("fly")
	require.True(t, ok)
	assert.Equal(t, "Permite volar.", doc.Content)

	require.NoError(t, os.Remove(filepath.Join(dir, "fly.md")))
	require.NoError(t, ref.Refresh())
	_, ok = ref.Get("fly")
	assert.False(t, ok)
}

func TestReference_WatchReloadsOnChange(t *testing.T) {
	ref, dir := newTestReference(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = ref.Watch(ctx, logging.NoOpLogger{})
	}()

	// Give the watcher a moment to register before writing.
	time.Sleep(100 * time.Millisecond)
	writeDoc(t, dir, "dash.md", "Acelera al jugador.")

	assert.Eventually(t, func() bool {
		_, ok := ref.Get("dash")
		return ok
	}, 5*time.Second, 50*time.Millisecond, "watcher should pick up new documentation")

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop on context cancellation")
	}
}
