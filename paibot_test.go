package paibot

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fl0zWer/Paibot/config"
	"github.com/Fl0zWer/Paibot/model"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()

	docsDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(docsDir, "jump.md"), []byte("Salta sobre un bloque."), 0o644))

	return config.Config{
		Owner:     "fl0zwer",
		Repo:      "paibot",
		Branch:    "main",
		DocsDir:   docsDir,
		MemoryDir: t.TempDir(),
	}
}

func TestNewWiresFromConfig(t *testing.T) {
	cfg := testConfig(t)
	mock := model.NewMockModel("mock")

	p, err := New(cfg, func(o *Options) {
		o.Model = mock
	})
	require.NoError(t, err)

	reply, err := p.Respond(context.Background(), "fl0zwer", "Hola")
	require.NoError(t, err)
	assert.NotEmpty(t, reply)

	// Persisted under the deployment coordinates.
	historyPath := filepath.Join(cfg.MemoryDir, "fl0zwer", "paibot", "main", "fl0zwer.json")
	_, err = os.Stat(historyPath)
	assert.NoError(t, err)

	assert.Equal(t, 1, p.Commands().Len())
}

func TestNewMissingCredentialFails(t *testing.T) {
	cfg := testConfig(t)

	_, err := New(cfg)
	require.Error(t, err)
}

func TestNewUnknownProvider(t *testing.T) {
	cfg := testConfig(t)
	cfg.Provider = "llama-local"

	_, err := New(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "llama-local")
}

func TestRespondUsesConfiguredPersonaName(t *testing.T) {
	cfg := testConfig(t)
	cfg.PersonaName = "Paimon"

	p, err := New(cfg, func(o *Options) {
		o.Model = model.NewMockModel("mock")
	})
	require.NoError(t, err)

	reply, err := p.Respond(context.Background(), "fl0zwer", "hola paimon")
	require.NoError(t, err)
	assert.Contains(t, reply, "Paimon piensa que")
}
