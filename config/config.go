// Package config builds the explicit configuration object handed into the
// store, model and bot constructors at process start. Core packages never
// consult the environment themselves; everything ambient is resolved here
// exactly once.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Placeholder scoping values used when deployment coordinates are absent.
// Missing coordinates degrade to these rather than failing.
const (
	DefaultOwner  = "unknown-owner"
	DefaultRepo   = "unknown-repo"
	DefaultBranch = "unknown-branch"
)

// Config contains all runtime settings for Paibot.
type Config struct {
	// Deployment scoping coordinates; parallel deployments and branches
	// never share memory.
	Owner  string `yaml:"owner"`
	Repo   string `yaml:"repo"`
	Branch string `yaml:"branch"`

	// GeminiAPIKey is the model-access credential. Never read from a
	// config file, only from the environment.
	GeminiAPIKey string `yaml:"-"`

	Provider  string `yaml:"provider"` // gemini, openai or anthropic
	ModelName string `yaml:"model"`

	DocsDir       string `yaml:"docs_dir"`
	MemoryDir     string `yaml:"memory_dir"`
	HistoryWindow int    `yaml:"history_window"`

	PersonaName    string   `yaml:"persona_name"`
	MentionAliases []string `yaml:"mention_aliases"`
	Emotes         []string `yaml:"emotes"`
}

// Load reads environment variables and applies safe defaults.
func Load() (Config, error) {
	cfg := Config{
		Owner:        envOrDefault("GITHUB_REPO_OWNER", DefaultOwner),
		Repo:         envOrDefault("GITHUB_REPO_NAME", DefaultRepo),
		Branch:       envOrDefault("GITHUB_BRANCH", DefaultBranch),
		GeminiAPIKey: strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		Provider:     envOrDefault("PAIBOT_PROVIDER", "gemini"),
		ModelName:    envOrDefault("PAIBOT_MODEL", "gemini-pro"),
		DocsDir:      envOrDefault("PAIBOT_DOCS_DIR", "commands"),
		MemoryDir:    envOrDefault("PAIBOT_MEMORY_DIR", "memory"),
	}

	var err error
	cfg.HistoryWindow, err = intFromEnv("PAIBOT_HISTORY_WINDOW", 12)
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// MergeFile overlays values from a YAML file onto the receiver. Keys absent
// from the file keep their current values; the credential is never read from
// the file.
func (c Config) MergeFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file %s: %w", path, err)
	}
	out := c
	if err := yaml.Unmarshal(data, &out); err != nil {
		return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return out, nil
}

// MemoryBaseDir returns the per-deployment storage root derived from the
// scoping coordinates.
func (c Config) MemoryBaseDir() string {
	return filepath.Join(c.MemoryDir, c.Owner, c.Repo, c.Branch)
}

// envOrDefault returns the trimmed environment value or the fallback when the
// variable is unset or blank.
func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func intFromEnv(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
