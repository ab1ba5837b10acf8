package command

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// DefaultExtension is the file extension recognized as documentation.
const DefaultExtension = ".md"

// Document is a named documentation entry describing a single command.
// Immutable once loaded.
type Document struct {
	Name    string // unique key, lower-cased file base name
	Content string // full text body, read verbatim
	Path    string // origin file, for user-facing citation
}

// Summary returns the first paragraph (blank-line separated) of the
// document, or the whole trimmed content when no paragraph break exists.
func (d Document) Summary() string {
	for _, section := range strings.Split(d.Content, "\n\n") {
		if s := strings.TrimSpace(section); s != "" {
			return s
		}
	}
	return strings.TrimSpace(d.Content)
}

// ReferenceOptions holds optional overrides passed to NewReference.
type ReferenceOptions struct {
	// Extension selects which files in the directory are documentation.
	Extension string
}

// Reference provides lookup over the documentation set loaded from a
// directory. Keys keep their load order (sorted file names) so the fallback
// substring scans are deterministic. Lookups and Refresh are guarded by a
// RWMutex so a Watcher can reload concurrently with readers.
type Reference struct {
	dir string
	ext string

	mu    sync.RWMutex
	names []string // load order
	docs  map[string]Document
}

// NewReference loads all documentation files from dir. A missing directory
// yields an empty (but functional) reference, not an error.
func NewReference(dir string, optFns ...func(o *ReferenceOptions)) (*Reference, error) {
	opts := ReferenceOptions{Extension: DefaultExtension}
	for _, fn := range optFns {
		fn(&opts)
	}
	r := &Reference{dir: dir, ext: opts.Extension}
	if err := r.Refresh(); err != nil {
		return nil, err
	}
	return r, nil
}

// Dir returns the documentation directory this reference reads from.
func (r *Reference) Dir() string { return r.dir }

// Refresh clears the loaded set and reloads it from disk, picking up
// documentation changes without a restart. The swap is atomic from a
// reader's perspective.
func (r *Reference) Refresh() error {
	pattern := filepath.Join(r.dir, "*"+r.ext)
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return fmt.Errorf("scan documentation %s: %w", pattern, err)
	}

	names := make([]string, 0, len(matches))
	docs := make(map[string]Document, len(matches))
	for _, path := range matches {
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read documentation %s: %w", path, err)
		}
		base := filepath.Base(path)
		name := strings.ToLower(strings.TrimSuffix(base, r.ext))
		if _, exists := docs[name]; !exists {
			names = append(names, name)
		}
		docs[name] = Document{Name: name, Content: string(content), Path: path}
	}

	r.mu.Lock()
	r.names = names
	r.docs = docs
	r.mu.Unlock()
	return nil
}

// Len reports how many documents are loaded.
func (r *Reference) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.docs)
}

// Available returns the known command keys in load order.
func (r *Reference) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Get performs an exact case-insensitive key lookup. Absence is reported via
// the second return, never as an error.
func (r *Reference) Get(name string) (Document, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.docs[strings.ToLower(name)]
	return doc, ok
}

// FindBestMatch resolves a query to a document: an exact key wins, otherwise
// the first document (in load order) whose key is a substring of the query
// or vice versa. This is a deliberate first-match heuristic; upgrading it to
// a real similarity search would change observable behavior.
func (r *Reference) FindBestMatch(query string) (Document, bool) {
	normalized := strings.ToLower(query)
	r.mu.RLock()
	defer r.mu.RUnlock()
	if doc, ok := r.docs[normalized]; ok {
		return doc, true
	}
	for _, name := range r.names {
		if strings.Contains(normalized, name) || strings.Contains(name, normalized) {
			return r.docs[name], true
		}
	}
	return Document{}, false
}
