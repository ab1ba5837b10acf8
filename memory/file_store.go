package memory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Fl0zWer/Paibot/logging"
)

// historyDocument is the on-disk layout: one JSON document per sanitized
// user identity.
type historyDocument struct {
	UserID    string   `json:"user_id"`
	History   []Record `json:"history"`
	UpdatedAt string   `json:"updated_at"`
}

// FileStoreOptions holds optional overrides passed to NewFileStore.
type FileStoreOptions struct {
	// Logger receives debug-level persistence events. Defaults to NoOp.
	Logger logging.Logger
}

// FileStore is a durable Store writing one JSON history file per sanitized
// user identity under a base directory. Saves replace the whole file through
// a temp file + rename so a reader never observes a partially written
// document. Concurrent turns for different users are safe (independent
// files); overlapping turns for the same user are not coordinated.
type FileStore struct {
	baseDir string
	logger  logging.Logger
}

// Compile-time assertion.
var _ Store = (*FileStore)(nil)

// NewFileStore creates the base directory if needed and returns the store.
func NewFileStore(baseDir string, optFns ...func(o *FileStoreOptions)) (*FileStore, error) {
	opts := FileStoreOptions{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create memory directory %s: %w", baseDir, err)
	}
	return &FileStore{baseDir: baseDir, logger: opts.Logger}, nil
}

// BaseDir returns the directory root where histories are stored.
func (s *FileStore) BaseDir() string { return s.baseDir }

// HistoryFile returns the path holding the given user's history.
func (s *FileStore) HistoryFile(userID string) string {
	return filepath.Join(s.baseDir, SanitizeUserID(userID)+".json")
}

// Load returns the stored history for a user, oldest record first. A missing
// file is first contact, not an error. A file that exists but cannot be
// decoded yields an error wrapping ErrCorruptHistory.
func (s *FileStore) Load(_ context.Context, userID string) ([]Record, error) {
	path := s.HistoryFile(userID)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Record{}, nil
		}
		return nil, fmt.Errorf("read history %s: %w", path, err)
	}
	var doc historyDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrCorruptHistory, path, err)
	}
	if doc.History == nil {
		return []Record{}, nil
	}
	return doc.History, nil
}

// Save fully overwrites the persisted history for a user, stamping the
// document with a fresh updated_at.
func (s *FileStore) Save(_ context.Context, userID string, history []Record) error {
	doc := historyDocument{UserID: userID, History: history, UpdatedAt: NowTimestamp()}
	if doc.History == nil {
		doc.History = []Record{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	// Content is Spanish-language text; keep it readable on disk.
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(&doc); err != nil {
		return fmt.Errorf("encode history for %s: %w", userID, err)
	}

	path := s.HistoryFile(userID)
	tmp, err := os.CreateTemp(s.baseDir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("write history %s: %w", path, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write history %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write history %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write history %s: %w", path, err)
	}

	s.logger.Debug("history saved", "user_id", userID, "records", len(doc.History))
	return nil
}

// Append adds a single record to the user's stored history.
func (s *FileStore) Append(ctx context.Context, userID string, record Record) error {
	return s.Extend(ctx, userID, []Record{record})
}

// Extend adds multiple records to the user's stored history.
func (s *FileStore) Extend(ctx context.Context, userID string, records []Record) error {
	history, err := s.Load(ctx, userID)
	if err != nil {
		return err
	}
	return s.Save(ctx, userID, append(history, records...))
}
