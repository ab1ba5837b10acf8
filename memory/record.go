package memory

import "time"

// TimestampLayout is the fixed fractional-second UTC layout stamped on every
// record and on the document's updated_at field.
const TimestampLayout = "2006-01-02T15:04:05.000000Z"

// Conversation roles stored in a history.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Record is a single conversational turn. Records are created once by the
// orchestrator and immutable afterwards; only the whole per-user sequence is
// ever rewritten.
type Record struct {
	Role      string            `json:"role"`
	Content   string            `json:"content"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	Timestamp string            `json:"timestamp"`
}

// NewRecord creates a record stamped with the current UTC instant.
func NewRecord(role, content string) Record {
	return Record{Role: role, Content: content, Timestamp: NowTimestamp()}
}

// NewRecordWithMetadata creates a stamped record carrying metadata. A nil map
// is omitted from the serialized form rather than written as null.
func NewRecordWithMetadata(role, content string, metadata map[string]string) Record {
	r := NewRecord(role, content)
	r.Metadata = metadata
	return r
}

// NowTimestamp returns the current UTC instant in TimestampLayout.
func NowTimestamp() string {
	return time.Now().UTC().Format(TimestampLayout)
}
