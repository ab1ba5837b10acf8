package memory

import (
	"context"
	"errors"
	"regexp"
	"strings"
)

// ErrCorruptHistory marks a persisted history that exists but could not be
// decoded. Callers choose the recovery policy; the bot degrades to an empty
// history and logs a warning.
var ErrCorruptHistory = errors.New("corrupt history")

// AnonymousUserID is the fallback storage key for identities that sanitize
// down to nothing.
const AnonymousUserID = "anonymous"

// Store persists an ordered conversation history per user identity.
//
// Load never fails for an unknown user; it returns the empty sequence. Save
// fully overwrites the persisted sequence with the one given - it is not a
// merge. Append and Extend are read-modify-write conveniences built atop
// Load+Save and are not atomic across concurrent callers for the same user.
type Store interface {
	Load(ctx context.Context, userID string) ([]Record, error)
	Save(ctx context.Context, userID string, history []Record) error
	Append(ctx context.Context, userID string, record Record) error
	Extend(ctx context.Context, userID string, records []Record) error
}

var unsafeUserIDChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// SanitizeUserID maps an arbitrary user identity to a file-system-safe
// storage key. Every character outside [A-Za-z0-9_.-] becomes '_'; an
// identity with nothing safe left maps to AnonymousUserID. The mapping is
// collision-tolerant, not collision-free.
func SanitizeUserID(userID string) string {
	sanitized := unsafeUserIDChars.ReplaceAllString(userID, "_")
	if strings.Trim(sanitized, "_") == "" {
		return AnonymousUserID
	}
	return sanitized
}
