package bot

import (
	"regexp"
	"strings"

	"github.com/Fl0zWer/Paibot/command"
)

// commandQueryPattern recognizes an explicit command query: an optional
// leading marker (! or /), a command-indicator word, a separator and the
// queried identifier.
var commandQueryPattern = regexp.MustCompile(`(?i)(?:!|/)?(?:comando|command|cmd)[:\s]+([\w-]+)`)

// ParseCommandQuery extracts the command identifier from an explicit command
// query such as "!comando spawn" or "cmd: jump". The boolean reports whether
// the message contained such a query at all.
func ParseCommandQuery(message string) (string, bool) {
	m := commandQueryPattern.FindStringSubmatch(message)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ContainsAlias reports whether the lower-cased message contains any of the
// given alias substrings. Aliases are expected lower-cased already.
func ContainsAlias(message string, aliases []string) bool {
	normalized := strings.ToLower(message)
	for _, alias := range aliases {
		if alias != "" && strings.Contains(normalized, alias) {
			return true
		}
	}
	return false
}

// ScanKnownCommands is the fallback containment stage of command
// resolution: the first known key (in load order) appearing literally inside
// the lower-cased message wins.
func ScanKnownCommands(message string, ref *command.Reference) (command.Document, bool) {
	normalized := strings.ToLower(message)
	for _, name := range ref.Available() {
		if strings.Contains(normalized, name) {
			return ref.Get(name)
		}
	}
	return command.Document{}, false
}

func (b *Bot) isMention(message string) bool {
	return ContainsAlias(message, b.mentionAliases)
}

// resolveCommand applies the two-stage strategy: the explicit pattern stage
// takes priority and, once matched, the containment scan never runs - even
// when the queried name resolves to nothing.
func (b *Bot) resolveCommand(message string) (command.Document, bool) {
	if b.commands == nil {
		return command.Document{}, false
	}
	if name, ok := ParseCommandQuery(message); ok {
		if doc, ok := b.commands.Get(name); ok {
			return doc, true
		}
		return b.commands.FindBestMatch(name)
	}
	return ScanKnownCommands(message, b.commands)
}
