// Package persona gives Paibot its Paimon-inspired voice: a deterministic,
// stateless text rewrite imposing a third-person, exclamation-heavy style
// with an emote suffix.
package persona

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// TagCommand flags the styled text as a command documentation answer,
// suppressing the bot-awareness clause appended to free chat.
const TagCommand = "command"

const (
	confusedFallback   = "¡Paimon está un poco confundida ahora mismo!"
	speechlessFallback = "¡Paimon no encuentra palabras para esto!"
	awarenessClause    = " Paimon recuerda que es una bot guía."
)

// Persona applies an energetic speaking style to responses.
type Persona struct {
	// Name prefixes rewritten sentences and is never re-prefixed onto
	// sentences already starting with it.
	Name string
	// ThirdPerson toggles the "{Name} piensa que ..." rewrite.
	ThirdPerson bool
	// Emotes are cycled deterministically by output sentence count.
	Emotes []string
}

// NewPaimon returns the default Paimon persona.
func NewPaimon() *Persona {
	return &Persona{
		Name:        "Paimon",
		ThirdPerson: true,
		Emotes:      []string{"☆", "✨", "♪", "☄️"},
	}
}

// decorate rewrites a single sentence fragment: third-person prefix when
// enabled, then a trailing '!' unless the fragment already ends in '!' or '?'.
func (p *Persona) decorate(sentence string) string {
	sentence = strings.TrimSpace(sentence)
	if sentence == "" {
		return sentence
	}

	if p.ThirdPerson && !strings.HasPrefix(strings.ToLower(sentence), strings.ToLower(p.Name)) {
		r, size := utf8.DecodeRuneInString(sentence)
		lowered := string(unicode.ToLower(r)) + sentence[size:]
		sentence = fmt.Sprintf("%s piensa que %s", p.Name, lowered)
	}

	if !strings.HasSuffix(sentence, "!") && !strings.HasSuffix(sentence, "?") {
		sentence += "!"
	}
	return sentence
}

// Stylize returns the text rewritten in the persona's voice. Whitespace-only
// input yields a fixed confused sentence instead of running the algorithm.
// Tags qualify the source of the text; see TagCommand.
func (p *Persona) Stylize(text string, tags ...string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return confusedFallback
	}

	flat := strings.ReplaceAll(text, "\n", " ")
	var decorated []string
	for _, part := range strings.Split(flat, ".") {
		if sentence := p.decorate(part); sentence != "" {
			decorated = append(decorated, sentence)
		}
	}
	if len(decorated) == 0 {
		decorated = []string{speechlessFallback}
	}

	awareness := awarenessClause
	if hasTag(tags, TagCommand) {
		awareness = ""
	}

	suffix := ""
	if len(p.Emotes) > 0 {
		suffix = " " + p.Emotes[len(decorated)%len(p.Emotes)]
	}

	return strings.Join(decorated, " ") + awareness + suffix
}

func hasTag(tags []string, want string) bool {
	for _, tag := range tags {
		if tag == want {
			return true
		}
	}
	return false
}
