package bot

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Fl0zWer/Paibot/command"
	"github.com/Fl0zWer/Paibot/logging"
	"github.com/Fl0zWer/Paibot/memory"
	"github.com/Fl0zWer/Paibot/model"
	"github.com/Fl0zWer/Paibot/model/gemini"
	"github.com/Fl0zWer/Paibot/persona"
)

// DefaultHistoryWindow is the number of most-recent records included when
// building a model prompt. Twice this many records are kept on disk.
const DefaultHistoryWindow = 12

// ErrMissingAPIKey is returned by New when neither a pre-built model nor a
// Gemini credential is supplied. This is a fatal startup condition, not a
// per-turn error.
var ErrMissingAPIKey = errors.New("la credencial GEMINI_API_KEY es necesaria para ejecutar Paibot con Gemini")

const (
	systemInstruction = "Eres Paibot, un asistente del mod Paibot para Geometry Dash. " +
		"Siempre recuerda que eres un bot amistoso y habla en español. " +
		"Usa la memoria proporcionada para mantener el contexto y apóyate en la documentación " +
		".md cuando el usuario pregunte por comandos específicos."

	mentionInstruction = "El usuario acaba de mencionar a Paibot. Responde con un tono alegre inspirado en Paimon, sin olvidar que eres una bot."

	emptyMessageReply  = "Paimon no escuchó nada, ¡intenta decir algo de nuevo!"
	stillThinkingReply = "Paimon todavía está pensando en la respuesta."
)

// SystemInstruction returns the fixed persona/language instruction handed to
// model providers at construction time.
func SystemInstruction() string { return systemInstruction }

// DefaultMentionAliases returns the alias substrings that trigger persona
// styling.
func DefaultMentionAliases() []string { return []string{"paibot", "@paibot", "paimon"} }

// Options holds dependency and configuration overrides passed to New.
type Options struct {
	// Memory persists per-user conversation histories. Defaults to a
	// volatile in-memory store.
	Memory memory.Store
	// Commands answers documentation queries without touching the model.
	// Nil disables command resolution entirely.
	Commands *command.Reference
	// Persona restyles responses on mentions. Defaults to Paimon.
	Persona *persona.Persona
	// Model handles generation. When nil, a Gemini model is built from
	// APIKey and ModelName; an empty APIKey then fails construction.
	Model model.Model
	// APIKey is the Gemini credential used only when Model is nil.
	APIKey string
	// ModelName selects the Gemini model used only when Model is nil.
	ModelName string
	// HistoryWindow bounds the prompt context; values below 1 are raised
	// to 1. Defaults to DefaultHistoryWindow.
	HistoryWindow int
	// MentionAliases override the default alias set.
	MentionAliases []string
	// GenerationConfig overrides the fixed sampling options.
	GenerationConfig model.GenerationConfig
	// Logger receives turn and model-call events. Defaults to NoOp.
	Logger logging.Logger
}

// Bot orchestrates conversation turns over the memory store, the command
// reference, the persona and the generative model.
type Bot struct {
	memory         memory.Store
	commands       *command.Reference
	persona        *persona.Persona
	model          model.Model
	historyWindow  int
	mentionAliases []string
	genConfig      model.GenerationConfig
	logger         logging.Logger
}

// New constructs a Bot with optional overrides. Construction fails fast when
// no model handle is supplied and no credential is available.
func New(optFns ...func(o *Options)) (*Bot, error) {
	opts := Options{
		Memory:           memory.NewInMemoryStore(),
		Persona:          persona.NewPaimon(),
		ModelName:        gemini.DefaultModel,
		HistoryWindow:    DefaultHistoryWindow,
		MentionAliases:   DefaultMentionAliases(),
		GenerationConfig: model.DefaultGenerationConfig(),
		Logger:           logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	mdl := opts.Model
	if mdl == nil {
		if opts.APIKey == "" {
			return nil, ErrMissingAPIKey
		}
		var err error
		mdl, err = gemini.NewModel(context.Background(), opts.APIKey, func(o *gemini.Options) {
			o.Model = opts.ModelName
			o.SystemInstruction = systemInstruction
		})
		if err != nil {
			return nil, fmt.Errorf("build gemini model: %w", err)
		}
	}

	window := opts.HistoryWindow
	if window < 1 {
		window = 1
	}

	aliases := make([]string, 0, len(opts.MentionAliases))
	for _, alias := range opts.MentionAliases {
		aliases = append(aliases, strings.ToLower(alias))
	}

	return &Bot{
		memory:         opts.Memory,
		commands:       opts.Commands,
		persona:        opts.Persona,
		model:          mdl,
		historyWindow:  window,
		mentionAliases: aliases,
		genConfig:      opts.GenerationConfig,
		logger:         opts.Logger,
	}, nil
}

// HistoryWindow returns the configured prompt window size.
func (b *Bot) HistoryWindow() int { return b.historyWindow }

// Respond generates a response for the provided user message and persists
// the exchange. Empty input short-circuits with a canned reply before any
// history is read or written. Model-boundary errors propagate to the caller.
func (b *Bot) Respond(ctx context.Context, userID, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return emptyMessageReply, nil
	}

	turnID := uuid.NewString()

	history, err := b.memory.Load(ctx, userID)
	if err != nil {
		if !errors.Is(err, memory.ErrCorruptHistory) {
			return "", fmt.Errorf("load history: %w", err)
		}
		// Stored history is unreadable: keep the conversation alive with a
		// fresh one rather than failing the turn.
		b.logger.Warn("stored history is corrupt, starting fresh", "turn_id", turnID, "user_id", userID, "error", err)
		history = nil
	}

	mention := b.isMention(message)
	doc, fromCommand := b.resolveCommand(message)

	var base string
	if fromCommand {
		base = formatCommandAnswer(doc)
	} else {
		base, err = b.generateReply(ctx, history, message, mention)
		if err != nil {
			return "", err
		}
	}

	final := base
	if mention {
		if fromCommand {
			final = b.persona.Stylize(base, persona.TagCommand)
		} else {
			final = b.persona.Stylize(base)
		}
	}

	updated := append(history,
		memory.NewRecord(memory.RoleUser, message),
		memory.NewRecordWithMetadata(memory.RoleAssistant, final, map[string]string{
			"mention": strconv.FormatBool(mention),
		}),
	)
	if err := b.memory.Save(ctx, userID, trimHistory(updated, b.historyWindow*2)); err != nil {
		return "", fmt.Errorf("save history: %w", err)
	}

	b.logger.Info("turn completed",
		"turn_id", turnID,
		"user_id", userID,
		"mention", mention,
		"command", fromCommand,
	)
	return final, nil
}

// generateReply builds the bounded prompt and delegates to the model.
func (b *Bot) generateReply(ctx context.Context, history []memory.Record, message string, mention bool) (string, error) {
	recent := recentWindow(history, b.historyWindow)
	turns := make([]model.Turn, 0, len(recent)+2)
	for _, rec := range recent {
		role := model.RoleUser
		if rec.Role == memory.RoleAssistant {
			role = model.RoleAssistant
		}
		turns = append(turns, model.Turn{Role: role, Content: rec.Content})
	}
	if mention {
		turns = append(turns, model.Turn{Role: model.RoleUser, Content: mentionInstruction})
	}
	turns = append(turns, model.Turn{Role: model.RoleUser, Content: message})

	start := time.Now()
	text, err := b.model.Generate(ctx, model.Request{Turns: turns, Config: b.genConfig})
	logging.LogModelCall(b.logger, b.model.Info().Name, time.Since(start), err)
	if err != nil {
		return "", fmt.Errorf("model generation failed: %w", err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return stillThinkingReply, nil
	}
	return text, nil
}

// formatCommandAnswer produces the fixed-template documentation answer that
// bypasses the model entirely.
func formatCommandAnswer(doc command.Document) string {
	return fmt.Sprintf(
		"El comando `%s` funciona así:\n%s\n\nPuedes revisar el archivo `%s` para más ejemplos detallados.",
		doc.Name, doc.Summary(), filepath.ToSlash(doc.Path),
	)
}

// recentWindow returns the at most n most-recent records, oldest first.
func recentWindow(history []memory.Record, n int) []memory.Record {
	if len(history) <= n {
		return history
	}
	return history[len(history)-n:]
}

// trimHistory drops the oldest records beyond the persistence cap.
func trimHistory(history []memory.Record, maxRecords int) []memory.Record {
	if len(history) <= maxRecords {
		return history
	}
	return history[len(history)-maxRecords:]
}
