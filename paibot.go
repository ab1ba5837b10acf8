// Package paibot provides a high-level façade over the conversation core
// (bot, memory, command reference, persona and model provider) enabling a
// one-call setup for CLI front ends and embedders. Most applications
// interact with this package by:
//  1. Creating a Paibot via New() (optionally overriding config or services)
//  2. Calling Respond for each incoming user message
//
// The façade delegates orchestration to bot.Bot while keeping wiring
// ergonomics concise. Defaults are the production deployment: a file-backed
// memory store scoped by deployment coordinates, the Markdown command
// reference, the Paimon persona and a Gemini-backed model.
package paibot

import (
	"context"
	"fmt"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"

	"github.com/Fl0zWer/Paibot/bot"
	"github.com/Fl0zWer/Paibot/command"
	"github.com/Fl0zWer/Paibot/config"
	"github.com/Fl0zWer/Paibot/logging"
	"github.com/Fl0zWer/Paibot/memory"
	"github.com/Fl0zWer/Paibot/model"
	"github.com/Fl0zWer/Paibot/model/anthropic"
	"github.com/Fl0zWer/Paibot/model/openai"
	"github.com/Fl0zWer/Paibot/persona"
)

// Options configures the Paibot instance. Any unset service is built from
// the Config.
type Options struct {
	// Config drives the default wiring. Callers should pass the object
	// produced by config.Load (plus any file overlay) at process start.
	Config config.Config

	// Memory overrides the file-backed store.
	Memory memory.Store
	// Commands overrides the documentation reference.
	Commands *command.Reference
	// Persona overrides the configured persona.
	Persona *persona.Persona
	// Model overrides the provider selected by Config.Provider.
	Model model.Model

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// Paibot is the high-level façade aggregating the conversation core.
type Paibot struct {
	bot      *bot.Bot
	commands *command.Reference
	cfg      config.Config
}

// New creates a Paibot instance wired from the given configuration.
func New(cfg config.Config, optFns ...func(o *Options)) (*Paibot, error) {
	opts := Options{Config: cfg, Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	cfg = opts.Config

	mem := opts.Memory
	if mem == nil {
		fileStore, err := memory.NewFileStore(cfg.MemoryBaseDir(), func(o *memory.FileStoreOptions) {
			o.Logger = opts.Logger
		})
		if err != nil {
			return nil, err
		}
		mem = fileStore
	}

	commands := opts.Commands
	if commands == nil {
		var err error
		commands, err = command.NewReference(cfg.DocsDir)
		if err != nil {
			return nil, err
		}
	}

	p := opts.Persona
	if p == nil {
		p = personaFromConfig(cfg)
	}

	mdl := opts.Model
	if mdl == nil {
		var err error
		mdl, err = providerFromConfig(cfg)
		if err != nil {
			return nil, err
		}
	}

	b, err := bot.New(func(o *bot.Options) {
		o.Memory = mem
		o.Commands = commands
		o.Persona = p
		o.Model = mdl // may still be nil: bot builds Gemini from the credential
		o.APIKey = cfg.GeminiAPIKey
		if cfg.ModelName != "" {
			o.ModelName = cfg.ModelName
		}
		if cfg.HistoryWindow > 0 {
			o.HistoryWindow = cfg.HistoryWindow
		}
		if len(cfg.MentionAliases) > 0 {
			o.MentionAliases = cfg.MentionAliases
		}
		o.Logger = opts.Logger
	})
	if err != nil {
		return nil, err
	}

	return &Paibot{bot: b, commands: commands, cfg: cfg}, nil
}

// Respond generates a response for the provided user message, persisting
// the exchange. See bot.Bot.Respond for the turn semantics.
func (p *Paibot) Respond(ctx context.Context, userID, message string) (string, error) {
	return p.bot.Respond(ctx, userID, message)
}

// Commands exposes the documentation reference, e.g. to run a Watch loop or
// trigger a manual Refresh.
func (p *Paibot) Commands() *command.Reference { return p.commands }

// Config returns the configuration this instance was wired from.
func (p *Paibot) Config() config.Config { return p.cfg }

func personaFromConfig(cfg config.Config) *persona.Persona {
	p := persona.NewPaimon()
	if cfg.PersonaName != "" {
		p.Name = cfg.PersonaName
	}
	if len(cfg.Emotes) > 0 {
		p.Emotes = cfg.Emotes
	}
	return p
}

// providerFromConfig builds the non-default providers eagerly; for gemini it
// returns nil so bot.New performs its fail-fast credential check.
func providerFromConfig(cfg config.Config) (model.Model, error) {
	switch cfg.Provider {
	case "", "gemini":
		return nil, nil
	case "openai":
		return openai.NewModel(func(o *openai.Options) {
			o.SystemInstruction = bot.SystemInstruction()
			if cfg.ModelName != "" {
				o.Model = cfg.ModelName
			}
		}), nil
	case "anthropic":
		return anthropic.NewModel(func(o *anthropic.Options) {
			o.SystemInstruction = bot.SystemInstruction()
			if cfg.ModelName != "" {
				o.Model = anthropicsdk.Model(cfg.ModelName)
			}
		}), nil
	default:
		return nil, fmt.Errorf("unknown model provider %q", cfg.Provider)
	}
}
